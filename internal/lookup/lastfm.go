package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"cratesort/internal/config"
	"cratesort/internal/logging"
)

const lastFMInterval = 500 * time.Millisecond

// LastFM queries the Last.fm track.getInfo endpoint. It is the only genre
// source in the chain: the first entry of the track's top tags. Requires an
// API key; the wiring skips this provider when none is configured.
type LastFM struct {
	baseURL    string
	apiKey     string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewLastFM builds a client from the lookup configuration.
func NewLastFM(cfg *config.Config, logger *slog.Logger) *LastFM {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &LastFM{
		baseURL:   cfg.Lookup.LastFMURL,
		apiKey:    cfg.Lookup.LastFMAPIKey,
		userAgent: cfg.Lookup.UserAgent,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Lookup.TimeoutSeconds) * time.Second,
		},
		limiter: rate.NewLimiter(rate.Every(lastFMInterval), 1),
		logger:  logging.NewComponentLogger(logger, "lastfm"),
	}
}

func (l *LastFM) Name() string { return "lastfm" }

type lastFMTag struct {
	Name string `json:"name"`
}

type lastFMTrack struct {
	Name   string `json:"name"`
	Artist struct {
		Name string `json:"name"`
	} `json:"artist"`
	Album struct {
		Title string `json:"title"`
	} `json:"album"`
	TopTags struct {
		Tag []lastFMTag `json:"tag"`
	} `json:"toptags"`
}

// Lookup fetches track info. Last.fm reports unknown tracks as an in-band
// error payload with status 200; those are clean misses.
func (l *LastFM) Lookup(ctx context.Context, artist, title string) (Result, bool, error) {
	if artist == "" || title == "" || l.apiKey == "" {
		return Result{}, false, nil
	}

	if err := l.limiter.Wait(ctx); err != nil {
		return Result{}, false, fmt.Errorf("rate limiter: %w", err)
	}

	params := url.Values{}
	params.Set("method", "track.getInfo")
	params.Set("artist", artist)
	params.Set("track", title)
	params.Set("api_key", l.apiKey)
	params.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.baseURL+"/?"+params.Encode(), nil)
	if err != nil {
		return Result{}, false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", l.userAgent)

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return Result{}, false, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, false, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		message := string(body)
		if len(message) > 200 {
			message = message[:200] + "..."
		}
		return Result{}, false, &HTTPError{StatusCode: resp.StatusCode, Status: resp.Status, Message: message}
	}

	var payload struct {
		Error   int         `json:"error"`
		Message string      `json:"message"`
		Track   lastFMTrack `json:"track"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return Result{}, false, fmt.Errorf("parse response: %w", err)
	}
	if payload.Error != 0 {
		l.logger.Debug("track not found",
			logging.String("artist", artist),
			logging.String("title", title),
			logging.String("reason", payload.Message))
		return Result{}, false, nil
	}
	if payload.Track.Name == "" {
		return Result{}, false, nil
	}

	result := Result{
		Title:  payload.Track.Name,
		Artist: payload.Track.Artist.Name,
		Album:  payload.Track.Album.Title,
	}
	if result.Artist == "" {
		result.Artist = artist
	}
	if !verified(artist, title, result.Artist, result.Title) {
		l.logger.Debug("rejected track info; response does not match query",
			logging.String("artist", result.Artist),
			logging.String("title", result.Title))
		return Result{}, false, nil
	}
	if len(payload.Track.TopTags.Tag) > 0 {
		result.Genre = payload.Track.TopTags.Tag[0].Name
	}
	return result, true, nil
}
