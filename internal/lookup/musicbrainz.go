package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"cratesort/internal/config"
	"cratesort/internal/logging"
)

// MusicBrainz etiquette asks unauthenticated clients to stay under one
// request per second; the original cataloger used 1.2s to keep a margin.
const musicBrainzInterval = 1200 * time.Millisecond

const searchLimit = 5

// MusicBrainz queries the MusicBrainz web service for recording metadata.
// It contributes title, album, and year; MusicBrainz does not serve genre
// tags through this endpoint.
type MusicBrainz struct {
	baseURL     string
	userAgent   string
	maxAttempts int
	httpClient  *http.Client
	limiter     *rate.Limiter
	logger      *slog.Logger
}

// NewMusicBrainz builds a client from the lookup configuration.
func NewMusicBrainz(cfg *config.Config, logger *slog.Logger) *MusicBrainz {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &MusicBrainz{
		baseURL:     cfg.Lookup.MusicBrainzURL,
		userAgent:   cfg.Lookup.UserAgent,
		maxAttempts: cfg.Lookup.MaxAttempts,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Lookup.TimeoutSeconds) * time.Second,
		},
		limiter: rate.NewLimiter(rate.Every(musicBrainzInterval), 1),
		logger:  logging.NewComponentLogger(logger, "musicbrainz"),
	}
}

func (m *MusicBrainz) Name() string { return "musicbrainz" }

type mbArtistCredit struct {
	Name string `json:"name"`
}

type mbRelease struct {
	Title string `json:"title"`
	Date  string `json:"date"`
}

type mbRecording struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	ArtistCredit []mbArtistCredit `json:"artist-credit"`
	Releases     []mbRelease      `json:"releases"`
}

// Lookup searches for the recording and fetches its details. The first search
// hit whose artist/title survive verification wins; a query that matches
// nothing is a clean miss.
func (m *MusicBrainz) Lookup(ctx context.Context, artist, title string) (Result, bool, error) {
	if artist == "" || title == "" {
		return Result{}, false, nil
	}

	query := fmt.Sprintf("artist:%q AND recording:%q", artist, title)
	path := fmt.Sprintf("/recording?query=%s&limit=%d&fmt=json", url.QueryEscape(query), searchLimit)

	body, err := m.getWithRetry(ctx, path)
	if err != nil {
		return Result{}, false, fmt.Errorf("search recording: %w", err)
	}

	var search struct {
		Recordings []mbRecording `json:"recordings"`
	}
	if err := json.Unmarshal(body, &search); err != nil {
		return Result{}, false, fmt.Errorf("parse search result: %w", err)
	}

	for _, hit := range search.Recordings {
		if !verified(artist, title, hit.artistName(), hit.Title) {
			m.logger.Debug("rejected search hit",
				logging.String("artist", hit.artistName()),
				logging.String("title", hit.Title))
			continue
		}
		return m.recordingDetails(ctx, artist, hit)
	}

	return Result{}, false, nil
}

// recordingDetails fetches the full recording to pick up its releases.
func (m *MusicBrainz) recordingDetails(ctx context.Context, queryArtist string, hit mbRecording) (Result, bool, error) {
	path := fmt.Sprintf("/recording/%s?inc=releases+artist-credits&fmt=json", url.PathEscape(hit.ID))
	body, err := m.getWithRetry(ctx, path)
	if err != nil {
		return Result{}, false, fmt.Errorf("fetch recording %s: %w", hit.ID, err)
	}

	var detail mbRecording
	if err := json.Unmarshal(body, &detail); err != nil {
		return Result{}, false, fmt.Errorf("parse recording %s: %w", hit.ID, err)
	}

	result := Result{
		Title:  detail.Title,
		Artist: queryArtist,
	}
	if len(detail.Releases) > 0 {
		result.Album = detail.Releases[0].Title
		result.Year = yearFromDate(detail.Releases[0].Date)
	}
	return result, true, nil
}

func (r mbRecording) artistName() string {
	if len(r.ArtistCredit) == 0 {
		return ""
	}
	return r.ArtistCredit[0].Name
}

// getWithRetry repeats temporarily failing requests with linear backoff.
func (m *MusicBrainz) getWithRetry(ctx context.Context, path string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= m.maxAttempts; attempt++ {
		body, err := m.get(ctx, path)
		if err == nil {
			return body, nil
		}
		lastErr = err

		var httpErr *HTTPError
		if !errors.As(err, &httpErr) || !httpErr.Temporary() {
			return nil, err
		}
		if attempt == m.maxAttempts {
			break
		}

		delay := time.Duration(attempt) * 500 * time.Millisecond
		m.logger.Debug("retrying after temporary failure",
			logging.Int("attempt", attempt),
			logging.String("status", httpErr.Status))
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
	return nil, lastErr
}

func (m *MusicBrainz) get(ctx context.Context, path string) ([]byte, error) {
	if err := m.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", m.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		message := string(body)
		if len(message) > 200 {
			message = message[:200] + "..."
		}
		return nil, &HTTPError{StatusCode: resp.StatusCode, Status: resp.Status, Message: message}
	}
	return body, nil
}

// yearFromDate extracts the year from a MusicBrainz date such as "2001",
// "2001-05", or "2001-05-21".
func yearFromDate(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}
