package lookup

import (
	"context"
	"fmt"
	"log/slog"

	"cratesort/internal/logging"
)

// Result is the metadata contribution of an external lookup. Zero fields are
// absent; the resolver decides what to keep.
type Result struct {
	Title  string `json:"title,omitempty"`
	Artist string `json:"artist,omitempty"`
	Album  string `json:"album,omitempty"`
	Genre  string `json:"genre,omitempty"`
	Year   int    `json:"year,omitempty"`
	BPM    int    `json:"bpm,omitempty"`
}

// Provider answers a metadata query for one track. found=false with a nil
// error is a clean miss; an error means the provider was unavailable.
type Provider interface {
	Name() string
	Lookup(ctx context.Context, artist, title string) (result Result, found bool, err error)
}

// HTTPError carries a non-200 response from a lookup service.
type HTTPError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return e.Status
	}
	return fmt.Sprintf("%s: %s", e.Status, e.Message)
}

// Temporary reports whether the request is worth retrying.
func (e *HTTPError) Temporary() bool {
	return e.StatusCode == 429 || e.StatusCode == 503
}

// Chain tries providers in order, falling back on a miss or failure. Provider
// failures are logged and swallowed so a broken network degrades to an absent
// contribution; the only error a chain lookup returns is cancellation.
type Chain struct {
	providers []Provider
	logger    *slog.Logger
}

// NewChain builds a fallback chain over the given providers.
func NewChain(logger *slog.Logger, providers ...Provider) *Chain {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Chain{
		providers: providers,
		logger:    logging.NewComponentLogger(logger, "lookup"),
	}
}

func (c *Chain) Name() string { return "chain" }

// Lookup queries each provider until one returns a hit.
func (c *Chain) Lookup(ctx context.Context, artist, title string) (Result, bool, error) {
	for _, provider := range c.providers {
		if err := ctx.Err(); err != nil {
			return Result{}, false, err
		}
		result, found, err := provider.Lookup(ctx, artist, title)
		if err != nil {
			c.logger.Warn("lookup provider unavailable",
				logging.String("provider", provider.Name()),
				logging.String("artist", artist),
				logging.String("title", title),
				logging.Error(err))
			continue
		}
		if found {
			return result, true, nil
		}
	}
	return Result{}, false, nil
}
