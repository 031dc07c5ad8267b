package durations

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"mixdown/internal/logging"
	"mixdown/internal/media/ffprobe"
)

// Prober abstracts the two ffprobe query forms for testability.
type Prober interface {
	QuickDuration(ctx context.Context, path string) (float64, error)
	Inspect(ctx context.Context, path string) (ffprobe.Result, error)
}

// Cache memoizes media durations keyed by path and modification time, so a
// rewritten file is re-probed while an untouched one never is.
type Cache struct {
	probe  Prober
	logger *slog.Logger

	mu      sync.Mutex
	entries map[string]float64
}

// Option configures the cache.
type Option func(*Cache)

// WithLogger attaches a logger for probe diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logging.NewComponentLogger(logger, "durations")
		}
	}
}

// NewCache constructs a duration cache backed by the provided prober.
func NewCache(probe Prober, opts ...Option) *Cache {
	cache := &Cache{
		probe:   probe,
		logger:  logging.NewNop(),
		entries: make(map[string]float64),
	}
	for _, opt := range opts {
		opt(cache)
	}
	return cache
}

// Duration returns the media duration in seconds. A non-existent path yields
// zero. Probe failures degrade to zero rather than propagating: a file whose
// duration cannot be determined still belongs on the timeline.
func (c *Cache) Duration(ctx context.Context, path string) float64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0.0
	}

	key := fmt.Sprintf("%s:%d", path, info.ModTime().Unix())

	c.mu.Lock()
	if duration, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return duration
	}
	c.mu.Unlock()

	duration := c.resolve(ctx, path)

	c.mu.Lock()
	c.entries[key] = duration
	c.mu.Unlock()
	return duration
}

// Durations resolves each path in order through the cache.
func (c *Cache) Durations(ctx context.Context, paths []string) []float64 {
	results := make([]float64, len(paths))
	for i, path := range paths {
		results[i] = c.Duration(ctx, path)
	}
	return results
}

func (c *Cache) resolve(ctx context.Context, path string) float64 {
	if duration, err := c.probe.QuickDuration(ctx, path); err == nil && duration > 0 {
		return duration
	}

	result, err := c.probe.Inspect(ctx, path)
	if err != nil {
		c.logger.Debug("duration probe failed", logging.Args(
			logging.String("path", path),
			logging.Error(err),
		)...)
		return 0.0
	}
	return result.DurationSeconds()
}
