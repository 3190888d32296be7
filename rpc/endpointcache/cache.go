// Package endpointcache remembers the endpoint that last served a request so the
// next run can try it before anything else.
package endpointcache

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// ErrCacheIO wraps every storage and decoding fault. Such faults are logged and
// never reach callers.
var ErrCacheIO = errors.New("endpoint cache io")

// Entry is the persisted form. Timestamp is in milliseconds since the epoch.
type Entry struct {
	URL       string `json:"url"`
	Timestamp int64  `json:"timestamp"`
}

// Cache reads and writes the last known good endpoint.
type Cache struct {
	storage Storage
	key     string
	maxAge  time.Duration
	now     func() time.Time
	logger  *zap.Logger
	redact  func(string) string
}

type Option func(*Cache)

func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// WithRedactor sets the function applied to URLs before they are logged.
func WithRedactor(redact func(string) string) Option {
	return func(c *Cache) {
		c.redact = redact
	}
}

func NewCache(storage Storage, key string, maxAge time.Duration, logger *zap.Logger, opts ...Option) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Cache{
		storage: storage,
		key:     key,
		maxAge:  maxAge,
		now:     time.Now,
		logger:  logger.Named("endpoint-cache"),
		redact:  func(s string) string { return s },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Read returns the persisted endpoint when one exists and is at most maxAge old.
func (c *Cache) Read() (string, bool) {
	entry, err := c.load()
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			c.logger.Warn("failed to read cached endpoint", zap.String("error", c.redact(err.Error())))
		}
		return "", false
	}

	age := c.now().Sub(time.UnixMilli(entry.Timestamp))
	// A future timestamp comes from a clock rollback or a hand-edited file.
	if entry.URL == "" || age < 0 || age > c.maxAge {
		c.logger.Debug("ignoring cached endpoint", zap.String("endpoint", c.redact(entry.URL)), zap.Duration("age", age))
		return "", false
	}
	return entry.URL, true
}

// Write persists url with the current time.
func (c *Cache) Write(url string) {
	data, err := json.Marshal(Entry{URL: url, Timestamp: c.now().UnixMilli()})
	if err == nil {
		err = c.storage.Set(c.key, data)
	}
	if err != nil {
		c.logger.Warn("failed to persist endpoint",
			zap.String("endpoint", c.redact(url)),
			zap.String("error", c.redact(fmt.Errorf("%w: %w", ErrCacheIO, err).Error())))
		return
	}
	c.logger.Debug("persisted endpoint", zap.String("endpoint", c.redact(url)))
}

func (c *Cache) load() (Entry, error) {
	data, err := c.storage.Get(c.key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Entry{}, err
		}
		return Entry{}, fmt.Errorf("%w: %w", ErrCacheIO, err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return Entry{}, fmt.Errorf("%w: decode: %w", ErrCacheIO, err)
	}
	return entry, nil
}
