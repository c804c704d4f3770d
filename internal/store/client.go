// Package store is the client for the hosted document database holding
// projects, prompt presets and user profiles.
package store

import (
	"log/slog"
	"time"
)

type Client struct {
	backend Backend
	logger  *slog.Logger
	now     func() time.Time
}

type Option func(*Client)

// WithClock replaces the wall clock used for created/updated timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

func NewClient(backend Backend, logger *slog.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{
		backend: backend,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) nowMillis() int64 {
	return c.now().UnixMilli()
}
