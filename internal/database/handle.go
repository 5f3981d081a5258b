package database

import (
	"context"
	"errors"
	"sync"

	"gorm.io/gorm"
)

// ErrHandleClosed is reported by DB when the handle was closed before it was ever opened.
var ErrHandleClosed = errors.New("store handle closed")

// Opener builds the store client on first use.
type Opener func() (*gorm.DB, error)

// Handle owns the process-wide store client. The client is opened at most once,
// on the first call to DB, and shared by every request after that.
type Handle struct {
	once sync.Once
	open Opener
	db   *gorm.DB
	err  error
}

// NewHandle wraps an opener in a lazily initialised handle.
func NewHandle(open Opener) *Handle {
	return &Handle{open: open}
}

// DB returns the shared store client, opening it on first use. A failed open is
// remembered; the handle never retries.
func (h *Handle) DB() (*gorm.DB, error) {
	h.once.Do(func() {
		if h.open == nil {
			h.err = errors.New("store opener is not configured")
			return
		}
		h.db, h.err = h.open()
		if h.err == nil && h.db == nil {
			h.err = errors.New("store opener returned no client")
		}
	})

	return h.db, h.err
}

// Close releases the underlying connection pool if it was opened. A handle
// closed before first use stays unopened.
func (h *Handle) Close() error {
	h.once.Do(func() {
		h.err = ErrHandleClosed
	})
	if h.db == nil {
		return nil
	}

	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

// Ping verifies the store answers, opening the client if needed.
func (h *Handle) Ping(ctx context.Context) error {
	db, err := h.DB()
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	return sqlDB.PingContext(ctx)
}
