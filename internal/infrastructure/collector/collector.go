// Package collector assembles the context snapshot handed to the provider:
// environment basics, remembered preferences and the latest hook-reported
// failure. Store failures degrade to an emptier snapshot, never an abort.
package collector

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"

	"github.com/wtf-sh/wtf/internal/domain"
	"github.com/wtf-sh/wtf/internal/ports"
)

// BasicCollector implements ports.ContextCollector.
type BasicCollector struct {
	Preferences ports.PreferenceStore
	Events      ports.EventSink
	Logger      ports.Logger
}

// NewBasicCollector builds a collector over the given stores.
func NewBasicCollector(prefs ports.PreferenceStore, events ports.EventSink, logger ports.Logger) *BasicCollector {
	return &BasicCollector{Preferences: prefs, Events: events, Logger: logger}
}

// Collect gathers context data.
func (c *BasicCollector) Collect(_ context.Context, _ domain.Config) (domain.ContextSnapshot, error) {
	wd, _ := os.Getwd()
	snapshot := domain.ContextSnapshot{
		WorkingDir: wd,
		Shell:      filepath.Base(os.Getenv("SHELL")),
		OS:         runtime.GOOS,
		User:       os.Getenv("USER"),
	}

	if c.Preferences != nil {
		memories, err := c.Preferences.All()
		switch {
		case err == nil:
			snapshot.Memories = memories
		case errors.Is(err, domain.ErrStoreUnavailable):
			c.warn("running without memory context", err)
		default:
			return domain.ContextSnapshot{}, err
		}
	}

	if c.Events != nil {
		failure, err := c.Events.LatestFailure()
		switch {
		case err == nil:
			snapshot.LastFailure = failure
		case errors.Is(err, domain.ErrStoreUnavailable):
			c.warn("running without recent failure context", err)
		default:
			return domain.ContextSnapshot{}, err
		}
	}

	return snapshot, nil
}

func (c *BasicCollector) warn(msg string, err error) {
	if c.Logger == nil {
		return
	}
	c.Logger.Warn(msg, map[string]interface{}{"error": err.Error()})
}

var _ ports.ContextCollector = (*BasicCollector)(nil)
