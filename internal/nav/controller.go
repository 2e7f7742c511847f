// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package nav

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/jeranaias/pestcheck-tui/internal/logging"
)

// Route is the top-level application state.
type Route int

const (
	// AwaitingLanguageSelection shows the first-run language picker.
	AwaitingLanguageSelection Route = iota
	// MainApplication shows home and everything reachable from it.
	MainApplication
)

func (r Route) String() string {
	switch r {
	case AwaitingLanguageSelection:
		return "language-select"
	case MainApplication:
		return "main"
	}
	return "unknown"
}

// SelectionStore is the part of the preference store routing needs.
type SelectionStore interface {
	HasSelected(ctx context.Context) bool
	CompleteSelection(ctx context.Context, code string) error
}

// Controller holds the current route.
type Controller struct {
	prefs  SelectionStore
	logger *zap.Logger

	mu    sync.Mutex
	route Route
}

// NewController returns a controller in AwaitingLanguageSelection. Call
// Initial before showing anything.
func NewController(prefs SelectionStore, logger *zap.Logger) *Controller {
	return &Controller{
		prefs:  prefs,
		logger: logging.OrNop(logger).Named("nav"),
		route:  AwaitingLanguageSelection,
	}
}

// Initial reads the completion flag once at start and returns the route to
// show. An unreadable flag reads as unset.
func (c *Controller) Initial(ctx context.Context) Route {
	selected := c.prefs.HasSelected(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if selected {
		c.route = MainApplication
	}
	c.logger.Debug("initial route", zap.Stringer("route", c.route))
	return c.route
}

// Recheck re-reads the flag when the main layout is entered. It can only
// promote AwaitingLanguageSelection to MainApplication.
func (c *Controller) Recheck(ctx context.Context) Route {
	c.mu.Lock()
	current := c.route
	c.mu.Unlock()
	if current == MainApplication {
		return current
	}
	return c.Initial(ctx)
}

// Route returns the current route.
func (c *Controller) Route() Route {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.route
}

// Complete records the first-run language choice and moves to
// MainApplication. On a write failure the route is unchanged.
func (c *Controller) Complete(ctx context.Context, code string) (Route, error) {
	if err := c.prefs.CompleteSelection(ctx, code); err != nil {
		c.logger.Warn("saving language selection failed", zap.String("language", code), zap.Error(err))
		return c.Route(), err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.route = MainApplication
	return c.route, nil
}
