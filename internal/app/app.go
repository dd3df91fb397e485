// Package app assembles the stores into one explicit application
// context: durable storage, the event bus, the notice log, and the
// identity, notification, and task stores, wired together. There are
// no package-level singletons; the App lives for the whole process.
package app

import (
	"context"
	"fmt"

	"github.com/nhle/taskboard/internal/auth"
	"github.com/nhle/taskboard/internal/event"
	"github.com/nhle/taskboard/internal/model"
	"github.com/nhle/taskboard/internal/notice"
	"github.com/nhle/taskboard/internal/notify"
	"github.com/nhle/taskboard/internal/store"
	"github.com/nhle/taskboard/internal/task"
)

// App is the assembled application state layer.
type App struct {
	Config        *model.AppConfig
	Store         *store.SQLiteStore
	Events        *event.Bus
	Notices       *notice.Log
	Auth          *auth.Service
	Notifications *notify.Feed
	Tasks         *task.Service
}

// New opens the durable store at cfg.Storage.Path and builds the three
// stores on top of it. The notification feed follows the session: it is
// loaded for a restored session immediately and reloaded on every
// login, register, and logout. Task activity reaches the feed through
// the event bus, never by a direct call.
func New(ctx context.Context, cfg *model.AppConfig) (*App, error) {
	st, err := store.NewSQLiteStore(cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	bus := event.NewBus()
	notices := notice.NewLog()

	authSvc, err := auth.NewService(ctx, st, notices, auth.Options{
		Latency:      cfg.Latency(),
		DemoPassword: cfg.Auth.DemoPassword,
	})
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("building identity store: %w", err)
	}

	feed := notify.NewFeed(st)
	if u := authSvc.CurrentUser(); u != nil {
		if err := feed.SetUser(ctx, u.ID); err != nil {
			st.Close()
			return nil, fmt.Errorf("loading notification feed: %w", err)
		}
	}
	authSvc.SubscribeSession(func(u *model.User) {
		id := ""
		if u != nil {
			id = u.ID
		}
		// Session changes happen outside any request scope.
		_ = feed.SetUser(context.Background(), id)
	})
	bus.Subscribe(feed.HandleEvent)

	tasks, err := task.NewService(ctx, st, bus, notices, authSvc, task.Options{
		Latency: cfg.Latency(),
	})
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("building task store: %w", err)
	}

	return &App{
		Config:        cfg,
		Store:         st,
		Events:        bus,
		Notices:       notices,
		Auth:          authSvc,
		Notifications: feed,
		Tasks:         tasks,
	}, nil
}

// Close releases the durable store.
func (a *App) Close() error {
	return a.Store.Close()
}
