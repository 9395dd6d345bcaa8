// Package app wires the gallery components together and drives the
// load-stickers cycle: auth gate, listing fetch, render, lazy media mount.
package app

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/liminalpurple/sticker-gallery/internal/actions"
	"github.com/liminalpurple/sticker-gallery/internal/api"
	"github.com/liminalpurple/sticker-gallery/internal/auth"
	"github.com/liminalpurple/sticker-gallery/internal/config"
	"github.com/liminalpurple/sticker-gallery/internal/gallery"
	"github.com/liminalpurple/sticker-gallery/internal/host"
	"github.com/liminalpurple/sticker-gallery/internal/media"
	"github.com/liminalpurple/sticker-gallery/internal/session"
)

// App holds the long-lived application state: one session, one gate, one
// loader, one working set.
type App struct {
	Config  *config.Config
	Bridge  host.Bridge
	Session *session.Manager
	Client  *api.Client
	Gate    *auth.Gate
	Loader  *media.Loader
	Cache   *media.Cache
	Sets    *gallery.WorkingSet
	Actions *actions.Dispatcher

	// Viewport is the optional visibility-observation primitive. Nil means
	// every preview resolves immediately.
	Viewport media.Viewport
}

// New builds the application from configuration. The host bridge is the env
// bridge when the environment carries a credential, otherwise the detached
// public-mode bridge.
func New(cfg *config.Config) *App {
	var bridge host.Bridge
	if os.Getenv(host.InitDataVar) != "" {
		bridge = host.NewEnvBridge()
	} else {
		bridge = host.Detached()
	}
	return NewWithBridge(cfg, bridge)
}

// NewWithBridge builds the application over an explicit bridge.
func NewWithBridge(cfg *config.Config, bridge host.Bridge) *App {
	sess := session.NewManager(bridge)
	client := api.NewClient(cfg.API.BaseURL, cfg.API.BotName, cfg.API.Timeout())

	var cache *media.Cache
	if cfg.Cache.Enabled() {
		cache = media.NewCache(cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB, cfg.Cache.TTL())
	}

	loader := media.NewLoader(client, cache)
	sets := &gallery.WorkingSet{}

	a := &App{
		Config:  cfg,
		Bridge:  bridge,
		Session: sess,
		Client:  client,
		Gate:    auth.NewGate(sess, client, cfg.Auth.MaxCredentialAge),
		Loader:  loader,
		Cache:   cache,
		Sets:    sets,
	}

	a.Actions = actions.NewDispatcher(bridge, sess, client, sets, loader)
	a.Actions.Reload = func(ctx context.Context) error {
		_, _, err := a.LoadStickers(ctx)
		return err
	}

	return a
}

// LoadStickers runs one full gallery-load cycle. The auth check completes
// before the listing fetch is issued; an unauthorized result carries the gate
// verdict and no view.
func (a *App) LoadStickers(ctx context.Context) (gallery.View, auth.Result, error) {
	verdict := a.Gate.Check(ctx)
	if !verdict.Authorized() {
		return gallery.View{}, verdict, fmt.Errorf("not authorized: %s", verdict.Reason)
	}

	// Anonymous mode fetches without auth headers.
	credential := ""
	if !verdict.Anonymous {
		credential = a.Session.Credential()
	}

	records, err := gallery.Fetch(ctx, a.Client, credential)
	if err != nil {
		return gallery.View{}, verdict, err
	}

	a.Sets.Replace(records)
	log.Printf("Loaded %d sticker sets", len(records))

	view := gallery.Render(records)
	a.Loader.Mount(ctx, gallery.Nodes(view), a.Viewport)
	return view, verdict, nil
}

// Close releases held resources.
func (a *App) Close() {
	if a.Cache != nil {
		_ = a.Cache.Close()
	}
}
