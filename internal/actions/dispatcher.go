// Package actions implements the per-item gallery operations: delete, share,
// open, and detail view.
package actions

import (
	"context"
	"fmt"
	"log"

	"github.com/liminalpurple/sticker-gallery/internal/gallery"
	"github.com/liminalpurple/sticker-gallery/internal/host"
	"github.com/liminalpurple/sticker-gallery/internal/media"
	"github.com/liminalpurple/sticker-gallery/internal/session"
)

// DeepLinkBase is the host deep-link prefix for sticker sets.
const DeepLinkBase = "https://t.me/addstickers/"

// Deleter is the backend delete call the dispatcher depends on.
type Deleter interface {
	DeleteStickerSet(ctx context.Context, credential string, id int64) error
}

// Dispatcher routes item actions to the backend and the host primitives.
type Dispatcher struct {
	bridge  host.Bridge
	session *session.Manager
	deleter Deleter
	sets    *gallery.WorkingSet
	loader  *media.Loader

	// Confirm asks the user before destructive operations. Defaults to
	// denying when unset, so tests and non-interactive callers never delete
	// by accident.
	Confirm func(prompt string) bool

	// Reload refreshes the gallery after a successful delete.
	Reload func(ctx context.Context) error
}

// NewDispatcher wires a dispatcher over the shared session, working set, and
// loader.
func NewDispatcher(bridge host.Bridge, sess *session.Manager, deleter Deleter, sets *gallery.WorkingSet, loader *media.Loader) *Dispatcher {
	return &Dispatcher{
		bridge:  bridge,
		session: sess,
		deleter: deleter,
		sets:    sets,
		loader:  loader,
	}
}

// DeleteSet deletes a sticker set after interactive confirmation. On success
// the gallery reloads; on failure the error surfaces without touching local
// state. Returns false when the user declined.
func (d *Dispatcher) DeleteSet(ctx context.Context, id int64) (bool, error) {
	title := fmt.Sprintf("#%d", id)
	if record, ok := d.sets.Find(id); ok {
		title = record.Title
	}

	if d.Confirm == nil || !d.Confirm(fmt.Sprintf("Delete sticker set %q?", title)) {
		return false, nil
	}

	if err := d.deleter.DeleteStickerSet(ctx, d.session.Credential(), id); err != nil {
		return false, err
	}

	d.bridge.ShowAlert(fmt.Sprintf("Sticker set %q deleted", title))

	if d.Reload != nil {
		if err := d.Reload(ctx); err != nil {
			return true, fmt.Errorf("deleted, but reload failed: %w", err)
		}
	}
	return true, nil
}

// Share opens the host share sheet with a templated deep link.
func (d *Dispatcher) Share(name string, title string) error {
	link := DeepLinkBase + name
	text := fmt.Sprintf("🎨 Check out my sticker set %q: %s", title, link)
	return d.bridge.Share(text, link)
}

// Open opens the sticker set through the host's external-link primitive.
func (d *Dispatcher) Open(name string) error {
	return d.bridge.OpenLink(DeepLinkBase + name)
}

// ViewDetail looks a record up in the working set and returns its expanded
// view with all media resolved through the shared loader. A lookup miss is a
// silent no-op with a logged diagnostic.
func (d *Dispatcher) ViewDetail(ctx context.Context, id int64) (gallery.Detail, bool) {
	record, ok := d.sets.Find(id)
	if !ok {
		log.Printf("Detail lookup miss for sticker set %d", id)
		return gallery.Detail{}, false
	}

	detail := gallery.RenderDetail(record)
	d.loader.Mount(ctx, detail.Nodes, nil)
	return detail, true
}
