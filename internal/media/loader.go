// Package media implements the lazy media-loading pipeline for gallery
// preview slots: visibility-gated resolution, static raster and animated
// vector load paths, and per-node failure containment.
package media

import (
	"context"
	"log"
	"sync"

	"golang.org/x/time/rate"
)

// Kind distinguishes the two media load paths.
type Kind int

const (
	Static Kind = iota
	Animated
)

func (k Kind) String() string {
	if k == Animated {
		return "animated"
	}
	return "static"
}

// Descriptor describes one preview medium. Derived per render, never
// persisted.
type Descriptor struct {
	Kind          Kind
	SourceLocator string
	Glyph         string
}

// Node associates a placeholder slot with an unresolved descriptor. It
// transitions Pending -> Resolved exactly once; a claimed node suppresses any
// further fetch, and the target is assigned together with the result fields so
// a node observed as resolved always carries its outcome.
type Node struct {
	ID string
	Descriptor

	mu      sync.Mutex
	target  string
	claimed bool

	// Resolution results. Failed nodes fall back to the glyph display.
	// Written only under mu, before the target is assigned; stable once
	// Resolved reports true.
	Raster *Raster
	Anim   *Animation
	Failed bool
}

// NewNode creates a pending node for a slot.
func NewNode(id string, d Descriptor) *Node {
	return &Node{ID: id, Descriptor: d}
}

// Resolved reports whether the node already has an assigned load target.
func (n *Node) Resolved() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.target != ""
}

// Target returns the assigned load target, empty while pending.
func (n *Node) Target() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.target
}

// claim marks the node in flight, returning false if already claimed.
func (n *Node) claim() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.claimed {
		return false
	}
	n.claimed = true
	return true
}

// complete publishes the resolution outcome and assigns the load target in
// one critical section, so Resolved never reports true before the result
// fields are readable.
func (n *Node) complete(raster *Raster, anim *Animation, failed bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Raster = raster
	n.Anim = anim
	n.Failed = failed
	n.target = n.SourceLocator
}

// Viewport is the host visibility-observation primitive. A nil Viewport means
// the environment does not support observation and everything resolves
// immediately.
type Viewport interface {
	// Observe registers fn to run once the identified slot nears the
	// viewport. Implementations apply their own lookahead margin.
	Observe(id string, fn func())

	// Intersects reports whether the slot's geometry already intersects the
	// viewport at registration time.
	Intersects(id string) bool

	// Unobserve deregisters the slot.
	Unobserve(id string)
}

// Fetcher downloads media bytes for a source locator.
type Fetcher interface {
	FetchMedia(ctx context.Context, locator string) ([]byte, error)
}

// Loader resolves pending nodes at most once each. One loader is created per
// process and reused across renders so repeated gallery reloads do not leak
// observer registrations.
type Loader struct {
	fetcher Fetcher
	cache   *Cache
	limiter *rate.Limiter

	mu    sync.Mutex
	nodes map[string]*Node
}

// NewLoader creates a loader. cache may be nil for uncached operation.
func NewLoader(fetcher Fetcher, cache *Cache) *Loader {
	return &Loader{
		fetcher: fetcher,
		cache:   cache,
		limiter: rate.NewLimiter(rate.Limit(20), 5),
		nodes:   make(map[string]*Node),
	}
}

// Mount registers a render pass's nodes and schedules their resolution.
// With a viewport, nodes already intersecting it resolve immediately and the
// rest wait for their visibility callback. Without one, everything resolves
// now. Mounting the same gallery twice re-fetches nothing.
func (l *Loader) Mount(ctx context.Context, nodes []*Node, vp Viewport) {
	l.mu.Lock()
	l.nodes = make(map[string]*Node, len(nodes))
	for _, n := range nodes {
		l.nodes[n.ID] = n
	}
	l.mu.Unlock()

	if vp == nil {
		for _, n := range nodes {
			l.resolve(ctx, n)
		}
		return
	}

	for _, n := range nodes {
		if n.Resolved() {
			continue
		}
		node := n
		if vp.Intersects(node.ID) {
			// Above-the-fold content; visibility callbacks may not fire
			// promptly for slots that are already on screen.
			l.resolve(ctx, node)
			vp.Unobserve(node.ID)
			continue
		}
		vp.Observe(node.ID, func() {
			l.resolve(ctx, node)
			vp.Unobserve(node.ID)
		})
	}
}

// Node returns the mounted node with the given id.
func (l *Loader) Node(id string) (*Node, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	n, ok := l.nodes[id]
	return n, ok
}

// ResolveAll forces resolution of every currently pending node, bypassing
// visibility gating. Escape hatch for debugging and as a fallback entry
// point.
func (l *Loader) ResolveAll(ctx context.Context) {
	l.mu.Lock()
	pending := make([]*Node, 0, len(l.nodes))
	for _, n := range l.nodes {
		pending = append(pending, n)
	}
	l.mu.Unlock()

	for _, n := range pending {
		l.resolve(ctx, n)
	}
}

// resolve runs one node through its load path. Failures never propagate past
// the node: the slot falls back to its glyph.
func (l *Loader) resolve(ctx context.Context, n *Node) {
	if !n.claim() {
		return
	}

	data, err := l.fetch(ctx, n.SourceLocator)
	if err != nil {
		log.Printf("Media fetch failed for %s: %v", n.ID, err)
		n.complete(nil, nil, true)
		return
	}

	switch n.Kind {
	case Animated:
		anim, err := DecodeAnimation(data)
		if err != nil {
			log.Printf("Animation decode failed for %s: %v", n.ID, err)
			n.complete(nil, nil, true)
			return
		}
		// Playback inside the slot container loops and starts on its own.
		anim.Loop = true
		anim.Autoplay = true
		n.complete(nil, anim, false)
	default:
		raster, err := DecodeRaster(data)
		if err != nil {
			log.Printf("Image decode failed for %s: %v", n.ID, err)
			n.complete(nil, nil, true)
			return
		}
		n.complete(raster, nil, false)
	}
}

func (l *Loader) fetch(ctx context.Context, locator string) ([]byte, error) {
	if l.cache != nil {
		if data, ok := l.cache.Get(ctx, locator); ok {
			return data, nil
		}
	}

	if err := l.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	data, err := l.fetcher.FetchMedia(ctx, locator)
	if err != nil {
		return nil, err
	}

	if l.cache != nil {
		l.cache.Put(ctx, locator, data)
	}
	return data, nil
}
