package main

import (
	"fmt"
	"log/slog"
	"slices"
)

// Handle identifies an endpoint element. Handles are assigned by the host
// and never reused, so two endpoints are the same iff their handles match.
type Handle int

// Root is the handle of the document itself.
const Root Handle = 0

const defaultCategory = "arrow"

// ArrowConfig is fixed when an arrow is created.
type ArrowConfig struct {
	ID       string
	Category string
	Name     string
	Within   Handle
}

// Arrow is a directed connector from one endpoint to another.
type Arrow struct {
	ID     string
	Config ArrowConfig
	From   Handle
	To     Handle

	observed  *edges
	hidden    bool
	surface   *Surface
	destroyed bool
}

// Hidden reports whether the last observation found a degenerate endpoint.
func (a *Arrow) Hidden() bool { return a.hidden }

func (a *Arrow) Surface() *Surface { return a.surface }

func (a *Arrow) Destroyed() bool { return a.destroyed }

// SurfaceHost places surfaces into the document and takes them out again.
type SurfaceHost interface {
	AttachSurface(s *Surface)
	DetachSurface(s *Surface)
}

// Registry owns every arrow and the per-endpoint arrow sets. It is not safe
// for concurrent use; callers drive it from a single goroutine.
type Registry struct {
	layout Layout
	host   SurfaceHost

	attached map[Handle][]*Arrow
	ids      map[string]*Arrow
	next     int
}

func NewRegistry(layout Layout, host SurfaceHost) *Registry {
	return &Registry{
		layout:   layout,
		host:     host,
		attached: make(map[Handle][]*Arrow),
		ids:      make(map[string]*Arrow),
	}
}

// Arrows returns the arrows currently attached to h, oldest first.
func (r *Registry) Arrows(h Handle) []*Arrow {
	return append([]*Arrow(nil), r.attached[h]...)
}

// Lookup finds a live arrow by id.
func (r *Registry) Lookup(id string) (*Arrow, bool) {
	a, ok := r.ids[id]
	return a, ok
}

// All returns every live arrow, grouped by endpoint handle.
func (r *Registry) All() []*Arrow {
	seen := make(map[*Arrow]bool)
	var out []*Arrow
	for _, h := range r.handles() {
		for _, a := range r.attached[h] {
			if !seen[a] {
				seen[a] = true
				out = append(out, a)
			}
		}
	}
	return out
}

func (r *Registry) handles() []Handle {
	hs := make([]Handle, 0, len(r.attached))
	for h := range r.attached {
		hs = append(hs, h)
	}
	slices.Sort(hs)
	return hs
}

// nextID hands out arrow-N from a counter that only grows. Ids taken by
// restored arrows are skipped.
func (r *Registry) nextID() string {
	for {
		id := fmt.Sprintf("arrow-%d", r.next)
		r.next++
		if _, taken := r.ids[id]; !taken {
			return id
		}
	}
}

// Connect creates one arrow per pair (a, b) with a from from and b from to.
// Once a has been visited as a from element it is never used as a target
// later in the same call, which also rules out self pairs.
func (r *Registry) Connect(from, to []Handle, cfg ArrowConfig) []*Arrow {
	if cfg.Category == "" {
		cfg.Category = defaultCategory
	}

	var created []*Arrow
	done := make(map[Handle]bool, len(from))
	for _, a := range from {
		done[a] = true
		for _, b := range to {
			if done[b] {
				continue
			}
			c := cfg
			switch {
			case cfg.ID == "":
				c.ID = r.nextID()
			case len(created) > 0:
				c.ID = fmt.Sprintf("%s-%d", cfg.ID, len(created))
			}
			created = append(created, r.create(a, b, c))
		}
	}
	return created
}

func (r *Registry) create(from, to Handle, cfg ArrowConfig) *Arrow {
	if _, taken := r.ids[cfg.ID]; taken {
		Logger().Warn("arrow id already in use", slog.String("id", cfg.ID))
	}

	a := &Arrow{
		ID:      cfg.ID,
		Config:  cfg,
		From:    from,
		To:      to,
		surface: newSurface(cfg.ID, cfg.Within),
	}
	r.ids[a.ID] = a
	r.attached[from] = append(r.attached[from], a)
	r.attached[to] = append(r.attached[to], a)
	if r.host != nil {
		r.host.AttachSurface(a.surface)
	}

	arrowsCreated.Inc()
	arrowsLive.Inc()
	Logger().Debug("arrow created",
		slog.String("id", a.ID), slog.Int("from", int(from)), slog.Int("to", int(to)))

	r.Update(a)
	return a
}

// Update re-observes the arrow's endpoints and redraws it when they moved.
// It reports whether the surface was redrawn.
func (r *Registry) Update(a *Arrow) bool {
	if a.destroyed {
		return false
	}

	changed, hidden := a.observe(r.layout)
	switch {
	case hidden:
		updateSkips.WithLabelValues("hidden").Inc()
		return false
	case !changed:
		updateSkips.WithLabelValues("unchanged").Inc()
		return false
	}

	from, to := a.observed.from(), a.observed.to()
	fromCenter, toCenter := from.Center(), to.Center()
	toPt := borderIntersection(fromCenter.X, fromCenter.Y, to)
	fromPt := borderIntersection(toCenter.X, toCenter.Y, from)

	a.surface.render(a, fromPt, toPt, fromCenter, toCenter)
	renders.Inc()
	return true
}

// Destroy detaches the arrow from both endpoints and drops its surface.
// Destroying an arrow twice is a no-op.
func (r *Registry) Destroy(a *Arrow) {
	if a.destroyed {
		return
	}
	a.destroyed = true

	r.detach(a.From, a)
	r.detach(a.To, a)
	if r.ids[a.ID] == a {
		delete(r.ids, a.ID)
	}
	if r.host != nil {
		r.host.DetachSurface(a.surface)
	}

	arrowsDestroyed.Inc()
	arrowsLive.Dec()
	Logger().Debug("arrow destroyed", slog.String("id", a.ID))
}

func (r *Registry) detach(h Handle, a *Arrow) {
	set := r.attached[h]
	for i, x := range set {
		if x == a {
			set = append(set[:i:i], set[i+1:]...)
			break
		}
	}
	if len(set) == 0 {
		delete(r.attached, h)
		return
	}
	r.attached[h] = set
}

// Teardown destroys every arrow attached to h. The host calls it when h
// leaves the document.
func (r *Registry) Teardown(h Handle) {
	r.RemoveAll(h)
}

// UpdateAll updates every arrow attached to h and returns how many were
// redrawn.
func (r *Registry) UpdateAll(h Handle) int {
	n := 0
	for _, a := range r.Arrows(h) {
		if r.Update(a) {
			n++
		}
	}
	return n
}

// RemoveAll destroys every arrow attached to h.
func (r *Registry) RemoveAll(h Handle) {
	for _, a := range r.Arrows(h) {
		r.Destroy(a)
	}
}

// HostedBy returns the arrows whose surfaces live inside container h.
func (r *Registry) HostedBy(h Handle) []*Arrow {
	var out []*Arrow
	for _, a := range r.All() {
		if a.Config.Within == h {
			out = append(out, a)
		}
	}
	return out
}
