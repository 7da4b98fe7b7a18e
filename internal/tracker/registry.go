package tracker

import (
	"sort"
	"sync"

	"github.com/starford/ansuz/internal/models"
)

// Predicate decides whether an observer's animation should play for the
// given section geometry, scroll offset, and viewport height. Geometry is
// re-evaluated from the caller's fresh measurements on every Fire pass.
type Predicate func(b models.SectionBounds, rawY, viewportH float64) bool

// Reveal returns the standard enter-viewport predicate: true once the
// section's top edge has risen above the given fraction of the viewport.
func Reveal(startFraction float64) Predicate {
	return func(b models.SectionBounds, rawY, viewportH float64) bool {
		return rawY+viewportH*startFraction >= b.TopOffset
	}
}

type observer struct {
	target  string
	section string
	pred    Predicate
	armed   bool
}

// Registry is an explicit scroll-trigger registry. Observers are grouped by
// view so that everything a view registered can be dropped when that view is
// destroyed; there is no hidden global state.
//
// An observer fires once when its predicate turns true, then rearms when the
// predicate turns false again (play/reverse semantics).
type Registry struct {
	mu    sync.Mutex
	views map[string][]*observer
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{views: make(map[string][]*observer)}
}

// Register binds an observer to a view. target names the animation to cue;
// section names the geometry the predicate runs against.
func (r *Registry) Register(view, target, section string, pred Predicate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views[view] = append(r.views[view], &observer{
		target:  target,
		section: section,
		pred:    pred,
		armed:   true,
	})
}

// Has reports whether the view has any registered observers.
func (r *Registry) Has(view string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.views[view]
	return ok
}

// DropView unregisters every observer the view owns.
func (r *Registry) DropView(view string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.views, view)
}

// Fire evaluates the view's observers against fresh geometry and returns the
// targets whose predicate newly turned true, sorted for determinism.
func (r *Registry) Fire(view string, rawY, viewportH float64, sections []models.SectionBounds) []string {
	bounds := make(map[string]models.SectionBounds, len(sections))
	for _, s := range sections {
		bounds[s.ID] = s
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var fired []string
	for _, o := range r.views[view] {
		b, ok := bounds[o.section]
		if !ok {
			continue
		}
		if o.pred(b, rawY, viewportH) {
			if o.armed {
				o.armed = false
				fired = append(fired, o.target)
			}
		} else {
			o.armed = true
		}
	}
	sort.Strings(fired)
	return fired
}
