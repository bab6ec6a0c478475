package shape

import "fmt"

// Registry maps every shape kind to its behavior object. It is immutable
// after construction: the utils map is never exposed and there is no
// registration API past NewRegistry, so a shared behavior cannot be patched
// at runtime.
//
// All behaviors of one registry share one bounds cache, so use one Registry
// per document (the collab hub keeps one per room, the editor one per
// instance).
type Registry struct {
	utils map[Kind]Util
	cache *BoundsCache
}

// binder is satisfied by every util via baseUtil.
type binder interface {
	bind(self Util, reg *Registry)
}

// NewRegistry constructs the full behavior table over the closed kind set.
func NewRegistry() *Registry {
	r := &Registry{
		utils: make(map[Kind]Util, len(AllKinds)),
		cache: NewBoundsCache(),
	}

	r.register(newCircleUtil())
	r.register(newRectangleUtil())
	r.register(newEllipseUtil())
	r.register(newLineUtil())
	r.register(newRayUtil())
	r.register(newPolylineUtil())
	r.register(newDrawUtil())
	r.register(newArrowUtil())
	r.register(newGroupUtil())
	r.register(newDotUtil())
	r.register(newTextUtil())

	return r
}

func (r *Registry) register(u Util) {
	if _, dup := r.utils[u.Kind()]; dup {
		panic(fmt.Sprintf("shape: duplicate util for kind %q", u.Kind()))
	}
	u.(binder).bind(u, r)
	r.utils[u.Kind()] = u
}

// Lookup resolves the behavior for a kind. An unregistered kind is a
// programming error: the kind set is closed, so this panics rather than
// silently falling back.
func (r *Registry) Lookup(kind Kind) Util {
	u, ok := r.utils[kind]
	if !ok {
		panic(fmt.Sprintf("shape: no util registered for kind %q", kind))
	}
	return u
}

// UtilFor resolves the behavior for a shape instance.
func (r *Registry) UtilFor(s *Shape) Util {
	return r.Lookup(s.Kind)
}

// Create builds a new shape of the given kind via its behavior.
func (r *Registry) Create(kind Kind, props *Shape) *Shape {
	return r.Lookup(kind).Create(props)
}

// Invalidate drops the cached bounds for a shape ID. The document store calls
// this when it mutates a shape outside the behavior operations (e.g. on
// deletion or direct replacement).
func (r *Registry) Invalidate(id string) {
	r.cache.Invalidate(id)
}

// InvalidateAll empties the bounds cache. Callers that swap out an entire
// document must use this: the new document can reuse shape IDs with
// different geometry.
func (r *Registry) InvalidateAll() {
	r.cache.Clear()
}
