package ecs

import "github.com/milk9111/polarity/ecs/component"

// Add sets e's component for handle, replacing any previous value.
func Add[T any](w *World, e Entity, handle component.ComponentHandle[T], value T) error {
	return w.addComponent(e, handle.Kind().ID(), value)
}

func Remove[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	return w.removeComponent(e, handle.Kind().ID())
}

func Has[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	_, ok := w.getComponent(e, handle.Kind().ID())
	return ok
}

func Get[T any](w *World, e Entity, handle component.ComponentHandle[T]) (T, bool) {
	var zero T
	value, ok := w.getComponent(e, handle.Kind().ID())
	if !ok {
		return zero, false
	}
	cast, ok := value.(T)
	if !ok {
		return zero, false
	}
	return cast, true
}

// First returns the first live entity carrying handle.
func First[T any](w *World, handle component.ComponentHandle[T]) (Entity, T, bool) {
	var zero T
	for _, e := range w.Query(handle.Kind()) {
		if v, ok := Get(w, e, handle); ok {
			return e, v, true
		}
	}
	return 0, zero, false
}

// ForEach calls fn for every entity carrying handle. Changes made through the
// pointer are stored back.
func ForEach[T any](w *World, handle component.ComponentHandle[T], fn func(Entity, *T)) {
	if fn == nil {
		return
	}
	for _, e := range w.Query(handle.Kind()) {
		v, ok := Get(w, e, handle)
		if !ok {
			continue
		}
		fn(e, &v)
		_ = Add(w, e, handle, v)
	}
}
