package ecs

import (
	"testing"

	"github.com/milk9111/polarity/ecs/component"
)

func TestWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, w.CreateEntity())
			}
			if w.EntityCount() != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, w.EntityCount())
			}
			if c.destroyIndex < 0 {
				return
			}
			dead := ents[c.destroyIndex]
			if !w.DestroyEntity(dead) {
				t.Fatalf("DestroyEntity should return true for alive entity")
			}
			if w.IsAlive(dead) {
				t.Fatalf("entity should not be alive after destruction")
			}
			if w.DestroyEntity(dead) {
				t.Fatalf("second DestroyEntity should return false")
			}
		})
	}
}

func TestWorldReusesSlotWithNewGeneration(t *testing.T) {
	w := NewWorld()
	old := w.CreateEntity()
	w.DestroyEntity(old)
	reused := w.CreateEntity()

	if reused.id() != old.id() {
		t.Fatalf("expected slot %d to be reused, got %d", old.id(), reused.id())
	}
	if reused == old || w.IsAlive(old) {
		t.Fatalf("stale handle %v must not alias %v", old, reused)
	}
	if !reused.Valid() || Entity(0).Valid() {
		t.Fatalf("validity check broken")
	}
}

func TestWorldComponents(t *testing.T) {
	w := NewWorld()
	ints := component.NewComponent[int]()
	strs := component.NewComponent[string]()

	e1 := w.CreateEntity()
	e2 := w.CreateEntity()

	tests := []struct {
		name  string
		setup func() error
		check func(t *testing.T)
	}{
		{
			name:  "add_and_get",
			setup: func() error { return Add(w, e1, ints, 10) },
			check: func(t *testing.T) {
				v, ok := Get(w, e1, ints)
				if !ok || v != 10 {
					t.Fatalf("expected 10, got %v ok=%v", v, ok)
				}
			},
		},
		{
			name:  "replace",
			setup: func() error { return Add(w, e1, ints, 11) },
			check: func(t *testing.T) {
				if v, _ := Get(w, e1, ints); v != 11 {
					t.Fatalf("expected 11, got %v", v)
				}
			},
		},
		{
			name: "separate_kinds",
			setup: func() error {
				if err := Add(w, e1, strs, "a"); err != nil {
					return err
				}
				return Add(w, e2, strs, "b")
			},
			check: func(t *testing.T) {
				if !Has(w, e1, strs) || !Has(w, e2, strs) {
					t.Fatalf("expected both entities to have string component")
				}
				if Has(w, e2, ints) {
					t.Fatalf("e2 never got an int")
				}
			},
		},
		{
			name:  "remove",
			setup: func() error { return nil },
			check: func(t *testing.T) {
				if !Remove(w, e1, strs) {
					t.Fatalf("remove should report true")
				}
				if Remove(w, e1, strs) {
					t.Fatalf("second remove should report false")
				}
				if v, _ := Get(w, e2, strs); v != "b" {
					t.Fatalf("swap-remove corrupted e2: %q", v)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.setup(); err != nil {
				t.Fatalf("setup failed: %v", err)
			}
			tc.check(t)
		})
	}
}

func TestWorldComponentErrors(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()
	e := w.CreateEntity()
	w.DestroyEntity(e)

	if err := Add(w, e, h, 1); err != component.ErrEntityNotAlive {
		t.Fatalf("expected ErrEntityNotAlive, got %v", err)
	}
	var zero component.ComponentHandle[int]
	if err := Add(w, w.CreateEntity(), zero, 1); err != component.ErrInvalidComponentKind {
		t.Fatalf("expected ErrInvalidComponentKind, got %v", err)
	}
}

func TestQuery(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T)
	}{
		{
			name: "intersection",
			run: func(t *testing.T) {
				w := NewWorld()
				a := component.NewComponent[int]()
				b := component.NewComponent[int]()
				e1, e2, e3 := w.CreateEntity(), w.CreateEntity(), w.CreateEntity()
				_ = Add(w, e1, a, 1)
				_ = Add(w, e2, a, 2)
				_ = Add(w, e2, b, 3)
				_ = Add(w, e3, b, 4)

				res := w.Query(a.Kind(), b.Kind())
				if len(res) != 1 || res[0] != e2 {
					t.Fatalf("expected only e2, got %v", res)
				}
			},
		},
		{
			name: "ignores_dead_entities",
			run: func(t *testing.T) {
				w := NewWorld()
				a := component.NewComponent[int]()
				e := w.CreateEntity()
				_ = Add(w, e, a, 1)
				w.DestroyEntity(e)
				if res := w.Query(a.Kind()); len(res) != 0 {
					t.Fatalf("expected empty result after destroy, got %v", res)
				}
			},
		},
		{
			name: "missing_store_returns_nil",
			run: func(t *testing.T) {
				w := NewWorld()
				a := component.NewComponent[int]()
				b := component.NewComponent[int]()
				_ = Add(w, w.CreateEntity(), a, 1)
				if res := w.Query(a.Kind(), b.Kind()); res != nil {
					t.Fatalf("expected nil when other store missing, got %v", res)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, tc.run)
	}
}

func TestForEachWritesBack(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()
	e1, e2 := w.CreateEntity(), w.CreateEntity()
	_ = Add(w, e1, h, 1)
	_ = Add(w, e2, h, 2)

	ForEach(w, h, func(_ Entity, v *int) { *v *= 10 })

	if v, _ := Get(w, e1, h); v != 10 {
		t.Fatalf("e1 expected 10, got %d", v)
	}
	if v, _ := Get(w, e2, h); v != 20 {
		t.Fatalf("e2 expected 20, got %d", v)
	}
	if e, v, ok := First(w, h); !ok || (e != e1 && e != e2) || v%10 != 0 {
		t.Fatalf("First returned %v %d %v", e, v, ok)
	}
}

type recordSystem struct {
	name  string
	trace *[]string
	emit  bool
}

func (s *recordSystem) Update(w *World) {
	*s.trace = append(*s.trace, s.name)
	if s.emit {
		w.Events().Push(Event{Type: EventPolarityChanged})
	}
	*s.trace = append(*s.trace, s.name+":"+string(rune('0'+len(w.Events().Items()))))
}

func TestWorldUpdateOrderAndEvents(t *testing.T) {
	var trace []string
	w := NewWorld()
	w.AddSystem(&recordSystem{name: "a", trace: &trace, emit: true})
	w.AddSystem(nil)
	w.AddSystem(&recordSystem{name: "b", trace: &trace})

	w.Update()
	want := []string{"a", "a:1", "b", "b:1"}
	if len(trace) != len(want) {
		t.Fatalf("trace %v, want %v", trace, want)
	}
	for i := range want {
		if trace[i] != want[i] {
			t.Fatalf("trace %v, want %v", trace, want)
		}
	}
	if n := len(w.Events().Items()); n != 0 {
		t.Fatalf("events should be flushed after Update, got %d", n)
	}
	if len(w.Systems()) != 2 {
		t.Fatalf("nil system should be ignored")
	}
}
