package ecs

// store is a typed component container that iterates in registration
// order. Removal shifts later entries down instead of swapping, so the
// order survives runtime removal.
type store[T any] struct {
	index    map[Entity]int
	entities []Entity
	values   []T
}

func newStore[T any]() *store[T] {
	return &store[T]{index: make(map[Entity]int)}
}

func (s *store[T]) has(e Entity) bool {
	_, ok := s.index[e]
	return ok
}

func (s *store[T]) get(e Entity) (T, bool) {
	i, ok := s.index[e]
	if !ok {
		var zero T
		return zero, false
	}
	return s.values[i], true
}

// set replaces an existing value in place or appends a new one.
func (s *store[T]) set(e Entity, v T) {
	if i, ok := s.index[e]; ok {
		s.values[i] = v
		return
	}
	s.index[e] = len(s.entities)
	s.entities = append(s.entities, e)
	s.values = append(s.values, v)
}

func (s *store[T]) remove(e Entity) bool {
	i, ok := s.index[e]
	if !ok {
		return false
	}
	delete(s.index, e)
	copy(s.entities[i:], s.entities[i+1:])
	copy(s.values[i:], s.values[i+1:])
	last := len(s.entities) - 1
	var zero T
	s.values[last] = zero
	s.entities = s.entities[:last]
	s.values = s.values[:last]
	for j := i; j < last; j++ {
		s.index[s.entities[j]] = j
	}
	return true
}

func (s *store[T]) len() int {
	return len(s.entities)
}

// each visits entries in order until fn returns false.
func (s *store[T]) each(fn func(Entity, T) bool) {
	for i, e := range s.entities {
		if !fn(e, s.values[i]) {
			return
		}
	}
}
