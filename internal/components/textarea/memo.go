package textarea

import "container/list"

// Hasher is a cache key.
type Hasher interface {
	Hash() string
}

type entry[T any] struct {
	key   string
	value T
}

// MemoCache is a fixed-capacity LRU cache.
type MemoCache[H Hasher, T any] struct {
	capacity int
	items    map[string]*list.Element
	order    *list.List
}

// NewMemoCache returns a cache holding at most capacity values.
func NewMemoCache[H Hasher, T any](capacity int) *MemoCache[H, T] {
	return &MemoCache[H, T]{
		capacity: max(capacity, 1),
		items:    make(map[string]*list.Element),
		order:    list.New(),
	}
}

// Capacity returns the maximum number of values held.
func (m *MemoCache[H, T]) Capacity() int { return m.capacity }

// Size returns the number of values held.
func (m *MemoCache[H, T]) Size() int { return m.order.Len() }

// Get returns the value for key and marks it recently used.
func (m *MemoCache[H, T]) Get(key H) (T, bool) {
	if el, ok := m.items[key.Hash()]; ok {
		m.order.MoveToFront(el)
		return el.Value.(*entry[T]).value, true
	}
	var zero T
	return zero, false
}

// Set stores value for key, evicting the least recently used value when
// full.
func (m *MemoCache[H, T]) Set(key H, value T) {
	hash := key.Hash()
	if el, ok := m.items[hash]; ok {
		el.Value.(*entry[T]).value = value
		m.order.MoveToFront(el)
		return
	}
	if m.order.Len() >= m.capacity {
		if last := m.order.Back(); last != nil {
			m.order.Remove(last)
			delete(m.items, last.Value.(*entry[T]).key)
		}
	}
	m.items[hash] = m.order.PushFront(&entry[T]{key: hash, value: value})
}
