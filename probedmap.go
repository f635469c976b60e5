package probedmap

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/constraints"
)

// DefaultCapacity is a small prime, which keeps modulo hashing from
// clustering on common key strides.
const DefaultCapacity = 11

var (
	// ErrTableFull is returned by Put when a full probe cycle finds no
	// writable slot.
	ErrTableFull = errors.New("table is full")
	// ErrInvalidCapacity is returned by the constructors for capacity < 1.
	ErrInvalidCapacity = errors.New("capacity must be positive")
)

type slotState uint8

const (
	slotEmpty slotState = iota
	slotOccupied
	slotDeleted
)

// Map is a fixed-capacity hash map using open addressing with linear
// probing. Deleted entries leave a tombstone so that probe sequences passing
// through them keep searching.
//
// A Map is not safe for concurrent use.
type Map[K comparable, V any] struct {
	states []slotState
	keys   []K
	values []V

	hash       HashFunc[K]
	capacity   int
	live       int
	tombstones int

	log     *logrus.Entry
	metrics *mapMetrics
}

// New creates an empty map with exactly capacity slots. A nil hash selects
// MapHash.
func New[K comparable, V any](capacity int, hash HashFunc[K], opts ...Option) (*Map[K, V], error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}
	if hash == nil {
		hash = MapHash[K]()
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	var metrics *mapMetrics
	if o.registry != nil {
		var err error
		if metrics, err = newMapMetrics(o.registry, o.name); err != nil {
			return nil, fmt.Errorf("registering metrics for %q: %w", o.name, err)
		}
	}

	return &Map[K, V]{
		states:   make([]slotState, capacity),
		keys:     make([]K, capacity),
		values:   make([]V, capacity),
		hash:     hash,
		capacity: capacity,
		log:      o.logger.WithField("capacity", capacity),
		metrics:  metrics,
	}, nil
}

// NewInteger creates an empty map over integer keys hashed by key mod
// capacity.
func NewInteger[K constraints.Integer, V any](capacity int, opts ...Option) (*Map[K, V], error) {
	return New[K, V](capacity, Modulo[K](), opts...)
}

// start returns the first slot of key's probe sequence.
func (m *Map[K, V]) start(key K) int {
	idx := m.hash(key, m.capacity)
	if idx < 0 || idx >= m.capacity {
		panic(fmt.Sprintf("probedmap: hash returned index %d outside [0, %d)", idx, m.capacity))
	}
	return idx
}

// probe is the linear probing successor.
func (m *Map[K, V]) probe(idx int) int {
	idx++
	if idx == m.capacity {
		return 0
	}
	return idx
}

// find returns the slot holding key.
func (m *Map[K, V]) find(key K) (int, bool) {
	idx, visited, ok := m.walk(key)
	m.metrics.observeFind(visited, ok, !ok && visited == m.capacity && m.states[idx] != slotEmpty)
	return idx, ok
}

// walk follows key's probe sequence and returns the last slot inspected and
// the number of slots inspected. It stops on a match, on the first empty
// slot, or after capacity steps.
func (m *Map[K, V]) walk(key K) (idx, visited int, found bool) {
	idx = m.start(key)
	for visited = 1; ; visited++ {
		switch m.states[idx] {
		case slotEmpty:
			return idx, visited, false
		case slotOccupied:
			if m.keys[idx] == key {
				return idx, visited, true
			}
		}
		if visited == m.capacity {
			return idx, visited, false
		}
		idx = m.probe(idx)
	}
}

// Put inserts key with value, or overwrites the value if key is present.
// A new key takes the first deleted or empty slot on its probe sequence. The
// search for an existing copy of key continues past deleted slots, so a key
// is never stored twice. It returns an error wrapping ErrTableFull when no
// slot can take the key.
func (m *Map[K, V]) Put(key K, value V) error {
	free := -1
	visited := 0
	idx := m.start(key)
	for visited < m.capacity {
		visited++
		st := m.states[idx]
		if st == slotEmpty {
			if free < 0 {
				free = idx
			}
			break
		}
		if st == slotDeleted {
			if free < 0 {
				free = idx
			}
		} else if m.keys[idx] == key {
			m.values[idx] = value
			m.metrics.observePut(visited, outcomeUpdated)
			return nil
		}
		idx = m.probe(idx)
	}

	if free < 0 {
		m.metrics.observePut(visited, outcomeTableFull)
		m.log.WithField("key", key).Debug("rejecting put, no free slot")
		return fmt.Errorf("%w: key %v, %d slots visited", ErrTableFull, key, visited)
	}

	if m.states[free] == slotDeleted {
		m.tombstones--
	}
	m.states[free] = slotOccupied
	m.keys[free] = key
	m.values[free] = value
	m.live++
	m.metrics.observePut(visited, outcomeInserted)
	return nil
}

// Get returns the value stored under key. The boolean reports whether key
// is present, so a stored zero value is distinguishable from a miss.
func (m *Map[K, V]) Get(key K) (V, bool) {
	idx, ok := m.find(key)
	if !ok {
		var zero V
		return zero, false
	}
	return m.values[idx], true
}

// Delete removes key and reports whether it was present. The vacated slot
// becomes a tombstone.
func (m *Map[K, V]) Delete(key K) bool {
	idx, ok := m.find(key)
	if !ok {
		return false
	}

	var (
		zeroK K
		zeroV V
	)
	m.states[idx] = slotDeleted
	m.keys[idx] = zeroK
	m.values[idx] = zeroV
	m.live--
	m.tombstones++
	return true
}

// Contains reports whether key is present.
func (m *Map[K, V]) Contains(key K) bool {
	_, ok := m.find(key)
	return ok
}

// Len returns the number of live entries.
func (m *Map[K, V]) Len() int { return m.live }

// Cap returns the fixed number of slots.
func (m *Map[K, V]) Cap() int { return m.capacity }

// Tombstones returns the number of slots vacated by Delete and not yet
// reused.
func (m *Map[K, V]) Tombstones() int { return m.tombstones }

// LoadFactor returns the ratio of live entries to capacity.
func (m *Map[K, V]) LoadFactor() float64 {
	return float64(m.live) / float64(m.capacity)
}

// Range calls fn for every live entry in slot order until fn returns false.
// fn must not modify the map.
func (m *Map[K, V]) Range(fn func(key K, value V) bool) {
	for i, st := range m.states {
		if st != slotOccupied {
			continue
		}
		if !fn(m.keys[i], m.values[i]) {
			return
		}
	}
}
