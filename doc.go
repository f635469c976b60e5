/*
Package probedmap provides a fixed-capacity hash map using open addressing with
linear probing.

All entries live in flat slot arrays sized once at construction. The map never
grows: once every slot holds a live entry, Put reports ErrTableFull.

Basic usage:

	import "github.com/theflywheel/probedmap"

	// Integer keys hashed by key mod capacity
	m, err := probedmap.NewInteger[int, string](probedmap.DefaultCapacity)
	if err != nil {
		log.Fatal(err)
	}

	// Insert data
	if err := m.Put(1, "one"); err != nil {
		if errors.Is(err, probedmap.ErrTableFull) {
			// reject the insert
		}
	}

	// Retrieve data
	v, ok := m.Get(1)
	if ok {
		fmt.Println("Value:", v)
	}

	// Remove data
	m.Delete(1)

Features:

  - Fixed capacity, no resizing
  - Generic keys with a pluggable HashFunc (Modulo, XXHash, MapHash)
  - Tombstones on delete, reused by later inserts
  - Every operation terminates within capacity probe steps
  - Not safe for concurrent use; callers must serialize access

Implementation Details:

Each slot carries a state tag (empty, occupied or deleted) alongside the
parallel key and value arrays. A lookup walks the probe sequence from the key's
home slot and stops at the first empty slot, which proves the key was never
stored further along. Deleted slots do not stop a lookup, since a key that
collided with the deleted one may sit beyond it. An insert takes the first
empty or deleted slot it meets, or overwrites the value in place when it meets
the key itself.

Probing is bounded by a step counter rather than by returning to the home slot,
so a table with no empty slots is scanned exactly once.
*/
package probedmap
