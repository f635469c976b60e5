package probedmap

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestModulo(t *testing.T) {
	h := Modulo[int]()
	require.Equal(t, 1, h(1, 10))
	require.Equal(t, 1, h(11, 10))
	require.Equal(t, 0, h(0, 10))
	require.Equal(t, 9, h(-1, 10))
	require.Equal(t, 0, h(-10, 10))
	require.Equal(t, 0, h(123, 1))

	hu := Modulo[uint8]()
	require.Equal(t, 255, hu(255, 300))
	require.Equal(t, 5, hu(255, 10))

	h64 := Modulo[int64]()
	require.Equal(t, 3, h64(math.MinInt64, 11))
	require.Equal(t, 7, h64(math.MaxInt64, 11))
}

func TestHashFuncsStayInRange(t *testing.T) {
	xx := XXHash[string]()
	mh := MapHash[string]()
	words := []string{"", "a", "probe", "tombstone", "linear probing"}

	for _, capacity := range []int{1, 2, 11, 1024} {
		for _, w := range words {
			for _, idx := range []int{xx(w, capacity), mh(w, capacity)} {
				require.GreaterOrEqual(t, idx, 0)
				require.Less(t, idx, capacity)
			}
		}
	}
}

func TestHashFuncsAreDeterministic(t *testing.T) {
	xx := XXHash[string]()
	mh := MapHash[[2]int]()

	require.Equal(t, xx("key", 97), xx("key", 97))
	require.Equal(t, XXHash[string]()("key", 97), xx("key", 97))
	require.Equal(t, mh([2]int{1, 2}, 97), mh([2]int{1, 2}, 97))
}
