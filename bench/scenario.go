package bench

import (
	"math/rand"
	"slices"

	"github.com/jrhy/densemap"
)

type Kind int

const (
	// KindLookup finds every key in [Low, High) and sums the values found.
	KindLookup Kind = iota
	// KindIterate sums every value in the map.
	KindIterate
)

func (k Kind) String() string {
	switch k {
	case KindLookup:
		return "lookup"
	case KindIterate:
		return "iterate"
	}
	return "unknown"
}

// Scenario is a dataset and a workload repeated over it.
type Scenario struct {
	Name        string
	Description string
	Kind        Kind
	Low, High   int64
	Repeats     int
	Pairs       []densemap.Entry[int64, int64]
}

var scenarios = []Scenario{
	{
		Name:        "lookup-sparse",
		Description: "10 keys spread over [1000, 1100), searched over [1000, 2000)",
		Kind:        KindLookup,
		Low:         1000,
		High:        2000,
		Repeats:     10000,
		Pairs: []densemap.Entry[int64, int64]{
			{1000, 0}, {1010, 1}, {1020, 2}, {1034, 3}, {1047, 4},
			{1059, 5}, {1066, 6}, {1077, 7}, {1088, 8}, {1099, 9},
		},
	},
	{
		Name:        "lookup-dense",
		Description: "10 consecutive keys from 1000, searched over [1000, 1020)",
		Kind:        KindLookup,
		Low:         1000,
		High:        1020,
		Repeats:     1000000,
		Pairs: []densemap.Entry[int64, int64]{
			{1000, 1}, {1001, 0}, {1002, 0}, {1003, 0}, {1004, 0},
			{1005, 0}, {1006, 0}, {1007, 0}, {1008, 0}, {1009, 0},
		},
	},
	{
		Name:        "iterate",
		Description: "100 random pairs over [-1000, 1000], summed",
		Kind:        KindIterate,
		Repeats:     100000,
		Pairs:       RandomPairs(100, -1000, 1000, 0),
	},
}

// Scenarios lists the built-in scenarios.
func Scenarios() []Scenario {
	res := make([]Scenario, len(scenarios))
	for i, s := range scenarios {
		s.Pairs = slices.Clone(s.Pairs)
		res[i] = s
	}
	return res
}

// RandomPairs draws size keys and values uniformly from [low, high] with a
// generator seeded by seed. When a key is drawn again its later value
// wins, so fewer than size pairs may come back. The result is sorted by
// key.
func RandomPairs(size int, low, high int64, seed int64) []densemap.Entry[int64, int64] {
	r := rand.New(rand.NewSource(seed))
	span := high - low + 1
	m := make(map[int64]int64, size)
	for i := 0; i < size; i++ {
		k := low + r.Int63n(span)
		v := low + r.Int63n(span)
		m[k] = v
	}
	return densemap.FromMap(m).Slice()
}

// once runs the workload a single time against l.
func (s *Scenario) once(l Lookuper) int64 {
	var res int64
	switch s.Kind {
	case KindLookup:
		for k := s.Low; k < s.High; k++ {
			if v, ok := l.Find(k); ok {
				res += v
			}
		}
	case KindIterate:
		for _, v := range l.All() {
			res += v
		}
	}
	return res
}
