package hexgame

import "math/rand"

// Roller produces die rolls for combat. Injectable so scenario tests
// can script exact rolls.
type Roller interface {
	// Roll returns a uniform integer on [1,10].
	Roll() int
}

// Rand is the per-match randomness source: dice plus deck shuffles.
// Each match owns one, seeded at creation; no cross-match sharing.
type Rand struct {
	rng *rand.Rand
}

// NewRand creates a match randomness source from a seed.
func NewRand(seed int64) *Rand {
	return &Rand{rng: rand.New(rand.NewSource(seed))}
}

// Roll returns a uniform integer on [1,10].
func (r *Rand) Roll() int {
	return r.rng.Intn(10) + 1
}

// Shuffle permutes a deck in place.
func (r *Rand) Shuffle(deck []string) {
	r.rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
}
