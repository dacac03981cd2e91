package spatial

import (
	"math/rand"
	"time"
)

// prng is the single seeded random source backing potential-pool sampling,
// permanence initialization jitter and the tie-breaker vector. Deterministic
// mode seeds it from config; randomized mode seeds it from the process clock.
type prng struct {
	r *rand.Rand
}

func newPRNG(seed int64, deterministic bool) *prng {
	if !deterministic {
		seed = time.Now().UnixNano()
	}
	return &prng{r: rand.New(rand.NewSource(seed))}
}

func (p *prng) Float64() float64 {
	return p.r.Float64()
}

func (p *prng) Intn(n int) int {
	return p.r.Intn(n)
}

// sampleWithoutReplacement picks k distinct elements from candidates using a
// partial Fisher-Yates shuffle. The result is in draw order, not candidate
// order, and is reproducible for a given PRNG stream and candidate order.
// When k covers every candidate, a copy in candidate order is returned.
func (p *prng) sampleWithoutReplacement(candidates []int, k int) []int {
	if k >= len(candidates) {
		out := append([]int(nil), candidates...)
		return out
	}
	pool := append([]int(nil), candidates...)
	for i := 0; i < k; i++ {
		j := i + p.r.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}
