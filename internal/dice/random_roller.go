package dice

import (
	"fmt"
	"math/rand/v2"
	"sync"
)

// randomRoller implements Roller on math/rand/v2. Rolls only need to be
// fair, not unpredictable.
type randomRoller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomRoller creates a roller backed by the global random source
func NewRandomRoller() Roller {
	return &randomRoller{}
}

// NewSeededRoller creates a deterministic roller, handy for replaying a
// sequence of rolls
func NewSeededRoller(seed uint64) Roller {
	return &randomRoller{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (r *randomRoller) intN(n int) int {
	if r.rng == nil {
		return rand.IntN(n)
	}
	// *rand.Rand is not safe for concurrent use
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.IntN(n)
}

// Roll implements Roller.Roll
func (r *randomRoller) Roll(count, sides, bonus int) (*RollResult, error) {
	if count < 1 {
		return nil, fmt.Errorf("invalid dice count %d", count)
	}
	if sides < 1 {
		return nil, fmt.Errorf("invalid dice sides %d", sides)
	}

	rolls := make([]int, count)
	rawTotal := 0
	for i := range rolls {
		rolls[i] = r.intN(sides) + 1
		rawTotal += rolls[i]
	}

	return &RollResult{
		Total:    rawTotal + bonus,
		Rolls:    rolls,
		Bonus:    bonus,
		Count:    count,
		Sides:    sides,
		RawTotal: rawTotal,
	}, nil
}
