package mockdice

import (
	"fmt"
	"sync"

	"github.com/KirkDiggler/othership-bot/internal/dice"
)

// ManualMockRoller replays a scripted sequence of die faces. It is easier
// to read than gomock expectations when a test needs many rolls.
type ManualMockRoller struct {
	mu    sync.Mutex
	faces []int
	next  int
}

// NewManualMockRoller creates a roller that will return faces in order
func NewManualMockRoller(faces ...int) *ManualMockRoller {
	return &ManualMockRoller{faces: faces}
}

// Queue appends faces to the script
func (m *ManualMockRoller) Queue(faces ...int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.faces = append(m.faces, faces...)
}

// Remaining reports how many scripted faces are unused
func (m *ManualMockRoller) Remaining() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.faces) - m.next
}

func (m *ManualMockRoller) pop(sides int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.next >= len(m.faces) {
		return 0, fmt.Errorf("scripted roller exhausted after %d faces", len(m.faces))
	}
	face := m.faces[m.next]
	if face < 1 || face > sides {
		return 0, fmt.Errorf("scripted face %d is not valid for d%d", face, sides)
	}
	m.next++
	return face, nil
}

// Roll implements dice.Roller.Roll
func (m *ManualMockRoller) Roll(count, sides, bonus int) (*dice.RollResult, error) {
	rolls := make([]int, count)
	raw := 0
	for i := range rolls {
		face, err := m.pop(sides)
		if err != nil {
			return nil, err
		}
		rolls[i] = face
		raw += face
	}

	return &dice.RollResult{
		Total:    raw + bonus,
		Rolls:    rolls,
		Bonus:    bonus,
		Count:    count,
		Sides:    sides,
		RawTotal: raw,
	}, nil
}
