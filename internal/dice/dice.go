package dice

import "fmt"

const (
	// StatBase is added to 2d10 for every stat roll
	StatBase = 25
	// SaveBase is added to 2d10 for every save roll
	SaveBase = 10

	// CriticalBand is the highest d100 result that counts as a critical success
	CriticalBand = 5

	attributeDice  = 2
	attributeSides = 10
	percentile     = 100
)

// AttributeRoll records how a stat or save value was produced. It is shown
// to the player and then folded into the character record.
type AttributeRoll struct {
	Rolls      [2]int
	BaseValue  int
	Modifier   int
	FinalValue int
}

// CheckResult is the outcome of a percentile check
type CheckResult struct {
	Roll     int
	Target   int
	Success  bool
	Critical bool
}

// RollDie returns a value in [1, sides]
func RollDie(r Roller, sides int) (int, error) {
	result, err := r.Roll(1, sides, 0)
	if err != nil {
		return 0, err
	}
	return result.RawTotal, nil
}

// RollStat rolls 2d10+25 and applies modifier
func RollStat(r Roller, modifier int) (*AttributeRoll, error) {
	return rollAttribute(r, StatBase, modifier)
}

// RollSave rolls 2d10+10 and applies modifier
func RollSave(r Roller, modifier int) (*AttributeRoll, error) {
	return rollAttribute(r, SaveBase, modifier)
}

func rollAttribute(r Roller, base, modifier int) (*AttributeRoll, error) {
	result, err := r.Roll(attributeDice, attributeSides, base)
	if err != nil {
		return nil, err
	}
	if len(result.Rolls) != attributeDice {
		return nil, fmt.Errorf("expected %d dice, got %d", attributeDice, len(result.Rolls))
	}

	return &AttributeRoll{
		Rolls:      [2]int{result.Rolls[0], result.Rolls[1]},
		BaseValue:  result.Total,
		Modifier:   modifier,
		FinalValue: result.Total + modifier,
	}, nil
}

// RollPercentile rolls a d100 and resolves it against target
func RollPercentile(r Roller, target int) (*CheckResult, error) {
	roll, err := RollDie(r, percentile)
	if err != nil {
		return nil, err
	}
	result := RollCheck(roll, target)
	return &result, nil
}

// RollCheck resolves a d100 result against the live stat or save value.
// Rolling at or under the target succeeds; a success within CriticalBand is
// critical.
func RollCheck(d100, target int) CheckResult {
	success := d100 <= target
	return CheckResult{
		Roll:     d100,
		Target:   target,
		Success:  success,
		Critical: success && d100 <= CriticalBand,
	}
}

// String renders the roll the way it is shown in Discord, e.g. "[4, 7] + 25 = 36"
func (a *AttributeRoll) String() string {
	s := fmt.Sprintf("[%d, %d] + %d", a.Rolls[0], a.Rolls[1], a.BaseValue-a.Rolls[0]-a.Rolls[1])
	switch {
	case a.Modifier > 0:
		s += fmt.Sprintf(" + %d", a.Modifier)
	case a.Modifier < 0:
		s += fmt.Sprintf(" - %d", -a.Modifier)
	}
	return fmt.Sprintf("%s = %d", s, a.FinalValue)
}
