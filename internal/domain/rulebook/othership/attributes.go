package othership

// Stat is one of the five character stats rolled with 2d10+25
type Stat string

const (
	StatStrength  Stat = "strength"
	StatSpeed     Stat = "speed"
	StatIntellect Stat = "intellect"
	StatCombat    Stat = "combat"
	StatInstinct  Stat = "instinct"
)

// Save is one of the three saves rolled with 2d10+10
type Save string

const (
	SaveSanity Save = "sanity"
	SaveFear   Save = "fear"
	SaveBody   Save = "body"
)

// AllStats returns stats in sheet order
func AllStats() []Stat {
	return []Stat{StatStrength, StatSpeed, StatIntellect, StatCombat, StatInstinct}
}

// AllSaves returns saves in sheet order
func AllSaves() []Save {
	return []Save{SaveSanity, SaveFear, SaveBody}
}

// ParseStat converts user input into a Stat
func ParseStat(s string) (Stat, bool) {
	for _, stat := range AllStats() {
		if string(stat) == s {
			return stat, true
		}
	}
	return "", false
}

// ParseSave converts user input into a Save
func ParseSave(s string) (Save, bool) {
	for _, save := range AllSaves() {
		if string(save) == s {
			return save, true
		}
	}
	return "", false
}

// Display returns the capitalized name used on character sheets
func (s Stat) Display() string {
	return capitalize(string(s))
}

// Display returns the capitalized name used on character sheets
func (s Save) Display() string {
	return capitalize(string(s))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
