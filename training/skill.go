/*
skill.go - Skills and the per-level SP cost curve

PURPOSE:
  Represents a trainable skill and the SP it costs to reach each level.

COST CURVE:
  SP to complete level L = 250 x rank x sqrt(32)^(L-1), truncated to an
  integer, for L in [1,5]. Cumulative SP through level L is the sum over
  levels 1..L. The curve is derived on demand from the closed form rather
  than a precomputed table, so any rank is supported and the table can
  never drift from the formula.

LEVELS:
  Level 0 means untrained; level 5 is the maximum. A skill additionally
  carries partial SP toward its next level.
*/
package training

import "math"

const (
	// MaxLevel is the highest trainable skill level.
	MaxLevel = 5

	baseLevelSP = 250
)

var sqrt32 = math.Sqrt(32)

// Skill is a trainable unit: a named skill with a rank (difficulty
// multiplier), the attribute pair that drives its training rate, and the
// character's current progress in it.
type Skill struct {
	Name      string
	Rank      int
	Primary   Attribute
	Secondary Attribute

	// Level is the completed level, 0-5. SP is partial progress toward
	// the next level and must stay below the cost of that level.
	Level int
	SP    int64
}

// SPForLevel returns the SP required to complete a single level for the
// given rank. Levels outside [1,5] cost 0.
func SPForLevel(rank, level int) int64 {
	if level < 1 || level > MaxLevel {
		return 0
	}
	return int64(baseLevelSP * float64(rank) * math.Pow(sqrt32, float64(level-1)))
}

// TotalSPAtLevel returns the cumulative SP through the given level: the sum
// of SPForLevel over levels 1..level. 0 for level <= 0.
func TotalSPAtLevel(rank, level int) int64 {
	var total int64
	for lvl := 1; lvl <= level && lvl <= MaxLevel; lvl++ {
		total += SPForLevel(rank, lvl)
	}
	return total
}

// SPToTrain returns the SP needed to take the skill from its current
// progress to the target level. 0 when the target is at or below the
// current level; never negative.
func (s *Skill) SPToTrain(targetLevel int) int64 {
	if targetLevel <= s.Level {
		return 0
	}
	target := TotalSPAtLevel(s.Rank, targetLevel)
	current := TotalSPAtLevel(s.Rank, s.Level) + s.SP
	if target <= current {
		return 0
	}
	return target - current
}

// Snapshot returns an independent copy of the skill, for callers that need
// the pre-simulation state after the scheduler has consumed the original.
func (s *Skill) Snapshot() *Skill {
	copied := *s
	return &copied
}
