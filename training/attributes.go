/*
Package training implements the booster-aware skill training time engine.

PURPOSE:
  This package contains the core math for projecting how long a character
  takes to train a queue of skills: attribute-driven SP/hour rates, the
  per-level SP cost curve, and a scheduler that simulates an ordered plan
  against a depleting, time-bounded attribute booster.

KEY CONCEPTS IN THIS FILE (attributes.go):
  - Attribute: One of the five named character attributes
  - AttributeValue: The {base, implant} record for a single attribute
  - AttributeSet: All five attributes plus the shared booster bonus

DESIGN PRINCIPLES:
  1. Explicit lookup: attributes are resolved through a map keyed by
     Attribute, never by reflective field access
  2. All-or-nothing booster: the shared bonus applies to every attribute
     or to none of them, there is no partial application
  3. Value semantics: AttributeSet copies are cheap and independent, so
     a boosted view never mutates the caller's set

SEE ALSO:
  - rate.go: SP/hour from effective attribute values
  - scheduler.go: Uses base and boosted views of the same set
*/
package training

import "fmt"

// =============================================================================
// ATTRIBUTES
// =============================================================================

// Attribute identifies one of the five character attributes.
type Attribute string

const (
	Intelligence Attribute = "intelligence"
	Perception   Attribute = "perception"
	Charisma     Attribute = "charisma"
	Willpower    Attribute = "willpower"
	Memory       Attribute = "memory"
)

// Attributes lists all five attributes in canonical order.
var Attributes = []Attribute{Intelligence, Perception, Charisma, Willpower, Memory}

// Valid reports whether a resolves to one of the five attributes.
func (a Attribute) Valid() bool {
	switch a {
	case Intelligence, Perception, Charisma, Willpower, Memory:
		return true
	}
	return false
}

// AttributeValue is the per-attribute record: the remappable base value and
// the permanent implant bonus.
type AttributeValue struct {
	Base    int
	Implant int
}

// AttributeSet holds the five attribute records plus the shared booster
// bonus. BoosterBonus is either 0 (no booster active) or the configured
// booster strength; it is never applied to only some attributes.
type AttributeSet struct {
	Values       map[Attribute]AttributeValue
	BoosterBonus int
}

// NewAttributeSet creates a set with every attribute at the given base value
// and no implants. 17 is the unremapped floor for all five attributes.
func NewAttributeSet(base int) AttributeSet {
	values := make(map[Attribute]AttributeValue, len(Attributes))
	for _, attr := range Attributes {
		values[attr] = AttributeValue{Base: base}
	}
	return AttributeSet{Values: values}
}

// Set replaces the record for one attribute.
func (s AttributeSet) Set(attr Attribute, base, implant int) AttributeSet {
	if s.Values == nil {
		s.Values = make(map[Attribute]AttributeValue, len(Attributes))
	}
	s.Values[attr] = AttributeValue{Base: base, Implant: implant}
	return s
}

// Effective returns base + implant + shared booster bonus for one attribute.
// Unknown attributes resolve to the booster bonus alone; callers that need
// to reject unknown names should validate with Attribute.Valid first.
func (s AttributeSet) Effective(attr Attribute) float64 {
	v := s.Values[attr]
	return float64(v.Base + v.Implant + s.BoosterBonus)
}

// WithBooster returns an independent copy of the set with the shared bonus
// applied to all five attributes. The receiver is not modified.
func (s AttributeSet) WithBooster(bonus int) AttributeSet {
	values := make(map[Attribute]AttributeValue, len(s.Values))
	for attr, v := range s.Values {
		values[attr] = v
	}
	return AttributeSet{Values: values, BoosterBonus: bonus}
}

func (s AttributeSet) String() string {
	return fmt.Sprintf("int=%g per=%g cha=%g wil=%g mem=%g",
		s.Effective(Intelligence), s.Effective(Perception), s.Effective(Charisma),
		s.Effective(Willpower), s.Effective(Memory))
}
