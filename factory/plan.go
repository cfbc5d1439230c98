/*
Package factory converts plan documents into engine types.

PURPOSE:
  A plan document describes a character (attributes + implants), clone
  state, an optional booster, and the ordered skill queue. Documents are
  accepted as JSON (API, database) or TOML (CLI plan files); both map to
  the same schema types, which carry both sets of struct tags.

WHY DOCUMENTS?
  - Plans are authored by hand and checked into version control
  - The API and the CLI share one schema
  - The database stores the request verbatim for replay

DOCUMENT SCHEMA (TOML flavor):

  clone = "omega"

  [attributes.perception]
  base = 27
  implant = 5

  [booster]
  bonus = 10
  hours = 24

  [[skills]]
  name = "Gunnery"
  rank = 1
  primary = "perception"
  secondary = "willpower"
  target = 5

VALIDATION:
  The factory validates shape (unknown clone state, unknown attribute
  keys); the scheduler re-validates semantics before simulating, so a
  document that passes the factory can still fail Simulate.

SEE ALSO:
  - training/scheduler.go: Consumes the built plan
  - cmd/plancheck: Loads TOML plan files
*/
package factory

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/warp/training-engine/training"
)

// =============================================================================
// DOCUMENT SCHEMA TYPES
// =============================================================================

// PlanDoc is the serialized form of a simulation request.
type PlanDoc struct {
	Name       string                  `json:"name,omitempty" toml:"name"`
	Clone      string                  `json:"clone" toml:"clone"`
	Attributes map[string]AttributeDoc `json:"attributes" toml:"attributes"`
	Booster    *BoosterDoc             `json:"booster,omitempty" toml:"booster"`
	Skills     []SkillDoc              `json:"skills" toml:"skills"`
}

// AttributeDoc is one attribute's {base, implant} record.
type AttributeDoc struct {
	Base    int `json:"base" toml:"base"`
	Implant int `json:"implant,omitempty" toml:"implant"`
}

// BoosterDoc is the booster's strength and duration.
type BoosterDoc struct {
	Bonus int     `json:"bonus" toml:"bonus"`
	Hours float64 `json:"hours" toml:"hours"`
}

// SkillDoc is one queued skill with its target level.
type SkillDoc struct {
	Name      string `json:"name" toml:"name"`
	Rank      int    `json:"rank" toml:"rank"`
	Primary   string `json:"primary" toml:"primary"`
	Secondary string `json:"secondary" toml:"secondary"`
	Level     int    `json:"level,omitempty" toml:"level"`
	SP        int64  `json:"sp,omitempty" toml:"sp"`
	Target    int    `json:"target" toml:"target"`
}

// =============================================================================
// BUILDING
// =============================================================================

// DefaultAttributeBase is the unremapped value used for attributes a
// document leaves unspecified.
const DefaultAttributeBase = 17

// Build converts a document into scheduler inputs. The returned booster is
// nil when the document has none.
func (d *PlanDoc) Build() (*training.Scheduler, []training.PlanItem, *training.Booster, error) {
	clone := training.CloneState(strings.ToLower(d.Clone))
	if d.Clone == "" {
		clone = training.CloneOmega
	}
	if !clone.Valid() {
		return nil, nil, nil, fmt.Errorf("%w: %q", training.ErrInvalidCloneState, d.Clone)
	}

	attrs := training.NewAttributeSet(DefaultAttributeBase)
	for name, doc := range d.Attributes {
		attr := training.Attribute(strings.ToLower(name))
		if !attr.Valid() {
			return nil, nil, nil, fmt.Errorf("%w: unknown attribute %q", training.ErrInvalidSkill, name)
		}
		attrs = attrs.Set(attr, doc.Base, doc.Implant)
	}

	plan := make([]training.PlanItem, len(d.Skills))
	for i, doc := range d.Skills {
		plan[i] = training.PlanItem{
			Skill: &training.Skill{
				Name:      doc.Name,
				Rank:      doc.Rank,
				Primary:   training.Attribute(strings.ToLower(doc.Primary)),
				Secondary: training.Attribute(strings.ToLower(doc.Secondary)),
				Level:     doc.Level,
				SP:        doc.SP,
			},
			TargetLevel: doc.Target,
		}
	}

	var booster *training.Booster
	if d.Booster != nil {
		booster = &training.Booster{Bonus: d.Booster.Bonus, Hours: d.Booster.Hours}
	}

	return training.NewScheduler(attrs, clone), plan, booster, nil
}

// =============================================================================
// LOADING
// =============================================================================

// ParseJSON decodes a JSON plan document.
func ParseJSON(data []byte) (*PlanDoc, error) {
	var doc PlanDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse plan json: %w", err)
	}
	return &doc, nil
}

// ParseTOML decodes a TOML plan document.
func ParseTOML(data []byte) (*PlanDoc, error) {
	var doc PlanDoc
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse plan toml: %w", err)
	}
	return &doc, nil
}

// LoadFile reads a plan document, picking the decoder by file extension
// (.toml for TOML, anything else is treated as JSON).
func LoadFile(path string) (*PlanDoc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan file: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return ParseTOML(data)
	}
	return ParseJSON(data)
}
