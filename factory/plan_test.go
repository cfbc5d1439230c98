package factory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/training-engine/factory"
	"github.com/warp/training-engine/training"
)

const tomlPlan = `
name = "combat-queue"
clone = "omega"

[attributes.perception]
base = 27
implant = 5

[attributes.willpower]
base = 21
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

[[skills]]
name = "Motion Prediction"
rank = 2
primary = "perception"
secondary = "willpower"
level = 2
sp = 1000
target = 4
`

const jsonPlan = `{
  "clone": "alpha",
  "attributes": {
    "perception": {"base": 27},
    "willpower": {"base": 21}
  },
  "skills": [
    {"name": "Gunnery", "rank": 1, "primary": "perception", "secondary": "willpower", "target": 3}
  ]
}`

func TestParseTOML_FullDocument(t *testing.T) {
	doc, err := factory.ParseTOML([]byte(tomlPlan))
	require.NoError(t, err)

	scheduler, plan, booster, err := doc.Build()
	require.NoError(t, err)

	assert.Equal(t, training.CloneOmega, scheduler.Clone)
	assert.Equal(t, 32.0, scheduler.Attributes.Effective(training.Perception))
	assert.Equal(t, 26.0, scheduler.Attributes.Effective(training.Willpower))
	assert.Equal(t, 17.0, scheduler.Attributes.Effective(training.Memory), "unspecified attributes default to 17")

	require.NotNil(t, booster)
	assert.Equal(t, 10, booster.Bonus)
	assert.Equal(t, 24.0, booster.Hours)

	require.Len(t, plan, 2)
	assert.Equal(t, "Motion Prediction", plan[1].Skill.Name)
	assert.Equal(t, 2, plan[1].Skill.Level)
	assert.Equal(t, int64(1000), plan[1].Skill.SP)
	assert.Equal(t, 4, plan[1].TargetLevel)
}

func TestParseJSON_NoBooster(t *testing.T) {
	doc, err := factory.ParseJSON([]byte(jsonPlan))
	require.NoError(t, err)

	scheduler, plan, booster, err := doc.Build()
	require.NoError(t, err)
	assert.Equal(t, training.CloneAlpha, scheduler.Clone)
	assert.Nil(t, booster)
	require.Len(t, plan, 1)
}

func TestBuild_UnknownAttribute_Rejected(t *testing.T) {
	doc := &factory.PlanDoc{
		Clone:      "omega",
		Attributes: map[string]factory.AttributeDoc{"luck": {Base: 20}},
	}
	_, _, _, err := doc.Build()
	assert.ErrorIs(t, err, training.ErrInvalidSkill)
}

func TestBuild_UnknownClone_Rejected(t *testing.T) {
	doc := &factory.PlanDoc{Clone: "delta"}
	_, _, _, err := doc.Build()
	assert.ErrorIs(t, err, training.ErrInvalidCloneState)
}

func TestBuild_EmptyCloneDefaultsToOmega(t *testing.T) {
	doc := &factory.PlanDoc{}
	scheduler, _, _, err := doc.Build()
	require.NoError(t, err)
	assert.Equal(t, training.CloneOmega, scheduler.Clone)
}

func TestExamplePlan_SimulatesCleanly(t *testing.T) {
	scheduler, plan, booster, err := factory.ExamplePlan().Build()
	require.NoError(t, err)

	ledger, err := scheduler.Simulate(plan, booster)
	require.NoError(t, err)
	require.Len(t, ledger.Entries, 5)
	assert.Greater(t, ledger.TotalSavedHours, 0.0, "24h of +10 booster must save time")
	assert.Less(t, ledger.TotalActualHours, ledger.TotalBaseHours)
}
