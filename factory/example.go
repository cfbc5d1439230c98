package factory

import "github.com/warp/training-engine/training"

// ExamplePlan is the canonical demo document: a remapped combat character
// training a small gunnery queue under a +10 booster for 24 hours. Used by
// the CLI's --example mode and the API's example endpoint.
func ExamplePlan() *PlanDoc {
	return &PlanDoc{
		Name:  "gunnery-starter",
		Clone: string(training.CloneOmega),
		Attributes: map[string]AttributeDoc{
			string(training.Perception): {Base: 27, Implant: 5},
			string(training.Willpower):  {Base: 21, Implant: 5},
		},
		Booster: &BoosterDoc{Bonus: 10, Hours: 24},
		Skills: []SkillDoc{
			{Name: "Gunnery", Rank: 1, Primary: "perception", Secondary: "willpower", Target: 5},
			{Name: "Small Hybrid Turret", Rank: 1, Primary: "perception", Secondary: "willpower", Target: 5},
			{Name: "Motion Prediction", Rank: 2, Primary: "perception", Secondary: "willpower", Target: 4},
			{Name: "Rapid Firing", Rank: 2, Primary: "perception", Secondary: "willpower", Target: 4},
			{Name: "Sharpshooter", Rank: 2, Primary: "perception", Secondary: "willpower", Target: 4},
		},
	}
}
