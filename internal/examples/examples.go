// Package examples holds the static catalog of weak prompts offered as starting points.
package examples

import "prompt-evaluator/internal/schemas"

var scenarios = []schemas.ExampleScenario{
	{
		ID:          "trip-planning",
		Title:       "Trip Planning",
		Category:    "Travel",
		Description: "Help planning a vacation",
		BadPrompt:   "Plan my trip to Europe",
	},
	{
		ID:          "email-writing",
		Title:       "Email Writing",
		Category:    "Communication",
		Description: "Professional email composition",
		BadPrompt:   "Write an email to my boss",
	},
	{
		ID:          "learning-assistance",
		Title:       "Learning Assistance",
		Category:    "Education",
		Description: "Help with studying topics",
		BadPrompt:   "Explain machine learning",
	},
	{
		ID:          "decision-making",
		Title:       "Decision Making",
		Category:    "Analysis",
		Description: "Making important choices",
		BadPrompt:   "Should I change jobs?",
	},
	{
		ID:          "event-planning",
		Title:       "Event Planning",
		Category:    "Organization",
		Description: "Organizing events and gatherings",
		BadPrompt:   "Plan my birthday party",
	},
}

// All returns a copy of the catalog so callers cannot mutate it.
func All() []schemas.ExampleScenario {
	out := make([]schemas.ExampleScenario, len(scenarios))
	copy(out, scenarios)
	return out
}

// Lookup finds a scenario by id.
func Lookup(id string) (schemas.ExampleScenario, bool) {
	for _, s := range scenarios {
		if s.ID == id {
			return s, true
		}
	}
	return schemas.ExampleScenario{}, false
}
