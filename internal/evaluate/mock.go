package evaluate

import "prompt-evaluator/internal/schemas"

// Mock returns the canned evaluation served when no model credential is configured. Each call
// returns a fresh value.
func Mock() *schemas.PromptEvaluation {
	return &schemas.PromptEvaluation{
		OverallScore: 35,
		Scores: schemas.Scores{
			Clarity:      4,
			Context:      2,
			Format:       3,
			Completeness: 4,
		},
		WhatIsMissing: []string{
			"Specific details about your preferences and requirements",
			"Clear context about the purpose or goal",
			"Desired format for the response",
			"Timeline or constraints that should be considered",
		},
		ImprovedPrompt: `I'm planning a 7-day trip to Europe in September 2024 for my first time visiting. I'm interested in history, art, and local cuisine, with a budget of $3000 excluding flights. I prefer a mix of major cities and smaller towns, and I'd like to visit 2-3 countries maximum to avoid rushing.

Please provide:
1. A suggested itinerary with specific cities and number of days in each
2. Must-see historical sites and art museums
3. Local food experiences I shouldn't miss
4. Budget breakdown for accommodation, food, and activities
5. Travel tips for first-time visitors to Europe

Please format your response with clear headings for each section.`,
		KeyChanges: []string{
			"Added specific timeframe (7 days in September 2024) and budget constraints ($3000)",
			"Included personal interests (history, art, cuisine) to enable personalized recommendations",
			"Specified travel style preferences (mix of cities and towns, 2-3 countries max)",
			"Requested specific deliverables with numbered list for clarity",
			"Added desired response format with clear headings for better organization",
		},
	}
}
