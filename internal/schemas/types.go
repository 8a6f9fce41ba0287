package schemas

// Rubric categories, in the order they are presented.
const (
	CategoryClarity      = "clarity"
	CategoryContext      = "context"
	CategoryFormat       = "format"
	CategoryCompleteness = "completeness"
)

// Categories lists the rubric keys every evaluation must score.
var Categories = []string{CategoryClarity, CategoryContext, CategoryFormat, CategoryCompleteness}

// Top-level keys of a PromptEvaluation. A model reply missing any of them is rejected.
const (
	FieldOverallScore   = "overall_score"
	FieldScores         = "scores"
	FieldWhatIsMissing  = "what_is_missing"
	FieldImprovedPrompt = "improved_prompt"
	FieldKeyChanges     = "key_changes"
)

// RequiredFields lists the top-level PromptEvaluation keys.
var RequiredFields = []string{FieldOverallScore, FieldScores, FieldWhatIsMissing, FieldImprovedPrompt, FieldKeyChanges}

type EvaluationRequest struct {
	Prompt string `json:"prompt"`
}

// Scores holds the per-category rubric scores, each 1-10.
type Scores struct {
	Clarity      int `json:"clarity"`
	Context      int `json:"context"`
	Format       int `json:"format"`
	Completeness int `json:"completeness"`
}

// PromptEvaluation is the critique returned for a single prompt.
type PromptEvaluation struct {
	OverallScore   int      `json:"overall_score"`
	Scores         Scores   `json:"scores"`
	WhatIsMissing  []string `json:"what_is_missing"`
	ImprovedPrompt string   `json:"improved_prompt"`
	KeyChanges     []string `json:"key_changes"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// ExampleScenario pre-fills the prompt input with a deliberately weak prompt.
type ExampleScenario struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Description string `json:"description"`
	BadPrompt   string `json:"bad_prompt"`
}
