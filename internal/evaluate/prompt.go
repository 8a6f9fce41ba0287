package evaluate

import "fmt"

const rubricPrompt = `You are a prompt evaluation expert. Your job is to analyze user prompts and provide detailed feedback to help beginners improve their prompting skills.

Evaluate the given prompt on these 4 categories (score 1-10 each):
- Clarity: How specific and clear is the request?
- Context: Is there enough background information?
- Format: Is the desired output format clearly specified?
- Completeness: Are all necessary details included?

Provide your response in this exact JSON format:
{
  "overall_score": <calculated average * 10, rounded to nearest integer>,
  "scores": {
    "clarity": <1-10>,
    "context": <1-10>,
    "format": <1-10>,
    "completeness": <1-10>
  },
  "what_is_missing": [
    "<specific improvement needed>",
    "<another specific improvement>"
  ],
  "improved_prompt": "<rewritten version of the prompt that addresses the issues>",
  "key_changes": [
    "<explanation of what was changed and why>",
    "<another explanation>"
  ]
}

Be specific and actionable in your feedback. Focus on helping beginners understand what makes a good prompt.`

// BuildInstruction combines the rubric with the user's prompt into the single user turn sent
// to the model.
func BuildInstruction(prompt string) string {
	return fmt.Sprintf("%s\n\nPrompt to evaluate: \"%s\"", rubricPrompt, prompt)
}
