// Package classifier is the placeholder generation engine: it maps a
// prompt to a structured intent response by substring matching. It is
// pure and total; it carries no state and cannot fail. A real inference
// engine replaces it behind the bridge's Engine interface without any
// change to the response schema.
package classifier

import (
	"strings"

	"llmbridge/pkg/types"
)

// Keyword is the substring-matching classifier.
type Keyword struct{}

// New returns the keyword classifier.
func New() Keyword { return Keyword{} }

// Classify maps prompt to a structured response. Matching is
// case-insensitive and first-match-wins over a fixed rule order; ties
// break by order, not specificity. maxTokens is accepted for interface
// parity with a real engine and does not affect the stub's output.
func (Keyword) Classify(prompt string, maxTokens int) types.Response {
	lower := strings.ToLower(prompt)

	switch {
	case strings.Contains(lower, "create") && strings.Contains(lower, "goal"):
		title := quoted(prompt, "New Goal")
		return types.Response{
			Action:  types.ActionCreateGoal,
			Message: "I'll create a goal for " + title,
			Data: map[string]any{
				"goalTitle":      title,
				"durationMonths": 3,
				"dailyMinutes":   30,
			},
		}
	case strings.Contains(lower, "add") && strings.Contains(lower, "task"):
		title := quoted(prompt, "New Task")
		return types.Response{
			Action:  types.ActionCreateTask,
			Message: "I'll add the task: " + title,
			Data: map[string]any{
				"taskTitle": title,
				"dueDate":   "today",
				"minutes":   30,
			},
		}
	case strings.Contains(lower, "progress") || strings.Contains(lower, "how am i") || strings.Contains(lower, "status"):
		// Checked ahead of the list/show rule so "show my status" reads
		// as a progress request rather than a listing.
		return types.Response{
			Action:  types.ActionShowProgress,
			Message: "Let me show you your progress summary!",
			Data:    map[string]any{},
		}
	case strings.Contains(lower, "list") || strings.Contains(lower, "show"):
		return types.Reply("Here are your current items. You can ask me to create goals or add tasks!")
	case strings.Contains(lower, "help"):
		return types.Reply("I can help you manage goals and tasks! Try saying: 'Create a goal to learn Python' or 'Add task review notes tomorrow'")
	case strings.Contains(lower, "complete") || strings.Contains(lower, "done") || strings.Contains(lower, "finish"):
		title := quoted(prompt, "task")
		return types.Response{
			Action:  types.ActionCompleteTask,
			Message: "Great job! I'll mark that as complete.",
			Data:    map[string]any{"taskTitle": title},
		}
	case strings.Contains(lower, "delete") || strings.Contains(lower, "remove"):
		return types.Reply("To delete an item, please specify exactly which goal or task you want to remove.")
	default:
		return types.Reply("I'm your local AI assistant running on-device! I can help you create goals, add tasks, and track your progress. What would you like to do?")
	}
}

// quoted extracts the substring strictly between the first pair of
// double quotes in s, or def when either quote is missing. A crude
// stand-in for entity extraction; intentionally lenient.
func quoted(s, def string) string {
	start := strings.IndexByte(s, '"')
	if start < 0 {
		return def
	}
	rest := s[start+1:]
	end := strings.IndexByte(rest, '"')
	if end < 0 {
		return def
	}
	return rest[:end]
}
