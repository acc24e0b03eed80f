// README: Chat intake steps and the collected answers.
package intake

import "errors"

type Step string

const (
	StepTravelers Step = "travelers"
	StepDates     Step = "dates"
	StepBudget    Step = "budget"
	StepVibe      Step = "vibe"
	StepDone      Step = "done"
)

var (
	ErrEmptyMessage = errors.New("message is empty")
	ErrUnknownStep  = errors.New("unknown intake step")
)

// DefaultBudget is used when the budget answer has no digits.
const DefaultBudget = 5000

// Answers holds the raw text the user typed for each step.
type Answers struct {
	Travelers   string `json:"travelers,omitempty"`
	Dates       string `json:"dates,omitempty"`
	Budget      string `json:"budget,omitempty"`
	Vibe        string `json:"vibe,omitempty"`
	Destination string `json:"destination,omitempty"`
}

// TravelerOptions are offered as quick replies on the first question.
var TravelerOptions = []string{"Solo", "Couple", "Family", "Friends"}

// nextSteps is the intake flow as code.
var nextSteps = map[Step]Step{
	StepTravelers: StepDates,
	StepDates:     StepBudget,
	StepBudget:    StepVibe,
	StepVibe:      StepDone,
}

var prompts = map[Step]string{
	StepDates:  "Got it. When are you thinking of going? (e.g., March 2026, or specific dates)",
	StepBudget: "Noted. What's your total budget for the trip? (approximate is fine)",
	StepVibe:   "Almost there. What's the vibe? (e.g., Relaxing, Adventure, Foodie, Culture)",
	StepDone:   "Perfect. Give me a moment to build your itinerary...",
}

// Placeholders mirror the input hint shown for each step.
var Placeholders = map[Step]string{
	StepTravelers: "Who's coming?",
	StepDates:     "When are you going?",
	StepBudget:    "What's the budget?",
	StepVibe:      "What's the vibe?",
	StepDone:      "Ask for changes...",
}
