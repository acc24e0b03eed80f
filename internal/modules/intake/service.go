// README: Intake state machine; one answer per step, refinement requests once done.
package intake

import (
	"strconv"
	"strings"

	"voyage/internal/modules/itinerary"
)

const (
	welcomeMessage    = "Hey! I'm your Travel Chief. Let's plan your dream trip. First, who are you traveling with?"
	refinementMessage = "Updating your itinerary..."
)

// Turn is the result of feeding one user message into the intake.
type Turn struct {
	Step    Step    `json:"step"`
	Answers Answers `json:"answers"`
	Reply   string  `json:"reply"`
	// Placeholder is the input hint for the next message.
	Placeholder string   `json:"placeholder"`
	Options     []string `json:"options,omitempty"`
	// Complete is true on the turn that moves the intake to StepDone.
	Complete bool `json:"complete"`
	// Refinement is true when the message arrived after the intake finished.
	Refinement bool `json:"refinement"`
}

// Welcome returns the opening turn.
func Welcome() Turn {
	return Turn{
		Step:        StepTravelers,
		Reply:       welcomeMessage,
		Placeholder: Placeholders[StepTravelers],
		Options:     TravelerOptions,
	}
}

// Advance records message as the answer for step and moves to the next step.
// The previous answers are not modified.
func Advance(step Step, answers Answers, message string) (Turn, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return Turn{}, ErrEmptyMessage
	}
	if step == "" {
		step = StepTravelers
	}

	switch step {
	case StepTravelers:
		answers.Travelers = message
	case StepDates:
		answers.Dates = message
	case StepBudget:
		answers.Budget = message
	case StepVibe:
		answers.Vibe = message
	case StepDone:
		return Turn{
			Step:        StepDone,
			Answers:     answers,
			Reply:       refinementMessage,
			Placeholder: Placeholders[StepDone],
			Refinement:  true,
		}, nil
	default:
		return Turn{}, ErrUnknownStep
	}

	next := nextSteps[step]
	return Turn{
		Step:        next,
		Answers:     answers,
		Reply:       prompts[next],
		Placeholder: Placeholders[next],
		Complete:    next == StepDone,
	}, nil
}

// ToProfile converts raw answers into a generation profile.
func ToProfile(a Answers) itinerary.Profile {
	return itinerary.Profile{
		Travelers:   strings.TrimSpace(a.Travelers),
		Budget:      parseBudget(a.Budget),
		Vibe:        splitVibe(a.Vibe),
		Dates:       strings.TrimSpace(a.Dates),
		Destination: strings.TrimSpace(a.Destination),
	}
}

// parseBudget keeps only the digits ("$4,500 or so" -> 4500).
func parseBudget(s string) float64 {
	var digits strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	n, err := strconv.ParseFloat(digits.String(), 64)
	if err != nil || n == 0 {
		return DefaultBudget
	}
	return n
}

func splitVibe(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}
