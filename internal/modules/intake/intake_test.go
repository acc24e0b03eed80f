package intake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvance_FullFlow(t *testing.T) {
	turn := Welcome()
	assert.Equal(t, StepTravelers, turn.Step)

	inputs := []struct {
		msg  string
		want Step
	}{
		{"Couple", StepDates},
		{"March 2026", StepBudget},
		{"about $4,500", StepVibe},
		{"Relaxing, Foodie", StepDone},
	}

	var err error
	for _, in := range inputs {
		turn, err = Advance(turn.Step, turn.Answers, in.msg)
		require.NoError(t, err)
		assert.Equal(t, in.want, turn.Step)
		assert.NotEmpty(t, turn.Reply)
	}

	assert.True(t, turn.Complete)
	assert.Equal(t, Answers{Travelers: "Couple", Dates: "March 2026", Budget: "about $4,500", Vibe: "Relaxing, Foodie"}, turn.Answers)

	p := ToProfile(turn.Answers)
	assert.Equal(t, "Couple", p.Travelers)
	assert.Equal(t, 4500.0, p.Budget)
	assert.Equal(t, []string{"Relaxing", "Foodie"}, p.Vibe)
	assert.Equal(t, "March 2026", p.Dates)
}

func TestAdvance_EmptyMessageReasks(t *testing.T) {
	_, err := Advance(StepBudget, Answers{}, "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestAdvance_DefaultsToFirstStep(t *testing.T) {
	turn, err := Advance("", Answers{}, "Solo")
	require.NoError(t, err)
	assert.Equal(t, StepDates, turn.Step)
	assert.Equal(t, "Solo", turn.Answers.Travelers)
}

func TestAdvance_UnknownStep(t *testing.T) {
	_, err := Advance(Step("payment"), Answers{}, "x")
	assert.ErrorIs(t, err, ErrUnknownStep)
}

func TestAdvance_DoneIsRefinement(t *testing.T) {
	answers := Answers{Travelers: "Family"}
	turn, err := Advance(StepDone, answers, "add a rest day")
	require.NoError(t, err)
	assert.True(t, turn.Refinement)
	assert.False(t, turn.Complete)
	assert.Equal(t, StepDone, turn.Step)
	assert.Equal(t, answers, turn.Answers)
}

func TestParseBudget(t *testing.T) {
	cases := map[string]float64{
		"5000":          5000,
		"$3,200":        3200,
		"not sure":      DefaultBudget,
		"":              DefaultBudget,
		"0":             DefaultBudget,
		"around 12k..2": 122,
	}
	for in, want := range cases {
		assert.Equal(t, want, parseBudget(in), in)
	}
}

func TestSplitVibe(t *testing.T) {
	assert.Equal(t, []string{"Adventure"}, splitVibe("Adventure"))
	assert.Equal(t, []string{"Food", "Culture"}, splitVibe(" Food , ,Culture,"))
	assert.Equal(t, []string{}, splitVibe(""))
}

func TestPlaceholdersCoverAllSteps(t *testing.T) {
	for _, s := range []Step{StepTravelers, StepDates, StepBudget, StepVibe, StepDone} {
		assert.NotEmpty(t, Placeholders[s], s)
	}
}
