package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voyage/internal/config"
	"voyage/internal/modules/itinerary"
)

func clearKeys(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GOOGLE_MAPS_API_KEY", "")
	t.Setenv("VOYAGE_MOCK_DELAY", "0s")
	t.Chdir(t.TempDir())
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestGenerate_NoKeysPrintsMock(t *testing.T) {
	clearKeys(t)

	out, errOut, err := execute(t, "generate", "--destination", "Lisbon")
	require.NoError(t, err)
	assert.Contains(t, errOut, "provider=mock")

	var it itinerary.Itinerary
	require.NoError(t, json.Unmarshal([]byte(out), &it))
	assert.Equal(t, "Romantic Bali Escape", it.TripTitle)
}

func TestRefine_FromFile(t *testing.T) {
	clearKeys(t)
	raw, err := json.Marshal(itinerary.Itinerary{TripTitle: "Lisbon Weekend", Overview: "old"})
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "trip.json")
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	out, _, err := execute(t, "refine", "-f", path, "-i", "more fado")
	require.NoError(t, err)

	var it itinerary.Itinerary
	require.NoError(t, json.Unmarshal([]byte(out), &it))
	assert.Equal(t, "Lisbon Weekend (Refined)", it.TripTitle)
	assert.Equal(t, "Updated based on your request: more fado", it.Overview)
}

func TestRefine_KeepsFieldsOutsideTheModel(t *testing.T) {
	clearKeys(t)
	path := filepath.Join(t.TempDir(), "trip.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"trip_title":"Porto","notes":{"wine":"port"}}`), 0o600))

	out, _, err := execute(t, "refine", "-f", path, "-i", "add a river cruise")
	require.NoError(t, err)

	var got map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.JSONEq(t, `{"wine":"port"}`, string(got["notes"]))
	assert.JSONEq(t, `"Porto (Refined)"`, string(got["trip_title"]))
}

func TestRefine_RejectsNonObjectFile(t *testing.T) {
	clearKeys(t)
	path := filepath.Join(t.TempDir(), "trip.json")
	require.NoError(t, os.WriteFile(path, []byte(`["day 1"]`), 0o600))

	_, _, err := execute(t, "refine", "-f", path, "-i", "more fado")
	assert.ErrorIs(t, err, itinerary.ErrInvalidItinerary)
}

func TestCheckEnv_MalformedDotEnv(t *testing.T) {
	clearKeys(t)
	require.NoError(t, os.WriteFile(".env", []byte(`{"not":"dotenv"}`), 0o600))

	_, _, err := execute(t, "check-env")
	assert.ErrorContains(t, err, "load .env")
}

func TestRefine_RequiresInstruction(t *testing.T) {
	clearKeys(t)
	_, _, err := execute(t, "refine")
	assert.Error(t, err)
}

func TestCheckEnv(t *testing.T) {
	clearKeys(t)
	t.Setenv("OPENAI_API_KEY", "sk-abcdef")

	out, _, err := execute(t, "check-env")
	require.NoError(t, err)

	var got config.KeyReport
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.True(t, got.HasOpenAIKey)
	assert.False(t, got.HasGeminiKey)
	assert.Equal(t, 9, got.OpenAIKeyLength)
	assert.NotContains(t, out, "sk-")
}
