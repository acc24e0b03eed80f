package ai

import "strings"

// CleanJSON removes markdown code fences and any chatter around the outermost
// JSON object (e.g. "Here you go: ```json {...} ```").
func CleanJSON(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	input = strings.TrimSpace(input)

	start := strings.Index(input, "{")
	end := strings.LastIndex(input, "}")
	if start == -1 || end <= start {
		return input
	}
	return input[start : end+1]
}
