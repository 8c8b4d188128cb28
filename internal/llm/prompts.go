package llm

import (
	_ "embed"
	"strings"
)

//go:embed prompts/rephrase_v1.txt
var rephraseSystemV1 string

// Message is one chat turn sent to a provider.
type Message struct {
	Role    string
	Content string
}

// BuildRephrasePrompt returns the chat messages for a rephrase request.
func BuildRephrasePrompt(input RephraseInput) []Message {
	user := strings.TrimSpace(input.Text)
	if section := strings.TrimSpace(input.Section); section != "" {
		user = "Resume section: " + section + "\n\n" + user
	}
	return []Message{
		{Role: "system", Content: strings.TrimSpace(rephraseSystemV1)},
		{Role: "user", Content: user},
	}
}
