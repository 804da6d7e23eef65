package generation

import (
	"fmt"
	"strings"

	"github.com/lawmate-ai/backend/models"
)

const (
	systemPromptWithContext = "You are an Indian legal assistant. " +
		"Use the provided legal context to answer accurately."
	systemPromptNoContext = "You are an Indian legal assistant. " +
		"Answer clearly even if no documents are available."

	// noContextPlaceholder stands in for the context block when retrieval
	// came back empty.
	noContextPlaceholder = "No retrieved documents."
)

// BuildPrompt assembles the single-turn completion prompt from the system
// instruction, the service label, the joined passage texts and the verbatim
// query. Prior conversation turns are deliberately not included.
func BuildPrompt(query string, passages []models.RetrievedPassage, service string) string {
	systemPrompt := systemPromptNoContext
	contextBlock := noContextPlaceholder
	if len(passages) > 0 {
		systemPrompt = systemPromptWithContext
		texts := make([]string, 0, len(passages))
		for _, p := range passages {
			texts = append(texts, p.Text)
		}
		contextBlock = strings.Join(texts, "\n\n")
	}

	return fmt.Sprintf(`%s

Service Area: %s

Context:
%s

Question:
%s

Answer:
`, systemPrompt, models.ServiceLabel(service), contextBlock, query)
}
