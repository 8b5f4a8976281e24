package services

import (
	"fmt"
	"strings"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
)

// BuildContext assembles the conversation replayed to the rewriter for the
// next edit. The shape is: two seed turns establishing the original document
// and an acknowledgment, one optional summary pair covering every instruction
// older than the sliding window, then the window exchanges verbatim.
//
// Pure function: instructions is the full instruction log (oldest first) and
// window holds the most recent exchanges, so len(instructions)-len(window)
// instructions are summarised.
func BuildContext(originalContent string, instructions []string, window []domain.Exchange) []domain.Turn {
	turns := []domain.Turn{
		{Speaker: domain.SpeakerUser, Text: "This is the original wiki document being edited:\n" + originalContent},
		{Speaker: domain.SpeakerAssistant, Text: "I have reviewed the document. Send me your edit instructions."},
	}

	if summarised := len(instructions) - len(window); summarised > 0 {
		var b strings.Builder
		for i, instruction := range instructions[:summarised] {
			fmt.Fprintf(&b, "%d. %s\n", i+1, instruction)
		}
		turns = append(turns,
			domain.Turn{Speaker: domain.SpeakerUser, Text: "Edits already applied so far:\n" + strings.TrimRight(b.String(), "\n")},
			domain.Turn{Speaker: domain.SpeakerAssistant, Text: "Understood, I have the prior edit history."},
		)
	}

	for _, exchange := range window {
		turns = append(turns, exchange.User, exchange.Assistant)
	}
	return turns
}
