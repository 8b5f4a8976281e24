package domain

import "fmt"

// Speaker identifies who produced a conversation turn.
type Speaker string

const (
	// SpeakerUser is a turn authored by the user.
	SpeakerUser Speaker = "user"

	// SpeakerAssistant is a turn authored by the rewrite model.
	SpeakerAssistant Speaker = "assistant"
)

// Turn is a single message in a rewrite conversation.
type Turn struct {
	// Speaker is who authored the turn.
	Speaker Speaker

	// Text is the message payload.
	Text string
}

// Exchange is one full edit round-trip: the user turn carrying the current
// document and instruction, and the assistant turn carrying the rewritten
// document. Exchanges inside the sliding window are replayed verbatim on the
// next rewrite call.
type Exchange struct {
	// Instruction is the edit instruction that produced this exchange.
	Instruction string

	// User is the request turn sent to the model.
	User Turn

	// Assistant is the model's reply turn.
	Assistant Turn
}

// DefaultWindowSize is the number of full exchanges kept verbatim in the
// sliding window. Anything older is compacted into a numbered instruction
// summary to bound the request payload as the session grows.
const DefaultWindowSize = 2

// EditPrompt builds the user-turn text for one edit round. The controller
// stores this exact text in the exchange window and the rewrite client sends
// it on the wire, so the replayed history matches what the model actually saw.
func EditPrompt(content, instruction string) string {
	return fmt.Sprintf("Current document:\n%s\n\nEdit instruction:\n%s", content, instruction)
}

// NewExchange builds the exchange recorded after a successful rewrite.
func NewExchange(instruction, content, rewritten string) Exchange {
	return Exchange{
		Instruction: instruction,
		User:        Turn{Speaker: SpeakerUser, Text: EditPrompt(content, instruction)},
		Assistant:   Turn{Speaker: SpeakerAssistant, Text: rewritten},
	}
}
