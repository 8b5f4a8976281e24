package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
)

func TestBuildContext_SeedOnly(t *testing.T) {
	turns := BuildContext("<p>doc</p>", nil, nil)

	require.Len(t, turns, 2)
	assert.Equal(t, domain.SpeakerUser, turns[0].Speaker)
	assert.Contains(t, turns[0].Text, "<p>doc</p>")
	assert.Equal(t, domain.SpeakerAssistant, turns[1].Speaker)
}

func TestBuildContext_WindowVerbatim(t *testing.T) {
	window := []domain.Exchange{
		domain.NewExchange("first", "<p>doc</p>", "<p>v1</p>"),
		domain.NewExchange("second", "<p>v1</p>", "<p>v2</p>"),
	}

	turns := BuildContext("<p>doc</p>", []string{"first", "second"}, window)

	// No summary pair while every instruction is still inside the window.
	require.Len(t, turns, 6)
	assert.Equal(t, window[0].User.Text, turns[2].Text)
	assert.Equal(t, window[0].Assistant.Text, turns[3].Text)
	assert.Equal(t, window[1].User.Text, turns[4].Text)
	assert.Equal(t, window[1].Assistant.Text, turns[5].Text)
}

func TestBuildContext_SummarisesEvictedInstructions(t *testing.T) {
	window := []domain.Exchange{
		domain.NewExchange("third", "<p>v2</p>", "<p>v3</p>"),
		domain.NewExchange("fourth", "<p>v3</p>", "<p>v4</p>"),
	}
	instructions := []string{"first", "second", "third", "fourth"}

	turns := BuildContext("<p>doc</p>", instructions, window)

	require.Len(t, turns, 8)
	summary := turns[2]
	assert.Equal(t, domain.SpeakerUser, summary.Speaker)
	assert.Contains(t, summary.Text, "1. first")
	assert.Contains(t, summary.Text, "2. second")
	assert.NotContains(t, summary.Text, "third")
	assert.Equal(t, domain.SpeakerAssistant, turns[3].Speaker)

	// Window exchanges follow the summary pair, in order.
	assert.Equal(t, window[0].User.Text, turns[4].Text)
	assert.Equal(t, window[1].Assistant.Text, turns[7].Text)
}

func TestBuildContext_UserTurnMatchesWirePrompt(t *testing.T) {
	exchange := domain.NewExchange("tighten", "<p>doc</p>", "<p>tight</p>")
	assert.Equal(t, domain.EditPrompt("<p>doc</p>", "tighten"), exchange.User.Text)
}
