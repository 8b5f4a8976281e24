package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
)

func TestConfigOnly(t *testing.T) {
	assert.True(t, configOnly(versionCmd))
	assert.True(t, configOnly(configureCmd))
	assert.True(t, configOnly(rootCmd))

	assert.False(t, configOnly(editCmd))
	assert.False(t, configOnly(newCmd))
	assert.False(t, configOnly(dailyCmd))
	assert.False(t, configOnly(historyCmd))
}

func TestHelpRunsWithoutConfiguration(t *testing.T) {
	// Help must never demand a valid config, wherever the flag sits.
	for _, args := range [][]string{
		{"edit", "--help"},
		{"--help"},
		{"help", "daily"},
	} {
		buf := new(bytes.Buffer)
		rootCmd.SetOut(buf)
		rootCmd.SetArgs(args)

		err := rootCmd.Execute()

		rootCmd.SetArgs(nil)
		require.NoError(t, err, "args %v", args)
		assert.NotEmpty(t, buf.String())
	}
}

func TestVersionRunsWithFlagBeforeCommand(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"--verbose", "version"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "inkwell version")
}

// closeTrackingStore records whether Close was called.
type closeTrackingStore struct {
	closed bool
}

func (s *closeTrackingStore) Record(context.Context, domain.HistoryEntry) error { return nil }
func (s *closeTrackingStore) List(context.Context, int) ([]domain.HistoryEntry, error) {
	return nil, nil
}
func (s *closeTrackingStore) Close() error {
	s.closed = true
	return nil
}

func TestCloseHistory(t *testing.T) {
	oldStore := historyStore
	defer func() { historyStore = oldStore }()

	tracker := &closeTrackingStore{}
	historyStore = tracker
	closeHistory()
	assert.True(t, tracker.closed)

	// Nil store must not panic.
	historyStore = nil
	closeHistory()
}
