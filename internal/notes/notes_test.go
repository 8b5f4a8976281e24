package notes

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_HeadersSelectSections(t *testing.T) {
	input := `preamble that belongs nowhere
### Engine
- frame pacing fix landed
- profiling session Thursday
### Art
- concept review
`
	sections := Parse(input)

	assert.Equal(t, []string{"- frame pacing fix landed", "- profiling session Thursday"}, sections["Engine"])
	assert.Equal(t, []string{"- concept review"}, sections["Art"])
	// Lines before the first header are dropped.
	for _, key := range SectionKeys {
		assert.NotContains(t, sections[key], "preamble that belongs nowhere")
	}
}

func TestParse_AliasMatching(t *testing.T) {
	cases := map[string]string{
		"### Programmers":     "Program",
		"### engine team":     "Engine",
		"### World Building":  "World",
		"### Combat Design":   "Combat",
		"### PM updates":      "PM",
		"### Leads sync":      "Leads",
		"### Executive items": "Leads",
		"### Notices":         "Notices",
		"### misc":            "Notices",
	}
	for header, want := range cases {
		sections := Parse(header + "\nitem\n")
		assert.Equal(t, []string{"item"}, sections[want], "header %q", header)
	}
}

func TestParse_ExactKeyLineSelectsSection(t *testing.T) {
	sections := Parse("PD\n- roadmap draft\n")
	assert.Equal(t, []string{"- roadmap draft"}, sections["PD"])
}

func TestParse_ContentLinesAreNotHeaders(t *testing.T) {
	// A bullet mentioning a team name stays in the current section.
	sections := Parse("### Engine\n- sync with the art team\n")
	assert.Equal(t, []string{"- sync with the art team"}, sections["Engine"])
	assert.Empty(t, sections["Art"])
}

func TestRenderTable_AllTeamsPresent(t *testing.T) {
	sections := Sections{"Engine": {"- one", "", "- two"}}
	table := RenderTable(sections)

	for _, key := range SectionKeys {
		assert.Contains(t, table, "<b>"+key+"</b>")
	}
	assert.Contains(t, table, "<li>- one</li><li>- two</li>")
	require.True(t, len(table) > 0)
	assert.Contains(t, table, "<th>Team</th><th>Doing</th>")
}

func TestDailyTitle(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "26/08/31", DailyTitle(now))
}
