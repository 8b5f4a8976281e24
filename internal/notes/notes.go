// Package notes parses free-form daily meeting notes into per-team sections
// and renders them as a storage-format table. It is a pure text transform
// with no state and no network.
package notes

import (
	"strings"
	"time"
)

// Sections maps a team key to its bullet lines, in input order.
type Sections map[string][]string

// SectionKeys is the fixed set of teams, in render order.
var SectionKeys = []string{
	"Program",
	"Engine",
	"World",
	"Combat",
	"Art",
	"PM",
	"PD",
	"Leads",
	"Notices",
}

// headerAliases maps lowercase header fragments to their canonical key.
// Order matters: the first matching alias wins.
var headerAliases = []struct {
	fragment string
	key      string
}{
	{"program", "Program"},
	{"engine", "Engine"},
	{"world", "World"},
	{"combat", "Combat"},
	{"art", "Art"},
	{"pm", "PM"},
	{"pd", "PD"},
	{"lead", "Leads"},
	{"exec", "Leads"},
	{"notice", "Notices"},
	{"misc", "Notices"},
}

// Parse splits raw meeting input into sections. A line starting with "###"
// (or exactly matching a section key) selects the current section; every
// following non-blank line is appended to it. Lines before the first header
// are dropped.
func Parse(input string) Sections {
	sections := make(Sections, len(SectionKeys))
	for _, key := range SectionKeys {
		sections[key] = nil
	}

	var current string
	for _, line := range strings.Split(input, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		header := strings.TrimSpace(strings.TrimPrefix(trimmed, "###"))
		if key, ok := matchSection(header); ok && (strings.HasPrefix(trimmed, "###") || isSectionKey(trimmed)) {
			current = key
			continue
		}
		if current != "" {
			sections[current] = append(sections[current], line)
		}
	}
	return sections
}

func matchSection(header string) (string, bool) {
	lower := strings.ToLower(header)
	for _, alias := range headerAliases {
		if strings.Contains(lower, alias.fragment) {
			return alias.key, true
		}
	}
	return "", false
}

func isSectionKey(s string) bool {
	for _, key := range SectionKeys {
		if s == key {
			return true
		}
	}
	return false
}

// RenderTable renders sections as a two-column storage-format table with one
// row per team, teams without entries included.
func RenderTable(sections Sections) string {
	var b strings.Builder
	b.WriteString("<table><thead><tr><th>Team</th><th>Doing</th></tr></thead><tbody>")
	for _, key := range SectionKeys {
		b.WriteString("<tr><td><b>")
		b.WriteString(key)
		b.WriteString("</b></td><td><ul>")
		for _, line := range sections[key] {
			item := strings.TrimSpace(line)
			if item == "" {
				continue
			}
			b.WriteString("<li>")
			b.WriteString(item)
			b.WriteString("</li>")
		}
		b.WriteString("</ul></td></tr>")
	}
	b.WriteString("</tbody></table>")
	return b.String()
}

// DailyTitle returns the conventional YY/MM/DD title for today's notes page.
func DailyTitle(now time.Time) string {
	return now.Format("06/01/02")
}
