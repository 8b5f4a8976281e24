package notion

import (
	"regexp"
	"strings"
)

// Mirror pages hold plain text, so wiki storage markup is flattened before
// upload: block-level close tags become newlines, everything else is
// stripped.

var (
	breakPattern   = regexp.MustCompile(`(?i)<br\s*/?>`)
	blockPattern   = regexp.MustCompile(`(?i)</(p|li|tr|h[1-6]|div|table)>`)
	tagPattern     = regexp.MustCompile(`<[^>]*>`)
	newlinePattern = regexp.MustCompile(`\n{3,}`)
)

var entities = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&nbsp;", " ",
)

// FlattenHTML converts storage-format markup to plain text, preserving
// block boundaries as newlines.
func FlattenHTML(html string) string {
	text := breakPattern.ReplaceAllString(html, "\n")
	text = blockPattern.ReplaceAllString(text, "\n")
	text = tagPattern.ReplaceAllString(text, "")
	text = entities.Replace(text)
	text = newlinePattern.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// MaxChunkRunes is the per-block text limit imposed by the mirror API.
const MaxChunkRunes = 2000

// ChunkText splits text into rune-bounded chunks of at most MaxChunkRunes.
func ChunkText(text string) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	chunks := make([]string, 0, len(runes)/MaxChunkRunes+1)
	for len(runes) > MaxChunkRunes {
		chunks = append(chunks, string(runes[:MaxChunkRunes]))
		runes = runes[MaxChunkRunes:]
	}
	return append(chunks, string(runes))
}
