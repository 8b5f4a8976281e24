package notion

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "paragraphs become lines",
			in:   "<p>first</p><p>second</p>",
			want: "first\nsecond",
		},
		{
			name: "breaks and list items",
			in:   "<p>a<br/>b</p><ul><li>one</li><li>two</li></ul>",
			want: "a\nb\none\ntwo",
		},
		{
			name: "inline tags stripped without newline",
			in:   "<p><b>bold</b> and <i>italic</i></p>",
			want: "bold and italic",
		},
		{
			name: "entities decoded",
			in:   "<p>a &amp; b &lt;c&gt; &quot;d&quot; &#39;e&#39;&nbsp;f</p>",
			want: `a & b <c> "d" 'e' f`,
		},
		{
			name: "excess blank lines collapsed",
			in:   "<p>a</p><p></p><p></p><p>b</p>",
			want: "a\n\nb",
		},
		{
			name: "table rows",
			in:   "<table><tbody><tr><td>x</td></tr><tr><td>y</td></tr></tbody></table>",
			want: "x\ny",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FlattenHTML(tt.in))
		})
	}
}

func TestChunkText(t *testing.T) {
	assert.Nil(t, ChunkText(""))

	exact := strings.Repeat("a", MaxChunkRunes)
	require.Len(t, ChunkText(exact), 1)

	over := strings.Repeat("a", MaxChunkRunes+1)
	chunks := ChunkText(over)
	require.Len(t, chunks, 2)
	assert.Len(t, chunks[0], MaxChunkRunes)
	assert.Len(t, chunks[1], 1)
}

func TestChunkText_RuneBoundaries(t *testing.T) {
	// Multibyte runes must not be split mid-sequence.
	text := strings.Repeat("日", MaxChunkRunes+10)
	chunks := ChunkText(text)
	require.Len(t, chunks, 2)
	assert.Equal(t, MaxChunkRunes, len([]rune(chunks[0])))
	assert.Equal(t, 10, len([]rune(chunks[1])))
}
