package confluence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPageID(t *testing.T) {
	tests := []struct {
		name      string
		reference string
		wantID    string
		wantOK    bool
	}{
		{
			name:      "full page URL",
			reference: "https://example.atlassian.net/wiki/spaces/DOC/pages/123456/My+Page",
			wantID:    "123456",
			wantOK:    true,
		},
		{
			name:      "URL without trailing title",
			reference: "https://example.atlassian.net/wiki/spaces/DOC/pages/987",
			wantID:    "987",
			wantOK:    true,
		},
		{
			name:      "bare numeric id",
			reference: "123456",
			wantID:    "123456",
			wantOK:    true,
		},
		{
			name:      "numeric id with whitespace",
			reference: "  42  ",
			wantID:    "42",
			wantOK:    true,
		},
		{
			name:      "garbage",
			reference: "not a page",
			wantOK:    false,
		},
		{
			name:      "URL without pages segment",
			reference: "https://example.atlassian.net/wiki/spaces/DOC/overview",
			wantOK:    false,
		},
		{
			name:      "empty",
			reference: "",
			wantOK:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := ExtractPageID(tt.reference)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantID, id)
			}
		})
	}
}

func TestClient_PageURL(t *testing.T) {
	client, err := NewClient(Config{BaseURL: "https://example.atlassian.net", SpaceKey: "DOC"})
	assert.NoError(t, err)
	assert.Equal(t, "https://example.atlassian.net/wiki/spaces/DOC/pages/123", client.PageURL("123"))
}
