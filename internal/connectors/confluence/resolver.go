package confluence

import (
	"regexp"
	"strings"
)

// pageIDPattern matches the numeric id segment of a page URL.
var pageIDPattern = regexp.MustCompile(`/pages/(\d+)`)

// numericPattern matches a bare numeric page id.
var numericPattern = regexp.MustCompile(`^\d+$`)

// ExtractPageID resolves a user-supplied reference to a page id. It accepts
// either a page URL containing a /pages/{id} segment or a raw numeric id.
// Pure parsing, no network.
func ExtractPageID(reference string) (string, bool) {
	if match := pageIDPattern.FindStringSubmatch(reference); match != nil {
		return match[1], true
	}
	trimmed := strings.TrimSpace(reference)
	if numericPattern.MatchString(trimmed) {
		return trimmed, true
	}
	return "", false
}

// ExtractID implements driven.DocumentStore.
func (c *Client) ExtractID(reference string) (string, bool) {
	return ExtractPageID(reference)
}

// PageURL returns the canonical web URL for a page id.
func (c *Client) PageURL(id string) string {
	return c.baseURL + "/wiki/spaces/" + c.spaceKey + "/pages/" + id
}
