package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	html, err := NewParser().Parse([]byte("**Mass** at 9am\nmain chapel"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "<strong>Mass</strong>")
	assert.Contains(t, string(html), "<br />")
}

func TestParse_EscapesRawHTML(t *testing.T) {
	html, err := NewParser().Parse([]byte("<script>alert(1)</script>"))
	require.NoError(t, err)
	assert.NotContains(t, string(html), "<script>")
}

func TestParseWithFrontmatter(t *testing.T) {
	source := []byte("---\ntitle: Charity Walk\ncategory: Event\n---\nRegistration is open.\n")

	html, meta, err := NewParser().ParseWithFrontmatter(source)
	require.NoError(t, err)
	assert.Equal(t, "Charity Walk", meta["title"])
	assert.Equal(t, "Event", meta["category"])
	assert.Contains(t, string(html), "Registration is open.")
	assert.NotContains(t, string(html), "title:")

	_, meta, err = NewParser().ParseWithFrontmatter([]byte("no frontmatter"))
	require.NoError(t, err)
	assert.NotNil(t, meta)
	assert.Empty(t, meta)
}

func TestBody(t *testing.T) {
	assert.Equal(t, "Registration is open.", string(Body([]byte("---\ntitle: Walk\n---\nRegistration is open.\n"))))
	assert.Equal(t, "plain text", string(Body([]byte("plain text\n"))))
	assert.Equal(t, "---\nunterminated", string(Body([]byte("---\nunterminated"))))
}
