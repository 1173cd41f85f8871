package chunk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunk_SplitsOnHeadings(t *testing.T) {
	c := New(DefaultOptions())
	raw := []byte("intro text\n\n# First\nbody one\n\n## Second\nbody two\n")
	chunks := c.Chunk(raw, "skillA", "file.md", "skillA/file.md", []string{"skillA"})
	require.Len(t, chunks, 3)
	assert.Equal(t, "intro", chunks[0].Section)
	assert.Equal(t, "First", chunks[1].Section)
	assert.Equal(t, "Second", chunks[2].Section)
}

func TestChunk_NoHeadingsYieldsMainSection(t *testing.T) {
	c := New(DefaultOptions())
	chunks := c.Chunk([]byte("just some plain text with no headings"), "s", "f.md", "s/f.md", nil)
	require.Len(t, chunks, 1)
	assert.Equal(t, "main", chunks[0].Section)
}

func TestChunk_EmptyContentYieldsNoChunks(t *testing.T) {
	c := New(DefaultOptions())
	assert.Empty(t, c.Chunk([]byte("   \n\n  "), "s", "f.md", "s/f.md", nil))
}

func TestChunk_ExactlyMaxTokensProducesOneChunk(t *testing.T) {
	c := New(Options{MaxTokens: 400, OverlapTokens: 50})
	words := make([]string, 400)
	for i := range words {
		words[i] = "word"
	}
	body := strings.Join(words, " ")
	chunks := c.Chunk([]byte("# Heading\n"+body), "s", "f.md", "s/f.md", nil)
	require.Len(t, chunks, 1)
}

func TestChunk_OverlongSectionSplitsWithOverlap(t *testing.T) {
	c := New(Options{MaxTokens: 10, OverlapTokens: 3})
	words := make([]string, 25)
	for i := range words {
		words[i] = "w" + string(rune('a'+i%26))
	}
	body := strings.Join(words, " ")
	chunks := c.Chunk([]byte("# H\n"+body), "s", "f.md", "s/f.md", nil)
	require.Greater(t, len(chunks), 1)
	for _, ch := range chunks {
		assert.LessOrEqual(t, len(strings.Fields(ch.Text)), 10)
	}
}

func TestChunk_IDStableForIdenticalContent(t *testing.T) {
	c := New(DefaultOptions())
	raw := []byte("# Heading\nsome body text")
	first := c.Chunk(raw, "skillA", "file.md", "skillA/file.md", nil)
	second := c.Chunk(raw, "skillA", "file.md", "skillA/file.md", nil)
	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].ID, second[0].ID)
}

func TestChunk_ContextualTextUsesDescriptionLine(t *testing.T) {
	c := New(DefaultOptions())
	raw := []byte("description: \"A test skill\"\n\n# Heading\nbody")
	chunks := c.Chunk(raw, "skillA", "file.md", "skillA/file.md", nil)
	// The description line precedes the first heading, so it forms an
	// "intro" chunk ahead of the "Heading" chunk.
	require.Len(t, chunks, 2)
	assert.Contains(t, chunks[1].ContextualText, "[skillA | file.md]")
	assert.Contains(t, chunks[1].ContextualText, "A test skill")
}

func TestChunk_ContextFallsBackWithoutDescription(t *testing.T) {
	c := New(DefaultOptions())
	chunks := c.Chunk([]byte("# Heading\nbody"), "skillA", "file.md", "skillA/file.md", nil)
	require.Len(t, chunks, 1)
	assert.Contains(t, chunks[0].ContextualText, "skillA — file.md")
}

func TestChunk_DifferentIDsForDifferentSections(t *testing.T) {
	c := New(DefaultOptions())
	raw := []byte("# One\nsame body text\n\n# Two\nsame body text")
	chunks := c.Chunk(raw, "s", "f.md", "s/f.md", nil)
	require.Len(t, chunks, 2)
	assert.NotEqual(t, chunks[0].ID, chunks[1].ID)
}
