package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAuthorTitle_DashPattern(t *testing.T) {
	author, title := ParseAuthorTitle("Tolkien - The Hobbit")
	assert.Equal(t, "Tolkien", author)
	assert.Equal(t, "The Hobbit", title)
}

func TestParseAuthorTitle_DashPattern_ExtraWhitespace(t *testing.T) {
	author, title := ParseAuthorTitle("  Frank Herbert   -   Dune  ")
	assert.Equal(t, "Frank Herbert", author)
	assert.Equal(t, "Dune", title)
}

func TestParseAuthorTitle_EnDashAndEmDash(t *testing.T) {
	author, title := ParseAuthorTitle("Tolkien – The Hobbit")
	assert.Equal(t, "Tolkien", author)
	assert.Equal(t, "The Hobbit", title)

	author, title = ParseAuthorTitle("Tolkien — The Hobbit")
	assert.Equal(t, "Tolkien", author)
	assert.Equal(t, "The Hobbit", title)
}

func TestParseAuthorTitle_ByPattern(t *testing.T) {
	author, title := ParseAuthorTitle("The Hobbit by Tolkien")
	assert.Equal(t, "Tolkien", author)
	assert.Equal(t, "The Hobbit", title)
}

func TestParseAuthorTitle_ByPattern_CaseInsensitive(t *testing.T) {
	author, title := ParseAuthorTitle("The Hobbit BY Tolkien")
	assert.Equal(t, "Tolkien", author)
	assert.Equal(t, "The Hobbit", title)
}

func TestParseAuthorTitle_DashWinsOverBy(t *testing.T) {
	// Both patterns present: the dash rule has priority and rules are
	// never combined
	author, title := ParseAuthorTitle("Tolkien - The Hobbit by Tolkien")
	assert.Equal(t, "Tolkien", author)
	assert.Equal(t, "The Hobbit by Tolkien", title)
}

func TestParseAuthorTitle_NoPattern(t *testing.T) {
	author, title := ParseAuthorTitle("Dune")
	assert.Equal(t, "", author)
	assert.Equal(t, "Dune", title)
}

func TestBuildSearchQuery(t *testing.T) {
	assert.Equal(t, "The Hobbit Tolkien", BuildSearchQuery("The Hobbit", "Tolkien"))
	assert.Equal(t, "Dune", BuildSearchQuery("Dune", ""))
	assert.Equal(t, "", BuildSearchQuery("", ""))
}

func TestIsBookExtension(t *testing.T) {
	assert.True(t, IsBookExtension(".pdf"))
	assert.True(t, IsBookExtension("pdf"))
	assert.True(t, IsBookExtension(".EPUB"))
	assert.True(t, IsBookExtension(".azw3"))
	assert.False(t, IsBookExtension(".docx"))
	assert.False(t, IsBookExtension(".mp3"))
	assert.False(t, IsBookExtension(""))
}
