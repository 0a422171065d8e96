package domain

import (
	"regexp"
	"strings"
)

// BookItemType distinguishes book folders from single book files
type BookItemType string

const (
	ItemTypeFolder BookItemType = "folder"
	ItemTypeFile   BookItemType = "file"
)

// BookItem is one entry from a scan of the books directory. Items are
// regenerated on every scan and never persisted.
type BookItem struct {
	ItemName    string       `json:"item_name"`
	FullPath    string       `json:"full_path"`
	Author      string       `json:"author"`
	Title       string       `json:"title"`
	SearchQuery string       `json:"search_query"`
	Type        BookItemType `json:"type"`
}

var (
	// "Author Name - Book Title" (hyphen, en dash or em dash)
	dashPattern = regexp.MustCompile(`^(.*?)\s*[-–—]+\s*(.*)$`)
	// "Book Title by Author Name"
	byPattern = regexp.MustCompile(`(?i)^(.*?)\s+by\s+(.*)$`)
)

// ParseAuthorTitle extracts author and title from a folder or file name
// using common naming patterns, e.g. "Tolkien - The Hobbit" or
// "The Hobbit by Tolkien". The first matching pattern wins; names matching
// neither become the title with an empty author.
func ParseAuthorTitle(name string) (author, title string) {
	name = strings.TrimSpace(name)

	if m := dashPattern.FindStringSubmatch(name); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}

	if m := byPattern.FindStringSubmatch(name); m != nil {
		return strings.TrimSpace(m[2]), strings.TrimSpace(m[1])
	}

	return "", name
}

// BuildSearchQuery combines title and author into a YouTube search query.
func BuildSearchQuery(title, author string) string {
	return strings.TrimSpace(title + " " + author)
}

// bookExtensions is the set of recognized ebook file extensions,
// lowercase and without the leading dot.
var bookExtensions = map[string]struct{}{
	"pdf": {}, "epub": {}, "mobi": {}, "azw": {}, "azw3": {},
	"djvu": {}, "fb2": {}, "html": {}, "lit": {}, "lrf": {},
	"odt": {}, "prc": {}, "rb": {}, "rtf": {}, "txt": {},
}

// IsBookExtension reports whether ext (with or without a leading dot,
// any case) is a recognized ebook extension.
func IsBookExtension(ext string) bool {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	_, ok := bookExtensions[ext]
	return ok
}
