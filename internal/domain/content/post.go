package content

import (
	"fmt"
	"strings"
	"time"
)

type PostMeta struct {
	Title       string
	Slug        string
	Description string
	Author      string
	Category    string
	Date        time.Time
	Updated     time.Time

	Tags    []string
	Aliases []string
	Cover   string

	Hidden bool
	Draft  bool

	// ReadingTime is the author-supplied label ("12 min read"); when empty
	// the build derives one from WordCount.
	ReadingTime string
	WordCount   int

	Headings []Heading
}

type Heading struct {
	Level int
	ID    string
	Text  string
}

type BodyRef struct {
	SourcePath  string
	ContentHash string
}

type Post struct {
	Meta PostMeta
	Body BodyRef
}

const wordsPerMinute = 200

func ReadingTimeFor(words int) string {
	mins := (words + wordsPerMinute - 1) / wordsPerMinute
	if mins < 1 {
		mins = 1
	}
	return fmt.Sprintf("%d min read", mins)
}

// ReadingLabel returns the author label or one derived from the word count.
func (m PostMeta) ReadingLabel() string {
	if s := strings.TrimSpace(m.ReadingTime); s != "" {
		return s
	}
	return ReadingTimeFor(m.WordCount)
}

// Normalize trims fields and dedupes tags and aliases. Tags keep the
// author's casing for display; duplicates are detected case-insensitively.
// Categories are upper-cased the way the club labels them (DEEP DIVE,
// TUTORIAL ...).
func (m *PostMeta) Normalize() {
	m.Title = strings.TrimSpace(m.Title)
	m.Slug = strings.TrimSpace(m.Slug)
	m.Description = strings.TrimSpace(m.Description)
	m.Author = strings.TrimSpace(m.Author)
	m.Category = strings.ToUpper(strings.TrimSpace(m.Category))
	m.ReadingTime = strings.TrimSpace(m.ReadingTime)

	m.Tags = normalizeStrings(m.Tags, false)
	m.Aliases = normalizeStrings(m.Aliases, true)
}

// TagKey is the URL/index key of a tag.
func TagKey(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

func normalizeStrings(items []string, lower bool) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if lower {
			item = strings.ToLower(item)
		}
		key := strings.ToLower(item)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}
