package ingest

import (
	"bytes"
	"errors"
	"gopkg.in/yaml.v3"
	"path/filepath"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

var errNoFrontMatter = errors.New("no front matter found")
var errInvalidFrontMatter = errors.New("invalid front matter")

type FrontMatter struct {
	Title       string `yaml:"title"`
	Slug        string `yaml:"slug"`
	Description string `yaml:"description"`
	Author      string `yaml:"author"`
	Category    string `yaml:"category"`
	Date        string `yaml:"date"`
	Updated     string `yaml:"updated"`
	ReadingTime string `yaml:"reading_time"`

	Tags    []string `yaml:"tags"`
	Aliases []string `yaml:"aliases"`
	Cover   string   `yaml:"cover"`

	Hidden bool `yaml:"hidden"`
	Draft  bool `yaml:"draft"`
}

// normalizeNewlines converts CRLF and lone CR to LF.
func normalizeNewlines(b []byte) []byte {
	b = bytes.ReplaceAll(b, []byte("\r\n"), []byte("\n"))
	return bytes.ReplaceAll(b, []byte("\r"), []byte("\n"))
}

// ParseFrontMatter splits a "---" delimited YAML header from the body.
// Without a header the whole (newline-normalised) input is the body and
// errNoFrontMatter is returned.
func ParseFrontMatter(raw []byte) (FrontMatter, []byte, error) {
	norm := normalizeNewlines(raw)
	trimmed := bytes.TrimSpace(norm)
	if len(trimmed) == 0 {
		return FrontMatter{}, nil, errNoFrontMatter
	}

	const (
		sep      = "---"
		sepLine  = sep + "\n"
		closeMid = "\n" + sep + "\n"
	)

	if !bytes.HasPrefix(trimmed, []byte(sepLine)) {
		return FrontMatter{}, norm, errNoFrontMatter
	}

	rest := trimmed[len(sepLine):]

	var yamlPart, bodyPart []byte

	if parts := bytes.SplitN(rest, []byte(closeMid), 2); len(parts) == 2 {
		yamlPart = parts[0]
		bodyPart = parts[1]
	} else if bytes.HasSuffix(rest, []byte("\n"+sep)) {
		// header only, no body
		yamlPart = rest[:len(rest)-len("\n"+sep)]
	} else if bytes.Equal(bytes.TrimSpace(rest), []byte(sep)) {
		// "---\n---"
		yamlPart = nil
	} else {
		return FrontMatter{}, norm, errInvalidFrontMatter
	}

	var fm FrontMatter
	if y := bytes.TrimSpace(yamlPart); len(y) > 0 {
		if err := yaml.Unmarshal(y, &fm); err != nil {
			return FrontMatter{}, norm, err
		}
	}
	return fm, bytes.TrimLeft(bodyPart, "\n"), nil
}

// Body returns the markdown body of a source file, with or without a
// front matter header.
func Body(raw []byte) []byte {
	_, body, err := ParseFrontMatter(raw)
	if err != nil && !errors.Is(err, errNoFrontMatter) {
		return normalizeNewlines(raw)
	}
	return body
}

func ResolveSlug(fm FrontMatter, path string) string {
	if s := strings.TrimSpace(fm.Slug); s != "" {
		return slugify(s)
	}
	base := filepath.Base(path)
	if s := slugify(strings.TrimSuffix(base, filepath.Ext(base))); s != "" && s != "index" {
		return s
	}
	return slugify(fm.Title)
}

func ParseTime(s string, loc *time.Location) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range []string{
		time.RFC3339,
		time.DateOnly,
		"2006-01-02 15:04",
		time.DateTime,
		"2006.01.02",
	} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t
		}
	}
	return time.Time{}
}

// slugify keeps letters and digits of any script, lower-cases ASCII and
// turns every other run into a single '-'.
func slugify(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	var out []rune
	lastDash := false

	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		s = s[size:]

		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if 'A' <= r && r <= 'Z' {
				r += 'a' - 'A'
			}
			out = append(out, r)
			lastDash = false
			continue
		}
		if !lastDash && len(out) > 0 {
			out = append(out, '-')
			lastDash = true
		}
	}
	for len(out) > 0 && out[len(out)-1] == '-' {
		out = out[:len(out)-1]
	}
	return string(out)
}
