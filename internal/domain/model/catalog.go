// Package model contains domain models passed between layers.
package model

import (
	"strconv"
	"strings"

	"github.com/okian/crosstune/internal/domain/vector"
)

// noGenres is the placeholder used by catalog exports for untagged movies.
const noGenres = "(no genres listed)"

// Movie is one catalog row. Immutable after load.
type Movie struct {
	Title     string        // lookup key, e.g. "Heat (1995)"
	Year      int           // release year, 0 when the title carries none
	RawGenres string        // pipe-delimited, e.g. "Action|Crime"
	Genres    []string      // RawGenres split and trimmed
	GenreText string        // text fed to the vectorizer
	Vector    vector.Sparse // position in the shared space
}

// Track is one catalog row. Immutable after load.
type Track struct {
	Name      string
	Artist    string
	Tags      string        // raw tags as exported
	TagsClean string        // text fed to the vectorizer
	Vector    vector.Sparse // position in the shared space
}

// ID identifies a track by artist and name.
func (t Track) ID() string {
	return t.Artist + " - " + t.Name
}

// ParseYear extracts a trailing "(YYYY)" from a movie title.
func ParseYear(title string) (int, bool) {
	s := strings.TrimSpace(title)
	if len(s) < 6 || s[len(s)-1] != ')' {
		return 0, false
	}
	open := strings.LastIndexByte(s, '(')
	if open < 0 || len(s)-open != 6 {
		return 0, false
	}
	year, err := strconv.Atoi(s[open+1 : len(s)-1])
	if err != nil || year <= 0 {
		return 0, false
	}
	return year, true
}

// SplitGenres splits a pipe-delimited genre list, dropping blanks and the
// "(no genres listed)" placeholder.
func SplitGenres(raw string) []string {
	var out []string
	for _, g := range strings.Split(raw, "|") {
		g = strings.TrimSpace(g)
		if g == "" || strings.EqualFold(g, noGenres) {
			continue
		}
		out = append(out, g)
	}
	return out
}

// GenreText derives vectorizer text from raw genres.
func GenreText(raw string) string {
	return strings.ToLower(strings.Join(SplitGenres(raw), " "))
}

// CleanTags derives vectorizer text from raw track tags. Commas, pipes and
// semicolons separate tags.
func CleanTags(raw string) string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '|' || r == ';'
	})
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			parts = append(parts, f)
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}
