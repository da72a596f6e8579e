package org

import (
	"regexp"
	"strings"
)

// Headline is the decomposition of a headline into level, title,
// trailing tags, and leading state keyword.
type Headline struct {
	Level   int      `json:"level"`
	Title   string   `json:"title"`
	Tags    []string `json:"tags,omitempty"`
	Keyword string   `json:"keyword,omitempty"`
}

// todoKeywords is the fixed headline state vocabulary. Only the first
// token is ever tested against it; TODOX or lowercase todo never
// match.
var todoKeywords = map[string]bool{
	"TODO": true,
	"DONE": true,
}

var (
	headlineStarsRe = regexp.MustCompile(`^(\*+)\s+`)
	trailingTagsRe  = regexp.MustCompile(`(?:^|\s)(:(?:[^\s:]*:)+)\s*$`)
)

// DecomposeHeadline splits headline text into its parts. The input
// may be a full headline line or just the text after the stars; a
// leading star run followed by whitespace is stripped first and its
// length recorded as the level. Tags are stripped before the keyword
// test, so a headline that is nothing but a keyword and a tag group
// still decomposes cleanly. A tag-like group anywhere but the end of
// the line is left in the title.
func DecomposeHeadline(text string) Headline {
	var h Headline

	if m := headlineStarsRe.FindStringSubmatch(text); m != nil {
		h.Level = len(m[1])
		text = text[len(m[0]):]
	}

	if m := trailingTagsRe.FindStringSubmatch(text); m != nil {
		for _, tag := range strings.Split(strings.Trim(m[1], ":"), ":") {
			if tag != "" {
				h.Tags = append(h.Tags, tag)
			}
		}
		text = text[:len(text)-len(m[0])]
	}

	text = strings.TrimSpace(text)
	if fields := strings.Fields(text); len(fields) > 0 && todoKeywords[fields[0]] {
		h.Keyword = fields[0]
		text = strings.TrimSpace(strings.TrimPrefix(text, fields[0]))
	}

	h.Title = text
	return h
}
