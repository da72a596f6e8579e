package org

// Line is the classification record for a single input line. Raw
// always holds the unmodified line; the other fields depend on Kind:
// headlines carry the star run in Marker and the body in Text, list
// items their indent, bullet, and body, drawer items and keyword
// lines a Key/Value pair, planning lines the planning keyword in Key,
// blocks their type in Key and qualifier in Value, and comments,
// table rows, inline examples, and paragraphs their payload in Text.
type Line struct {
	Kind   Kind   `json:"kind"`
	Raw    string `json:"raw"`
	Indent string `json:"indent,omitempty"`
	Marker string `json:"marker,omitempty"`
	Key    string `json:"key,omitempty"`
	Value  string `json:"value,omitempty"`
	Text   string `json:"text,omitempty"`
}

// Classify tags one line using the given rule table, trying rules in
// order and returning the first match. A nil table means the default.
// A line no rule claims falls back to a paragraph record, so
// classification always yields exactly one kind. Classification looks
// at the single line only, never at its neighbours.
func Classify(rules []Rule, line string) Line {
	if rules == nil {
		rules = defaultRules
	}
	for _, r := range rules {
		m := r.Pattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		ln := Line{Kind: r.Kind, Raw: line}
		if r.Extract != nil {
			r.Extract(m, &ln)
		}
		return ln
	}
	return Line{Kind: KindParagraph, Raw: line, Text: line}
}

// ClassifyAll classifies every line of the input in order.
func ClassifyAll(rules []Rule, lines []string) []Line {
	out := make([]Line, len(lines))
	for i, raw := range lines {
		out[i] = Classify(rules, raw)
	}
	return out
}
