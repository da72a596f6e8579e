package org

import (
	"regexp"
	"strings"
)

// Kind identifies the syntactic class assigned to a line during
// classification.
type Kind string

const (
	KindHeadline       Kind = "headline"
	KindBlank          Kind = "blank"
	KindDefinitionList Kind = "definition-list"
	KindOrderedList    Kind = "ordered-list"
	KindUnorderedList  Kind = "unordered-list"
	KindDrawerBegin    Kind = "property-drawer-begin-block"
	KindDrawerEnd      Kind = "property-drawer-end-block"
	KindDrawerItem     Kind = "property-drawer-item"
	KindMetadata       Kind = "metadata"
	KindBeginBlock     Kind = "begin-block"
	KindEndBlock       Kind = "end-block"
	KindComment        Kind = "comment"
	KindProperty       Kind = "property"
	KindTableSeparator Kind = "table-separator"
	KindTableRow       Kind = "table-row"
	KindInlineExample  Kind = "inline-example"
	KindHorizontalRule Kind = "horizontal-rule"
	KindParagraph      Kind = "paragraph"
)

// Rule pairs a classification kind with the pattern that recognizes
// it and an extractor that fills the Line record from the submatches.
// A nil Extract records no captures beyond the raw line.
type Rule struct {
	Kind    Kind
	Pattern *regexp.Regexp
	Extract func(m []string, ln *Line)
}

// defaultRules is the built-in classification table. Order is
// precedence: Classify tries rules top to bottom and the first match
// wins. That ordering is load-bearing; it is what keeps #+BEGIN_ lines
// out of the keyword rule, the drawer delimiters out of the
// drawer-item rule, and unindented star bullets inside the headline
// rule. The final paragraph rule matches any line, so classification
// cannot fail.
var defaultRules = []Rule{
	{Kind: KindHeadline, Pattern: regexp.MustCompile(`^(\*+)\s(.*)$`), Extract: captureHeadline},
	{Kind: KindBlank, Pattern: regexp.MustCompile(`^\s*$`)},
	{Kind: KindDefinitionList, Pattern: regexp.MustCompile(`^(\s*)([-+*])\s+(.*?)\s*::\s*(.*)$`), Extract: captureDefinition},
	{Kind: KindOrderedList, Pattern: regexp.MustCompile(`^(\s*)(\d+[.)])\s+(.*)$`), Extract: captureList},
	{Kind: KindUnorderedList, Pattern: regexp.MustCompile(`^(\s*)([-+*])\s+(.*)$`), Extract: captureList},
	{Kind: KindDrawerBegin, Pattern: regexp.MustCompile(`^(\s*):PROPERTIES:\s*$`), Extract: captureIndent},
	{Kind: KindDrawerEnd, Pattern: regexp.MustCompile(`^(\s*):END:\s*$`), Extract: captureIndent},
	{Kind: KindDrawerItem, Pattern: regexp.MustCompile(`^(\s*):([^\s:]+):(?:\s+(.*))?$`), Extract: captureKeyValue},
	{Kind: KindMetadata, Pattern: regexp.MustCompile(`^(\s*)(SCHEDULED|DEADLINE|CLOSED):\s*(.*)$`), Extract: captureKeyValue},
	{Kind: KindBeginBlock, Pattern: regexp.MustCompile(`^(\s*)#\+BEGIN_(\S+)\s*(.*)$`), Extract: captureKeyValue},
	{Kind: KindEndBlock, Pattern: regexp.MustCompile(`^(\s*)#\+END_(\S+)\s*(.*)$`), Extract: captureKeyValue},
	{Kind: KindComment, Pattern: regexp.MustCompile(`^#\s(.*)$`), Extract: captureText},
	{Kind: KindProperty, Pattern: regexp.MustCompile(`^(\s*)#\+([^\s:]+):\s*(.*)$`), Extract: captureKeyValue},
	{Kind: KindTableSeparator, Pattern: regexp.MustCompile(`^(\s*)\|[-+|\s]*$`), Extract: captureIndent},
	{Kind: KindTableRow, Pattern: regexp.MustCompile(`^(\s*)\|(.*)$`), Extract: captureIndentText},
	{Kind: KindInlineExample, Pattern: regexp.MustCompile(`^(\s*):\s(.*)$`), Extract: captureIndentText},
	{Kind: KindHorizontalRule, Pattern: regexp.MustCompile(`^\s*-{5,}\s*$`)},
	{Kind: KindParagraph, Pattern: regexp.MustCompile(`^.*$`), Extract: captureParagraph},
}

// DefaultRules returns a copy of the built-in rule table. Callers may
// add, remove, or reorder rules in the copy without affecting the
// table used by the package-level parse functions.
func DefaultRules() []Rule {
	out := make([]Rule, len(defaultRules))
	copy(out, defaultRules)
	return out
}

func captureHeadline(m []string, ln *Line) {
	ln.Marker = m[1]
	ln.Text = m[2]
}

func captureIndent(m []string, ln *Line) {
	ln.Indent = m[1]
}

func captureText(m []string, ln *Line) {
	ln.Text = m[1]
}

func captureIndentText(m []string, ln *Line) {
	ln.Indent = m[1]
	ln.Text = m[2]
}

func captureKeyValue(m []string, ln *Line) {
	ln.Indent = m[1]
	ln.Key = m[2]
	ln.Value = strings.TrimSpace(m[3])
}

func captureList(m []string, ln *Line) {
	ln.Indent = m[1]
	ln.Marker = m[2]
	ln.Text = m[3]
}

func captureDefinition(m []string, ln *Line) {
	ln.Indent = m[1]
	ln.Marker = m[2]
	ln.Key = m[3]
	ln.Value = m[4]
}

func captureParagraph(m []string, ln *Line) {
	ln.Text = m[0]
}
