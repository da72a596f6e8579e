// Package org parses Org-mode outline text into a flat sequence of
// structured nodes: a document root followed by one node per
// headline, with explicitly delimited blocks and property drawers
// nested inside. Classification is driven by an ordered rule table
// that callers can replace to parse other dialects.
package org

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Parser turns outline text into a node sequence. The zero value uses
// the default rule table; set Rules to parse a different dialect.
// Parsers are stateless across calls and safe for reuse.
type Parser struct {
	Rules []Rule
}

// Parse classifies and assembles an already-split line sequence.
func (p *Parser) Parse(lines []string) ([]*Node, error) {
	return Build(ClassifyAll(p.Rules, lines))
}

// ParseString splits text into lines and parses the result. Splitting
// is on \n with a trailing \r dropped from each line, so \r\n input
// parses the same as \n input. A trailing newline terminates the last
// line rather than opening an empty one.
func (p *Parser) ParseString(text string) ([]*Node, error) {
	return p.Parse(SplitLines(text))
}

// ParseReader reads r to the end and parses its lines.
func (p *Parser) ParseReader(r io.Reader) ([]*Node, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	return p.Parse(lines)
}

// ParseFile opens path, parses its contents, and closes the file
// before returning. Open and read failures propagate with the
// original error reachable via errors.Is.
func (p *Parser) ParseFile(path string) ([]*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return p.ParseReader(f)
}

// Parse parses an already-split line sequence with the default rules.
func Parse(lines []string) ([]*Node, error) {
	var p Parser
	return p.Parse(lines)
}

// ParseString parses a multi-line string with the default rules.
func ParseString(text string) ([]*Node, error) {
	var p Parser
	return p.ParseString(text)
}

// ParseReader parses everything readable from r with the default
// rules.
func ParseReader(r io.Reader) ([]*Node, error) {
	var p Parser
	return p.ParseReader(r)
}

// ParseFile parses the file at path with the default rules.
func ParseFile(path string) ([]*Node, error) {
	var p Parser
	return p.ParseFile(path)
}

// SplitLines splits text on \n, dropping a trailing \r from each line
// and treating a final newline as a terminator rather than a
// separator.
func SplitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, ln := range lines {
		lines[i] = strings.TrimSuffix(ln, "\r")
	}
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}
