package org

import "fmt"

// StructuralError reports a close marker encountered with nothing
// open to close. It is the only structural failure the builder can
// produce; a parse that hits one returns no partial result.
type StructuralError struct {
	Line int  // 1-based input line number of the offending marker
	Kind Kind // the close classification that underflowed the stack
}

func (e StructuralError) Error() string {
	return fmt.Sprintf("line %d: unmatched %s", e.Line, e.Kind)
}

// Build folds a classified line stream into the final node sequence.
// The working state is a stack of open containers seeded with the
// document root. Headlines push sections and never close the one
// before, begin markers push blocks and drawers, and close markers
// pop unconditionally: whatever sits on top is appended to the node
// below it, with no check that the types correspond. Everything else
// is appended to the current top as a leaf line.
//
// The result is the stack read bottom to top: the root, then every
// node still open when input ends. Sections are never popped, so they
// always land in that flat top-level sequence; a block or drawer left
// unterminated surfaces there too instead of merging into any parent.
func Build(lines []Line) ([]*Node, error) {
	stack := []*Node{newDocument()}

	for i, ln := range lines {
		switch ln.Kind {
		case KindHeadline:
			stack = append(stack, newSection(ln))
		case KindBeginBlock:
			stack = append(stack, newBlock(ln))
		case KindDrawerBegin:
			stack = append(stack, newDrawer())
		case KindEndBlock, KindDrawerEnd:
			if len(stack) < 2 {
				return nil, StructuralError{Line: i + 1, Kind: ln.Kind}
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			parent := stack[len(stack)-1]
			parent.Content = append(parent.Content, top)
		default:
			top := stack[len(stack)-1]
			top.Content = append(top.Content, newLine(ln))
		}
	}

	return stack, nil
}
