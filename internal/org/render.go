package org

import "strings"

// Render reconstructs document text from a node sequence. Leaf lines
// reproduce their original text byte for byte; headline, block, and
// drawer markers are rewritten in canonical form. A region that was
// never terminated in the input renders closed, so rendering
// normalizes as well as reconstructs. Output ends with a trailing
// newline unless the sequence holds no lines at all.
func Render(nodes []*Node) string {
	var b strings.Builder
	for _, n := range nodes {
		renderNode(&b, n)
	}
	return b.String()
}

func renderNode(b *strings.Builder, n *Node) {
	switch n.Type {
	case NodeSection:
		b.WriteString(RenderHeadline(n))
		b.WriteByte('\n')
	case NodeBlock:
		b.WriteString("#+BEGIN_" + n.BlockType)
		if n.Qualifier != "" {
			b.WriteString(" " + n.Qualifier)
		}
		b.WriteByte('\n')
	case NodeDrawer:
		b.WriteString(":PROPERTIES:\n")
	case NodeLine:
		if n.Line != nil {
			b.WriteString(n.Line.Raw)
		}
		b.WriteByte('\n')
		return
	}

	for _, c := range n.Content {
		renderNode(b, c)
	}

	switch n.Type {
	case NodeBlock:
		b.WriteString("#+END_" + n.BlockType + "\n")
	case NodeDrawer:
		b.WriteString(":END:\n")
	}
}

// RenderHeadline writes a section's headline in canonical form:
// stars, a space, the keyword if any, the title, then the tag group.
func RenderHeadline(n *Node) string {
	var b strings.Builder
	b.WriteString(strings.Repeat("*", n.Level))
	b.WriteByte(' ')
	if n.Keyword != "" {
		b.WriteString(n.Keyword)
		if n.Title != "" {
			b.WriteByte(' ')
		}
	}
	b.WriteString(n.Title)
	if len(n.Tags) > 0 {
		if n.Title != "" || n.Keyword != "" {
			b.WriteByte(' ')
		}
		b.WriteString(":" + strings.Join(n.Tags, ":") + ":")
	}
	return b.String()
}
