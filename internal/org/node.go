package org

// NodeType discriminates the shapes a Node can take.
type NodeType string

const (
	NodeDocument NodeType = "document"
	NodeSection  NodeType = "section"
	NodeBlock    NodeType = "block"
	NodeDrawer   NodeType = "drawer"
	NodeLine     NodeType = "line"
)

// Node is one entry in a parse result: the document root, a section, a
// begin/end block, a property drawer, or a leaf line. Content holds
// children in input order and is append-only during construction; once
// a node has been appended to a parent it is never modified again.
type Node struct {
	Type NodeType `json:"type"`

	// Section fields.
	Level   int      `json:"level,omitempty"`
	Title   string   `json:"title,omitempty"`
	Tags    []string `json:"tags,omitempty"`
	Keyword string   `json:"keyword,omitempty"`

	// Block fields.
	BlockType string `json:"block_type,omitempty"`
	Qualifier string `json:"qualifier,omitempty"`

	// Leaf payload, set only when Type is NodeLine.
	Line *Line `json:"line,omitempty"`

	Content []*Node `json:"content,omitempty"`
}

func newDocument() *Node {
	return &Node{Type: NodeDocument}
}

// newSection builds a section node from a classified headline. The
// raw line is decomposed so the level, title, tags, and keyword come
// out of a single pass over the original text.
func newSection(ln Line) *Node {
	h := DecomposeHeadline(ln.Raw)
	return &Node{
		Type:    NodeSection,
		Level:   h.Level,
		Title:   h.Title,
		Tags:    h.Tags,
		Keyword: h.Keyword,
	}
}

func newBlock(ln Line) *Node {
	return &Node{Type: NodeBlock, BlockType: ln.Key, Qualifier: ln.Value}
}

func newDrawer() *Node {
	return &Node{Type: NodeDrawer}
}

func newLine(ln Line) *Node {
	l := ln
	return &Node{Type: NodeLine, Line: &l}
}

// Property is one key/value item from a property drawer.
type Property struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Properties collects the drawer-item lines in n's content, in input
// order. Non-item children are skipped; nodes holding no items return
// nil.
func (n *Node) Properties() []Property {
	var props []Property
	for _, c := range n.Content {
		if c.Type == NodeLine && c.Line != nil && c.Line.Kind == KindDrawerItem {
			props = append(props, Property{Key: c.Line.Key, Value: c.Line.Value})
		}
	}
	return props
}

// Sections filters a parse result down to its section nodes, in order.
func Sections(nodes []*Node) []*Node {
	var out []*Node
	for _, n := range nodes {
		if n.Type == NodeSection {
			out = append(out, n)
		}
	}
	return out
}

// Walk visits every node in the sequence depth-first, parents before
// children.
func Walk(nodes []*Node, fn func(*Node)) {
	for _, n := range nodes {
		fn(n)
		Walk(n.Content, fn)
	}
}
