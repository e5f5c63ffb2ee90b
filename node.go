package regrid

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

const (
	// TextNodeType is the Type of nodes created by Text.
	TextNodeType = "#text"

	// RawTextNodeType is the Type of nodes created by RawText.
	RawTextNodeType = "#raw"

	// FragmentNodeType is the Type of nodes created by Fragment.
	// Backends render only the children of a fragment.
	FragmentNodeType = "#fragment"
)

// Node is a rendered fragment.
//
// Templates and components return trees of nodes,
// backends like htmltable, texttable and exceltable serialize them.
type Node struct {
	Type     string
	Attrs    map[string]string
	Text     string
	Children []*Node
}

// Element returns a node of the passed type.
// nil children are skipped.
func Element(typ string, attrs map[string]string, children ...*Node) *Node {
	n := &Node{Type: typ}
	if len(attrs) > 0 {
		n.Attrs = maps.Clone(attrs)
	}
	for _, child := range children {
		if child != nil {
			n.Children = append(n.Children, child)
		}
	}
	return n
}

// Text returns a text node.
func Text(text string) *Node {
	return &Node{Type: TextNodeType, Text: text}
}

// RawText returns a text node that is already
// in the output format of the backend and written without escaping.
func RawText(text string) *Node {
	return &Node{Type: RawTextNodeType, Text: text}
}

// Fragment groups children without an element of its own.
func Fragment(children ...*Node) *Node {
	return Element(FragmentNodeType, nil, children...)
}

// Attr returns the attribute name or an empty string.
func (n *Node) Attr(name string) string {
	if n == nil {
		return ""
	}
	return n.Attrs[name]
}

// TextContent returns the concatenated text of n and all its descendants.
func (n *Node) TextContent() string {
	if n == nil {
		return ""
	}
	if len(n.Children) == 0 {
		return n.Text
	}
	var b strings.Builder
	b.WriteString(n.Text)
	for _, child := range n.Children {
		b.WriteString(child.TextContent())
	}
	return b.String()
}

// ElementChildren returns the children of n,
// with the children of fragment nodes inlined.
func (n *Node) ElementChildren() []*Node {
	if n == nil {
		return nil
	}
	var children []*Node
	for _, child := range n.Children {
		if child.Type == FragmentNodeType {
			children = append(children, child.ElementChildren()...)
		} else {
			children = append(children, child)
		}
	}
	return children
}

// Find returns all nodes of type typ
// in depth-first order, including n itself.
func (n *Node) Find(typ string) []*Node {
	if n == nil {
		return nil
	}
	var found []*Node
	if n.Type == typ {
		found = append(found, n)
	}
	for _, child := range n.Children {
		found = append(found, child.Find(typ)...)
	}
	return found
}

// String implements the fmt.Stringer interface
// with a compact representation for debugging.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	if n.Type == TextNodeType {
		return fmt.Sprintf("%q", n.Text)
	}
	var b strings.Builder
	b.WriteString(n.Type)
	if len(n.Attrs) > 0 {
		b.WriteByte('[')
		for i, key := range slices.Sorted(maps.Keys(n.Attrs)) {
			if i > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%s=%q", key, n.Attrs[key])
		}
		b.WriteByte(']')
	}
	if n.Text != "" || len(n.Children) > 0 {
		b.WriteByte('(')
		if n.Text != "" {
			fmt.Fprintf(&b, "%q", n.Text)
		}
		for i, child := range n.Children {
			if i > 0 || n.Text != "" {
				b.WriteString(", ")
			}
			b.WriteString(child.String())
		}
		b.WriteByte(')')
	}
	return b.String()
}
