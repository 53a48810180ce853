package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// EmptyTreeMessage is shown in place of a tree whose JSON parsed but has no
// usable root name.
const EmptyTreeMessage = "Invalid or empty tree data"

var (
	// ErrMalformedTree means the text is not JSON at all; show it verbatim.
	ErrMalformedTree = errors.New("tree data is not valid JSON")
	// ErrEmptyTree means the JSON has no root name; show EmptyTreeMessage.
	ErrEmptyTree = errors.New("tree data has no root name")
)

// TreeNode is one node of a parse tree as described by the model:
// {"name": "...", "children": [...]}. Children keep their given order.
type TreeNode struct {
	Name     string     `json:"name" yaml:"name"`
	Children []TreeNode `json:"children,omitempty" yaml:"children,omitempty"`
}

// ParseTree decodes jsonText into a tree. Names that are numbers or
// booleans are kept in their JSON spelling; a child given as a bare string
// becomes a leaf with that name. A "children" value that is not an array
// is treated as no children.
func ParseTree(jsonText string) (*TreeNode, error) {
	dec := json.NewDecoder(strings.NewReader(jsonText))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedTree, err)
	}
	var extra any
	if err := dec.Decode(&extra); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after value", ErrMalformedTree)
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, ErrEmptyTree
	}
	name, ok := nodeName(obj["name"])
	if !ok {
		return nil, ErrEmptyTree
	}

	root := buildNode(name, obj["children"])
	return &root, nil
}

func buildNode(name string, children any) TreeNode {
	node := TreeNode{Name: name}
	list, _ := children.([]any)
	for _, c := range list {
		switch child := c.(type) {
		case map[string]any:
			childName, _ := nodeName(child["name"])
			node.Children = append(node.Children, buildNode(childName, child["children"]))
		case string:
			node.Children = append(node.Children, TreeNode{Name: child})
		default:
			node.Children = append(node.Children, TreeNode{Name: jsonSpelling(child)})
		}
	}
	return node
}

// nodeName returns the display name and whether it counts as present.
// Missing, null, empty, false and zero names are absent.
func nodeName(v any) (string, bool) {
	switch n := v.(type) {
	case string:
		return n, n != ""
	case json.Number:
		f, err := n.Float64()
		return n.String(), err == nil && f != 0
	case bool:
		return "true", n
	case nil:
		return "", false
	default:
		return jsonSpelling(n), true
	}
}

func jsonSpelling(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

// Outline draws the tree one node per line using box-drawing connectors:
//
//	Program
//	├── Stmt1
//	└── Stmt2
//
// Every line, including the last, ends with a newline.
func (n *TreeNode) Outline() string {
	var b strings.Builder
	b.WriteString(n.Name)
	b.WriteByte('\n')
	writeChildren(&b, n.Children, "")
	return b.String()
}

func writeChildren(b *strings.Builder, children []TreeNode, prefix string) {
	for i := range children {
		last := i == len(children)-1
		connector, continuation := "├── ", "│   "
		if last {
			connector, continuation = "└── ", "    "
		}
		b.WriteString(prefix)
		b.WriteString(connector)
		b.WriteString(children[i].Name)
		b.WriteByte('\n')
		writeChildren(b, children[i].Children, prefix+continuation)
	}
}

// RenderTree parses jsonText and returns its outline. Errors wrap
// ErrMalformedTree or ErrEmptyTree.
func RenderTree(jsonText string) (string, error) {
	root, err := ParseTree(jsonText)
	if err != nil {
		return "", err
	}
	return root.Outline(), nil
}
