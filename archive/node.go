package archive

import "strings"

// Level is the description level of an archival node.
type Level int

const (
	// LevelCollection covers every grouping level: fonds, series,
	// sub-series and other intermediate levels.
	LevelCollection Level = iota

	// LevelFile is an individual book or file, a leaf of the tree.
	LevelFile
)

// ParseLevel maps an EAD level attribute to a Level. Only "file" denotes a
// leaf; every other level groups further units.
func ParseLevel(s string) Level {
	if strings.EqualFold(strings.TrimSpace(s), "file") {
		return LevelFile
	}
	return LevelCollection
}

// String implements fmt.Stringer.
func (l Level) String() string {
	if l == LevelFile {
		return "file"
	}
	return "collection"
}

// Node is one unit of an archival description tree.
//
// ID is unique within the source system. Code is the human-readable call
// number; it is not globally unique and in at least one series it repeats
// across unrelated branches.
type Node struct {
	ID          string
	Code        string
	Title       string
	Description string
	DateRaw     string
	Level       Level

	// Language and Creators describe collection-level units; they end up
	// as grouping criteria of the collection.
	Language string
	Creators []string

	// Children are owned by this node, in source order.
	Children []*Node

	// Scans lists the scan identifiers of a file-level node.
	Scans []string

	// Parent is nil for the root. Build sets it for every node it visits.
	Parent *Node
}

// NewCollection creates a collection-level node.
func NewCollection(id, code, title string) *Node {
	return &Node{ID: id, Code: code, Title: title, Level: LevelCollection}
}

// NewFile creates a file-level node.
func NewFile(id, code, title string) *Node {
	return &Node{ID: id, Code: code, Title: title, Level: LevelFile}
}

// Add appends children and points their Parent at n. It returns n for
// chaining.
func (n *Node) Add(children ...*Node) *Node {
	for _, c := range children {
		if c != nil {
			c.Parent = n
		}
		n.Children = append(n.Children, c)
	}
	return n
}

// WithDate sets the raw date text and returns n.
func (n *Node) WithDate(raw string) *Node {
	n.DateRaw = raw
	return n
}

// IsLeaf reports whether n is a file-level node.
func (n *Node) IsLeaf() bool { return n.Level == LevelFile }

// Root walks Parent references up to the node without a parent. It returns
// nil if the parent chain loops.
func (n *Node) Root() *Node {
	seen := make(map[*Node]bool)
	cur := n
	for cur.Parent != nil {
		if seen[cur] {
			return nil
		}
		seen[cur] = true
		cur = cur.Parent
	}
	return cur
}

// Key is the identifier deed records use for the tree n is the top of: the
// collection code, or the node ID when the code is empty.
func (n *Node) Key() string {
	if n.Code != "" {
		return n.Code
	}
	return n.ID
}
