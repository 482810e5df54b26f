// Package nodeutil contains helpers for walking tree-sitter syntax trees
package nodeutil

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// Children returns all the named children of a node
func Children(node *sitter.Node) []*sitter.Node {
	count := int(node.NamedChildCount())
	children := make([]*sitter.Node, count)
	for i := 0; i < count; i++ {
		children[i] = node.NamedChild(i)
	}
	return children
}

// CheckType returns an error if the node is missing, or not of the expected type
func CheckType(node *sitter.Node, expectedType string) error {
	if node == nil {
		return fmt.Errorf("expected node of type %s, got nothing", expectedType)
	}
	if node.Type() != expectedType {
		return fmt.Errorf("type of node differs from expected: %s, got: %s", expectedType, node.Type())
	}
	return nil
}

// AssertTypeIs panics if the node is not of the expected type, for places
// where the grammar guarantees it
func AssertTypeIs(node *sitter.Node, expectedType string) {
	if err := CheckType(node, expectedType); err != nil {
		panic(fmt.Sprintf("assertion failed: %v", err))
	}
}

// Line returns the one-based line a node starts on
func Line(node *sitter.Node) int {
	return int(node.StartPoint().Row) + 1
}
