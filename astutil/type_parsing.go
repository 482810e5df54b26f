package astutil

import (
	"fmt"
	"go/ast"
	"go/token"

	"github.com/NickyBoy89/optional/nodeutil"
	sitter "github.com/smacker/go-tree-sitter"
)

// ParseType converts a tree-sitter Go type node into its go/ast expression
func ParseType(node *sitter.Node, source []byte) (ast.Expr, error) {
	switch node.Type() {
	case "type_identifier":
		return &ast.Ident{Name: node.Content(source)}, nil
	case "qualified_type":
		// A type from another package
		// Ex: time.Time
		return &ast.SelectorExpr{
			X:   &ast.Ident{Name: node.ChildByFieldName("package").Content(source)},
			Sel: &ast.Ident{Name: node.ChildByFieldName("name").Content(source)},
		}, nil
	case "pointer_type":
		elem, err := ParseType(node.NamedChild(0), source)
		if err != nil {
			return nil, err
		}
		return &ast.StarExpr{X: elem}, nil
	case "parenthesized_type", "type_elem":
		return ParseType(node.NamedChild(0), source)
	case "slice_type":
		elem, err := ParseType(node.ChildByFieldName("element"), source)
		if err != nil {
			return nil, err
		}
		return &ast.ArrayType{Elt: elem}, nil
	case "array_type":
		elem, err := ParseType(node.ChildByFieldName("element"), source)
		if err != nil {
			return nil, err
		}
		return &ast.ArrayType{
			Len: &ast.BasicLit{Kind: token.INT, Value: node.ChildByFieldName("length").Content(source)},
			Elt: elem,
		}, nil
	case "map_type":
		key, err := ParseType(node.ChildByFieldName("key"), source)
		if err != nil {
			return nil, err
		}
		value, err := ParseType(node.ChildByFieldName("value"), source)
		if err != nil {
			return nil, err
		}
		return &ast.MapType{Key: key, Value: value}, nil
	case "generic_type":
		// An instantiated generic type
		// Ex: List[int]
		base, err := ParseType(node.ChildByFieldName("type"), source)
		if err != nil {
			return nil, err
		}
		args := node.ChildByFieldName("type_arguments")
		if err := nodeutil.CheckType(args, "type_arguments"); err != nil {
			return nil, err
		}
		var indices []ast.Expr
		for _, arg := range nodeutil.Children(args) {
			index, err := ParseType(arg, source)
			if err != nil {
				return nil, err
			}
			indices = append(indices, index)
		}
		return &ast.IndexListExpr{X: base, Indices: indices}, nil
	case "interface_type":
		if node.NamedChildCount() == 0 {
			return &ast.Ident{Name: "any"}, nil
		}
	}
	return nil, fmt.Errorf("unsupported type to convert: %s (%s)", node.Type(), node.Content(source))
}
