package astutil

import (
	"go/ast"
	"go/token"
	"strconv"
)

// Selector generates a qualified identifier
// Ex: optional.Object
func Selector(pkg, name string) *ast.SelectorExpr {
	return &ast.SelectorExpr{X: &ast.Ident{Name: pkg}, Sel: &ast.Ident{Name: name}}
}

// Instantiate generates the instantiation of a generic function or type
// Ex: optional.InstanceOf[*Some]
func Instantiate(generic ast.Expr, types ...ast.Expr) ast.Expr {
	if len(types) == 1 {
		return &ast.IndexExpr{X: generic, Index: types[0]}
	}
	return &ast.IndexListExpr{X: generic, Indices: types}
}

// Call generates a call expression
func Call(fun ast.Expr, args ...ast.Expr) *ast.CallExpr {
	return &ast.CallExpr{Fun: fun, Args: args}
}

// ValueSpec generates a single `name = value` specification
func ValueSpec(name string, value ast.Expr) *ast.ValueSpec {
	return &ast.ValueSpec{
		Names:  []*ast.Ident{{Name: name}},
		Values: []ast.Expr{value},
	}
}

// GenVars generates a var declaration, grouped when there is more than one spec
func GenVars(specs ...*ast.ValueSpec) ast.Decl {
	decl := &ast.GenDecl{Tok: token.VAR}
	for _, spec := range specs {
		decl.Specs = append(decl.Specs, spec)
	}
	return decl
}

// ImportSpec generates the import of a package, named when name is not
// empty
// Ex: osx "os"
func ImportSpec(name, path string) *ast.ImportSpec {
	spec := &ast.ImportSpec{Path: &ast.BasicLit{Kind: token.STRING, Value: strconv.Quote(path)}}
	if name != "" {
		spec.Name = &ast.Ident{Name: name}
	}
	return spec
}

// GenImports generates an import declaration, grouped when there is more than
// one spec
func GenImports(specs ...*ast.ImportSpec) ast.Decl {
	decl := &ast.GenDecl{Tok: token.IMPORT}
	for _, spec := range specs {
		decl.Specs = append(decl.Specs, spec)
	}
	return decl
}

// Qualifiers returns the package names that expr refers to, in order of
// appearance
// Ex: map[time.Weekday]*os.File gives time and os
func Qualifiers(expr ast.Expr) []string {
	var names []string
	ast.Inspect(expr, func(node ast.Node) bool {
		sel, ok := node.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		if pkg, ok := sel.X.(*ast.Ident); ok {
			names = append(names, pkg.Name)
		}
		return false
	})
	return names
}
