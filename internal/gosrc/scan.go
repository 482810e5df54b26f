// Package gosrc finds the type declarations of a Go source file that are
// marked to get a typed optional variant
package gosrc

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"strconv"
	"strings"

	"github.com/NickyBoy89/optional/astutil"
	"github.com/NickyBoy89/optional/nodeutil"
	log "github.com/sirupsen/logrus"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
)

// Directive marks the type declaration on the following line
// Ex: //optional:variant Resource
const Directive = "//optional:variant"

// ErrSyntax is returned for sources that do not parse
var ErrSyntax = errors.New("syntax error")

// A Declaration is a marked type declaration
type Declaration struct {
	// Name of the declared type
	Name string
	// Type of the values that the variant holds: a pointer for struct types,
	// the aliased type for aliases, and the declared type otherwise
	Type ast.Expr
	Kind astutil.Kind
	// Parent variant named by the directive, empty when it is to be inferred
	Parent string
	Line   int
}

// An Import is a package imported by a scanned file
type Import struct {
	// Name the file refers to the package by
	Name string
	Path string
}

// File is the scanned content of a single source file
type File struct {
	Package string
	// Named imports of the file, without dot and blank imports
	Imports      []Import
	Declarations []Declaration
}

type marked struct {
	spec   *sitter.Node
	parent string
}

// Scan parses source and collects its marked type declarations
func Scan(ctx context.Context, source []byte) (*File, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(golang.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, err
	}
	root := tree.RootNode()
	nodeutil.AssertTypeIs(root, "source_file")
	if root.HasError() {
		return nil, ErrSyntax
	}

	file := &File{}

	// Every declared type, so named types can be followed to their kind
	types := map[string]*sitter.Node{}
	var specs []marked

	for _, child := range nodeutil.Children(root) {
		switch child.Type() {
		case "package_clause":
			file.Package = child.NamedChild(0).Content(source)
		case "import_declaration":
			imports, err := importsOf(child, source)
			if err != nil {
				return nil, err
			}
			file.Imports = append(file.Imports, imports...)
		case "type_declaration":
			grouped := child.ChildCount() > 1 && child.Child(1).Type() == "("
			for _, spec := range nodeutil.Children(child) {
				if spec.Type() != "type_spec" && spec.Type() != "type_alias" {
					continue
				}
				types[spec.ChildByFieldName("name").Content(source)] = spec.ChildByFieldName("type")

				anchor := spec
				if !grouped {
					anchor = child
				}
				if parent, ok := directiveOf(anchor, source); ok {
					specs = append(specs, marked{spec: spec, parent: parent})
				}
			}
		}
	}

	lookup := func(name string) *sitter.Node {
		return types[name]
	}

	for _, m := range specs {
		decl, err := declarationOf(m, source, lookup)
		if err != nil {
			return nil, err
		}
		if decl == nil {
			continue
		}
		file.Declarations = append(file.Declarations, *decl)
	}
	return file, nil
}

// importsOf lists the imports of a single or grouped import declaration
func importsOf(decl *sitter.Node, source []byte) ([]Import, error) {
	var imports []Import
	for _, child := range nodeutil.Children(decl) {
		switch child.Type() {
		case "import_spec":
			imp, ok, err := importOf(child, source)
			if err != nil {
				return nil, err
			}
			if ok {
				imports = append(imports, imp)
			}
		case "import_spec_list":
			more, err := importsOf(child, source)
			if err != nil {
				return nil, err
			}
			imports = append(imports, more...)
		}
	}
	return imports, nil
}

func importOf(spec *sitter.Node, source []byte) (Import, bool, error) {
	path, err := strconv.Unquote(spec.ChildByFieldName("path").Content(source))
	if err != nil {
		return Import{}, false, fmt.Errorf("line %d: %w", nodeutil.Line(spec), err)
	}

	name := spec.ChildByFieldName("name")
	if name == nil {
		return Import{Name: PackageName(path), Path: path}, true, nil
	}
	if name.Type() != "package_identifier" {
		// Dot and blank imports add no name to refer to
		return Import{}, false, nil
	}
	return Import{Name: name.Content(source), Path: path}, true, nil
}

// PackageName guesses the name of a package from its import path: the last
// element, without a major version element or a ".vN" suffix
// Ex: gopkg.in/yaml.v3 and github.com/some/yaml/v3 both give yaml
func PackageName(path string) string {
	elements := strings.Split(path, "/")
	name := elements[len(elements)-1]
	if len(elements) > 1 && isMajorVersion(name) {
		name = elements[len(elements)-2]
	}
	if i := strings.Index(name, "."); i > 0 {
		name = name[:i]
	}
	return name
}

func isMajorVersion(element string) bool {
	if len(element) < 2 || element[0] != 'v' {
		return false
	}
	_, err := strconv.Atoi(element[1:])
	return err == nil
}

// directiveOf returns the arguments of the directive right above a node
func directiveOf(node *sitter.Node, source []byte) (string, bool) {
	comment := node.PrevNamedSibling()
	if comment == nil || comment.Type() != "comment" || comment.EndPoint().Row+1 != node.StartPoint().Row {
		return "", false
	}
	text := comment.Content(source)
	if !strings.HasPrefix(text, Directive) {
		return "", false
	}
	rest := strings.TrimPrefix(text, Directive)
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		// Another directive sharing the prefix
		return "", false
	}
	return strings.TrimSpace(rest), true
}

func declarationOf(m marked, source []byte, lookup astutil.Lookup) (*Declaration, error) {
	name := m.spec.ChildByFieldName("name").Content(source)
	typeNode := m.spec.ChildByFieldName("type")

	if m.spec.ChildByFieldName("type_parameters") != nil {
		log.WithFields(log.Fields{
			"type": name,
			"line": nodeutil.Line(m.spec),
		}).Warn("Skipping generic type, variants need a concrete type")
		return nil, nil
	}
	if strings.ContainsAny(m.parent, " \t") {
		return nil, fmt.Errorf("line %d: %s takes at most one parent, got %q", nodeutil.Line(m.spec), Directive, m.parent)
	}

	decl := &Declaration{
		Name:   name,
		Kind:   astutil.KindOf(typeNode, source, lookup),
		Parent: m.parent,
		Line:   nodeutil.Line(m.spec),
	}

	switch {
	case m.spec.Type() == "type_alias":
		typ, err := astutil.ParseType(typeNode, source)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", decl.Line, err)
		}
		decl.Type = typ
	case decl.Kind == astutil.Struct && typeNode.Type() != "pointer_type":
		decl.Type = &ast.StarExpr{X: &ast.Ident{Name: name}}
	default:
		decl.Type = &ast.Ident{Name: name}
	}
	return decl, nil
}
