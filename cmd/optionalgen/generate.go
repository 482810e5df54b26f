package main

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/printer"
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/NickyBoy89/optional/astutil"
	"github.com/NickyBoy89/optional/internal/gosrc"
	"golang.org/x/exp/slices"
)

const (
	importPath = "github.com/NickyBoy89/optional"
	header     = "// Code generated by optionalgen. DO NOT EDIT.\n\n"
)

// Variants built into the optional package, by the name they are exported as
var builtins = map[string]bool{
	"Any":      true,
	"Bool":     true,
	"Int":      true,
	"Float":    true,
	"String":   true,
	"Slice":    true,
	"Dict":     true,
	"Record":   true,
	"Object":   true,
	"Time":     true,
	"Resource": true,
	"Stream":   true,
}

// The variant refined by default, for each kind of declared type
var inferredParents = map[astutil.Kind]string{
	astutil.Bool:   "Bool",
	astutil.Int:    "Int",
	astutil.Float:  "Float",
	astutil.String: "String",
	astutil.Slice:  "Slice",
	astutil.Map:    "Dict",
	astutil.Struct: "Object",
}

// ToPublic capitalizes the first letter of a name
func ToPublic(name string) string {
	first, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(first)) + name[size:]
}

// VariantName is the name of the variable holding the variant of a type,
// exported along with the type
func VariantName(typeName string) string {
	if first, _ := utf8.DecodeRuneInString(typeName); unicode.IsUpper(first) {
		return "Optional" + typeName
	}
	return "optional" + ToPublic(typeName)
}

// HandleName is the name of the variable binding the variant to its type
func HandleName(typeName string) string {
	return typeName + "Optionals"
}

// Generate returns the formatted source of a file in package pkg declaring
// and registering a variant for every declaration of files. Declarations may
// name the type of an earlier declaration as their parent.
func Generate(pkg string, files ...*gosrc.File) ([]byte, error) {
	var specs []*ast.ValueSpec
	var registrations []ast.Stmt

	// Variants generated so far, by the name of their type
	generated := map[string]string{}
	// Import paths of the packages the generated code refers to, by name
	imports := map[string]string{"optional": importPath}

	for _, file := range files {
		if len(file.Declarations) == 0 {
			continue
		}
		if pkg == "" {
			pkg = file.Package
		}
		if file.Package != pkg {
			return nil, fmt.Errorf("declarations of package %s do not belong in package %s", file.Package, pkg)
		}

		for _, decl := range file.Declarations {
			if _, ok := generated[decl.Name]; ok {
				return nil, fmt.Errorf("line %d: type %s is declared more than once", decl.Line, decl.Name)
			}

			parent, err := parentOf(decl, generated)
			if err != nil {
				return nil, err
			}
			if err := addImports(imports, decl, file.Imports); err != nil {
				return nil, err
			}

			variant := VariantName(decl.Name)
			generated[decl.Name] = variant

			specs = append(specs,
				astutil.ValueSpec(variant, astutil.Call(
					astutil.Instantiate(astutil.Selector("optional", "InstanceOf"), decl.Type),
					parent,
				)),
				astutil.ValueSpec(HandleName(decl.Name), astutil.Call(
					astutil.Instantiate(astutil.Selector("optional", "As"), decl.Type),
					&ast.Ident{Name: variant},
				)),
			)
			registrations = append(registrations, registerStmt(variant))
		}
	}

	if pkg == "" {
		return nil, fmt.Errorf("no package name given")
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("no %s declarations found", gosrc.Directive)
	}

	file := &ast.File{
		Name: &ast.Ident{Name: pkg},
		Decls: []ast.Decl{
			importDecl(imports),
			astutil.GenVars(specs...),
			&ast.FuncDecl{
				Name: &ast.Ident{Name: "init"},
				Type: &ast.FuncType{Params: &ast.FieldList{}},
				Body: &ast.BlockStmt{List: registrations},
			},
		},
	}

	var buf bytes.Buffer
	buf.WriteString(header)
	if err := printer.Fprint(&buf, token.NewFileSet(), file); err != nil {
		return nil, err
	}
	return format.Source(buf.Bytes())
}

// addImports records the imports of the packages that the type of decl
// refers to
func addImports(imports map[string]string, decl gosrc.Declaration, available []gosrc.Import) error {
	for _, name := range astutil.Qualifiers(decl.Type) {
		i := slices.IndexFunc(available, func(imp gosrc.Import) bool {
			return imp.Name == name
		})
		if i < 0 {
			return fmt.Errorf("line %d: package %s used by %s is not imported", decl.Line, name, decl.Name)
		}

		path := available[i].Path
		if existing, ok := imports[name]; ok && existing != path {
			return fmt.Errorf("line %d: package name %s refers to both %s and %s", decl.Line, name, existing, path)
		}
		imports[name] = path
	}
	return nil
}

// importDecl generates the imports sorted by path. Names are only kept where
// they differ from the name guessed from the path.
func importDecl(imports map[string]string) ast.Decl {
	// Import paths hold no spaces, so "path name" entries sort by path
	var entries []string
	for name, path := range imports {
		entries = append(entries, path+" "+name)
	}
	slices.Sort(entries)

	var specs []*ast.ImportSpec
	for _, entry := range entries {
		path, name, _ := strings.Cut(entry, " ")
		if name == gosrc.PackageName(path) {
			name = ""
		}
		specs = append(specs, astutil.ImportSpec(name, path))
	}
	return astutil.GenImports(specs...)
}

// parentOf returns the expression of the variant a declaration refines
func parentOf(decl gosrc.Declaration, generated map[string]string) (ast.Expr, error) {
	parent := decl.Parent
	if parent == "" {
		var ok bool
		if parent, ok = inferredParents[decl.Kind]; !ok {
			parent = "Any"
		}
	}

	if builtins[parent] {
		return astutil.Selector("optional", parent), nil
	}
	if variant, ok := generated[parent]; ok {
		return &ast.Ident{Name: variant}, nil
	}
	return nil, fmt.Errorf("line %d: unknown parent %s for %s, expected a built-in variant or an earlier marked type", decl.Line, parent, decl.Name)
}

// registerStmt generates the registration of a variant into the default
// registry
// Ex: if err := optional.Register(OptionalSome); err != nil { panic(err) }
func registerStmt(variant string) ast.Stmt {
	errIdent := &ast.Ident{Name: "err"}
	return &ast.IfStmt{
		Init: &ast.AssignStmt{
			Lhs: []ast.Expr{errIdent},
			Tok: token.DEFINE,
			Rhs: []ast.Expr{astutil.Call(astutil.Selector("optional", "Register"), &ast.Ident{Name: variant})},
		},
		Cond: &ast.BinaryExpr{X: errIdent, Op: token.NEQ, Y: &ast.Ident{Name: "nil"}},
		Body: &ast.BlockStmt{List: []ast.Stmt{
			&ast.ExprStmt{X: astutil.Call(&ast.Ident{Name: "panic"}, errIdent)},
		}},
	}
}
