package astutil

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Kind is the underlying kind of a declared type, as far as it can be told
// from a single source file
type Kind int

const (
	Other Kind = iota
	Bool
	Int
	Float
	String
	Slice
	Map
	Struct
	Interface
)

var kindNames = [...]string{"other", "bool", "int", "float", "string", "slice", "map", "struct", "interface"}

func (k Kind) String() string {
	return kindNames[k]
}

// Predeclared types by their kind
var predeclared = map[string]Kind{
	"bool":       Bool,
	"int":        Int,
	"int8":       Int,
	"int16":      Int,
	"int32":      Int,
	"int64":      Int,
	"uint":       Int,
	"uint8":      Int,
	"uint16":     Int,
	"uint32":     Int,
	"uint64":     Int,
	"uintptr":    Int,
	"byte":       Int,
	"rune":       Int,
	"float32":    Float,
	"float64":    Float,
	"string":     String,
	"any":        Interface,
	"error":      Interface,
	"complex64":  Other,
	"complex128": Other,
}

// Lookup finds the type node of a named type declared in the same source
type Lookup func(name string) *sitter.Node

// KindOf classifies a type node. Named types are followed through lookup, so
// `type Celsius Temperature` has the kind of Temperature.
func KindOf(node *sitter.Node, source []byte, lookup Lookup) Kind {
	// Guards against declarations that refer to each other
	seen := map[string]bool{}

	for node != nil {
		switch node.Type() {
		case "struct_type":
			return Struct
		case "interface_type":
			return Interface
		case "slice_type", "array_type":
			return Slice
		case "map_type":
			return Map
		case "parenthesized_type":
			node = node.NamedChild(0)
		case "pointer_type":
			// Only pointers to structs have a kind optionals care about
			if KindOf(node.NamedChild(0), source, lookup) == Struct {
				return Struct
			}
			return Other
		case "type_identifier":
			name := node.Content(source)
			if kind, ok := predeclared[name]; ok {
				return kind
			}
			if seen[name] || lookup == nil {
				return Other
			}
			seen[name] = true
			node = lookup(name)
		default:
			return Other
		}
	}
	return Other
}
