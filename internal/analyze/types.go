package analyze

import (
	"go/types"

	"authoring-kit/internal/common"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "authoring-kit/sample"
	Name    string // e.g., "Teaser"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

func idOf(named *types.Named) TypeID {
	obj := named.Obj()
	if obj.Pkg() == nil {
		return TypeID{Name: obj.Name()}
	}

	return TypeID{PkgPath: obj.Pkg().Path(), Name: obj.Name()}
}

// TypeKind represents the shape of a member value type.
type TypeKind int

const (
	TypeKindUnknown  TypeKind = iota
	TypeKindBasic             // int, string, bool, etc.
	TypeKindStruct            // struct type
	TypeKindPointer           // pointer to another type
	TypeKindSlice             // slice of another type
	TypeKindArray             // array of another type
	TypeKindAlias             // named type wrapping a basic type
	TypeKindExternal          // named type from a package that was not loaded
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindBasic:
		return "basic"
	case TypeKindStruct:
		return "struct"
	case TypeKindPointer:
		return "pointer"
	case TypeKindSlice:
		return "slice"
	case TypeKindArray:
		return "array"
	case TypeKindAlias:
		return "alias"
	case TypeKindExternal:
		return "external"
	default:
		return common.UnknownStr
	}
}

// KindOf classifies t. local reports whether a package was loaded; named
// structs outside it are external.
func KindOf(t types.Type, local func(pkgPath string) bool) TypeKind {
	switch tt := t.(type) {
	case *types.Basic:
		return TypeKindBasic
	case *types.Pointer:
		return TypeKindPointer
	case *types.Slice:
		return TypeKindSlice
	case *types.Array:
		return TypeKindArray
	case *types.Struct:
		return TypeKindStruct
	case *types.Named:
		obj := tt.Obj()
		if obj.Pkg() != nil && !local(obj.Pkg().Path()) {
			return TypeKindExternal
		}

		switch tt.Underlying().(type) {
		case *types.Struct:
			return TypeKindStruct
		case *types.Basic:
			return TypeKindAlias
		default:
			return KindOf(tt.Underlying(), local)
		}
	default:
		return TypeKindUnknown
	}
}

// ElemStruct returns the named struct a member value refers to: the type
// itself, or the element of a pointer, slice or array.
func ElemStruct(t types.Type) *types.Named {
	for {
		switch tt := t.(type) {
		case *types.Pointer:
			t = tt.Elem()
		case *types.Slice:
			t = tt.Elem()
		case *types.Array:
			t = tt.Elem()
		case *types.Named:
			if _, ok := tt.Underlying().(*types.Struct); ok {
				return tt
			}

			return nil
		default:
			return nil
		}
	}
}
