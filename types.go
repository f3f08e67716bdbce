package main

// SlateType represents a type in the Slate type system
type SlateType struct {
	Kind TypeKind
}

// TypeKind represents the category of a type
type TypeKind int

const (
	TypeUnknown TypeKind = iota
	TypeNum              // 64-bit signed integer
	TypeStr              // immutable byte string
)

// String returns a human-readable representation of the type
func (t *SlateType) String() string {
	switch t.Kind {
	case TypeNum:
		return "num"
	case TypeStr:
		return "str"
	default:
		return "unknown"
	}
}

// Type singletons. The type set is closed, so identity comparison works.
var (
	TypeNumValue = &SlateType{Kind: TypeNum}
	TypeStrValue = &SlateType{Kind: TypeStr}
)

// LookupTypeKeyword resolves a declaration type keyword to a type,
// or nil if the keyword is not a type.
func LookupTypeKeyword(name string) *SlateType {
	switch name {
	case "num":
		return TypeNumValue
	case "str":
		return TypeStrValue
	default:
		return nil
	}
}

// InferLiteralType classifies a token text as a literal and returns its
// type, or nil if the token is not a literal.
func InferLiteralType(text string) *SlateType {
	if text == "" {
		return nil
	}
	if text[0] == '"' && len(text) >= 2 && text[len(text)-1] == '"' {
		return TypeStrValue
	}
	for i := 0; i < len(text); i++ {
		if text[i] < '0' || text[i] > '9' {
			return nil
		}
	}
	return TypeNumValue
}
