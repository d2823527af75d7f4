// Package naming derives the names of generated symbols.
package naming

import (
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/iancoleman/strcase"
)

// SymbolSuffix is appended to every generated operator class name.
const SymbolSuffix = "Op"

// Symbol derives the class name of an operator from its short name.
//
// The segments between underscores are capitalized and joined.
// A trailing underscore marks an in-place operator, and is kept:
//
//	relu       -> ReluOp
//	batch_norm -> BatchNormOp
//	add_       -> Add_Op
func Symbol(short string) string {
	var b strings.Builder

	for _, seg := range strings.Split(short, "_") {
		b.WriteString(capitalize(seg))
	}

	if strings.HasSuffix(short, "_") {
		b.WriteByte('_')
	}

	b.WriteString(SymbolSuffix)

	return b.String()
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}

	r, size := utf8.DecodeRuneInString(s)

	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// RegisteredName is the runtime lookup key of an operator.
func RegisteredName(dialect, short string) string {
	return dialect + "." + short
}

// Qualified prefixes the symbol with the namespaces.
func Qualified(namespaces []string, symbol string) string {
	var b strings.Builder
	for _, ns := range namespaces {
		b.WriteString(ns)
		b.WriteString("::")
	}
	b.WriteString(symbol)
	return b.String()
}

// Guard derives the include guard macro name from a header file path.
func Guard(fileName string) string {
	base := filepath.Base(fileName)

	base = strings.Map(func(r rune) rune {
		if r == '.' || r == '-' || r == ' ' {
			return '_'
		}
		return r
	}, base)

	return strcase.ToScreamingSnake(base) + "_"
}
