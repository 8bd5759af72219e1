// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data, similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

// Syntax is the source-language label a paste is highlighted with.
//
// CLOSED SETS AS NAMED STRING TYPES:
// A named type (instead of a bare string) lets the compiler catch places that
// mix up a syntax with, say, an exposure. The set of legal values lives in
// Syntaxes below; anything else is rejected by the validation chain.
type Syntax string

const (
	SyntaxNone       Syntax = "None"
	SyntaxJavascript Syntax = "Javascript"
	SyntaxPython     Syntax = "Python"
	SyntaxRuby       Syntax = "Ruby"
	SyntaxPerl       Syntax = "Perl"
	SyntaxC          Syntax = "C"
	SyntaxScheme     Syntax = "Scheme"
)

// Syntaxes lists every accepted Syntax in the order they appear in error messages.
var Syntaxes = []Syntax{
	SyntaxNone,
	SyntaxJavascript,
	SyntaxPython,
	SyntaxRuby,
	SyntaxPerl,
	SyntaxC,
	SyntaxScheme,
}

// Valid reports whether s is a member of Syntaxes.
func (s Syntax) Valid() bool {
	for _, v := range Syntaxes {
		if s == v {
			return true
		}
	}
	return false
}

// Exposure controls who may see a paste.
type Exposure string

const (
	ExposurePrivate Exposure = "private"
	ExposurePublic  Exposure = "public"
)

// Exposures lists every accepted Exposure.
var Exposures = []Exposure{ExposurePrivate, ExposurePublic}

// Valid reports whether e is a member of Exposures.
func (e Exposure) Valid() bool {
	for _, v := range Exposures {
		if e == v {
			return true
		}
	}
	return false
}

// Paste represents a stored text snippet.
//
// The `json:"..."` tags tell Go's encoding/json package how to serialize/deserialize
// this struct to/from JSON. user_id keeps its snake_case name because existing
// API clients already send and read it that way.
//
// Expiration is an opaque positive integer. Its unit has never been pinned down,
// so nothing in the server interprets it.
type Paste struct {
	ID         int      `json:"id"`
	Name       string   `json:"name"`
	Syntax     Syntax   `json:"syntax"`
	Exposure   Exposure `json:"exposure"`
	Expiration int      `json:"expiration"`
	Text       string   `json:"text"`
	UserID     int      `json:"user_id"`
}

// PasteFields holds the fields a client may set on a paste.
// ID is never client-supplied; UserID is only honoured on create.
type PasteFields struct {
	Name       string
	Syntax     Syntax
	Exposure   Exposure
	Expiration int
	Text       string
	UserID     int
}
