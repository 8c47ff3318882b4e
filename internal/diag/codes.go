package diag

import (
	"fmt"
)

// Code identifies a diagnostic kind. Codes are grouped into numeric
// ranges per producing phase; the textual ID is derived from the range.
type Code uint16

const (
	// UnknownCode is the fallback for unclassified diagnostics.
	UnknownCode Code = 0

	// Lexical
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004

	// Syntactic
	SynUnexpectedToken    Code = 2001
	SynUnclosedBrace      Code = 2002
	SynUnclosedParen      Code = 2003
	SynExpectSemicolon    Code = 2004
	SynExpectIdentifier   Code = 2005
	SynExpectType         Code = 2006
	SynUnexpectedTopLevel Code = 2007

	// Style rules
	StyleMissingDoc     Code = 3001
	StyleMalformedTag   Code = 3002
	StyleBlankEdge      Code = 3003
	StyleDeclOrder      Code = 3004

	// File boundary IO
	IoReadFailed  Code = 4001
	IoWriteFailed Code = 4002

	// Internal invariants
	InternalLossless    Code = 9001
	InternalIdempotence Code = 9002
)

var codeDescription = map[Code]string{
	UnknownCode:                 "unknown diagnostic",
	LexUnknownChar:              "unknown character",
	LexUnterminatedString:       "unterminated string literal",
	LexUnterminatedBlockComment: "unterminated block comment",
	LexBadNumber:                "malformed numeric literal",
	SynUnexpectedToken:          "unexpected token",
	SynUnclosedBrace:            "unclosed brace",
	SynUnclosedParen:            "unclosed parenthesis",
	SynExpectSemicolon:          "expected ';'",
	SynExpectIdentifier:         "expected identifier",
	SynExpectType:               "expected type",
	SynUnexpectedTopLevel:       "unexpected top-level construct",
	StyleMissingDoc:             "public declaration lacks documentation",
	StyleMalformedTag:           "malformed documentation tag",
	StyleBlankEdge:              "blank line at block boundary",
	StyleDeclOrder:              "declaration precedes all of its usages",
	IoReadFailed:                "file read failed",
	IoWriteFailed:               "file write failed",
	InternalLossless:            "lossless parse invariant violated",
	InternalIdempotence:         "formatting idempotence invariant violated",
}

// ID returns the stable textual identifier, e.g. "SBL3001".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SBL%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 9000 && ic < 10000:
		return fmt.Sprintf("INT%04d", ic)
	}
	return "E0000"
}

// Title returns the short human-readable description for the code.
func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
