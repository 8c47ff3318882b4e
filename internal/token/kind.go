package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// KwImport represents the 'import' keyword.
	KwImport // import
	// KwAs represents the 'as' keyword.
	KwAs // as
	// KwPub represents the 'pub' keyword.
	KwPub // pub
	// KwFn represents the 'fn' keyword.
	KwFn // fn
	// KwType represents the 'type' keyword.
	KwType // type
	// KwConst represents the 'const' keyword.
	KwConst // const
	// KwLet represents the 'let' keyword.
	KwLet // let
	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwWhile represents the 'while' keyword.
	KwWhile // while
	// KwReturn represents the 'return' keyword.
	KwReturn // return
	// KwBreak represents the 'break' keyword.
	KwBreak // break
	// KwContinue represents the 'continue' keyword.
	KwContinue // continue
	// KwTrue represents the 'true' literal keyword.
	KwTrue // true
	// KwFalse represents the 'false' literal keyword.
	KwFalse // false

	// IntLit represents an integer literal.
	IntLit
	// FloatLit represents a floating-point literal.
	FloatLit
	// StringLit represents a string literal.
	StringLit

	// LParen '('
	LParen
	// RParen ')'
	RParen
	// LBrace '{'
	LBrace
	// RBrace '}'
	RBrace
	// Comma ','
	Comma
	// Semicolon ';'
	Semicolon
	// Colon ':'
	Colon
	// Dot '.'
	Dot
	// Arrow '->'
	Arrow
	// Assign '='
	Assign
	// Plus '+'
	Plus
	// Minus '-'
	Minus
	// Star '*'
	Star
	// Slash '/'
	Slash
	// Percent '%'
	Percent
	// Bang '!'
	Bang
	// EqEq '=='
	EqEq
	// BangEq '!='
	BangEq
	// Lt '<'
	Lt
	// LtEq '<='
	LtEq
	// Gt '>'
	Gt
	// GtEq '>='
	GtEq
	// AndAnd '&&'
	AndAnd
	// OrOr '||'
	OrOr
	// At '@'
	At

	kindCount
)

var kindNames = [...]string{
	Invalid:    "Invalid",
	EOF:        "EOF",
	Ident:      "Ident",
	KwImport:   "import",
	KwAs:       "as",
	KwPub:      "pub",
	KwFn:       "fn",
	KwType:     "type",
	KwConst:    "const",
	KwLet:      "let",
	KwIf:       "if",
	KwElse:     "else",
	KwWhile:    "while",
	KwReturn:   "return",
	KwBreak:    "break",
	KwContinue: "continue",
	KwTrue:     "true",
	KwFalse:    "false",
	IntLit:     "IntLit",
	FloatLit:   "FloatLit",
	StringLit:  "StringLit",
	LParen:     "(",
	RParen:     ")",
	LBrace:     "{",
	RBrace:     "}",
	Comma:      ",",
	Semicolon:  ";",
	Colon:      ":",
	Dot:        ".",
	Arrow:      "->",
	Assign:     "=",
	Plus:       "+",
	Minus:      "-",
	Star:       "*",
	Slash:      "/",
	Percent:    "%",
	Bang:       "!",
	EqEq:       "==",
	BangEq:     "!=",
	Lt:         "<",
	LtEq:       "<=",
	Gt:         ">",
	GtEq:       ">=",
	AndAnd:     "&&",
	OrOr:       "||",
	At:         "@",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}
