package token

var keywords = map[string]Kind{
	"import":   KwImport,
	"as":       KwAs,
	"pub":      KwPub,
	"fn":       KwFn,
	"type":     KwType,
	"const":    KwConst,
	"let":      KwLet,
	"if":       KwIf,
	"else":     KwElse,
	"while":    KwWhile,
	"return":   KwReturn,
	"break":    KwBreak,
	"continue": KwContinue,
	"true":     KwTrue,
	"false":    KwFalse,
}

// LookupKeyword returns the keyword kind for s, or Ident if s is not a
// keyword.
func LookupKeyword(s string) Kind {
	if k, ok := keywords[s]; ok {
		return k
	}
	return Ident
}
