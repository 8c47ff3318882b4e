// Package canon holds the formatting engine: the fixed, ordered list of
// structural rewrite passes that turn a parsed tree into its canonical
// form. Passes manipulate nodes and trivia, never text, and each pass
// produces a fresh tree. Field, parameter, and statement order is never
// touched; read-down ordering is the rule engine's concern only.
package canon
