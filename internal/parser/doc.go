// Package parser builds the lossless concrete syntax tree for one Sable
// file via recursive descent over the lexer's token stream.
//
// The parser is strict: the first syntax error aborts the file with a
// *ParseError (also mirrored through the diag.Reporter). Valid files
// always parse, and the returned tree is verified against the
// lossless-parse invariant before it is handed to callers.
package parser
