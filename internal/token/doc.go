// Package token defines lexical token kinds and trivia for Sable source.
// Invariants:
//   - Token.Text and Trivia.Text are exact copies of the source bytes
//     covered by their Span.
//   - Every byte of a file belongs to exactly one token text or one
//     leading trivia run; concatenating them in stream order reproduces
//     the file. The EOF token carries the file's trailing trivia.
//   - Doc comments (/// ...) are leading trivia (TriviaDocLine) and never
//     appear in the main token stream.
package token
