// Package cst defines the lossless concrete syntax tree for Sable files.
//
// Every token of the source, including comments and whitespace runs,
// lives in the tree: significant tokens as Leaf children, trivia
// attached to the token that follows it. Source() reassembles the exact
// input bytes, which the parser verifies after every parse.
//
// Trees are immutable by convention. The formatting passes in
// internal/canon consume one tree and produce a new one, which lets the
// idempotence and semantic-preservation properties be checked
// structurally (see Equal, TopLevelKinds).
package cst
