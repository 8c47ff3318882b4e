// Package printer turns a canonical syntax tree into formatted text.
//
// Layout is measure-then-commit: every construct is first rendered flat
// and taken as-is when it fits within MaxLineWidth; otherwise the
// construct's wrap strategy kicks in (one argument or parameter per
// line, break before a binary operator, one field per line in type
// bodies). Comments that sit in the middle of a construct are hoisted
// onto their own lines ahead of it, so no comment is ever lost.
//
// Output is deterministic: it depends only on the tree and the width
// budget, never on the input's original layout.
package printer
