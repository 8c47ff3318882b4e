// Package diag carries the diagnostic data model shared by the lexer,
// parser, and rule engine: codes, severities, immutable Diagnostic
// records, and the Bag collector.
//
// Diagnostics are data, not errors: phases report through a Reporter and
// keep going. Only parse failures and internal invariant breaches abort
// a file, and those travel as Go errors alongside the bag.
package diag
