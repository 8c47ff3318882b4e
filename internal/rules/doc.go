// Package rules implements the style checks that run alongside
// formatting. Rules see the raw tree exactly as parsed, before any
// canonicalization, so findings point at the author's own layout.
package rules
