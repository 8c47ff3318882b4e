// Package diagfmt renders diagnostics for humans (colored text with
// source context) and machines (JSON).
package diagfmt
