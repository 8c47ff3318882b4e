// Package project locates and parses the sable.toml manifest that
// scopes a formatting run: which directories to include and what text
// encoding the sources use on disk.
package project
