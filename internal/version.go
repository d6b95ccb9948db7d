// Package internal holds values shared across the command binaries.
package internal

// Version is the release version reported by --version.
const Version = "0.1.0"
