// Package processor orchestrates one translation run: parse, collect,
// dispatch, post-process, serialize, and write the output file(s).
package processor
