// Package cli wires the cobra command line, its flags, and the viper
// configuration layer, including API credential resolution.
package cli
