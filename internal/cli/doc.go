// Package cli implements the wheelwright command line interface: a set
// of subcommands for inspecting, migrating and exporting dependency
// graph files. Parsing is split from execution so tests can drive the
// commands without a process boundary.
package cli
