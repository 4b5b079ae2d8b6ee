// Package cli defines the Cobra command tree for the hatch CLI. Each file
// registers one top-level command with the root command. Commands only parse
// flags, prompt and print; the work is delegated to the creator package.
package cli
