// Package projectconfig reads, validates and edits the configuration file
// written at the root of every generated project. Structural edits go
// through the yaml.Node tree so comments and unknown keys survive.
package projectconfig
