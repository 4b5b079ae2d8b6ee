// Package builtin holds the plugins that ship with the binary: the fixed
// built-in set every project gets, and optional plugins users opt into with
// --plugin or the add command.
package builtin
