// Package render produces the initial in-memory file set from a template
// directory. In text files, placeholders naming a context key
// ({{ projectName }}, {{ appId|upper }}, ...) are rendered with pongo2 and
// everything else is kept verbatim, so data-binding or JSX braces survive.
// Binary files are copied untouched.
package render
