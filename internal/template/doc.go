// Package template turns a template reference into a local directory.
//
// References come in three forms. A "file://" prefix names a local
// directory. Anything that looks like an absolute URL is downloaded as a
// tarball and extracted into a temporary directory. Everything else is an
// npm package name whose tarball URL is looked up first. In every case the
// resolved path is the fixed template subdirectory inside the source.
//
// Temporary directories are allocated from a Scope carried by the context;
// whoever owns the scope removes them. The resolver never deletes anything
// itself.
package template
