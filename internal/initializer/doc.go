// Package initializer performs the post-emit setup of a new project:
// dependency installation and the built-in plugins' generation pass.
package initializer
