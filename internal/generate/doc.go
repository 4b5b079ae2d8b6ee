// Package generate runs the Generator side of plugins against a project that
// already exists on disk. It backs both the initialization phase of a new
// project and plugin installation into an existing one.
package generate
