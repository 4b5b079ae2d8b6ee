// Package emit materializes a project.FileSet on disk.
package emit
