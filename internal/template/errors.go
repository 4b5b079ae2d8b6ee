package template

import (
	"fmt"
)

// NotFoundError indicates the template directory does not exist.
type NotFoundError struct {
	Reference string
	Path      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("template %q: directory %s not found", e.Reference, e.Path)
}

// PackageLookupError indicates the package metadata query failed or
// returned no tarball URL.
type PackageLookupError struct {
	Package string
	Err     error
}

func (e *PackageLookupError) Error() string {
	return fmt.Sprintf("looking up package %q: %v", e.Package, e.Err)
}

func (e *PackageLookupError) Unwrap() error { return e.Err }

// TempAllocationError indicates no temporary directory could be created.
type TempAllocationError struct {
	Err error
}

func (e *TempAllocationError) Error() string {
	return fmt.Sprintf("allocating temp directory: %v", e.Err)
}

func (e *TempAllocationError) Unwrap() error { return e.Err }

// DownloadError indicates the HTTP request failed, returned a non-2xx
// status, or the response body could not be read.
type DownloadError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *DownloadError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("downloading %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("downloading %s: %v", e.URL, e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }

// ExtractionError indicates a malformed archive.
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extracting archive: %v", e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }
