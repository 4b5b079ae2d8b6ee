package template

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/hatch-dev/hatch/internal/branding"
	"github.com/hatch-dev/hatch/internal/output"
)

// DefaultDir is the subdirectory of a template source holding the files
// to render.
const DefaultDir = "template"

// Lookup resolves a package name to its tarball URL.
type Lookup interface {
	TarballURL(ctx context.Context, name string) (string, error)
}

// Resolver turns template references into local directories.
type Resolver struct {
	httpClient *http.Client
	lookup     Lookup
	dir        string
	strip      int
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithHTTPClient sets the HTTP client used for downloads.
func WithHTTPClient(c *http.Client) Option {
	return func(r *Resolver) {
		r.httpClient = c
	}
}

// WithLookup sets the package metadata lookup.
func WithLookup(l Lookup) Option {
	return func(r *Resolver) {
		r.lookup = l
	}
}

// WithDir overrides the template subdirectory name.
func WithDir(name string) Option {
	return func(r *Resolver) {
		if name != "" {
			r.dir = name
		}
	}
}

// WithStripComponents sets how many leading path components are dropped
// from archive entries.
func WithStripComponents(n int) Option {
	return func(r *Resolver) {
		r.strip = n
	}
}

// NewResolver creates a Resolver with the given options.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		httpClient: http.DefaultClient,
		dir:        DefaultDir,
		strip:      DefaultStripComponents,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the absolute template directory for ref. Remote and
// package references are extracted into a temp directory taken from the
// context's Scope; without one the directory is left for the caller to find
// and remove.
func (r *Resolver) Resolve(ctx context.Context, ref string) (string, error) {
	parsed := Classify(ref)
	output.Debug("resolving template", "reference", ref, "kind", parsed.Kind)

	switch parsed.Kind {
	case Local:
		return r.resolveLocal(parsed)
	case Package:
		url, err := r.lookupTarball(ctx, parsed.Value)
		if err != nil {
			return "", err
		}
		return r.resolveRemote(ctx, parsed.Raw, url)
	default:
		return r.resolveRemote(ctx, parsed.Raw, parsed.Value)
	}
}

func (r *Resolver) resolveLocal(ref Reference) (string, error) {
	abs, err := filepath.Abs(ref.Value)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", ref.Value, err)
	}
	return r.templateDir(ref.Raw, abs)
}

func (r *Resolver) templateDir(raw, root string) (string, error) {
	dir := filepath.Join(root, r.dir)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", &NotFoundError{Reference: raw, Path: dir}
	}
	return dir, nil
}

func (r *Resolver) lookupTarball(ctx context.Context, name string) (string, error) {
	if r.lookup == nil {
		return "", &PackageLookupError{Package: name, Err: errors.New("no package lookup configured")}
	}
	url, err := r.lookup.TarballURL(ctx, name)
	if err != nil {
		return "", &PackageLookupError{Package: name, Err: err}
	}
	url = strings.TrimSpace(url)
	if url == "" {
		return "", &PackageLookupError{Package: name, Err: errors.New("empty tarball URL")}
	}
	output.Debug("resolved package tarball", "package", name, "url", url)
	return url, nil
}

func (r *Resolver) resolveRemote(ctx context.Context, raw, url string) (string, error) {
	tmp, err := r.mkdirTemp(ctx)
	if err != nil {
		return "", &TempAllocationError{Err: err}
	}

	if err := r.download(ctx, url, tmp); err != nil {
		return "", err
	}
	return r.templateDir(raw, tmp)
}

func (r *Resolver) mkdirTemp(ctx context.Context) (string, error) {
	pattern := branding.CLIName() + "-template-*"
	if scope, ok := ScopeFrom(ctx); ok {
		return scope.MkdirTemp(pattern)
	}
	return os.MkdirTemp("", pattern)
}

// download streams url straight into the extractor; nothing is buffered on
// disk besides the extracted files.
func (r *Resolver) download(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &DownloadError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", branding.CLIName())

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return &DownloadError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &DownloadError{URL: url, StatusCode: resp.StatusCode}
	}

	src := &sourceReader{r: resp.Body}
	err = extract(src, dest, r.strip)
	if err == nil {
		return nil
	}
	if src.err != nil {
		return &DownloadError{URL: url, Err: src.err}
	}
	var ee *ExtractionError
	if errors.As(err, &ee) {
		return ee
	}
	return fmt.Errorf("extracting %s into %s: %w", url, dest, err)
}
