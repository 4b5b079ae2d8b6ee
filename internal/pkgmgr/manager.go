package pkgmgr

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/hatch-dev/hatch/internal/output"
)

// DefaultClient is the package manager command used when none is configured.
const DefaultClient = "npm"

// DependencyInstallError reports a failed dependency installation.
type DependencyInstallError struct {
	Dir     string
	Modules []string
	Err     error
}

func (e *DependencyInstallError) Error() string {
	if len(e.Modules) == 0 {
		return fmt.Sprintf("installing dependencies in %s: %v", e.Dir, e.Err)
	}
	return fmt.Sprintf("installing %s in %s: %v", strings.Join(e.Modules, ", "), e.Dir, e.Err)
}

func (e *DependencyInstallError) Unwrap() error { return e.Err }

// InstallOptions controls how modules are recorded in package.json.
type InstallOptions struct {
	SaveDev bool
}

// Manager runs package manager commands.
type Manager struct {
	client   []string
	registry string
	runner   Runner
}

// Option configures a Manager.
type Option func(*Manager)

// WithRunner replaces the command runner.
func WithRunner(r Runner) Option {
	return func(m *Manager) {
		m.runner = r
	}
}

// WithRegistry passes --registry to every install and lookup.
func WithRegistry(url string) Option {
	return func(m *Manager) {
		m.registry = url
	}
}

// New returns a Manager for the given client command line, e.g. "npm",
// "pnpm" or "npm --no-audit". An empty client means npm.
func New(client string, opts ...Option) (*Manager, error) {
	if strings.TrimSpace(client) == "" {
		client = DefaultClient
	}
	words, err := shellquote.Split(client)
	if err != nil {
		return nil, fmt.Errorf("parsing package manager command %q: %w", client, err)
	}
	if len(words) == 0 {
		return nil, errors.New("package manager command is empty")
	}

	m := &Manager{client: words, runner: &ExecRunner{}}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Client returns the package manager executable name.
func (m *Manager) Client() string {
	return m.client[0]
}

// InstallProject installs the dependencies declared by the project in dir.
func (m *Manager) InstallProject(ctx context.Context, dir string) error {
	output.Debug("installing project dependencies", "dir", dir, "client", m.Client())
	if _, err := m.run(ctx, dir, m.installArgs(nil, InstallOptions{})...); err != nil {
		return &DependencyInstallError{Dir: dir, Err: err}
	}
	return nil
}

// Install adds modules as dependencies of the project in dir.
func (m *Manager) Install(ctx context.Context, dir string, modules []string, opts InstallOptions) error {
	if len(modules) == 0 {
		return nil
	}
	output.Debug("installing modules", "dir", dir, "modules", strings.Join(modules, " "), "dev", opts.SaveDev)
	if _, err := m.run(ctx, dir, m.installArgs(modules, opts)...); err != nil {
		return &DependencyInstallError{Dir: dir, Modules: modules, Err: err}
	}
	return nil
}

// TarballURL asks the registry for the tarball URL of the latest version of
// name. The result is trimmed but may be empty.
func (m *Manager) TarballURL(ctx context.Context, name string) (string, error) {
	args := []string{"view", name, "dist.tarball"}
	if m.registry != "" {
		args = append(args, "--registry", m.registry)
	}
	out, err := m.run(ctx, "", args...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// Exec runs an arbitrary command in dir.
func (m *Manager) Exec(ctx context.Context, dir, command string, args ...string) ([]byte, error) {
	return m.runner.Run(ctx, dir, command, args...)
}

func (m *Manager) installArgs(modules []string, opts InstallOptions) []string {
	// yarn uses "add"; npm and pnpm accept "install <pkg>" but pnpm prefers add.
	verb := "install"
	if len(modules) > 0 && (m.Client() == "yarn" || m.Client() == "pnpm") {
		verb = "add"
	}
	args := []string{verb}
	if opts.SaveDev {
		if m.Client() == "yarn" {
			args = append(args, "--dev")
		} else {
			args = append(args, "--save-dev")
		}
	}
	args = append(args, modules...)
	if m.registry != "" {
		args = append(args, "--registry", m.registry)
	}
	return args
}

func (m *Manager) run(ctx context.Context, dir string, args ...string) ([]byte, error) {
	full := append(append([]string{}, m.client[1:]...), args...)
	return m.runner.Run(ctx, dir, m.client[0], full...)
}
