package creator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"

	"github.com/hatch-dev/hatch/internal/hook"
	"github.com/hatch-dev/hatch/internal/pkgmgr"
	"github.com/hatch-dev/hatch/internal/plugin"
	"github.com/hatch-dev/hatch/internal/project"
	"github.com/hatch-dev/hatch/internal/projectconfig"
	"github.com/hatch-dev/hatch/internal/template"
)

type fakePM struct {
	calls []string
}

func (f *fakePM) InstallProject(_ context.Context, dir string) error {
	f.calls = append(f.calls, "install-project")
	return nil
}

func (f *fakePM) Install(_ context.Context, dir string, modules []string, opts pkgmgr.InstallOptions) error {
	f.calls = append(f.calls, fmt.Sprintf("install %s dev=%v", strings.Join(modules, ","), opts.SaveDev))
	return nil
}

func (f *fakePM) TarballURL(context.Context, string) (string, error) {
	return "", errors.New("no registry in tests")
}

func (f *fakePM) Exec(_ context.Context, dir, command string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, "exec "+command)
	return nil, nil
}

type initFunc func(ctx context.Context, dir string) error

func (f initFunc) Init(ctx context.Context, dir string) error { return f(ctx, dir) }

type testPlugin struct {
	creator   func(api plugin.CreatorAPI) error
	generator func(api plugin.GeneratorAPI) error
}

func (p *testPlugin) Creator(api plugin.CreatorAPI) error {
	if p.creator == nil {
		return nil
	}
	return p.creator(api)
}

func (p *testPlugin) Generator(api plugin.GeneratorAPI) error {
	if p.generator == nil {
		return nil
	}
	return p.generator(api)
}

func register(r *plugin.Registry, id string, p plugin.Plugin, pkgs ...string) {
	r.MustRegister(plugin.Registration{
		ID:       id,
		Packages: pkgs,
		Factory:  func(map[string]any) (plugin.Plugin, error) { return p, nil },
	})
}

// newTemplate returns a file:// reference to a template with one file.
func newTemplate(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, template.DefaultDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "hello.txt"), []byte("Hello {{ projectName }}"), 0o644); err != nil {
		t.Fatal(err)
	}
	return template.LocalPrefix + root
}

func newCreator(t *testing.T, opts Options) *Creator {
	t.Helper()
	if opts.PackageManager == nil {
		opts.PackageManager = &fakePM{}
	}
	if opts.Initializer == nil {
		opts.Initializer = initFunc(func(context.Context, string) error { return nil })
	}
	c, err := New(opts)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return c
}

// tapAll records "<stage>:<id>" for every stage.
func tapAll(log *[]string) func(api plugin.CreatorAPI) error {
	return func(api plugin.CreatorAPI) error {
		id := api.PluginID()
		rec := func(stage string) { *log = append(*log, stage+":"+id) }
		api.TapPrepare(func(_ context.Context, m project.Metadata) (project.Metadata, error) {
			rec(StagePrepare)
			return m, nil
		})
		api.TapResolveTemplate(func(_ context.Context, ref string) (string, error) {
			rec(StageResolveTemplate)
			return ref, nil
		})
		api.TapRender(func(context.Context, *project.RenderInput) error { rec(StageRender); return nil })
		api.TapBeforeEmit(func(context.Context, project.FileSet) error { rec(StageBeforeEmit); return nil })
		api.TapEmit(func(context.Context, *project.EmitInput) error { rec(StageEmit); return nil })
		api.TapInit(func(context.Context, string) error { rec(StageInit); return nil })
		api.TapAfterInit(func(context.Context, string) error { rec(StageAfterInit); return nil })
		return nil
	}
}

func TestBuiltinHandlersRunBeforeUserHandlers(t *testing.T) {
	var log []string
	reg := plugin.NewRegistry()
	register(reg, "builtin", &testPlugin{creator: tapAll(&log)})
	register(reg, "user", &testPlugin{creator: tapAll(&log)})

	c := newCreator(t, Options{
		Registry: reg,
		Builtins: []plugin.Info{{ID: "builtin"}},
		// Declared first by the user too; it must keep its built-in slot.
		Plugins: []plugin.Info{{ID: "user"}, {ID: "builtin"}},
	})
	err := c.Create(context.Background(), CreateOptions{
		ProjectName: "demo",
		Template:    newTemplate(t),
		TargetDir:   filepath.Join(t.TempDir(), "demo"),
	})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	var want []string
	for _, stage := range []string{StagePrepare, StageResolveTemplate, StageRender, StageBeforeEmit, StageEmit, StageInit, StageAfterInit} {
		want = append(want, stage+":builtin", stage+":user")
	}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("handler order mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateWritesRenderedTemplate(t *testing.T) {
	var initDir string
	target := filepath.Join(t.TempDir(), "demo")
	c := newCreator(t, Options{
		Registry: plugin.NewRegistry(),
		Initializer: initFunc(func(_ context.Context, dir string) error {
			initDir = dir
			return nil
		}),
	})
	err := c.Create(context.Background(), CreateOptions{ProjectName: "demo", Template: newTemplate(t), TargetDir: target})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	got, err := os.ReadFile(filepath.Join(target, "hello.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "Hello demo" {
		t.Errorf("hello.txt = %q, want %q", got, "Hello demo")
	}
	if initDir != target {
		t.Errorf("init ran in %q, want %q", initDir, target)
	}
}

func TestFileSetIdentityAcrossStages(t *testing.T) {
	var ptrs []uintptr
	ptr := func(fs project.FileSet) uintptr { return reflect.ValueOf(fs).Pointer() }

	reg := plugin.NewRegistry()
	register(reg, "mutator", &testPlugin{creator: func(api plugin.CreatorAPI) error {
		api.TapRender(func(_ context.Context, in *project.RenderInput) error {
			ptrs = append(ptrs, ptr(in.Files))
			in.Files.SetString("extra.txt", "added in render")
			return nil
		})
		api.TapBeforeEmit(func(_ context.Context, files project.FileSet) error {
			ptrs = append(ptrs, ptr(files))
			files.Delete("hello.txt")
			return nil
		})
		api.TapEmit(func(_ context.Context, in *project.EmitInput) error {
			ptrs = append(ptrs, ptr(in.Files))
			return nil
		})
		return nil
	}})

	target := filepath.Join(t.TempDir(), "demo")
	c := newCreator(t, Options{Registry: reg, Plugins: []plugin.Info{{ID: "mutator"}}})
	if err := c.Create(context.Background(), CreateOptions{ProjectName: "demo", Template: newTemplate(t), TargetDir: target}); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	if len(ptrs) != 3 || ptrs[0] != ptrs[1] || ptrs[1] != ptrs[2] {
		t.Errorf("file set identity not preserved: %v", ptrs)
	}
	if _, err := os.Stat(filepath.Join(target, "extra.txt")); err != nil {
		t.Errorf("render addition not emitted: %v", err)
	}
	if _, err := os.Stat(filepath.Join(target, "hello.txt")); !os.IsNotExist(err) {
		t.Errorf("beforeEmit deletion not honoured, stat err = %v", err)
	}
}

func TestBeforeEmitFailureStopsPipeline(t *testing.T) {
	boom := errors.New("boom")
	var later []string
	reg := plugin.NewRegistry()
	register(reg, "failing", &testPlugin{creator: func(api plugin.CreatorAPI) error {
		api.TapBeforeEmit(func(context.Context, project.FileSet) error { return boom })
		api.TapEmit(func(context.Context, *project.EmitInput) error { later = append(later, "emit"); return nil })
		api.TapAfterInit(func(context.Context, string) error { later = append(later, "afterInit"); return nil })
		return nil
	}})

	initCalled := false
	target := filepath.Join(t.TempDir(), "demo")
	c := newCreator(t, Options{
		Registry: reg,
		Plugins:  []plugin.Info{{ID: "failing"}},
		Initializer: initFunc(func(context.Context, string) error {
			initCalled = true
			return nil
		}),
	})
	err := c.Create(context.Background(), CreateOptions{ProjectName: "demo", Template: newTemplate(t), TargetDir: target})

	var he *hook.HandlerError
	if !errors.As(err, &he) {
		t.Fatalf("Create() error = %v, want *hook.HandlerError", err)
	}
	if he.Stage != StageBeforeEmit || he.PluginID != "failing" {
		t.Errorf("error attributed to %s/%s", he.Stage, he.PluginID)
	}
	if !errors.Is(err, boom) {
		t.Error("error should unwrap to the handler's error")
	}
	if len(later) != 0 || initCalled {
		t.Errorf("later stages ran: %v init=%v", later, initCalled)
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Errorf("target dir should not exist, stat err = %v", err)
	}
}

func TestPrepareWaterfallFreezesMetadata(t *testing.T) {
	var seen project.Metadata
	var sessionMeta project.Metadata
	reg := plugin.NewRegistry()
	register(reg, "first", &testPlugin{creator: func(api plugin.CreatorAPI) error {
		api.TapPrepare(func(_ context.Context, m project.Metadata) (project.Metadata, error) {
			m.AppID = "com.example." + m.ProjectName
			return m, nil
		})
		return nil
	}})
	register(reg, "second", &testPlugin{creator: func(api plugin.CreatorAPI) error {
		api.TapPrepare(func(_ context.Context, m project.Metadata) (project.Metadata, error) {
			m.AppID += ".app"
			return m, nil
		})
		api.TapRender(func(ctx context.Context, in *project.RenderInput) error {
			seen = in.Metadata
			in.Metadata.AppID = "mutated"
			return nil
		})
		api.TapBeforeEmit(func(ctx context.Context, _ project.FileSet) error {
			s, ok := SessionFrom(ctx)
			if !ok {
				return errors.New("no session")
			}
			sessionMeta = s.Metadata()
			return nil
		})
		return nil
	}})

	c := newCreator(t, Options{Registry: reg, Plugins: []plugin.Info{{ID: "first"}, {ID: "second"}}})
	err := c.Create(context.Background(), CreateOptions{ProjectName: "demo", Template: newTemplate(t), TargetDir: filepath.Join(t.TempDir(), "demo")})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if seen.AppID != "com.example.demo.app" {
		t.Errorf("render saw AppID %q", seen.AppID)
	}
	if sessionMeta.AppID != "com.example.demo.app" {
		t.Errorf("session metadata AppID %q, mutation after prepare leaked", sessionMeta.AppID)
	}
}

func TestCreateRejectsInvalidMetadata(t *testing.T) {
	resolved := false
	c := newCreator(t, Options{
		Registry: plugin.NewRegistry(),
		Resolver: resolverFunc(func(context.Context, string) (string, error) {
			resolved = true
			return "", nil
		}),
	})
	err := c.Create(context.Background(), CreateOptions{Template: "x"})
	var he *hook.HandlerError
	if !errors.As(err, &he) {
		t.Fatalf("Create() error = %v, want *hook.HandlerError", err)
	}
	if he.Stage != StagePrepare || he.PluginID != CoreID {
		t.Errorf("error attributed to %s/%s, want %s/%s", he.Stage, he.PluginID, StagePrepare, CoreID)
	}
	if resolved {
		t.Error("template must not be resolved for invalid metadata")
	}
}

type resolverFunc func(ctx context.Context, ref string) (string, error)

func (f resolverFunc) Resolve(ctx context.Context, ref string) (string, error) { return f(ctx, ref) }

// scopedResolver allocates the template dir from the context scope, the
// way remote templates are.
func scopedResolver(dirs *[]string) TemplateResolver {
	return resolverFunc(func(ctx context.Context, ref string) (string, error) {
		scope, ok := template.ScopeFrom(ctx)
		if !ok {
			return "", errors.New("no scope")
		}
		dir, err := scope.MkdirTemp("tpl-*")
		if err != nil {
			return "", err
		}
		*dirs = append(*dirs, dir)
		if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0o644); err != nil {
			return "", err
		}
		return dir, nil
	})
}

func TestTempDirsRemovedAfterRender(t *testing.T) {
	var dirs []string
	var existedInBeforeEmit bool
	reg := plugin.NewRegistry()
	register(reg, "probe", &testPlugin{creator: func(api plugin.CreatorAPI) error {
		api.TapBeforeEmit(func(context.Context, project.FileSet) error {
			if _, err := os.Stat(dirs[len(dirs)-1]); err == nil {
				existedInBeforeEmit = true
			}
			return nil
		})
		return nil
	}})

	c := newCreator(t, Options{Registry: reg, Plugins: []plugin.Info{{ID: "probe"}}, Resolver: scopedResolver(&dirs)})
	for i := 0; i < 2; i++ {
		err := c.Create(context.Background(), CreateOptions{ProjectName: "demo", Template: "remote", TargetDir: filepath.Join(t.TempDir(), "demo")})
		if err != nil {
			t.Fatalf("Create() error: %v", err)
		}
	}
	if existedInBeforeEmit {
		t.Error("temp dir still present after render")
	}
	if len(dirs) != 2 || dirs[0] == dirs[1] {
		t.Errorf("each Create should get its own temp dir, got %v", dirs)
	}
}

func TestTempDirsRemovedWhenRenderFails(t *testing.T) {
	var dirs []string
	reg := plugin.NewRegistry()
	register(reg, "bad-render", &testPlugin{creator: func(api plugin.CreatorAPI) error {
		api.TapRender(func(context.Context, *project.RenderInput) error { return errors.New("nope") })
		return nil
	}})

	c := newCreator(t, Options{Registry: reg, Plugins: []plugin.Info{{ID: "bad-render"}}, Resolver: scopedResolver(&dirs)})
	err := c.Create(context.Background(), CreateOptions{ProjectName: "demo", Template: "remote", TargetDir: filepath.Join(t.TempDir(), "demo")})
	if err == nil {
		t.Fatal("expected render error")
	}
	if _, statErr := os.Stat(dirs[0]); !os.IsNotExist(statErr) {
		t.Errorf("temp dir not removed after failed render: %v", statErr)
	}
}

func TestInitPluginsOnce(t *testing.T) {
	calls := 0
	reg := plugin.NewRegistry()
	register(reg, "counted", &testPlugin{creator: func(plugin.CreatorAPI) error {
		calls++
		return nil
	}})
	c := newCreator(t, Options{Registry: reg, Plugins: []plugin.Info{{ID: "counted"}}})
	for i := 0; i < 2; i++ {
		if err := c.InitPlugins(); err != nil {
			t.Fatal(err)
		}
	}
	if err := c.Create(context.Background(), CreateOptions{ProjectName: "demo", Template: newTemplate(t), TargetDir: filepath.Join(t.TempDir(), "demo")}); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("Creator called %d times, want 1", calls)
	}
}

func TestInitPluginsUnknown(t *testing.T) {
	c := newCreator(t, Options{Registry: plugin.NewRegistry(), Plugins: []plugin.Info{{ID: "ghost"}}})
	var nf *plugin.NotFoundError
	if err := c.InitPlugins(); !errors.As(err, &nf) {
		t.Fatalf("InitPlugins() error = %v, want NotFoundError", err)
	}
}

func TestSessionOncePerCreate(t *testing.T) {
	runs := 0
	var ids []string
	reg := plugin.NewRegistry()
	register(reg, "once", &testPlugin{creator: func(api plugin.CreatorAPI) error {
		handler := func(ctx context.Context, _ project.FileSet) error {
			s := api.Session(ctx)
			ids = append(ids, s.ID())
			return s.Once("key", func() error { runs++; return nil })
		}
		api.TapBeforeEmit(handler)
		api.TapBeforeEmit(handler)
		return nil
	}})

	c := newCreator(t, Options{Registry: reg, Plugins: []plugin.Info{{ID: "once"}}})
	for i := 0; i < 2; i++ {
		if err := c.Create(context.Background(), CreateOptions{ProjectName: "demo", Template: newTemplate(t), TargetDir: filepath.Join(t.TempDir(), "demo")}); err != nil {
			t.Fatal(err)
		}
	}
	if runs != 2 {
		t.Errorf("Once ran %d times over two sessions, want 2", runs)
	}
	if ids[0] != ids[1] || ids[1] == ids[2] {
		t.Errorf("session ids %v: want stable within a Create and fresh across", ids)
	}
}

func TestSkipInstallNoopsNodeModules(t *testing.T) {
	pm := &fakePM{}
	reg := plugin.NewRegistry()
	register(reg, "installer", &testPlugin{creator: func(api plugin.CreatorAPI) error {
		api.TapInit(func(ctx context.Context, dir string) error {
			return api.InstallNodeModules(ctx, dir, []string{"left-pad"}, pkgmgr.InstallOptions{SaveDev: true})
		})
		return nil
	}})
	c := newCreator(t, Options{Registry: reg, PackageManager: pm, SkipInstall: true, Plugins: []plugin.Info{{ID: "installer"}}})
	if err := c.Create(context.Background(), CreateOptions{ProjectName: "demo", Template: newTemplate(t), TargetDir: filepath.Join(t.TempDir(), "demo")}); err != nil {
		t.Fatal(err)
	}
	if len(pm.calls) != 0 {
		t.Errorf("package manager called with SkipInstall: %v", pm.calls)
	}
}

func writeProject(t *testing.T, config string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(projectconfig.Path(dir), []byte(config), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestInstallPluginEmptyIsNoop(t *testing.T) {
	const config = "projectName: demo\nplugins:\n  - p0\n"
	dir := writeProject(t, config)
	pm := &fakePM{}
	c := newCreator(t, Options{Registry: plugin.NewRegistry(), PackageManager: pm})

	if err := c.InstallPlugin(context.Background(), dir, nil); err != nil {
		t.Fatalf("InstallPlugin() error: %v", err)
	}
	if len(pm.calls) != 0 {
		t.Errorf("unexpected package manager calls: %v", pm.calls)
	}
	got, _ := os.ReadFile(projectconfig.Path(dir))
	if string(got) != config {
		t.Errorf("config changed:\n%s", got)
	}
}

func TestInstallPluginAppendsAndRegenerates(t *testing.T) {
	dir := writeProject(t, "projectName: demo\nplugins:\n  - p0\n  - p1\n")
	if err := os.WriteFile(filepath.Join(dir, "p2.txt"), []byte("stale"), 0o644); err != nil {
		t.Fatal(err)
	}

	var generated []string
	gen := func(api plugin.GeneratorAPI) error {
		generated = append(generated, api.PluginID())
		_, err := api.WriteFile(api.PluginID()+".txt", []byte("fresh "+api.Metadata().ProjectName))
		return err
	}
	reg := plugin.NewRegistry()
	register(reg, "p0", &testPlugin{generator: gen})
	register(reg, "p1", &testPlugin{generator: gen}, "pkg-one")
	register(reg, "p2", &testPlugin{generator: gen}, "pkg-two", "pkg-one")

	pm := &fakePM{}
	c := newCreator(t, Options{Registry: reg, PackageManager: pm})
	if err := c.InstallPlugin(context.Background(), dir, []string{"p1", "p2"}); err != nil {
		t.Fatalf("InstallPlugin() error: %v", err)
	}

	if diff := cmp.Diff([]string{"install pkg-one,pkg-two dev=false"}, pm.calls); diff != "" {
		t.Errorf("install calls mismatch (-want +got):\n%s", diff)
	}
	cfg, err := projectconfig.Load(afero.NewOsFs(), dir)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"p0", "p1", "p2"}, plugin.IDs(cfg.Plugins)); diff != "" {
		t.Errorf("config plugins mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"p1", "p2"}, generated); diff != "" {
		t.Errorf("only new plugins should generate (-want +got):\n%s", diff)
	}
	got, _ := os.ReadFile(filepath.Join(dir, "p2.txt"))
	if string(got) != "fresh demo" {
		t.Errorf("p2.txt = %q, existing files should be overwritten", got)
	}
}

func TestInstallPluginUnknown(t *testing.T) {
	dir := writeProject(t, "projectName: demo\n")
	pm := &fakePM{}
	c := newCreator(t, Options{Registry: plugin.NewRegistry(), PackageManager: pm})
	if err := c.InstallPlugin(context.Background(), dir, []string{"ghost"}); err == nil {
		t.Fatal("expected error for unregistered plugin")
	}
	if len(pm.calls) != 0 {
		t.Errorf("nothing should be installed: %v", pm.calls)
	}
}

func TestInstallPluginTwiceIsIdempotent(t *testing.T) {
	dir := writeProject(t, "projectName: demo\nplugins:\n  - p0\n")

	runs := 0
	gen := func(api plugin.GeneratorAPI) error {
		runs++
		_, err := api.WriteFile("p1.txt", []byte("run"))
		return err
	}
	reg := plugin.NewRegistry()
	register(reg, "p0", &testPlugin{})
	register(reg, "p1", &testPlugin{generator: gen})

	c := newCreator(t, Options{Registry: reg, PackageManager: &fakePM{}})
	var snapshots []string
	for range 3 {
		if err := c.InstallPlugin(context.Background(), dir, []string{"p1"}); err != nil {
			t.Fatalf("InstallPlugin() error: %v", err)
		}
		data, err := os.ReadFile(projectconfig.Path(dir))
		if err != nil {
			t.Fatal(err)
		}
		snapshots = append(snapshots, string(data))
	}

	if snapshots[1] != snapshots[0] || snapshots[2] != snapshots[0] {
		t.Errorf("config changed on re-install:\n%s", strings.Join(snapshots, "---\n"))
	}
	cfg, err := projectconfig.Load(afero.NewOsFs(), dir)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"p0", "p1"}, plugin.IDs(cfg.Plugins)); diff != "" {
		t.Errorf("config plugins mismatch (-want +got):\n%s", diff)
	}
	if runs != 3 {
		t.Errorf("generator ran %d times, want 3", runs)
	}
}

func TestInstallPluginOutsideProjectInstallsNothing(t *testing.T) {
	dir := t.TempDir()
	reg := plugin.NewRegistry()
	register(reg, "p1", &testPlugin{}, "pkg-one")

	pm := &fakePM{}
	c := newCreator(t, Options{Registry: reg, PackageManager: pm})
	err := c.InstallPlugin(context.Background(), dir, []string{"p1"})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("InstallPlugin() error = %v, want not-exist", err)
	}
	if len(pm.calls) != 0 {
		t.Errorf("nothing should be installed: %v", pm.calls)
	}
	if _, err := os.Stat(filepath.Join(dir, "node_modules")); !os.IsNotExist(err) {
		t.Error("node_modules should not exist")
	}
}

func TestCreateKeepsExecutableBit(t *testing.T) {
	src := t.TempDir()
	if err := os.MkdirAll(filepath.Join(src, "template"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "template", "gradlew"), []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "template", "README.md"), []byte("# {{ projectName }}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	target := filepath.Join(t.TempDir(), "demo")
	c := newCreator(t, Options{Registry: plugin.NewRegistry()})
	err := c.Create(context.Background(), CreateOptions{ProjectName: "demo", AppID: "demo", Template: "file://" + src, TargetDir: target})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	for name, want := range map[string]os.FileMode{"gradlew": 0o755, "README.md": 0o644} {
		info, err := os.Stat(filepath.Join(target, name))
		if err != nil {
			t.Fatal(err)
		}
		if got := info.Mode().Perm(); got != want {
			t.Errorf("mode of %s = %v, want %v", name, got, want)
		}
	}
}
