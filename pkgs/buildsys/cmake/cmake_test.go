package cmake

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/goplus/vkbuild/internal/options"
	"github.com/goplus/vkbuild/internal/runner/runnertest"
	"github.com/goplus/vkbuild/pkgs/buildsys"
)

func TestConfigureArgs(t *testing.T) {
	rec := &runnertest.Recorder{}
	build := t.TempDir()
	c := New("src", build).WithRunner(rec).Generator("Ninja")
	c.DefineBool("TYPED", true)

	err := c.Configure(context.Background(), options.Definitions{
		"ENABLEFOO": "1",
		"MODE":      "DEBUG",
		ProfileKey:  "RelWithDebInfo",
	})
	if err != nil {
		t.Fatalf("configure: %v", err)
	}

	want := "cmake -S src -B " + build + " -G Ninja -DCMAKE_BUILD_TYPE=RelWithDebInfo -DENABLEFOO=1 -DMODE=DEBUG -DTYPED:BOOL=ON"
	if got := rec.Lines(); len(got) != 1 || got[0] != want {
		t.Fatalf("commands = %q, want %q", got, want)
	}
}

func TestStepsUseProfileAsConfig(t *testing.T) {
	rec := &runnertest.Recorder{}
	build := t.TempDir()
	c := New("src", build).WithRunner(rec)
	ctx := context.Background()

	if err := c.Configure(ctx, options.Definitions{ProfileKey: "Debug"}); err != nil {
		t.Fatalf("configure: %v", err)
	}
	if err := c.Build(ctx, "engine"); err != nil {
		t.Fatalf("build: %v", err)
	}
	if err := c.Test(ctx, true); err != nil {
		t.Fatalf("test: %v", err)
	}
	if err := c.Install(ctx, c.OutputDir()); err != nil {
		t.Fatalf("install: %v", err)
	}

	want := []string{
		"cmake -S src -B " + build + " -DCMAKE_BUILD_TYPE=Debug",
		"cmake --build " + build + " --target engine --config Debug",
		"ctest --test-dir " + build + " -C Debug --output-on-failure",
		"cmake --install " + build + " --prefix " + build + " --config Debug",
	}
	if got := rec.Lines(); !reflect.DeepEqual(got, want) {
		t.Fatalf("commands =\n%s\nwant\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

func TestStepsWithoutConfigureUseBuildType(t *testing.T) {
	rec := &runnertest.Recorder{}
	c := New("src", "out").WithRunner(rec).BuildType("Release")
	ctx := context.Background()

	if err := c.Build(ctx, "engine"); err != nil {
		t.Fatalf("build: %v", err)
	}
	if err := c.Test(ctx, true); err != nil {
		t.Fatalf("test: %v", err)
	}
	if err := c.Install(ctx, "dist"); err != nil {
		t.Fatalf("install: %v", err)
	}

	want := []string{
		"cmake --build out --target engine --config Release",
		"ctest --test-dir out -C Release --output-on-failure",
		"cmake --install out --prefix dist --config Release",
	}
	if got := rec.Lines(); !reflect.DeepEqual(got, want) {
		t.Fatalf("commands =\n%s\nwant\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

func TestConfigureProfileReplacesBuildType(t *testing.T) {
	rec := &runnertest.Recorder{}
	c := New("src", t.TempDir()).WithRunner(rec).BuildType("Release")
	ctx := context.Background()

	if err := c.Configure(ctx, options.Definitions{ProfileKey: "Debug"}); err != nil {
		t.Fatalf("configure: %v", err)
	}
	if err := c.Build(ctx, ""); err != nil {
		t.Fatalf("build: %v", err)
	}
	if got := rec.Lines()[1]; !strings.HasSuffix(got, "--config Debug") {
		t.Fatalf("build command = %q, want --config Debug", got)
	}
}

func TestTestWithoutOutputOnFailure(t *testing.T) {
	rec := &runnertest.Recorder{}
	c := New("src", "out").WithRunner(rec)
	if err := c.Test(context.Background(), false); err != nil {
		t.Fatalf("test: %v", err)
	}
	if got := rec.Lines()[0]; got != "ctest --test-dir out" {
		t.Fatalf("command = %q", got)
	}
}

func TestUseSetsToolchainAndEnv(t *testing.T) {
	t.Setenv("PKG_CONFIG_PATH", "/usr/lib/pkgconfig")
	rec := &runnertest.Recorder{}
	build := t.TempDir()
	c := New("src", build).WithRunner(rec)

	c.Use(buildsys.Toolchain{File: "/gen/conan_toolchain.cmake", PkgConfigPath: "/gen"})
	if err := c.Configure(context.Background(), nil); err != nil {
		t.Fatalf("configure: %v", err)
	}

	cmd := rec.Cmds[0]
	if !strings.Contains(cmd.String(), "-DCMAKE_TOOLCHAIN_FILE:STRING=/gen/conan_toolchain.cmake") {
		t.Fatalf("toolchain define missing: %s", cmd.String())
	}
	want := "/gen" + string(os.PathListSeparator) + "/usr/lib/pkgconfig"
	if got := cmd.Env["PKG_CONFIG_PATH"]; got != want {
		t.Fatalf("PKG_CONFIG_PATH = %q, want %q", got, want)
	}
}

func TestDefaultBuildDir(t *testing.T) {
	c := New("engine", "")
	if got, want := c.OutputDir(), filepath.Join("engine", "build"); got != want {
		t.Fatalf("OutputDir() = %q, want %q", got, want)
	}
	if c.ProfileKey() != "CMAKE_BUILD_TYPE" {
		t.Fatalf("ProfileKey() = %q", c.ProfileKey())
	}
}

func TestConfigureBuildTestInstallE2E(t *testing.T) {
	for _, tool := range []string{"cmake", "ctest", "cc"} {
		if _, err := exec.LookPath(tool); err != nil {
			t.Skipf("%s not found in PATH", tool)
		}
	}

	tmp := t.TempDir()
	buildDir := filepath.Join(tmp, "build")
	sourceDir, err := filepath.Abs(filepath.Join("testdata", "project"))
	if err != nil {
		t.Fatal(err)
	}

	c := New(sourceDir, buildDir)
	c.Env("CUSTOM", "VAL")
	ctx := context.Background()

	if err := c.Configure(ctx, options.Definitions{"FOO": "BAR", "ENABLE": "1", ProfileKey: "Release"}); err != nil {
		t.Fatalf("configure: %v", err)
	}
	if err := c.Build(ctx, "dummy"); err != nil {
		t.Fatalf("build: %v", err)
	}
	if err := c.Build(ctx, "dummy_test"); err != nil {
		t.Fatalf("build test target: %v", err)
	}
	if err := c.Test(ctx, true); err != nil {
		t.Fatalf("test: %v", err)
	}
	if err := c.Install(ctx, c.OutputDir()); err != nil {
		t.Fatalf("install: %v", err)
	}

	if _, err := os.Stat(filepath.Join(buildDir, "include", "dummy.h")); err != nil {
		t.Fatalf("installed header missing: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(buildDir, "CMakeCache.txt"))
	if err != nil {
		t.Fatalf("read cache: %v", err)
	}
	content := string(data)
	for _, snippet := range []string{
		"FOO:UNINITIALIZED=BAR",
		"CMAKE_BUILD_TYPE:STRING=Release",
	} {
		if !strings.Contains(content, snippet) {
			t.Fatalf("cache missing %q", snippet)
		}
	}
}
