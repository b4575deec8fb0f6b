// Package artifact copies the shared libraries of resolved dependencies
// next to the built executables, so they can be run from the build tree.
//
// Only Windows and macOS need it: Windows looks for DLLs next to the
// executable and macOS dylibs come from the package's lib folder. Other
// platforms have no rule and Place does nothing.
package artifact

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"slices"

	"github.com/goplus/vkbuild/internal/logging"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Rule says where a platform's shared libraries live inside a package.
type Rule struct {
	// SubDir is the folder under a package root to look in.
	SubDir string
	// Pattern is a filepath.Match pattern on file names.
	Pattern string
}

var rules = map[string]Rule{
	"windows": {SubDir: "bin", Pattern: "*.dll"},
	"darwin":  {SubDir: "lib", Pattern: "*.dylib*"},
}

// RuleFor returns the rule for a GOOS-style platform name.
func RuleFor(platform string) (Rule, bool) {
	r, ok := rules[platform]
	return r, ok
}

// Placer binds Place to one platform.
type Placer struct {
	Platform string
}

// Place implements the orchestrator's artifact step.
func (p Placer) Place(ctx context.Context, roots []string, dst string) ([]string, error) {
	return Place(ctx, p.Platform, roots, dst)
}

// Place copies the files matching the platform rule from every root into
// dst and returns the destination paths. A missing folder or no match at
// all is logged and is not an error. When two roots ship the same file
// name the first root wins.
func Place(ctx context.Context, platform string, roots []string, dst string) ([]string, error) {
	logger := logging.FromContext(ctx)

	rule, ok := RuleFor(platform)
	if !ok {
		logger.Debug("no artifact rule for platform", "platform", platform)
		return nil, nil
	}

	var (
		srcs  []string
		names = make(map[string]bool)
	)
	for _, root := range roots {
		dir := filepath.Join(root, rule.SubDir)
		matches, err := filepath.Glob(filepath.Join(dir, rule.Pattern))
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "bad artifact pattern"), "pattern", rule.Pattern)
		}
		slices.Sort(matches)
		for _, m := range matches {
			name := filepath.Base(m)
			if names[name] {
				logger.Debug("artifact shadowed by an earlier package", "file", m)
				continue
			}
			if info, err := os.Stat(m); err != nil || info.IsDir() {
				continue
			}
			names[name] = true
			srcs = append(srcs, m)
		}
	}
	if len(srcs) == 0 {
		logger.Info("no runtime artifacts to copy", "platform", platform, "dir", rule.SubDir, "pattern", rule.Pattern)
		return nil, nil
	}

	if err := os.MkdirAll(dst, 0o755); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "create artifact directory"), "dir", dst)
	}

	placed := make([]string, len(srcs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, src := range srcs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			target := filepath.Join(dst, filepath.Base(src))
			if err := copyFile(src, target); err != nil {
				return zerr.With(zerr.Wrap(err, "copy artifact"), "file", src)
			}
			placed[i] = target
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	logger.Info("copied runtime artifacts", "count", len(placed), "dir", dst)
	return placed, nil
}

// copyFile copies a single file from src to dst, preserving permissions.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
