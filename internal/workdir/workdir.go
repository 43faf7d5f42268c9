// Package workdir locates the dash workspace: the directory holding the .dash
// state directory, optionally redirected through a .dash-root file.
package workdir

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	stateDir = ".dash"
	rootFile = ".dash-root"
)

// ResolveBaseDir walks up from dir to the nearest directory that has a
// .dash-root redirect or a .dash state directory. A redirect wins over a
// state directory in the same place; relative redirect targets are resolved
// against the directory holding the file. Without either marker anywhere
// above, dir is returned unchanged so the workspace is created there.
func ResolveBaseDir(dir string) string {
	start, err := filepath.Abs(dir)
	if err != nil {
		return dir
	}

	for cur := start; ; {
		if target, ok := readRedirect(cur); ok {
			return target
		}
		if info, err := os.Stat(filepath.Join(cur, stateDir)); err == nil && info.IsDir() {
			return cur
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return start
		}
		cur = parent
	}
}

func readRedirect(dir string) (string, bool) {
	content, err := os.ReadFile(filepath.Join(dir, rootFile))
	if err != nil {
		return "", false
	}
	target := strings.TrimSpace(string(content))
	if target == "" {
		return "", false
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(dir, target)
	}
	return filepath.Clean(target), true
}
