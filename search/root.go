package search

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ResolveRoot picks the project root that rg runs in and result paths are
// resolved against: the explicit value when set, otherwise the git
// repository containing the working directory, otherwise ".".
func ResolveRoot(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if root, ok := GetCurrentGitRoot(); ok {
		return root
	}
	return "."
}

// FindGitRoot finds the git repository root directory starting from the given path
func FindGitRoot(startPath string) (string, bool) {
	path, err := filepath.Abs(startPath)
	if err != nil {
		return "", false
	}
	for {
		// .git is a directory in a normal checkout and a file in worktrees
		// and submodules
		if _, err := os.Stat(filepath.Join(path, ".git")); err == nil {
			return path, true
		}

		parent := filepath.Dir(path)
		if parent == path {
			break
		}
		path = parent
	}

	return "", false
}

// GetCurrentGitRoot finds the git repository root from the current working directory
func GetCurrentGitRoot() (string, bool) {
	wd, err := os.Getwd()
	if err != nil {
		return "", false
	}
	if root, ok := FindGitRoot(wd); ok {
		return root, true
	}
	return GetGitRootFromCommand(wd)
}

// GetGitRootFromCommand asks git itself, which also honours GIT_DIR and
// GIT_WORK_TREE
func GetGitRootFromCommand(dir string) (string, bool) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return "", false
	}
	root := strings.TrimSpace(string(output))
	if root == "" {
		return "", false
	}
	return root, true
}

// ResolvePath returns the file a result points at: absolute paths as-is,
// relative paths joined onto root
func ResolvePath(root, file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(root, file)
}
