// Package paths lists the files and directories the pipelines work on, and
// finds default locations for the asset and output roots.
package paths

import (
	"os"
	"path/filepath"

	"github.com/golang/glog"
)

// RootEnv names an environment variable pointing at a project directory
// that holds the asset and output roots.
const RootEnv = "SPRITEPACK_ROOT"

func possibleDirs(dirName string) []string {
	var dirs []string
	if root := os.Getenv(RootEnv); root != "" {
		dirs = append(dirs, filepath.Join(root, dirName))
	}
	dirs = append(dirs, dirName)
	if exe, err := os.Executable(); err == nil {
		dirs = append(dirs, filepath.Join(filepath.Dir(exe), dirName))
	}
	return dirs
}

// Find locates the passed directory name and returns an absolute or
// relative path to find it at. It looks under $SPRITEPACK_ROOT, the working
// directory and next to the running binary, in that order.
//
// For example, for "assets" it may return "/home/me/pack/assets".
//
// If the directory is not found anywhere, Find returns an empty string.
func Find(dirName string) string {
	for _, path := range possibleDirs(dirName) {
		if fi, err := os.Stat(path); err == nil && fi.IsDir() {
			glog.V(2).Infof("paths.Find(%q)=%s", dirName, path)
			return path
		}
	}
	return ""
}
