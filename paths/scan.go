package paths

import (
	"math"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"badc0de.net/pkg/spritepack"
)

// ImageExtensions lists the extensions ImageFiles accepts, lower-case.
var ImageExtensions = []string{".jpg", ".jpeg", ".png", ".webp", ".bmp", ".tif", ".tiff"}

var digits = regexp.MustCompile(`\d+`)

func readDir(dir string) ([]os.DirEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &spritepack.NotFoundError{Path: dir}
		}
		return nil, errors.Wrapf(err, "listing %s", dir)
	}
	return entries, nil
}

// Files returns the regular files directly inside dir, joined with dir and
// ordered by name.
func Files(dir string) ([]string, error) {
	entries, err := readDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		// Follow symlinks the way a stat would.
		fi, err := os.Stat(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, errors.Wrapf(err, "stat %s", e.Name())
		}
		if fi.Mode().IsRegular() {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	return files, nil
}

// Subdirectories returns the names of the immediate subdirectories of dir,
// ordered by name.
func Subdirectories(dir string) ([]string, error) {
	entries, err := readDir(dir)
	if err != nil {
		return nil, err
	}
	var dirs []string
	for _, e := range entries {
		fi, err := os.Stat(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, errors.Wrapf(err, "stat %s", e.Name())
		}
		if fi.IsDir() {
			dirs = append(dirs, e.Name())
		}
	}
	return dirs, nil
}

// IsImage reports whether name carries one of the ImageExtensions.
func IsImage(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range ImageExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// ImageFiles returns the regular image files in dir, sorted with SortNumerically
// and joined with dir.
func ImageFiles(dir string) ([]string, error) {
	entries, err := readDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !IsImage(e.Name()) {
			continue
		}
		fi, err := os.Stat(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, errors.Wrapf(err, "stat %s", e.Name())
		}
		if fi.Mode().IsRegular() {
			names = append(names, e.Name())
		}
	}
	SortNumerically(names)
	for i, n := range names {
		names[i] = filepath.Join(dir, n)
	}
	return names, nil
}

// FrameIndex returns the first run of decimal digits in the base name of
// name, or 0 if there is none.
func FrameIndex(name string) int {
	m := digits.FindString(filepath.Base(name))
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		// Out of range for int; such frames sort last.
		return math.MaxInt
	}
	return n
}

// SortNumerically orders names by FrameIndex, so that frame2 comes before
// frame10. Names with equal indices keep their relative order.
func SortNumerically(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		return FrameIndex(names[i]) < FrameIndex(names[j])
	})
}
