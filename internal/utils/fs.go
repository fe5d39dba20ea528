package utils

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

// ExpandPath expands ~ to the user's home directory
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return home
	}
	return path
}

// PathExists reports whether path exists without following a final symlink
func PathExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// EnsureDir ensures a directory exists, creating it and its parents if
// necessary. An existing non-directory at dir is an error.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}

// IsEmptyDir reports whether dir is missing or has no entries
func IsEmptyDir(dir string) (bool, error) {
	f, err := os.Open(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, err
	}
	defer f.Close()

	_, err = f.Readdirnames(1)
	if errors.Is(err, io.EOF) {
		return true, nil
	}
	return false, err
}

// IsWithin reports whether target is base or lies below it
func IsWithin(base, target string) bool {
	rel, err := filepath.Rel(filepath.Clean(base), filepath.Clean(target))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// MoveEntry moves a file or directory from src to dst.
//
// Renames across filesystems fail with EXDEV; in that case the tree is copied
// to a hidden sibling of dst, renamed into place and the source removed, so dst
// is never left half written.
func MoveEntry(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !isCrossDevice(err) {
		return err
	}

	staging := filepath.Join(filepath.Dir(dst), "."+filepath.Base(dst)+".partial")
	if err := os.RemoveAll(staging); err != nil {
		return err
	}
	if err := CopyTree(src, staging); err != nil {
		_ = os.RemoveAll(staging)
		return fmt.Errorf("copy %s: %w", src, err)
	}
	if err := os.Rename(staging, dst); err != nil {
		_ = os.RemoveAll(staging)
		return err
	}
	return os.RemoveAll(src)
}

// CopyTree copies src (a file or a directory) to dst, preserving modes
func CopyTree(src, dst string) error {
	info, err := os.Lstat(src)
	if err != nil {
		return err
	}

	srcFS := osfs.New(filepath.Dir(src))
	dstFS := osfs.New(filepath.Dir(dst))
	srcName := filepath.Base(src)
	dstName := filepath.Base(dst)

	if !info.IsDir() {
		return copyEntry(srcFS, dstFS, srcName, dstName, info)
	}

	return util.Walk(srcFS, srcName, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(srcName, path)
		if err != nil {
			return err
		}
		return copyEntry(srcFS, dstFS, path, filepath.Join(dstName, rel), fi)
	})
}

func copyEntry(srcFS, dstFS billy.Filesystem, from, to string, fi os.FileInfo) error {
	switch {
	case fi.IsDir():
		return dstFS.MkdirAll(to, fi.Mode().Perm())
	case fi.Mode()&os.ModeSymlink != 0:
		target, err := srcFS.Readlink(from)
		if err != nil {
			return err
		}
		return dstFS.Symlink(target, to)
	default:
		in, err := srcFS.Open(from)
		if err != nil {
			return err
		}
		defer in.Close()

		out, err := dstFS.OpenFile(to, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, fi.Mode().Perm())
		if err != nil {
			return err
		}
		if _, err := io.Copy(out, in); err != nil {
			out.Close()
			return err
		}
		return out.Close()
	}
}

func isCrossDevice(err error) bool {
	var linkErr *os.LinkError
	if errors.As(err, &linkErr) {
		return errors.Is(linkErr.Err, syscall.EXDEV)
	}
	return errors.Is(err, syscall.EXDEV)
}
