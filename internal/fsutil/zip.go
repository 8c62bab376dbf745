package fsutil

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
)

// ZipDir writes every file under src into a new zip archive at dst, with
// paths relative to src.
func ZipDir(src, dst string) (err error) {
	if err := EnsureDir(filepath.Dir(dst)); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create archive %s: %w", dst, err)
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close archive %s: %w", dst, cerr)
		}
	}()

	zw := zip.NewWriter(out)
	walkErr := filepath.WalkDir(src, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(src, p)
		if err != nil {
			return err
		}
		return addFile(zw, p, filepath.ToSlash(rel))
	})
	if walkErr != nil {
		_ = zw.Close()
		return fmt.Errorf("archive %s: %w", src, walkErr)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finish archive %s: %w", dst, err)
	}
	return nil
}

func addFile(zw *zip.Writer, src, name string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = name
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return err
	}
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(w, f)
	return err
}

// Unzip extracts the archive at src into dst. Entries that would land
// outside dst are rejected.
func Unzip(src, dst string) error {
	zr, err := zip.OpenReader(src)
	if err != nil {
		return fmt.Errorf("open archive %s: %w", src, err)
	}
	defer zr.Close()

	root, err := filepath.Abs(dst)
	if err != nil {
		return err
	}
	for _, f := range zr.File {
		target := filepath.Join(root, filepath.FromSlash(f.Name))
		if target != root && !strings.HasPrefix(target, root+string(os.PathSeparator)) {
			return fmt.Errorf("archive %s: entry %q escapes destination", src, f.Name)
		}
		if f.FileInfo().IsDir() {
			if err := EnsureDir(target); err != nil {
				return err
			}
			continue
		}
		if err := extract(f, target); err != nil {
			return fmt.Errorf("extract %s from %s: %w", f.Name, src, err)
		}
	}
	return nil
}

func extract(f *zip.File, target string) error {
	if err := EnsureDir(filepath.Dir(target)); err != nil {
		return err
	}
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
