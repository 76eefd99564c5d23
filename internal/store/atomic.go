package store

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"usajobs-list/internal/common"
)

// WriteFileAtomic streams fn's output into a temp file beside path and
// renames it over path once fn and the flush succeed. On failure path is
// left as it was.
func WriteFileAtomic(path string, fn func(w io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return common.FSError("create temp for "+path, err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	bw := bufio.NewWriter(tmp)
	if err = fn(bw); err != nil {
		return err
	}
	if err = bw.Flush(); err != nil {
		return common.FSError("write "+path, err)
	}
	if err = tmp.Sync(); err != nil {
		return common.FSError("sync "+path, err)
	}
	if err = tmp.Close(); err != nil {
		return common.FSError("close "+path, err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return common.FSError("chmod "+path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return common.FSError("replace "+path, err)
	}
	return nil
}

// WriteJSON persists doc as JSON indented by four spaces.
func WriteJSON(path string, doc any) error {
	return WriteFileAtomic(path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "    ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(doc); err != nil {
			return common.DecodeError("encode "+path, err)
		}
		return nil
	})
}
