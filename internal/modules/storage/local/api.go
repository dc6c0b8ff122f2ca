package local

import (
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// SaveFile writes f to path through a temporary sibling file, so path is
// either untouched or complete.
func SaveFile(f io.Reader, path string) error {
	dir := filepath.Dir(path)
	err := os.MkdirAll(dir, 0770)
	if err != nil {
		return err
	}

	tmp := filepath.Join(dir, "."+filepath.Base(path)+"."+uuid.NewString()+".part")
	file, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	_, err = io.Copy(file, f)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
