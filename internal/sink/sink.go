package sink

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
)

// Write delivers the artifact text to its destination. An empty path means
// stdout. File writes are atomic: the text lands in a temp file first and is
// renamed into place, so a failed write never leaves a truncated artifact at
// the destination.
func Write(text, path string) error {
	if path == "" {
		_, err := io.WriteString(os.Stdout, text)
		return err
	}
	return writeFile(text, path)
}

func writeFile(text, path string) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("create temp file in %s: %w", dir, err)
	}

	defer func() {
		if err != nil {
			err = multierr.Append(err, os.Remove(tmp.Name()))
		}
	}()

	if _, err = io.WriteString(tmp, text); err != nil {
		err = multierr.Append(err, tmp.Close())
		return err
	}
	if err = tmp.Sync(); err != nil {
		err = multierr.Append(err, tmp.Close())
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
