//go:build unix

package media

import (
	"path/filepath"

	"golang.org/x/sys/unix"
)

// checkWritable fails when the directory that will hold path is not writable.
func checkWritable(path string) error {
	return unix.Access(filepath.Dir(path), unix.W_OK)
}
