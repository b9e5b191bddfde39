//go:build !unix

package media

// checkWritable is a no-op here; the encoder reports unwritable outputs itself.
func checkWritable(path string) error {
	return nil
}
