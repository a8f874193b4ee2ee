package libres

import (
	"io"
	"os"
	"path/filepath"
)

// CopyIfAbsent copies src into destDir, keeping the source filename, but
// only when the destination does not already exist. Repeated calls are
// no-ops, which keeps re-invoked builds safe without locking. Returns the
// destination path.
func CopyIfAbsent(src, destDir string) (string, error) {
	dest := filepath.Join(destDir, filepath.Base(src))

	info, err := os.Stat(src)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", err
	}

	// O_EXCL makes existence check and creation one step, so a concurrent
	// re-invocation cannot write the file twice.
	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		if os.IsExist(err) {
			return dest, nil
		}
		return "", err
	}
	defer out.Close()

	in, err := os.Open(src)
	if err != nil {
		os.Remove(dest)
		return "", err
	}
	defer in.Close()

	if _, err := io.Copy(out, in); err != nil {
		os.Remove(dest)
		return "", err
	}
	return dest, out.Close()
}
