package archive

import (
	"archive/tar"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

func TestCreateRoundTrip(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(src, "html"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "html", "index.html"), []byte("<html/>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "objects.inv"), []byte("inv"), 0o644))

	dest := filepath.Join(t.TempDir(), "docs-1.4.2.tar.xz")
	require.NoError(t, Create(src, dest))

	f, err := os.Open(dest)
	require.NoError(t, err)
	defer f.Close()

	xr, err := xz.NewReader(f)
	require.NoError(t, err)
	tr := tar.NewReader(xr)

	found := make(map[string]string)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		if hdr.Typeflag == tar.TypeReg {
			data, err := io.ReadAll(tr)
			require.NoError(t, err)
			found[hdr.Name] = string(data)
		}
	}

	require.Equal(t, "<html/>", found["html/index.html"])
	require.Equal(t, "inv", found["objects.inv"])
}

func TestCreateMissingSource(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out.tar.xz")
	require.Error(t, Create(filepath.Join(t.TempDir(), "nope"), dest))

	// No truncated tarball may survive a failed run.
	_, err := os.Stat(dest)
	require.True(t, os.IsNotExist(err))
}
