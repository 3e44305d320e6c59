package main

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZipArchive(t *testing.T) {
	b := ZipArchive(map[string]string{
		"report_a.html": "<html>a</html>",
		"report_b.html": "<html>b</html>",
	})
	assert.NotEmpty(t, b)

	r, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	assert.NoError(t, err)
	assert.Len(t, r.File, 2)

	names := map[string]string{}
	for _, f := range r.File {
		rc, err := f.Open()
		assert.NoError(t, err)
		content, err := io.ReadAll(rc)
		assert.NoError(t, err)
		rc.Close()
		names[f.Name] = string(content)
	}
	assert.Equal(t, "<html>a</html>", names["report_a.html"])
	assert.Equal(t, "<html>b</html>", names["report_b.html"])
}

func TestUnpackZipArchive(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "data.zip")
	b := ZipArchive(map[string]string{"data.csv": "a,b\n1,2\n"})
	assert.NoError(t, os.WriteFile(archivePath, b, 0644))

	destPath, err := unpackArchive(archivePath)
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "data.csv"), destPath)

	content, err := os.ReadFile(destPath)
	assert.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", string(content))

	// original archive is removed after extraction
	_, err = os.Stat(archivePath)
	assert.True(t, os.IsNotExist(err))
}

func TestUnpackGzipArchive(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "data.csv.gz")

	buf := &bytes.Buffer{}
	gw := gzip.NewWriter(buf)
	gw.Write([]byte("x,y\n3,4\n"))
	gw.Close()
	assert.NoError(t, os.WriteFile(archivePath, buf.Bytes(), 0644))

	destPath, err := unpackArchive(archivePath)
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "data.csv"), destPath)

	content, err := os.ReadFile(destPath)
	assert.NoError(t, err)
	assert.Equal(t, "x,y\n3,4\n", string(content))
}

func TestUnpackPlainFileIsUntouched(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	assert.NoError(t, os.WriteFile(path, []byte("a,b\n"), 0644))

	destPath, err := unpackArchive(path)
	assert.NoError(t, err)
	assert.Equal(t, "", destPath)
}
