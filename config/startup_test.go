package config_test

import (
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"

	"securexfer/config"
)

func TestReadStartupOK(t *testing.T) {
	c := qt.New(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "transfer.info")
	err := os.WriteFile(path, []byte("127.0.0.1:1256\nalice\n/tmp/upload.bin\n"), 0o600)
	c.Assert(err, qt.IsNil)

	got, err := config.ReadStartup(path)
	c.Assert(err, qt.IsNil)
	c.Assert(got.ServerAddr, qt.Equals, "127.0.0.1:1256")
	c.Assert(got.UserName, qt.Equals, "alice")
	c.Assert(got.FilePath, qt.Equals, "/tmp/upload.bin")
}

func TestReadStartupTooFewLines(t *testing.T) {
	c := qt.New(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "transfer.info")
	err := os.WriteFile(path, []byte("127.0.0.1:1256\nalice\n"), 0o600)
	c.Assert(err, qt.IsNil)

	_, err = config.ReadStartup(path)
	c.Assert(err, qt.ErrorIs, config.ErrStartupMalformed)
}

func TestReadStartupMissingFile(t *testing.T) {
	c := qt.New(t)
	_, err := config.ReadStartup(filepath.Join(t.TempDir(), "missing.info"))
	c.Assert(err, qt.ErrorIs, config.ErrStartupMalformed)
}
