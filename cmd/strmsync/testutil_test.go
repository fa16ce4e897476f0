package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// executeCommand runs the root command with args and returns its combined
// output. Global flag state is reset afterwards.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(resetCommands)

	err := rootCmd.Execute()
	return buf.String(), err
}

func resetCommands() {
	rootCmd.SetOut(nil)
	rootCmd.SetErr(nil)
	rootCmd.SetArgs(nil)

	configPath, logLevel = "", ""
	pruneOnly, skipMigration = false, false
	parseJSON = false

	for _, cmd := range []interface{ Flags() *pflag.FlagSet }{parseCmd, configInitCmd, mappingsListCmd} {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
}

// env is a complete on-disk installation backed by fake services.
type env struct {
	dir        string
	local      string
	library    string
	configPath string
	shares     atomic.Int32
}

func newEnv(t *testing.T) *env {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake rclone needs a POSIX shell")
	}

	e := &env{dir: t.TempDir()}
	e.local = filepath.Join(e.dir, "downloads")
	e.library = filepath.Join(e.dir, "library")
	require.NoError(t, os.MkdirAll(e.local, 0755))

	rclone := filepath.Join(e.dir, "rclone")
	require.NoError(t, os.WriteFile(rclone, []byte("#!/bin/sh\nexit 0\n"), 0755))

	seafile := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Token test-token" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		n := e.shares.Add(1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"token":"t%d","link":"https://seafile.test/d/t%d/","repo_id":"repo"}`, n, n)
	}))
	t.Cleanup(seafile.Close)

	anilist := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"Media":null}}`))
	}))
	t.Cleanup(anilist.Close)

	e.configPath = filepath.Join(e.dir, "config.toml")
	cfg := fmt.Sprintf(`
[log]
file = ""

[database]
path = %q

[local]
root_path = %q
library_path = %q

[rclone]
binary = %q
remote_name = "seafile"
remote_root = "/Media"

[seafile]
host = %q
api_token = "test-token"
repo_id = "repo"

[anilist]
url = %q
min_interval = "1ms"

[thumbnail]
enabled = false
`, filepath.Join(e.dir, "data", "strmsync.db"), e.local, e.library, rclone, seafile.URL, anilist.URL)
	require.NoError(t, os.WriteFile(e.configPath, []byte(cfg), 0644))
	return e
}

func (e *env) writeSource(t *testing.T, rel string) string {
	t.Helper()
	path := filepath.Join(e.local, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("video"), 0644))
	return path
}
