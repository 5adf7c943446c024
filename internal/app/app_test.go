package app_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/adapters/config"
	"go.trai.ch/forge/internal/adapters/fs"
	"go.trai.ch/forge/internal/app"
	"go.trai.ch/forge/internal/core/domain"
	"gopkg.in/yaml.v3"
)

// testLogger records messages so tests can assert on them.
type testLogger struct {
	mu    sync.Mutex
	infos []string
}

func (l *testLogger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, msg)
}

func (l *testLogger) Warn(string) {}
func (l *testLogger) Error(error) {}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

// newRepo lays out a repository with two toolchain jobs, one per
// backend, and returns the path of the job definitions file.
func newRepo(t *testing.T) (string, string) {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "ci/scripts/toolchain/build-clang.sh", "#!/bin/bash\necho clang\n")
	writeFile(t, root, "ci/scripts/toolchain/build-rust.sh", "#!/bin/bash\necho rust\n")
	writeFile(t, root, "manifest.json", `{"files": []}`)

	content := fmt.Sprintf(`
params:
  repo-root: %q
  trust-level: 2
  build-date: "20260830120000"
  project: unified
  head-repository: https://hg.example.org/unified
  head-rev: 0123abcd
  upstream-repo: https://hg.example.org/unified
jobs:
  - label: toolchain-linux64-clang
    worker: container-linux
    run:
      script: build-clang.sh
      resources: [manifest.json]
      toolchain-artifact: public/build/clang.tar.xz
      toolchain-alias: clang
  - label: toolchain-win64-rust
    worker: native-windows
    run:
      script: build-rust.sh
      toolchain-artifact: public/build/rust.tar.bz2
`, root)
	writeFile(t, root, "toolchains.yaml", content)
	return root, filepath.Join(root, "toolchains.yaml")
}

func newApp(logger *testLogger) *app.App {
	return app.New(config.NewLoader(), fs.NewHasher(fs.NewWalker()), logger)
}

func TestApp_Run(t *testing.T) {
	_, cfgPath := newRepo(t)
	logger := &testLogger{}

	var out bytes.Buffer
	require.NoError(t, newApp(logger).Run(context.Background(), cfgPath, &out, app.RunOptions{}))

	var descriptors []domain.TaskDescriptor
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &descriptors))
	require.Len(t, descriptors, 2)

	// Input order is preserved.
	clang, rust := descriptors[0], descriptors[1]
	assert.Equal(t, "toolchain-linux64-clang", clang.Label)
	assert.Equal(t, "toolchain-win64-rust", rust.Label)

	assert.Len(t, clang.Optimization.IndexSearch, 2)
	require.Len(t, clang.Routes, 1)
	assert.Contains(t, clang.Routes[0], "cache.level-2.toolchains.v1.linux64-clang.")
	assert.Equal(t, "clang", clang.Attributes["toolchain-alias"])

	require.Len(t, rust.Worker.Command, 2)
	assert.Contains(t, rust.Worker.Command[0], "robustcheckout")

	assert.Len(t, logger.infos, 2)
}

func TestApp_RunTrustLevelOverride(t *testing.T) {
	_, cfgPath := newRepo(t)

	var out bytes.Buffer
	require.NoError(t, newApp(&testLogger{}).Run(context.Background(), cfgPath, &out, app.RunOptions{TrustLevel: 3}))

	var descriptors []domain.TaskDescriptor
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &descriptors))
	require.Len(t, descriptors, 2)

	// At the highest level there is a single lookup route.
	assert.Len(t, descriptors[0].Optimization.IndexSearch, 1)
	assert.Contains(t, descriptors[0].Routes[0], "cache.level-3.")
}

func TestApp_RunMissingResource(t *testing.T) {
	root, cfgPath := newRepo(t)
	require.NoError(t, os.Remove(filepath.Join(root, "manifest.json")))

	var out bytes.Buffer
	err := newApp(&testLogger{}).Run(context.Background(), cfgPath, &out, app.RunOptions{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrResourceNotFound))
	assert.Zero(t, out.Len(), "no partial output on failure")
}

func TestApp_RunUnknownKind(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "toolchains.yaml", fmt.Sprintf(`
params:
  repo-root: %q
  trust-level: 1
jobs:
  - label: fetch-src
    kind: fetch
    worker: container-linux
    run:
      script: fetch.sh
      toolchain-artifact: src.tar.xz
`, root))

	var out bytes.Buffer
	err := newApp(&testLogger{}).Run(context.Background(), filepath.Join(root, "toolchains.yaml"), &out, app.RunOptions{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNoHandler))
}

func TestApp_RunLoadFailure(t *testing.T) {
	var out bytes.Buffer
	err := newApp(&testLogger{}).Run(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"), &out, app.RunOptions{})
	require.Error(t, err)
}
