package langserver

import (
	"context"
	stderrors "errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/polyls/polyls/src/polyls/internal/executor"
	"github.com/polyls/polyls/src/polyls/internal/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestFactory(t *testing.T) Factory {
	t.Helper()
	return NewFactory(Params{
		Logger:   zap.NewNop().Sugar(),
		Executor: executor.NewExecutor(),
		FS:       fs.New(),
	})
}

func TestFactoryNew(t *testing.T) {
	t.Run("empty command", func(t *testing.T) {
		_, err := newTestFactory(t).New(Config{LanguageID: "python"})
		assert.Error(t, err)
	})

	t.Run("missing binary", func(t *testing.T) {
		_, err := newTestFactory(t).New(Config{
			LanguageID: "python",
			Command:    []string{"definitely-not-on-path-7f3a"},
		})
		assert.Error(t, err)
	})

	t.Run("resolved binary", func(t *testing.T) {
		binDir := t.TempDir()
		binPath := filepath.Join(binDir, "fake-server")
		require.NoError(t, os.WriteFile(binPath, []byte("#!/bin/sh\n"), 0o755))
		t.Setenv("PATH", binDir)

		c, err := newTestFactory(t).New(Config{
			LanguageID: "python",
			Command:    []string{"fake-server", "--stdio"},
			RootPath:   t.TempDir(),
		})
		require.NoError(t, err)
		require.NotNil(t, c)

		impl, ok := c.(*client)
		require.True(t, ok)
		assert.Equal(t, binPath, impl.binPath)
	})

	t.Run("probe tolerates a rejected flag", func(t *testing.T) {
		binDir := t.TempDir()
		binPath := filepath.Join(binDir, "fake-server")
		require.NoError(t, os.WriteFile(binPath, []byte("#!/bin/sh\nexit 2\n"), 0o755))
		t.Setenv("PATH", binDir)

		_, err := newTestFactory(t).New(Config{
			LanguageID: "python",
			Command:    []string{"fake-server"},
		})
		assert.NoError(t, err)
	})

	t.Run("probe launch failure is fatal", func(t *testing.T) {
		binDir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(binDir, "fake-server"), []byte("#!/bin/sh\n"), 0o755))
		t.Setenv("PATH", binDir)

		f := NewFactory(Params{
			Logger: zap.NewNop().Sugar(),
			Executor: executor.NewExecutor(executor.WithExecFunc(func(cmd *exec.Cmd) error {
				return stderrors.New("cannot allocate memory")
			})),
			FS: fs.New(),
		})

		_, err := f.New(Config{
			LanguageID: "python",
			Command:    []string{"fake-server"},
		})
		assert.Error(t, err)
	})
}

func TestClientDefaults(t *testing.T) {
	c := newClient(Config{LanguageID: "java"}, "/usr/bin/jdtls", zap.NewNop().Sugar(), fs.New())
	assert.Equal(t, _defaultShutdownGrace, c.cfg.ShutdownGracePeriod)

	c = newClient(Config{LanguageID: "java", ShutdownGracePeriod: time.Second}, "/usr/bin/jdtls", zap.NewNop().Sugar(), fs.New())
	assert.Equal(t, time.Second, c.cfg.ShutdownGracePeriod)
}

func TestStopWithoutStart(t *testing.T) {
	c := newClient(Config{LanguageID: "python"}, "/usr/bin/pyls", zap.NewNop().Sugar(), fs.New())
	assert.NoError(t, c.Stop(context.Background()))
}
