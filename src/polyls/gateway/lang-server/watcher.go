package langserver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"go.uber.org/zap"
)

// workspaceWatcher forwards filesystem events under the project root to the
// server as workspace/didChangeWatchedFiles, so diagnostics stay current when
// files change outside didOpen/didClose traffic.
type workspaceWatcher struct {
	watcher *fsnotify.Watcher
	conn    jsonrpc2.Conn
	logger  *zap.SugaredLogger
	done    chan struct{}
}

func newWorkspaceWatcher(root string, conn jsonrpc2.Conn, logger *zap.SugaredLogger) (*workspaceWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &workspaceWatcher{
		watcher: fsw,
		conn:    conn,
		logger:  logger,
		done:    make(chan struct{}),
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if name := d.Name(); path != root && strings.HasPrefix(name, ".") {
			return filepath.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			logger.Debugw("failed to watch directory", "path", path, zap.Error(err))
		}
		return nil
	})
	if err != nil {
		fsw.Close()
		return nil, err
	}

	go w.run()
	return w, nil
}

func (w *workspaceWatcher) run() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Debugw("watcher error", zap.Error(err))
		case <-w.done:
			return
		}
	}
}

func (w *workspaceWatcher) handle(event fsnotify.Event) {
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return
	}

	change := &protocol.FileEvent{URI: uri.File(event.Name)}
	switch {
	case event.Op.Has(fsnotify.Create):
		// New directories need their own watch for events beneath them.
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.watcher.Add(event.Name); err != nil {
				w.logger.Debugw("failed to watch new directory", "path", event.Name, zap.Error(err))
			}
			return
		}
		change.Type = 1
	case event.Op.Has(fsnotify.Write):
		change.Type = 2
	case event.Op.Has(fsnotify.Remove), event.Op.Has(fsnotify.Rename):
		change.Type = 3
	default:
		return
	}

	params := &protocol.DidChangeWatchedFilesParams{
		Changes: []*protocol.FileEvent{change},
	}
	if err := w.conn.Notify(context.Background(), protocol.MethodWorkspaceDidChangeWatchedFiles, params); err != nil {
		w.logger.Debugw("failed to forward file event", "path", event.Name, zap.Error(err))
	}
}

func (w *workspaceWatcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}
