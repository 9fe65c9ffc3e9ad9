package langserver

import (
	"sync"

	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
)

// diagnosticsStore accumulates published diagnostics per document and lets
// callers wait for the first publish after each open. A latch is armed when a
// document is opened and released by the next publish; re-opening the same
// document arms a fresh latch so a stale publish never satisfies a new wait.
type diagnosticsStore struct {
	mu      sync.Mutex
	byURI   map[uri.URI][]protocol.Diagnostic
	latches map[uri.URI]chan struct{}
}

func newDiagnosticsStore() *diagnosticsStore {
	return &diagnosticsStore{
		byURI:   make(map[uri.URI][]protocol.Diagnostic),
		latches: make(map[uri.URI]chan struct{}),
	}
}

// apply records the latest published diagnostics for a document and releases
// any waiter. A later publish for the same document replaces the records.
func (s *diagnosticsStore) apply(docURI uri.URI, diagnostics []protocol.Diagnostic) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byURI[docURI] = diagnostics
	if latch, ok := s.latches[docURI]; ok {
		close(latch)
		delete(s.latches, docURI)
	}
}

// arm marks the document as awaiting a fresh publish. Records from earlier
// publishes stay readable through get, but settled blocks until the server
// publishes again. Arming an already armed document keeps the pending latch.
func (s *diagnosticsStore) arm(docURI uri.URI) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.latches[docURI]; !ok {
		s.latches[docURI] = make(chan struct{})
	}
}

// settled returns a channel that is closed once the server has published for
// the document since it was last armed. A document with no pending latch is
// already settled.
func (s *diagnosticsStore) settled(docURI uri.URI) <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	if latch, ok := s.latches[docURI]; ok {
		return latch
	}
	closed := make(chan struct{})
	close(closed)
	return closed
}

// get returns a copy of the accumulated records for the document.
func (s *diagnosticsStore) get(docURI uri.URI) []protocol.Diagnostic {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.byURI[docURI]
	if !ok {
		return []protocol.Diagnostic{}
	}
	out := make([]protocol.Diagnostic, len(stored))
	copy(out, stored)
	return out
}
