package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/polyls/polyls/src/polyls/controller/sessions/sessionsmock"
	"github.com/polyls/polyls/src/polyls/entity"
	"github.com/polyls/polyls/src/polyls/factory"
	"github.com/polyls/polyls/src/polyls/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tally "github.com/uber-go/tally"
	"go.lsp.dev/protocol"
	"go.uber.org/config"
	"go.uber.org/fx/fxtest"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestHandler(t *testing.T) (Handler, *sessionsmock.MockController) {
	t.Helper()

	ctrl := sessionsmock.NewMockController(gomock.NewController(t))
	cfg, err := config.NewYAML(config.Source(strings.NewReader("http:\n  address: 127.0.0.1:0")))
	require.NoError(t, err)

	h, err := New(Params{
		Lifecycle: fxtest.NewLifecycle(t),
		Sessions:  ctrl,
		Logger:    zap.NewNop().Sugar(),
		Config:    cfg,
		Stats:     tally.NoopScope,
	})
	require.NoError(t, err)
	return h, ctrl
}

func serve(t *testing.T, h Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func newSession(id uuid.UUID) *entity.Session {
	return entity.NewSession(id, "python", "/projects/sample", 2*time.Second, nil, time.Now())
}

func TestRoot(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := serve(t, h, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode(t, rec)["status"])
}

func TestCreateSession(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		h, ctrl := newTestHandler(t)
		id := factory.UUID()
		ctrl.EXPECT().CreateSession(gomock.Any(), "python", "/projects/sample").Return(newSession(id), nil)

		rec := serve(t, h, http.MethodPost, "/api/sessions", `{"language":"python","project_path":"/projects/sample"}`)
		require.Equal(t, http.StatusCreated, rec.Code)

		body := decode(t, rec)
		assert.Equal(t, id.String(), body["session_id"])
		assert.Equal(t, "ready", body["status"])
		assert.Equal(t, "python", body["language"])
		assert.Equal(t, "/projects/sample", body["project_path"])
	})

	t.Run("malformed body", func(t *testing.T) {
		h, _ := newTestHandler(t)

		rec := serve(t, h, http.MethodPost, "/api/sessions", "{not json")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unsupported language", func(t *testing.T) {
		h, ctrl := newTestHandler(t)
		ctrl.EXPECT().CreateSession(gomock.Any(), "cobol", "/projects/sample").Return(nil, &errors.InvalidLanguageError{Language: "cobol"})

		rec := serve(t, h, http.MethodPost, "/api/sessions", `{"language":"cobol","project_path":"/projects/sample"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid project path", func(t *testing.T) {
		h, ctrl := newTestHandler(t)
		ctrl.EXPECT().CreateSession(gomock.Any(), "python", "relative/path").Return(nil, &errors.InvalidPathError{Path: "relative/path", Reason: "must be an absolute path"})

		rec := serve(t, h, http.MethodPost, "/api/sessions", `{"language":"python","project_path":"relative/path"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("launch failure", func(t *testing.T) {
		h, ctrl := newTestHandler(t)
		ctrl.EXPECT().CreateSession(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("spawn failed"))

		rec := serve(t, h, http.MethodPost, "/api/sessions", `{"language":"python","project_path":"/projects/sample"}`)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestListSessions(t *testing.T) {
	h, ctrl := newTestHandler(t)
	id1, id2 := factory.UUID(), factory.UUID()
	ctrl.EXPECT().ListSessions(gomock.Any()).Return([]*entity.Session{
		newSession(id1),
		newSession(id2),
	})

	rec := serve(t, h, http.MethodGet, "/api/sessions", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var ids []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ids))
	assert.Len(t, ids, 2)
	assert.Contains(t, ids, id1.String())
	assert.Contains(t, ids, id2.String())
}

func TestGetSession(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		h, ctrl := newTestHandler(t)
		id := factory.UUID()
		ctrl.EXPECT().GetSession(gomock.Any()).DoAndReturn(func(ctx context.Context) (*entity.Session, error) {
			got, ok := ctx.Value(entity.SessionContextKey).(uuid.UUID)
			assert.True(t, ok)
			assert.Equal(t, id, got)
			return newSession(id), nil
		})

		rec := serve(t, h, http.MethodGet, "/api/sessions/"+id.String()+"/", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, id.String(), decode(t, rec)["session_id"])
	})

	t.Run("unknown session", func(t *testing.T) {
		h, ctrl := newTestHandler(t)
		id := factory.UUID()
		ctrl.EXPECT().GetSession(gomock.Any()).Return(nil, &errors.SessionNotFoundError{UUID: id})

		rec := serve(t, h, http.MethodGet, "/api/sessions/"+id.String()+"/", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed session id", func(t *testing.T) {
		h, _ := newTestHandler(t)

		rec := serve(t, h, http.MethodGet, "/api/sessions/not-a-uuid/", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestDeleteSession(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		h, ctrl := newTestHandler(t)
		id := factory.UUID()
		ctrl.EXPECT().DeleteSession(gomock.Any(), id).Return(nil)

		rec := serve(t, h, http.MethodDelete, "/api/sessions/"+id.String()+"/", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "shutdown", decode(t, rec)["status"])
	})

	t.Run("unknown session", func(t *testing.T) {
		h, ctrl := newTestHandler(t)
		id := factory.UUID()
		ctrl.EXPECT().DeleteSession(gomock.Any(), id).Return(&errors.SessionNotFoundError{UUID: id})

		rec := serve(t, h, http.MethodDelete, "/api/sessions/"+id.String()+"/", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("stop failure still shuts down and notes the kill", func(t *testing.T) {
		h, ctrl := newTestHandler(t)
		id := factory.UUID()
		ctrl.EXPECT().DeleteSession(gomock.Any(), id).Return(errors.New("unresponsive"))

		rec := serve(t, h, http.MethodDelete, "/api/sessions/"+id.String()+"/", "")
		require.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, "shutdown", body["status"])
		assert.Contains(t, body["message"], "killed")
	})
}

func TestDiagnostics(t *testing.T) {
	id := factory.UUID()
	target := func(filePath string) string {
		return fmt.Sprintf("/api/sessions/%s/diagnostics?file_path=%s", id, filePath)
	}

	t.Run("success", func(t *testing.T) {
		h, ctrl := newTestHandler(t)
		ctrl.EXPECT().Diagnostics(gomock.Any(), "pkg/sample.py").Return(entity.DiagnosticsReport{
			Diagnostics: []protocol.Diagnostic{
				{Message: "undefined name", Severity: protocol.DiagnosticSeverityError},
			},
			Complete: true,
		}, nil)

		rec := serve(t, h, http.MethodGet, target("pkg/sample.py"), "")
		require.Equal(t, http.StatusOK, rec.Code)

		body := decode(t, rec)
		assert.Equal(t, "pkg/sample.py", body["file_path"])
		assert.Equal(t, float64(1), body["count"])
		assert.Equal(t, true, body["complete"])
	})

	t.Run("partial on settle timeout", func(t *testing.T) {
		h, ctrl := newTestHandler(t)
		ctrl.EXPECT().Diagnostics(gomock.Any(), "pkg/sample.py").Return(entity.DiagnosticsReport{
			Diagnostics: []protocol.Diagnostic{},
			Complete:    false,
		}, nil)

		rec := serve(t, h, http.MethodGet, target("pkg/sample.py"), "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, false, decode(t, rec)["complete"])
	})

	t.Run("missing file", func(t *testing.T) {
		h, ctrl := newTestHandler(t)
		ctrl.EXPECT().Diagnostics(gomock.Any(), "pkg/missing.py").Return(entity.DiagnosticsReport{}, &errors.FileNotFoundError{Path: "pkg/missing.py"})

		rec := serve(t, h, http.MethodGet, target("pkg/missing.py"), "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("session not running", func(t *testing.T) {
		h, ctrl := newTestHandler(t)
		ctrl.EXPECT().Diagnostics(gomock.Any(), gomock.Any()).Return(entity.DiagnosticsReport{}, &errors.SessionNotRunningError{UUID: id, State: "stopped"})

		rec := serve(t, h, http.MethodGet, target("pkg/sample.py"), "")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestNavigationEndpoints(t *testing.T) {
	id := factory.UUID()
	pos := protocol.Position{Line: 3, Character: 7}
	target := func(endpoint string) string {
		return fmt.Sprintf("/api/sessions/%s/%s?file_path=pkg/sample.py&line=3&character=7", id, endpoint)
	}

	t.Run("definition", func(t *testing.T) {
		h, ctrl := newTestHandler(t)
		ctrl.EXPECT().Definition(gomock.Any(), "pkg/sample.py", pos).Return([]protocol.Location{
			{URI: "file:///projects/sample/pkg/other.py"},
		}, nil)

		rec := serve(t, h, http.MethodGet, target("definition"), "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, float64(1), decode(t, rec)["count"])
	})

	t.Run("references", func(t *testing.T) {
		h, ctrl := newTestHandler(t)
		ctrl.EXPECT().References(gomock.Any(), "pkg/sample.py", pos).Return([]protocol.Location{}, nil)

		rec := serve(t, h, http.MethodGet, target("references"), "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, float64(0), decode(t, rec)["count"])
	})

	t.Run("hover", func(t *testing.T) {
		h, ctrl := newTestHandler(t)
		ctrl.EXPECT().Hover(gomock.Any(), "pkg/sample.py", pos).Return(&protocol.Hover{
			Contents: protocol.MarkupContent{Kind: protocol.Markdown, Value: "def greet()"},
		}, nil)

		rec := serve(t, h, http.MethodGet, target("hover"), "")
		require.Equal(t, http.StatusOK, rec.Code)

		hover, ok := decode(t, rec)["hover"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "def greet()", hover["value"])
	})

	t.Run("hover without content", func(t *testing.T) {
		h, ctrl := newTestHandler(t)
		ctrl.EXPECT().Hover(gomock.Any(), "pkg/sample.py", pos).Return(nil, nil)

		rec := serve(t, h, http.MethodGet, target("hover"), "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, decode(t, rec)["hover"])
	})

	t.Run("missing line parameter", func(t *testing.T) {
		h, _ := newTestHandler(t)

		rec := serve(t, h, http.MethodGet, fmt.Sprintf("/api/sessions/%s/definition?file_path=pkg/sample.py", id), "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestSymbols(t *testing.T) {
	h, ctrl := newTestHandler(t)
	id := factory.UUID()
	ctrl.EXPECT().DocumentSymbols(gomock.Any(), "pkg/sample.py").Return([]protocol.DocumentSymbol{
		{Name: "Greeter", Kind: protocol.SymbolKindClass},
	}, nil)

	rec := serve(t, h, http.MethodGet, fmt.Sprintf("/api/sessions/%s/symbols?file_path=pkg/sample.py", id), "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, float64(1), body["count"])
}

func TestServerLifecycle(t *testing.T) {
	ctrl := sessionsmock.NewMockController(gomock.NewController(t))
	cfg, err := config.NewYAML(config.Source(strings.NewReader("http:\n  address: 127.0.0.1:0")))
	require.NoError(t, err)

	lifecycle := fxtest.NewLifecycle(t)
	_, err = New(Params{
		Lifecycle: lifecycle,
		Sessions:  ctrl,
		Logger:    zap.NewNop().Sugar(),
		Config:    cfg,
		Stats:     tally.NoopScope,
	})
	require.NoError(t, err)

	lifecycle.RequireStart().RequireStop()
}
