package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/polyls/polyls/src/polyls/internal/errors"
	"github.com/polyls/polyls/src/polyls/mapper"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"
)

type createSessionRequest struct {
	Language    string `json:"language"`
	ProjectPath string `json:"project_path"`
}

type createSessionResponse struct {
	SessionID   string `json:"session_id"`
	Status      string `json:"status"`
	Language    string `json:"language"`
	ProjectPath string `json:"project_path"`
}

type diagnosticsResponse struct {
	FilePath    string              `json:"file_path"`
	Diagnostics []mapper.Diagnostic `json:"diagnostics"`
	Count       int                 `json:"count"`
	Complete    bool                `json:"complete"`
}

type locationsResponse struct {
	FilePath  string            `json:"file_path"`
	Locations []mapper.Location `json:"locations"`
	Count     int               `json:"count"`
}

type hoverResponse struct {
	FilePath string        `json:"file_path"`
	Hover    *mapper.Hover `json:"hover"`
}

type symbolsResponse struct {
	FilePath string          `json:"file_path"`
	Symbols  []mapper.Symbol `json:"symbols"`
	Count    int             `json:"count"`
}

func (h *handler) root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service": "polyls",
		"status":  "ok",
	})
}

func (h *handler) createSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s, err := h.sessions.CreateSession(r.Context(), req.Language, req.ProjectPath)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, createSessionResponse{
		SessionID:   s.UUID.String(),
		Status:      "ready",
		Language:    s.Language,
		ProjectPath: s.ProjectPath,
	})
}

// listSessions answers with a bare array of session ids. Per-session detail
// lives on GET /api/sessions/{sessionID}.
func (h *handler) listSessions(w http.ResponseWriter, r *http.Request) {
	all := h.sessions.ListSessions(r.Context())
	ids := make([]string, 0, len(all))
	for _, s := range all {
		ids = append(ids, s.UUID.String())
	}
	writeJSON(w, http.StatusOK, ids)
}

func (h *handler) getSession(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.GetSession(r.Context())
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapper.SessionToSummary(s))
}

func (h *handler) deleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := mapper.ContextToSessionUUID(r.Context())
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	if err := h.sessions.DeleteSession(r.Context(), id); err != nil {
		if errors.IsNotFound(err) {
			h.writeDomainError(w, err)
			return
		}
		// The session is gone either way; a stop failure means the server
		// process was killed rather than shut down cleanly.
		writeJSON(w, http.StatusOK, map[string]string{
			"session_id": id.String(),
			"status":     "shutdown",
			"message":    "server process was killed after a failed shutdown",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"session_id": id.String(),
		"status":     "shutdown",
	})
}

func (h *handler) diagnostics(w http.ResponseWriter, r *http.Request) {
	filePath := r.URL.Query().Get("file_path")
	report, err := h.sessions.Diagnostics(r.Context(), filePath)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	wire := mapper.DiagnosticsToWire(report.Diagnostics)
	writeJSON(w, http.StatusOK, diagnosticsResponse{
		FilePath:    filePath,
		Diagnostics: wire,
		Count:       len(wire),
		Complete:    report.Complete,
	})
}

func (h *handler) definition(w http.ResponseWriter, r *http.Request) {
	filePath, pos, err := positionQuery(r)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	locations, err := h.sessions.Definition(r.Context(), filePath, pos)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeLocations(w, filePath, locations)
}

func (h *handler) references(w http.ResponseWriter, r *http.Request) {
	filePath, pos, err := positionQuery(r)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	locations, err := h.sessions.References(r.Context(), filePath, pos)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeLocations(w, filePath, locations)
}

func (h *handler) hover(w http.ResponseWriter, r *http.Request) {
	filePath, pos, err := positionQuery(r)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	content, err := h.sessions.Hover(r.Context(), filePath, pos)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hoverResponse{
		FilePath: filePath,
		Hover:    mapper.HoverToWire(content),
	})
}

func (h *handler) symbols(w http.ResponseWriter, r *http.Request) {
	filePath := r.URL.Query().Get("file_path")
	symbols, err := h.sessions.DocumentSymbols(r.Context(), filePath)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	wire := mapper.SymbolsToWire(symbols)
	writeJSON(w, http.StatusOK, symbolsResponse{
		FilePath: filePath,
		Symbols:  wire,
		Count:    len(wire),
	})
}

// positionQuery parses the file_path, line and character query parameters.
func positionQuery(r *http.Request) (string, protocol.Position, error) {
	q := r.URL.Query()
	filePath := q.Get("file_path")

	line, err := strconv.ParseUint(q.Get("line"), 10, 32)
	if err != nil {
		return "", protocol.Position{}, &errors.InvalidPathError{Path: filePath, Reason: "line must be a non-negative integer"}
	}
	character, err := strconv.ParseUint(q.Get("character"), 10, 32)
	if err != nil {
		return "", protocol.Position{}, &errors.InvalidPathError{Path: filePath, Reason: "character must be a non-negative integer"}
	}
	return filePath, protocol.Position{Line: uint32(line), Character: uint32(character)}, nil
}

func writeLocations(w http.ResponseWriter, filePath string, locations []protocol.Location) {
	wire := mapper.LocationsToWire(locations)
	writeJSON(w, http.StatusOK, locationsResponse{
		FilePath:  filePath,
		Locations: wire,
		Count:     len(wire),
	})
}

// writeDomainError maps the error taxonomy onto status codes. Anything the
// caller can fix is a 400, unknown sessions and files are 404, the rest 500.
func (h *handler) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.IsBadRequest(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.IsNotFound(err):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		h.logger.Errorw("request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
