// Package factory provides user-defined factories for test fixtures.
package factory

import (
	"fmt"

	"github.com/gofrs/uuid"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
)

// UUID is a user-defined factory for a random uuid.UUID.
func UUID() uuid.UUID {
	return uuid.Must(uuid.NewV4())
}

// JSONRPCRequest is a user-defined factory for a JSON-RPC request containing the specified method and parameters.
func JSONRPCRequest(method string, params interface{}) jsonrpc2.Request {
	req, _ := jsonrpc2.NewCall(jsonrpc2.NewNumberID(5), method, params)
	return req
}

// Diagnostic is a user-defined factory for a diagnostic record on the given line.
func Diagnostic(line uint32) protocol.Diagnostic {
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: line, Character: 0},
			End:   protocol.Position{Line: line, Character: 10},
		},
		Message:  fmt.Sprintf("sample diagnostic on line %d", line),
		Severity: protocol.DiagnosticSeverityError,
		Source:   "test",
	}
}
