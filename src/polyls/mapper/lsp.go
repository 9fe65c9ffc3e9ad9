package mapper

import (
	"fmt"
	"strconv"

	"go.lsp.dev/protocol"
)

// Position is the wire representation of a zero-based document position.
type Position struct {
	Line      uint32 `json:"line"`
	Character uint32 `json:"character"`
}

// Range is the wire representation of a document range.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Diagnostic is the wire representation of one diagnostic record.
// Severity, code and source are omitted when the server left them unset.
type Diagnostic struct {
	Range    Range  `json:"range"`
	Message  string `json:"message"`
	Severity uint32 `json:"severity,omitempty"`
	Code     string `json:"code,omitempty"`
	Source   string `json:"source,omitempty"`
}

// Location is the wire representation of a resolved code location.
type Location struct {
	URI   string `json:"uri"`
	Range Range  `json:"range"`
}

// Hover is the wire representation of hover content.
type Hover struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

// Symbol is the wire representation of one document symbol.
type Symbol struct {
	Name           string   `json:"name"`
	Kind           uint32   `json:"kind"`
	Range          Range    `json:"range"`
	SelectionRange Range    `json:"selection_range"`
	Children       []Symbol `json:"children,omitempty"`
}

// DiagnosticsToWire maps published diagnostics to their wire equivalent.
func DiagnosticsToWire(diagnostics []protocol.Diagnostic) []Diagnostic {
	out := make([]Diagnostic, 0, len(diagnostics))
	for _, d := range diagnostics {
		out = append(out, Diagnostic{
			Range:    rangeToWire(d.Range),
			Message:  d.Message,
			Severity: uint32(d.Severity),
			Code:     codeToWire(d.Code),
			Source:   d.Source,
		})
	}
	return out
}

// LocationsToWire maps resolved locations to their wire equivalent.
func LocationsToWire(locations []protocol.Location) []Location {
	out := make([]Location, 0, len(locations))
	for _, l := range locations {
		out = append(out, Location{
			URI:   string(l.URI),
			Range: rangeToWire(l.Range),
		})
	}
	return out
}

// HoverToWire maps hover content to its wire equivalent. A nil hover stays
// nil so the response encodes as JSON null.
func HoverToWire(h *protocol.Hover) *Hover {
	if h == nil {
		return nil
	}
	return &Hover{
		Kind:  string(h.Contents.Kind),
		Value: h.Contents.Value,
	}
}

// SymbolsToWire maps a symbol outline to its wire equivalent, recursing into
// children.
func SymbolsToWire(symbols []protocol.DocumentSymbol) []Symbol {
	out := make([]Symbol, 0, len(symbols))
	for _, s := range symbols {
		out = append(out, Symbol{
			Name:           s.Name,
			Kind:           uint32(s.Kind),
			Range:          rangeToWire(s.Range),
			SelectionRange: rangeToWire(s.SelectionRange),
			Children:       SymbolsToWire(s.Children),
		})
	}
	return out
}

func rangeToWire(r protocol.Range) Range {
	return Range{
		Start: Position{Line: r.Start.Line, Character: r.Start.Character},
		End:   Position{Line: r.End.Line, Character: r.End.Character},
	}
}

// codeToWire renders a diagnostic code as a string. Servers send strings or
// numbers here; numeric codes are stringified rather than dropped.
func codeToWire(code interface{}) string {
	switch c := code.(type) {
	case nil:
		return ""
	case string:
		return c
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	case int32:
		return strconv.FormatInt(int64(c), 10)
	default:
		return fmt.Sprint(c)
	}
}
