package api

// MessageType identifies websocket messages.
type MessageType string

const (
	// MessageTypeCell carries one cell's raw text and value.
	MessageTypeCell MessageType = "cell"
	// MessageTypeSheet says several cells changed; clients should refetch.
	MessageTypeSheet MessageType = "sheet"
	// MessageTypeGet asks for one cell, answered with MessageTypeCell.
	MessageTypeGet MessageType = "get"
	// MessageTypeSet edits one cell like PUT /api/cells/:ref.
	MessageTypeSet MessageType = "set"
	// MessageTypeError reports a rejected request.
	MessageTypeError MessageType = "error"
)

// Message is the websocket envelope.
type Message struct {
	Type  MessageType `json:"type"`
	Ref   string      `json:"ref,omitempty"`
	Raw   string      `json:"raw,omitempty"`
	Value string      `json:"value,omitempty"`
	Error string      `json:"error,omitempty"`
}

// CellJSON is a cell in API responses.
type CellJSON struct {
	Ref   string `json:"ref"`
	Raw   string `json:"raw"`
	Value string `json:"value"`
}

// SheetJSON is the GET /api/sheet response.
type SheetJSON struct {
	Rows  int        `json:"rows"`
	Cols  int        `json:"cols"`
	Cells []CellJSON `json:"cells"`
}

// SetCellRequest is the PUT /api/cells/:ref body.
type SetCellRequest struct {
	Raw *string `json:"raw"`
}

// EvalRequest is the POST /api/eval body. At, when set, overrides Row and
// Col.
type EvalRequest struct {
	Formula string `json:"formula"`
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	At      string `json:"at,omitempty"`
}

// EvalResponse is the POST /api/eval response.
type EvalResponse struct {
	Value string `json:"value"`
}

type errorJSON struct {
	Error string `json:"error"`
}
