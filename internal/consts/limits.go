package consts

import "time"

// Grid defaults
const (
	DefaultRows = 100
	DefaultCols = 26

	DefaultColWidth = 10
	MinColWidth     = 4
	MaxColWidth     = 40

	DefaultRowHeight = 1
	MinRowHeight     = 1
	MaxRowHeight     = 10
)

// ClampColWidth keeps a column width within [MinColWidth, MaxColWidth].
// Zero selects the default.
func ClampColWidth(w int) int {
	if w == 0 {
		return DefaultColWidth
	}
	return max(MinColWidth, min(MaxColWidth, w))
}

// ClampRowHeight keeps a row height within [MinRowHeight, MaxRowHeight].
func ClampRowHeight(h int) int {
	return max(MinRowHeight, min(MaxRowHeight, h))
}

// Shell execution
const (
	DefaultShellTimeout = 30 * time.Second
	// MaxShellOutput caps captured stdout and stderr each
	MaxShellOutput = 1024 * 1024
)

// HTTP server
const (
	DefaultServerAddr = "127.0.0.1:8080"

	ServerReadHeaderTimeout = 10 * time.Second
	ServerShutdownTimeout   = 5 * time.Second
	// MaxRequestBody bounds JSON request bodies
	MaxRequestBody = 1024 * 1024
)

// Websocket
const (
	// Time allowed to write a message to the peer
	WSWriteWait = 10 * time.Second
	// Time allowed to read the next pong message from the peer
	WSPongWait = 60 * time.Second
	// Send pings to peer with this period. Must be less than WSPongWait
	WSPingPeriod = (WSPongWait * 9) / 10
	// Maximum message size allowed from peer
	WSMaxMessageSize = 8192
	// Buffered outbound messages per client
	WSSendBuffer = 256
)

// File watching
const (
	// WatchDebounce coalesces editor save bursts into one reload
	WatchDebounce = 200 * time.Millisecond
)
