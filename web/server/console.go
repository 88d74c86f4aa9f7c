package server

import (
	"fmt"
	"strings"
	"time"

	"github.com/df07/go-voxel-raytracer/pkg/core"
)

// ConsoleMessage is a log line forwarded to a live-view client
type ConsoleMessage struct {
	Type      string    `json:"type"` // always "console"
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// WebLogger implements core.Logger by sending messages to a console channel
type WebLogger struct {
	streamID    string
	consoleChan chan<- ConsoleMessage
}

// NewWebLogger creates a logger for one stream
func NewWebLogger(streamID string, consoleChan chan<- ConsoleMessage) core.Logger {
	return &WebLogger{
		streamID:    streamID,
		consoleChan: consoleChan,
	}
}

// Printf implements core.Logger interface
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	// Also write to stdout for server logs
	fmt.Printf("[%s] %s", wl.streamID, message)

	// Send to web console if channel is available (non-blocking)
	if wl.consoleChan != nil {
		select {
		case wl.consoleChan <- ConsoleMessage{
			Type:      "console",
			Message:   message,
			Timestamp: time.Now(),
			Level:     messageLevel(message),
		}:
		default:
			// Channel full, skip (don't block)
		}
	}
}

// messageLevel derives the level from the "Warning:"/"Error:" prefixes
// used by the loaders
func messageLevel(message string) string {
	switch {
	case strings.HasPrefix(message, "Warning"):
		return "warning"
	case strings.HasPrefix(message, "Error"):
		return "error"
	default:
		return "info"
	}
}
