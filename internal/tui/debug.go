package tui

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DebugLogger logs TUI events, gestures, and commits to a file.
type DebugLogger struct {
	mu      sync.Mutex
	file    *os.File
	enabled bool
	seq     int
}

// Global debug logger instance
var debugLog *DebugLogger

// DebugLogPath is the fixed path for debug logs
const DebugLogPath = "daygrid-debug.log"

// InitDebugLogger initializes the debug logger if debug mode is enabled.
func InitDebugLogger(enabled bool) error {
	if !enabled {
		debugLog = &DebugLogger{enabled: false}
		return nil
	}

	f, err := os.Create(DebugLogPath)
	if err != nil {
		return fmt.Errorf("creating debug log: %w", err)
	}

	debugLog = &DebugLogger{
		file:    f,
		enabled: true,
	}

	debugLog.log("DEBUG_START", map[string]any{
		"log_file": DebugLogPath,
		"time":     time.Now().Format(time.RFC3339),
	})

	return nil
}

// CloseDebugLogger closes the debug log file.
func CloseDebugLogger() {
	if debugLog != nil && debugLog.file != nil {
		debugLog.log("DEBUG_END", map[string]any{
			"time": time.Now().Format(time.RFC3339),
		})
		_ = debugLog.file.Close()
	}
}

// log writes a structured log entry.
func (d *DebugLogger) log(event string, data map[string]any) {
	if d == nil || !d.enabled || d.file == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	entry := map[string]any{
		"seq":   d.seq,
		"ts":    time.Now().Format("15:04:05.000"),
		"event": event,
	}
	for k, v := range data {
		entry[k] = v
	}

	b, _ := json.Marshal(entry)
	_, _ = fmt.Fprintf(d.file, "%s\n", b)
}

// LogKeyPress logs a key press event.
func LogKeyPress(key, mode string) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	debugLog.log("KEY_PRESS", map[string]any{
		"key":  key,
		"mode": mode,
	})
}

// LogMouse logs a mouse event.
func LogMouse(msg tea.MouseMsg) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	debugLog.log("MOUSE", map[string]any{
		"x":      msg.X,
		"y":      msg.Y,
		"action": int(msg.Action),
		"button": int(msg.Button),
	})
}

// LogGesture logs a gesture transition.
func LogGesture(phase, kind, blockID string) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	debugLog.log("GESTURE", map[string]any{
		"phase": phase,
		"kind":  kind,
		"block": blockID,
	})
}

// LogCommit logs a released store write.
func LogCommit(blockID string, start, end float64) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	debugLog.log("COMMIT", map[string]any{
		"block": blockID,
		"start": start,
		"end":   end,
	})
}

// LogError logs an error.
func LogError(where string, err error) {
	if debugLog == nil || !debugLog.enabled || err == nil {
		return
	}
	debugLog.log("ERROR", map[string]any{
		"where": where,
		"error": err.Error(),
	})
}

func modeString(m Mode) string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeLabelEdit:
		return "label-edit"
	case ModeTimeEdit:
		return "time-edit"
	case ModeConfirmDelete:
		return "confirm-delete"
	case ModeNewCalendar:
		return "new-calendar"
	default:
		return "unknown"
	}
}
