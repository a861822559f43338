package device

import (
	"os"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// ConfigureLogLevel sets the wgpu-native log level from a level name
// (OFF, ERROR, WARN, INFO, DEBUG, TRACE). An empty name reads WGPU_LOG_LEVEL from the environment.
// Unrecognized names leave the native default in place.
//
// Parameters:
//   - level: the level name, case-insensitive
//
// Returns:
//   - bool: true if a level was applied
func ConfigureLogLevel(level string) bool {
	if level == "" {
		level = os.Getenv("WGPU_LOG_LEVEL")
	}
	l, ok := parseLogLevel(level)
	if !ok {
		return false
	}
	wgpu.SetLogLevel(l)
	return true
}

func parseLogLevel(level string) (wgpu.LogLevel, bool) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "OFF":
		return wgpu.LogLevelOff, true
	case "ERROR":
		return wgpu.LogLevelError, true
	case "WARN":
		return wgpu.LogLevelWarn, true
	case "INFO":
		return wgpu.LogLevelInfo, true
	case "DEBUG":
		return wgpu.LogLevelDebug, true
	case "TRACE":
		return wgpu.LogLevelTrace, true
	}
	return wgpu.LogLevelOff, false
}
