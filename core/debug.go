package core

// DebugWriter receives one trace line at a time
type DebugWriter func(string)

var (
	// discards everything until a board or host tool installs a sink
	debugPrintln DebugWriter = func(s string) {}

	debugEnabled bool = false
)

// SetDebugWriter installs the sink for trace lines. The firmware leaves
// the default in place; pwmplan points it at stdout.
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled turns register tracing on or off
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

func IsDebugEnabled() bool {
	return debugEnabled
}

// DebugPrintln forwards msg to the sink when tracing is on
func DebugPrintln(msg string) {
	if debugEnabled && debugPrintln != nil {
		debugPrintln(msg)
	}
}
