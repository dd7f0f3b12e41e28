package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Info emits an info-level structured log line.
func Info(msg string, fields map[string]any) {
	emit("info", msg, fields)
}

// Warn emits a warn-level structured log line.
func Warn(msg string, fields map[string]any) {
	emit("warn", msg, fields)
}

// Error emits an error-level structured log line.
func Error(msg string, fields map[string]any) {
	emit("error", msg, fields)
}

func emit(level, msg string, fields map[string]any) {
	entry := make(map[string]any, len(fields)+3)
	for k, v := range fields {
		entry[k] = v
	}
	// Fixed keys win over caller-supplied fields.
	entry["ts"] = time.Now().UTC().Format(time.RFC3339)
	entry["level"] = level
	entry["msg"] = msg

	line, err := json.Marshal(entry)
	if err != nil {
		fmt.Fprintf(os.Stdout, `{"ts":"%s","level":"error","msg":"logger marshal failed","err":%q}`+"\n",
			time.Now().UTC().Format(time.RFC3339), err.Error())
		return
	}
	fmt.Fprintln(os.Stdout, string(line))
}
