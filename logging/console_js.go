//go:build js && wasm

package logging

import (
	"encoding/json"
	"strings"
	"syscall/js"
)

// ConsoleWriter forwards each JSON log line to the browser console, picking
// the console method from the entry level.
type ConsoleWriter struct{}

func (ConsoleWriter) Write(p []byte) (int, error) {
	console := js.Global().Get("console")
	if !console.Truthy() {
		return len(p), nil
	}
	line := strings.TrimSpace(string(p))
	var entry Entry
	_ = json.Unmarshal(p, &entry)
	method := "log"
	switch entry.Level {
	case "ERROR":
		method = "error"
	case "WARN":
		method = "warn"
	case "DEBUG":
		method = "debug"
	}
	console.Call(method, line)
	return len(p), nil
}
