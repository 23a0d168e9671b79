// iojson are utilities for writing JSON output from a command line
// interface perspective
package iojson

import (
	"encoding/json"
	"fmt"
	"io"
)

// Error is the standard error format type that is returned when errors
// happen.
type Error struct {
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

// WriteError writes a structured error to the given writer. Marshal
// failures fall back to a manually constructed blob so the caller always
// gets valid JSON.
func WriteError(w io.Writer, msg string, data map[string]any) error {
	bits, err := json.MarshalIndent(Error{Message: msg, Data: data}, "", "  ")
	if err != nil {
		msgBytes, _ := json.Marshal(msg)
		errBytes, _ := json.Marshal(err.Error())
		bits = []byte(fmt.Sprintf(`{"message":%s,"data":{"json_error":%s}}`, msgBytes, errBytes))
	}

	_, err = fmt.Fprintln(w, string(bits))
	return err
}

// Write marshals obj as indented JSON onto w. On marshal failure a
// structured error goes to ew instead.
func Write(w io.Writer, ew io.Writer, obj any) error {
	bits, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return WriteError(ew, "error marshaling output", map[string]any{"json_error": err.Error()})
	}

	_, err = fmt.Fprintln(w, string(bits))
	return err
}
