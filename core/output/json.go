package output

import (
	"encoding/json"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"recipe-planner/core/engine"
)

// JSONFormatter writes the plan document as indented JSON
type JSONFormatter struct{}

// NewJSONFormatter creates a JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Format returns the format type
func (f *JSONFormatter) Format() Format {
	return FormatJSON
}

// Render writes the document
func (f *JSONFormatter) Render(w io.Writer, result *engine.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewDocument(result))
}

// MsgpackFormatter writes the same document as JSON, MessagePack-encoded.
// Field names follow the json tags so both encodings share one schema.
type MsgpackFormatter struct{}

// NewMsgpackFormatter creates a MessagePack formatter
func NewMsgpackFormatter() *MsgpackFormatter {
	return &MsgpackFormatter{}
}

// Format returns the format type
func (f *MsgpackFormatter) Format() Format {
	return FormatMsgpack
}

// Render writes the document
func (f *MsgpackFormatter) Render(w io.Writer, result *engine.Result) error {
	enc := msgpack.NewEncoder(w)
	enc.SetCustomStructTag("json")
	return enc.Encode(NewDocument(result))
}

// DecodeMsgpack reads a document written by MsgpackFormatter
func DecodeMsgpack(r io.Reader) (Document, error) {
	var doc Document
	dec := msgpack.NewDecoder(r)
	dec.SetCustomStructTag("json")
	err := dec.Decode(&doc)
	return doc, err
}
