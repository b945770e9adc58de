// Package streamevent defines the closed set of events emitted while a chat
// turn streams to a client. Every event marshals to a flat JSON object whose
// "type" field matches the AI SDK UI-message wire protocol; there is no
// envelope and no way to define a new event type outside this package.
package streamevent

import "encoding/json"

// Event is satisfied by every variant this package defines. The interface is
// unexported-method-sealed: only types declared here can implement it, so a
// switch over Type() can treat the set as closed.
type Event interface {
	Type() string
	json.Marshaler

	sealed()
}

// base carries the fields every variant needs for routing without exposing a
// constructor that could build an invalid type/payload pairing.
type base struct {
	t string
}

func (b base) Type() string { return b.t }
func (base) sealed()        {}

// Start announces the beginning of an assistant turn.
type Start struct {
	base
	MessageID string
}

func NewStart(messageID string) Start {
	return Start{base: base{t: "start"}, MessageID: messageID}
}

func (e Start) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type      string `json:"type"`
		MessageID string `json:"messageId"`
	}{e.t, e.MessageID})
}

// TextStart opens a text content block identified by id.
type TextStart struct {
	base
	ID string
}

func NewTextStart(id string) TextStart {
	return TextStart{base: base{t: "text-start"}, ID: id}
}

func (e TextStart) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		ID   string `json:"id"`
	}{e.t, e.ID})
}

// TextDelta appends a chunk of text to an open text block.
type TextDelta struct {
	base
	ID    string
	Delta string
}

func NewTextDelta(id, delta string) TextDelta {
	return TextDelta{base: base{t: "text-delta"}, ID: id, Delta: delta}
}

func (e TextDelta) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string `json:"type"`
		ID    string `json:"id"`
		Delta string `json:"delta"`
	}{e.t, e.ID, e.Delta})
}

// TextEnd closes a text block.
type TextEnd struct {
	base
	ID string
}

func NewTextEnd(id string) TextEnd {
	return TextEnd{base: base{t: "text-end"}, ID: id}
}

func (e TextEnd) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		ID   string `json:"id"`
	}{e.t, e.ID})
}

// ReasoningStart opens a reasoning content block.
type ReasoningStart struct {
	base
	ID string
}

func NewReasoningStart(id string) ReasoningStart {
	return ReasoningStart{base: base{t: "reasoning-start"}, ID: id}
}

func (e ReasoningStart) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		ID   string `json:"id"`
	}{e.t, e.ID})
}

// ReasoningDelta appends a chunk of reasoning content.
type ReasoningDelta struct {
	base
	ID    string
	Delta string
}

func NewReasoningDelta(id, delta string) ReasoningDelta {
	return ReasoningDelta{base: base{t: "reasoning-delta"}, ID: id, Delta: delta}
}

func (e ReasoningDelta) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string `json:"type"`
		ID    string `json:"id"`
		Delta string `json:"delta"`
	}{e.t, e.ID, e.Delta})
}

// ReasoningEnd closes a reasoning block.
type ReasoningEnd struct {
	base
	ID string
}

func NewReasoningEnd(id string) ReasoningEnd {
	return ReasoningEnd{base: base{t: "reasoning-end"}, ID: id}
}

func (e ReasoningEnd) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		ID   string `json:"id"`
	}{e.t, e.ID})
}

// ToolInputStart announces that a tool call's arguments have begun streaming.
type ToolInputStart struct {
	base
	ToolCallID string
	ToolName   string
}

func NewToolInputStart(toolCallID, toolName string) ToolInputStart {
	return ToolInputStart{base: base{t: "tool-input-start"}, ToolCallID: toolCallID, ToolName: toolName}
}

func (e ToolInputStart) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type       string `json:"type"`
		ToolCallID string `json:"toolCallId"`
		ToolName   string `json:"toolName"`
	}{e.t, e.ToolCallID, e.ToolName})
}

// ToolInputDelta appends raw (not-yet-valid-JSON) argument text.
type ToolInputDelta struct {
	base
	ToolCallID     string
	InputTextDelta string
}

func NewToolInputDelta(toolCallID, delta string) ToolInputDelta {
	return ToolInputDelta{base: base{t: "tool-input-delta"}, ToolCallID: toolCallID, InputTextDelta: delta}
}

func (e ToolInputDelta) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type           string `json:"type"`
		ToolCallID     string `json:"toolCallId"`
		InputTextDelta string `json:"inputTextDelta"`
	}{e.t, e.ToolCallID, e.InputTextDelta})
}

// ToolInputAvailable marks a tool call's arguments as fully parsed and ready
// to execute.
type ToolInputAvailable struct {
	base
	ToolCallID string
	ToolName   string
	Input      json.RawMessage
}

func NewToolInputAvailable(toolCallID, toolName string, input json.RawMessage) ToolInputAvailable {
	return ToolInputAvailable{base: base{t: "tool-input-available"}, ToolCallID: toolCallID, ToolName: toolName, Input: input}
}

func (e ToolInputAvailable) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type       string          `json:"type"`
		ToolCallID string          `json:"toolCallId"`
		ToolName   string          `json:"toolName"`
		Input      json.RawMessage `json:"input"`
	}{e.t, e.ToolCallID, e.ToolName, e.Input})
}

// ToolInputError marks a tool call whose arguments never became valid JSON.
type ToolInputError struct {
	base
	ToolCallID string
	ToolName   string
	Input      string
	ErrorText  string
}

func NewToolInputError(toolCallID, toolName, input, errorText string) ToolInputError {
	return ToolInputError{base: base{t: "tool-input-error"}, ToolCallID: toolCallID, ToolName: toolName, Input: input, ErrorText: errorText}
}

func (e ToolInputError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type       string `json:"type"`
		ToolCallID string `json:"toolCallId"`
		ToolName   string `json:"toolName"`
		Input      string `json:"input"`
		ErrorText  string `json:"errorText"`
	}{e.t, e.ToolCallID, e.ToolName, e.Input, e.ErrorText})
}

// ToolOutputAvailable carries a tool's result back to the client.
type ToolOutputAvailable struct {
	base
	ToolCallID string
	Output     json.RawMessage
}

func NewToolOutputAvailable(toolCallID string, output json.RawMessage) ToolOutputAvailable {
	return ToolOutputAvailable{base: base{t: "tool-output-available"}, ToolCallID: toolCallID, Output: output}
}

func (e ToolOutputAvailable) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type       string          `json:"type"`
		ToolCallID string          `json:"toolCallId"`
		Output     json.RawMessage `json:"output"`
	}{e.t, e.ToolCallID, e.Output})
}

// ToolOutputError reports that a tool executed but failed.
type ToolOutputError struct {
	base
	ToolCallID string
	ErrorText  string
}

func NewToolOutputError(toolCallID, errorText string) ToolOutputError {
	return ToolOutputError{base: base{t: "tool-output-error"}, ToolCallID: toolCallID, ErrorText: errorText}
}

func (e ToolOutputError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type       string `json:"type"`
		ToolCallID string `json:"toolCallId"`
		ErrorText  string `json:"errorText"`
	}{e.t, e.ToolCallID, e.ErrorText})
}

// File announces a generated or referenced file, such as an inline image a
// tool produced.
type File struct {
	base
	URL       string
	MediaType string
}

func NewFile(url, mediaType string) File {
	return File{base: base{t: "file"}, URL: url, MediaType: mediaType}
}

func (e File) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type      string `json:"type"`
		URL       string `json:"url"`
		MediaType string `json:"mediaType"`
	}{e.t, e.URL, e.MediaType})
}

// Data carries an agent-defined payload under a caller-chosen suffix, wired
// to the wire type "data-<suffix>" (for example "data-step" or
// "data-start-label" emitted by the research agent).
type Data struct {
	base
	Suffix  string
	Payload json.RawMessage
}

func NewData(suffix string, payload json.RawMessage) Data {
	return Data{base: base{t: "data-" + suffix}, Suffix: suffix, Payload: payload}
}

func (e Data) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}{e.t, e.Payload})
}

// Finish closes out the turn with the reason the provider stopped
// generating.
type Finish struct {
	base
	FinishReason string
}

func NewFinish(finishReason string) Finish {
	return Finish{base: base{t: "finish"}, FinishReason: finishReason}
}

func (e Finish) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type         string `json:"type"`
		FinishReason string `json:"finishReason"`
	}{e.t, e.FinishReason})
}

// Error terminates the turn early with a message safe to show a client.
type Error struct {
	base
	ErrorText string
}

func NewError(errorText string) Error {
	return Error{base: base{t: "error"}, ErrorText: errorText}
}

func (e Error) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string `json:"type"`
		Error string `json:"error"`
	}{e.t, e.ErrorText})
}
