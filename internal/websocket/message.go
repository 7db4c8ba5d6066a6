package websocket

import "encoding/json"

// Message defines the structure for websocket messages.
type Message struct {
	Action  string      `json:"action"`
	Payload interface{} `json:"payload"`
}

// NewErrorMessage encodes an error message for a single client.
func NewErrorMessage(message string) []byte {
	data, _ := json.Marshal(Message{Action: "error", Payload: message})
	return data
}
