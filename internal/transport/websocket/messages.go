package websocket

// ClientMessage is what the browser sends. Payload is decoded per type.
type ClientMessage struct {
	Type    string                 `json:"type"`
	Payload map[string]interface{} `json:"payload"`
}

type ServerMessage struct {
	Type    string `json:"type"`
	Message string `json:"message,omitempty"`
}

type movePayload struct {
	Column int `mapstructure:"column"`
}

type resetPayload struct {
	Starter string `mapstructure:"starter"`
}

const (
	MessageMove  = "move"
	MessageReset = "reset"
)
