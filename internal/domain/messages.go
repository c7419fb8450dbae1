package domain

// ClientMessage is what a browser sends over the live-play socket.
type ClientMessage struct {
	Type   string `json:"type"` // "state" or "move"
	Column int    `json:"column"`
}

type ServerMessage struct {
	Type    string     `json:"type"` // "state" or "error"
	State   *GameState `json:"state,omitempty"`
	Message string     `json:"message,omitempty"`
}
