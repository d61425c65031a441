package domain

const (
	MsgSubscribe   = "subscribe"
	MsgUnsubscribe = "unsubscribe"
	MsgCall        = "call"
	MsgReset       = "reset"

	MsgSubscribed   = "subscribed"
	MsgUnsubscribed = "unsubscribed"
)

type ClientMessage struct {
	Type      string `json:"type"`
	GameID    string `json:"gameId"`
	Code      string `json:"code,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// Call extracts the call carried by a "call" message.
func (m ClientMessage) Call() Call {
	return Call{GameID: m.GameID, Code: m.Code, CreatedAt: m.CreatedAt}
}

type ServerMessage struct {
	Type    string   `json:"type"`
	GameID  string   `json:"gameId,omitempty"`
	Channel string   `json:"channel,omitempty"`
	Calls   []string `json:"calls,omitempty"`
	Message string   `json:"message,omitempty"`
}
