package domain

import (
	"strings"
	"time"
)

// Call is a single announced code for a game. It is also the payload
// pushed to every subscriber of the game's channel.
type Call struct {
	GameID    string `json:"gameId"`
	Code      string `json:"code"`
	CreatedAt string `json:"createdAt"`
}

// IsReset reports whether the call is the reset sentinel.
func (c Call) IsReset() bool {
	return c.Code == ResetCode
}

// Validate reports why a call cannot be accepted, if at all.
func (c Call) Validate() error {
	if strings.TrimSpace(c.GameID) == "" {
		return ErrMissingGame
	}
	_, _, err := ParseCode(c.Code)
	return err
}

// WithTimestamp returns a copy of the call whose CreatedAt is filled in
// with now when the caller left it blank.
func (c Call) WithTimestamp(now time.Time) Call {
	if strings.TrimSpace(c.CreatedAt) == "" {
		c.CreatedAt = FormatTimestamp(now)
	}
	return c
}

func NewResetCall(gameID string, now time.Time) Call {
	return Call{GameID: gameID, Code: ResetCode, CreatedAt: FormatTimestamp(now)}
}

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// NormalizeGameID is the single place a game id is canonicalized, so every
// intake lands on the same history and channel.
func NormalizeGameID(gameID string) string {
	return strings.TrimSpace(gameID)
}

// Channel is the topic all subscribers of a game listen on, e.g. "bingo/g1".
func Channel(prefix, gameID string) string {
	return prefix + "/" + gameID
}
