package uid

import (
	"github.com/google/uuid"
)

// GenerateConnectionID returns a random id used to tell sockets apart in logs.
func GenerateConnectionID() string {
	return uuid.NewString()
}
