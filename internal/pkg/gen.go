package pkg

import "github.com/google/uuid"

// GenerateInviteID - generates a new unique invite id.
func GenerateInviteID() string {
	return uuid.NewString()
}

// GenerateSessionID - generates a new unique session id.
func GenerateSessionID() string {
	return uuid.NewString()
}
