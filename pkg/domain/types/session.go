package types

import "github.com/google/uuid"

// SessionID identifies a dashboard session
type SessionID string

// NewSessionID generates a random session ID
func NewSessionID() SessionID {
	return SessionID(uuid.NewString())
}

// String returns the string representation of SessionID
func (s SessionID) String() string {
	return string(s)
}

// IsValid reports whether s is a well-formed session ID
func (s SessionID) IsValid() bool {
	_, err := uuid.Parse(string(s))
	return err == nil
}
