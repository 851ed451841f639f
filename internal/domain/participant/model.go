package participant

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const MaxHandleLength = 50

var (
	ErrInvalidHandle = errors.New("invalid handle")
	ErrNotFound      = errors.New("participant not found")
)

// Participant is a player identified by a unique display handle.
type Participant struct {
	ID        string
	Handle    string
	CreatedAt time.Time
}

// NormalizeHandle trims a handle and checks its length.
func NormalizeHandle(value string) (string, error) {
	handle := strings.TrimSpace(value)
	if handle == "" {
		return "", fmt.Errorf("%w: handle is required", ErrInvalidHandle)
	}
	if utf8.RuneCountInString(handle) > MaxHandleLength {
		return "", fmt.Errorf("%w: handle must be at most %d characters", ErrInvalidHandle, MaxHandleLength)
	}
	return handle, nil
}

// HandleKey is the case-folded form handles are unique on.
func HandleKey(handle string) string {
	return strings.ToLower(strings.TrimSpace(handle))
}

// Principal is the identity a verified bearer token carries.
type Principal struct {
	Subject string
	Handle  string
}
