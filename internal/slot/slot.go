package slot

import (
	"errors"
	"fmt"

	"github.com/danieljhkim/workoutlog/internal/fsops"
)

var (
	// ErrInvalidKey indicates a key that cannot name a slot.
	ErrInvalidKey = errors.New("invalid slot key")

	// ErrUnknownBackend indicates an unsupported backend name.
	ErrUnknownBackend = errors.New("unknown slot backend")

	// ErrNoHistory indicates the backend does not keep revisions.
	ErrNoHistory = errors.New("backend keeps no history")
)

// Slot is a durable key-value location.
type Slot interface {
	// Get returns the stored bytes for key. ok is false when nothing has
	// been stored under key yet.
	Get(key string) (data []byte, ok bool, err error)

	// Set replaces the value stored under key.
	Set(key string, data []byte) error
}

// Closer is implemented by backends holding resources.
type Closer interface {
	Close() error
}

// Close releases s if it holds resources.
func Close(s Slot) error {
	if c, ok := s.(Closer); ok {
		return c.Close()
	}
	return nil
}

func validateKey(key string) error {
	if err := fsops.ValidateIdentifier(key); err != nil {
		return fmt.Errorf("%w %q: %v", ErrInvalidKey, key, err)
	}
	return nil
}
