package auth

import (
	"fmt"

	"github.com/arshan09/AuthenticationApp/internal/common"
)

// Kind identifies a token family. Each kind is signed with its own key so a
// token of one kind never verifies as another.
type Kind int

const (
	Access Kind = iota
	Refresh
	Reset
)

func (k Kind) String() string {
	switch k {
	case Access:
		return "access"
	case Refresh:
		return "refresh"
	case Reset:
		return "reset"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// KeyRegistry holds one HMAC key per token kind.
type KeyRegistry struct {
	keys map[Kind][]byte
}

// NewKeyRegistry fails when any key is empty.
func NewKeyRegistry(access, refresh, reset []byte) (*KeyRegistry, error) {
	keys := map[Kind][]byte{
		Access:  access,
		Refresh: refresh,
		Reset:   reset,
	}
	for _, k := range []Kind{Access, Refresh, Reset} {
		if len(keys[k]) == 0 {
			return nil, fmt.Errorf("%s key: %w", k, common.ErrMissingSigningKey)
		}
	}
	return &KeyRegistry{keys: keys}, nil
}

func (r *KeyRegistry) key(k Kind) ([]byte, error) {
	key, ok := r.keys[k]
	if !ok {
		return nil, fmt.Errorf("%s key: %w", k, common.ErrMissingSigningKey)
	}
	return key, nil
}
