package sand

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is the type tag of a particle.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindSand
	KindWater
	KindCoal
	KindOil
	KindFire
	KindSmoke
	KindSteam

	kindCount
)

// ErrUnknownKind is returned when a kind name cannot be parsed.
var ErrUnknownKind = errors.New("sand: unknown particle kind")

var kindNames = [kindCount]string{
	KindEmpty: "empty",
	KindSand:  "sand",
	KindWater: "water",
	KindCoal:  "coal",
	KindOil:   "oil",
	KindFire:  "fire",
	KindSmoke: "smoke",
	KindSteam: "steam",
}

// String returns the lower-case kind name.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool { return k < kindCount }

// ParseKind resolves a kind from its name, case-insensitively.
func ParseKind(name string) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for k, s := range kindNames {
		if s == n {
			return Kind(k), nil
		}
	}
	return KindEmpty, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Kinds lists every kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, kindCount)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// MarshalText implements encoding.TextMarshaler so kinds round-trip through
// YAML and flag values by name.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, uint8(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// open reports whether a falling particle may trade places with k.
func open(k Kind) bool {
	return k == KindEmpty || k == KindSmoke || k == KindSteam
}

func flammable(k Kind) bool {
	return k == KindCoal || k == KindOil
}
