package magnet

import (
	"fmt"
	"strings"
)

// Polarity is the sign shared by field sources and the queried actor.
// The zero value is not a valid polarity.
type Polarity int

const (
	Negative Polarity = -1
	Positive Polarity = 1
)

// Valid reports whether p is Positive or Negative.
func (p Polarity) Valid() bool {
	return p == Positive || p == Negative
}

// Flip returns the opposite polarity. Invalid values stay invalid.
func (p Polarity) Flip() Polarity {
	return -p
}

func (p Polarity) String() string {
	switch p {
	case Positive:
		return "red"
	case Negative:
		return "blue"
	default:
		return fmt.Sprintf("polarity(%d)", int(p))
	}
}

// ParsePolarity accepts "red"/"blue", "positive"/"negative" and "+1"/"-1".
func ParsePolarity(s string) (Polarity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "red", "positive", "+1", "1", "+":
		return Positive, nil
	case "blue", "negative", "-1", "-":
		return Negative, nil
	}
	return 0, fmt.Errorf("magnet: unknown polarity %q", s)
}
