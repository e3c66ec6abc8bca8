// Package card defines the card taxonomy and deck used by the game engine.
package card

import (
	"fmt"
	"strconv"
)

// Color is one of the four play colors, or None for an unresolved wild.
type Color int

const (
	Red Color = iota
	Green
	Yellow
	Blue
	None
)

var colorNames = [...]string{"Red", "Green", "Yellow", "Blue", "None"}

func (c Color) String() string {
	if c < Red || c > None {
		return "None"
	}
	return colorNames[c]
}

// ParseColor maps a color name to its Color. Anything unrecognized,
// including "None" and the empty string, maps to None with ok=false,
// so a junk color choice on a wild surfaces as an illegal move.
func ParseColor(s string) (Color, bool) {
	switch s {
	case "Red":
		return Red, true
	case "Green":
		return Green, true
	case "Yellow":
		return Yellow, true
	case "Blue":
		return Blue, true
	}
	return None, false
}

// MarshalText implements encoding.TextMarshaler so colors travel as names.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText accepts the names produced by MarshalText.
func (c *Color) UnmarshalText(b []byte) error {
	s := string(b)
	if parsed, ok := ParseColor(s); ok {
		*c = parsed
		return nil
	}
	if s == "None" || s == "" {
		*c = None
		return nil
	}
	return fmt.Errorf("unknown color %q", s)
}

// Rank is the face of a card: 0-9 for number cards, then the action
// cards in a fixed order used for hand sorting.
type Rank int

const (
	RankPlusTwo Rank = iota + 10
	RankReverse
	RankSkip
	RankWild
	RankPlusFour
)

func (r Rank) String() string {
	switch r {
	case RankPlusTwo:
		return "Plus Two"
	case RankReverse:
		return "Reverse"
	case RankSkip:
		return "Skip"
	case RankWild:
		return "Wild"
	case RankPlusFour:
		return "Plus Four"
	}
	return strconv.Itoa(int(r))
}

// Card is a single card. Wild and Plus Four cards carry Color None
// until the player who places them resolves a color.
type Card struct {
	Rank  Rank  `json:"rank"`
	Color Color `json:"color"`
}

// Number builds a number card of rank 0-9.
func Number(n int, c Color) Card { return Card{Rank: Rank(n), Color: c} }

func PlusTwo(c Color) Card { return Card{Rank: RankPlusTwo, Color: c} }
func Reverse(c Color) Card { return Card{Rank: RankReverse, Color: c} }
func Skip(c Color) Card    { return Card{Rank: RankSkip, Color: c} }
func Wild() Card           { return Card{Rank: RankWild, Color: None} }
func PlusFour() Card       { return Card{Rank: RankPlusFour, Color: None} }

// IsWild reports whether the card is a Wild or Plus Four, regardless of
// any color it has been resolved to.
func (c Card) IsWild() bool {
	return c.Rank == RankWild || c.Rank == RankPlusFour
}

// ValidOn reports whether the card may be placed on the given table
// card: matching color, matching rank, or any wild.
func (c Card) ValidOn(table Card) bool {
	return c.Color == table.Color || c.Rank == table.Rank || c.IsWild()
}

// Less orders cards by color, then rank. The ordering exists purely to
// keep hands visually grouped; it has no bearing on legality.
func (c Card) Less(o Card) bool {
	if c.Color != o.Color {
		return c.Color < o.Color
	}
	return c.Rank < o.Rank
}

func (c Card) String() string {
	if c.Color == None {
		return c.Rank.String()
	}
	return c.Color.String() + " " + c.Rank.String()
}
