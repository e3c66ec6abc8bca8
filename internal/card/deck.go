package card

import (
	"math/rand"
	"sort"
)

// Deck is an ordered pile of cards. It serves as the face-down draw
// pile, the face-up discard pile (top = last element), and each
// player's hand.
type Deck []Card

// NewFull builds the canonical 108-card deck, shuffled: per color one
// zero, two of each number 1-9, and two each of Skip, Reverse and Plus
// Two; plus four colorless Wilds and four Plus Fours.
func NewFull() Deck {
	d := make(Deck, 0, 108)
	for _, c := range []Color{Red, Green, Yellow, Blue} {
		d = append(d, Number(0, c))
		for n := 1; n <= 9; n++ {
			d = append(d, Number(n, c), Number(n, c))
		}
		d = append(d,
			Skip(c), Skip(c),
			Reverse(c), Reverse(c),
			PlusTwo(c), PlusTwo(c),
		)
	}
	for i := 0; i < 4; i++ {
		d = append(d, Wild(), PlusFour())
	}
	d.Shuffle()
	return d
}

// Shuffle randomizes the deck in place.
func (d Deck) Shuffle() {
	rand.Shuffle(len(d), func(i, j int) {
		d[i], d[j] = d[j], d[i]
	})
}

// Sort orders the deck by color, then rank, for stable hand display.
func (d Deck) Sort() {
	sort.Slice(d, func(i, j int) bool { return d[i].Less(d[j]) })
}

// Pop removes and returns the top (last) card. ok is false when the
// deck is empty.
func (d *Deck) Pop() (Card, bool) {
	if len(*d) == 0 {
		return Card{}, false
	}
	c := (*d)[len(*d)-1]
	*d = (*d)[:len(*d)-1]
	return c, true
}

// Push appends a card on top of the deck.
func (d *Deck) Push(c Card) {
	*d = append(*d, c)
}

// Top returns the top (last) card without removing it.
func (d Deck) Top() (Card, bool) {
	if len(d) == 0 {
		return Card{}, false
	}
	return d[len(d)-1], true
}
