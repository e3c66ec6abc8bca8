package card

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewFullComposition checks the canonical 108-card census: per
// color one zero, two of each other number and two of each colored
// action, plus four of each wild.
func TestNewFullComposition(t *testing.T) {
	d := NewFull()
	require.Len(t, d, 108)

	counts := make(map[Card]int)
	for _, c := range d {
		counts[c]++
	}

	for _, col := range []Color{Red, Green, Yellow, Blue} {
		assert.Equal(t, 1, counts[Number(0, col)], "%v 0", col)
		for n := 1; n <= 9; n++ {
			assert.Equal(t, 2, counts[Number(n, col)], "%v %d", col, n)
		}
		assert.Equal(t, 2, counts[Skip(col)])
		assert.Equal(t, 2, counts[Reverse(col)])
		assert.Equal(t, 2, counts[PlusTwo(col)])
	}
	assert.Equal(t, 4, counts[Wild()])
	assert.Equal(t, 4, counts[PlusFour()])
}

func TestPopPushTop(t *testing.T) {
	d := Deck{}
	_, ok := d.Pop()
	assert.False(t, ok, "empty deck pops nothing")
	_, ok = d.Top()
	assert.False(t, ok)

	d.Push(Number(1, Red))
	d.Push(Number(2, Green))

	top, ok := d.Top()
	require.True(t, ok)
	assert.Equal(t, Number(2, Green), top, "top is the last pushed card")
	assert.Len(t, d, 2, "Top does not remove")

	c, ok := d.Pop()
	require.True(t, ok)
	assert.Equal(t, Number(2, Green), c)
	assert.Len(t, d, 1)
}

func TestSort(t *testing.T) {
	d := Deck{Wild(), Number(3, Blue), Skip(Red), Number(7, Red), Number(3, Red)}
	d.Sort()

	assert.Equal(t, Deck{
		Number(3, Red), Number(7, Red), Skip(Red), Number(3, Blue), Wild(),
	}, d)
	assert.True(t, sort.SliceIsSorted(d, func(i, j int) bool { return d[i].Less(d[j]) }))
}

func TestShuffleKeepsCards(t *testing.T) {
	d := NewFull()
	before := make(map[Card]int)
	for _, c := range d {
		before[c]++
	}
	d.Shuffle()
	after := make(map[Card]int)
	for _, c := range d {
		after[c]++
	}
	assert.Equal(t, before, after)
}
