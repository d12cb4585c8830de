package deck_test

import (
	"math/rand"
	"testing"

	"Bluff/deck"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDeck(t *testing.T) {
	cards := deck.BuildDeck()
	require.Len(t, cards, 52)

	seen := make(map[string]bool)
	for _, c := range cards {
		assert.False(t, seen[c.ID], "duplicate card %s", c.ID)
		seen[c.ID] = true
		assert.True(t, deck.ValidRank(c.Rank))
	}

	// Deterministic enumeration
	again := deck.BuildDeck()
	assert.Equal(t, cards, again)
}

func TestShuffleIsPermutation(t *testing.T) {
	cards := deck.BuildDeck()
	shuffled := deck.Shuffle(cards, rand.New(rand.NewSource(7)))

	require.Len(t, shuffled, len(cards))
	seen := make(map[string]bool)
	for _, c := range shuffled {
		seen[c.ID] = true
	}
	assert.Len(t, seen, 52)

	// Input untouched
	assert.Equal(t, deck.BuildDeck(), cards)
}

func TestDealFloorDivision(t *testing.T) {
	cards := deck.Shuffle(deck.BuildDeck(), rand.New(rand.NewSource(1)))

	t.Run("three players leave one card undealt", func(t *testing.T) {
		hands := deck.Deal(cards, 3)
		require.Len(t, hands, 3)
		total := 0
		seen := make(map[string]bool)
		for seat := 1; seat <= 3; seat++ {
			assert.Len(t, hands[seat], 17)
			for _, c := range hands[seat] {
				assert.False(t, seen[c.ID], "card %s dealt twice", c.ID)
				seen[c.ID] = true
			}
			total += len(hands[seat])
		}
		assert.Equal(t, 51, total)
	})

	t.Run("two players split the whole deck", func(t *testing.T) {
		hands := deck.Deal(cards, 2)
		assert.Len(t, hands[1], 26)
		assert.Len(t, hands[2], 26)
	})
}

func TestValidRank(t *testing.T) {
	for _, r := range []string{"2", "10", "J", "Q", "K", "A"} {
		assert.True(t, deck.ValidRank(r), r)
	}
	for _, r := range []string{"", "1", "11", "T", "joker", "k"} {
		assert.False(t, deck.ValidRank(r), r)
	}
}

func TestByID(t *testing.T) {
	c, ok := deck.ByID("10C")
	require.True(t, ok)
	assert.Equal(t, "10", c.Rank)
	assert.Equal(t, deck.Clubs, c.Suit)

	_, ok = deck.ByID("XX")
	assert.False(t, ok)
}

func TestOfRank(t *testing.T) {
	kings := deck.OfRank("K")
	require.Len(t, kings, 4)
	for _, c := range kings {
		assert.Equal(t, "K", c.Rank)
	}
	assert.Equal(t, []deck.Suit{deck.Clubs, deck.Diamonds, deck.Hearts, deck.Spades},
		[]deck.Suit{kings[0].Suit, kings[1].Suit, kings[2].Suit, kings[3].Suit})

	assert.Empty(t, deck.OfRank("joker"))
}

func TestSortBySuit(t *testing.T) {
	ids := []string{"AS", "2C", "KH", "3C", "QD"}
	deck.SortBySuit(ids)
	assert.Equal(t, []string{"2C", "3C", "QD", "KH", "AS"}, ids)
}
