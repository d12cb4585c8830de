package deck

import (
	"math/rand"
	"sort"
)

// Suit is one of the four French suits.
type Suit string

const (
	Clubs    Suit = "clubs"
	Diamonds Suit = "diamonds"
	Hearts   Suit = "hearts"
	Spades   Suit = "spades"
)

// Suits in the deterministic build order.
var Suits = []Suit{Clubs, Diamonds, Hearts, Spades}

// Ranks in the deterministic build order. "10" is spelled out rather than
// "T" because card ids travel in query strings and JSON.
var Ranks = []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}

var suitCode = map[Suit]string{Clubs: "C", Diamonds: "D", Hearts: "H", Spades: "S"}

/*
 * 'Card' is one physical card of the deck. ID is the rank followed by the
 * suit initial ("KH", "10C") and is the identity persisted in action_cards.
 * Cards are immutable once the deck is built.
 */
type Card struct {
	ID   string `json:"id"`
	Rank string `json:"rank"`
	Suit Suit   `json:"suit"`
}

// BuildDeck enumerates every (suit, rank) pair exactly once, in a fixed
// order. Callers shuffle the result themselves.
func BuildDeck() []Card {
	cards := make([]Card, 0, len(Suits)*len(Ranks))
	for _, s := range Suits {
		for _, r := range Ranks {
			cards = append(cards, Card{ID: r + suitCode[s], Rank: r, Suit: s})
		}
	}
	return cards
}

// Shuffle returns a uniformly random permutation of cards, leaving the
// input untouched.
func Shuffle(cards []Card, rng *rand.Rand) []Card {
	shuffled := make([]Card, len(cards))
	copy(shuffled, cards)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}

// Deal partitions shuffled cards into playerCount groups of
// floor(len/playerCount) cards each, keyed by 1-based seat order.
// Remainder cards are left undealt.
func Deal(cards []Card, playerCount int) map[int][]Card {
	hands := make(map[int][]Card, playerCount)
	size := len(cards) / playerCount
	for seat := 1; seat <= playerCount; seat++ {
		start := (seat - 1) * size
		hands[seat] = append([]Card(nil), cards[start:start+size]...)
	}
	return hands
}

// ValidRank reports whether r is one of the thirteen ranks.
func ValidRank(r string) bool {
	for _, rank := range Ranks {
		if rank == r {
			return true
		}
	}
	return false
}

// ByID resolves a card id against the full deck. The deck is built once at
// package init; lookups never mutate it.
var byID = func() map[string]Card {
	m := make(map[string]Card, len(Suits)*len(Ranks))
	for _, c := range BuildDeck() {
		m[c.ID] = c
	}
	return m
}()

// ByID returns the card with the given id, if it exists.
func ByID(id string) (Card, bool) {
	c, ok := byID[id]
	return c, ok
}

// OfRank returns the deck's cards of the given rank in deterministic suit
// order. Used to sample the "said" cards of a declaration.
func OfRank(rank string) []Card {
	cards := make([]Card, 0, 4)
	for _, s := range Suits {
		if c, ok := byID[rank+suitCode[s]]; ok {
			cards = append(cards, c)
		}
	}
	return cards
}

// SortBySuit orders card ids by suit then rank for stable display of hands.
func SortBySuit(ids []string) {
	pos := func(id string) (int, int) {
		c, ok := byID[id]
		if !ok {
			return len(Suits), 0
		}
		si, ri := 0, 0
		for i, s := range Suits {
			if s == c.Suit {
				si = i
			}
		}
		for i, r := range Ranks {
			if r == c.Rank {
				ri = i
			}
		}
		return si, ri
	}
	sort.SliceStable(ids, func(i, j int) bool {
		si, ri := pos(ids[i])
		sj, rj := pos(ids[j])
		if si != sj {
			return si < sj
		}
		return ri < rj
	})
}
