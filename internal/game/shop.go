package game

import "math/rand"

// shopOfferCount is how many shelves the shop presents per visit.
const shopOfferCount = 3

// rerollCost is the money price of refreshing the shelves.
const rerollCost = 1

// ShopOffers holds the current shelves. A nil slot was already bought.
type ShopOffers struct {
	Items []ShopItem
}

// Reroll refreshes the shelves with unique items the player does not
// already own.
func (so *ShopOffers) Reroll(rng *rand.Rand, owned []Charm) {
	so.Items = randomUniqueItems(rng, shopOfferCount, owned)
}

// RerollPaid charges the reroll cost and refreshes the shelves. Returns
// false (and changes nothing) when the player cannot afford it.
func (so *ShopOffers) RerollPaid(rng *rand.Rand, st *GameState) bool {
	if st.Money < rerollCost {
		return false
	}
	st.Money -= rerollCost
	so.Reroll(rng, st.Charms)
	return true
}

// Buy purchases the item in the given slot. It fails (no-op) when the slot
// is empty, the player cannot afford it, or a charm would exceed capacity.
func (so *ShopOffers) Buy(slot int, st *GameState, rng *rand.Rand) bool {
	if slot < 0 || slot >= len(so.Items) || so.Items[slot] == nil {
		return false
	}
	item := so.Items[slot]
	if st.Money < item.Price() {
		return false
	}
	switch it := item.(type) {
	case Charm:
		if st.CharmsFull() {
			return false
		}
		st.Money -= it.Price()
		st.Charms = append(st.Charms, it)
	case Boost:
		st.Money -= it.Price()
		it.apply(st, rng)
	default:
		return false
	}
	so.Items[slot] = nil
	return true
}

// SellCharm removes the charm at idx from the player's slots and refunds
// half its price (rounded down).
func SellCharm(idx int, st *GameState) bool {
	if idx < 0 || idx >= len(st.Charms) {
		return false
	}
	c := st.Charms[idx]
	st.Charms = append(st.Charms[:idx], st.Charms[idx+1:]...)
	st.Money += c.SellRefund()
	return true
}
