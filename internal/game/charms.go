package game

import "math/rand"

// Charm is a persistent run-long rule purchased in the shop. Charms occupy
// limited slots (GameState.MaxCharms) and can be sold back for half price.
type Charm int

const (
	CharmGoldenSheep Charm = iota
	CharmFranticHerding
	CharmBlueChance
	CharmRedChance
	CharmMitosis
	CharmWellTrained
	CharmEvolution
	CharmRoseGold
	CharmCloning
	CharmBlackWool
	charmCount
)

func (c Charm) String() string { return c.Name() }

func (c Charm) Name() string {
	switch c {
	case CharmGoldenSheep:
		return "Golden Sheep"
	case CharmFranticHerding:
		return "Frantic Herding"
	case CharmBlueChance:
		return "Blue Chance"
	case CharmRedChance:
		return "Red Chance"
	case CharmMitosis:
		return "Mitosis"
	case CharmWellTrained:
		return "Well Trained"
	case CharmEvolution:
		return "Ewe-volution"
	case CharmRoseGold:
		return "Rose Gold"
	case CharmCloning:
		return "Cloning Vat"
	case CharmBlackWool:
		return "Black Wool"
	default:
		return "unknown"
	}
}

func (c Charm) Description() string {
	switch c {
	case CharmGoldenSheep:
		return "Spawn a golden sheep that gives 1 money when counted."
	case CharmFranticHerding:
		return "Halve the timer but spawn double the sheep."
	case CharmBlueChance:
		return "Each white sheep has a 10% chance to spawn blue."
	case CharmRedChance:
		return "Each white sheep has a 10% chance to spawn red."
	case CharmMitosis:
		return "When a black sheep is counted, spawn two new black sheep at random locations."
	case CharmWellTrained:
		return "Sheep come towards you when you bark."
	case CharmEvolution:
		return "White sheep score nothing, but every 5th counted this run turns one blue forever."
	case CharmRoseGold:
		return "The first red sheep counted each round turns gold instead of leaving."
	case CharmCloning:
		return "The first sheep counted each round joins your flock permanently."
	case CharmBlackWool:
		return "Each white sheep has a 20% chance to spawn black."
	default:
		return ""
	}
}

func (c Charm) Price() int {
	switch c {
	case CharmGoldenSheep:
		return 5
	case CharmFranticHerding:
		return 4
	case CharmBlueChance:
		return 3
	case CharmRedChance:
		return 3
	case CharmMitosis:
		return 5
	case CharmWellTrained:
		return 4
	case CharmEvolution:
		return 5
	case CharmRoseGold:
		return 4
	case CharmCloning:
		return 5
	case CharmBlackWool:
		return 3
	default:
		return 0
	}
}

// SellRefund is the money returned when a charm is sold back.
func (c Charm) SellRefund() int { return c.Price() / 2 }

// Boost is a one-shot shop purchase applied immediately to the run state.
type Boost int

const (
	BoostBlueSheep Boost = iota
	BoostRedSheep
	BoostBarkPower
	BoostDreamCatcher
	boostCount
)

func (b Boost) String() string { return b.Name() }

func (b Boost) Name() string {
	switch b {
	case BoostBlueSheep:
		return "Blue Sheep"
	case BoostRedSheep:
		return "Red Sheep"
	case BoostBarkPower:
		return "Bark Power"
	case BoostDreamCatcher:
		return "Dream Catcher"
	default:
		return "unknown"
	}
}

func (b Boost) Description() string {
	switch b {
	case BoostBlueSheep:
		return "Apply blue wool to one of your sheep (5 points)."
	case BoostRedSheep:
		return "Apply red wool to one of your sheep (points x1.5)."
	case BoostBarkPower:
		return "Your bark affects sheep in a wider area."
	case BoostDreamCatcher:
		return "1 in 4 chance to increase the maximum number of charms."
	default:
		return ""
	}
}

func (b Boost) Price() int {
	switch b {
	case BoostBlueSheep:
		return 2
	case BoostRedSheep:
		return 2
	case BoostBarkPower:
		return 3
	case BoostDreamCatcher:
		return 3
	default:
		return 0
	}
}

// apply performs the boost's one-shot effect on the run state.
func (b Boost) apply(st *GameState, rng *rand.Rand) {
	switch b {
	case BoostBlueSheep:
		st.Roster[ColorBlue]++
	case BoostRedSheep:
		st.Roster[ColorRed]++
	case BoostBarkPower:
		st.BarkRadiusBonus += 2.0
	case BoostDreamCatcher:
		if rng.Intn(4) == 0 {
			st.MaxCharms++
		}
	}
}

// ShopItem is either a Boost or a Charm on a shop shelf.
type ShopItem interface {
	Name() string
	Description() string
	Price() int
	KindLabel() string
}

func (c Charm) KindLabel() string { return "Charm" }
func (b Boost) KindLabel() string { return "Boost" }

// randomShopItem draws one item uniformly from the full pool.
func randomShopItem(rng *rand.Rand) ShopItem {
	n := int(boostCount) + int(charmCount)
	idx := rng.Intn(n)
	if idx < int(boostCount) {
		return Boost(idx)
	}
	return Charm(idx - int(boostCount))
}

// randomUniqueItems draws up to count distinct items, skipping charms the
// player already owns. Bounded attempts keep it total when the pool is
// nearly exhausted.
func randomUniqueItems(rng *rand.Rand, count int, owned []Charm) []ShopItem {
	items := make([]ShopItem, 0, count)
	for attempts := 0; len(items) < count && attempts < 100; attempts++ {
		next := randomShopItem(rng)
		if c, isCharm := next.(Charm); isCharm && charmOwned(owned, c) {
			continue
		}
		if itemListed(items, next) {
			continue
		}
		items = append(items, next)
	}
	return items
}

func charmOwned(owned []Charm, c Charm) bool {
	for _, o := range owned {
		if o == c {
			return true
		}
	}
	return false
}

func itemListed(items []ShopItem, item ShopItem) bool {
	for _, it := range items {
		if it == item {
			return true
		}
	}
	return false
}
