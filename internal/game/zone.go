package game

import (
	"fmt"
	"math/rand"
)

// Zone identifies one of the per-player card zones. Zones are enum-indexed so
// an illegal zone name is unrepresentable.
type Zone int

const (
	ZoneDeck Zone = iota
	ZoneHand
	ZoneLeaders
	ZonePlayArea
	ZoneTrashFaceUp
	ZoneTrashFaceDown
	ZoneTacticsDeck
	ZoneTacticsArea

	zoneCount
)

var zoneNames = map[Zone]string{
	ZoneDeck:          "DECK",
	ZoneHand:          "HAND",
	ZoneLeaders:       "LEADERS",
	ZonePlayArea:      "PLAY_AREA",
	ZoneTrashFaceUp:   "TRASH_FACE_UP",
	ZoneTrashFaceDown: "TRASH_FACE_DOWN",
	ZoneTacticsDeck:   "TACTICS_DECK",
	ZoneTacticsArea:   "TACTICS_AREA",
}

func (z Zone) String() string {
	if name, ok := zoneNames[z]; ok {
		return name
	}
	return fmt.Sprintf("ZONE_%d", int(z))
}

// zone returns the slice backing z. Callers must not mutate it.
func (p *playerState) zone(z Zone) []*CardInstance {
	return p.zones[z]
}

// findInZone returns the index of cardID inside z, or -1.
func (p *playerState) findInZone(z Zone, cardID string) int {
	for i, c := range p.zones[z] {
		if c.UniqueID == cardID {
			return i
		}
	}
	return -1
}

// moveCard transfers a card between two zones atomically. The card must
// currently be owned by from; destination semantics are applied on arrival
// (trash zones force face orientation, the tactics slot holds one card).
func (p *playerState) moveCard(cardID string, from, to Zone) error {
	idx := p.findInZone(from, cardID)
	if idx < 0 {
		return fmt.Errorf("%w: card %s not in %s", ErrCardNotInSourceZone, cardID, from)
	}
	if to == ZoneTacticsArea && len(p.zones[ZoneTacticsArea]) > 0 {
		return ErrTacticsAreaOccupied
	}

	card := p.zones[from][idx]
	p.zones[from] = append(p.zones[from][:idx], p.zones[from][idx+1:]...)

	switch to {
	case ZoneTrashFaceUp:
		card.IsFaceDown = false
	case ZoneTrashFaceDown:
		card.IsFaceDown = true
	}

	p.zones[to] = append(p.zones[to], card)
	return nil
}

// draw moves up to amount cards from the top of the deck (the end of the
// ordered slice) into the hand and returns how many actually moved. Running
// out of cards is not an error; the deck is simply exhausted.
func (p *playerState) draw(amount int) int {
	drawn := 0
	for i := 0; i < amount; i++ {
		deck := p.zones[ZoneDeck]
		if len(deck) == 0 {
			break
		}
		card := deck[len(deck)-1]
		p.zones[ZoneDeck] = deck[:len(deck)-1]
		p.zones[ZoneHand] = append(p.zones[ZoneHand], card)
		drawn++
	}
	return drawn
}

// shuffleZone applies a Fisher-Yates shuffle to the given zone.
func (p *playerState) shuffleZone(z Zone, rng *rand.Rand) {
	cards := p.zones[z]
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}
