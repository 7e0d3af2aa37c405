/*
Package rooming converts individual room preferences into room-type counts.

PURPOSE:
  Hotel bookings are placed by room type, but tourists state a free-text
  preference. This package classifies preferences into double/twin/single
  and computes the room counts a hotel is actually asked for. The
  arithmetic is exact — it directly drives booking quantities.

CLASSIFICATION:
  A fixed synonym set per type, case-insensitive substring match.
  Unrecognized or blank preferences fall back to single: an unplaceable
  guest gets their own room rather than a guessed roommate.

PAIRING:
  doubleRooms = floor(doubleCount / 2)
  twinRooms   = ceil(twinCount / 2)
  singleRooms = singleCount + doubleCount mod 2

  The odd person out of the double-preference group is assigned a single
  room rather than left unhoused, while an odd twin-preference guest
  still gets a twin (the room is bookable half-empty).
*/
package rooming

import "strings"

// RoomCounts is the per-type result consumed by hotel booking.
type RoomCounts struct {
	Double int
	Twin   int
	Single int
}

// Preference is the classified room category of one tourist.
type Preference int

const (
	PrefSingle Preference = iota
	PrefDouble
	PrefTwin
)

var doubleSynonyms = []string{"double", "dbl", "dwl"}
var twinSynonyms = []string{"twin", "twn"}

// Classify maps a free-text room preference to its category.
func Classify(label string) Preference {
	lower := strings.ToLower(strings.TrimSpace(label))
	for _, s := range doubleSynonyms {
		if strings.Contains(lower, s) {
			return PrefDouble
		}
	}
	for _, s := range twinSynonyms {
		if strings.Contains(lower, s) {
			return PrefTwin
		}
	}
	return PrefSingle
}

// Breakdown computes room counts from a list of free-text preferences.
func Breakdown(preferences []string) RoomCounts {
	var doubles, twins, singles int
	for _, p := range preferences {
		switch Classify(p) {
		case PrefDouble:
			doubles++
		case PrefTwin:
			twins++
		default:
			singles++
		}
	}

	return RoomCounts{
		Double: doubles / 2,
		Twin:   (twins + 1) / 2,
		Single: singles + doubles%2,
	}
}
