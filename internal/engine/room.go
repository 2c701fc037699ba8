package engine

// Room is a seating container: players with assigned seat positions. It is
// used only to compute seat availability and holds no betting state.
type Room struct {
	Players []Player `json:"players"`
}

// FirstAvailableSeatPosition returns the smallest seat index not occupied
// by any player in the room. Scanning 0..len(players) inclusive always
// terminates with an unused value, since the range exceeds the occupant
// count by one.
func FirstAvailableSeatPosition(r Room) int {
	taken := make(map[int]bool, len(r.Players))
	for i := range r.Players {
		if r.Players[i].SeatPosition != nil {
			taken[*r.Players[i].SeatPosition] = true
		}
	}
	for seat := 0; seat <= len(r.Players); seat++ {
		if !taken[seat] {
			return seat
		}
	}
	return len(r.Players)
}
