package game

// Player is a seat in the match: a name, the hand it holds, and the chooser
// that answers its move requests. Players never touch the board or boneyard
// directly; the match performs every mutation on their behalf.
type Player struct {
	seat    int
	name    string
	hand    *Hand
	chooser Chooser
}

func newPlayer(seat int, name string, chooser Chooser) *Player {
	return &Player{
		seat:    seat,
		name:    name,
		hand:    NewHand(),
		chooser: chooser,
	}
}

// Seat returns the player's position in the fixed turn rotation.
func (p *Player) Seat() int {
	return p.seat
}

// Name returns the player's display name.
func (p *Player) Name() string {
	return p.name
}

// Hand returns the player's hand.
func (p *Player) Hand() *Hand {
	return p.hand
}

func (p *Player) String() string {
	return p.name
}

// Seat declares one player before the deal: a display name and the chooser
// that will answer its move requests. A nil Chooser seats an automatic
// player driven by the match RNG.
type Seat struct {
	Name    string
	Chooser Chooser
}
