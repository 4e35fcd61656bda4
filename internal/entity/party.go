package entity

// Party is whoever is allowed to act on the board.
type Party int

const (
	PartyNone Party = iota
	PartyHuman
	PartyCPU
)

func (that Party) String() string {
	switch that {
	case PartyHuman:
		return "human"
	case PartyCPU:
		return "cpu"
	default:
		return "none"
	}
}
