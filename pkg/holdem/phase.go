package holdem

import "encoding/json"

// Phase is the stage of the current hand
type Phase int

// constants for Phase
const (
	PhasePreDeal Phase = iota
	PhasePreFlop
	PhaseFlop
	PhaseTurn
	PhaseRiver
	PhaseShowdown
)

func (p Phase) String() string {
	switch p {
	case PhasePreDeal:
		return "pre-deal"
	case PhasePreFlop:
		return "pre-flop"
	case PhaseFlop:
		return "flop"
	case PhaseTurn:
		return "turn"
	case PhaseRiver:
		return "river"
	case PhaseShowdown:
		return "showdown"
	}

	return ""
}

// MarshalJSON encodes JSON
func (p Phase) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}{
		ID:   int(p),
		Name: p.String(),
	})
}

// isBetting returns true while a hand is being played
func (p Phase) isBetting() bool {
	return p >= PhasePreFlop && p <= PhaseRiver
}
