package holdem

import (
	"fmt"
	"strings"
)

// Action is something a player does on their turn
// The set of actions is closed: Fold, Check, Call and Raise
type Action interface {
	fmt.Stringer
	isAction()
}

// Fold gives up the hand
type Fold struct{}

// Check passes the action without betting
type Check struct{}

// Call matches the current bet, or goes all-in for less
type Call struct{}

// Raise sets the player's total bet for the street to Amount
type Raise struct {
	Amount int `json:"amount"`
}

func (Fold) isAction()  {}
func (Check) isAction() {}
func (Call) isAction()  {}
func (Raise) isAction() {}

func (Fold) String() string  { return "fold" }
func (Check) String() string { return "check" }
func (Call) String() string  { return "call" }
func (r Raise) String() string {
	return fmt.Sprintf("raise to %d", r.Amount)
}

// ActionFromString returns the action named by name
// amount is only used by raise
func ActionFromString(name string, amount int) (Action, error) {
	switch strings.ToLower(name) {
	case "fold":
		return Fold{}, nil
	case "check":
		return Check{}, nil
	case "call":
		return Call{}, nil
	case "raise":
		return Raise{Amount: amount}, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownAction, name)
}
