package holdem

// ValidationError is an error that is safe to show to a player
// A rejected action never changes the table
type ValidationError string

func (v ValidationError) Error() string {
	return string(v)
}

// validation errors
const (
	ErrNotYourTurn      = ValidationError("it is not your turn")
	ErrNoHandInProgress = ValidationError("there is no hand in progress")
	ErrPlayerNotSeated  = ValidationError("player is not seated at the table")
	ErrTableFull        = ValidationError("the table is full")
	ErrInvalidBuyIn     = ValidationError("buy-in must be greater than zero")
	ErrCannotCheck      = ValidationError("you cannot check when facing a bet")
	ErrInvalidRaise     = ValidationError("raise must exceed the current bet and be covered by your stack")
	ErrUnknownAction    = ValidationError("unknown action")
)
