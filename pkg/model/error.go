package model

// UserError is an error that is safe to show to the user
type UserError string

func (u UserError) Error() string {
	return string(u)
}
