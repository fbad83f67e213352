package holdem

import (
	"errors"
	"time"
)

// Options configures a table
type Options struct {
	MaxSeats      int           `yaml:"maxSeats"`
	SmallBlind    int           `yaml:"smallBlind"`
	BigBlind      int           `yaml:"bigBlind"`
	EarlyEndDelay time.Duration `yaml:"earlyEndDelay"`
	ShowdownDelay time.Duration `yaml:"showdownDelay"`
}

// DefaultOptions returns the default table options
func DefaultOptions() Options {
	return Options{
		MaxSeats:      10,
		SmallBlind:    10,
		BigBlind:      20,
		EarlyEndDelay: 5 * time.Second,
		ShowdownDelay: 7 * time.Second,
	}
}

// Validate returns an error if the options cannot run a table
func (opts Options) Validate() error {
	if opts.MaxSeats < 2 || opts.MaxSeats > 10 {
		return errors.New("max seats must be between 2 and 10")
	}

	if opts.SmallBlind <= 0 {
		return errors.New("small blind must be greater than zero")
	}

	if opts.BigBlind < opts.SmallBlind {
		return errors.New("big blind must be at least the small blind")
	}

	if opts.EarlyEndDelay < 0 || opts.ShowdownDelay < 0 {
		return errors.New("delays cannot be negative")
	}

	return nil
}
