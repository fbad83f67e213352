package util

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

var adjectives = []string{
	"Fast", "Slow", "Quick", "Lucky", "Bluffing", "Weaving", "Patient", "Gracious", "Stone-faced", "Happy", "Funny",
	"Red", "Blue", "Green", "Orange", "Purple", "Fuzzy", "Smiling", "Tall", "Grand", "Ultimate", "Prime",
	"Alpha", "Growling", "Sly", "Swimming", "Flying", "Jumping", "Running", "Charging", "Shooting", "Bouncing",
	"Folding", "Raising",
}

var animals = []string{
	"Dog", "Cat", "Mouse", "Alligator", "Crocodile", "Shark", "Hippo", "Giraffe", "Antelope", "Lion", "Tiger",
	"Bear", "Muskrat", "Otter", "Dolphin", "Porcupine", "Gerbil", "Hedgehog", "Snake", "Lizard", "Chipmunk",
	"Bird", "Dinosaur", "Okapi", "Eagle", "Mandrill", "Bonobo", "Wolf", "Fox", "Armadillo", "Rhino", "Anteater",
	"Reindeer", "Deer", "Panda",
}

var (
	random   = rand.New(rand.NewSource(time.Now().UnixNano())) // nolint:gosec
	randomMu sync.Mutex
)

// GetRandomName returns a random display name by combining an adjective with an animal
// It is used for players whose identity carries no name
func GetRandomName() string {
	randomMu.Lock()
	defer randomMu.Unlock()

	adjectivesIndex := random.Intn(len(adjectives))
	animalsIndex := random.Intn(len(animals))

	return fmt.Sprintf("%s %s", adjectives[adjectivesIndex], animals[animalsIndex])
}
