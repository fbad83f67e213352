package main

import (
	"flag"
	"os"

	"gopkg.in/yaml.v2"

	"holdem-server/internal/config"
	"holdem-server/pkg/token"
)

var withSecret = flag.Bool("secret", true, "fill jwt.secret with a random value")

func main() {
	flag.Parse()

	cfg := config.DefaultConfig()
	if *withSecret {
		secret, err := token.Generate(48)
		if err != nil {
			panic(err)
		}

		cfg.JWT.Secret = secret
	}

	if err := yaml.NewEncoder(os.Stdout).Encode(cfg); err != nil {
		panic(err)
	}
}
