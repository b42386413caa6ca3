package config

// This file contains the environment-derived configuration that is read
// once at startup and passed explicitly to every operation.

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Environment variable names
const (
	EnvTest     = "test"
	EnvRunID    = "run_id"
	EnvBranch   = "branch"
	EnvURL      = "url"
	EnvLocation = "location"
	EnvContact  = "contact"
	EnvIMNumber = "imnumber"
)

// Config holds everything the reporter takes from its environment
type Config struct {
	Test            string
	RunID           string
	Branch          string
	URL             string
	Location        string
	MaintainerEmail string
	IMNumber        string
}

// FromEnv builds a Config using lookup to resolve variables. Unset
// variables become empty strings.
func FromEnv(lookup func(string) string) Config {
	return Config{
		Test:            lookup(EnvTest),
		RunID:           lookup(EnvRunID),
		Branch:          lookup(EnvBranch),
		URL:             lookup(EnvURL),
		Location:        lookup(EnvLocation),
		MaintainerEmail: lookup(EnvContact),
		IMNumber:        lookup(EnvIMNumber),
	}
}

// Load reads the process environment, after applying envFile if one is
// given. Variables already present in the environment are not overridden.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return Config{}, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}
	return FromEnv(os.Getenv), nil
}
