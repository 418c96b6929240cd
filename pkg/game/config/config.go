// Package config loads generator settings from the environment, an
// optional .env file, and command-line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variable names
const (
	EnvSeed            = "DUNGEON_SEED"
	EnvSpaces          = "DUNGEON_SPACES"
	EnvKeys            = "DUNGEON_KEYS"
	EnvWidth           = "DUNGEON_WIDTH"
	EnvHeight          = "DUNGEON_HEIGHT"
	EnvShape           = "DUNGEON_SHAPE"
	EnvDump            = "DUNGEON_DUMP"
	EnvMaxRetries      = "DUNGEON_MAX_RETRIES"
	EnvLanguage        = "DUNGEON_LANG"
	EnvColor           = "DUNGEON_COLOR"
	EnvRequireSolvable = "DUNGEON_REQUIRE_SOLVABLE"
)

// Config holds everything the CLI needs to build a dungeon
type Config struct {
	// Seed for the generator. 0 means derive one from the clock.
	Seed int64

	Spaces int
	Keys   int
	Width  int
	Height int

	// ShapeFile, when set, replaces the Width×Height rectangle
	ShapeFile string
	// DumpPath, when set, receives a debug dump of the dungeon
	DumpPath string

	MaxRetries      int
	Language        string
	Color           bool
	RequireSolvable bool
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Spaces:     25,
		Keys:       3,
		Width:      9,
		Height:     9,
		MaxRetries: 20,
		Language:   "en_GB",
		Color:      true,
	}
}

// Load starts from Default, applies an optional .env file (a missing
// file is not an error) and then DUNGEON_* environment variables.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}
	return FromEnv()
}

// FromEnv applies DUNGEON_* environment variables to Default
func FromEnv() (Config, error) {
	c := Default()
	var err error

	if c.Seed, err = envInt64(EnvSeed, c.Seed); err != nil {
		return Config{}, err
	}
	for _, v := range []struct {
		name string
		dst  *int
	}{
		{EnvSpaces, &c.Spaces},
		{EnvKeys, &c.Keys},
		{EnvWidth, &c.Width},
		{EnvHeight, &c.Height},
		{EnvMaxRetries, &c.MaxRetries},
	} {
		n, err := envInt64(v.name, int64(*v.dst))
		if err != nil {
			return Config{}, err
		}
		*v.dst = int(n)
	}
	if c.Color, err = envBool(EnvColor, c.Color); err != nil {
		return Config{}, err
	}
	if c.RequireSolvable, err = envBool(EnvRequireSolvable, c.RequireSolvable); err != nil {
		return Config{}, err
	}
	if v := os.Getenv(EnvShape); v != "" {
		c.ShapeFile = v
	}
	if v := os.Getenv(EnvDump); v != "" {
		c.DumpPath = v
	}
	if v := os.Getenv(EnvLanguage); v != "" {
		c.Language = v
	}
	return c, nil
}

// RegisterFlags binds c's fields to flags on fs, using the current values
// as defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.Int64Var(&c.Seed, "seed", c.Seed, "generator seed (0 = from clock)")
	fs.IntVar(&c.Spaces, "spaces", c.Spaces, "number of rooms")
	fs.IntVar(&c.Keys, "keys", c.Keys, "number of keys / locked levels")
	fs.IntVar(&c.Width, "width", c.Width, "grid width (ignored with -shape)")
	fs.IntVar(&c.Height, "height", c.Height, "grid height (ignored with -shape)")
	fs.StringVar(&c.ShapeFile, "shape", c.ShapeFile, "text mask file restricting room positions")
	fs.StringVar(&c.DumpPath, "dump", c.DumpPath, "write a debug dump to this file")
	fs.IntVar(&c.MaxRetries, "retries", c.MaxRetries, "maximum whole-run retries")
	fs.StringVar(&c.Language, "lang", c.Language, "message language")
	fs.BoolVar(&c.Color, "color", c.Color, "colored output when writing to a terminal")
	fs.BoolVar(&c.RequireSolvable, "solvable", c.RequireSolvable, "reject dungeons that cannot be completed")
}

// Validate rejects settings no generator run can satisfy
func (c Config) Validate() error {
	switch {
	case c.Spaces < 1:
		return fmt.Errorf("spaces must be at least 1, got %d", c.Spaces)
	case c.Keys < 0:
		return fmt.Errorf("keys must not be negative, got %d", c.Keys)
	case c.MaxRetries < 0:
		return fmt.Errorf("retries must not be negative, got %d", c.MaxRetries)
	case c.ShapeFile == "" && (c.Width < 1 || c.Height < 1):
		return fmt.Errorf("grid must be at least 1x1, got %dx%d", c.Width, c.Height)
	case c.ShapeFile == "" && c.Spaces > c.Width*c.Height:
		return fmt.Errorf("%d spaces do not fit in a %dx%d grid", c.Spaces, c.Width, c.Height)
	}
	return nil
}

func envInt64(name string, def int64) (int64, error) {
	v := os.Getenv(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s not an integer: %q", name, v)
	}
	return n, nil
}

func envBool(name string, def bool) (bool, error) {
	v := os.Getenv(name)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s not a truthy value: %q", name, v)
	}
	return b, nil
}
