// Package config holds the settings shared by the godb commands. Values come
// from flags, then GODB_* environment variables, then defaults. An optional
// .env file is loaded into the environment first.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
)

const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
)

type Config struct {
	Storage  string `name:"storage" enum:"memory,sqlite" default:"memory" env:"GODB_STORAGE" help:"Storage backend (${enum})"`
	DataPath string `name:"data" default:"godb.sqlite" env:"GODB_DATA" type:"path" help:"Database file for the sqlite backend"`
	LogLevel string `name:"log-level" enum:"debug,info,warn,error" default:"info" env:"GODB_LOG_LEVEL" help:"Log level (${enum})"`
	Dev      bool   `name:"dev" env:"GODB_DEV" help:"Human-readable development logging"`
}

// Validate is called by kong after parsing.
func (c *Config) Validate() error {
	if c.Storage == StorageSQLite && c.DataPath == "" {
		return fmt.Errorf("--data is required for the %s backend", StorageSQLite)
	}
	return nil
}

// LoadEnv loads the given .env files into the process environment without
// overriding variables that are already set. Missing files are skipped.
func LoadEnv(paths ...string) error {
	for _, p := range paths {
		err := godotenv.Load(p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Parse parses args into target, which is a Config or a command struct
// embedding one.
func Parse(target any, args []string, options ...kong.Option) (*kong.Context, error) {
	parser, err := kong.New(target, append([]kong.Option{kong.Name("godb")}, options...)...)
	if err != nil {
		return nil, err
	}
	return parser.Parse(args)
}
