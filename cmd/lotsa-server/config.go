package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml"
)

// UserConfig is the user-facing configuration file for lotsa-server,
// loaded from and written to a TOML file the same way the teacher's
// UserConfig is (server/conf.go): missing keys take their DefaultConfig
// value, and a file that doesn't exist yet is created with the defaults.
type UserConfig struct {
	Network struct {
		// Address is the address the HTTP/websocket server listens on.
		Address string
	}
	Sim struct {
		// TickIntervalMillis is the duration of one simulation tick.
		TickIntervalMillis int64
		// GlyphFile is the path to the text-art glyph table, created with
		// an empty table if it doesn't exist yet.
		GlyphFile string
	}
	Static struct {
		// Dir is served at "/" if non-empty; left empty disables static
		// file serving entirely.
		Dir string
	}
}

// TickInterval returns the configured tick interval as a time.Duration.
func (uc UserConfig) TickInterval() time.Duration {
	if uc.Sim.TickIntervalMillis <= 0 {
		return 0
	}
	return time.Duration(uc.Sim.TickIntervalMillis) * time.Millisecond
}

// DefaultConfig returns a UserConfig with every field set to its default
// value, mirroring the teacher's DefaultConfig.
func DefaultConfig() UserConfig {
	c := UserConfig{}
	c.Network.Address = ":8080"
	c.Sim.TickIntervalMillis = 100
	c.Sim.GlyphFile = "glyphs.yml"
	c.Static.Dir = ""
	return c
}

// LoadUserConfig reads the TOML config file at path. If the file doesn't
// exist, it's created with DefaultConfig's values and that default is
// returned, exactly as the teacher's whitelist and resource-pack files are
// seeded on first run.
func LoadUserConfig(path string) (UserConfig, error) {
	if strings.TrimSpace(path) == "" {
		return UserConfig{}, errors.New("config path must not be empty")
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			uc := DefaultConfig()
			return uc, writeUserConfig(path, uc)
		}
		return UserConfig{}, fmt.Errorf("read config: %w", err)
	}

	uc := DefaultConfig()
	if len(contents) != 0 {
		if err := toml.Unmarshal(contents, &uc); err != nil {
			return UserConfig{}, fmt.Errorf("decode config: %w", err)
		}
	}
	return uc, nil
}

func writeUserConfig(path string, uc UserConfig) error {
	encoded, err := toml.Marshal(uc)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, encoded, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
