package gconf

import (
	"chessbot/src/base"
	"chessbot/src/view"
	"encoding/json"
	"fmt"
	"os"
)

const DefaultFile = "chessbot.json"

type Config struct {
	Theme      string   `json:"theme"`       // light/dark
	EnginePath string   `json:"engine_path"` // UCI executable
	EngineArgs []string `json:"engine_args"`
	AssetsDir  string   `json:"assets_dir"` // piece images
	FontPath   string   `json:"font_path"`  // ttf/otf, empty = built-in face
	WindowW    int      `json:"window_w"`
	WindowH    int      `json:"window_h"`
	Difficulty int      `json:"difficulty"` // 1..50
	Debug      bool     `json:"debug"`      // true/false

	file string
}

func defaultConfig() Config {
	return Config{
		Theme:      "light",
		EnginePath: "stockfish",
		AssetsDir:  "assets/images",
		FontPath:   "",
		WindowW:    760,
		WindowH:    640,
		Difficulty: base.DefaultDifficulty,
		Debug:      false,
	}
}

// NewGUIConfig reads file (DefaultFile when empty). A missing file yields
// the defaults.
func NewGUIConfig(file string) (*Config, error) {
	if file == "" {
		file = DefaultFile
	}

	_, err := os.Stat(file)
	if os.IsNotExist(err) {
		def := defaultConfig()
		def.file = file
		return &def, nil
	} else if err != nil {
		return nil, err
	}

	conf, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer conf.Close()

	// absent keys keep their defaults
	c := defaultConfig()
	dec := json.NewDecoder(conf)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("error decode config %s: %w", file, err)
	}
	correctableConfig(&c)
	c.file = file

	return &c, nil
}

func (c *Config) Save() error {
	file := c.file
	if file == "" {
		file = DefaultFile
	}
	jsonData, err := json.MarshalIndent(c, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(file, jsonData, 0644)
}

// SaveDifficulty stores d in file and leaves the other settings as they are on
// disk.
func SaveDifficulty(file string, d int) error {
	c, err := NewGUIConfig(file)
	if err != nil {
		return err
	}
	c.Difficulty = base.ClampDifficulty(d)
	return c.Save()
}

func correctableConfig(c *Config) {
	def := defaultConfig()
	if c.Theme != "light" && c.Theme != "dark" {
		c.Theme = def.Theme
	}
	if c.EnginePath == "" {
		c.EnginePath = def.EnginePath
		c.EngineArgs = nil
	}
	if c.AssetsDir == "" {
		c.AssetsDir = def.AssetsDir
	}
	if c.WindowW < view.MinWindowW || c.WindowH < view.MinWindowH {
		c.WindowW = def.WindowW
		c.WindowH = def.WindowH
	}
	c.Difficulty = base.ClampDifficulty(c.Difficulty)
}
