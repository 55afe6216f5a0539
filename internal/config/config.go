// Package config loads, validates and watches the tilecols configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

// Rendering constants
const (
	NormalFPS = 60 // Target frame rate of the TUI

	// CellWidth and CellHeight are the virtual pixel size of one terminal
	// cell. Layout sizes are measured in these units so that a minimum size
	// means roughly the same on both axes.
	CellWidth  = 8
	CellHeight = 16
)

// Layout defaults
const (
	DefaultMinSize        = 48.0
	DefaultSplitRatio     = 0.37
	DefaultInitialColumns = 2
	DefaultInitialWindows = 1
	DefaultWindowContent  = "text"
	DefaultHelpURL        = "https://github.com/Gaurav-Gosain/tilecols"
)

// Content kinds a window can show.
var ContentKinds = []string{"text", "clock", "sysinfo"}

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// UserConfig is the on-disk configuration file.
type UserConfig struct {
	Layout      LayoutConfig      `toml:"layout"`
	Appearance  AppearanceConfig  `toml:"appearance"`
	Keybindings KeybindingsConfig `toml:"keybindings"`
	Menu        MenuConfig        `toml:"menu"`
}

// LayoutConfig controls the split-tree.
type LayoutConfig struct {
	MinSize           float64 `toml:"min_size" comment:"Smallest column width or window height, in virtual pixels (a cell is 8x16)"`
	SplitRatio        float64 `toml:"split_ratio" comment:"Fraction of the last column or window a new one takes"`
	CloseEmptyColumns bool    `toml:"close_empty_columns" comment:"Remove a column once its last window is closed or moved away"`
	InitialColumns    int     `toml:"initial_columns"`
	InitialWindows    int     `toml:"initial_windows" comment:"Windows created in the first column at startup"`
	WindowContent     string  `toml:"window_content" comment:"Content of new windows: text, clock or sysinfo"`
}

// AppearanceConfig controls rendering.
type AppearanceConfig struct {
	Theme         string `toml:"theme" comment:"bubbletint theme ID, empty for terminal colours"`
	ASCIIOnly     bool   `toml:"ascii_only"`
	ShowStatusBar bool   `toml:"show_status_bar"`
}

// KeybindingsConfig maps actions to keys, per section.
type KeybindingsConfig struct {
	Layout     map[string][]string `toml:"layout"`
	Navigation map[string][]string `toml:"navigation"`
	System     map[string][]string `toml:"system"`
}

// Sections returns the keybinding sections in display order.
func (k KeybindingsConfig) Sections() []map[string][]string {
	return []map[string][]string{k.Layout, k.Navigation, k.System}
}

// MenuConfig holds the extra header menu entries per level.
type MenuConfig struct {
	App    []MenuEntry `toml:"app"`
	Column []MenuEntry `toml:"column"`
	Window []MenuEntry `toml:"window"`
}

// MenuEntry is a menu item as written in the file. Exactly one of URL and
// Action is set.
type MenuEntry struct {
	Title  string `toml:"title"`
	URL    string `toml:"url,omitempty"`
	Action string `toml:"action,omitempty"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *UserConfig {
	return &UserConfig{
		Layout: LayoutConfig{
			MinSize:        DefaultMinSize,
			SplitRatio:     DefaultSplitRatio,
			InitialColumns: DefaultInitialColumns,
			InitialWindows: DefaultInitialWindows,
			WindowContent:  DefaultWindowContent,
		},
		Appearance: AppearanceConfig{
			ShowStatusBar: true,
		},
		Keybindings: KeybindingsConfig{
			Layout: map[string][]string{
				"new_column":    {"C"},
				"new_window":    {"n"},
				"close_window":  {"x"},
				"close_column":  {"X"},
				"cycle_content": {"c"},
			},
			Navigation: map[string][]string{
				"focus_next_column": {"l", "right"},
				"focus_prev_column": {"h", "left"},
				"focus_next_window": {"j", "down"},
				"focus_prev_window": {"k", "up"},
			},
			System: map[string][]string{
				"cancel_drag": {"esc"},
				"toggle_help": {"?"},
				"quit":        {"q", "ctrl+c"},
			},
		},
		Menu: MenuConfig{
			App: []MenuEntry{
				{Title: "Newcol", Action: "new_column"},
				{Title: "Help", URL: DefaultHelpURL},
			},
			Column: []MenuEntry{
				{Title: "Newwin", Action: "new_window"},
				{Title: "Delcol", Action: "close_column"},
			},
			Window: []MenuEntry{
				{Title: "Delwin", Action: "close_window"},
			},
		},
	}
}

// GetConfigPath returns the path of the configuration file.
func GetConfigPath() (string, error) {
	return xdg.ConfigFile(filepath.Join("tilecols", "config.toml"))
}

// GetLogPath returns the path of the log file.
func GetLogPath() (string, error) {
	return xdg.StateFile(filepath.Join("tilecols", "tilecols.log"))
}

// LoadUserConfig reads the configuration file, creating it with defaults if
// it does not exist yet.
func LoadUserConfig() (*UserConfig, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("could not determine config path: %w", err)
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		cfg := DefaultConfig()
		if err := WriteConfig(path, cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return LoadFile(path)
}

// LoadFile reads and validates the configuration at path. Settings missing
// from the file keep their defaults.
func LoadFile(path string) (*UserConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes TOML on top of the defaults and validates the result.
func Parse(data []byte) (*UserConfig, error) {
	cfg := DefaultConfig()
	defaultMenus := cfg.Menu
	cfg.Menu = MenuConfig{}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Menus are replaced as a whole; a level the file does not mention keeps
	// the built-in entries.
	if cfg.Menu.App == nil {
		cfg.Menu.App = defaultMenus.App
	}
	if cfg.Menu.Column == nil {
		cfg.Menu.Column = defaultMenus.Column
	}
	if cfg.Menu.Window == nil {
		cfg.Menu.Window = defaultMenus.Window
	}

	fillMissingKeybindings(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// fillMissingKeybindings restores default keys for actions the file dropped,
// so a partial keybinding section never leaves an action unreachable.
func fillMissingKeybindings(cfg *UserConfig) {
	defaults := DefaultConfig().Keybindings
	fill := func(dst *map[string][]string, src map[string][]string) {
		if *dst == nil {
			*dst = make(map[string][]string)
		}
		for action, keys := range src {
			if _, ok := (*dst)[action]; !ok {
				(*dst)[action] = keys
			}
		}
	}
	fill(&cfg.Keybindings.Layout, defaults.Layout)
	fill(&cfg.Keybindings.Navigation, defaults.Navigation)
	fill(&cfg.Keybindings.System, defaults.System)
}

// Validate checks value ranges, menu entries and keybindings.
func (c *UserConfig) Validate() error {
	var problems []string

	if c.Layout.MinSize < 0 {
		problems = append(problems, fmt.Sprintf("layout.min_size must not be negative, got %g", c.Layout.MinSize))
	}
	if c.Layout.SplitRatio <= 0 || c.Layout.SplitRatio >= 1 {
		problems = append(problems, fmt.Sprintf("layout.split_ratio must be between 0 and 1, got %g", c.Layout.SplitRatio))
	}
	if c.Layout.InitialColumns < 0 {
		problems = append(problems, "layout.initial_columns must not be negative")
	}
	if c.Layout.InitialWindows < 0 {
		problems = append(problems, "layout.initial_windows must not be negative")
	}
	if !isContentKind(c.Layout.WindowContent) {
		problems = append(problems, fmt.Sprintf("layout.window_content %q is not one of %s",
			c.Layout.WindowContent, strings.Join(ContentKinds, ", ")))
	}

	levels := []struct {
		name    string
		entries []MenuEntry
	}{
		{"menu.app", c.Menu.App},
		{"menu.column", c.Menu.Column},
		{"menu.window", c.Menu.Window},
	}
	for _, lv := range levels {
		for i, e := range lv.entries {
			if err := e.validate(); err != nil {
				problems = append(problems, fmt.Sprintf("%s[%d]: %v", lv.name, i, err))
			}
		}
	}

	normalizer := NewKeyNormalizer()
	for _, section := range c.Keybindings.Sections() {
		for action, keys := range section {
			if _, ok := ActionDescriptions[action]; !ok {
				problems = append(problems, fmt.Sprintf("unknown action %q in keybindings", action))
				continue
			}
			for _, key := range keys {
				if ok, reason := normalizer.ValidateKey(key); !ok {
					problems = append(problems, fmt.Sprintf("%s: invalid key %q: %s", action, key, reason))
				}
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w:\n  %s", ErrInvalidConfig, strings.Join(problems, "\n  "))
	}
	return nil
}

func (e MenuEntry) validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return errors.New("title is required")
	}
	switch {
	case e.URL != "" && e.Action != "":
		return errors.New("set either url or action, not both")
	case e.URL == "" && e.Action == "":
		return errors.New("menu item link must be a URL or an action")
	case e.Action != "":
		if _, ok := ActionDescriptions[e.Action]; !ok {
			return fmt.Errorf("unknown action %q", e.Action)
		}
	}
	return nil
}

func isContentKind(kind string) bool {
	for _, k := range ContentKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Marshal renders cfg as TOML with the file header.
func Marshal(cfg *UserConfig, path string) ([]byte, error) {
	var sb strings.Builder
	sb.WriteString("# tilecols configuration file\n")
	sb.WriteString("# Layout sizes, appearance, keybindings and header menus.\n")
	sb.WriteString("# Multiple keys can be bound to the same action.\n")
	sb.WriteString("# Menu entries take a title and either a url or an action.\n")
	sb.WriteString("#\n")
	sb.WriteString("# Configuration location: " + path + "\n")
	sb.WriteString("# Documentation: " + DefaultHelpURL + "\n\n")

	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	sb.Write(data)
	return []byte(sb.String()), nil
}

// WriteConfig writes cfg to path, creating parent directories.
func WriteConfig(path string, cfg *UserConfig) error {
	data, err := Marshal(cfg, path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Overrides holds command line values that take precedence over the file.
// Nil fields leave the file value alone.
type Overrides struct {
	MinSize    *float64
	SplitRatio *float64
	Theme      *string
	ASCIIOnly  *bool
}

// ApplyOverrides copies the set fields of o into c.
func (c *UserConfig) ApplyOverrides(o Overrides) {
	if o.MinSize != nil {
		c.Layout.MinSize = *o.MinSize
	}
	if o.SplitRatio != nil {
		c.Layout.SplitRatio = *o.SplitRatio
	}
	if o.Theme != nil {
		c.Appearance.Theme = *o.Theme
	}
	if o.ASCIIOnly != nil {
		c.Appearance.ASCIIOnly = *o.ASCIIOnly
	}
}
