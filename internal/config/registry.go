package config

import (
	"sort"
	"strings"
)

// ActionDescriptions names every bindable action.
var ActionDescriptions = map[string]string{
	"new_column":        "New column",
	"new_window":        "New window in focused column",
	"close_window":      "Close focused window",
	"close_column":      "Close focused column",
	"cycle_content":     "Cycle window content",
	"focus_next_column": "Focus next column",
	"focus_prev_column": "Focus previous column",
	"focus_next_window": "Focus next window",
	"focus_prev_window": "Focus previous window",
	"cancel_drag":       "Cancel drag",
	"toggle_help":       "Toggle help",
	"quit":              "Quit",
}

// KeybindRegistry resolves keys to actions and back.
type KeybindRegistry struct {
	keyToAction  map[string]string
	actionToKeys map[string][]string
	normalizer   *KeyNormalizer
}

// NewKeybindRegistry builds a registry from cfg. When two actions claim the
// same key, the one from the earlier section wins.
func NewKeybindRegistry(cfg *UserConfig) *KeybindRegistry {
	r := &KeybindRegistry{
		keyToAction:  make(map[string]string),
		actionToKeys: make(map[string][]string),
		normalizer:   NewKeyNormalizer(),
	}
	for _, section := range cfg.Keybindings.Sections() {
		// Sorted so conflicts resolve the same way on every run.
		actions := make([]string, 0, len(section))
		for action := range section {
			actions = append(actions, action)
		}
		sort.Strings(actions)

		for _, action := range actions {
			keys := section[action]
			r.actionToKeys[action] = append([]string(nil), keys...)
			for _, key := range keys {
				for _, k := range r.normalizer.NormalizeKey(key) {
					if _, taken := r.keyToAction[k]; !taken {
						r.keyToAction[k] = action
					}
				}
			}
		}
	}
	return r
}

// GetAction returns the action bound to key, or "".
func (r *KeybindRegistry) GetAction(key string) string {
	if action, ok := r.keyToAction[key]; ok {
		return action
	}
	for _, k := range r.normalizer.NormalizeKey(key) {
		if action, ok := r.keyToAction[k]; ok {
			return action
		}
	}
	return ""
}

// GetKeys returns the keys bound to action.
func (r *KeybindRegistry) GetKeys(action string) []string {
	return append([]string(nil), r.actionToKeys[action]...)
}

// GetKeysForDisplay returns the keys of action formatted for the help view.
func (r *KeybindRegistry) GetKeysForDisplay(action string) string {
	keys := r.actionToKeys[action]
	if len(keys) == 0 {
		return ""
	}
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = displayKey(k)
	}
	return strings.Join(out, ", ")
}

func displayKey(key string) string {
	parts := strings.Split(key, "+")
	for i, p := range parts {
		switch strings.ToLower(p) {
		case "ctrl":
			parts[i] = "Ctrl"
		case "alt":
			parts[i] = "Alt"
		case "shift":
			parts[i] = "Shift"
		case "esc", "escape":
			parts[i] = "Esc"
		case "enter", "return":
			parts[i] = "Enter"
		case "left":
			parts[i] = "←"
		case "right":
			parts[i] = "→"
		case "up":
			parts[i] = "↑"
		case "down":
			parts[i] = "↓"
		}
	}
	return strings.Join(parts, "+")
}

// KeyNormalizer maps the spellings users write in the config file to the
// strings bubbletea reports for key presses.
type KeyNormalizer struct {
	aliases map[string][]string
}

// NewKeyNormalizer creates a normalizer with the built-in aliases.
func NewKeyNormalizer() *KeyNormalizer {
	return &KeyNormalizer{
		aliases: map[string][]string{
			"return": {"enter"},
			"enter":  {"return"},
			"escape": {"esc"},
			"esc":    {"escape"},
			"del":    {"delete"},
			"delete": {"del"},
		},
	}
}

// NormalizeKey returns every form key may arrive in: the lowercased
// modifiers with the key itself, plus its aliases. Single letters keep their
// case because "C" and "c" are different keys.
func (n *KeyNormalizer) NormalizeKey(key string) []string {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil
	}
	parts := strings.Split(key, "+")
	last := parts[len(parts)-1]
	for i := range parts[:len(parts)-1] {
		parts[i] = strings.ToLower(parts[i])
	}
	if len(last) > 1 || len(parts) > 1 {
		last = strings.ToLower(last)
	}
	prefix := strings.Join(parts[:len(parts)-1], "+")
	join := func(k string) string {
		if prefix == "" {
			return k
		}
		return prefix + "+" + k
	}

	out := []string{join(last)}
	for _, alias := range n.aliases[last] {
		out = append(out, join(alias))
	}
	return out
}

// ValidateKey reports whether key is usable, and why not.
func (n *KeyNormalizer) ValidateKey(key string) (bool, string) {
	key = strings.TrimSpace(key)
	if key == "" {
		return false, "empty key"
	}
	parts := strings.Split(key, "+")
	for _, p := range parts[:len(parts)-1] {
		switch strings.ToLower(p) {
		case "ctrl", "alt", "shift", "super", "meta", "hyper":
		default:
			return false, "unknown modifier " + p
		}
	}
	if parts[len(parts)-1] == "" {
		return false, "missing key after modifier"
	}
	return true, ""
}
