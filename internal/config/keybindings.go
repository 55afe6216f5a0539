package config

// Keybinding represents a single keybinding entry
type Keybinding struct {
	Key         string
	Description string
}

// KeybindingSection represents a section of related keybindings
type KeybindingSection struct {
	Title    string
	Bindings []Keybinding
}

// SectionActions lists the bindable actions per help section, in display order.
var SectionActions = []struct {
	Title   string
	Actions []string
}{
	{
		Title:   "LAYOUT",
		Actions: []string{"new_column", "new_window", "close_window", "close_column", "cycle_content"},
	},
	{
		Title:   "NAVIGATION",
		Actions: []string{"focus_next_column", "focus_prev_column", "focus_next_window", "focus_prev_window"},
	},
	{
		Title:   "SYSTEM",
		Actions: []string{"cancel_drag", "toggle_help", "quit"},
	},
}

// GetKeybindings returns all keybinding sections for the help view.
// If registry is provided, it generates bindings from the user config;
// if registry is nil, it falls back to the defaults.
func GetKeybindings(registry *KeybindRegistry) []KeybindingSection {
	if registry == nil {
		registry = NewKeybindRegistry(DefaultConfig())
	}

	sections := []KeybindingSection{}
	for _, s := range SectionActions {
		section := KeybindingSection{Title: s.Title, Bindings: []Keybinding{}}
		for _, action := range s.Actions {
			addBinding(&section, registry, action, ActionDescriptions[action])
		}
		if len(section.Bindings) > 0 {
			sections = append(sections, section)
		}
	}

	// Mouse actions are fixed
	sections = append(sections, getStaticHelpSections()...)
	return sections
}

// addBinding adds a keybinding to a section if the action has keys configured
func addBinding(section *KeybindingSection, registry *KeybindRegistry, action, description string) {
	keys := registry.GetKeysForDisplay(action)
	if keys != "" {
		section.Bindings = append(section.Bindings, Keybinding{
			Key:         keys,
			Description: description,
		})
	}
}

// getStaticHelpSections returns help sections that don't need dynamic binding info
func getStaticHelpSections() []KeybindingSection {
	return []KeybindingSection{
		{
			Title: "MOUSE",
			Bindings: []Keybinding{
				{"Drag column handle", "Resize or reorder columns"},
				{"Drag window handle", "Resize, reorder or move window"},
				{"Click menu entry", "Run entry"},
				{"Leave terminal", "Cancel drag"},
			},
		},
	}
}
