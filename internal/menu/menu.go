// Package menu holds the clickable entries shown in container, column and
// window headers.
package menu

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidLink is returned for an entry that neither navigates nor invokes.
var ErrInvalidLink = errors.New("menu item link must be a URL or an action")

// Link is what an entry does when clicked. It is either Navigate or Invoke.
type Link interface {
	isLink()
}

// Navigate opens a URL.
type Navigate struct {
	URL string
}

// Invoke runs an action. Name is the action's configuration name, if any.
type Invoke struct {
	Name   string
	Action func()
}

func (Navigate) isLink() {}
func (Invoke) isLink()   {}

// Item is one entry of a menu.
type Item struct {
	Title string
	Link  Link
}

// Validate checks that the item has a title and a usable link.
func (it Item) Validate() error {
	if strings.TrimSpace(it.Title) == "" {
		return errors.New("menu item has no title")
	}
	switch l := it.Link.(type) {
	case Navigate:
		u, err := url.Parse(l.URL)
		if err != nil || l.URL == "" {
			return fmt.Errorf("%q: %w", it.Title, ErrInvalidLink)
		}
		if u.Scheme == "" {
			return fmt.Errorf("%q: url %q has no scheme: %w", it.Title, l.URL, ErrInvalidLink)
		}
	case Invoke:
		if l.Action == nil {
			return fmt.Errorf("%q: %w", it.Title, ErrInvalidLink)
		}
	default:
		return fmt.Errorf("%q: %w", it.Title, ErrInvalidLink)
	}
	return nil
}

// Menu is an ordered list of items. Readers always get a copy, so callers
// cannot change a menu except through Set and Add.
type Menu struct {
	items []Item
}

// New builds a menu, rejecting the first invalid item.
func New(items ...Item) (*Menu, error) {
	m := &Menu{}
	if err := m.Set(items); err != nil {
		return nil, err
	}
	return m, nil
}

// Items returns a copy of the entries.
func (m *Menu) Items() []Item {
	if m == nil {
		return nil
	}
	return append([]Item(nil), m.items...)
}

// Len returns the number of entries.
func (m *Menu) Len() int {
	if m == nil {
		return 0
	}
	return len(m.items)
}

// At returns the entry at i.
func (m *Menu) At(i int) (Item, bool) {
	if m == nil || i < 0 || i >= len(m.items) {
		return Item{}, false
	}
	return m.items[i], true
}

// Set replaces all entries. On error the menu is left as it was.
func (m *Menu) Set(items []Item) error {
	for _, it := range items {
		if err := it.Validate(); err != nil {
			return err
		}
	}
	m.items = append([]Item(nil), items...)
	return nil
}

// Add appends an entry.
func (m *Menu) Add(it Item) error {
	if err := it.Validate(); err != nil {
		return err
	}
	m.items = append(m.items, it)
	return nil
}

// Titles returns the entry titles in order.
func (m *Menu) Titles() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.items))
	for i, it := range m.items {
		out[i] = it.Title
	}
	return out
}
