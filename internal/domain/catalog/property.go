package catalog

import (
	"time"

	"github.com/google/uuid"
)

// PropertyGroup is a Shopware property group, one per Odoo variant
// attribute name (e.g. "Color"). Groups are deduplicated by name.
type PropertyGroup struct {
	ID        uuid.UUID
	Name      string
	Options   []PropertyOption
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PropertyOption is one value of a property group (e.g. "Red").
type PropertyOption struct {
	ID      uuid.UUID
	GroupID uuid.UUID
	Name    string
}

// NewPropertyGroup creates a new property group.
func NewPropertyGroup(name string) (*PropertyGroup, error) {
	if name == "" {
		return nil, ErrPropertyGroupNameRequired
	}
	now := time.Now()
	return &PropertyGroup{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// FindOption returns the option with the given name, if attached.
func (g *PropertyGroup) FindOption(name string) (*PropertyOption, bool) {
	for i := range g.Options {
		if g.Options[i].Name == name {
			return &g.Options[i], true
		}
	}
	return nil, false
}

// EnsureOption returns the existing option with the given name or attaches
// a new one. Options are deduplicated by name within their group.
func (g *PropertyGroup) EnsureOption(name string) *PropertyOption {
	if opt, ok := g.FindOption(name); ok {
		return opt
	}
	g.Options = append(g.Options, PropertyOption{
		ID:      uuid.New(),
		GroupID: g.ID,
		Name:    name,
	})
	g.UpdatedAt = time.Now()
	return &g.Options[len(g.Options)-1]
}
