package config

import (
	"fmt"
	"os"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/choreworld/choreworld/pkg/core/model"
)

var titleCaser = cases.Title(language.English)

// choreEntry accepts either a bare chore ID or an {id, name} mapping, with
// the display name defaulting to the title-cased ID.
type choreEntry struct {
	ID   string `yaml:"id" validate:"required"`
	Name string `yaml:"name,omitempty"`
}

func (c *choreEntry) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		c.ID = value.Value
		return nil
	}

	type plain choreEntry
	var p plain
	if err := value.Decode(&p); err != nil {
		return fmt.Errorf("chore must be a string or an {id, name} mapping: %w", err)
	}
	*c = choreEntry(p)
	return nil
}

// groupDoc is the YAML shape of a single group entry.
type groupDoc struct {
	Name   string       `yaml:"name,omitempty"`
	Chores []choreEntry `yaml:"chores" validate:"required,min=1,dive"`
	People []string     `yaml:"people" validate:"required,min=1,dive,required"`
}

// LoadGroups loads a group config file (e.g. chch.yaml): a mapping of group
// ID to {name, chores, people}. Groups are returned in file order, since
// chore order within a group fixes the rotation phase and group order fixes
// the rendered layout.
func LoadGroups(path string) ([]model.Group, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read group config: %w", err)
	}

	groups, err := ParseGroups(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse group config %s: %w", path, err)
	}
	return groups, nil
}

// ParseGroups parses and validates group config YAML.
func ParseGroups(data []byte) ([]model.Group, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, fmt.Errorf("group config is empty")
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("group config must be a mapping of group IDs")
	}

	// Mapping node content alternates key, value. Walking it directly
	// preserves the file order that map decoding would lose.
	groups := make([]model.Group, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		groupID := root.Content[i].Value

		var gd groupDoc
		if err := root.Content[i+1].Decode(&gd); err != nil {
			return nil, fmt.Errorf("group %q: %w", groupID, err)
		}
		if err := validate.Struct(&gd); err != nil {
			return nil, fmt.Errorf("group %q: %w", groupID, err)
		}

		group, err := buildGroup(groupID, gd)
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}

	return groups, nil
}

func buildGroup(groupID string, gd groupDoc) (model.Group, error) {
	name := gd.Name
	if name == "" {
		name = titleCaser.String(groupID)
	}

	seen := make(map[string]bool, len(gd.Chores))
	chores := make([]model.Chore, len(gd.Chores))
	for i, entry := range gd.Chores {
		if entry.ID == "" {
			return model.Group{}, fmt.Errorf("group %q: chore %d has no ID", groupID, i)
		}
		if seen[entry.ID] {
			return model.Group{}, fmt.Errorf("group %q: duplicate chore ID %q", groupID, entry.ID)
		}
		seen[entry.ID] = true

		choreName := entry.Name
		if choreName == "" {
			choreName = titleCaser.String(entry.ID)
		}
		chores[i] = model.Chore{ID: entry.ID, Name: choreName}
	}

	return model.Group{
		ID:     groupID,
		Name:   name,
		Chores: chores,
		People: gd.People,
	}, nil
}
