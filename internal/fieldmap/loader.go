package fieldmap

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// aliasFile is the on-disk layout of an alias override file.
type aliasFile struct {
	Tables []AliasTable `yaml:"tables"`
}

// LoadAliasFile reads a YAML alias file and overlays its tables on base. A table in the file
// replaces the base table of the same name entirely; base itself is not modified.
func LoadAliasFile(path string, base Tables) (Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read alias file %s: %w", path, err)
	}
	return ParseAliasFile(data, base)
}

// ParseAliasFile is LoadAliasFile over an in-memory document.
func ParseAliasFile(data []byte, base Tables) (Tables, error) {
	var file aliasFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse alias YAML: %w", err)
	}

	out := make(Tables, len(base)+len(file.Tables))
	for name, table := range base {
		out[name] = table
	}
	for _, table := range file.Tables {
		if table.Name == "" {
			return nil, fmt.Errorf("alias table without name")
		}
		if err := table.Validate(); err != nil {
			return nil, err
		}
		out[table.Name] = table
	}
	return out, nil
}

// Get returns the named table or an error naming the known tables.
func (t Tables) Get(name string) (AliasTable, error) {
	table, ok := t[name]
	if !ok {
		return AliasTable{}, fmt.Errorf("unknown alias table %q", name)
	}
	return table, nil
}
