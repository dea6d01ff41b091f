package sdds

import (
	"os"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/rtsoliday/sddsTest-sub000/internal/dtype"
)

// ParameterDef declares a scalar parameter. A parameter with a FixedValue
// is not stored in pages; readers fill it from the text value.
type ParameterDef struct {
	Name       string  `yaml:"name"`
	Type       Type    `yaml:"type"`
	FixedValue *string `yaml:"fixed_value,omitempty"`
}

// ArrayDef declares a multi-dimensional array.
type ArrayDef struct {
	Name       string `yaml:"name"`
	Type       Type   `yaml:"type"`
	Dimensions int    `yaml:"dimensions"`
}

// ColumnDef declares a table column.
type ColumnDef struct {
	Name string `yaml:"name"`
	Type Type   `yaml:"type"`
}

// DataMode controls how rows are laid out on the wire.
type DataMode struct {
	// ColumnMajor writes each column as one contiguous block instead of
	// interleaving columns row by row.
	ColumnMajor bool `yaml:"column_major"`
	// ByteOrder is the declared order of every value in the dataset.
	ByteOrder ByteOrder `yaml:"byte_order"`
}

// Layout is the schema shared by every page of a dataset.
type Layout struct {
	Parameters []ParameterDef `yaml:"parameters"`
	Arrays     []ArrayDef     `yaml:"arrays"`
	Columns    []ColumnDef    `yaml:"columns"`
	DataMode   DataMode       `yaml:"data_mode"`
}

// Validate checks names, types, dimension counts and fixed values.
func (l *Layout) Validate() error {
	seen := make(map[string]string)
	check := func(kind, name string, t Type) error {
		if name == "" {
			return errors.Wrapf(ErrSchema, "%s with empty name", kind)
		}
		if prev, ok := seen[kind+"/"+name]; ok {
			return errors.Wrapf(ErrSchema, "duplicate %s %q", prev, name)
		}
		seen[kind+"/"+name] = kind
		if !t.Valid() {
			return errors.Wrapf(ErrSchema, "%s %q: %v", kind, name, dtype.ErrUnknownType)
		}
		return nil
	}

	for _, p := range l.Parameters {
		if err := check("parameter", p.Name, p.Type); err != nil {
			return err
		}
		if p.FixedValue != nil {
			if _, err := dtype.ParseScalar(p.Type, *p.FixedValue); err != nil {
				return errors.Mark(errors.Wrapf(err, "parameter %q fixed value", p.Name), ErrSchema)
			}
		}
	}
	for _, a := range l.Arrays {
		if err := check("array", a.Name, a.Type); err != nil {
			return err
		}
		if a.Dimensions < 1 {
			return errors.Wrapf(ErrSchema, "array %q: %d dimensions", a.Name, a.Dimensions)
		}
	}
	for _, c := range l.Columns {
		if err := check("column", c.Name, c.Type); err != nil {
			return err
		}
	}
	return nil
}

// ParameterIndex returns the position of the named parameter, or -1.
func (l *Layout) ParameterIndex(name string) int {
	for i, p := range l.Parameters {
		if p.Name == name {
			return i
		}
	}
	return -1
}

// ArrayIndex returns the position of the named array, or -1.
func (l *Layout) ArrayIndex(name string) int {
	for i, a := range l.Arrays {
		if a.Name == name {
			return i
		}
	}
	return -1
}

// ColumnIndex returns the position of the named column, or -1.
func (l *Layout) ColumnIndex(name string) int {
	for i, c := range l.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// ParseLayout decodes a YAML layout and validates it.
func ParseLayout(data []byte) (*Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "parsing layout"), ErrSchema)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// LoadLayout reads a YAML layout file.
func LoadLayout(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading layout %s", path)
	}
	return ParseLayout(data)
}
