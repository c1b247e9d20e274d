package model

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"slices"
)

// LoadMetadata reads and validates the model metadata file.
func LoadMetadata(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}

	var metadata Metadata
	if err := json.Unmarshal(data, &metadata); err != nil {
		return nil, fmt.Errorf("failed to parse metadata: %w", err)
	}

	if err := metadata.validate(); err != nil {
		return nil, err
	}
	return &metadata, nil
}

// Columns returns the feature names in model input order.
func (m *Metadata) Columns() []string {
	cols := make([]string, len(m.Features))
	for i, f := range m.Features {
		cols[i] = f.Name
	}
	return cols
}

// Encode converts a row into the float32 input vector. Numeric values pass
// through; categorical values become their index in the trained vocabulary.
func (m *Metadata) Encode(row Row) ([]float32, error) {
	if len(row) != len(m.Features) {
		return nil, fmt.Errorf("row has %d columns, model expects %d", len(row), len(m.Features))
	}

	out := make([]float32, len(m.Features))
	for i, f := range m.Features {
		cell := row[i]
		if cell.Name != f.Name {
			return nil, fmt.Errorf("column %d is %q, model expects %q", i, cell.Name, f.Name)
		}

		switch f.Kind {
		case KindNumeric:
			switch v := cell.Value.(type) {
			case int64:
				out[i] = float32(v)
			case float64:
				out[i] = float32(v)
			default:
				return nil, fmt.Errorf("column %q: expected a number, got %T", f.Name, cell.Value)
			}
		case KindCategorical:
			s, ok := cell.Value.(string)
			if !ok {
				return nil, fmt.Errorf("column %q: expected a string, got %T", f.Name, cell.Value)
			}
			idx := slices.Index(f.Categories, s)
			if idx < 0 {
				return nil, fmt.Errorf("%w for %s", ErrUnknownCategory, f.Name)
			}
			out[i] = float32(idx)
		}
	}
	return out, nil
}

func (m *Metadata) validate() error {
	if m.InputName == "" {
		return fmt.Errorf("metadata: input_name required")
	}
	if m.OutputName == "" {
		return fmt.Errorf("metadata: output_name required")
	}
	if m.OutputKind == "" {
		m.OutputKind = OutputScores
	}
	if m.OutputKind != OutputScores && m.OutputKind != OutputLabel {
		return fmt.Errorf("metadata: unsupported output_kind %q", m.OutputKind)
	}
	if len(m.OutputShape) == 0 {
		return fmt.Errorf("metadata: output_shape required")
	}
	if len(m.Features) == 0 {
		return fmt.Errorf("metadata: no features")
	}

	seen := make(map[string]bool, len(m.Features))
	for _, f := range m.Features {
		if seen[f.Name] {
			return fmt.Errorf("metadata: duplicate feature %q", f.Name)
		}
		seen[f.Name] = true

		switch f.Kind {
		case KindNumeric:
		case KindCategorical:
			if len(f.Categories) == 0 {
				return fmt.Errorf("metadata: categorical feature %q has no categories", f.Name)
			}
		default:
			return fmt.Errorf("metadata: feature %q has unsupported kind %q", f.Name, f.Kind)
		}
	}

	return m.matchRecord()
}

// matchRecord checks that the feature set equals the Record field set and
// that string fields are categorical while numeric fields are numeric.
func (m *Metadata) matchRecord() error {
	got := m.Columns()
	for _, name := range RecordFields() {
		if !slices.Contains(got, name) {
			return fmt.Errorf("metadata: feature %q missing from model schema", name)
		}
	}

	kinds := make(map[string]string, len(recordFields))
	for _, f := range recordFields {
		if f.kind == reflect.String {
			kinds[f.name] = KindCategorical
		} else {
			kinds[f.name] = KindNumeric
		}
	}

	for _, f := range m.Features {
		kind, ok := kinds[f.Name]
		if !ok {
			return fmt.Errorf("metadata: model expects unknown feature %q", f.Name)
		}
		if kind != f.Kind {
			return fmt.Errorf("metadata: feature %q must be %s, got %s", f.Name, kind, f.Kind)
		}
	}
	return nil
}
