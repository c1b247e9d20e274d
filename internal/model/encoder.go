package model

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
)

// LabelEncoder maps class indices back to label strings. Index i decodes
// to Classes()[i].
type LabelEncoder struct {
	classes []string
}

type labelEncoderFile struct {
	Classes []string `json:"classes"`
}

func NewLabelEncoder(classes []string) (*LabelEncoder, error) {
	if len(classes) == 0 {
		return nil, fmt.Errorf("label encoder has no classes")
	}
	return &LabelEncoder{classes: slices.Clone(classes)}, nil
}

// LoadLabelEncoder reads a {"classes": [...]} file.
func LoadLabelEncoder(path string) (*LabelEncoder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read label encoder: %w", err)
	}

	var file labelEncoderFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse label encoder: %w", err)
	}

	return NewLabelEncoder(file.Classes)
}

func (e *LabelEncoder) Decode(class int) (string, error) {
	if class < 0 || class >= len(e.classes) {
		return "", fmt.Errorf("%w %d: encoder knows %d classes", ErrUnknownClass, class, len(e.classes))
	}
	return e.classes[class], nil
}

// Classes returns a copy of the known labels.
func (e *LabelEncoder) Classes() []string {
	return slices.Clone(e.classes)
}
