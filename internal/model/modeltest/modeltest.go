// Package modeltest provides artifact fixtures and a deterministic
// classifier for tests.
package modeltest

import (
	_ "embed"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/Brownie44l1/bank-marketing-api/internal/model"
)

//go:embed model_metadata.json
var MetadataJSON []byte

//go:embed label_encoder.json
var EncoderJSON []byte

// ValidPayload is a complete record within the trained vocabulary.
const ValidPayload = `{"age":35,"job":"admin.","marital":"married","education":"secondary","default":"no","balance":1500.0,"housing":"yes","loan":"no","contact":"cellular","day":15,"month":"may","duration":120.0,"campaign":2,"pdays":-1,"previous":0,"poutcome":"unknown"}`

// WriteArtifacts writes the metadata and label encoder fixtures into a temp
// dir and returns their paths.
func WriteArtifacts(t testing.TB) (metadataPath, encoderPath string) {
	t.Helper()
	dir := t.TempDir()
	metadataPath = WriteFile(t, dir, "model_metadata.json", MetadataJSON)
	encoderPath = WriteFile(t, dir, "label_encoder.json", EncoderJSON)
	return metadataPath, encoderPath
}

func WriteFile(t testing.TB, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// Classifier encodes rows with real metadata and predicts class 1 when
// duration exceeds Threshold, class 0 otherwise. Err, when set, is returned
// from every Infer call.
type Classifier struct {
	Metadata  *model.Metadata
	Threshold float32
	Err       error
}

func (c *Classifier) Columns() []string {
	return c.Metadata.Columns()
}

func (c *Classifier) Infer(row model.Row) (int, error) {
	if c.Err != nil {
		return 0, c.Err
	}
	x, err := c.Metadata.Encode(row)
	if err != nil {
		return 0, err
	}
	if x[slices.Index(c.Metadata.Columns(), "duration")] > c.Threshold {
		return 1, nil
	}
	return 0, nil
}

// NewPredictor builds a Predictor from the fixtures with a duration
// threshold of 300 seconds.
func NewPredictor(t testing.TB) *model.Predictor {
	t.Helper()
	metadataPath, encoderPath := WriteArtifacts(t)

	metadata, err := model.LoadMetadata(metadataPath)
	if err != nil {
		t.Fatalf("load metadata: %v", err)
	}
	encoder, err := model.LoadLabelEncoder(encoderPath)
	if err != nil {
		t.Fatalf("load label encoder: %v", err)
	}

	return model.NewPredictor(&Classifier{Metadata: metadata, Threshold: 300}, encoder)
}
