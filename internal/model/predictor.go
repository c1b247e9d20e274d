package model

import (
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"
)

// Classifier runs inference on a single row and returns the raw class index.
type Classifier interface {
	// Columns returns the feature names in the order the model expects.
	Columns() []string
	Infer(row Row) (int, error)
}

// Decoder maps a raw class index to a human-readable label.
type Decoder interface {
	Decode(class int) (string, error)
}

// Predictor holds the process-wide artifacts. It is immutable after
// construction and safe for concurrent use.
type Predictor struct {
	classifier Classifier
	decoder    Decoder
	columns    []string
}

func NewPredictor(classifier Classifier, decoder Decoder) *Predictor {
	return &Predictor{
		classifier: classifier,
		decoder:    decoder,
		columns:    slices.Clone(classifier.Columns()),
	}
}

// Predict builds the model row from rec, runs inference and decodes the
// result. Failures wrap ErrInference.
func (p *Predictor) Predict(rec *Record) (string, error) {
	row, err := rec.Row(p.columns)
	if err != nil {
		return "", inferenceError(err)
	}

	class, err := p.classifier.Infer(row)
	if err != nil {
		return "", inferenceError(err)
	}

	label, err := p.decoder.Decode(class)
	if err != nil {
		return "", inferenceError(err)
	}
	return label, nil
}

// Paths locates the persisted artifacts.
type Paths struct {
	Model       string
	Metadata    string
	Encoder     string
	ONNXLibrary string
}

// Artifacts are the loaded startup objects. Close releases the ONNX session.
type Artifacts struct {
	Classifier *ONNXClassifier
	Encoder    *LabelEncoder
	Predictor  *Predictor
}

func (a *Artifacts) Close() {
	if a.Classifier != nil {
		a.Classifier.Close()
	}
}

// Load deserializes the classifier and the label encoder concurrently.
// Any failure wraps ErrStartup.
func Load(paths Paths) (*Artifacts, error) {
	var (
		classifier *ONNXClassifier
		encoder    *LabelEncoder
		g          errgroup.Group
	)

	g.Go(func() error {
		c, err := NewONNXClassifier(paths.Model, paths.Metadata, paths.ONNXLibrary)
		if err != nil {
			return startupError("model", err)
		}
		classifier = c
		return nil
	})

	g.Go(func() error {
		e, err := LoadLabelEncoder(paths.Encoder)
		if err != nil {
			return startupError("label encoder", err)
		}
		encoder = e
		return nil
	})

	if err := g.Wait(); err != nil {
		if classifier != nil {
			classifier.Close()
		}
		return nil, err
	}

	if err := checkOutput(&classifier.Metadata, encoder); err != nil {
		classifier.Close()
		return nil, startupError("model", err)
	}

	return &Artifacts{
		Classifier: classifier,
		Encoder:    encoder,
		Predictor:  NewPredictor(classifier, encoder),
	}, nil
}

// checkOutput verifies a scores output has one column per encoder class.
func checkOutput(m *Metadata, encoder *LabelEncoder) error {
	if m.OutputKind != OutputScores {
		return nil
	}
	width := m.OutputShape[len(m.OutputShape)-1]
	if n := len(encoder.Classes()); width != int64(n) {
		return fmt.Errorf("output width %d does not match %d encoder classes", width, n)
	}
	return nil
}
