package model

import (
	"fmt"

	ort "github.com/yalue/onnxruntime_go"
)

// ONNXClassifier runs an ONNX classification graph. The session is created
// once; every Infer call allocates its own tensors so concurrent calls share
// no mutable state.
type ONNXClassifier struct {
	session  *ort.DynamicAdvancedSession
	Metadata Metadata
}

// NewONNXClassifier initializes the ONNX environment and opens a session
// for modelPath. libraryPath overrides the onnxruntime shared library
// location when set.
func NewONNXClassifier(modelPath, metadataPath, libraryPath string) (*ONNXClassifier, error) {
	metadata, err := LoadMetadata(metadataPath)
	if err != nil {
		return nil, err
	}

	if !ort.IsInitialized() {
		if libraryPath != "" {
			ort.SetSharedLibraryPath(libraryPath)
		}
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, fmt.Errorf("failed to initialize ONNX environment: %w", err)
		}
	}

	session, err := ort.NewDynamicAdvancedSession(modelPath,
		[]string{metadata.InputName}, []string{metadata.OutputName}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create ONNX session: %w", err)
	}

	return &ONNXClassifier{
		session:  session,
		Metadata: *metadata,
	}, nil
}

func (c *ONNXClassifier) Columns() []string {
	return c.Metadata.Columns()
}

func (c *ONNXClassifier) Infer(row Row) (int, error) {
	inputData, err := c.Metadata.Encode(row)
	if err != nil {
		return 0, err
	}

	inputTensor, err := ort.NewTensor(ort.NewShape(1, int64(len(inputData))), inputData)
	if err != nil {
		return 0, fmt.Errorf("failed to create input tensor: %w", err)
	}
	defer inputTensor.Destroy()

	if c.Metadata.OutputKind == OutputLabel {
		return c.runLabel(inputTensor)
	}
	return c.runScores(inputTensor)
}

func (c *ONNXClassifier) runScores(input *ort.Tensor[float32]) (int, error) {
	outputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(c.Metadata.OutputShape...))
	if err != nil {
		return 0, fmt.Errorf("failed to create output tensor: %w", err)
	}
	defer outputTensor.Destroy()

	if err := c.session.Run([]ort.ArbitraryTensor{input}, []ort.ArbitraryTensor{outputTensor}); err != nil {
		return 0, fmt.Errorf("session run: %w", err)
	}

	outputData := outputTensor.GetData()
	if len(outputData) == 0 {
		return 0, fmt.Errorf("empty model output")
	}

	maxIdx := 0
	maxVal := outputData[0]
	for i, val := range outputData {
		if val > maxVal {
			maxVal = val
			maxIdx = i
		}
	}
	return maxIdx, nil
}

func (c *ONNXClassifier) runLabel(input *ort.Tensor[float32]) (int, error) {
	outputTensor, err := ort.NewEmptyTensor[int64](ort.NewShape(c.Metadata.OutputShape...))
	if err != nil {
		return 0, fmt.Errorf("failed to create output tensor: %w", err)
	}
	defer outputTensor.Destroy()

	if err := c.session.Run([]ort.ArbitraryTensor{input}, []ort.ArbitraryTensor{outputTensor}); err != nil {
		return 0, fmt.Errorf("session run: %w", err)
	}

	outputData := outputTensor.GetData()
	if len(outputData) == 0 {
		return 0, fmt.Errorf("empty model output")
	}
	return int(outputData[0]), nil
}

func (c *ONNXClassifier) Close() {
	if c.session != nil {
		c.session.Destroy()
	}
	ort.DestroyEnvironment()
}
