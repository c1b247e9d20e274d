package config

import (
	"fmt"
	"os"

	"github.com/Brownie44l1/bank-marketing-api/internal/model"
)

const (
	EnvModelPath    = "INFER_MODEL_PATH"
	EnvMetadataPath = "INFER_METADATA_PATH"
	EnvEncoderPath  = "INFER_ENCODER_PATH"
	EnvONNXLibrary  = "INFER_ONNX_LIBRARY"
)

// ArtifactsConfig locates the model and label encoder files.
type ArtifactsConfig struct {
	ModelPath       string `toml:"model_path"`
	MetadataPath    string `toml:"metadata_path"`
	EncoderPath     string `toml:"encoder_path"`
	ONNXLibraryPath string `toml:"onnx_library_path"`
}

// Paths converts the config into model.Paths.
func (c *ArtifactsConfig) Paths() model.Paths {
	return model.Paths{
		Model:       c.ModelPath,
		Metadata:    c.MetadataPath,
		Encoder:     c.EncoderPath,
		ONNXLibrary: c.ONNXLibraryPath,
	}
}

func (c *ArtifactsConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

func (c *ArtifactsConfig) Merge(overlay *ArtifactsConfig) {
	if overlay.ModelPath != "" {
		c.ModelPath = overlay.ModelPath
	}
	if overlay.MetadataPath != "" {
		c.MetadataPath = overlay.MetadataPath
	}
	if overlay.EncoderPath != "" {
		c.EncoderPath = overlay.EncoderPath
	}
	if overlay.ONNXLibraryPath != "" {
		c.ONNXLibraryPath = overlay.ONNXLibraryPath
	}
}

func (c *ArtifactsConfig) loadDefaults() {
	if c.ModelPath == "" {
		c.ModelPath = "models/model.onnx"
	}
	if c.MetadataPath == "" {
		c.MetadataPath = "models/model_metadata.json"
	}
	if c.EncoderPath == "" {
		c.EncoderPath = "models/label_encoder.json"
	}
}

func (c *ArtifactsConfig) loadEnv() {
	if v := os.Getenv(EnvModelPath); v != "" {
		c.ModelPath = v
	}
	if v := os.Getenv(EnvMetadataPath); v != "" {
		c.MetadataPath = v
	}
	if v := os.Getenv(EnvEncoderPath); v != "" {
		c.EncoderPath = v
	}
	if v := os.Getenv(EnvONNXLibrary); v != "" {
		c.ONNXLibraryPath = v
	}
}

func (c *ArtifactsConfig) validate() error {
	if c.ModelPath == c.EncoderPath {
		return fmt.Errorf("model_path and encoder_path must differ")
	}
	return nil
}
