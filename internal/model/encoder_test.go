package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Brownie44l1/bank-marketing-api/internal/model"
	"github.com/Brownie44l1/bank-marketing-api/internal/model/modeltest"
)

func TestLabelEncoderDecode(t *testing.T) {
	_, path := modeltest.WriteArtifacts(t)
	enc, err := model.LoadLabelEncoder(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"no", "yes"}, enc.Classes())

	label, err := enc.Decode(1)
	require.NoError(t, err)
	assert.Equal(t, "yes", label)

	for _, class := range []int{-1, 2} {
		_, err := enc.Decode(class)
		assert.ErrorIs(t, err, model.ErrUnknownClass)
	}
}

func TestLoadLabelEncoderErrors(t *testing.T) {
	dir := t.TempDir()

	paths := map[string]string{
		"missing file": dir + "/absent.json",
		"corrupt":      modeltest.WriteFile(t, dir, "corrupt.json", []byte("\x80\x04pickle")),
		"no classes":   modeltest.WriteFile(t, dir, "empty.json", []byte(`{"classes": []}`)),
	}

	for name, path := range paths {
		t.Run(name, func(t *testing.T) {
			_, err := model.LoadLabelEncoder(path)
			assert.Error(t, err)
		})
	}
}

func TestLabelEncoderClassesCopy(t *testing.T) {
	enc, err := model.NewLabelEncoder([]string{"no", "yes"})
	require.NoError(t, err)

	classes := enc.Classes()
	classes[0] = "mutated"

	label, err := enc.Decode(0)
	require.NoError(t, err)
	assert.Equal(t, "no", label)
}
