package core

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrainLogisticLearnsSeparableData(t *testing.T) {
	ds := GenerateClassification(1000, 5, 42)

	model, err := TrainLogistic(ds)
	require.NoError(t, err)

	assert.Equal(t, ds.Features, model.Features)
	assert.Len(t, model.Weights, 5)
	assert.Equal(t, 1000, model.Samples)
	assert.Greater(t, model.Accuracy(ds), 0.8)
}

func TestTrainLogisticRejectsBadInput(t *testing.T) {
	_, err := TrainLogistic(&Dataset{Features: FeatureNames(2)})
	assert.ErrorContains(t, err, "empty dataset")

	_, err = TrainLogistic(&Dataset{
		Features: FeatureNames(1),
		Rows:     [][]float64{{1.0}, {2.0}},
		Labels:   []int{1},
	})
	assert.ErrorContains(t, err, "2 rows but 1 labels")
}

func TestPredictRange(t *testing.T) {
	ds := GenerateClassification(200, 3, 7)
	model, err := TrainLogistic(ds)
	require.NoError(t, err)

	for _, row := range ds.Rows {
		p := model.Predict(row)
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
	}
}

func TestModelSaveLoadRoundTrip(t *testing.T) {
	ds := GenerateClassification(100, 4, 42)
	model, err := TrainLogistic(ds)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, model.Save(path))

	loaded, err := LoadModel(path)
	require.NoError(t, err)
	assert.Equal(t, model.Features, loaded.Features)
	assert.Equal(t, model.Weights, loaded.Weights)
	assert.Equal(t, model.Bias, loaded.Bias)
	assert.Equal(t, model.Samples, loaded.Samples)
}

func TestLoadModelMissingFile(t *testing.T) {
	_, err := LoadModel(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
