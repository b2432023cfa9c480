package core

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeatureNames(t *testing.T) {
	assert.Equal(t, []string{"feature_0", "feature_1", "feature_2"}, FeatureNames(3))
	assert.Empty(t, FeatureNames(0))
}

func TestGenerateClassificationShape(t *testing.T) {
	ds := GenerateClassification(100, 5, 42)

	assert.Len(t, ds.Features, 5)
	assert.Len(t, ds.Rows, 100)
	assert.Len(t, ds.Labels, 100)
	for _, row := range ds.Rows {
		assert.Len(t, row, 5)
	}
	for _, label := range ds.Labels {
		assert.Contains(t, []int{0, 1}, label)
	}
}

func TestGenerateClassificationDeterministic(t *testing.T) {
	a := GenerateClassification(50, 4, 7)
	b := GenerateClassification(50, 4, 7)
	c := GenerateClassification(50, 4, 8)

	assert.Equal(t, a.Rows, b.Rows)
	assert.Equal(t, a.Labels, b.Labels)
	assert.NotEqual(t, a.Rows, c.Rows)
}

func TestGenerateClassificationHasBothClasses(t *testing.T) {
	ds := GenerateClassification(500, 5, 1)

	counts := map[int]int{}
	for _, label := range ds.Labels {
		counts[label]++
	}
	assert.Positive(t, counts[0])
	assert.Positive(t, counts[1])
}

func TestGenerateInferenceBatchUnlabeled(t *testing.T) {
	ds := GenerateInferenceBatch(20, 3, 42)

	assert.Len(t, ds.Rows, 20)
	assert.Empty(t, ds.Labels)
	assert.Equal(t, FeatureNames(3), ds.Features)
}

func TestWriteCSVLabeled(t *testing.T) {
	ds := GenerateClassification(10, 3, 42)
	path := filepath.Join(t.TempDir(), "train.csv")

	require.NoError(t, ds.WriteCSV(path))

	records := readCSV(t, path)
	require.Len(t, records, 11)
	assert.Equal(t, []string{"feature_0", "feature_1", "feature_2", "label"}, records[0])
	for _, rec := range records[1:] {
		assert.Len(t, rec, 4)
		assert.Contains(t, []string{"0", "1"}, rec[3])
	}
}

func TestWriteCSVUnlabeled(t *testing.T) {
	ds := GenerateInferenceBatch(5, 2, 42)
	path := filepath.Join(t.TempDir(), "inference.csv")

	require.NoError(t, ds.WriteCSV(path))

	records := readCSV(t, path)
	require.Len(t, records, 6)
	assert.Equal(t, []string{"feature_0", "feature_1"}, records[0])
	for _, rec := range records[1:] {
		assert.Len(t, rec, 2)
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	return records
}
