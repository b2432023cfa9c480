package core

import (
	"encoding/csv"
	"fmt"
	"math"
	"math/rand"
	"os"
	"strconv"
)

// Dataset is an in-memory tabular dataset with optional binary labels.
type Dataset struct {
	Features []string
	Rows     [][]float64
	Labels   []int // empty for unlabeled (inference) data
}

// FeatureNames returns the canonical feature column names for a width,
// "feature_0" through "feature_<n-1>".
func FeatureNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("feature_%d", i)
	}
	return names
}

// GenerateClassification produces a synthetic binary classification dataset.
// A random linear separator over the first informative features determines the
// label, with gaussian noise so the classes overlap slightly. The same seed
// always yields the same dataset.
func GenerateClassification(samples, features int, seed int64) *Dataset {
	rng := rand.New(rand.NewSource(seed))

	informative := features * 3 / 5
	if informative < 1 {
		informative = 1
	}

	separator := make([]float64, informative)
	for i := range separator {
		separator[i] = rng.Float64()*2 - 1
	}

	ds := &Dataset{
		Features: FeatureNames(features),
		Rows:     make([][]float64, 0, samples),
		Labels:   make([]int, 0, samples),
	}
	for range samples {
		row := make([]float64, features)
		for j := range row {
			row[j] = rng.NormFloat64()
		}

		margin := rng.NormFloat64() * 0.25
		for j := range separator {
			margin += separator[j] * row[j]
		}
		label := 0
		if margin > 0 {
			label = 1
		}

		ds.Rows = append(ds.Rows, row)
		ds.Labels = append(ds.Labels, label)
	}
	return ds
}

// GenerateInferenceBatch produces a small unlabeled batch shaped like the
// training data, simulating production inputs for drift monitoring.
func GenerateInferenceBatch(samples, features int, seed int64) *Dataset {
	rng := rand.New(rand.NewSource(seed))

	ds := &Dataset{
		Features: FeatureNames(features),
		Rows:     make([][]float64, 0, samples),
	}
	for range samples {
		row := make([]float64, features)
		for j := range row {
			// Shifted slightly from the training distribution so a drift
			// monitor has something to notice.
			row[j] = rng.NormFloat64()*0.9 + 0.1
		}
		ds.Rows = append(ds.Rows, row)
	}
	return ds
}

// WriteCSV writes the dataset with a header row. Labeled datasets get a
// trailing "label" column.
func (d *Dataset) WriteCSV(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	w := csv.NewWriter(file)
	defer w.Flush()

	labeled := len(d.Labels) == len(d.Rows) && len(d.Labels) > 0

	header := append([]string{}, d.Features...)
	if labeled {
		header = append(header, "label")
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	rec := make([]string, 0, len(header))
	for i, row := range d.Rows {
		rec = rec[:0]
		for _, v := range row {
			rec = append(rec, formatFeature(v))
		}
		if labeled {
			rec = append(rec, strconv.Itoa(d.Labels[i]))
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i, err)
		}
	}
	return nil
}

// formatFeature renders a feature value compactly without scientific notation
// surprises for the usual magnitudes.
func formatFeature(v float64) string {
	if math.Abs(v) < 1e-12 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', 6, 64)
}
