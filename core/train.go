package core

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"time"
)

// Training hyperparameters. The model only has to be good enough to exercise
// the registration and monitoring flows, so these are fixed rather than tuned.
const (
	learningRate = 0.1
	trainEpochs  = 200
)

// LogisticModel is a binary logistic-regression classifier over named
// features. The JSON form is the registered model artifact.
type LogisticModel struct {
	Features  []string  `json:"features"`
	Weights   []float64 `json:"weights"`
	Bias      float64   `json:"bias"`
	Samples   int       `json:"trainingSamples"`
	TrainedAt time.Time `json:"trainedAt"`
}

// TrainLogistic fits a logistic-regression model to a labeled dataset with
// full-batch gradient descent.
func TrainLogistic(ds *Dataset) (*LogisticModel, error) {
	if len(ds.Rows) == 0 {
		return nil, fmt.Errorf("cannot train on an empty dataset")
	}
	if len(ds.Labels) != len(ds.Rows) {
		return nil, fmt.Errorf("dataset has %d rows but %d labels", len(ds.Rows), len(ds.Labels))
	}

	n := len(ds.Rows)
	k := len(ds.Features)
	weights := make([]float64, k)
	bias := 0.0

	gradW := make([]float64, k)
	for range trainEpochs {
		for j := range gradW {
			gradW[j] = 0
		}
		gradB := 0.0

		for i, row := range ds.Rows {
			p := sigmoid(dot(weights, row) + bias)
			diff := p - float64(ds.Labels[i])
			for j, v := range row {
				gradW[j] += diff * v
			}
			gradB += diff
		}

		for j := range weights {
			weights[j] -= learningRate * gradW[j] / float64(n)
		}
		bias -= learningRate * gradB / float64(n)
	}

	return &LogisticModel{
		Features:  append([]string{}, ds.Features...),
		Weights:   weights,
		Bias:      bias,
		Samples:   n,
		TrainedAt: time.Now().UTC(),
	}, nil
}

// Predict returns the positive-class probability for one row.
func (m *LogisticModel) Predict(row []float64) float64 {
	return sigmoid(dot(m.Weights, row) + m.Bias)
}

// Accuracy scores the model against a labeled dataset at the 0.5 cutoff.
func (m *LogisticModel) Accuracy(ds *Dataset) float64 {
	if len(ds.Rows) == 0 {
		return 0
	}
	correct := 0
	for i, row := range ds.Rows {
		pred := 0
		if m.Predict(row) >= 0.5 {
			pred = 1
		}
		if pred == ds.Labels[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(ds.Rows))
}

// Save writes the model artifact as indented JSON.
func (m *LogisticModel) Save(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create model artifact %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("failed to encode model artifact: %w", err)
	}
	return nil
}

// LoadModel reads a model artifact written by Save.
func LoadModel(path string) (*LogisticModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model artifact %s: %w", path, err)
	}
	var m LogisticModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to decode model artifact %s: %w", path, err)
	}
	return &m, nil
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
