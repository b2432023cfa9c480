package core

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// MLTable descriptor model. The monitoring signals require datasets in
// MLTable form, so registered CSVs are wrapped in a folder holding the CSV
// plus this descriptor.
type (
	mlTablePath struct {
		File string `yaml:"file"`
	}

	mlTableDelimited struct {
		Delimiter string `yaml:"delimiter"`
		Header    string `yaml:"header"`
		Encoding  string `yaml:"encoding"`
	}

	mlTableTransformation struct {
		ReadDelimited mlTableDelimited `yaml:"read_delimited"`
	}

	mlTableSpec struct {
		Type            string                  `yaml:"type"`
		Paths           []mlTablePath           `yaml:"paths"`
		Transformations []mlTableTransformation `yaml:"transformations"`
	}
)

// WriteMLTableSpec writes the MLTable YAML descriptor referencing csvName
// into dir. The descriptor file is always named "MLTable", per the platform
// convention.
func WriteMLTableSpec(dir, csvName string) error {
	spec := mlTableSpec{
		Type:  "mltable",
		Paths: []mlTablePath{{File: "./" + csvName}},
		Transformations: []mlTableTransformation{{
			ReadDelimited: mlTableDelimited{
				Delimiter: ",",
				Header:    "all_files_same_headers",
				Encoding:  "utf8",
			},
		}},
	}

	data, err := yaml.Marshal(&spec)
	if err != nil {
		return fmt.Errorf("failed to marshal MLTable spec: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "MLTable"), data, 0o644); err != nil {
		return fmt.Errorf("failed to write MLTable spec: %w", err)
	}
	return nil
}

// BuildMLTableDir rebuilds dir as an MLTable folder containing a copy of the
// CSV at csvPath plus its descriptor, and returns the folder path.
func BuildMLTableDir(csvPath, dir string) (string, error) {
	if err := os.RemoveAll(dir); err != nil {
		return "", fmt.Errorf("failed to reset MLTable dir %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create MLTable dir %s: %w", dir, err)
	}

	csvName := filepath.Base(csvPath)
	if err := copyFile(csvPath, filepath.Join(dir, csvName)); err != nil {
		return "", err
	}
	if err := WriteMLTableSpec(dir, csvName); err != nil {
		return "", err
	}
	return dir, nil
}

// copyFile copies src to dst, truncating dst if present.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}
	return nil
}
