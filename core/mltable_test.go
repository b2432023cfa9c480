package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestWriteMLTableSpec(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteMLTableSpec(dir, "train.csv"))

	data, err := os.ReadFile(filepath.Join(dir, "MLTable"))
	require.NoError(t, err)

	var spec mlTableSpec
	require.NoError(t, yaml.Unmarshal(data, &spec))
	assert.Equal(t, "mltable", spec.Type)
	require.Len(t, spec.Paths, 1)
	assert.Equal(t, "./train.csv", spec.Paths[0].File)
	require.Len(t, spec.Transformations, 1)
	assert.Equal(t, ",", spec.Transformations[0].ReadDelimited.Delimiter)
	assert.Equal(t, "all_files_same_headers", spec.Transformations[0].ReadDelimited.Header)
	assert.Equal(t, "utf8", spec.Transformations[0].ReadDelimited.Encoding)
}

func TestBuildMLTableDir(t *testing.T) {
	base := t.TempDir()
	csvPath := filepath.Join(base, "train.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("a,b\n1,2\n"), 0o644))

	dir := filepath.Join(base, "train_mltable")
	got, err := BuildMLTableDir(csvPath, dir)
	require.NoError(t, err)
	assert.Equal(t, dir, got)

	copied, err := os.ReadFile(filepath.Join(dir, "train.csv"))
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", string(copied))

	_, err = os.Stat(filepath.Join(dir, "MLTable"))
	assert.NoError(t, err)
}

func TestBuildMLTableDirReplacesStaleContents(t *testing.T) {
	base := t.TempDir()
	csvPath := filepath.Join(base, "data.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("x\n1\n"), 0o644))

	dir := filepath.Join(base, "data_mltable")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	stale := filepath.Join(dir, "old.csv")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o644))

	_, err := BuildMLTableDir(csvPath, dir)
	require.NoError(t, err)

	_, err = os.Stat(stale)
	assert.True(t, os.IsNotExist(err))
}

func TestBuildMLTableDirMissingCSV(t *testing.T) {
	base := t.TempDir()
	_, err := BuildMLTableDir(filepath.Join(base, "missing.csv"), filepath.Join(base, "out"))
	assert.Error(t, err)
}
