//go:build basic || database

package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

var (
	// sharedDriftmonPath holds the path to a shared driftmon binary built once for all tests.
	sharedDriftmonPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	// Run all tests
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getDriftmonBinary returns the path to the driftmon binary, building it once if needed.
func getDriftmonBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		// Create a temp directory for the binary
		var err error
		tempDir, err = os.MkdirTemp("", "driftmon-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		driftmonPath := filepath.Join(tempDir, "driftmon")
		buildCmd := exec.Command("go", "build", "-o", driftmonPath, ".")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		err = buildCmd.Run()
		if err != nil {
			panic(fmt.Sprintf("failed to build driftmon: %v", err))
		}

		sharedDriftmonPath = driftmonPath
	})

	return sharedDriftmonPath
}

// runDriftmonCommand runs the shared binary with the given args from a work
// directory, returning combined output for assertions.
func runDriftmonCommand(t *testing.T, workDir string, env []string, args ...string) (string, error) {
	t.Helper()
	driftmonPath := getDriftmonBinary()
	cmd := exec.Command(driftmonPath, args...)
	cmd.Dir = workDir
	cmd.Env = append(os.Environ(), env...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("Command failed: %s\nOutput: %s", cmd.String(), string(output))
	}
	return string(output), err
}
