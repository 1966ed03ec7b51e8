package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joshuapare/icopatch/internal/imaging"
	"github.com/joshuapare/icopatch/internal/testutil"
	"github.com/joshuapare/icopatch/rsrc"
	"github.com/joshuapare/icopatch/rsrc/rsrctest"
)

// testExe registers an executable with the given icon ids in an in-memory
// store, points every command at that store, and returns the exe path and
// the store. A two-image icon sits next to the exe as <exe>.ico.
func testExe(t *testing.T, groups, icons []uint16) (string, *rsrctest.MemStore) {
	t.Helper()
	dir := t.TempDir()
	exe := filepath.Join(dir, "app.exe")

	store := rsrctest.NewMemStore()
	store.Put(exe, rsrctest.IconSet(groups, icons))
	testutil.WriteFile(t, dir, "app.ico",
		testutil.IconContainer(testutil.Square(16, 296), testutil.Square(32, 1128)))

	orig := newStore
	newStore = func() rsrc.Store { return store }
	t.Cleanup(func() { newStore = orig })
	return exe, store
}

// resetFlags restores global and command flags to their defaults.
func resetFlags() {
	verbose, quiet, jsonOut = false, false, false
	logDir, backendName = "", "portable"
	langID = rsrc.DefaultOptions().Lang
	ceiling = rsrc.DefaultScanCeiling

	setIcon, setSizes, setBackup, setDryRun = "", nil, false, false
	addIcon, addSizes, addBackup, addDryRun = "", nil, false, false
	removeBackup, removeDryRun = false, false
	inspectFirstID = 1
	convertOutput, convertSizes = "", imaging.DefaultSizes
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	// Save original stdout
	origStdout := os.Stdout

	// Create a pipe to capture output
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}

	// Redirect stdout to pipe
	os.Stdout = w

	// Run function
	fnErr := fn()

	// Close write end and restore stdout
	w.Close()
	os.Stdout = origStdout

	// Read captured output
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("failed to read output: %v", err)
	}

	return buf.String(), fnErr
}

// assertJSON checks that output is valid JSON and decodes it
func assertJSON(t *testing.T, output string) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Errorf("invalid JSON output: %v\nOutput: %s", err, output)
	}
	return result
}

// assertContains checks that output contains all expected strings
func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("output missing expected string %q\nGot: %s", want, output)
		}
	}
}
