package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Rayane20777/MusicStream/internal/shared"
	"github.com/urfave/cli/v3"
)

func testRunner(t *testing.T) (*Runner, *bytes.Buffer) {
	t.Helper()
	tmpDir := t.TempDir()

	config := shared.DefaultConfig()
	config.Database.Path = filepath.Join(tmpDir, "library.db")
	config.Handles.Dir = tmpDir

	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Config: config,
		Logger: shared.NewLogger(&bytes.Buffer{}),
		Output: output,
	})
	return runner, output
}

func runCLI(t *testing.T, runner *Runner, args ...string) error {
	t.Helper()
	app := &cli.Command{Name: "musicstream", Commands: runner.register()}
	return app.Run(context.Background(), append([]string{"musicstream"}, args...))
}

func writeAudioFile(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "song.mp3")
	if err := os.WriteFile(path, []byte("fake mp3 bytes"), 0644); err != nil {
		t.Fatalf("failed to write audio file: %v", err)
	}
	return path
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}

			runner := NewRunner(RunnerOpts{Config: config, Logger: logger, Output: output})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})
			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})
			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		if len(commands) != 7 {
			t.Errorf("expected 7 commands, got %d", len(commands))
		}
		for i, cmd := range commands {
			if cmd == nil {
				t.Errorf("command at index %d is nil", i)
			}
		}
	})

	t.Run("writeJSON", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output})

		if err := runner.writeJSON(map[string]string{"key": "value"}, true); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		result := output.String()
		if !strings.Contains(result, `"key": "value"`) {
			t.Errorf("expected formatted JSON, got %s", result)
		}
		if !strings.HasSuffix(result, "\n") {
			t.Error("expected output to end with newline")
		}
	})
}

func TestRunnerCommands(t *testing.T) {
	t.Run("add then list", func(t *testing.T) {
		runner, output := testRunner(t)
		audioPath := writeAudioFile(t, t.TempDir())

		err := runCLI(t, runner, "add",
			"--title", "First Song",
			"--artist", "Some Artist",
			"--category", "pop",
			"--audio", audioPath,
		)
		if err != nil {
			t.Fatalf("add failed: %v", err)
		}
		if !strings.Contains(output.String(), "added") {
			t.Errorf("expected add confirmation, got %s", output.String())
		}

		output.Reset()
		if err := runCLI(t, runner, "list"); err != nil {
			t.Fatalf("list failed: %v", err)
		}
		listed := output.String()
		if !strings.Contains(listed, "First Song") || !strings.Contains(listed, "1 tracks") {
			t.Errorf("expected the track listed, got %s", listed)
		}
	})

	t.Run("add rejects an unknown category", func(t *testing.T) {
		runner, _ := testRunner(t)
		audioPath := writeAudioFile(t, t.TempDir())

		err := runCLI(t, runner, "add",
			"--title", "Bad",
			"--artist", "A",
			"--category", "polka",
			"--audio", audioPath,
		)
		if err == nil {
			t.Fatal("expected an error for an unknown category")
		}
	})

	t.Run("list with search filter", func(t *testing.T) {
		runner, output := testRunner(t)
		audioPath := writeAudioFile(t, t.TempDir())

		for _, title := range []string{"Kind of Blue", "Blackstar"} {
			if err := runCLI(t, runner, "add",
				"--title", title, "--artist", "X", "--category", "rock", "--audio", audioPath,
			); err != nil {
				t.Fatalf("add failed: %v", err)
			}
		}

		output.Reset()
		if err := runCLI(t, runner, "list", "--search", "black"); err != nil {
			t.Fatalf("list failed: %v", err)
		}
		listed := output.String()
		if !strings.Contains(listed, "Blackstar") || strings.Contains(listed, "Kind of Blue") {
			t.Errorf("expected only Blackstar, got %s", listed)
		}
	})

	t.Run("list as CSV", func(t *testing.T) {
		runner, output := testRunner(t)
		audioPath := writeAudioFile(t, t.TempDir())

		if err := runCLI(t, runner, "add",
			"--title", "One", "--artist", "X", "--category", "rap", "--audio", audioPath,
		); err != nil {
			t.Fatalf("add failed: %v", err)
		}

		output.Reset()
		if err := runCLI(t, runner, "list", "--csv"); err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if !strings.HasPrefix(output.String(), "ID,Title,Artist") {
			t.Errorf("expected CSV header, got %s", output.String())
		}
	})

	t.Run("update changes only the set flags", func(t *testing.T) {
		runner, output := testRunner(t)
		audioPath := writeAudioFile(t, t.TempDir())

		if err := runCLI(t, runner, "add",
			"--title", "Original", "--artist", "Keep Me", "--category", "pop", "--audio", audioPath,
		); err != nil {
			t.Fatalf("add failed: %v", err)
		}
		added := output.String()
		id := strings.Fields(added)[1]

		output.Reset()
		if err := runCLI(t, runner, "update", "--id", id, "--title", "Renamed"); err != nil {
			t.Fatalf("update failed: %v", err)
		}
		if !strings.Contains(output.String(), "Renamed") || !strings.Contains(output.String(), "Keep Me") {
			t.Errorf("expected new title and retained artist, got %s", output.String())
		}
	})

	t.Run("update unknown ID fails", func(t *testing.T) {
		runner, _ := testRunner(t)
		if err := runCLI(t, runner, "setup", "--config", filepath.Join(t.TempDir(), "config.toml")); err != nil {
			t.Fatalf("setup failed: %v", err)
		}
		if err := runCLI(t, runner, "update", "--id", "ghost", "--title", "X"); err == nil {
			t.Fatal("expected an error for an unknown ID")
		}
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		runner, output := testRunner(t)
		audioPath := writeAudioFile(t, t.TempDir())

		if err := runCLI(t, runner, "add",
			"--title", "Doomed", "--artist", "X", "--category", "pop", "--audio", audioPath,
		); err != nil {
			t.Fatalf("add failed: %v", err)
		}
		id := strings.Fields(output.String())[1]

		if err := runCLI(t, runner, "delete", "--id", id); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if err := runCLI(t, runner, "delete", "--id", id); err != nil {
			t.Fatalf("second delete failed: %v", err)
		}

		output.Reset()
		if err := runCLI(t, runner, "list"); err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if !strings.Contains(output.String(), "0 tracks") {
			t.Errorf("expected empty library, got %s", output.String())
		}
	})

	t.Run("setup creates the config file", func(t *testing.T) {
		runner, _ := testRunner(t)
		configPath := filepath.Join(t.TempDir(), "config.toml")

		if err := runCLI(t, runner, "setup", "--config", configPath); err != nil {
			t.Fatalf("setup failed: %v", err)
		}
		if _, err := os.Stat(configPath); err != nil {
			t.Errorf("config file should exist: %v", err)
		}
		if _, err := os.Stat(runner.config.Database.Path); err != nil {
			t.Errorf("database file should exist: %v", err)
		}
	})
}

func TestContentTypeFor(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"song.mp3", "audio/mpeg"},
		{"SONG.MP3", "audio/mpeg"},
		{"track.wav", "audio/wav"},
		{"track.flac", "audio/flac"},
		{"cover.jpg", "image/jpeg"},
		{"cover.jpeg", "image/jpeg"},
		{"cover.png", "image/png"},
		{"mystery.dat", "application/octet-stream"},
		{"noext", "application/octet-stream"},
	}

	for _, tt := range tests {
		if got := contentTypeFor(tt.path); got != tt.want {
			t.Errorf("contentTypeFor(%s) = %s, want %s", tt.path, got, tt.want)
		}
	}
}

func TestReadPayload(t *testing.T) {
	t.Run("reads bytes and infers content type", func(t *testing.T) {
		path := writeAudioFile(t, t.TempDir())
		payload, err := readPayload(path)
		if err != nil {
			t.Fatalf("readPayload failed: %v", err)
		}
		if string(payload.Blob) != "fake mp3 bytes" {
			t.Errorf("unexpected payload bytes: %q", payload.Blob)
		}
		if payload.ContentType != "audio/mpeg" {
			t.Errorf("expected audio/mpeg, got %s", payload.ContentType)
		}
	})

	t.Run("empty path fails", func(t *testing.T) {
		if _, err := readPayload(""); err == nil {
			t.Fatal("expected an error for an empty path")
		}
	})

	t.Run("missing file fails", func(t *testing.T) {
		if _, err := readPayload("/nonexistent/file.mp3"); err == nil {
			t.Fatal("expected an error for a missing file")
		}
	})
}
