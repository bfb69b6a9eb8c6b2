package store

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Rayane20777/MusicStream/internal/models"
	apptest "github.com/Rayane20777/MusicStream/internal/testing"
)

func setupHandles(t *testing.T) *HandleManager {
	t.Helper()
	m, err := NewHandleManager(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create handle manager: %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func TestHandleManagerResolve(t *testing.T) {
	t.Run("materializes the payload bytes", func(t *testing.T) {
		m := setupHandles(t)
		payload := models.Payload{ID: "t1", Blob: []byte("audio bytes"), ContentType: "audio/mpeg"}

		handle, err := m.Resolve(payload)
		if err != nil {
			t.Fatalf("resolve failed: %v", err)
		}
		if !bytes.Equal(apptest.MustReadFile(t, handle), payload.Blob) {
			t.Error("handle content differs from payload")
		}
		if filepath.Ext(handle) != ".mp3" {
			t.Errorf("expected .mp3 extension, got %s", handle)
		}
	})

	t.Run("empty payload resolves to an empty handle", func(t *testing.T) {
		m := setupHandles(t)
		handle, err := m.Resolve(models.Payload{ID: "t1"})
		if err != nil {
			t.Fatalf("resolve failed: %v", err)
		}
		if handle != "" {
			t.Errorf("expected empty handle, got %s", handle)
		}
	})

	t.Run("each resolution is a distinct handle", func(t *testing.T) {
		m := setupHandles(t)
		payload := models.Payload{ID: "t1", Blob: []byte("x"), ContentType: "audio/wav"}

		first, err := m.Resolve(payload)
		if err != nil {
			t.Fatalf("resolve failed: %v", err)
		}
		second, err := m.Resolve(payload)
		if err != nil {
			t.Fatalf("resolve failed: %v", err)
		}
		if first == second {
			t.Errorf("expected distinct handles, got %s twice", first)
		}
		if m.Live("t1") != 2 {
			t.Errorf("expected 2 live handles, got %d", m.Live("t1"))
		}
	})

	t.Run("extension follows content type", func(t *testing.T) {
		m := setupHandles(t)
		tests := []struct {
			contentType string
			ext         string
		}{
			{"audio/mpeg", ".mp3"},
			{"audio/wav", ".wav"},
			{"audio/flac", ".flac"},
			{"image/jpeg", ".jpg"},
			{"image/png", ".png"},
			{"application/octet-stream", ".bin"},
		}
		for _, tt := range tests {
			handle, err := m.Resolve(models.Payload{ID: "t", Blob: []byte("x"), ContentType: tt.contentType})
			if err != nil {
				t.Fatalf("resolve failed: %v", err)
			}
			if !strings.HasSuffix(handle, tt.ext) {
				t.Errorf("%s: expected suffix %s, got %s", tt.contentType, tt.ext, handle)
			}
		}
	})
}

func TestHandleManagerRelease(t *testing.T) {
	t.Run("removes the file and forgets the handle", func(t *testing.T) {
		m := setupHandles(t)
		handle, err := m.Resolve(models.Payload{ID: "t1", Blob: []byte("x"), ContentType: "audio/mpeg"})
		if err != nil {
			t.Fatalf("resolve failed: %v", err)
		}

		m.Release(handle)
		apptest.AssertFileAbsent(t, handle)
		if m.Live("t1") != 0 {
			t.Errorf("expected 0 live handles, got %d", m.Live("t1"))
		}
	})

	t.Run("double release is a no-op", func(t *testing.T) {
		m := setupHandles(t)
		handle, err := m.Resolve(models.Payload{ID: "t1", Blob: []byte("x"), ContentType: "audio/mpeg"})
		if err != nil {
			t.Fatalf("resolve failed: %v", err)
		}
		m.Release(handle)
		m.Release(handle)
		m.Release("")
		m.Release("/nonexistent/handle.mp3")
	})

	t.Run("ReleaseTrack revokes every handle for the ID", func(t *testing.T) {
		m := setupHandles(t)
		payload := models.Payload{ID: "t1", Blob: []byte("x"), ContentType: "audio/mpeg"}
		first, _ := m.Resolve(payload)
		second, _ := m.Resolve(payload)
		other, _ := m.Resolve(models.Payload{ID: "t2", Blob: []byte("y"), ContentType: "image/png"})

		m.ReleaseTrack("t1")
		apptest.AssertFileAbsent(t, first)
		apptest.AssertFileAbsent(t, second)
		apptest.AssertFileExists(t, other)
		if m.Live("t1") != 0 || m.Live("t2") != 1 {
			t.Errorf("unexpected live counts: t1=%d t2=%d", m.Live("t1"), m.Live("t2"))
		}
	})
}

func TestHandleManagerClose(t *testing.T) {
	dir := t.TempDir()
	m, err := NewHandleManager(dir)
	if err != nil {
		t.Fatalf("failed to create handle manager: %v", err)
	}

	handle, err := m.Resolve(models.Payload{ID: "t1", Blob: []byte("x"), ContentType: "audio/mpeg"})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	if err := m.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	apptest.AssertFileAbsent(t, handle)
	apptest.AssertFileAbsent(t, filepath.Dir(handle))

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read base dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("session directory should be gone, found %d entries", len(entries))
	}
}
