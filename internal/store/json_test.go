package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/amishk599/jobsift/internal/model"
)

func strPtr(s string) *string { return &s }

func TestLoadMissingFileIsEmpty(t *testing.T) {
	jobs, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if jobs == nil || len(jobs) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", jobs)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"not": "an array"`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); !errors.Is(err, ErrMalformed) {
		t.Fatalf("Load: expected ErrMalformed, got %v", err)
	}

	jobs, err := LoadOrEmpty(path)
	if len(jobs) != 0 {
		t.Errorf("LoadOrEmpty returned %d jobs, want 0", len(jobs))
	}
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("LoadOrEmpty should still report ErrMalformed for logging, got %v", err)
	}
}

func TestLoadNullAndBlank(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{"null.json": "null", "blank.json": "  \n"} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		jobs, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%s): %v", name, err)
		}
		if jobs == nil || len(jobs) != 0 {
			t.Errorf("Load(%s) = %#v, want empty", name, jobs)
		}
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.json")
	jobs := []model.Job{
		{Company: "Acme", Title: "Engineer", Link: "https://example.com/1", Description: strPtr("Build <things> & stuff")},
		{Company: "Beta", Title: "Analyst", Link: "https://example.com/2"},
	}

	if err := Save(path, jobs); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(got))
	}
	if got[0].Description == nil || *got[0].Description != "Build <things> & stuff" {
		t.Errorf("description round trip = %v", got[0].Description)
	}
	if got[1].Description != nil {
		t.Errorf("expected nil description, got %q", *got[1].Description)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(raw)
	if !strings.Contains(text, `"description": null`) {
		t.Errorf("expected explicit null description in file:\n%s", text)
	}
	if !strings.Contains(text, "\n        \"company\": \"Acme\"") {
		t.Errorf("expected 4-space indentation:\n%s", text)
	}
	if !strings.Contains(text, "<things> & stuff") {
		t.Errorf("expected HTML characters unescaped:\n%s", text)
	}
}

func TestSaveNilWritesEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := Save(path, nil); err != nil {
		t.Fatalf("Save: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(raw)) != "[]" {
		t.Errorf("file = %q, want []", raw)
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jobs.json")
	for i := 0; i < 3; i++ {
		if err := Save(path, []model.Job{{Link: "https://example.com/x"}}); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("expected only jobs.json, found %v", names)
	}
}

func TestSaveUnwritableDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no-such-dir", "jobs.json")
	if err := Save(path, nil); err == nil {
		t.Fatal("expected error writing into a missing directory")
	}
}
