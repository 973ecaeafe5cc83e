package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nao1215/webdetect/internal/config"
	"github.com/nao1215/webdetect/internal/model"
	"github.com/nao1215/webdetect/internal/pipeline"
	"github.com/nao1215/webdetect/internal/report"
)

// stubAnnotator returns a fixed result and records the source it saw.
type stubAnnotator struct {
	result *model.Result
	err    error
	got    model.Source
}

func (s *stubAnnotator) Detect(_ context.Context, src model.Source) (*model.Result, error) {
	s.got = src
	return s.result, s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleResult() *model.Result {
	return &model.Result{
		PagesWithMatchingImages: []model.WebPage{{URL: "https://example.com/page"}},
		FullMatchingImages:      []model.WebImage{{URL: "https://example.com/full.jpg"}},
		PartialMatchingImages:   []model.WebImage{},
		WebEntities:             []model.WebEntity{{Score: 0.75, Description: "Cat"}},
	}
}

// TestNewDetectCmd tests the detect command creation.
func TestNewDetectCmd(t *testing.T) {
	t.Parallel()

	cmd := NewDetectCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "detect <image_url>" {
			t.Errorf("expected use 'detect <image_url>', got %q", cmd.Use)
		}
	})

	t.Run("describes the positional argument", func(t *testing.T) {
		t.Parallel()
		if !strings.Contains(cmd.Long, "The image to detect, can be web URI, Google Cloud Storage, or path to local file.") {
			t.Error("expected long description to document image_url")
		}
	})

	t.Run("requires exactly one argument", func(t *testing.T) {
		t.Parallel()
		if err := cmd.Args(cmd, []string{}); err == nil {
			t.Error("expected error for zero arguments")
		}
		if err := cmd.Args(cmd, []string{"a", "b"}); err == nil {
			t.Error("expected error for two arguments")
		}
		if err := cmd.Args(cmd, []string{"a"}); err != nil {
			t.Errorf("unexpected error for one argument: %v", err)
		}
	})

	t.Run("has flags", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name      string
			shorthand string
		}{
			{"json", "j"},
			{"markdown", "m"},
			{"output", "o"},
			{"config", "c"},
			{"credentials", ""},
			{"api-key", ""},
			{"endpoint", ""},
		}
		for _, tt := range tests {
			flag := cmd.Flags().Lookup(tt.name)
			if flag == nil {
				t.Errorf("expected %s flag", tt.name)
				continue
			}
			if flag.Shorthand != tt.shorthand {
				t.Errorf("expected %s shorthand %q, got %q", tt.name, tt.shorthand, flag.Shorthand)
			}
		}
	})
}

// TestRunDetect tests the detect pipeline wiring with a stub annotator.
func TestRunDetect(t *testing.T) {
	t.Parallel()

	t.Run("remote reference is passed through", func(t *testing.T) {
		t.Parallel()

		stub := &stubAnnotator{result: sampleResult()}
		result, err := runDetect(context.Background(), "gs://bucket/cat.jpg", stub, discardLogger())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff(sampleResult(), result); diff != "" {
			t.Errorf("result mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff(model.RemoteReference{URI: "gs://bucket/cat.jpg"}, stub.got); diff != "" {
			t.Errorf("source mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("local file is read", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "image.bin")
		if err := os.WriteFile(path, []byte("raw bytes"), 0600); err != nil {
			t.Fatalf("failed to write image: %v", err)
		}

		stub := &stubAnnotator{result: model.NewResult()}
		if _, err := runDetect(context.Background(), path, stub, discardLogger()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		local, ok := stub.got.(model.LocalBytes)
		if !ok {
			t.Fatalf("expected LocalBytes, got %T", stub.got)
		}
		if string(local.Content) != "raw bytes" {
			t.Errorf("expected file content, got %q", local.Content)
		}
	})

	t.Run("missing local file is an io error", func(t *testing.T) {
		t.Parallel()

		stub := &stubAnnotator{}
		_, err := runDetect(context.Background(), filepath.Join(t.TempDir(), "missing.jpg"), stub, discardLogger())
		if kind, ok := pipeline.KindOf(err); !ok || kind != pipeline.KindIO {
			t.Errorf("expected io error, got %v", err)
		}
		if stub.got != nil {
			t.Error("annotator should not be called when the file cannot be read")
		}
	})

	t.Run("empty reference is a validation error", func(t *testing.T) {
		t.Parallel()

		_, err := runDetect(context.Background(), "", &stubAnnotator{}, discardLogger())
		if !errors.Is(err, pipeline.ErrImagePathRequired) {
			t.Errorf("expected ErrImagePathRequired, got %v", err)
		}
	})

	t.Run("remote failure is returned", func(t *testing.T) {
		t.Parallel()

		stub := &stubAnnotator{err: errors.New("permission denied")}
		_, err := runDetect(context.Background(), "https://example.com/cat.jpg", stub, discardLogger())
		if err == nil || err.Error() != "permission denied" {
			t.Errorf("expected remote error message, got %v", err)
		}
	})
}

// TestOutputReport tests report output in every format.
func TestOutputReport(t *testing.T) {
	t.Parallel()

	t.Run("text report to stdout", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if err := outputReport(config.NewConfig(), &buf, sampleResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := "\n1 Pages with matching images retrieved\n" +
			"Url   : https://example.com/page\n" +
			"\n1 Full Matches found: \n" +
			"Url  : https://example.com/full.jpg\n" +
			"\n1 Web entities found: \n" +
			"Score      : 0.75\n" +
			"Description: Cat\n"
		if diff := cmp.Diff(want, buf.String()); diff != "" {
			t.Errorf("text report mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty result prints nothing", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if err := outputReport(config.NewConfig(), &buf, model.NewResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if buf.Len() != 0 {
			t.Errorf("expected no output, got %q", buf.String())
		}
	})

	t.Run("json report round trips", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cfg.JSONReport = true

		var buf bytes.Buffer
		if err := outputReport(cfg, &buf, sampleResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var payload report.Payload
		if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
			t.Fatalf("failed to parse JSON: %v", err)
		}
		if diff := cmp.Diff(sampleResult(), payload.Result()); diff != "" {
			t.Errorf("payload mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("markdown report", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cfg.MarkdownReport = true

		var buf bytes.Buffer
		if err := outputReport(cfg, &buf, sampleResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "# Web Detection Report") {
			t.Errorf("expected markdown heading, got %q", buf.String())
		}
	})

	t.Run("report file with parent directories", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cfg.JSONReport = true
		cfg.ReportFile = filepath.Join(t.TempDir(), "subdir", "nested", "report.json")

		var stdout bytes.Buffer
		if err := outputReport(cfg, &stdout, sampleResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stdout.Len() != 0 {
			t.Errorf("expected nothing on stdout, got %q", stdout.String())
		}

		content, err := os.ReadFile(cfg.ReportFile)
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}
		if !strings.Contains(string(content), `"pages_with_matching_images"`) {
			t.Errorf("expected JSON report in file, got %q", content)
		}

		if runtime.GOOS != "windows" {
			info, err := os.Stat(cfg.ReportFile)
			if err != nil {
				t.Fatalf("failed to stat report: %v", err)
			}
			if perm := info.Mode().Perm(); perm != 0600 {
				t.Errorf("expected permissions 0600, got %o", perm)
			}
		}
	})
}

// TestRunDetectCmdErrors tests failures that happen before any remote call.
func TestRunDetectCmdErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    func(t *testing.T) []string
		wantErr string
	}{
		{
			name: "conflicting formats",
			args: func(_ *testing.T) []string {
				return []string{"detect", "--json", "--markdown", "https://example.com/cat.jpg"}
			},
			wantErr: "conflicting report formats",
		},
		{
			name: "missing credentials file",
			args: func(t *testing.T) []string {
				return []string{"detect", "--credentials", filepath.Join(t.TempDir(), "missing.json"), "cat.jpg"}
			},
			wantErr: "credentials file not found",
		},
		{
			name: "missing config file",
			args: func(t *testing.T) []string {
				return []string{"detect", "-c", filepath.Join(t.TempDir(), "missing.yaml"), "cat.jpg"}
			},
			wantErr: "configuration file not found",
		},
		{
			name: "no arguments",
			args: func(_ *testing.T) []string {
				return []string{"detect"}
			},
			wantErr: "accepts 1 arg(s)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := NewRootCmd()
			root.SetOut(io.Discard)
			root.SetErr(io.Discard)
			root.SetArgs(tt.args(t))

			err := root.Execute()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
