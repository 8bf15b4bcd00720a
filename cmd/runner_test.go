package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"

	"schedctl/internal/api"
	"schedctl/internal/prefs"
	"schedctl/internal/shared"
	tu "schedctl/internal/testing"
)

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			store := prefs.NewMemoryStore()
			session := api.NewSession(store)
			client := api.NewClient("", api.NewHTTPClient(session, 0))

			runner := NewRunner(RunnerOpts{
				Config:  config,
				Client:  client,
				Session: session,
				Store:   store,
				Logger:  logger,
				Output:  output,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.client != client {
				t.Error("expected client to be set")
			}
			if runner.session != session {
				t.Error("expected session to be set")
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

		t.Run("with nil session builds one from the store", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})
			if runner.session == nil {
				t.Error("expected a default session")
			}
			if runner.client == nil {
				t.Error("expected a default client")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
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

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, false); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			expected := `{"key":"value"}` + "\n"
			if output.String() != expected {
				t.Errorf("expected %q, got %q", expected, output.String())
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

			// channels cannot be marshaled to JSON
			err := runner.writeJSON(make(chan int), false)
			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil {
				t.Fatal("expected error writing newline")
			}
			if !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writePlain("hello %s", "world"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if output.String() != "hello world" {
				t.Errorf("expected 'hello world', got %q", output.String())
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writePlain("test")
			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		if len(commands) != 9 {
			t.Errorf("expected 9 top-level commands, got %d", len(commands))
		}
	})
}

// newTestApp wires a runner against a fake backend and returns the cli
// app plus the captured output buffer.
func newTestApp(t *testing.T, handler http.Handler) (*cli.Command, *bytes.Buffer) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	output := &bytes.Buffer{}
	store := prefs.NewMemoryStore()
	session := api.NewSession(store)
	runner := NewRunner(RunnerOpts{
		Client:  api.NewClient(server.URL, api.NewHTTPClient(session, 0)),
		Session: session,
		Store:   store,
		Output:  output,
	})

	return &cli.Command{Name: "schedctl", Commands: runner.register()}, output
}

func TestCommands(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
	mux.HandleFunc("POST /api/sync", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"synced": "started", "details": "running in background"})
	})
	mux.HandleFunc("GET /api/scheduler/overview", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"status":    "running",
			"intervals": []string{"08:00", "18:00"},
			"runs":      []map[string]any{{"time": "2024-01-01 08:00", "status": "success"}},
		})
	})
	mux.HandleFunc("GET /api/account", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{
			"USERNAME": "student", "PASSWORD": "secret",
			"USER_MAIL_ACCOUNT": "a@b.c", "PARSING_INTERVALS": "08:00", "CALENDAR_NAME": "VVSU",
		})
	})
	mux.HandleFunc("GET /api/bot/settings", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]bool{"bot_enabled": true})
	})
	mux.HandleFunc("GET /api/logs/sql", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": 1, "ts": "2024-01-01T00:00:00", "level": "INFO", "msg": "started"},
		})
	})

	t.Run("auth status reports health and session", func(t *testing.T) {
		app, output := newTestApp(t, mux)
		if err := app.Run(context.Background(), []string{"schedctl", "auth", "status"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "Service is healthy") {
			t.Errorf("unexpected output: %s", output.String())
		}
		if !strings.Contains(output.String(), "Not logged in") {
			t.Errorf("expected unauthenticated session, got: %s", output.String())
		}
	})

	t.Run("sync prints the ack", func(t *testing.T) {
		app, output := newTestApp(t, mux)
		if err := app.Run(context.Background(), []string{"schedctl", "sync"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "Sync started") {
			t.Errorf("unexpected output: %s", output.String())
		}
	})

	t.Run("scheduler status prints runs", func(t *testing.T) {
		app, output := newTestApp(t, mux)
		if err := app.Run(context.Background(), []string{"schedctl", "scheduler", "status"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		for _, want := range []string{"running", "08:00, 18:00", "✓ 2024-01-01 08:00"} {
			if !strings.Contains(output.String(), want) {
				t.Errorf("expected %q in output: %s", want, output.String())
			}
		}
	})

	t.Run("account show masks the password", func(t *testing.T) {
		app, output := newTestApp(t, mux)
		if err := app.Run(context.Background(), []string{"schedctl", "account", "show"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if strings.Contains(output.String(), "secret") {
			t.Errorf("expected password to be masked: %s", output.String())
		}
		if !strings.Contains(output.String(), "********") {
			t.Errorf("expected mask in output: %s", output.String())
		}
	})

	t.Run("bot status reports enabled", func(t *testing.T) {
		app, output := newTestApp(t, mux)
		if err := app.Run(context.Background(), []string{"schedctl", "bot", "status"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "enabled") {
			t.Errorf("unexpected output: %s", output.String())
		}
	})

	t.Run("logs save exports a csv file", func(t *testing.T) {
		app, output := newTestApp(t, mux)
		path := filepath.Join(t.TempDir(), "logs.csv")
		if err := app.Run(context.Background(), []string{"schedctl", "logs", "--save", path}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("expected CSV file to exist: %v", err)
		}
		for _, want := range []string{"ID,Timestamp,Level,Message", "started"} {
			if !strings.Contains(string(data), want) {
				t.Errorf("expected %q in CSV: %s", want, data)
			}
		}
		if !strings.Contains(output.String(), "Exported 1 entries") {
			t.Errorf("unexpected output: %s", output.String())
		}
	})

	t.Run("logs prints cleaned entries", func(t *testing.T) {
		app, output := newTestApp(t, mux)
		if err := app.Run(context.Background(), []string{"schedctl", "logs"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "started") {
			t.Errorf("unexpected output: %s", output.String())
		}
	})
}
