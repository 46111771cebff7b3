package genapp_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sokinpui/genapp/cli"
	"github.com/sokinpui/genapp/genapp"
	"github.com/sokinpui/genapp/internal/completion"
	"github.com/sokinpui/genapp/internal/mutator"
)

const flatResponse = "```json\n" +
	`{"files": [{"path": "a.txt", "content": "hello"}, {"path": "b/c.txt", "content": "world"}]}` +
	"\n```"

func newTestApp(t *testing.T, dir string, respond func(prompt string) (string, error)) *genapp.App {
	t.Helper()
	cfg := &cli.Config{Dir: dir, Framework: "react", Language: "go"}
	client := completion.Func(func(ctx context.Context, prompt string, maxTokens int) (string, error) {
		return respond(prompt)
	})
	app, err := genapp.New(cfg, genapp.WithCompletionClient(client))
	if err != nil {
		t.Fatalf("failed to create app: %v", err)
	}
	return app
}

func TestCreateApp(t *testing.T) {
	dir := t.TempDir()
	app := newTestApp(t, dir, func(string) (string, error) {
		return flatResponse, nil
	})

	summary, err := app.CreateApp(context.Background(), "a tiny demo", "react")
	if err != nil {
		t.Fatalf("create app failed: %v", err)
	}
	if len(summary.Created) != 2 {
		t.Fatalf("expected 2 created files, got %v", summary.Created)
	}

	data, err := os.ReadFile(filepath.Join(dir, "a.txt"))
	if err != nil || string(data) != "hello" {
		t.Errorf("a.txt = %q, %v", data, err)
	}
	data, err = os.ReadFile(filepath.Join(dir, "b", "c.txt"))
	if err != nil || string(data) != "world" {
		t.Errorf("b/c.txt = %q, %v", data, err)
	}

	// Both creations are undoable, most recent first.
	if app.History().Len() != 2 {
		t.Fatalf("expected 2 undoable operations, got %d", app.History().Len())
	}
	if _, err := app.UndoLast(); err != nil {
		t.Fatalf("first undo failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "b", "c.txt")); !os.IsNotExist(err) {
		t.Error("b/c.txt should be gone after first undo")
	}
	if _, err := os.Stat(filepath.Join(dir, "a.txt")); err != nil {
		t.Error("a.txt should survive the first undo")
	}
	if _, err := app.UndoLast(); err != nil {
		t.Fatalf("second undo failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "a.txt")); !os.IsNotExist(err) {
		t.Error("a.txt should be gone after second undo")
	}

	summary, err = app.UndoLast()
	if err != nil {
		t.Fatalf("undo on empty log must not error: %v", err)
	}
	if summary.Message != "No operation to undo." {
		t.Errorf("unexpected message %q", summary.Message)
	}
}

func TestCreateAppCollisionAborts(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("occupied"), 0644); err != nil {
		t.Fatal(err)
	}
	app := newTestApp(t, dir, func(string) (string, error) {
		return flatResponse, nil
	})

	_, err := app.CreateApp(context.Background(), "a tiny demo", "react")
	if !errors.Is(err, mutator.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
	// The colliding file kept its content; there was no partial rollback
	// and nothing past the collision was written.
	data, _ := os.ReadFile(filepath.Join(dir, "a.txt"))
	if string(data) != "occupied" {
		t.Errorf("existing file was mutated: %q", data)
	}
	if _, err := os.Stat(filepath.Join(dir, "b", "c.txt")); !os.IsNotExist(err) {
		t.Error("files after the collision should not have been written")
	}
}

func TestUpdateApp(t *testing.T) {
	dir := t.TempDir()
	for rel, content := range map[string]string{
		"package.json": `{"dependencies": {"react": "1"}}`,
		"src/App.js":   "old app",
		"src/old.js":   "dead code",
	} {
		path := filepath.Join(dir, rel)
		os.MkdirAll(filepath.Dir(path), 0755)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	app := newTestApp(t, dir, func(string) (string, error) {
		return `{"changes": [
			{"path": "src/App.js", "action": "update", "content": "new app"},
			{"path": "src/old.js", "action": "delete"},
			{"path": "src/Button.js", "action": "create", "content": "button"}
		]}`, nil
	})

	summary, err := app.UpdateApp(context.Background(), "modernize it")
	if err != nil {
		t.Fatalf("update app failed: %v", err)
	}
	if len(summary.Updated) != 1 || len(summary.Deleted) != 1 || len(summary.Created) != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	data, _ := os.ReadFile(filepath.Join(dir, "src", "App.js"))
	if string(data) != "new app" {
		t.Errorf("App.js = %q", data)
	}
	if _, err := os.Stat(filepath.Join(dir, "src", "old.js")); !os.IsNotExist(err) {
		t.Error("old.js should be deleted")
	}

	// Undoing all three restores the original tree.
	for i := 0; i < 3; i++ {
		if _, err := app.UndoLast(); err != nil {
			t.Fatalf("undo %d failed: %v", i+1, err)
		}
	}
	data, err = os.ReadFile(filepath.Join(dir, "src", "old.js"))
	if err != nil || string(data) != "dead code" {
		t.Errorf("old.js not restored: %q, %v", data, err)
	}
	data, _ = os.ReadFile(filepath.Join(dir, "src", "App.js"))
	if string(data) != "old app" {
		t.Errorf("App.js not restored: %q", data)
	}
	if _, err := os.Stat(filepath.Join(dir, "src", "Button.js")); !os.IsNotExist(err) {
		t.Error("Button.js should be gone after undo")
	}
}

func TestGenerateComponent(t *testing.T) {
	app := newTestApp(t, t.TempDir(), func(prompt string) (string, error) {
		if !strings.Contains(prompt, "react") {
			t.Errorf("framework missing from prompt")
		}
		return "```jsx\nexport const X = () => null;\n```", nil
	})

	code, err := app.GenerateComponent(context.Background(), "an empty component", "react")
	if err != nil {
		t.Fatalf("generate component failed: %v", err)
	}
	if code != "export const X = () => null;" {
		t.Errorf("got %q", code)
	}
}

func TestNotConfiguredSurfacesToCaller(t *testing.T) {
	app := newTestApp(t, t.TempDir(), func(string) (string, error) {
		return "", completion.ErrNotConfigured
	})

	_, err := app.CreateApp(context.Background(), "anything", "react")
	if !errors.Is(err, completion.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured to propagate, got %v", err)
	}
}
