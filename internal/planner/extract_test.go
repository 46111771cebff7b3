package planner

import "testing"

func TestExtractJSON(t *testing.T) {
	const inner = `{"files": [{"path": "a.txt", "content": "hi"}]}`

	t.Run("prefers json-tagged fence", func(t *testing.T) {
		response := "Here is the project:\n\n```text\nnot this\n```\n\n```json\n" + inner + "\n```\n"
		if got := extractJSON(response); got != inner {
			t.Errorf("got %q, want %q", got, inner)
		}
	})

	t.Run("falls back to any fence", func(t *testing.T) {
		response := "Sure:\n\n```\n" + inner + "\n```\n"
		if got := extractJSON(response); got != inner {
			t.Errorf("got %q, want %q", got, inner)
		}
	})

	t.Run("falls back to raw text", func(t *testing.T) {
		response := "  " + inner + "\n"
		if got := extractJSON(response); got != inner {
			t.Errorf("got %q, want %q", got, inner)
		}
	})

	t.Run("unterminated fence still yields content", func(t *testing.T) {
		response := "```json\n" + inner
		if got := extractJSON(response); got != inner {
			t.Errorf("got %q, want %q", got, inner)
		}
	})
}

func TestExtractCode(t *testing.T) {
	t.Run("unwraps fenced code", func(t *testing.T) {
		response := "Here you go:\n\n```go\nfunc main() {}\n```\nEnjoy!"
		if got := extractCode(response); got != "func main() {}" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("keeps bare code as is", func(t *testing.T) {
		response := "\nfunc main() {}\n"
		if got := extractCode(response); got != "func main() {}" {
			t.Errorf("got %q", got)
		}
	})
}

func TestExtractArray(t *testing.T) {
	t.Run("narrows to the bracketed span", func(t *testing.T) {
		response := `The files are: ["a.js", "b.js"] — good luck!`
		if got := extractArray(response); got != `["a.js", "b.js"]` {
			t.Errorf("got %q", got)
		}
	})

	t.Run("empty when no array present", func(t *testing.T) {
		if got := extractArray("no array here"); got != "" {
			t.Errorf("got %q, want empty", got)
		}
	})
}
