package source

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
)

// Provider determines and retrieves the description text.
type Provider struct {
	args []string
}

// New creates a provider. Positional arguments, when present, win over
// stdin and clipboard.
func New(args []string) *Provider {
	return &Provider{args: args}
}

// GetDescription retrieves the description from the positional arguments,
// piped stdin, or the clipboard, in that order.
func (p *Provider) GetDescription() (string, error) {
	if len(p.args) > 0 {
		return strings.TrimSpace(strings.Join(p.args, " ")), nil
	}

	stat, _ := os.Stdin.Stat()
	if (stat.Mode() & os.ModeCharDevice) == 0 {
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read from stdin: %w", err)
		}
		return strings.TrimSpace(string(content)), nil
	}

	content, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("failed to read from clipboard: %w", err)
	}
	return strings.TrimSpace(content), nil
}
