package cli

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Config holds all the command-line flag values.
type Config struct {
	Framework string
	Language  string
	Dir       string
	Model     string
	MaxTokens int

	Update    bool
	Component bool
	Function  bool
	Undo      bool
	Nvim      bool
	Plain     bool

	Args []string
}

// ParseFlags defines and parses command-line flags using pflag.
func ParseFlags() (*Config, error) {
	cfg := &Config{}

	pflag.StringVarP(&cfg.Framework, "framework", "f", "react", "Target framework for generated code.")
	pflag.StringVarP(&cfg.Language, "language", "l", "javascript", "Target language for --function.")
	pflag.StringVarP(&cfg.Dir, "dir", "d", ".", "Project root to generate into.")
	pflag.StringVarP(&cfg.Model, "model", "m", "", "Model identifier (overrides GENAPP_MODEL).")
	pflag.IntVar(&cfg.MaxTokens, "max-tokens", 0, "Maximum output tokens per completion call (overrides GENAPP_MAX_TOKENS).")

	pflag.BoolVarP(&cfg.Update, "update", "U", false, "Update an existing project instead of creating a new one.")
	pflag.BoolVarP(&cfg.Component, "component", "c", false, "Generate a single component and print it.")
	pflag.BoolVarP(&cfg.Function, "function", "F", false, "Generate a single function and print it.")
	pflag.BoolVarP(&cfg.Undo, "undo", "u", false, "Undo the most recent file operation of this session.")
	pflag.BoolVarP(&cfg.Nvim, "nvim", "n", false, "Write files through a Neovim instance instead of the plain filesystem.")
	pflag.BoolVar(&cfg.Plain, "plain", false, "Disable the TUI; print plain output.")

	pflag.Usage = func() {
		fmt.Println("Usage: genapp [flags] [description...]")
		fmt.Println("\nTurn a natural-language description into generated source files.")
		fmt.Println("The description is taken from the arguments, piped stdin, or the clipboard.")
		fmt.Println("\nExample: genapp -f vue \"a todo list with local storage\"")
		fmt.Println("\nFlags:")
		pflag.PrintDefaults()
	}

	pflag.Parse()
	cfg.Args = pflag.Args()

	// Validate mutually exclusive modes.
	modes := 0
	for _, on := range []bool{cfg.Update, cfg.Component, cfg.Function, cfg.Undo} {
		if on {
			modes++
		}
	}
	if modes > 1 {
		return nil, fmt.Errorf("error: --update, --component, --function and --undo are mutually exclusive")
	}

	return cfg, nil
}
