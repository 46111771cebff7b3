// Package analyzer produces a structural summary of an existing project,
// fed verbatim into the update-plan prompt.
package analyzer

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	maxListing     = 200
	maxKeyFileSize = 4 * 1024
)

// Summary describes an existing project well enough for the model to plan
// changes against it.
type Summary struct {
	ProjectType string
	Framework   string
	KeyFiles    map[string]string
	Listing     []string
}

// markerFiles maps project-type marker files to a project type. The marker
// contents are included as key files.
var markerFiles = map[string]string{
	"package.json":     "node",
	"go.mod":           "go",
	"requirements.txt": "python",
	"pyproject.toml":   "python",
	"Cargo.toml":       "rust",
	"pom.xml":          "java",
	"Gemfile":          "ruby",
}

var ignoredDirs = map[string]struct{}{
	".git":         {},
	"node_modules": {},
	"vendor":       {},
	"dist":         {},
	"build":        {},
	"target":       {},
	"__pycache__":  {},
}

// Analyze scans root and returns its structural summary.
func Analyze(root string) (*Summary, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("analyze %s: %w", root, err)
	}

	s := &Summary{
		ProjectType: "unknown",
		KeyFiles:    make(map[string]string),
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if d.IsDir() {
			if _, ignored := ignoredDirs[d.Name()]; ignored {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if len(s.Listing) < maxListing {
			s.Listing = append(s.Listing, rel)
		}

		name := d.Name()
		if projectType, ok := markerFiles[name]; ok && filepath.Dir(path) == filepath.Clean(root) {
			s.ProjectType = projectType
			s.KeyFiles[rel] = readCapped(path)
		}
		if name == "README.md" && filepath.Dir(path) == filepath.Clean(root) {
			s.KeyFiles[rel] = readCapped(path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", root, err)
	}

	sort.Strings(s.Listing)
	s.Framework = detectFramework(s)
	return s, nil
}

// detectFramework sniffs a framework identifier from the key files.
func detectFramework(s *Summary) string {
	pkg, ok := s.KeyFiles["package.json"]
	if ok {
		for _, fw := range []string{"react", "vue", "angular", "svelte", "express", "next"} {
			if strings.Contains(pkg, "\""+fw) {
				return fw
			}
		}
		return "node"
	}
	if s.ProjectType != "unknown" {
		return s.ProjectType
	}
	return ""
}

func readCapped(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	if len(data) > maxKeyFileSize {
		data = data[:maxKeyFileSize]
	}
	return string(data)
}
