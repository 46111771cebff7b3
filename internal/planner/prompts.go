package planner

import (
	"fmt"
	"strings"

	"github.com/sokinpui/genapp/internal/analyzer"
)

func flatPrompt(description, framework string) string {
	return fmt.Sprintf(`You are an expert %s developer.
Generate a complete project for the following description.

Description:
%s

Respond with ONLY a JSON document of this shape, inside a json code fence:
{"files": [{"path": "relative/path", "content": "full file content"}, ...]}

Every path must be relative to the project root. Include every file the
project needs to run.`, framework, description)
}

func pathsPrompt(description, framework string) string {
	return fmt.Sprintf(`You are an expert %s developer.
List every file a complete project for the following description needs.

Description:
%s

Respond with ONLY a JSON array of relative file paths, for example:
["src/index.js", "package.json"]

Do not include any file content.`, framework, description)
}

func filePrompt(path, description, framework string) string {
	return fmt.Sprintf(`You are an expert %s developer building a project for
this description:
%s

Generate the complete content of the file %q.
Respond with ONLY the file content, in a single code fence.`, framework, description, path)
}

func updatePrompt(description string, summary *analyzer.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert %s developer.\n", summary.ProjectType)
	fmt.Fprintf(&b, "An existing %s project must be changed as follows:\n%s\n\n", summary.Framework, description)

	b.WriteString("Project files:\n")
	for _, p := range summary.Listing {
		fmt.Fprintf(&b, "  %s\n", p)
	}
	for path, content := range summary.KeyFiles {
		fmt.Fprintf(&b, "\nContent of %s:\n```\n%s\n```\n", path, content)
	}

	b.WriteString(`
Respond with ONLY a JSON document of this shape, inside a json code fence:
{"changes": [{"path": "relative/path", "action": "create|update|delete", "content": "full new content"}, ...]}

Content is required for create and update, and must be omitted for delete.`)
	return b.String()
}

func componentPrompt(description, framework string) string {
	return fmt.Sprintf(`You are an expert %s developer.
Generate a single reusable component for the following description:
%s

Respond with ONLY the component code, in a single code fence.`, framework, description)
}

func functionPrompt(description, language string) string {
	return fmt.Sprintf(`You are an expert %s programmer.
Generate a single function for the following description:
%s

Respond with ONLY the function code, in a single code fence.`, language, description)
}
