package planner

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// codeBlock is a fenced block pulled out of free-text model output.
type codeBlock struct {
	Lang    string
	Content string
}

// fenceRegex is a fallback for fences goldmark cannot parse, such as a block
// the model forgot to terminate.
var fenceRegex = regexp.MustCompile("(?s)```([a-zA-Z0-9_+.-]*)\\s*\\n(.*?)(?:\\n```|$)")

// extractCodeBlocks walks the markdown AST and collects all fenced code
// blocks, regex-scanning as a fallback when the AST finds none.
func extractCodeBlocks(source string) []codeBlock {
	var blocks []codeBlock
	src := []byte(source)
	root := goldmark.DefaultParser().Parse(text.NewReader(src))

	walker := func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fenced, ok := node.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		var block codeBlock
		if fenced.Info != nil {
			block.Lang = strings.ToLower(strings.TrimSpace(string(fenced.Info.Text(src))))
		}
		var content bytes.Buffer
		lines := fenced.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			content.Write(line.Value(src))
		}
		block.Content = content.String()

		blocks = append(blocks, block)
		return ast.WalkSkipChildren, nil
	}
	if err := ast.Walk(root, walker); err != nil {
		blocks = nil
	}

	if len(blocks) == 0 {
		for _, m := range fenceRegex.FindAllStringSubmatch(source, -1) {
			blocks = append(blocks, codeBlock{
				Lang:    strings.ToLower(strings.TrimSpace(m[1])),
				Content: m[2],
			})
		}
	}
	return blocks
}

// extractJSON pulls the most likely JSON document out of a response. The
// chain is best effort, not a grammar: a json-tagged fence wins, then any
// fence, then the raw trimmed text.
func extractJSON(response string) string {
	blocks := extractCodeBlocks(response)
	for _, b := range blocks {
		if b.Lang == "json" {
			return strings.TrimSpace(b.Content)
		}
	}
	if len(blocks) > 0 {
		return strings.TrimSpace(blocks[0].Content)
	}
	return strings.TrimSpace(response)
}

// extractCode returns the first fenced block's content, or the raw trimmed
// response when the model answered with bare code.
func extractCode(response string) string {
	if blocks := extractCodeBlocks(response); len(blocks) > 0 {
		return strings.TrimRight(blocks[0].Content, "\n")
	}
	return strings.TrimSpace(response)
}

// extractArray narrows a response to its bracket-delimited JSON array, from
// the first '[' to the last ']'. It returns "" when no array is present.
func extractArray(response string) string {
	start := strings.Index(response, "[")
	end := strings.LastIndex(response, "]")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return response[start : end+1]
}
