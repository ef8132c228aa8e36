package ingest

import (
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var markdownParser = goldmark.New()

// IsMarkdown reports whether the given path has a markdown extension.
func IsMarkdown(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".md" || ext == ".markdown"
}

// ExtractText parses markdown source and returns its prose content as
// plain text. Code blocks and raw HTML are dropped; block boundaries
// become newlines so sentences from different blocks do not merge.
func ExtractText(source []byte) string {
	doc := markdownParser.Parser().Parse(text.NewReader(source))

	var sb strings.Builder
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch node := n.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock:
			return ast.WalkSkipChildren, nil
		case *ast.Text:
			if entering {
				sb.Write(node.Segment.Value(source))
				if node.SoftLineBreak() || node.HardLineBreak() {
					sb.WriteByte(' ')
				}
			}
		case *ast.String:
			if entering {
				sb.Write(node.Value)
			}
		default:
			if !entering && n.Type() == ast.TypeBlock {
				sb.WriteByte('\n')
			}
		}
		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(sb.String())
}
