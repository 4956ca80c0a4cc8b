package pipeline

import (
	"context"
	"strings"
)

// byteOrderMark is dropped so a leading front matter fence is recognized.
const byteOrderMark = "\uFEFF"

var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// CommonMarkPreprocessor normalizes raw Markdown before tokenizing.
type CommonMarkPreprocessor struct{}

// PreprocessMarkdown drops a byte order mark, converts line endings to \n and
// collapses runs of blank lines outside code and equation blocks.
func (p *CommonMarkPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}

	content = strings.TrimPrefix(content, byteOrderMark)
	content = lineEndings.Replace(content)
	return collapseBlankLines(content)
}

// collapseBlankLines keeps at most one empty line between blocks.
// Whitespace-only lines count as blank. Fenced code, $$ equations and blank
// runs inside indented code are copied verbatim.
func collapseBlankLines(content string) string {
	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))

	var fence string
	var blanks []string
	indented := false

	for _, line := range lines {
		if fence != "" {
			if closesFence(line, fence) {
				fence = ""
			}
			out = append(out, line)
			continue
		}

		if strings.TrimSpace(line) == "" {
			blanks = append(blanks, line)
			continue
		}

		if len(blanks) > 0 {
			if indented && isIndentedCode(line) {
				out = append(out, blanks...)
			} else {
				out = append(out, "")
			}
			blanks = blanks[:0]
		}

		indented = isIndentedCode(line)
		fence = openingFence(line)
		out = append(out, line)
	}
	if len(blanks) > 0 {
		out = append(out, "")
	}

	return strings.Join(out, "\n")
}

// openingFence returns the run opening a code fence or a multi-line $$
// equation, or "".
func openingFence(line string) string {
	rest, ok := trimFenceIndent(line)
	if !ok {
		return ""
	}
	run := leadingRun(rest)
	switch {
	case len(run) >= 3 && (run[0] == '`' || run[0] == '~'):
		return run
	case len(run) >= 2 && run[0] == '$' && !strings.Contains(rest[len(run):], "$"):
		return run
	default:
		return ""
	}
}

// closesFence reports whether line ends the fence opened by open.
func closesFence(line, open string) bool {
	rest, ok := trimFenceIndent(line)
	if !ok {
		return false
	}
	run := leadingRun(rest)
	if len(run) < len(open) || run[0] != open[0] {
		return false
	}
	return strings.TrimSpace(rest[len(run):]) == ""
}

// isIndentedCode reports whether line is indented by four columns or more.
func isIndentedCode(line string) bool {
	width := 0
	for _, r := range line {
		switch r {
		case ' ':
			width++
		case '\t':
			width += 4 - width%4
		default:
			return width >= 4
		}
		if width >= 4 {
			return true
		}
	}
	return false
}

// trimFenceIndent strips up to three spaces of indentation.
func trimFenceIndent(line string) (string, bool) {
	rest := strings.TrimLeft(line, " ")
	return rest, len(line)-len(rest) <= 3
}

// leadingRun returns the prefix of s made of its first byte repeated.
func leadingRun(s string) string {
	if s == "" {
		return ""
	}
	i := 1
	for i < len(s) && s[i] == s[0] {
		i++
	}
	return s[:i]
}
