package render

import (
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
)

// PlainTextLanguage is the fallback code language.
const PlainTextLanguage = "plain text"

// languages are the code languages the target accepts, in match order.
var languages = []string{
	"ABAP", "Arduino", "Bash", "BASIC", "C", "Clojure", "CoffeeScript", "C++",
	"C#", "CSS", "Dart", "Diff", "Docker", "Elixir", "Elm", "Erlang", "Flow",
	"Fortran", "F#", "Gherkin", "GLSL", "Go", "GraphQL", "Groovy", "Haskell",
	"HTML", "Java", "JavaScript", "JSON", "Kotlin", "LaTeX", "Less", "Lisp",
	"LiveScript", "Lua", "Makefile", "Markdown", "Markup", "MATLAB", "Nix",
	"Objective-C", "OCaml", "Pascal", "Perl", "PHP", "Plain Text",
	"PowerShell", "Prolog", "Python", "R", "Reason", "Ruby", "Rust", "Sass",
	"Scala", "Scheme", "Scss", "Shell", "SQL", "Swift", "TypeScript",
	"VB.Net", "Verilog", "VHDL", "Visual Basic", "WebAssembly", "XML", "YAML",
}

// ResolveLanguage maps a fence language to a supported one, lowercased.
// Lookup order: a case-insensitive exact name, then chroma's lexer
// registry for aliases such as "js" or "golang", then the declared name as
// a case-insensitive prefix of a supported name ("pyth" gives python).
// An empty language resolves to plain text. ok is false when a non-empty
// language had no match.
func ResolveLanguage(lang string) (resolved string, ok bool) {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return PlainTextLanguage, true
	}

	if m := matchLanguage(lang, strings.EqualFold); m != "" {
		return strings.ToLower(m), true
	}
	if lexer := lexers.Get(lang); lexer != nil {
		name := lexer.Config().Name
		if m := matchLanguage(name, strings.EqualFold); m != "" {
			return strings.ToLower(m), true
		}
		if m := matchLanguage(name, hasPrefixFold); m != "" {
			return strings.ToLower(m), true
		}
	}
	if m := matchLanguage(lang, hasPrefixFold); m != "" {
		return strings.ToLower(m), true
	}
	return PlainTextLanguage, false
}

func matchLanguage(lang string, match func(candidate, lang string) bool) string {
	for _, candidate := range languages {
		if match(candidate, lang) {
			return candidate
		}
	}
	return ""
}

func hasPrefixFold(s, prefix string) bool {
	return len(prefix) <= len(s) && strings.EqualFold(s[:len(prefix)], prefix)
}
