package render

import "testing"

func TestResolveLanguage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		lang   string
		want   string
		wantOK bool
	}{
		{lang: "", want: PlainTextLanguage, wantOK: true},
		{lang: "  Go ", want: "go", wantOK: true},
		{lang: "PYTHON", want: "python", wantOK: true},
		{lang: "py", want: "python", wantOK: true},
		{lang: "pyth", want: "python", wantOK: true},
		{lang: "golang", want: "go", wantOK: true},
		{lang: "js", want: "javascript", wantOK: true},
		{lang: "yml", want: "yaml", wantOK: true},
		{lang: "C++", want: "c++", wantOK: true},
		{lang: "c", want: "c", wantOK: true},
		{lang: "nosuchlang", want: PlainTextLanguage, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			t.Parallel()

			got, ok := ResolveLanguage(tt.lang)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ResolveLanguage(%q) = (%q, %v), want (%q, %v)", tt.lang, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestLanguagesAreUnique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool, len(languages))
	for _, l := range languages {
		if seen[l] {
			t.Errorf("duplicate language %q", l)
		}
		seen[l] = true
	}
}
