package css

import "testing"

func TestNewSimple_DistinctContainers(t *testing.T) {
	a, b := NewSimple(""), NewSimple("")

	a.ids = append(a.ids, "x")
	a.classes = append(a.classes, "x")
	a.attribs = append(a.attribs, "x")
	a.pseudo = append(a.pseudo, "x")

	if len(b.ids) != 0 || len(b.classes) != 0 || len(b.attribs) != 0 || len(b.pseudo) != 0 {
		t.Errorf("qualifiers leaked between selectors: %s", b)
	}
}

func TestQuoteText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", `''`},
		{"div", `'div'`},
		{"it's", `"it's"`},
		{`say "hi"`, `'say "hi"'`},
		{`a'b"c`, `'a\'b"c'`},
		{`back\slash`, `'back\\slash'`},
		{"tab\there", `'tab\there'`},
		{"bell\a", `'bell\x07'`},
		{"снег", `'снег'`},
	}
	for _, tt := range tests {
		if got := quoteText(tt.in); got != tt.want {
			t.Errorf("quoteText(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
