package css_test

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/multierr"
	"go.uber.org/zap/zaptest"

	"cssel/css"
)

func TestParser_Parse(t *testing.T) {
	s := css.NewSimple

	tests := []struct {
		name string
		in   string
		want []css.Selector
	}{
		{"element", "p", []css.Selector{s("p")}},
		{"universal", "*", []css.Selector{s("*")}},
		{"class only", ".epigraph", []css.Selector{s("*", css.WithClasses("epigraph"))}},
		{"compound", "div#main.a.b", []css.Selector{s("div", css.WithIDs("main"), css.WithClasses("a", "b"))}},
		{"attribute", `a[href^="http"]`, []css.Selector{s("a", css.WithAttribs(`href^="http"`))}},
		{"attribute whitespace", `a[ title  =	'x' ][lang]`, []css.Selector{s("a", css.WithAttribs(`title = 'x'`, "lang"))}},
		{"attribute flag", "[lang=en i]", []css.Selector{s("*", css.WithAttribs("lang=en i"))}},
		{"pseudo class", "a:hover:focus", []css.Selector{s("a", css.WithPseudo("hover", "focus"))}},
		{"pseudo element", "p::before", []css.Selector{s("p", css.WithPseudo(":before"))}},
		{"functional pseudo", "li:nth-child(2n+1)", []css.Selector{s("li", css.WithPseudo("nth-child(2n+1)"))}},
		{"nested functional pseudo", "p:not(:first-child)", []css.Selector{s("p", css.WithPseudo("not(:first-child)"))}},
		{"descendant", "div span", []css.Selector{css.Descendant(s("div"), s("span"))}},
		{"child", "ul > li", []css.Selector{css.Child(s("ul"), s("li"))}},
		{"child no spaces", "ul>li", []css.Selector{css.Child(s("ul"), s("li"))}},
		{"adjacent", "h1 + p", []css.Selector{css.Adjacent(s("h1"), s("p"))}},
		{"adjacent no spaces", "h1+p", []css.Selector{css.Adjacent(s("h1"), s("p"))}},
		{
			name: "left associative",
			in:   "div ul > li",
			want: []css.Selector{css.Child(css.Descendant(s("div"), s("ul")), s("li"))},
		},
		{
			name: "comment between",
			in:   "div /* note */ > p",
			want: []css.Selector{css.Child(s("div"), s("p"))},
		},
		{
			name: "group",
			in:   " h1 ,h2 > em, .note ",
			want: []css.Selector{
				s("h1"),
				css.Child(s("h2"), s("em")),
				s("*", css.WithClasses("note")),
			},
		},
		{
			name: "comma inside pseudo",
			in:   "p:is(.a, .b), span",
			want: []css.Selector{s("p", css.WithPseudo("is(.a, .b)")), s("span")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := css.NewParser(zaptest.NewLogger(t))
			g, err := p.Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.in, err)
			}
			want := css.NewGroup(tt.want...)
			if g.Len() != want.Len() {
				t.Fatalf("Parse(%q) = %s, want %s", tt.in, g, want)
			}
			for i, sel := range g.All() {
				exp, _ := want.Get(i)
				if !css.Equal(sel, exp) {
					t.Errorf("Parse(%q)[%d] = %s, want %s", tt.in, i, sel, exp)
				}
			}
		})
	}
}

func TestParser_Errors(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		offset int
		msg    string
	}{
		{"empty", "", 0, "empty selector"},
		{"blank", "   ", 0, "empty selector"},
		{"trailing comma", "div,", 4, "empty selector in group"},
		{"sibling combinator", "a ~ b", 2, "unsupported combinator"},
		{"dangling combinator", "div >", 5, "dangling combinator"},
		{"leading combinator", "> div", 0, "selector expected"},
		{"missing class name", "div.", 4, "class name expected"},
		{"unterminated attribute", "a[href", 1, "unterminated attribute"},
		{"empty attribute", "a[]", 1, "empty attribute"},
		{"unterminated function", "li:nth-child(2", 3, "unterminated nth-child("},
		{"bad pseudo", "a:1", 2, "pseudo-class name expected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := css.NewParser(zaptest.NewLogger(t))
			g, err := p.Parse(tt.in)
			if err == nil {
				t.Fatalf("Parse(%q) = %s, want error", tt.in, g)
			}
			var perr *css.ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("Parse(%q) error %T is not *ParseError", tt.in, err)
			}
			if perr.Offset != tt.offset {
				t.Errorf("Parse(%q) offset = %d, want %d (%v)", tt.in, perr.Offset, tt.offset, err)
			}
			if !strings.Contains(perr.Msg, tt.msg) {
				t.Errorf("Parse(%q) message = %q, want %q", tt.in, perr.Msg, tt.msg)
			}
		})
	}
}

func TestParser_CombinedErrors(t *testing.T) {
	p := css.NewParser(zaptest.NewLogger(t))

	_, err := p.Parse("a ~ b, p, ul >")
	if err == nil {
		t.Fatal("expected error")
	}
	if errs := multierr.Errors(err); len(errs) != 2 {
		t.Errorf("expected 2 errors, got %d: %v", len(errs), err)
	}
}

func TestParser_UnknownElement(t *testing.T) {
	p := css.NewParser(zaptest.NewLogger(t))

	g, err := p.Parse("my-widget > span")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if g.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", g.Len())
	}
	if w := p.Warnings(); len(w) != 1 || !strings.Contains(w[0], "my-widget") {
		t.Errorf("Warnings() = %v, want one about my-widget", w)
	}

	if _, err := p.Parse("DIV"); err != nil {
		t.Fatalf("Parse(DIV) error = %v", err)
	}
	if w := p.Warnings(); len(w) != 0 {
		t.Errorf("Warnings() = %v, element names are case insensitive", w)
	}

	strict := css.NewParser(zaptest.NewLogger(t), css.WithStrictElements(true))
	if _, err := strict.Parse("p, my-widget"); err == nil {
		t.Error("strict parser accepted unknown element")
	}
	if _, err := strict.Parse(".x > p"); err != nil {
		t.Errorf("strict parser error = %v", err)
	}
}

func TestParser_NilLogger(t *testing.T) {
	g, err := css.NewParser(nil).Parse("a")
	if err != nil || g.Len() != 1 {
		t.Errorf("Parse() = %v, %v", g, err)
	}
}

func TestParser_AttribFlagKeptApart(t *testing.T) {
	p := css.NewParser(zaptest.NewLogger(t))
	flagged, err := p.Parse("[lang=en i]")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	glued, err := p.Parse("[lang=eni]")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	a, _ := flagged.Get(0)
	b, _ := glued.Get(0)
	if css.Equal(a, b) {
		t.Errorf("%s and %s must differ", a, b)
	}
}
