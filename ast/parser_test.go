// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package ast_test

import (
	"errors"
	"math"
	"testing"

	"github.com/creachadair/jsyn"
	"github.com/creachadair/jsyn/ast"
	"github.com/google/go-cmp/cmp"
	"github.com/tailscale/hujson"
)

// mustParse parses text with the given options or fails the test.
func mustParse(t *testing.T, text string, opts *ast.ParseOptions) *ast.Document {
	t.Helper()
	d, err := ast.ParseString(text, opts)
	if err != nil {
		t.Fatalf("ParseString %#q: unexpected error: %v", text, err)
	}
	return d
}

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  ast.Node
	}{
		{`null`, new(ast.Null)},
		{`true`, &ast.Boolean{Value: true}},
		{`false`, &ast.Boolean{Value: false}},
		{`"kingfisher"`, &ast.String{Value: "kingfisher"}},
		{`"a\u0041b"`, &ast.String{Value: "aAb"}},
		{`25`, &ast.Number{Value: 25}},
		{`-1.25e2`, &ast.Number{Value: -125}},
		{`{}`, new(ast.Object)},
		{`[]`, new(ast.Array)},
		{`[1, "two", false, null]`, &ast.Array{Elements: []ast.Node{
			&ast.Number{Value: 1},
			&ast.String{Value: "two"},
			&ast.Boolean{Value: false},
			new(ast.Null),
		}}},
		{`{"name": "Aloysius", "tags": [{"id": 5}]}`, &ast.Object{Members: []*ast.Member{
			{Name: &ast.String{Value: "name"}, Value: &ast.String{Value: "Aloysius"}},
			{Name: &ast.String{Value: "tags"}, Value: &ast.Array{Elements: []ast.Node{
				&ast.Object{Members: []*ast.Member{
					{Name: &ast.String{Value: "id"}, Value: &ast.Number{Value: 5}},
				}},
			}}},
		}}},
	}

	for _, test := range tests {
		d := mustParse(t, test.input, nil)
		if diff := cmp.Diff(test.want, d.Body); diff != "" {
			t.Errorf("Input: %#q\nBody: (-want, +got)\n%s", test.input, diff)
		}
		if d.Loc != nil {
			t.Errorf("Input: %#q: unexpected location %+v", test.input, d.Loc)
		}
		if d.Tokens != nil {
			t.Errorf("Input: %#q: unexpected tokens %+v", test.input, d.Tokens)
		}
	}
}

func TestParse_ranges(t *testing.T) {
	const input = `{"a": 1}`
	d := mustParse(t, input, &ast.ParseOptions{Ranges: true})

	mkLoc := func(pos, end, fcol, lcol int) *jsyn.Location {
		return &jsyn.Location{
			Span:  jsyn.Span{Pos: pos, End: end},
			First: jsyn.LineCol{Line: 1, Column: fcol},
			Last:  jsyn.LineCol{Line: 1, Column: lcol},
		}
	}
	want := &ast.Document{
		Body: &ast.Object{
			Members: []*ast.Member{{
				Name:  &ast.String{Value: "a", Loc: mkLoc(1, 4, 1, 4)},
				Value: &ast.Number{Value: 1, Loc: mkLoc(6, 7, 6, 7)},
				Loc:   mkLoc(1, 7, 1, 7),
			}},
			Loc: mkLoc(0, 8, 0, 8),
		},
		Loc: mkLoc(0, 8, 0, 8),
	}
	if diff := cmp.Diff(want, d); diff != "" {
		t.Errorf("Input: %#q\nTree: (-want, +got)\n%s", input, diff)
	}
}

func TestParse_documentSpan(t *testing.T) {
	// The document span covers the whole input, including the whitespace and
	// comments around the body value.
	const input = "  // before\n [1] // after\n"
	d := mustParse(t, input, &ast.ParseOptions{Mode: jsyn.JSONC, Ranges: true})

	want := &jsyn.Location{
		Span:  jsyn.Span{Pos: 0, End: len(input)},
		First: jsyn.LineCol{Line: 1, Column: 0},
		Last:  jsyn.LineCol{Line: 3, Column: 0},
	}
	if diff := cmp.Diff(want, d.Loc); diff != "" {
		t.Errorf("Document location: (-want, +got)\n%s", diff)
	}
	if got := d.Body.Location().Pos; got != 13 {
		t.Errorf("Body start: got %d, want 13", got)
	}
}

func TestParse_tokens(t *testing.T) {
	const input = "{\n // fish\n \"a\": 1\n}"
	d := mustParse(t, input, &ast.ParseOptions{Mode: jsyn.JSONC, Tokens: true})

	var got []string
	for _, tok := range d.Tokens {
		got = append(got, tok.Text)
	}
	want := []string{"{", "// fish", `"a"`, ":", "1", "}"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Tokens: (-want, +got)\n%s", diff)
	}
	if d.Tokens[1].Kind != jsyn.LineComment {
		t.Errorf("Token 1 kind: got %v, want %v", d.Tokens[1].Kind, jsyn.LineComment)
	}
}

func TestParse_json5(t *testing.T) {
	tests := []struct {
		input string
		want  ast.Node
	}{
		{`{a: 1, $b: 2, _c: 3,}`, &ast.Object{Members: []*ast.Member{
			{Name: &ast.Ident{Name: "a"}, Value: &ast.Number{Value: 1}},
			{Name: &ast.Ident{Name: "$b"}, Value: &ast.Number{Value: 2}},
			{Name: &ast.Ident{Name: "_c"}, Value: &ast.Number{Value: 3}},
		}}},
		{`[1, 2,]`, &ast.Array{Elements: []ast.Node{
			&ast.Number{Value: 1}, &ast.Number{Value: 2},
		}}},
		{`'single'`, &ast.String{Value: "single"}},
		{`0x20`, &ast.Number{Value: 32}},
		{`-0xff`, &ast.Number{Value: -255}},
		{`.5`, &ast.Number{Value: 0.5}},
		{`+6.`, &ast.Number{Value: 6}},
		{`Infinity`, &ast.Number{Value: math.Inf(1)}},
		{`-Infinity`, &ast.Number{Value: math.Inf(-1)}},
		{`{"mixed": 'quotes', keys: "too"}`, &ast.Object{Members: []*ast.Member{
			{Name: &ast.String{Value: "mixed"}, Value: &ast.String{Value: "quotes"}},
			{Name: &ast.Ident{Name: "keys"}, Value: &ast.String{Value: "too"}},
		}}},
	}

	opts := &ast.ParseOptions{Mode: jsyn.JSON5}
	for _, test := range tests {
		d := mustParse(t, test.input, opts)
		if diff := cmp.Diff(test.want, d.Body); diff != "" {
			t.Errorf("Input: %#q\nBody: (-want, +got)\n%s", test.input, diff)
		}
	}

	// NaN has to be checked by hand, since NaN != NaN.
	d := mustParse(t, `NaN`, opts)
	if num, ok := d.Body.(*ast.Number); !ok || !math.IsNaN(num.Value) {
		t.Errorf("Parse NaN: got %+v, want NaN", d.Body)
	}
}

func TestParse_modeGating(t *testing.T) {
	tests := []struct {
		input   string
		mode    jsyn.Mode
		lexical bool // the failure comes from the scanner
	}{
		{`[1, 2,]`, jsyn.JSON, false},
		{`[1, 2,]`, jsyn.JSONC, false},
		{`{"a": 1,}`, jsyn.JSON, false},
		{`{a: 1}`, jsyn.JSON, true},
		{`{a: 1}`, jsyn.JSONC, true},
		{`'single'`, jsyn.JSON, true},
		{`[1] // comment`, jsyn.JSON, true},
		{`/* lead */ 1`, jsyn.JSON, true},
		{`0x20`, jsyn.JSON, true}, // scans as 0, then x is rejected
		{`+1`, jsyn.JSON, true},
		{`Infinity`, jsyn.JSON, true},
	}

	for _, test := range tests {
		_, err := ast.ParseString(test.input, &ast.ParseOptions{Mode: test.mode})
		if err == nil {
			t.Errorf("Parse %#q (%v): unexpectedly succeeded", test.input, test.mode)
			continue
		}
		var lerr *jsyn.LexError
		var serr *jsyn.SyntaxError
		if test.lexical && !errors.As(err, &lerr) {
			t.Errorf("Parse %#q (%v): got %v, want *LexError", test.input, test.mode, err)
		} else if !test.lexical && !errors.As(err, &serr) {
			t.Errorf("Parse %#q (%v): got %v, want *SyntaxError", test.input, test.mode, err)
		}
	}

	// The same inputs parse under json5.
	for _, input := range []string{`[1, 2,]`, `{a: 1}`, `'single'`, `0x20`, `+1`, `Infinity`} {
		if _, err := ast.ParseString(input, &ast.ParseOptions{Mode: jsyn.JSON5}); err != nil {
			t.Errorf("Parse %#q (json5): unexpected error: %v", input, err)
		}
	}
}

func TestParse_errors(t *testing.T) {
	tests := []struct {
		input string
		etext string
	}{
		{``, `unexpected end of input`},
		{`   `, `unexpected end of input`},
		{`[1, 2`, `expected "]" or ",", got end of input`},
		{`{"a"`, `expected ":", got end of input`},
		{`{"a" 1}`, `expected ":", got number`},
		{`{"a": }`, `unexpected "}"`},
		{`{"a": 1 "b": 2}`, `expected "}" or ",", got string`},
		{`{37: true}`, `expected string or "}", got number`},
		{`[,]`, `unexpected ","`},
		{`[1,,2]`, `unexpected ","`},
		{`1 2`, `unexpected number`},
		{`[] []`, `unexpected "["`},
		{`}`, `unexpected "}"`},
	}

	for _, test := range tests {
		_, err := ast.ParseString(test.input, nil)
		var serr *jsyn.SyntaxError
		if !errors.As(err, &serr) {
			t.Errorf("Parse %#q: got %v, want *SyntaxError", test.input, err)
		} else if serr.Message != test.etext {
			t.Errorf("Parse %#q: got error %q, want %q", test.input, serr.Message, test.etext)
		}
	}
}

func TestParse_errorPosition(t *testing.T) {
	const input = "[true,\n false,\n nope]"
	_, err := ast.ParseString(input, nil)
	var lerr *jsyn.LexError
	if !errors.As(err, &lerr) {
		t.Fatalf("Parse: got %v, want *LexError", err)
	}
	if lerr.Line != 3 {
		t.Errorf("Line: got %d, want 3", lerr.Line)
	}
}

// Parsing the printed form of a tree must yield an equivalent tree.
func TestParse_printRoundTrip(t *testing.T) {
	inputs := []string{
		`null`,
		`[1,2.5,"three",{},[],{"x":[true]}]`,
		`{"a":{"b":{"c":null}},"d":false}`,
		`"esc \"and\" \\ \t ok"`,
	}
	for _, input := range inputs {
		d := mustParse(t, input, nil)
		text, err := ast.Print(d, nil)
		if err != nil {
			t.Fatalf("Print failed: %v", err)
		}
		d2 := mustParse(t, text, nil)
		if diff := cmp.Diff(d.Body, d2.Body); diff != "" {
			t.Errorf("Input: %#q\nReparse: (-want, +got)\n%s", input, diff)
		}
	}
}

// Compare against an independent JSONC implementation: minimizing the input
// with hujson must agree with compact-printing our parse of it, for inputs
// whose lexemes are already in canonical form.
func TestParse_hujsonAgreement(t *testing.T) {
	inputs := []string{
		`{"a":1,"b":[true,null,"x"],"c":2.5}`,
		"// leading\n{\"list\":[1,2,3]} /* trailing */",
		"{\n // inner\n \"k\": \"v\"\n}",
		"[]",
		"[\n1, /* gap */ 2\n]",
	}
	opts := &ast.ParseOptions{Mode: jsyn.JSONC}
	for _, input := range inputs {
		v, err := hujson.Parse([]byte(input))
		if err != nil {
			t.Fatalf("hujson.Parse %#q: %v", input, err)
		}
		v.Minimize()
		want := string(v.Pack())

		d := mustParse(t, input, opts)
		got, err := ast.Print(d, nil)
		if err != nil {
			t.Fatalf("Print failed: %v", err)
		}
		if got != want {
			t.Errorf("Input: %#q:\n got %s\nwant %s", input, got, want)
		}
	}
}

func BenchmarkParse(b *testing.B) {
	const input = `{
  "catalog": [
    {"id": 1, "name": "stilton", "tags": ["cheese", "blue"], "stock": 7.5},
    {"id": 2, "name": "wensleydale", "tags": [], "stock": 0},
    {"id": 3, "name": "caerphilly", "tags": ["cheese"], "stock": null}
  ],
  "revision": "2f9c",
  "active": true
}`
	opts := &ast.ParseOptions{Ranges: true}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := ast.ParseString(input, opts); err != nil {
			b.Fatal(err)
		}
	}
}
