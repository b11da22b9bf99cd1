package dub

import "testing"

func TestLexer(t *testing.T) {
	type test struct {
		input  string
		expect []token
	}
	tests := []test{
		{
			input: "play C4 E4",
			expect: []token{
				{typ: typeIdentifier, text: "play"},
				{typ: typeIdentifier, text: "C4"},
				{typ: typeIdentifier, text: "E4"},
				{typ: typeEOF},
			},
		},
		{
			input: "play C#4 Bb3 C-1",
			expect: []token{
				{typ: typeIdentifier, text: "play"},
				{typ: typeIdentifier, text: "C#4"},
				{typ: typeIdentifier, text: "Bb3"},
				{typ: typeIdentifier, text: "C-1"},
				{typ: typeEOF},
			},
		},
		{
			input: "wait\t1   2",
			expect: []token{
				{typ: typeIdentifier, text: "wait"},
				{typ: typeInt, text: "1"},
				{typ: typeInt, text: "2"},
				{typ: typeEOF},
			},
		},
		{
			input: "1.0",
			expect: []token{
				{typ: typeFloat, text: "1.0"},
				{typ: typeEOF},
			},
		},
		{
			input: "-1.",
			expect: []token{
				{typ: typeFloat, text: "-1."},
				{typ: typeEOF},
			},
		},
		{
			input: "-.1",
			expect: []token{
				{typ: typeFloat, text: "-.1"},
				{typ: typeEOF},
			},
		},
		{
			input: `command "this is a string" 1`,
			expect: []token{
				{typ: typeIdentifier, text: "command"},
				{typ: typeString, text: `"this is a string"`},
				{typ: typeInt, text: "1"},
				{typ: typeEOF},
			},
		},
		{
			input: "play A4 # the tuning note",
			expect: []token{
				{typ: typeIdentifier, text: "play"},
				{typ: typeIdentifier, text: "A4"},
				{typ: typeEOF},
			},
		},
		{
			input: "  # only a comment",
			expect: []token{
				{typ: typeEOF},
			},
		},
	}
	for _, test := range tests {
		t.Log(test.input)
		tokens, err := lex(test.input)
		if err != nil {
			t.Errorf("unexpected lex error: %v", err)
			continue
		}
		if len(tokens) != len(test.expect) {
			t.Fatalf("token mismatch: \nwant: %+v, \ngot:  %+v", test.expect, tokens)
		}
		for i, got := range tokens {
			want := test.expect[i]
			if want.typ != got.typ {
				t.Errorf("wrong type: want %v, got %v", want, got)
			}
			if want.text != got.text {
				t.Errorf("wrong text: want %v, got %v", want, got)
			}
		}
	}
}

func TestLexerErrors(t *testing.T) {
	for _, input := range []string{
		"a -",
		"a .-",
		"a 1x",
		"a b;",
		`a "open`,
	} {
		_, err := lex(input)
		if err == nil {
			t.Errorf("expected error for input: %q", input)
		}
	}
}
