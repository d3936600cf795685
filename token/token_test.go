package token_test

import (
	"testing"

	"github.com/loxlang/golox/token"
)

func TestLookupIdent_Keywords(t *testing.T) {
	tests := []struct {
		ident string
		want  token.Type
	}{
		{"print", token.Print},
		{"var", token.Var},
		{"true", token.True},
		{"false", token.False},
		{"nil", token.Nil},
		{"if", token.If},
		{"else", token.Else},
		{"and", token.And},
		{"or", token.Or},
		{"while", token.While},
		{"for", token.For},
		{"fun", token.Fun},
		{"return", token.Return},
		{"class", token.Class},
		{"this", token.This},
		{"break", token.Break},
		{"import", token.Import},
	}
	for _, tt := range tests {
		if got := token.LookupIdent(tt.ident); got != tt.want {
			t.Errorf("LookupIdent(%q) = %s, want %s", tt.ident, got, tt.want)
		}
	}
}

func TestLookupIdent_NonKeywordIsIdent(t *testing.T) {
	for _, ident := range []string{"foo", "radius", "Circle", "_private"} {
		if got := token.LookupIdent(ident); got != token.Ident {
			t.Errorf("LookupIdent(%q) = %s, want %s", ident, got, token.Ident)
		}
	}
}

func TestType_String_MatchesKeywordSpelling(t *testing.T) {
	if got := token.Print.String(); got != "print" {
		t.Errorf("Print.String() = %q, want %q", got, "print")
	}
	if got := token.OpenParen.String(); got != "(" {
		t.Errorf("OpenParen.String() = %q, want %q", got, "(")
	}
}
