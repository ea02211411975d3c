package javadoc

import (
	"errors"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			"single line",
			"/** Widget factory. */",
			"Widget factory.",
		},
		{
			"multi line",
			"/**\n * Builds widgets.\n * Cheap ones.\n */",
			"Builds widgets.\nCheap ones.",
		},
		{
			"tag lines dropped",
			"/**\n * Sets the retry limit.\n *\n * @param n the limit\n * @return this\n */",
			"Sets the retry limit.",
		},
		{
			"no leading asterisks",
			"/*\nplain comment text\n*/",
			"plain comment text",
		},
		{
			"surrounding whitespace",
			"   /** Trimmed. */   ",
			"Trimmed.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.input)
			if err != nil {
				t.Fatalf("Normalize() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Normalize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing open", "Widget factory. */"},
		{"missing close", "/** Widget factory."},
		{"line comment", "// Widget factory."},
		{"empty string", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.input)
			if !errors.Is(err, ErrMalformed) {
				t.Errorf("Normalize(%q) error = %v, want ErrMalformed", tt.input, err)
			}
		})
	}
}

func TestNormalizeNoProse(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty comment", "/**/"},
		{"whitespace only", "/**   */"},
		{"tags only", "/**\n * @param x the x\n * @return nothing\n */"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.input)
			if !errors.Is(err, ErrNoProse) {
				t.Errorf("Normalize(%q) error = %v, want ErrNoProse", tt.input, err)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"/** Widget factory. */",
		"/**\n * Builds widgets.\n * Cheap ones.\n */",
		"/**\n * Sets the retry limit.\n *\n * @param n the limit\n */",
	}
	for _, input := range inputs {
		once, err := Normalize(input)
		if err != nil {
			t.Fatalf("Normalize(%q) error: %v", input, err)
		}
		twice, err := Normalize("/*\n" + once + "\n*/")
		if err != nil {
			t.Fatalf("re-Normalize(%q) error: %v", once, err)
		}
		if twice != once {
			t.Errorf("re-normalizing changed %q to %q", once, twice)
		}
	}
}
