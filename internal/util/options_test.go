package util

import (
	"errors"
	"testing"
)

func TestOptionLetters(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		want    []string
		wantErr bool
	}{
		{name: "minimum single option", n: 1, want: []string{"A"}},
		{name: "typical mcq", n: 4, want: []string{"A", "B", "C", "D"}},
		{name: "full alphabet", n: 8, want: []string{"A", "B", "C", "D", "E", "F", "G", "H"}},
		{name: "zero options", n: 0, wantErr: true},
		{name: "negative options", n: -3, wantErr: true},
		{name: "beyond alphabet", n: 9, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := OptionLetters(tc.n)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidOptionCount) {
					t.Fatalf("OptionLetters(%d) error = %v, want ErrInvalidOptionCount", tc.n, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("OptionLetters(%d) unexpected error: %v", tc.n, err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("OptionLetters(%d) = %v, want %v", tc.n, got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("OptionLetters(%d)[%d] = %q, want %q", tc.n, i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestOptionLettersReturnsCopy(t *testing.T) {
	letters, err := OptionLetters(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	letters[0] = "Z"
	if OptionAlphabet[0] != "A" {
		t.Fatalf("mutating the returned slice corrupted OptionAlphabet: %v", OptionAlphabet)
	}
}

func TestValidateAnswer(t *testing.T) {
	tests := []struct {
		name       string
		answer     string
		numOptions int
		want       bool
	}{
		{name: "first letter", answer: "A", numOptions: 4, want: true},
		{name: "last valid letter", answer: "D", numOptions: 4, want: true},
		{name: "letter beyond range", answer: "E", numOptions: 4, want: false},
		{name: "lowercase rejected", answer: "a", numOptions: 4, want: false},
		{name: "empty answer", answer: "", numOptions: 4, want: false},
		{name: "invalid option count", answer: "A", numOptions: 0, want: false},
		{name: "full range last letter", answer: "H", numOptions: 8, want: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ValidateAnswer(tc.answer, tc.numOptions); got != tc.want {
				t.Errorf("ValidateAnswer(%q, %d) = %v, want %v", tc.answer, tc.numOptions, got, tc.want)
			}
		})
	}
}
