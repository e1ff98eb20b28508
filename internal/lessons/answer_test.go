package lessons

import "testing"

func TestCheckPracticeAnswer_Integer(t *testing.T) {
	q := PracticeQuestion{Answer: "42", AnswerType: "integer"}

	tests := []struct {
		input string
		want  bool
	}{
		{"42", true},
		{" 42 ", true},
		{"042", true},
		{"43", false},
		{"", false},
		{"abc", false},
	}

	for _, tc := range tests {
		got := CheckPracticeAnswer(q, tc.input)
		if got != tc.want {
			t.Errorf("CheckPracticeAnswer(%q, 42/integer) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestCheckPracticeAnswer_Decimal(t *testing.T) {
	q := PracticeQuestion{Answer: "3.5", AnswerType: "decimal"}

	tests := []struct {
		input string
		want  bool
	}{
		{"3.5", true},
		{"3.50", true},
		{"3.500", true},
		{" 3.5 ", true},
		{"3.6", false},
	}

	for _, tc := range tests {
		got := CheckPracticeAnswer(q, tc.input)
		if got != tc.want {
			t.Errorf("CheckPracticeAnswer(%q, 3.5/decimal) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestCheckPracticeAnswer_Fraction(t *testing.T) {
	q := PracticeQuestion{Answer: "1/2", AnswerType: "fraction"}

	tests := []struct {
		input string
		want  bool
	}{
		{"1/2", true},
		{"2/4", true},
		{"3/6", true},
		{" 1/2 ", true},
		{"-1/-2", true},
		{"1/3", false},
		{"1/0", false},
		{"half", false},
	}

	for _, tc := range tests {
		got := CheckPracticeAnswer(q, tc.input)
		if got != tc.want {
			t.Errorf("CheckPracticeAnswer(%q, 1/2/fraction) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestCheckPracticeAnswer_NegativeFraction(t *testing.T) {
	q := PracticeQuestion{Answer: "-1/2", AnswerType: "fraction"}

	tests := []struct {
		input string
		want  bool
	}{
		{"-1/2", true},
		{"1/-2", true},
		{"-2/4", true},
		{"1/2", false},
	}

	for _, tc := range tests {
		got := CheckPracticeAnswer(q, tc.input)
		if got != tc.want {
			t.Errorf("CheckPracticeAnswer(%q, -1/2/fraction) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestCheckPracticeAnswer_UnknownTypeExactMatch(t *testing.T) {
	q := PracticeQuestion{Answer: "x = 4", AnswerType: ""}

	if !CheckPracticeAnswer(q, "x = 4") {
		t.Error("expected exact match to pass")
	}
	if CheckPracticeAnswer(q, "x = 5") {
		t.Error("expected mismatch to fail")
	}
}
