package ui

import "testing"

func TestTruncateCell(t *testing.T) {
	tests := []struct {
		name  string
		value string
		width int
		want  string
	}{
		{"fits", "Ann", 5, "Ann"},
		{"exact", "Alice", 5, "Alice"},
		{"long", "Alexandria", 5, "Alex…"},
		{"newlines flattened", "a\nb", 5, "a b"},
		{"zero width", "Ann", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncateCell(tt.value, tt.width); got != tt.want {
				t.Errorf("truncateCell(%q, %d) = %q, want %q", tt.value, tt.width, got, tt.want)
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("ab", 4); got != "ab  " {
		t.Fatalf("padRight = %q", got)
	}
	if got := padRight("abcdef", 4); got != "abcdef" {
		t.Fatalf("padRight long = %q", got)
	}
}

func TestClamp(t *testing.T) {
	if clamp(-1, 0, 3) != 0 || clamp(5, 0, 3) != 3 || clamp(2, 0, 3) != 2 {
		t.Fatal("clamp out of range")
	}
}
