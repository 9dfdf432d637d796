package core

import "testing"

func TestFoldString(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{in: "", want: ""},
		{in: "  José  Ñaupa ", want: "jose naupa"},
		{in: "GONZÁLES Pérez", want: "gonzales perez"},
		{in: "Ciencia y Tecnología", want: "ciencia y tecnologia"},
		{in: "71234567", want: "71234567"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := FoldString(tt.in); got != tt.want {
				t.Errorf("FoldString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCleanString(t *testing.T) {
	if got := CleanString("  Ana  "); got != "Ana" {
		t.Errorf("CleanString() = %q", got)
	}
	if got := CleanString(" ANA@Example.com ", true); got != "ana@example.com" {
		t.Errorf("CleanString(lower) = %q", got)
	}
}
