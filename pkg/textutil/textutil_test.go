package textutil

import "testing"

func TestSnake(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Jewelled Dagger", "jewelled_dagger"},
		{"coin", "coin"},
		{"Ghost of the Former Owner", "ghost_of_the_former_owner"},
		{"already_snake", "already_snake"},
		{"Mixed-Case.Name", "mixed_case_name"},
		{"  spaced  ", "spaced"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Snake(tt.in); got != tt.want {
			t.Errorf("Snake(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTitle(t *testing.T) {
	if got := Title("jewelled dagger"); got != "Jewelled Dagger" {
		t.Errorf("Title() = %q", got)
	}
}

func TestBox(t *testing.T) {
	got := Box("Pantry")
	want := "==========\n| Pantry |\n=========="
	if got != want {
		t.Errorf("Box() = %q, want %q", got, want)
	}
}
