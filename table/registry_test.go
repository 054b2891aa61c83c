package table

import (
	"errors"
	"testing"
)

func TestBuildRegistry_AssignsNumbersInOrder(t *testing.T) {
	reg, err := BuildRegistry([]string{"name", "age", "city"}, nil)
	if err != nil {
		t.Fatalf("BuildRegistry error = %v", err)
	}

	if reg.Len() != 3 {
		t.Errorf("Len() = %d, want 3", reg.Len())
	}

	wantNumbers := map[string]int{"name": 1, "age": 2, "city": 3}
	for name, want := range wantNumbers {
		got, ok := reg.Resolve(name)
		if !ok || got != want {
			t.Errorf("Resolve(%q) = %d, %v; want %d, true", name, got, ok, want)
		}
	}

	for n := 1; n <= 3; n++ {
		if reg.Label(n) != "" {
			t.Errorf("Label(%d) = %q, want empty without a label lookup", n, reg.Label(n))
		}
	}
}

func TestBuildRegistry_Labels(t *testing.T) {
	labels := func(name string) (string, bool) {
		switch name {
		case "name":
			return "people:Full name", true
		case "age":
			return "unprefixed", true
		default:
			return "", false
		}
	}

	reg, err := BuildRegistry([]string{"name", "age", "city"}, labels)
	if err != nil {
		t.Fatalf("BuildRegistry error = %v", err)
	}

	tests := []struct {
		col  int
		want string
	}{
		{1, "Full name"}, // namespace prefix stripped
		{2, "unprefixed"},
		{3, ""}, // no label supplied
	}
	for _, tt := range tests {
		if got := reg.Label(tt.col); got != tt.want {
			t.Errorf("Label(%d) = %q, want %q", tt.col, got, tt.want)
		}
	}
}

func TestBuildRegistry_Errors(t *testing.T) {
	tests := []struct {
		name  string
		names []string
	}{
		{"nil generator output", nil},
		{"empty generator output", []string{}},
		{"duplicate identifier", []string{"a", "b", "a"}},
		{"malformed identifier", []string{"a", "b c"}},
		{"digit-leading identifier", []string{"1st"}},
		{"empty identifier", []string{""}},
		{"bare sentinel", []string{"$"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildRegistry(tt.names, nil)
			if !errors.Is(err, ErrConfiguration) {
				t.Errorf("BuildRegistry(%v) error = %v, want ErrConfiguration", tt.names, err)
			}
		})
	}
}

func TestBuildRegistry_SentinelNames(t *testing.T) {
	reg, err := BuildRegistry([]string{"$F1", "$F2"}, nil)
	if err != nil {
		t.Fatalf("BuildRegistry error = %v", err)
	}

	// References with and without the sentinel address the same column
	for _, ref := range []string{"$F2", "F2"} {
		if got, ok := reg.Resolve(ref); !ok || got != 2 {
			t.Errorf("Resolve(%q) = %d, %v; want 2, true", ref, got, ok)
		}
	}

	if name := reg.Name(1); name != "$F1" {
		t.Errorf("Name(1) = %q, want %q", name, "$F1")
	}
}
