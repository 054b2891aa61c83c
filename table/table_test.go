package table

import (
	"errors"
	"testing"
)

// loadTestTable builds the 3x2 fixture used across the range tests:
//
//	row 1: "1|x"  -> A="1", B="x"
//	row 2: "2|"   -> A="2", B absent
//	row 3: "|y"   -> A absent, B="y"
func loadTestTable(t *testing.T) *Table {
	t.Helper()
	reg, err := BuildRegistry([]string{"A", "B"}, nil)
	if err != nil {
		t.Fatalf("BuildRegistry error = %v", err)
	}
	tab := New(reg)
	if err := tab.Load([]string{"1|x", "2|", "|y"}, "|"); err != nil {
		t.Fatalf("Load error = %v", err)
	}
	return tab
}

func TestLoad_CellAssignment(t *testing.T) {
	tab := loadTestTable(t)

	tests := []struct {
		row, col    int
		want        string
		wantPresent bool
	}{
		{1, 1, "1", true},
		{1, 2, "x", true},
		{2, 1, "2", true},
		{2, 2, "", false}, // trailing empty field -> absent cell
		{3, 1, "", false}, // leading empty field -> absent cell
		{3, 2, "y", true},
	}

	for _, tt := range tests {
		got, present, err := tab.Cell(tt.row, tt.col)
		if err != nil {
			t.Fatalf("Cell(%d,%d) error = %v", tt.row, tt.col, err)
		}
		if got != tt.want || present != tt.wantPresent {
			t.Errorf("Cell(%d,%d) = %q, %v; want %q, %v", tt.row, tt.col, got, present, tt.want, tt.wantPresent)
		}
	}
}

func TestLoad_InitializesFullActiveRange(t *testing.T) {
	tab := loadTestTable(t)

	tok, err := tab.ActiveRange()
	if err != nil {
		t.Fatalf("ActiveRange error = %v", err)
	}

	assertInts(t, "active rows", tok.Rows(), []int{1, 2, 3})
	assertInts(t, "active cols", tok.Cols(), []int{1, 2})
}

func TestLoad_ShortAndLongLines(t *testing.T) {
	reg, err := BuildRegistry([]string{"a", "b", "c"}, nil)
	if err != nil {
		t.Fatalf("BuildRegistry error = %v", err)
	}
	tab := New(reg)
	if err := tab.Load([]string{"x", "1,2,3,4"}, ","); err != nil {
		t.Fatalf("Load error = %v", err)
	}

	// Row 1 has fewer fields than columns: the rest are absent
	if _, present, _ := tab.Cell(1, 2); present {
		t.Error("Cell(1,2) should be absent for a short line")
	}

	// Row 2 has more fields than columns: extras are ignored
	if got, _, _ := tab.Cell(2, 3); got != "3" {
		t.Errorf("Cell(2,3) = %q, want %q", got, "3")
	}
}

func TestLoad_Errors(t *testing.T) {
	reg, err := BuildRegistry([]string{"a"}, nil)
	if err != nil {
		t.Fatalf("BuildRegistry error = %v", err)
	}

	t.Run("no registry", func(t *testing.T) {
		tab := New(nil)
		if err := tab.Load([]string{"x"}, "|"); !errors.Is(err, ErrCorruptedState) {
			t.Errorf("Load error = %v, want ErrCorruptedState", err)
		}
	})

	t.Run("empty delimiter", func(t *testing.T) {
		tab := New(reg)
		if err := tab.Load([]string{"x"}, ""); !errors.Is(err, ErrConfiguration) {
			t.Errorf("Load error = %v, want ErrConfiguration", err)
		}
	})

	t.Run("double load", func(t *testing.T) {
		tab := New(reg)
		if err := tab.Load([]string{"x"}, "|"); err != nil {
			t.Fatalf("first Load error = %v", err)
		}
		if err := tab.Load([]string{"y"}, "|"); !errors.Is(err, ErrCorruptedState) {
			t.Errorf("second Load error = %v, want ErrCorruptedState", err)
		}
	})
}

func TestOperationsBeforeLoad(t *testing.T) {
	reg, err := BuildRegistry([]string{"a"}, nil)
	if err != nil {
		t.Fatalf("BuildRegistry error = %v", err)
	}
	tab := New(reg)

	if _, err := tab.ActiveRange(); !errors.Is(err, ErrCorruptedState) {
		t.Errorf("ActiveRange error = %v, want ErrCorruptedState", err)
	}
	if err := tab.SetActiveRange(NewRangeToken(nil, nil)); !errors.Is(err, ErrCorruptedState) {
		t.Errorf("SetActiveRange error = %v, want ErrCorruptedState", err)
	}
	if _, err := tab.InactiveRange(); !errors.Is(err, ErrCorruptedState) {
		t.Errorf("InactiveRange error = %v, want ErrCorruptedState", err)
	}
	if err := tab.Filter("$a = 1"); !errors.Is(err, ErrCorruptedState) {
		t.Errorf("Filter error = %v, want ErrCorruptedState", err)
	}
	if err := tab.Slice("1"); !errors.Is(err, ErrCorruptedState) {
		t.Errorf("Slice error = %v, want ErrCorruptedState", err)
	}
	if err := tab.Select("1"); !errors.Is(err, ErrCorruptedState) {
		t.Errorf("Select error = %v, want ErrCorruptedState", err)
	}
}

func TestColumnConsistencyCheck(t *testing.T) {
	tab := loadTestTable(t)

	// Corrupt the store's declared column number behind the registry's back
	tab.cols[1].num = 7

	if _, err := tab.ActiveRange(); !errors.Is(err, ErrCorruptedState) {
		t.Errorf("ActiveRange error = %v, want ErrCorruptedState", err)
	}
	if err := tab.Filter("$A = '1'"); !errors.Is(err, ErrCorruptedState) {
		t.Errorf("Filter error = %v, want ErrCorruptedState", err)
	}
}

func assertInts(t *testing.T, what string, got, want []int) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s = %v, want %v", what, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%s = %v, want %v", what, got, want)
		}
	}
}
