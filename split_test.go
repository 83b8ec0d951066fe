package wkt

import "testing"

func collect(t *testing.T, body string) []string {
	t.Helper()
	sc := newComponentScanner(body)
	var out []string
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	if err := sc.Err(); err != nil {
		t.Fatalf("scan error: %v", err)
	}
	return out
}

func TestComponentScanner(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{
			"single component",
			"POINT(1 2)",
			[]string{"POINT(1 2)"},
		},
		{
			"point and polygon",
			"POINT(1 2),POLYGON((0 0,1 0,1 1,0 0))",
			[]string{"POINT(1 2)", "POLYGON((0 0,1 0,1 1,0 0))"},
		},
		{
			"polygon with hole stays whole",
			"POLYGON((0 0,4 0,4 4,0 0),(1 1,2 1,1 2,1 1)),POINT(9 9)",
			[]string{"POLYGON((0 0,4 0,4 4,0 0),(1 1,2 1,1 2,1 1))", "POINT(9 9)"},
		},
		{
			"nested collection stays whole",
			"GEOMETRYCOLLECTION(POINT(1 2),POINT(3 4)),POINT(5 6)",
			[]string{"GEOMETRYCOLLECTION(POINT(1 2),POINT(3 4))", "POINT(5 6)"},
		},
		{
			"bare pairs split at depth zero",
			"1 2,3 4,5 6",
			[]string{"1 2", "3 4", "5 6"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collect(t, tt.body)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d components, got %d: %q", len(tt.want), len(got), got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("component %d: expected %q, got %q", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestComponentScannerUnbalanced(t *testing.T) {
	sc := newComponentScanner("POINT(1 2),POLYGON((0 0")
	if !sc.Scan() {
		t.Fatal("expected first component to scan")
	}
	if sc.Text() != "POINT(1 2)" {
		t.Errorf("expected POINT(1 2), got %q", sc.Text())
	}
	if sc.Scan() {
		t.Error("expected scan to stop on unbalanced input")
	}
	if sc.Err() != ErrUnbalanced {
		t.Errorf("expected ErrUnbalanced, got %v", sc.Err())
	}
}

func TestComponentScannerStrayClose(t *testing.T) {
	sc := newComponentScanner("POINT(1 2))")
	if sc.Scan() {
		t.Error("expected scan to stop on stray close paren")
	}
	if sc.Err() != ErrUnbalanced {
		t.Errorf("expected ErrUnbalanced, got %v", sc.Err())
	}
}

func TestComponentScannerRestart(t *testing.T) {
	body := "POINT(1 2),POINT(3 4)"
	first := collect(t, body)
	second := collect(t, body)
	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("expected 2 components on both passes, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("component %d differs between passes: %q vs %q", i, first[i], second[i])
		}
	}
}
