package monitor

import (
	"testing"

	"github.com/grigio/network-monitor/internal/model"
)

func row(process, dest string, txBytes, rxBytes uint64) model.DisplayRow {
	return model.DisplayRow{
		Process:     process,
		Protocol:    "tcp",
		Destination: dest,
		TX:          model.FormatRate(txBytes),
		RX:          model.FormatRate(rxBytes),
		TxBytes:     txBytes,
		RxBytes:     rxBytes,
	}
}

func TestSortAndFilter_DropsLocalhostRows(t *testing.T) {
	rows := []model.DisplayRow{
		row("a", "example.com:443", 0, 0),
		row("b", "LOCALHOST", 100, 100),
		row("c", "10.0.0.1:80", 0, 0),
	}

	for _, col := range Columns() {
		for _, asc := range []bool{true, false} {
			out := SortAndFilter(rows, col, asc)
			if len(out) != 2 {
				t.Fatalf("col %v asc %v: got %d rows, want 2", col, asc, len(out))
			}
			for _, r := range out {
				if r.Destination == "LOCALHOST" {
					t.Errorf("col %v asc %v: localhost row survived filtering", col, asc)
				}
			}
		}
	}
}

func TestSortAndFilter_NumericRateOrdering(t *testing.T) {
	// String comparison would put "1.0KB/s" before "900.0B/s"; the raw
	// byte values must win.
	rows := []model.DisplayRow{
		row("big", "a:1", 1024, 0),
		row("small", "b:1", 900, 0),
	}

	out := SortAndFilter(rows, ColTX, true)
	if out[0].Process != "small" || out[1].Process != "big" {
		t.Errorf("ascending TX order = [%s, %s], want [small, big]",
			out[0].Process, out[1].Process)
	}

	out = SortAndFilter(rows, ColTX, false)
	if out[0].Process != "big" {
		t.Errorf("descending TX order starts with %s, want big", out[0].Process)
	}
}

func TestSortAndFilter_StableOnTies(t *testing.T) {
	rows := []model.DisplayRow{
		row("first", "a:1", 50, 0),
		row("second", "b:1", 50, 0),
		row("third", "c:1", 50, 0),
	}

	for _, asc := range []bool{true, false} {
		out := SortAndFilter(rows, ColRX, asc)
		order := []string{out[0].Process, out[1].Process, out[2].Process}
		want := []string{"first", "second", "third"}
		for i := range want {
			if order[i] != want[i] {
				t.Errorf("asc %v: tie order = %v, want %v", asc, order, want)
				break
			}
		}
	}
}

func TestSortAndFilter_CaseFoldedStrings(t *testing.T) {
	rows := []model.DisplayRow{
		row("Zsh", "a:1", 0, 0),
		row("bash", "b:1", 0, 0),
		row("Firefox", "c:1", 0, 0),
	}

	out := SortAndFilter(rows, ColProcess, true)
	want := []string{"bash", "Firefox", "Zsh"}
	for i := range want {
		if out[i].Process != want[i] {
			t.Errorf("position %d = %s, want %s", i, out[i].Process, want[i])
		}
	}
}

func TestColumns_LabelsAndOrder(t *testing.T) {
	cols := Columns()
	if len(cols) != 8 {
		t.Fatalf("got %d columns, want 8", len(cols))
	}
	if cols[0].String() != "Process(ID)" || cols[7].String() != "Path" {
		t.Errorf("unexpected column labels: %v ... %v", cols[0], cols[7])
	}
}
