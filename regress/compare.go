package regress

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// Entry is one parsed line of regression output
type Entry struct {
	Line   int       // 1-based line number in its source
	Key    string    // Label left of " = ", or the whole line for text
	Values []float64 // Parsed values; nil for text lines
	Text   string    // Raw value text
}

// Mismatch records a baseline line that the current output does not reproduce
type Mismatch struct {
	Key      string
	Baseline string
	Current  string
	Diff     string
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: baseline %q, current %q", m.Key, m.Baseline, m.Current)
}

// Parse reads regression output. Benchmark timing lines are dropped since
// they differ between runs.
func Parse(r io.Reader) ([]Entry, error) {
	var (
		entries []Entry
		sc      = bufio.NewScanner(r)
		n       int
	)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for sc.Scan() {
		n++
		line := strings.TrimRight(sc.Text(), " \t")
		if line == "" || isTiming(line) {
			continue
		}
		e := Entry{Line: n, Key: line}
		if key, text, ok := strings.Cut(line, " ="); ok {
			e.Key, e.Text = key, strings.TrimSpace(text)
			e.Values = parseValues(e.Text)
		}
		entries = append(entries, e)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading regression output: %w", err)
	}
	return entries, nil
}

func isTiming(line string) bool {
	return strings.HasPrefix(line, "timing required ") || strings.HasPrefix(line, "bench ")
}

func parseValues(text string) []float64 {
	fields := strings.Fields(text)
	values := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil
		}
		values = append(values, v)
	}
	return values
}

// Compare checks current against baseline line by line. Values match when
// they agree to within the relative tolerance tol.
func Compare(baseline, current io.Reader, tol float64) ([]Mismatch, error) {
	want, err := Parse(baseline)
	if err != nil {
		return nil, fmt.Errorf("baseline: %w", err)
	}
	got, err := Parse(current)
	if err != nil {
		return nil, fmt.Errorf("current: %w", err)
	}
	return CompareEntries(want, got, tol), nil
}

// CompareEntries compares parsed outputs
func CompareEntries(want, got []Entry, tol float64) (mismatches []Mismatch) {
	approx := cmpopts.EquateApprox(tol, 0)
	for i := 0; i < len(want) || i < len(got); i++ {
		switch {
		case i >= len(got):
			mismatches = append(mismatches, Mismatch{Key: want[i].Key, Baseline: want[i].Text, Current: "<missing>"})
			continue
		case i >= len(want):
			mismatches = append(mismatches, Mismatch{Key: got[i].Key, Baseline: "<missing>", Current: got[i].Text})
			continue
		}
		w, g := want[i], got[i]
		if w.Key != g.Key {
			mismatches = append(mismatches, Mismatch{Key: w.Key, Baseline: w.Key, Current: g.Key,
				Diff: cmp.Diff(w.Key, g.Key)})
			continue
		}
		if w.Values == nil || g.Values == nil {
			if w.Text != g.Text {
				mismatches = append(mismatches, Mismatch{Key: w.Key, Baseline: w.Text, Current: g.Text,
					Diff: cmp.Diff(w.Text, g.Text)})
			}
			continue
		}
		if !cmp.Equal(w.Values, g.Values, approx) {
			mismatches = append(mismatches, Mismatch{Key: w.Key, Baseline: w.Text, Current: g.Text,
				Diff: cmp.Diff(w.Values, g.Values, approx)})
		}
	}
	return mismatches
}
