// Package regress writes results in the canonical numbered text format used
// for regression baselines, and compares such outputs.
//
// Every value line has the form
//
//	<seq>_<name>[_<i>[_<j>]] = <value ...>
//
// where seq counts the lines written by one Printer.
package regress

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

const (
	DefaultPrecision = 16
	DefaultEpsilon   = 1e-16
)

// Printer numbers its lines with its own counter, so that two printers
// produce identical output for identical calls.
type Printer struct {
	W         io.Writer
	Precision int     // Significant digits of floats
	Epsilon   float64 // Magnitudes below this print as 0
	Counter   int     // Sequence number of the next line
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{
		W:         w,
		Precision: DefaultPrecision,
		Epsilon:   DefaultEpsilon,
	}
}

// Header prints a blank line, the title and an underline
func (p *Printer) Header(title string) {
	fmt.Fprintf(p.W, "\n%s\n%s\n", title, strings.Repeat("-", len(title)))
}

// Float prints a scalar. Negative indices are omitted from the name.
func (p *Printer) Float(name string, v float64, idx ...int) {
	fmt.Fprintf(p.W, "%s = %s\n", p.label(name, idx), p.FormatFloat(v))
}

func (p *Printer) Int(name string, v int, idx ...int) {
	fmt.Fprintf(p.W, "%s = %d\n", p.label(name, idx), v)
}

// Bool prints true as 1 and false as 0
func (p *Printer) Bool(name string, v bool, idx ...int) {
	n := 0
	if v {
		n = 1
	}
	p.Int(name, n, idx...)
}

// Floats prints the values space separated
func (p *Printer) Floats(name string, values []float64, idx ...int) {
	var sb strings.Builder
	sb.WriteString(p.label(name, idx))
	sb.WriteString(" =")
	for _, v := range values {
		sb.WriteByte(' ')
		sb.WriteString(p.FormatFloat(v))
	}
	sb.WriteByte('\n')
	io.WriteString(p.W, sb.String())
}

func (p *Printer) Ints(name string, values []int, idx ...int) {
	var sb strings.Builder
	sb.WriteString(p.label(name, idx))
	sb.WriteString(" =")
	for _, v := range values {
		sb.WriteByte(' ')
		sb.WriteString(strconv.Itoa(v))
	}
	sb.WriteByte('\n')
	io.WriteString(p.W, sb.String())
}

func (p *Printer) label(name string, idx []int) string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(p.Counter))
	p.Counter++
	sb.WriteByte('_')
	sb.WriteString(name)
	for _, i := range idx {
		if i < 0 {
			continue
		}
		sb.WriteByte('_')
		sb.WriteString(strconv.Itoa(i))
	}
	return sb.String()
}

// FormatFloat renders v like a C++ stream with precision(p.Precision), with
// magnitudes below p.Epsilon canonicalised to 0
func (p *Printer) FormatFloat(v float64) string {
	if math.Abs(v) < p.Epsilon {
		return "0"
	}
	return strconv.FormatFloat(v, 'g', p.Precision, 64)
}
