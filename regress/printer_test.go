package regress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrinterFormat(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.Int("space_dimension", 3)
	p.Int("value_dimension", 2, 0)
	p.Float("evaluate_dof", 0.1, 4)
	p.Floats("tabulate_tensor", []float64{1, 1e-17, -0.25, 1.0 / 3.0}, 1, 2)
	p.Ints("tabulate_dofs", []int{0, 4, 8})
	p.Bool("needs_mesh_entities", true, 0)
	p.Bool("init_mesh", false)
	p.Int("cell_shape", 2, -1, -1)

	want := "0_space_dimension = 3\n" +
		"1_value_dimension_0 = 2\n" +
		"2_evaluate_dof_4 = 0.1\n" +
		"3_tabulate_tensor_1_2 = 1 0 -0.25 0.3333333333333333\n" +
		"4_tabulate_dofs = 0 4 8\n" +
		"5_needs_mesh_entities_0 = 1\n" +
		"6_init_mesh = 0\n" +
		"7_cell_shape = 2\n"
	assert.Equal(t, want, buf.String())
	assert.Equal(t, 8, p.Counter)
}

func TestFormatFloat(t *testing.T) {
	p := NewPrinter(nil)
	tests := []struct {
		v    float64
		want string
	}{
		{0, "0"},
		{-1e-17, "0"},
		{1e-16, "1e-16"},
		{0.5, "0.5"},
		{1e-05, "1e-05"},
		{123456, "123456"},
		{1e17, "1e+17"},
		{0.1 + 0.2, "0.3"},
		{2.0 / 3.0, "0.6666666666666666"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, p.FormatFloat(tt.v), "%v", tt.v)
	}
}

func TestPrinterCountersIndependent(t *testing.T) {
	var b1, b2 bytes.Buffer
	p1, p2 := NewPrinter(&b1), NewPrinter(&b2)
	p1.Int("a", 1)
	p1.Int("b", 2)
	p2.Int("b", 2)
	assert.Equal(t, "0_b = 2\n", b2.String())
	assert.Equal(t, "0_a = 1\n1_b = 2\n", b1.String())
}

func TestHeader(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.Header("Testing form")
	assert.Equal(t, "\nTesting form\n------------\n", buf.String())
	assert.Zero(t, p.Counter)
}
