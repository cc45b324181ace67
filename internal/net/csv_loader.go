package net

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Dataset holds input/target pairs in file order.
type Dataset struct {
	Samples [][]float64
	Labels  [][]float64
}

// LoadCSV reads a numeric CSV file. labelCols are the target columns, in
// the order the target vector takes them; every other column is an input,
// left to right. hasHeader skips the first row.
func LoadCSV(filename string, labelCols []int, hasHeader bool) (*Dataset, error) {
	table, err := readTable(filename, hasHeader)
	if err != nil {
		return nil, err
	}
	return splitColumns(table, labelCols)
}

// LoadCSVFor reads filename as training data for n. With no labelCols the
// last n.Architecture()[last] columns are the targets. A file whose input
// or target width does not match n fails with ErrDimensionMismatch.
func LoadCSVFor(n *Network, filename string, labelCols []int, hasHeader bool) (*Dataset, error) {
	table, err := readTable(filename, hasHeader)
	if err != nil {
		return nil, err
	}

	inputs, outputs := n.arch[0], n.arch[len(n.arch)-1]
	_, cols := table.Dims()
	if len(labelCols) == 0 {
		if cols <= outputs {
			return nil, errors.Wrapf(ErrDimensionMismatch, "%s has %d columns, want %d inputs and %d targets", filename, cols, inputs, outputs)
		}
		for c := cols - outputs; c < cols; c++ {
			labelCols = append(labelCols, c)
		}
	}

	d, err := splitColumns(table, labelCols)
	if err != nil {
		return nil, err
	}
	if got := len(d.Samples[0]); got != inputs {
		return nil, errors.Wrapf(ErrDimensionMismatch, "%s has %d input columns, network takes %d", filename, got, inputs)
	}
	if got := len(d.Labels[0]); got != outputs {
		return nil, errors.Wrapf(ErrDimensionMismatch, "%s has %d target columns, network gives %d", filename, got, outputs)
	}
	return d, nil
}

// readTable parses every data row of filename into a rows x cols matrix.
func readTable(filename string, hasHeader bool) (*mat.Dense, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "open dataset")
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", filename)
	}
	if hasHeader && len(records) > 0 {
		records = records[1:]
	}
	if len(records) == 0 {
		return nil, errors.Wrapf(ErrEmptyDataset, "%s has no data rows", filename)
	}

	// csv.Reader already rejects rows with a different field count
	cols := len(records[0])
	data := make([]float64, 0, len(records)*cols)
	for i, record := range records {
		for j, field := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, errors.Wrapf(err, "%s row %d, column %d", filename, i, j)
			}
			data = append(data, v)
		}
	}
	return mat.NewDense(len(records), cols, data), nil
}

// splitColumns copies the label columns and the remaining input columns of
// each table row into a Dataset.
func splitColumns(table *mat.Dense, labelCols []int) (*Dataset, error) {
	rows, cols := table.Dims()
	if len(labelCols) == 0 {
		return nil, errors.New("no label columns given")
	}

	isLabel := make([]bool, cols)
	for _, c := range labelCols {
		if c < 0 || c >= cols {
			return nil, errors.Errorf("label column %d out of range [0, %d)", c, cols)
		}
		if isLabel[c] {
			return nil, errors.Errorf("label column %d given twice", c)
		}
		isLabel[c] = true
	}

	var inputCols []int
	for c := 0; c < cols; c++ {
		if !isLabel[c] {
			inputCols = append(inputCols, c)
		}
	}
	if len(inputCols) == 0 {
		return nil, errors.New("every column is a label, no inputs left")
	}

	d := &Dataset{
		Samples: make([][]float64, rows),
		Labels:  make([][]float64, rows),
	}
	for i := 0; i < rows; i++ {
		row := table.RawRowView(i)
		d.Samples[i] = gather(row, inputCols)
		d.Labels[i] = gather(row, labelCols)
	}
	return d, nil
}

func gather(row []float64, cols []int) []float64 {
	out := make([]float64, len(cols))
	for k, c := range cols {
		out[k] = row[c]
	}
	return out
}

// Normalize rescales every input column to [0, 1] in place. A constant
// column becomes all zeros. Labels are left alone.
func (d *Dataset) Normalize() {
	if len(d.Samples) == 0 {
		return
	}

	col := make([]float64, len(d.Samples))
	for j := range d.Samples[0] {
		for i, s := range d.Samples {
			col[i] = s[j]
		}

		lo, hi := floats.Min(col), floats.Max(col)
		if span := hi - lo; span == 0 {
			floats.Scale(0, col)
		} else {
			floats.AddConst(-lo, col)
			floats.Scale(1/span, col)
		}

		for i, s := range d.Samples {
			s[j] = col[i]
		}
	}
}
