package sdds

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func foreignOrder() ByteOrder {
	if HostOrder() == OrderLittleEndian {
		return OrderBigEndian
	}
	return OrderLittleEndian
}

func tempPath(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(t.TempDir(), name)
}

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}

// mixedLayout declares every element kind in every section.
func mixedLayout(columnMajor bool, order ByteOrder) *Layout {
	fixed := "42"
	return &Layout{
		Parameters: []ParameterDef{
			{Name: "Label", Type: String},
			{Name: "Energy", Type: Double},
			{Name: "Precise", Type: LongDouble},
			{Name: "Turns", Type: Long64},
			{Name: "Tag", Type: Character},
			{Name: "Constant", Type: Short, FixedValue: &fixed},
			{Name: "Gain", Type: Float},
		},
		Arrays: []ArrayDef{
			{Name: "Matrix", Type: Float, Dimensions: 2},
			{Name: "Names", Type: String, Dimensions: 1},
			{Name: "Empty", Type: ULong, Dimensions: 3},
		},
		Columns: []ColumnDef{
			{Name: "x", Type: Double},
			{Name: "ld", Type: LongDouble},
			{Name: "i", Type: Long},
			{Name: "u", Type: UShort},
			{Name: "name", Type: String},
			{Name: "c", Type: Character},
			{Name: "s", Type: Short},
			{Name: "ul", Type: ULong64},
			{Name: "f", Type: Float},
			{Name: "l64", Type: Long64},
			{Name: "ulong", Type: ULong},
		},
		DataMode: DataMode{ColumnMajor: columnMajor, ByteOrder: order},
	}
}

// fillMixed populates the current page of a mixedLayout dataset.
func fillMixed(t *testing.T, ds *Dataset, page, rows int) {
	t.Helper()
	require.NoError(t, ds.SetParameter("Label", fmt.Sprintf("page-%d", page)))
	require.NoError(t, ds.SetParameter("Energy", 1.5*float64(page)))
	require.NoError(t, ds.SetParameter("Precise", -1.0/3))
	require.NoError(t, ds.SetParameter("Turns", int64(1)<<40+int64(page)))
	require.NoError(t, ds.SetParameter("Tag", 'q'))
	require.NoError(t, ds.SetParameter("Gain", float32(0.5)))
	require.NoError(t, ds.SetArray("Matrix", []int32{2, 3},
		Vector{Type: Float, Data: []float32{1, 2, 3, 4, 5, float32(page)}}))
	require.NoError(t, ds.SetArray("Names", []int32{2},
		Vector{Type: String, Data: []string{"alpha", ""}}))
	require.NoError(t, ds.SetArray("Empty", nil, Vector{}))
	appendMixedRows(t, ds, 0, rows)
}

func appendMixedRows(t *testing.T, ds *Dataset, from, to int) {
	t.Helper()
	for i := from; i < to; i++ {
		require.NoError(t, ds.AppendRow(
			float64(i)*0.5,
			float64(i)/3,
			int32(-i),
			uint16(i),
			fmt.Sprintf("row-%d", i),
			byte('a'+i%26),
			int16(i*3),
			uint64(i)<<40,
			float32(i)+0.25,
			int64(-i)<<33,
			uint32(i)*7,
		))
	}
}

// expectedMixed is what reading a page written by fillMixed yields.
func expectedMixed(t *testing.T, written *Page) *Page {
	t.Helper()
	want := &Page{
		Number:     written.Number,
		Parameters: append([]any(nil), written.Parameters...),
		Arrays:     append([]ArrayValue(nil), written.Arrays...),
		Columns:    make([]Vector, len(written.Columns)),
	}
	want.Parameters[5] = int16(42)
	want.Arrays[2] = ArrayValue{Dims: []int32{0, 0, 0}, Values: NewVector(ULong, 0)}
	for i, col := range written.Columns {
		kept := NewVector(col.Type, 0)
		for r := 0; r < col.Len(); r++ {
			if !written.interesting(r) {
				continue
			}
			var err error
			kept, err = kept.Append(col.At(r))
			require.NoError(t, err)
		}
		want.Columns[i] = kept
	}
	return want
}

// singleColumn is a row-major layout with one Double column "x" and one
// Long column "idx".
func singleColumn() *Layout {
	return &Layout{
		Columns: []ColumnDef{
			{Name: "x", Type: Double},
			{Name: "idx", Type: Long},
		},
	}
}

func writeIndexPages(t *testing.T, path string, pages, rows int, opts ...Option) {
	t.Helper()
	ds, err := Create(path, singleColumn(), opts...)
	require.NoError(t, err)
	for p := 0; p < pages; p++ {
		require.NoError(t, ds.StartPage(0))
		for i := 0; i < rows; i++ {
			require.NoError(t, ds.AppendRow(float64(i), int32(i)))
		}
		require.NoError(t, ds.WritePage())
	}
	require.NoError(t, ds.Close())
}
