package sdds

import (
	"os"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSparseAndStatisticalReads(t *testing.T) {
	tests := []struct {
		name    string
		opts    ReadOptions
		wantX   []float64
		wantIdx []int32
	}{
		{"every row", ReadOptions{}, []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, []int32{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}},
		{"sparse", ReadOptions{Interval: 3, Offset: 1}, []float64{1, 4, 7}, []int32{1, 4, 7}},
		{"average", ReadOptions{Interval: 3, Offset: 1, Statistics: StatAverage}, []float64{2, 5, 8}, []int32{3, 6, 9}},
		{"median", ReadOptions{Interval: 4, Statistics: StatMedian}, []float64{1.5, 5.5, 8.5}, []int32{3, 7, 9}},
		{"minimum", ReadOptions{Interval: 4, Offset: 2, Statistics: StatMinimum}, []float64{2, 6}, []int32{5, 9}},
		{"maximum", ReadOptions{Interval: 5, Statistics: StatMaximum}, []float64{4, 9}, []int32{4, 9}},
		{"trailing partial window", ReadOptions{Interval: 4}, []float64{0, 4, 8}, []int32{0, 4, 8}},
		{"offset only", ReadOptions{Offset: 7}, []float64{7, 8, 9}, []int32{7, 8, 9}},
		{"offset past end", ReadOptions{Offset: 20}, []float64{}, []int32{}},
		{"last rows", ReadOptions{LastRows: 4}, []float64{6, 7, 8, 9}, []int32{6, 7, 8, 9}},
		{"last rows beyond count", ReadOptions{LastRows: 50}, []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, []int32{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}},
	}

	path := tempPath(t, "index.sdds")
	writeIndexPages(t, path, len(tests)+1, 10)

	rd, err := Open(path, singleColumn(), WithBufferSize(7))
	require.NoError(t, err)
	defer rd.Close()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := rd.ReadPageDetailed(tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.wantX, page.Columns[0].Data)
			assert.Equal(t, tt.wantIdx, page.Columns[1].Data)
		})
	}

	// The pages after a decimated read stay aligned.
	page, err := rd.ReadPage()
	require.NoError(t, err)
	assert.Equal(t, 10, page.Rows())
	_, err = rd.ReadPage()
	assert.True(t, errors.Is(err, ErrNoMorePages))
}

func TestReadWrappers(t *testing.T) {
	path := tempPath(t, "index.sdds")
	writeIndexPages(t, path, 3, 10)

	rd, err := Open(path, singleColumn())
	require.NoError(t, err)
	defer rd.Close()

	page, err := rd.ReadPageSparse(3, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 4, 7}, page.Columns[0].Data)

	page, err = rd.ReadPageStatistics(3, 1, StatAverage)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 5, 8}, page.Columns[0].Data)

	page, err = rd.ReadPageLastRows(2)
	require.NoError(t, err)
	assert.Equal(t, []float64{8, 9}, page.Columns[0].Data)
	assert.Equal(t, 3, page.Number)
}

func TestStatisticsOnFloat32Columns(t *testing.T) {
	layout := &Layout{Columns: []ColumnDef{{Name: "f", Type: Float}, {Name: "name", Type: String}}}
	path := tempPath(t, "f.sdds")
	ds, err := Create(path, layout)
	require.NoError(t, err)
	for i := 0; i < 6; i++ {
		require.NoError(t, ds.AppendRow(float32(i), string(rune('a'+i))))
	}
	require.NoError(t, ds.WritePage())
	require.NoError(t, ds.Close())

	rd, err := Open(path, layout)
	require.NoError(t, err)
	defer rd.Close()
	page, err := rd.ReadPageStatistics(2, 0, StatAverage)
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5, 2.5, 4.5}, page.Columns[0].Data)
	assert.Equal(t, []string{"b", "d", "f"}, page.Columns[1].Data)
}

func TestColumnMajorSparseIsUnsupported(t *testing.T) {
	layout := singleColumn()
	layout.DataMode.ColumnMajor = true
	path := tempPath(t, "cm.sdds")
	ds, err := Create(path, layout)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		require.NoError(t, ds.AppendRow(float64(i), i))
	}
	require.NoError(t, ds.WritePage())
	require.NoError(t, ds.Close())

	rd, err := Open(path, layout)
	require.NoError(t, err)
	defer rd.Close()

	for _, opts := range []ReadOptions{{Interval: 2}, {Offset: 1}, {LastRows: 2}} {
		_, err := rd.ReadPageDetailed(opts)
		assert.True(t, errors.Is(err, ErrUnsupported), "%+v: got %v", opts, err)
	}

	// Nothing was consumed by the rejected reads.
	page, err := rd.ReadPage()
	require.NoError(t, err)
	assert.Equal(t, []int32{0, 1, 2, 3, 4}, page.Columns[1].Data)
}

// truncatedPage writes one 10-row page and cuts it 3 bytes into row k.
func truncatedPage(t *testing.T, k int) string {
	t.Helper()
	path := tempPath(t, "trunc.sdds")
	writeIndexPages(t, path, 1, 10)
	data := readFile(t, path)
	const rowSize = 8 + 4
	cut := 4 + k*rowSize + 3
	require.Less(t, cut, len(data))
	require.NoError(t, os.WriteFile(path, data[:cut], 0o644))
	return path
}

func TestAutoRecovery(t *testing.T) {
	for _, size := range []int{0, 7, DefaultBufferSize} {
		path := truncatedPage(t, 6)

		rd, err := Open(path, singleColumn(), WithAutoRecover(), WithBufferSize(size))
		require.NoError(t, err)

		assert.False(t, rd.Recovered())
		page, err := rd.ReadPage()
		require.NoError(t, err, "buffer size %d", size)
		assert.Equal(t, []float64{0, 1, 2, 3, 4, 5}, page.Columns[0].Data)
		assert.Equal(t, []int32{0, 1, 2, 3, 4, 5}, page.Columns[1].Data)
		assert.True(t, rd.Recovered())

		_, err = rd.ReadPage()
		assert.True(t, errors.Is(err, ErrNoMorePages), "got %v", err)
		require.NoError(t, rd.Close())
	}
}

func TestAutoRecoveryWithDecimation(t *testing.T) {
	path := truncatedPage(t, 7)

	rd, err := Open(path, singleColumn(), WithAutoRecover())
	require.NoError(t, err)
	defer rd.Close()

	page, err := rd.ReadPageSparse(3, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 4}, page.Columns[0].Data)
}

func TestTruncationWithoutRecovery(t *testing.T) {
	path := truncatedPage(t, 6)

	rd, err := Open(path, singleColumn())
	require.NoError(t, err)
	defer rd.Close()

	_, err = rd.ReadPage()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIO), "got %v", err)

	var pe *PageError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 1, pe.Page)
	assert.Equal(t, SectionColumns, pe.Section)
	assert.Equal(t, int64(6), pe.Row)
	assert.Equal(t, "x", pe.Name)

	assert.True(t, rd.ReadRecoveryPossible())
	assert.False(t, rd.ReadRecoveryPossible(), "querying clears the flag")
	assert.False(t, rd.Recovered())
}

func TestFixedValueParameters(t *testing.T) {
	pi := "3.25"
	name := "beam line"
	layout := &Layout{
		Parameters: []ParameterDef{
			{Name: "pi", Type: Double, FixedValue: &pi},
			{Name: "stored", Type: Long},
			{Name: "where", Type: String, FixedValue: &name},
		},
	}
	path := tempPath(t, "fixed.sdds")
	ds, err := Create(path, layout)
	require.NoError(t, err)
	require.NoError(t, ds.SetParameter("stored", 77))
	require.NoError(t, ds.WritePage())
	require.NoError(t, ds.Close())

	assert.Len(t, readFile(t, path), 4+4)

	rd, err := Open(path, layout)
	require.NoError(t, err)
	defer rd.Close()
	page, err := rd.ReadPage()
	require.NoError(t, err)
	assert.Equal(t, []any{3.25, int32(77), "beam line"}, page.Parameters)
}
