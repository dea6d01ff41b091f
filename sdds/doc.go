// Package sdds reads and writes pages of self-describing tabular data.
//
// A page carries one value per declared parameter, one multi-dimensional
// value per declared array, and a table of rows with one value per declared
// column. Pages are framed by a row count and written back to back through a
// plain, gzip or xz byte stream.
//
// # Writing
//
//	ds, err := sdds.Create("run.sdds", layout)
//	ds.StartPage()
//	ds.SetParameter("Energy", 1.5)
//	ds.AppendRow(0.1, "x")
//	ds.WritePage()
//	ds.Close()
//
// Long-running writers can keep a page open and call [Dataset.UpdatePage]
// as rows arrive; only the row-count field is patched in place and only the
// new rows are appended.
//
// # Reading
//
//	ds, err := sdds.Open("run.sdds", layout)
//	for {
//		page, err := ds.ReadPage()
//		if errors.Is(err, sdds.ErrNoMorePages) {
//			break
//		}
//		...
//	}
//
// [Dataset.ReadPageSparse], [Dataset.ReadPageLastRows] and
// [Dataset.ReadPageStatistics] decimate rows while reading.
//
// The schema itself is supplied by the caller as a [Layout]; no text header
// is read or written.
package sdds
