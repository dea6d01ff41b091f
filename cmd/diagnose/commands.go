package main

import (
	"io"
	"math"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/goccy/go-json"

	"github.com/rtsoliday/sddsTest-sub000/internal/logging"
	"github.com/rtsoliday/sddsTest-sub000/sdds"
)

// Source holds the flags shared by every command.
type Source struct {
	Path     string `arg:"" help:"Dataset file" type:"existingfile"`
	Layout   string `short:"l" required:"" help:"YAML layout describing the pages" type:"existingfile"`
	Config   string `short:"c" help:"YAML codec config" type:"existingfile"`
	Order    string `help:"Declared byte order (little, big, unknown); overrides the layout"`
	Recover  bool   `help:"Keep the rows of a truncated final page"`
	LogLevel string `name:"log-level" default:"warn" help:"Log level (debug, info, warn, error)"`
}

func (s *Source) open() (*sdds.Dataset, error) {
	layout, err := sdds.LoadLayout(s.Layout)
	if err != nil {
		return nil, err
	}
	opts := []sdds.Option{
		sdds.WithLogger(logging.New(logging.ParseLevel(s.LogLevel), logging.FormatText, os.Stderr)),
	}
	if s.Config != "" {
		cfg, err := sdds.LoadConfig(s.Config)
		if err != nil {
			return nil, err
		}
		opts = append(opts, sdds.WithConfig(cfg))
	}
	if s.Order != "" {
		order, err := sdds.ParseByteOrder(s.Order)
		if err != nil {
			return nil, err
		}
		opts = append(opts, sdds.WithByteOrder(order))
	}
	if s.Recover {
		opts = append(opts, sdds.WithAutoRecover())
	}
	return sdds.Open(s.Path, layout, opts...)
}

// DumpCmd prints decoded pages.
type DumpCmd struct {
	Source
	Interval int64  `help:"Keep one row per window of this many rows"`
	Offset   int64  `help:"Skip this many rows before the first window"`
	Last     int64  `help:"Keep only the last N rows of each page"`
	Stat     string `help:"Reduce each window (average, median, minimum, maximum)"`
	Pages    int    `help:"Stop after this many pages (0 = all)"`
}

// pageRecord is the JSON form of one page.
type pageRecord struct {
	Page       int                    `json:"page"`
	Rows       int                    `json:"rows"`
	Parameters map[string]any         `json:"parameters,omitempty"`
	Arrays     map[string]arrayRecord `json:"arrays,omitempty"`
	Columns    map[string]any         `json:"columns,omitempty"`
}

type arrayRecord struct {
	Dims   []int32 `json:"dims"`
	Values any     `json:"values"`
}

// Run implements the dump command.
func (c *DumpCmd) Run(out io.Writer) error {
	stat, err := sdds.ParseStatistic(c.Stat)
	if err != nil {
		return err
	}
	ds, err := c.open()
	if err != nil {
		return err
	}
	defer ds.Close()

	opts := sdds.ReadOptions{Interval: c.Interval, Offset: c.Offset, LastRows: c.Last, Statistics: stat}
	enc := json.NewEncoder(out)
	for n := 0; c.Pages == 0 || n < c.Pages; n++ {
		page, err := ds.ReadPageDetailed(opts)
		if errors.Is(err, sdds.ErrNoMorePages) {
			break
		}
		if err != nil {
			return err
		}
		if err := enc.Encode(record(ds.Layout(), page)); err != nil {
			return errors.Wrapf(err, "encoding page %d", page.Number)
		}
	}
	return nil
}

func record(l *sdds.Layout, p *sdds.Page) pageRecord {
	r := pageRecord{Page: p.Number, Rows: p.Rows()}
	if len(l.Parameters) > 0 {
		r.Parameters = make(map[string]any, len(l.Parameters))
		for i, def := range l.Parameters {
			r.Parameters[def.Name] = scalar(p.Parameters[i])
		}
	}
	if len(l.Arrays) > 0 {
		r.Arrays = make(map[string]arrayRecord, len(l.Arrays))
		for i, def := range l.Arrays {
			r.Arrays[def.Name] = arrayRecord{Dims: p.Arrays[i].Dims, Values: values(p.Arrays[i].Values)}
		}
	}
	if len(l.Columns) > 0 {
		r.Columns = make(map[string]any, len(l.Columns))
		for i, def := range l.Columns {
			r.Columns[def.Name] = values(p.Columns[i])
		}
	}
	return r
}

// scalar makes a value JSON-safe: characters become one-letter strings and
// non-finite floats become their names.
func scalar(v any) any {
	switch x := v.(type) {
	case byte:
		return string(rune(x))
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return floatName(x)
		}
	case float32:
		if f := float64(x); math.IsNaN(f) || math.IsInf(f, 0) {
			return floatName(f)
		}
	}
	return v
}

func floatName(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case f > 0:
		return "+Inf"
	default:
		return "-Inf"
	}
}

func values(v sdds.Vector) any {
	switch v.Type {
	case sdds.Character, sdds.Double, sdds.LongDouble, sdds.Float:
		out := make([]any, v.Len())
		for i := range out {
			out[i] = scalar(v.At(i))
		}
		return out
	}
	return v.Data
}

// SummaryCmd prints page and row counts.
type SummaryCmd struct {
	Source
}

type summary struct {
	Path      string `json:"path"`
	Backend   string `json:"backend"`
	ByteOrder string `json:"byte_order"`
	Pages     int    `json:"pages"`
	Rows      []int  `json:"rows"`
	TotalRows int    `json:"total_rows"`
	Recovered bool   `json:"recovered"`
}

// Run implements the summary command.
func (c *SummaryCmd) Run(out io.Writer) error {
	ds, err := c.open()
	if err != nil {
		return err
	}
	defer ds.Close()

	s := summary{
		Path:      ds.Path(),
		Backend:   ds.Compression().String(),
		ByteOrder: ds.ByteOrder().String(),
		Rows:      []int{},
	}
	for {
		page, err := ds.ReadPage()
		if errors.Is(err, sdds.ErrNoMorePages) {
			break
		}
		if err != nil {
			return err
		}
		s.Pages++
		s.Rows = append(s.Rows, page.Rows())
		s.TotalRows += page.Rows()
	}
	s.Recovered = ds.Recovered()

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	_, err = out.Write(append(data, '\n'))
	return err
}
