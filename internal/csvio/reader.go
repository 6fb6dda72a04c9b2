package csvio

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/martinle068/FitnnessApp/internal/domain"
)

// Result is the outcome of reading a file: the accepted entities in file
// order plus one ParseError per rejected record.
type Result[T any] struct {
	Items    []T
	Rejected int
	Errors   []*domain.ParseError
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'
	return cr
}

// Read parses every line of r with parse. Records never span lines: a line
// that fails to split or parse is counted and reported with its line number,
// and reading continues with the next line. Blank lines and lines starting
// with '#' are skipped. The returned error is reserved for I/O failures.
func Read[T any](r io.Reader, parse func([]string) (T, error)) (Result[T], error) {
	var res Result[T]
	br := bufio.NewReader(r)
	for line := 1; ; line++ {
		text, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return res, fmt.Errorf("read csv line %d: %w", line, err)
		}
		if text != "" {
			res.readLine(line, text, parse)
		}
		if err != nil {
			return res, nil
		}
	}
}

func (r *Result[T]) readLine(line int, text string, parse func([]string) (T, error)) {
	text = strings.TrimRight(text, "\r\n")
	if strings.TrimSpace(text) == "" || strings.HasPrefix(text, "#") {
		return
	}
	fields, err := SplitRecord(text)
	if err != nil {
		r.reject(asParseError(err, line, []string{text}))
		return
	}
	item, err := parse(fields)
	if err != nil {
		r.reject(asParseError(err, line, fields))
		return
	}
	r.Items = append(r.Items, item)
}

func (r *Result[T]) reject(err *domain.ParseError) {
	r.Rejected++
	r.Errors = append(r.Errors, err)
}

func asParseError(err error, line int, fields []string) *domain.ParseError {
	pe, ok := err.(*domain.ParseError)
	if !ok {
		pe = &domain.ParseError{Reason: "invalid record", Err: err}
	}
	pe.Line = line
	pe.Record = strings.Join(fields, ",")
	return pe
}

// SplitRecord splits a single line into fields with the same rules Read uses.
func SplitRecord(line string) ([]string, error) {
	fields, err := newReader(strings.NewReader(line)).Read()
	if errors.Is(err, io.EOF) {
		return nil, &domain.ParseError{Record: line, Reason: "empty record"}
	}
	if err != nil {
		return nil, &domain.ParseError{Record: line, Reason: "malformed csv", Err: err}
	}
	return fields, nil
}

// Write encodes items one record each.
func Write[T any](w io.Writer, items []T, format func(T) []string) error {
	cw := csv.NewWriter(w)
	for _, it := range items {
		if err := cw.Write(format(it)); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

/* ─── Files ──────────────────────────────────────────────────────────── */

// ReadFile opens path and reads it with Read. A missing file is returned as
// an error matching fs.ErrNotExist.
func ReadFile[T any](path string, parse func([]string) (T, error)) (Result[T], error) {
	f, err := os.Open(path)
	if err != nil {
		return Result[T]{}, err
	}
	defer f.Close()
	res, err := Read(f, parse)
	if err != nil {
		return res, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}

// WriteFile replaces path with items. The file is written to a temporary
// sibling and renamed into place, so readers (and the catalog watcher) never
// see a half-written file.
func WriteFile[T any](path string, items []T, format func(T) []string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := Write(tmp, items, format); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// AppendFile adds one record to the end of path, creating it if needed.
func AppendFile(path string, record []string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(f)
	if err := cw.Write(record); err != nil {
		f.Close()
		return err
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
