// Package tabular loads delimited exports (and XLSX workbooks) into ordered
// rows keyed by column name. It knows nothing about which columns a dataset
// requires; callers validate the header.
package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"budget-recon/internal/logging"
	"budget-recon/internal/parsererror"

	"github.com/xuri/excelize/v2"
)

// Options configures a Reader.
type Options struct {
	// Delimiter separates fields in text inputs. Zero means ','.
	Delimiter rune
	// Encodings is the decode priority order. Empty means DefaultEncodings.
	Encodings []string
}

// Reader loads tabular files.
type Reader struct {
	delimiter rune
	encodings []textEncoding
	logger    logging.Logger
}

// NewReader creates a Reader. Unknown encoding names are rejected.
func NewReader(opts Options, logger logging.Logger) (*Reader, error) {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	names := opts.Encodings
	if len(names) == 0 {
		names = DefaultEncodings
	}
	if err := ValidateEncodings(names); err != nil {
		return nil, err
	}
	encs := make([]textEncoding, 0, len(names))
	for _, n := range names {
		te, _ := lookupEncoding(n)
		encs = append(encs, te)
	}
	delim := opts.Delimiter
	if delim == 0 {
		delim = ','
	}
	return &Reader{
		delimiter: delim,
		encodings: encs,
		logger:    logger.WithField(logging.FieldComponent, "tabular"),
	}, nil
}

// Read loads path into a Table. Files ending in .xlsx are read from their
// first sheet; anything else is decoded as delimited text, trying each
// configured encoding in order.
func (r *Reader) Read(path string) (*Table, error) {
	log := r.logger.WithField(logging.FieldFile, path)
	log.Debug("Reading tabular file")

	var (
		table *Table
		err   error
	)
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		table, err = r.readWorkbook(path)
	} else {
		table, err = r.readDelimited(path)
	}
	if err != nil {
		log.WithError(err).Debug("Failed to read tabular file")
		return nil, err
	}

	log.Info("Loaded tabular file",
		logging.F(logging.FieldEncoding, table.Encoding),
		logging.F(logging.FieldCount, table.Len()))
	return table, nil
}

func (r *Reader) readDelimited(path string) (*Table, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- input paths come from configuration
	if err != nil {
		return nil, fmt.Errorf("error opening input file: %w", err)
	}

	var firstErr error
	for i, enc := range r.encodings {
		text, decErr := enc.decode(data)
		if decErr != nil {
			if firstErr == nil {
				firstErr = decErr
			}
			r.logger.Debug("Encoding rejected input",
				logging.F(logging.FieldFile, path),
				logging.F(logging.FieldEncoding, enc.name),
				logging.F(logging.FieldError, decErr.Error()))
			continue
		}
		if i > 0 {
			r.logger.Warn("Decoded input with fallback encoding",
				logging.F(logging.FieldFile, path),
				logging.F(logging.FieldEncoding, enc.name))
		}
		table, err := r.parseDelimited(path, strings.NewReader(text))
		if err != nil {
			return nil, err
		}
		table.Encoding = enc.name
		return table, nil
	}

	names := make([]string, 0, len(r.encodings))
	for _, enc := range r.encodings {
		names = append(names, enc.name)
	}
	return nil, &parsererror.DecodeError{FilePath: path, Encodings: names, Err: firstErr}
}

func (r *Reader) parseDelimited(path string, src io.Reader) (*Table, error) {
	cr := csv.NewReader(src)
	cr.Comma = r.delimiter
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	table := &Table{Path: path}

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return table, nil
	}
	if err != nil {
		return nil, &parsererror.InvalidFormatError{
			FilePath:       path,
			ExpectedFormat: "delimited text with a header row",
			Msg:            "unreadable header",
			Err:            err,
		}
	}
	table.Header = header

	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &parsererror.InvalidFormatError{
				FilePath:       path,
				ExpectedFormat: "delimited text with a header row",
				Msg:            "malformed record",
				Err:            err,
			}
		}
		line, _ := cr.FieldPos(0)
		table.Rows = append(table.Rows, rowFromRecord(line, header, record))
	}
	return table, nil
}

func (r *Reader) readWorkbook(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("error opening workbook: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			r.logger.WithError(cerr).Warn("Failed to close workbook")
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &parsererror.InvalidFormatError{
			FilePath:       path,
			ExpectedFormat: "workbook with at least one sheet",
			Msg:            "no sheets found",
		}
	}

	// Raw values keep numeric cells exact; display text would be rounded to
	// the cell's number format.
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &parsererror.InvalidFormatError{
			FilePath:       path,
			ExpectedFormat: "readable first sheet",
			Msg:            fmt.Sprintf("cannot read sheet %q", sheets[0]),
			Err:            err,
		}
	}

	table := &Table{Path: path, Encoding: "xlsx"}
	for i, record := range rows {
		if isBlankRecord(record) {
			continue
		}
		if table.Header == nil {
			table.Header = record
			continue
		}
		table.Rows = append(table.Rows, rowFromRecord(i+1, table.Header, record))
	}
	return table, nil
}

func isBlankRecord(record []string) bool {
	for _, cell := range record {
		if cell != "" {
			return false
		}
	}
	return true
}
