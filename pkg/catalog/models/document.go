package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SheetRecords holds the records extracted from one sheet.
type SheetRecords struct {
	// Name is the sheet name as enumerated by the workbook.
	Name string
	// Records are the normalized rows in worksheet order.
	Records []Record
}

// Document maps sheet names to their records, in workbook order.
// It encodes as a single JSON object keyed by sheet name.
type Document struct {
	Sheets []SheetRecords
}

// Add appends a sheet. A nil slice is stored as empty so the sheet still
// encodes as [].
func (d *Document) Add(name string, records []Record) {
	if records == nil {
		records = []Record{}
	}
	d.Sheets = append(d.Sheets, SheetRecords{Name: name, Records: records})
}

// Sheet returns the records of the named sheet.
func (d *Document) Sheet(name string) ([]Record, bool) {
	for _, s := range d.Sheets {
		if s.Name == name {
			return s.Records, true
		}
	}
	return nil, false
}

// SheetNames returns the sheet names in order.
func (d *Document) SheetNames() []string {
	names := make([]string, len(d.Sheets))
	for i, s := range d.Sheets {
		names[i] = s.Name
	}
	return names
}

// RecordCount returns the total number of records over all sheets.
func (d *Document) RecordCount() int {
	n := 0
	for _, s := range d.Sheets {
		n += len(s.Records)
	}
	return n
}

// SheetSummary describes the extraction result of one sheet.
type SheetSummary struct {
	Name       string
	Records    int
	FirstCodes []string
}

// Summary returns per-sheet record counts with up to three leading codes.
func (d *Document) Summary() []SheetSummary {
	out := make([]SheetSummary, 0, len(d.Sheets))
	for _, s := range d.Sheets {
		sum := SheetSummary{Name: s.Name, Records: len(s.Records)}
		for i := 0; i < len(s.Records) && i < 3; i++ {
			sum.FirstCodes = append(sum.FirstCodes, s.Records[i].Code())
		}
		out = append(out, sum)
	}
	return out
}

// MarshalJSON encodes the document with sheets in workbook order.
func (d Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, s := range d.Sheets {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := encodeString(s.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteString(":[")
		for j, rec := range s.Records {
			if j > 0 {
				buf.WriteByte(',')
			}
			b, err := rec.MarshalJSON()
			if err != nil {
				return nil, fmt.Errorf("sheet %q record %d: %w", s.Name, j+1, err)
			}
			buf.Write(b)
		}
		buf.WriteByte(']')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a document, keeping the sheet order of the input.
func (d *Document) UnmarshalJSON(data []byte) error {
	*d = Document{}
	return decodeObject(data, func(key string, raw json.RawMessage) error {
		var records []Record
		if err := json.Unmarshal(raw, &records); err != nil {
			return fmt.Errorf("sheet %q: %w", key, err)
		}
		d.Add(key, records)
		return nil
	})
}
