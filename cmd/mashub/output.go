package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/gosuri/uitable"
)

// printer renders command results as a table or as indented JSON.
type printer struct {
	w      io.Writer
	format string
}

// print writes v as JSON, or as the table built by rows.
func (p *printer) print(v any, rows func(t *uitable.Table)) error {
	if p.format == "json" || rows == nil {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("encode output: %w", err)
		}
		_, err = fmt.Fprintln(p.w, string(data))
		return err
	}

	t := uitable.New()
	t.MaxColWidth = 60
	t.Wrap = true
	rows(t)
	_, err := fmt.Fprintln(p.w, t)
	return err
}

// keyValues renders label/value pairs in two right-aligned columns.
func keyValues(pairs ...any) func(t *uitable.Table) {
	return func(t *uitable.Table) {
		t.RightAlign(0)
		t.Separator = " "
		for i := 0; i+1 < len(pairs); i += 2 {
			t.AddRow(fmt.Sprintf("%v:", pairs[i]), pairs[i+1])
		}
	}
}
