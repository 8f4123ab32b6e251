package api

import (
	"bytes"
	"fmt"
	"mime/multipart"

	"github.com/mashub/sdk-go/internal/apierrors"
)

// Form is a multipart/form-data request body. Parts are written in the
// order they were added; repeated names are allowed.
type Form struct {
	parts []formPart
}

type formPart struct {
	name     string
	value    string
	filename string
	data     []byte
	isFile   bool
}

// NewForm creates an empty form.
func NewForm() *Form {
	return &Form{}
}

// AddField appends a text part.
func (f *Form) AddField(name, value string) *Form {
	f.parts = append(f.parts, formPart{name: name, value: value})
	return f
}

// AddFile appends a binary file part.
func (f *Form) AddFile(name, filename string, data []byte) *Form {
	f.parts = append(f.parts, formPart{name: name, filename: filename, data: data, isFile: true})
	return f
}

// Len returns the number of parts.
func (f *Form) Len() int {
	return len(f.parts)
}

// Encode renders the form and returns the body with its content type.
func (f *Form) Encode() ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, p := range f.parts {
		if !p.isFile {
			if err := w.WriteField(p.name, p.value); err != nil {
				return nil, "", formError(err)
			}
			continue
		}
		fw, err := w.CreateFormFile(p.name, p.filename)
		if err != nil {
			return nil, "", formError(err)
		}
		if _, err := fw.Write(p.data); err != nil {
			return nil, "", formError(err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", formError(err)
	}

	return buf.Bytes(), w.FormDataContentType(), nil
}

func formError(err error) error {
	return apierrors.Generic(fmt.Sprintf("failed to encode form: %v", err))
}
