package file

import (
	"errors"
	"fmt"
	"io"
	"net/http"
)

// maxFieldBytes caps plain (non-file) form values.
const maxFieldBytes = 64 << 10

// Part is one uploaded file held fully in memory.
type Part struct {
	OriginalName string
	ContentType  string
	Data         []byte
}

// Size returns the byte length of the part.
func (p Part) Size() int64 {
	return int64(len(p.Data))
}

// FormLimits bounds what ReadForm accepts at the transport layer.
type FormLimits struct {
	MaxFileSize int64
	MaxFiles    int
}

// Form is a parsed multipart request body.
type Form struct {
	values map[string]string
	Files  []Part
}

// Value returns the first value submitted for a plain field.
func (f *Form) Value(name string) string {
	return f.values[name]
}

// ReadForm streams r's multipart body, buffering every file submitted under
// fileField. A file under any other field, more than limits.MaxFiles files,
// or a file over limits.MaxFileSize aborts the read.
func ReadForm(r *http.Request, fileField string, limits FormLimits) (*Form, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidForm, err)
	}

	form := &Form{values: make(map[string]string)}
	for {
		p, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}

		name := p.FormName()
		if p.FileName() == "" {
			v, err := io.ReadAll(io.LimitReader(p, maxFieldBytes))
			if err != nil {
				return nil, fmt.Errorf("%w: read field %q: %v", ErrInvalidForm, name, err)
			}
			if _, seen := form.values[name]; !seen {
				form.values[name] = string(v)
			}
			continue
		}

		if name != fileField {
			return nil, fmt.Errorf("%w: %q", ErrUnexpectedField, name)
		}
		if limits.MaxFiles > 0 && len(form.Files) >= limits.MaxFiles {
			return nil, fmt.Errorf("%w: more than %d", ErrTooManyParts, limits.MaxFiles)
		}

		src := io.Reader(p)
		if limits.MaxFileSize > 0 {
			src = io.LimitReader(p, limits.MaxFileSize+1)
		}
		data, err := io.ReadAll(src)
		if err != nil {
			return nil, fmt.Errorf("%w: read file %q: %v", ErrInvalidForm, p.FileName(), err)
		}
		if limits.MaxFileSize > 0 && int64(len(data)) > limits.MaxFileSize {
			return nil, fmt.Errorf("%w: %q exceeds %d bytes", ErrFileTooLarge, p.FileName(), limits.MaxFileSize)
		}

		form.Files = append(form.Files, Part{
			OriginalName: p.FileName(),
			ContentType:  p.Header.Get("Content-Type"),
			Data:         data,
		})
	}
	return form, nil
}
