package rest

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/JaviLianes8/RealTajoFCBack/internal/document"
	"github.com/JaviLianes8/RealTajoFCBack/internal/service"
)

const uploadField = "file"

// multipart framing allowance on top of the file size limit
const formOverhead = 1 << 20

var (
	errUploadTooLarge = errors.New("uploaded file exceeds the allowed size")
	errMissingFile    = errors.New("multipart field \"file\" is required")
)

// uploadError is a rejected upload with its status.
type uploadError struct {
	status  int
	message string
	err     error
}

func (e *uploadError) Error() string { return e.message }
func (e *uploadError) Unwrap() error { return e.err }

func formatNames(formats []document.Format) string {
	names := make([]string, 0, len(formats))
	for _, f := range formats {
		names = append(names, strings.ToUpper(string(f)))
	}
	return strings.Join(names, " or ")
}

// readUpload reads the "file" part of a multipart request and checks its
// declared content type against formats.
func readUpload(w http.ResponseWriter, r *http.Request, maxBytes int64, formats ...document.Format) (service.Upload, *uploadError) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+formOverhead)

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return service.Upload{}, &uploadError{http.StatusRequestEntityTooLarge, "The uploaded file exceeds the allowed size.", errUploadTooLarge}
		}
		if errors.Is(err, http.ErrMissingFile) {
			err = errMissingFile
		}
		return service.Upload{}, &uploadError{http.StatusBadRequest, "A file upload is required.", err}
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	format := document.FormatForContentType(contentType)
	accepted := false
	for _, f := range formats {
		if f == format {
			accepted = true
		}
	}
	if !accepted {
		return service.Upload{}, &uploadError{
			http.StatusBadRequest,
			fmt.Sprintf("The uploaded file must be a %s document.", formatNames(formats)),
			fmt.Errorf("%w: %q", document.ErrUnsupportedType, contentType),
		}
	}

	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		return service.Upload{}, &uploadError{http.StatusBadRequest, "The uploaded file could not be read.", err}
	}
	if len(data) == 0 {
		return service.Upload{}, &uploadError{http.StatusBadRequest, "The uploaded file is empty.", service.ErrEmptyUpload}
	}
	if int64(len(data)) > maxBytes {
		return service.Upload{}, &uploadError{http.StatusRequestEntityTooLarge, "The uploaded file exceeds the allowed size.", errUploadTooLarge}
	}

	return service.Upload{
		Filename:    header.Filename,
		ContentType: contentType,
		Data:        data,
	}, nil
}
