package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/toolbox/pkg/types"
)

// reservedFields are form keys consumed by the shell, never passed to
// widgets.
var reservedFields = map[string]bool{"download": true}

// readInput decodes a request body into widget input. Multipart and
// url-encoded forms are accepted everywhere; JSON objects only when
// allowJSON is set.
func (s *Server) readInput(w http.ResponseWriter, r *http.Request, allowJSON bool) (types.Input, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch {
	case mediaType == "multipart/form-data":
		return readMultipart(r, s.cfg.MaxUploadBytes)
	case allowJSON && (mediaType == "application/json" || mediaType == ""):
		return readJSONInput(r.Body)
	default:
		if err := r.ParseForm(); err != nil {
			return types.Input{}, bodyError(err)
		}
		return formInput(r.PostForm), nil
	}
}

func formInput(form map[string][]string) types.Input {
	in := types.NewInput(nil)
	for k, vs := range form {
		if reservedFields[k] || len(vs) == 0 {
			continue
		}
		in.Values[k] = vs[0]
	}
	return in
}

func readMultipart(r *http.Request, maxBytes int64) (types.Input, error) {
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		return types.Input{}, bodyError(err)
	}
	defer r.MultipartForm.RemoveAll()

	in := formInput(r.MultipartForm.Value)
	for name, headers := range r.MultipartForm.File {
		if len(headers) == 0 || headers[0].Size == 0 {
			continue
		}
		fh := headers[0]
		f, err := fh.Open()
		if err != nil {
			return types.Input{}, fmt.Errorf("open upload %s: %w", name, err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return types.Input{}, bodyError(err)
		}
		in.Files[name] = types.File{Name: fh.Filename, ContentType: fh.Header.Get("Content-Type"), Data: data}
	}
	return in, nil
}

// readJSONInput accepts a flat JSON object. Strings pass through; numbers
// and booleans are formatted as a form would submit them.
func readJSONInput(body io.Reader) (types.Input, error) {
	dec := json.NewDecoder(body)
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		if errors.Is(err, io.EOF) {
			return types.NewInput(nil), nil
		}
		return types.Input{}, types.InputError("body must be a JSON object: %v", err)
	}

	in := types.NewInput(nil)
	for k, v := range obj {
		switch val := v.(type) {
		case nil:
		case string:
			in.Values[k] = val
		case json.Number:
			in.Values[k] = val.String()
		case bool:
			in.Values[k] = strconv.FormatBool(val)
		default:
			return types.Input{}, types.InputError("field %s must be a string, number or boolean", k)
		}
	}
	return in, nil
}

func bodyError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return types.InputError("upload exceeds %d bytes", tooLarge.Limit)
	}
	if strings.Contains(err.Error(), "multipart") {
		return types.InputError("malformed multipart body")
	}
	return types.InputError("malformed request body: %v", err)
}
