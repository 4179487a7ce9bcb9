package http

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	commonerrors "github.com/AlibekovAA/app-registry/internal/common/errors"
)

const maxMultipartMemory = 1 << 20

// Params holds the string-typed request fields. Fields sent with any other
// JSON type are treated as absent.
type Params struct {
	values map[string]string
}

func NewParams(values map[string]string) Params {
	return Params{values: values}
}

// Lookup returns nil when the field is absent so callers can tell it apart
// from an empty string.
func (p Params) Lookup(name string) *string {
	v, ok := p.values[name]
	if !ok {
		return nil
	}
	return &v
}

func QueryParams(r *http.Request) Params {
	values := make(map[string]string)
	for k, v := range r.URL.Query() {
		if len(v) > 0 {
			values[k] = v[0]
		}
	}
	return Params{values: values}
}

// BodyParams reads a JSON object, an urlencoded form or a multipart form.
func BodyParams(r *http.Request) (Params, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "application/json":
		return jsonParams(r.Body)
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			return Params{}, commonerrors.ErrInvalidParameter.WithCause(err)
		}
	default:
		if err := r.ParseForm(); err != nil {
			return Params{}, commonerrors.ErrInvalidParameter.WithCause(err)
		}
	}

	values := make(map[string]string)
	for k, v := range r.PostForm {
		if len(v) > 0 {
			values[k] = v[0]
		}
	}
	return Params{values: values}, nil
}

func jsonParams(body io.Reader) (Params, error) {
	var raw map[string]any
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return Params{values: map[string]string{}}, nil
		}
		return Params{}, commonerrors.ErrInvalidJSON.WithCause(err)
	}

	values := make(map[string]string, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			values[k] = s
		}
	}
	return Params{values: values}, nil
}
