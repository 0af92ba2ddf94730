package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/rpupo63/agency-portfolio-backend/errs"
	"github.com/rpupo63/agency-portfolio-backend/models"
	"github.com/rpupo63/agency-portfolio-backend/storage"
)

// requestForm is a request body normalised to form values and files, whatever
// encoding the client used. JSON scalars become one value, JSON arrays one
// value per element and JSON objects their encoded text.
type requestForm struct {
	values map[string][]string
	files  map[string][]*multipart.FileHeader
	open   []multipart.File
}

func parseRequestForm(w http.ResponseWriter, r *http.Request, maxBytes int64) (*requestForm, error) {
	f := &requestForm{values: map[string][]string{}, files: map[string][]*multipart.FileHeader{}}
	if r.Body == nil || r.ContentLength == 0 && r.Header.Get("Content-Type") == "" {
		return f, nil
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			return nil, bodyError("multipart", err, maxBytes)
		}
		for k, v := range r.MultipartForm.Value {
			f.values[k] = v
		}
		for k, v := range r.MultipartForm.File {
			f.files[k] = v
		}
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, bodyError("form", err, maxBytes)
		}
		for k, v := range r.PostForm {
			f.values[k] = v
		}
	default:
		if err := f.decodeJSON(r.Body); err != nil {
			return nil, bodyError("JSON", err, maxBytes)
		}
	}
	return f, nil
}

func bodyError(kind string, err error, maxBytes int64) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
		return errs.NewMaxBodySizeExceededError(maxBytes)
	}
	if kind == "JSON" {
		return errs.NewInvalidJSONError(err)
	}
	return errs.NewMalformedPayloadError(kind, err)
}

func (f *requestForm) decodeJSON(body io.Reader) error {
	decoder := json.NewDecoder(body)
	decoder.UseNumber()
	var payload map[string]any
	if err := decoder.Decode(&payload); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	for key, raw := range payload {
		switch v := raw.(type) {
		case nil:
		case []any:
			values := make([]string, 0, len(v))
			for _, item := range v {
				values = append(values, jsonText(item))
			}
			f.values[key] = values
		default:
			f.values[key] = []string{jsonText(v)}
		}
	}
	return nil
}

func jsonText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		b, _ := json.Marshal(t)
		return string(b)
	}
}

// close releases any multipart files opened while reading uploads.
func (f *requestForm) close() {
	for _, file := range f.open {
		file.Close()
	}
}

// str returns the first value of key, or nil when the key was not sent.
func (f *requestForm) str(key string) *string {
	values, ok := f.values[key]
	if !ok || len(values) == 0 {
		return nil
	}
	v := values[0]
	return &v
}

func (f *requestForm) text(key string) string {
	if v := f.str(key); v != nil {
		return *v
	}
	return ""
}

func (f *requestForm) int(key string) (*int, error) {
	v := f.str(key)
	if v == nil {
		return nil, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(*v))
	if err != nil {
		return nil, errs.NewInvalidFieldError(key, fmt.Sprintf("%s must be an integer", key))
	}
	return &n, nil
}

// list returns every value sent as key or key[], or nil when neither was sent.
func (f *requestForm) list(key string) []string {
	var out []string
	found := false
	for _, k := range []string{key, key + "[]"} {
		if values, ok := f.values[k]; ok {
			found = true
			out = append(out, values...)
		}
	}
	if found && out == nil {
		return []string{}
	}
	return out
}

func (f *requestForm) clientInfo(key string) (*models.ClientInfo, error) {
	v := f.str(key)
	if v == nil {
		return nil, nil
	}
	var info models.ClientInfo
	if strings.TrimSpace(*v) == "" {
		return &info, nil
	}
	if err := json.Unmarshal([]byte(*v), &info); err != nil {
		return nil, errs.NewInvalidFieldError(key, key+" must be a JSON object")
	}
	return &info, nil
}

// upload returns the first file sent as key, or nil.
func (f *requestForm) upload(key string) (*storage.Upload, error) {
	headers := f.files[key]
	if len(headers) == 0 {
		return nil, nil
	}
	u, err := f.openFile(key, headers[0])
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// uploads returns every file sent as key or key[], in order.
func (f *requestForm) uploads(key string) ([]storage.Upload, error) {
	var out []storage.Upload
	for _, k := range []string{key, key + "[]"} {
		for _, header := range f.files[k] {
			u, err := f.openFile(k, header)
			if err != nil {
				return nil, err
			}
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *requestForm) openFile(key string, header *multipart.FileHeader) (storage.Upload, error) {
	file, err := header.Open()
	if err != nil {
		return storage.Upload{}, errs.NewInvalidFieldError(key, "Unable to read uploaded file")
	}
	f.open = append(f.open, file)
	return storage.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	}, nil
}
