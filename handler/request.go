package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"vidtube-api/common"
	"vidtube-api/model"
	"vidtube-api/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const multipartMemory = 32 << 20

// pathID reads a UUID path parameter.
func pathID(r *http.Request, name string) (string, *common.AppError) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", common.BadRequest("invalid "+name, err)
	}
	return id.String(), nil
}

func pageQuery(r *http.Request) model.PageQuery {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	return model.PageQuery{Page: page, Limit: limit}.Normalize()
}

// parseMultipart caps the body at maxBytes and parses the form.
func parseMultipart(w http.ResponseWriter, r *http.Request, maxBytes int64) *common.AppError {
	if maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return common.NewAppError(http.StatusRequestEntityTooLarge, "upload is too large", err)
		}
		return common.BadRequest("invalid multipart form", err)
	}
	return nil
}

// formFile returns the named upload, or nil when the field is absent. The caller
// must invoke the returned close func.
func formFile(r *http.Request, field string) (*service.Upload, func(), *common.AppError) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, func() {}, nil
	}
	if err != nil {
		return nil, func() {}, common.BadRequest("invalid "+field+" file", err)
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return &service.Upload{
		Filename:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Body:        file,
	}, func() { file.Close() }, nil
}

// optionalFormValue distinguishes an absent field from an empty one.
func optionalFormValue(r *http.Request, field string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	values, ok := r.MultipartForm.Value[field]
	if !ok || len(values) == 0 {
		return nil
	}
	v := strings.TrimSpace(values[0])
	return &v
}
