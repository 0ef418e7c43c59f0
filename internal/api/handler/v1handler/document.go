package v1handler

import (
	"net/http"

	"svgvolume/pkg/serrors"
)

// UploadDocument accepts a multipart upload under the "file" field and stores
// it in the document slot. Responds 204 on success.
func (h *Handler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, h.options.MaxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(ctx, w, serrors.Wrap(serrors.ErrBadRequest, err, "could not read uploaded file"))

		return
	}
	defer func() { _ = file.Close() }()

	if err := h.deps.Calculator.Upload(ctx, header.Filename, file); err != nil {
		writeError(ctx, w, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
