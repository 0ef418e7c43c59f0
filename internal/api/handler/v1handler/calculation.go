package v1handler

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"svgvolume/pkg/domain"
	"svgvolume/pkg/serrors"

	"github.com/go-faster/jx"
	"github.com/google/uuid"
)

// encodeCalculation writes a calculation object. message is optional and only
// rendered on creation.
func encodeCalculation(e *jx.Encoder, c *domain.Calculation, message string) {
	e.ObjStart()
	e.FieldStart("id")
	e.Str(uuid.UUID(c.ID).String())
	e.FieldStart("filename")
	e.Str(c.Filename)
	e.FieldStart("depth")
	e.Float64(c.Depth)
	e.FieldStart("netArea")
	e.Float64(c.NetArea)
	e.FieldStart("volume")
	e.Float64(c.Volume)
	e.FieldStart("shapes")
	e.Int(c.Shapes)
	e.FieldStart("createdAt")
	e.Str(c.CreatedAt.Format(time.RFC3339))
	if !c.UpdatedAt.IsZero() {
		e.FieldStart("updatedAt")
		e.Str(c.UpdatedAt.Format(time.RFC3339))
	}
	if message != "" {
		e.FieldStart("message")
		e.Str(message)
	}
	e.ObjEnd()
}

// decodeDepth extracts the depth string from a {"depth": "..."} body.
func decodeDepth(body []byte) (string, error) {
	var depth string
	d := jx.DecodeBytes(body)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		if key != "depth" {
			return d.Skip()
		}

		v, err := d.Str()
		if err != nil {
			return err //nolint: wrapcheck
		}
		depth = v

		return nil
	}); err != nil {
		return "", serrors.Wrap(serrors.ErrBadRequest, err, "could not decode request body")
	}

	return depth, nil
}

// CreateCalculation runs a volume calculation against the uploaded document.
func (h *Handler) CreateCalculation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(ctx, w, serrors.Wrap(serrors.ErrBadRequest, err, "could not read request body"))

		return
	}

	depth, err := decodeDepth(body)
	if err != nil {
		writeError(ctx, w, err)

		return
	}

	calculation, err := h.deps.Calculator.Calculate(ctx, depth)
	if err != nil {
		writeError(ctx, w, err)

		return
	}

	var e jx.Encoder
	encodeCalculation(&e, calculation, fmt.Sprintf("Calculated volume: %.2f ml", calculation.Volume))

	writeJSON(w, http.StatusCreated, e.Bytes())
}

// ListCalculations returns a page of past calculations.
func (h *Handler) ListCalculations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := uint(DefaultLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || v == 0 {
			writeError(ctx, w, serrors.With(serrors.ErrBadRequest, "invalid limit %q", raw))

			return
		}
		limit = uint(v)
	}

	calculations, next, err := h.deps.Calculator.Calculations(ctx, r.URL.Query().Get("cursor"), limit)
	if err != nil {
		writeError(ctx, w, err)

		return
	}

	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("calculations")
	e.ArrStart()
	for i := range calculations {
		encodeCalculation(&e, &calculations[i], "")
	}
	e.ArrEnd()
	if next != "" {
		e.FieldStart("nextCursor")
		e.Str(next)
	}
	e.ObjEnd()

	writeJSON(w, http.StatusOK, e.Bytes())
}

func calculationID(r *http.Request) (domain.CalculationID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return domain.CalculationID{}, serrors.Wrap(serrors.ErrBadRequest, err, "invalid calculation id")
	}

	return domain.CalculationID(id), nil
}

// GetCalculation returns a single past calculation by ID.
func (h *Handler) GetCalculation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := calculationID(r)
	if err != nil {
		writeError(ctx, w, err)

		return
	}

	calculation, err := h.deps.Calculator.Calculation(ctx, id)
	if err != nil {
		writeError(ctx, w, err)

		return
	}

	var e jx.Encoder
	encodeCalculation(&e, calculation, "")

	writeJSON(w, http.StatusOK, e.Bytes())
}

// DeleteCalculation removes a past calculation by ID.
func (h *Handler) DeleteCalculation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := calculationID(r)
	if err != nil {
		writeError(ctx, w, err)

		return
	}

	if err := h.deps.Calculator.Delete(ctx, id); err != nil {
		writeError(ctx, w, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
