package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/lcabrel/botposts-ms-go/internal/api_context"
	"github.com/lcabrel/botposts-ms-go/internal/logger"
	"github.com/lcabrel/botposts-ms-go/internal/port"
	"github.com/lcabrel/botposts-ms-go/internal/validation"
)

type GetUploadURLRequest struct {
	ContentType string `json:"content_type" validate:"required,max=100"`
	SizeBytes   int64  `json:"size_bytes" validate:"required,gt=0"`
}

// GetUploadURLHandler mints a presigned upload grant for the given purpose.
func GetUploadURLHandler(svc port.GrantIssuer, purpose string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requester, ok := api_context.AuthUserIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
			return
		}

		var req GetUploadURLRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid request", fmt.Errorf("invalid JSON: %w", err))
			return
		}

		if errs := validation.ValidateStruct(req); errs != nil {
			errsJSON, err := validation.ErrorsToJson(errs)
			if err != nil {
				WriteError(w, http.StatusInternalServerError, "Validation error (could not encode details)", fmt.Errorf("encoding validation errors: %w", err))
				return
			}

			// return the validation errors payload directly
			RespondRawJSON(w, http.StatusBadRequest, []byte(errsJSON))
			logger.Warnf(r.Context(), "❌  Validation failed: %s", errsJSON)
			return
		}

		out, err := svc.IssueUploadGrant(r.Context(), port.IssueUploadGrantInput{
			Purpose:     purpose,
			Requester:   requester,
			ContentType: req.ContentType,
			SizeBytes:   req.SizeBytes,
		})
		if err != nil {
			switch {
			case errors.Is(err, port.ErrInvalidMediaType):
				WriteError(w, http.StatusUnsupportedMediaType, "Media type not allowed", err)
			case errors.Is(err, port.ErrPayloadTooLarge):
				WriteError(w, http.StatusRequestEntityTooLarge, "Declared size exceeds the allowed maximum", err)
			case errors.Is(err, port.ErrUpstreamUnavailable):
				WriteError(w, http.StatusBadGateway, "Blob store unavailable", err)
			default:
				WriteError(w, http.StatusInternalServerError, "Could not generate upload link", err)
			}
			return
		}

		RespondJSON(w, http.StatusCreated, out)
		logger.Infof(r.Context(), "✅  Successfully issued upload grant for %q", out.ObjectKey)
	}
}
