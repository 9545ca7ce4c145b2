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

type DeleteMediaRequest struct {
	ObjectKey string `json:"object_key" validate:"required,max=300"`
	Force     bool   `json:"force"`
}

// DeleteMediaHandler removes a media object and its reference.
func DeleteMediaHandler(svc port.MediaDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requester, ok := api_context.AuthUserIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
			return
		}
		roles, _ := api_context.AuthRolesFromContext(r.Context())

		var req DeleteMediaRequest
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

			RespondRawJSON(w, http.StatusBadRequest, []byte(errsJSON))
			logger.Warnf(r.Context(), "❌  Validation failed: %s", errsJSON)
			return
		}

		err := svc.DeleteMedia(r.Context(), port.DeleteMediaInput{
			ObjectKey:   req.ObjectKey,
			RequestedBy: requester,
			Roles:       roles,
			Force:       req.Force,
		})
		if err != nil {
			switch {
			case errors.Is(err, port.ErrForbidden):
				WriteError(w, http.StatusForbidden, "Not allowed to delete this media", err)
			case errors.Is(err, port.ErrInUse):
				WriteError(w, http.StatusConflict, "Media is attached to a published post", err)
			case errors.Is(err, port.ErrUpstreamUnavailable):
				WriteError(w, http.StatusBadGateway, "Blob store unavailable", err)
			default:
				WriteError(w, http.StatusInternalServerError, "Failed to delete media", err)
			}
			return
		}

		w.WriteHeader(http.StatusNoContent)
		logger.Infof(r.Context(), "✅  Successfully deleted media %q", req.ObjectKey)
	}
}
