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

type RegisterMediaRequest struct {
	ObjectKey string `json:"object_key" validate:"required,max=300"`
	Kind      string `json:"kind" validate:"required,oneof=post avatar"`
}

// RegisterMediaHandler records an upload completion as a media reference.
// Clients call it once the presigned PUT succeeded.
func RegisterMediaHandler(svc port.ReferenceRegistrar) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := api_context.AuthUserIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
			return
		}

		var req RegisterMediaRequest
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

		ref, err := svc.RegisterReference(r.Context(), port.RegisterReferenceInput{
			ObjectKey: req.ObjectKey,
			Owner:     owner,
			Kind:      req.Kind,
		})
		if err != nil {
			switch {
			case errors.Is(err, port.ErrObjectNotFound):
				WriteError(w, http.StatusNotFound, "No uploaded object found for this key", err)
			case errors.Is(err, port.ErrDuplicateReference):
				WriteError(w, http.StatusConflict, "Object key already registered", err)
			case errors.Is(err, port.ErrUpstreamUnavailable):
				WriteError(w, http.StatusBadGateway, "Blob store unavailable", err)
			default:
				WriteError(w, http.StatusInternalServerError, "Could not register media", err)
			}
			return
		}

		RespondJSON(w, http.StatusCreated, ref)
		logger.Infof(r.Context(), "✅  Successfully registered media %q", ref.ObjectKey)
	}
}
