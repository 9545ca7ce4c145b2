package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lcabrel/botposts-ms-go/internal/api_context"
	"github.com/lcabrel/botposts-ms-go/internal/logger"
	"github.com/lcabrel/botposts-ms-go/internal/port"
	"github.com/lcabrel/botposts-ms-go/internal/validation"
)

type DecidePostRequest struct {
	Outcome string `json:"outcome" validate:"required,oneof=approve reject"`
}

// DecidePostHandler applies a moderation decision to a pending post.
// Moderator role required.
func DecidePostHandler(svc port.Decider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		decidedBy, ok := api_context.AuthUserIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
			return
		}
		if !api_context.HasRole(r.Context(), RoleModerator) {
			WriteError(w, http.StatusForbidden, "Moderator role required", nil)
			return
		}

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "ID must be an integer", err)
			return
		}

		var req DecidePostRequest
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

		sub, err := svc.Decide(r.Context(), port.DecideInput{
			ID:        id,
			Outcome:   req.Outcome,
			DecidedBy: decidedBy,
		})
		if err != nil {
			switch {
			case errors.Is(err, port.ErrNotFound):
				WriteError(w, http.StatusNotFound, "Post not found", nil)
			case errors.Is(err, port.ErrAlreadyDecided):
				WriteError(w, http.StatusConflict, "Post already decided", err)
			default:
				WriteError(w, http.StatusInternalServerError, "Could not decide post", err)
			}
			return
		}

		RespondJSON(w, http.StatusOK, sub)
		logger.Infof(r.Context(), "✅  Post #%d decided: %q", sub.ID, sub.Status)
	}
}
