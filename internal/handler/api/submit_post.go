package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/lcabrel/botposts-ms-go/internal/api_context"
	"github.com/lcabrel/botposts-ms-go/internal/logger"
	"github.com/lcabrel/botposts-ms-go/internal/model"
	"github.com/lcabrel/botposts-ms-go/internal/port"
	"github.com/lcabrel/botposts-ms-go/internal/validation"
)

// Roles recognised on incoming tokens.
const (
	RolePublisher = "publisher"
	RoleModerator = "moderator"
)

type SubmitPostRequest struct {
	Body             string   `json:"body" validate:"required,max=2000"`
	MediaKeys        []string `json:"media_keys" validate:"max=4"`
	Source           string   `json:"source" validate:"max=50"`
	ExternalID       string   `json:"external_id" validate:"max=100"`
	ExternalUsername string   `json:"external_username" validate:"max=100"`
}

// SubmitPostHandler accepts a new post into the pending queue. Requesters
// holding the publisher role get their post approved in the same request.
func SubmitPostHandler(submitter port.Submitter, decider port.Decider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		author, ok := api_context.AuthUserIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
			return
		}

		var req SubmitPostRequest
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

		sub, err := submitter.Submit(r.Context(), port.SubmitInput{
			Author:           author,
			Body:             req.Body,
			MediaKeys:        req.MediaKeys,
			Source:           req.Source,
			ExternalID:       req.ExternalID,
			ExternalUsername: req.ExternalUsername,
		})
		if err != nil {
			switch {
			case errors.Is(err, port.ErrUnownedMedia):
				WriteError(w, http.StatusForbidden, "Media key not owned by the author", err)
			case errors.Is(err, port.ErrDuplicateSubmission):
				WriteError(w, http.StatusConflict, "A post with this external id already exists", err)
			default:
				WriteError(w, http.StatusInternalServerError, "Could not submit post", err)
			}
			return
		}

		if api_context.HasRole(r.Context(), RolePublisher) {
			decided, err := decider.Decide(r.Context(), port.DecideInput{
				ID:        sub.ID,
				Outcome:   model.OutcomeApprove,
				DecidedBy: author,
			})
			if err != nil {
				WriteError(w, http.StatusInternalServerError, "Post submitted but could not auto-approve", err)
				return
			}
			sub = decided
		}

		RespondJSON(w, http.StatusCreated, sub)
		logger.Infof(r.Context(), "✅  Successfully submitted post #%d (status %q)", sub.ID, sub.Status)
	}
}
