package api

import (
	"net/http"

	"github.com/lcabrel/botposts-ms-go/internal/port"
)

// PendingPostsHandler lists the pending moderation queue.
func PendingPostsHandler(svc port.PendingLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subs, err := svc.ListPending(r.Context())
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "Could not list pending posts", err)
			return
		}

		RespondJSON(w, http.StatusOK, subs)
	}
}
