package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lcabrel/botposts-ms-go/internal/db"
	"github.com/lcabrel/botposts-ms-go/internal/model"
	"github.com/lcabrel/botposts-ms-go/internal/port"
)

type mockReferenceRegistrar struct {
	out *model.MediaReference
	err error
	in  port.RegisterReferenceInput
}

func (m *mockReferenceRegistrar) RegisterReference(ctx context.Context, in port.RegisterReferenceInput) (*model.MediaReference, error) {
	m.in = in
	return m.out, m.err
}

func TestRegisterMediaHandler(t *testing.T) {
	ref := &model.MediaReference{
		ID:         db.NewUUID(),
		ObjectKey:  "post-media/bot-1/abc.png",
		Owner:      "bot-1",
		Kind:       model.ReferenceKindPost,
		RecordType: model.RecordTypeNone,
	}

	tests := []struct {
		name       string
		body       string
		user       string
		svcOut     *model.MediaReference
		svcErr     error
		wantStatus int

		wantErrorMap map[string]string
	}{
		{
			name:       "happy path",
			body:       `{"object_key":"post-media/bot-1/abc.png","kind":"post"}`,
			user:       "bot-1",
			svcOut:     ref,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "no identity",
			body:       `{"object_key":"post-media/bot-1/abc.png","kind":"post"}`,
			user:       "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:         "validation error: missing key",
			body:         `{"kind":"post"}`,
			user:         "bot-1",
			wantStatus:   http.StatusBadRequest,
			wantErrorMap: map[string]string{"object_key": "required"},
		},
		{
			name:         "validation error: bad kind",
			body:         `{"object_key":"post-media/bot-1/abc.png","kind":"banner"}`,
			user:         "bot-1",
			wantStatus:   http.StatusBadRequest,
			wantErrorMap: map[string]string{"kind": "oneof"},
		},
		{
			name:       "object never uploaded",
			body:       `{"object_key":"post-media/bot-1/ghost.png","kind":"post"}`,
			user:       "bot-1",
			svcErr:     port.ErrObjectNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "key already claimed",
			body:       `{"object_key":"post-media/bot-1/abc.png","kind":"post"}`,
			user:       "bot-2",
			svcErr:     port.ErrDuplicateReference,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "blob store down",
			body:       `{"object_key":"post-media/bot-1/abc.png","kind":"post"}`,
			user:       "bot-1",
			svcErr:     port.ErrUpstreamUnavailable,
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockSvc := &mockReferenceRegistrar{out: tc.svcOut, err: tc.svcErr}
			handlerFn := RegisterMediaHandler(mockSvc)

			req := authedRequest(http.MethodPost, "/api/register-media", tc.body, tc.user)
			rec := httptest.NewRecorder()

			handlerFn(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d; want %d; body = %s", rec.Code, tc.wantStatus, rec.Body.String())
			}

			switch {
			case tc.wantStatus == http.StatusCreated:
				var got model.MediaReference
				if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
					t.Fatalf("decoding response: %v", err)
				}
				if got.ObjectKey != ref.ObjectKey {
					t.Errorf("ObjectKey = %q; want %q", got.ObjectKey, ref.ObjectKey)
				}
				if mockSvc.in.Owner != tc.user {
					t.Errorf("owner passed to service = %q; want %q", mockSvc.in.Owner, tc.user)
				}
			case tc.wantErrorMap != nil:
				var got map[string]string
				if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
					t.Fatalf("decoding validation errors: %v", err)
				}
				for field, tag := range tc.wantErrorMap {
					if got[field] != tag {
						t.Errorf("error[%s] = %q; want %q", field, got[field], tag)
					}
				}
			}
		})
	}
}
