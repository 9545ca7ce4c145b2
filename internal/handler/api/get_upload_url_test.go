package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lcabrel/botposts-ms-go/internal/api_context"
	"github.com/lcabrel/botposts-ms-go/internal/port"
)

type mockGrantIssuer struct {
	out port.IssueUploadGrantOutput
	err error
	in  port.IssueUploadGrantInput
}

func (m *mockGrantIssuer) IssueUploadGrant(ctx context.Context, in port.IssueUploadGrantInput) (port.IssueUploadGrantOutput, error) {
	m.in = in
	return m.out, m.err
}

func authedRequest(method, target, body, user string, roles ...string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	ctx := context.WithValue(req.Context(), api_context.AuthUserIDKey, user)
	if len(roles) > 0 {
		ctx = context.WithValue(ctx, api_context.AuthRolesKey, roles)
	}
	return req.WithContext(ctx)
}

func TestGetUploadURLHandler(t *testing.T) {
	grant := port.IssueUploadGrantOutput{
		ObjectKey:   "post-media/bot-1/abc.png",
		UploadURL:   "https://cdn.example.com/presigned",
		PublicURL:   "https://cdn.example.com/media/post-media/bot-1/abc.png",
		ContentType: "image/png",
		MaxSize:     50 * 1024 * 1024,
		ExpiresAt:   time.Now().Add(5 * time.Minute).UTC(),
	}

	tests := []struct {
		name       string
		body       string
		user       string
		svcOut     port.IssueUploadGrantOutput
		svcErr     error
		wantStatus int

		wantErrorMap     map[string]string
		wantBodyContains string
	}{
		{
			name:       "happy path",
			body:       `{"content_type":"image/png","size_bytes":1024}`,
			user:       "bot-1",
			svcOut:     grant,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "no identity",
			body:       `{"content_type":"image/png","size_bytes":1024}`,
			user:       "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:             "invalid JSON",
			body:             `{"content_type":`,
			user:             "bot-1",
			wantStatus:       http.StatusBadRequest,
			wantBodyContains: "Invalid request",
		},
		{
			name:         "validation error: missing content type",
			body:         `{"size_bytes":1024}`,
			user:         "bot-1",
			wantStatus:   http.StatusBadRequest,
			wantErrorMap: map[string]string{"content_type": "required"},
		},
		{
			name:         "validation error: zero size",
			body:         `{"content_type":"image/png"}`,
			user:         "bot-1",
			wantStatus:   http.StatusBadRequest,
			wantErrorMap: map[string]string{"size_bytes": "required"},
		},
		{
			name:       "media type rejected",
			body:       `{"content_type":"application/zip","size_bytes":1024}`,
			user:       "bot-1",
			svcErr:     port.ErrInvalidMediaType,
			wantStatus: http.StatusUnsupportedMediaType,
		},
		{
			name:       "size rejected",
			body:       `{"content_type":"image/png","size_bytes":999999999}`,
			user:       "bot-1",
			svcErr:     port.ErrPayloadTooLarge,
			wantStatus: http.StatusRequestEntityTooLarge,
		},
		{
			name:       "blob store down",
			body:       `{"content_type":"image/png","size_bytes":1024}`,
			user:       "bot-1",
			svcErr:     port.ErrUpstreamUnavailable,
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockSvc := &mockGrantIssuer{out: tc.svcOut, err: tc.svcErr}
			handlerFn := GetUploadURLHandler(mockSvc, "post-media")

			req := authedRequest(http.MethodPost, "/api/get-upload-url", tc.body, tc.user)
			rec := httptest.NewRecorder()

			handlerFn(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d; want %d; body = %s", rec.Code, tc.wantStatus, rec.Body.String())
			}

			switch {
			case tc.wantStatus == http.StatusCreated:
				var got port.IssueUploadGrantOutput
				if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
					t.Fatalf("decoding response: %v", err)
				}
				if got.ObjectKey != tc.svcOut.ObjectKey || got.UploadURL != tc.svcOut.UploadURL {
					t.Errorf("got %+v; want %+v", got, tc.svcOut)
				}
				if mockSvc.in.Requester != tc.user {
					t.Errorf("requester passed to service = %q; want %q", mockSvc.in.Requester, tc.user)
				}
				if mockSvc.in.Purpose != "post-media" {
					t.Errorf("purpose = %q; want post-media", mockSvc.in.Purpose)
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
			case tc.wantBodyContains != "":
				if !strings.Contains(rec.Body.String(), tc.wantBodyContains) {
					t.Errorf("body %q does not contain %q", rec.Body.String(), tc.wantBodyContains)
				}
			}
		})
	}
}
