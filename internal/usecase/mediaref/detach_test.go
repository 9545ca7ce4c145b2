package mediaref

import (
	"context"
	"errors"
	"testing"

	"github.com/lcabrel/botposts-ms-go/internal/db"
	"github.com/lcabrel/botposts-ms-go/internal/mock"
	"github.com/lcabrel/botposts-ms-go/internal/model"
	"github.com/lcabrel/botposts-ms-go/internal/port"
)

func TestDetach(t *testing.T) {
	ref := &model.MediaReference{ID: db.NewUUID(), ObjectKey: "avatars/u/a.png", Owner: "u"}
	repo := &mock.MediaReferenceRepo{Refs: map[string]*model.MediaReference{ref.ObjectKey: ref}}
	svc := NewReferenceDetacher(repo)

	if err := svc.Detach(context.Background(), ref.ObjectKey); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := repo.Refs[ref.ObjectKey]; ok {
		t.Error("reference should be gone")
	}

	// Detaching again must still succeed.
	if err := svc.Detach(context.Background(), ref.ObjectKey); err != nil {
		t.Fatalf("second detach errored: %v", err)
	}
}

func TestDetach_RepoError(t *testing.T) {
	wantErr := errors.New("db went away")
	repo := &mock.MediaReferenceRepo{DeleteErr: wantErr}
	svc := NewReferenceDetacher(repo)

	if err := svc.Detach(context.Background(), "avatars/u/a.png"); !errors.Is(err, wantErr) {
		t.Fatalf("error = %v; want %v", err, wantErr)
	}
}

func TestLookup(t *testing.T) {
	ref := &model.MediaReference{ID: db.NewUUID(), ObjectKey: "avatars/u/a.png", Owner: "u"}
	repo := &mock.MediaReferenceRepo{Refs: map[string]*model.MediaReference{ref.ObjectKey: ref}}
	svc := NewReferenceLookup(repo)

	got, err := svc.Lookup(context.Background(), ref.ObjectKey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != ref {
		t.Error("expected the stored reference back")
	}

	if _, err := svc.Lookup(context.Background(), "avatars/u/missing.png"); !errors.Is(err, port.ErrRefNotFound) {
		t.Fatalf("error = %v; want ErrRefNotFound", err)
	}
}
