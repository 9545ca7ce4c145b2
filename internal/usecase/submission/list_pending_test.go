package submission

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/lcabrel/botposts-ms-go/internal/mock"
	"github.com/lcabrel/botposts-ms-go/internal/model"
)

func TestListPending_CacheMiss(t *testing.T) {
	repo := &mock.SubmissionRepo{ListOut: []model.Submission{
		{ID: 1, Author: "bot-1", Status: model.SubmissionStatusPending, SubmittedAt: time.Now().UTC()},
		{ID: 2, Author: "bot-2", Status: model.SubmissionStatusPending, SubmittedAt: time.Now().UTC()},
	}}
	cache := &mock.Cache{}
	svc := NewPendingLister(repo, cache)

	subs, err := svc.ListPending(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("got %d submissions; want 2", len(subs))
	}
	if !cache.SetCalled {
		t.Error("listing must be written back to the cache")
	}
	if cache.SetTTL != PendingCacheTTL {
		t.Errorf("cache TTL = %v; want %v", cache.SetTTL, PendingCacheTTL)
	}
}

func TestListPending_CacheHit(t *testing.T) {
	cached := []model.Submission{{ID: 9, Author: "bot-9", Status: model.SubmissionStatusPending}}
	data, err := json.Marshal(cached)
	if err != nil {
		t.Fatal(err)
	}

	repo := &mock.SubmissionRepo{ListErr: errors.New("db must not be hit")}
	cache := &mock.Cache{PendingOut: data}
	svc := NewPendingLister(repo, cache)

	subs, err := svc.ListPending(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(subs) != 1 || subs[0].ID != 9 {
		t.Fatalf("got %+v; want the cached listing", subs)
	}
}

func TestListPending_CorruptCacheFallsThrough(t *testing.T) {
	repo := &mock.SubmissionRepo{ListOut: []model.Submission{{ID: 1, Status: model.SubmissionStatusPending}}}
	cache := &mock.Cache{PendingOut: []byte("{not json")}
	svc := NewPendingLister(repo, cache)

	subs, err := svc.ListPending(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(subs) != 1 {
		t.Fatalf("got %d submissions; want 1 from the repository", len(subs))
	}
}

func TestListPending_CacheErrorFallsThrough(t *testing.T) {
	repo := &mock.SubmissionRepo{ListOut: []model.Submission{{ID: 1, Status: model.SubmissionStatusPending}}}
	cache := &mock.Cache{GetErr: errors.New("redis down")}
	svc := NewPendingLister(repo, cache)

	if _, err := svc.ListPending(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestListPending_EmptyQueue(t *testing.T) {
	svc := NewPendingLister(&mock.SubmissionRepo{}, &mock.Cache{})

	subs, err := svc.ListPending(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if subs == nil {
		t.Fatal("expected an empty slice, not nil")
	}
}
