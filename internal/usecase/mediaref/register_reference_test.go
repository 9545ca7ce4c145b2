package mediaref

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"testing"

	"github.com/lcabrel/botposts-ms-go/internal/db"
	"github.com/lcabrel/botposts-ms-go/internal/mock"
	"github.com/lcabrel/botposts-ms-go/internal/model"
	"github.com/lcabrel/botposts-ms-go/internal/port"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	return buf.Bytes()
}

func TestRegisterReference_Success(t *testing.T) {
	strg := &mock.Storage{
		ExistsOut:   true,
		StatInfoOut: port.FileInfo{SizeBytes: 512, ContentType: "image/png"},
		GetOut:      bytes.NewReader(pngBytes(t, 640, 480)),
	}
	repo := &mock.MediaReferenceRepo{}
	svc := NewReferenceRegistrar(repo, strg, "media")

	ref, err := svc.RegisterReference(context.Background(), port.RegisterReferenceInput{
		ObjectKey: "post-media/bot-1/abc.png",
		Owner:     "bot-1",
		Kind:      model.ReferenceKindPost,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !repo.CreateCalled {
		t.Fatal("expected a reference to be created")
	}
	if ref.RecordType != model.RecordTypeNone {
		t.Errorf("RecordType = %q; want %q", ref.RecordType, model.RecordTypeNone)
	}
	if ref.Width == nil || *ref.Width != 640 {
		t.Errorf("Width = %v; want 640", ref.Width)
	}
	if ref.Height == nil || *ref.Height != 480 {
		t.Errorf("Height = %v; want 480", ref.Height)
	}
}

func TestRegisterReference_ObjectMissing(t *testing.T) {
	strg := &mock.Storage{ExistsOut: false}
	repo := &mock.MediaReferenceRepo{}
	svc := NewReferenceRegistrar(repo, strg, "media")

	_, err := svc.RegisterReference(context.Background(), port.RegisterReferenceInput{
		ObjectKey: "post-media/bot-1/ghost.png",
		Owner:     "bot-1",
		Kind:      model.ReferenceKindPost,
	})
	if !errors.Is(err, port.ErrObjectNotFound) {
		t.Fatalf("error = %v; want ErrObjectNotFound", err)
	}
	if repo.CreateCalled {
		t.Error("no reference must be created for a missing object")
	}
}

func TestRegisterReference_UnknownKind(t *testing.T) {
	svc := NewReferenceRegistrar(&mock.MediaReferenceRepo{}, &mock.Storage{ExistsOut: true}, "media")

	_, err := svc.RegisterReference(context.Background(), port.RegisterReferenceInput{
		ObjectKey: "post-media/bot-1/abc.png",
		Owner:     "bot-1",
		Kind:      "banner",
	})
	if err == nil {
		t.Fatal("expected an error for an unknown kind")
	}
}

func TestRegisterReference_SameOwnerIsIdempotent(t *testing.T) {
	existing := &model.MediaReference{
		ID:         db.NewUUID(),
		ObjectKey:  "post-media/bot-1/abc.png",
		Owner:      "bot-1",
		Kind:       model.ReferenceKindPost,
		RecordType: model.RecordTypeNone,
	}
	repo := &mock.MediaReferenceRepo{Refs: map[string]*model.MediaReference{existing.ObjectKey: existing}}
	strg := &mock.Storage{ExistsOut: true}
	svc := NewReferenceRegistrar(repo, strg, "media")

	ref, err := svc.RegisterReference(context.Background(), port.RegisterReferenceInput{
		ObjectKey: existing.ObjectKey,
		Owner:     "bot-1",
		Kind:      model.ReferenceKindPost,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref != existing {
		t.Error("expected the existing reference back")
	}
	if repo.CreateCalled {
		t.Error("no second reference must be created")
	}
}

func TestRegisterReference_OtherOwnerConflicts(t *testing.T) {
	existing := &model.MediaReference{
		ID:        db.NewUUID(),
		ObjectKey: "post-media/bot-1/abc.png",
		Owner:     "bot-1",
		Kind:      model.ReferenceKindPost,
	}
	repo := &mock.MediaReferenceRepo{Refs: map[string]*model.MediaReference{existing.ObjectKey: existing}}
	svc := NewReferenceRegistrar(repo, &mock.Storage{ExistsOut: true}, "media")

	_, err := svc.RegisterReference(context.Background(), port.RegisterReferenceInput{
		ObjectKey: existing.ObjectKey,
		Owner:     "bot-2",
		Kind:      model.ReferenceKindPost,
	})
	if !errors.Is(err, port.ErrDuplicateReference) {
		t.Fatalf("error = %v; want ErrDuplicateReference", err)
	}
}

func TestRegisterReference_SniffFailureIsIgnored(t *testing.T) {
	strg := &mock.Storage{
		ExistsOut:   true,
		StatInfoOut: port.FileInfo{ContentType: "image/png"},
		GetOut:      bytes.NewReader([]byte("not an image")),
	}
	repo := &mock.MediaReferenceRepo{}
	svc := NewReferenceRegistrar(repo, strg, "media")

	ref, err := svc.RegisterReference(context.Background(), port.RegisterReferenceInput{
		ObjectKey: "post-media/bot-1/corrupt.png",
		Owner:     "bot-1",
		Kind:      model.ReferenceKindPost,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Width != nil || ref.Height != nil {
		t.Error("no dimensions expected for an undecodable object")
	}
}

func TestRegisterReference_NonImageSkipsSniff(t *testing.T) {
	strg := &mock.Storage{
		ExistsOut:   true,
		StatInfoOut: port.FileInfo{ContentType: "video/mp4"},
	}
	repo := &mock.MediaReferenceRepo{}
	svc := NewReferenceRegistrar(repo, strg, "media")

	ref, err := svc.RegisterReference(context.Background(), port.RegisterReferenceInput{
		ObjectKey: "post-media/bot-1/clip.mp4",
		Owner:     "bot-1",
		Kind:      model.ReferenceKindPost,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strg.GetCalled {
		t.Error("no object read expected for a non-image")
	}
	if ref.Width != nil {
		t.Error("no dimensions expected for a non-image")
	}
}
