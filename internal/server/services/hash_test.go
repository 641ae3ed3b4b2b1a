package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/shastore/shastore/internal/common"
	"github.com/shastore/shastore/internal/server/models"
)

// --- fakes ---

type fakeHashRepo struct {
	inserted  []*models.HashRecord
	insertErr error

	listOut  []models.HashRecord
	listErr  error
	gotLimit int64
}

func (f *fakeHashRepo) Insert(ctx context.Context, record *models.HashRecord) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, record)
	return nil
}

func (f *fakeHashRepo) ListRecent(ctx context.Context, limit int64) ([]models.HashRecord, error) {
	f.gotLimit = limit
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

// --- tests ---

func TestHashText_StoresRecordAndReturnsDigest(t *testing.T) {
	repo := &fakeHashRepo{}
	svc := NewHashService(repo)

	sum, err := svc.HashText(context.Background(), "hello", "sha256")
	if err != nil {
		t.Fatalf("HashText error: %v", err)
	}
	if want := "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"; sum != want {
		t.Fatalf("digest mismatch: got %q want %q", sum, want)
	}

	if len(repo.inserted) != 1 {
		t.Fatalf("expected 1 stored record, got %d", len(repo.inserted))
	}
	rec := repo.inserted[0]
	if rec.InputType != models.InputTypeText {
		t.Fatalf("input_type = %q, want %q", rec.InputType, models.InputTypeText)
	}
	if rec.OriginalInput != "hello" {
		t.Fatalf("original_input = %q, want %q", rec.OriginalInput, "hello")
	}
	if rec.OriginalFilename != "" {
		t.Fatalf("original_filename must be empty for text records, got %q", rec.OriginalFilename)
	}
	if rec.Hash != sum {
		t.Fatalf("stored hash %q differs from returned %q", rec.Hash, sum)
	}
	if rec.Timestamp.IsZero() {
		t.Fatalf("timestamp must be assigned at insert")
	}
}

func TestHashText_UnsupportedAlgorithm_NoRecord(t *testing.T) {
	repo := &fakeHashRepo{}
	svc := NewHashService(repo)

	_, err := svc.HashText(context.Background(), "hello", "md5")
	if !errors.Is(err, common.ErrUnsupportedAlgorithm) {
		t.Fatalf("expected ErrUnsupportedAlgorithm, got %v", err)
	}
	if len(repo.inserted) != 0 {
		t.Fatalf("no record may be stored for an unsupported algorithm")
	}
}

func TestHashText_StorageFailureDropsDigest(t *testing.T) {
	repo := &fakeHashRepo{insertErr: errors.New("insert failed")}
	svc := NewHashService(repo)

	sum, err := svc.HashText(context.Background(), "hello", "sha256")
	if err == nil {
		t.Fatalf("expected error when persistence fails")
	}
	if sum != "" {
		t.Fatalf("digest must not be returned when the record was not stored, got %q", sum)
	}
}

func TestHashFile_StoresFilenameRecord(t *testing.T) {
	repo := &fakeHashRepo{}
	svc := NewHashService(repo)

	sum, err := svc.HashFile(context.Background(), "report.pdf", "sha512", strings.NewReader("abc"))
	if err != nil {
		t.Fatalf("HashFile error: %v", err)
	}
	if len(sum) != 128 {
		t.Fatalf("sha512 digest must be 128 hex chars, got %d", len(sum))
	}

	rec := repo.inserted[0]
	if rec.InputType != models.InputTypeFile {
		t.Fatalf("input_type = %q, want %q", rec.InputType, models.InputTypeFile)
	}
	if rec.OriginalFilename != "report.pdf" {
		t.Fatalf("original_filename = %q, want %q", rec.OriginalFilename, "report.pdf")
	}
	if rec.OriginalInput != "" {
		t.Fatalf("original_input must be empty for file records, got %q", rec.OriginalInput)
	}
}

func TestHashFile_RewindsSeekableStream(t *testing.T) {
	svc := NewHashService(&fakeHashRepo{})

	r := strings.NewReader("hello")
	if _, err := svc.HashFile(context.Background(), "f.txt", "sha256", r); err != nil {
		t.Fatalf("HashFile error: %v", err)
	}

	pos, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		t.Fatalf("Seek error: %v", err)
	}
	if pos != 0 {
		t.Fatalf("stream position after HashFile = %d, want 0 (rewound)", pos)
	}
}

func TestVerifyFile_RewindsSeekableStream(t *testing.T) {
	svc := NewHashService(&fakeHashRepo{})

	r := strings.NewReader("hello")
	if _, _, err := svc.VerifyFile(context.Background(), r, "sha256", strings.Repeat("0", 64)); err != nil {
		t.Fatalf("VerifyFile error: %v", err)
	}

	pos, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		t.Fatalf("Seek error: %v", err)
	}
	if pos != 0 {
		t.Fatalf("stream position after VerifyFile = %d, want 0 (rewound)", pos)
	}
}

func TestVerifyFile_MatchIsCaseInsensitive(t *testing.T) {
	svc := NewHashService(&fakeHashRepo{})

	known := "2CF24DBA5FB0A30E26E83B2AC5B9E29E1B161E5C1FA7425E73043362938B9824"
	match, msg, err := svc.VerifyFile(context.Background(), strings.NewReader("hello"), "sha256", known)
	if err != nil {
		t.Fatalf("VerifyFile error: %v", err)
	}
	if !match {
		t.Fatalf("expected match for case-variant known hash")
	}
	if msg != MsgHashMatch {
		t.Fatalf("message = %q, want %q", msg, MsgHashMatch)
	}
}

func TestVerifyFile_MismatchIsNotAnError(t *testing.T) {
	repo := &fakeHashRepo{}
	svc := NewHashService(repo)

	match, msg, err := svc.VerifyFile(context.Background(), strings.NewReader("hello"), "sha256", strings.Repeat("0", 64))
	if err != nil {
		t.Fatalf("a well-formed mismatched hash must not be an error, got %v", err)
	}
	if match {
		t.Fatalf("expected mismatch")
	}
	if msg != MsgHashMismatch {
		t.Fatalf("message = %q, want %q", msg, MsgHashMismatch)
	}
	if len(repo.inserted) != 0 {
		t.Fatalf("verification must not persist records")
	}
}

func TestVerifyFile_WrongLengthHashIsMismatch(t *testing.T) {
	svc := NewHashService(&fakeHashRepo{})

	match, msg, err := svc.VerifyFile(context.Background(), strings.NewReader("hello"), "sha256", "deadbeef")
	if err != nil {
		t.Fatalf("VerifyFile error: %v", err)
	}
	if match {
		t.Fatalf("a short hash can never match")
	}
	if msg != MsgHashMismatch {
		t.Fatalf("message = %q, want %q", msg, MsgHashMismatch)
	}
}

func TestVerifyFile_UnsupportedAlgorithm(t *testing.T) {
	svc := NewHashService(&fakeHashRepo{})

	_, _, err := svc.VerifyFile(context.Background(), strings.NewReader("x"), "crc32", "abc")
	if !errors.Is(err, common.ErrUnsupportedAlgorithm) {
		t.Fatalf("expected ErrUnsupportedAlgorithm, got %v", err)
	}
}

func TestListRecent_DelegatesLimit(t *testing.T) {
	repo := &fakeHashRepo{listOut: []models.HashRecord{{Hash: "aa"}, {Hash: "bb"}}}
	svc := NewHashService(repo)

	out, err := svc.ListRecent(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRecent error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 records, got %d", len(out))
	}
	if repo.gotLimit != 10 {
		t.Fatalf("limit = %d, want 10", repo.gotLimit)
	}
}
