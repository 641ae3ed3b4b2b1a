// Package services contains server-side business logic. This file implements
// HashService, which computes digests, persists hash records, verifies file
// integrity, and lists recent records.
package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shastore/shastore/internal/digest"
	"github.com/shastore/shastore/internal/server/models"
	"github.com/shastore/shastore/internal/server/repositories/hashes"
)

// Fixed outcome messages for file verification.
const (
	MsgHashMatch    = "File integrity confirmed. The hashes match."
	MsgHashMismatch = "WARNING: File has been tampered with! The hashes do not match."
)

// HashService orchestrates the digest provider and the hash-record store.
type HashService struct {
	repo hashes.Repository
}

// NewHashService constructs a HashService over the given repository.
func NewHashService(repo hashes.Repository) *HashService {
	return &HashService{repo: repo}
}

// HashText digests text with the named algorithm, persists a text record,
// and returns the hex digest. A persistence failure fails the whole call:
// the digest is not returned when the record was not stored.
func (s *HashService) HashText(ctx context.Context, text, algorithm string) (string, error) {
	sum, err := digest.Compute(algorithm, strings.NewReader(text))
	if err != nil {
		return "", err
	}

	record := &models.HashRecord{
		InputType:     models.InputTypeText,
		OriginalInput: text,
		Algorithm:     algorithm,
		Hash:          sum,
		Timestamp:     time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, record); err != nil {
		return "", fmt.Errorf("storing hash record: %w", err)
	}

	return sum, nil
}

// compute digests r, rewinding it to the start afterwards when the stream
// is seekable so a later consumer can read the same upload again.
func compute(algorithm string, r io.Reader) (string, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return digest.ComputeSeeker(algorithm, rs)
	}
	return digest.Compute(algorithm, r)
}

// HashFile digests the upload stream exactly once, persists a file record
// with the original filename, and returns the hex digest. A seekable stream
// is left positioned at the start.
func (s *HashService) HashFile(ctx context.Context, filename, algorithm string, r io.Reader) (string, error) {
	sum, err := compute(algorithm, r)
	if err != nil {
		return "", err
	}

	record := &models.HashRecord{
		InputType:        models.InputTypeFile,
		OriginalFilename: filename,
		Algorithm:        algorithm,
		Hash:             sum,
		Timestamp:        time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, record); err != nil {
		return "", fmt.Errorf("storing hash record: %w", err)
	}

	return sum, nil
}

// VerifyFile digests the stream and compares it case-insensitively against
// knownHash. No record is persisted. A well-formed but mismatched hash is a
// normal false result, never an error. A seekable stream is left positioned
// at the start.
func (s *HashService) VerifyFile(_ context.Context, r io.Reader, algorithm, knownHash string) (bool, string, error) {
	// A hash of the wrong length can never match; skip digesting the stream.
	if n, ok := digest.HexLength(algorithm); ok && len(knownHash) != n {
		return false, MsgHashMismatch, nil
	}

	sum, err := compute(algorithm, r)
	if err != nil {
		return false, "", err
	}

	if strings.EqualFold(sum, knownHash) {
		return true, MsgHashMatch, nil
	}
	return false, MsgHashMismatch, nil
}

// ListRecent returns up to limit records, most recent first. A non-positive
// limit falls back to the repository default (50).
func (s *HashService) ListRecent(ctx context.Context, limit int64) ([]models.HashRecord, error) {
	return s.repo.ListRecent(ctx, limit)
}
