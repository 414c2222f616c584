package quiz

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/mind-engage/mindengage-quiz/internal/storage"
)

// Source loads the question bank.
type Source interface {
	Load(ctx context.Context) ([]Question, error)
}

// Sink replaces the stored question bank.
type Sink interface {
	Save(ctx context.Context, qs []Question) error
}

type Store interface {
	Source
	Sink
}

// FileSource reads and writes a bank file held in a blob store. The format
// follows the key's extension.
type FileSource struct {
	blobs storage.BlobStore
	key   string
}

func NewFileSource(bs storage.BlobStore, key string) *FileSource {
	return &FileSource{blobs: bs, key: key}
}

func (s *FileSource) Load(_ context.Context) ([]Question, error) {
	rc, err := s.blobs.Get(s.key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("bank file %s: %w", s.key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("open bank file %s: %w", s.key, err)
	}
	defer rc.Close()
	return DecodeQuestions(rc, FormatFromName(s.key))
}

func (s *FileSource) Save(_ context.Context, qs []Question) error {
	var buf bytes.Buffer
	if err := EncodeQuestions(&buf, qs, FormatFromName(s.key)); err != nil {
		return fmt.Errorf("encode bank: %w", err)
	}
	if _, err := s.blobs.Put(s.key, &buf); err != nil {
		return fmt.Errorf("write bank file %s: %w", s.key, err)
	}
	return nil
}
