package quiz

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrInvalidBank = errors.New("invalid question bank")
)

// Format is a bank file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromName picks a format from a file name or an explicit format
// string. Anything that is not YAML is treated as JSON.
func FormatFromName(name string) Format {
	n := strings.ToLower(name)
	if n == "yaml" || n == "yml" || strings.HasSuffix(n, ".yaml") || strings.HasSuffix(n, ".yml") {
		return FormatYAML
	}
	return FormatJSON
}

// Bank is an immutable snapshot of the question bank. Callers must not
// modify the slices it returns.
type Bank struct {
	questions []Question
	byID      map[int]Question
}

// NewBank indexes questions. When ids repeat, lookups return the first one.
func NewBank(questions []Question) *Bank {
	b := &Bank{
		questions: questions,
		byID:      make(map[int]Question, len(questions)),
	}
	for _, q := range questions {
		if _, dup := b.byID[q.ID]; !dup {
			b.byID[q.ID] = q
		}
	}
	return b
}

func (b *Bank) Questions() []Question { return b.questions }

func (b *Bank) Len() int { return len(b.questions) }

func (b *Bank) Question(id int) (Question, error) {
	q, ok := b.byID[id]
	if !ok {
		return Question{}, fmt.Errorf("question %d: %w", id, ErrNotFound)
	}
	return q, nil
}

// InCategory returns questions of one category in bank order.
func (b *Bank) InCategory(category string) []Question {
	var out []Question
	for _, q := range b.questions {
		if q.Category == category {
			out = append(out, q)
		}
	}
	return out
}

// Validate checks a bank before it replaces the stored one: at least one
// question, unique ids, a category per question and named, unique aspects.
func Validate(qs []Question) error {
	if len(qs) == 0 {
		return fmt.Errorf("%w: no questions", ErrInvalidBank)
	}
	seen := make(map[int]struct{}, len(qs))
	for i, q := range qs {
		if _, dup := seen[q.ID]; dup {
			return fmt.Errorf("%w: duplicate question id %d", ErrInvalidBank, q.ID)
		}
		seen[q.ID] = struct{}{}
		if strings.TrimSpace(q.Category) == "" {
			return fmt.Errorf("%w: question %d (#%d) has no category", ErrInvalidBank, q.ID, i+1)
		}
		names := make(map[string]struct{}, len(q.Aspects))
		for _, a := range q.Aspects {
			if strings.TrimSpace(a.Name) == "" {
				return fmt.Errorf("%w: question %d has an aspect without a name", ErrInvalidBank, q.ID)
			}
			if _, dup := names[a.Name]; dup {
				return fmt.Errorf("%w: question %d repeats aspect %q", ErrInvalidBank, q.ID, a.Name)
			}
			names[a.Name] = struct{}{}
		}
	}
	return nil
}

// DecodeQuestions reads a bank file: a list of question records.
func DecodeQuestions(r io.Reader, f Format) ([]Question, error) {
	var qs []Question
	switch f {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&qs); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode yaml bank: %w", err)
		}
	default:
		if err := json.NewDecoder(r).Decode(&qs); err != nil {
			return nil, fmt.Errorf("decode json bank: %w", err)
		}
	}
	if qs == nil {
		qs = []Question{}
	}
	return qs, nil
}

// EncodeQuestions writes qs in the given format.
func EncodeQuestions(w io.Writer, qs []Question, f Format) error {
	switch f {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(qs); err != nil {
			_ = enc.Close()
			return err
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(qs)
	}
}
