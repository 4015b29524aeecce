package entity

import (
	"errors"
	"strings"
	"time"
)

// RecordType names the kind of a personal record. Valid values come from a
// RecordTypes vocabulary built once at startup.
type RecordType string

// RecordTypes is a closed vocabulary of record types.
type RecordTypes struct {
	allowed map[RecordType]struct{}
	ordered []RecordType
}

var ErrEmptyVocabulary = errors.New("record type vocabulary is empty")

// NewRecordTypes builds a vocabulary from names. Blank names are skipped and
// duplicates collapse.
func NewRecordTypes(names ...string) (RecordTypes, error) {
	v := RecordTypes{allowed: make(map[RecordType]struct{}, len(names))}
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		t := RecordType(n)
		if _, dup := v.allowed[t]; dup {
			continue
		}
		v.allowed[t] = struct{}{}
		v.ordered = append(v.ordered, t)
	}
	if len(v.ordered) == 0 {
		return RecordTypes{}, ErrEmptyVocabulary
	}
	return v, nil
}

// Parse resolves s against the vocabulary.
func (v RecordTypes) Parse(s string) (RecordType, bool) {
	t := RecordType(s)
	_, ok := v.allowed[t]
	return t, ok
}

func (v RecordTypes) Names() []string {
	out := make([]string, len(v.ordered))
	for i, t := range v.ordered {
		out[i] = string(t)
	}
	return out
}

// PersonalRecord is a typed key/value document owned by one account.
// Data is nil on summaries.
type PersonalRecord struct {
	ID         string
	OwnerID    string
	RecordType RecordType
	Data       map[string]string
	CreatedAt  time.Time
}

// Acknowledgement reports the outcome of a delete.
type Acknowledgement struct {
	Acknowledged bool
	DeletedCount int64
}
