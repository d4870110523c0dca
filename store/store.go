package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// The mobile app treats persistence as four shared document collections with
// live-query notification. This package is that contract: implementations
// must key documents by (collection, key), order reads by server-assigned
// creation time or a domain date field, and fan a change signal out to
// subscribers after every successful write.

type Collection string

const (
	Settings  Collection = "settings"
	PunchLogs Collection = "logs"
	History   Collection = "history"
	Approvals Collection = "approvals"
)

type OrderBy int

const (
	ByCreatedAsc OrderBy = iota
	ByCreatedDesc
)

var (
	ErrNotFound = errors.New("document not found")
	// ErrDuplicateKey is returned by CreateIfAbsent when the key already
	// holds a document.
	ErrDuplicateKey = errors.New("document already exists")
)

// Document is one stored record: raw JSON plus the server-assigned creation
// instant used for ordering.
type Document struct {
	Collection Collection
	Key        string
	Data       json.RawMessage
	CreatedAt  time.Time
}

// Store is the abstract document store.
//
// Put upserts by key (safe against client retries). Patch merges the given
// fields into an existing document. CreateIfAbsent writes only when the key
// is vacant and reports ErrDuplicateKey otherwise; it is the conditional
// write approvals rely on. Subscribe registers a callback invoked after any
// change to the collection and returns its teardown; callbacks re-read
// through List/Get rather than receiving deltas.
type Store interface {
	Put(ctx context.Context, col Collection, key string, doc any) error
	Patch(ctx context.Context, col Collection, key string, fields map[string]any) error
	CreateIfAbsent(ctx context.Context, col Collection, key string, doc any) error
	Get(ctx context.Context, col Collection, key string) (*Document, error)
	List(ctx context.Context, col Collection, order OrderBy) ([]Document, error)
	Subscribe(col Collection, fn func()) (unsubscribe func())
}

// marshalDocument serializes a document for storage. Model types carry
// omitempty/pointer tags so absent optional fields are dropped from the
// stored JSON entirely; the store never writes an explicit null marker.
func marshalDocument(doc any) (json.RawMessage, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	return data, nil
}

// mergePatch applies a field-level merge of patch values onto existing JSON.
func mergePatch(existing json.RawMessage, fields map[string]any) (json.RawMessage, error) {
	var doc map[string]any
	if err := json.Unmarshal(existing, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal existing document: %w", err)
	}
	for k, v := range fields {
		if v == nil {
			delete(doc, k)
			continue
		}
		doc[k] = v
	}
	return marshalDocument(doc)
}

// Decode unmarshals one document into a model value.
func Decode[T any](doc Document) (T, error) {
	var v T
	if err := json.Unmarshal(doc.Data, &v); err != nil {
		return v, fmt.Errorf("decode %s/%s: %w", doc.Collection, doc.Key, err)
	}
	return v, nil
}

// DecodeAll unmarshals a listing, skipping documents that no longer parse
// (degraded data must not take the whole view down).
func DecodeAll[T any](docs []Document) []T {
	out := make([]T, 0, len(docs))
	for _, d := range docs {
		v, err := Decode[T](d)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}
