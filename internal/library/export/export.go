// Package export writes a JSON snapshot of every library entry to object storage.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/gogotex/library-service/internal/library"
	"github.com/gogotex/library-service/pkg/logger"
)

// Lister is the subset of the library service the exporter reads from.
type Lister interface {
	List(ctx context.Context) ([]*library.Entry, error)
}

// Uploader stores an object under key.
type Uploader interface {
	UploadFile(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
}

// Snapshot is the uploaded document.
type Snapshot struct {
	ExportedAt time.Time        `json:"exportedAt"`
	Total      int              `json:"total"`
	Data       []*library.Entry `json:"data"`
}

type Exporter struct {
	src Lister
	dst Uploader
	now func() time.Time
}

func New(src Lister, dst Uploader) *Exporter {
	return &Exporter{src: src, dst: dst, now: time.Now}
}

// Key returns the object key for a snapshot taken at t.
func Key(t time.Time) string {
	return "exports/library-" + t.UTC().Format("20060102T150405Z") + ".json"
}

// Run lists all entries and uploads them as one snapshot. It returns the object key.
func (e *Exporter) Run(ctx context.Context) (string, *Snapshot, error) {
	entries, err := e.src.List(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("export list: %w", err)
	}
	if entries == nil {
		entries = []*library.Entry{}
	}
	now := e.now().UTC()
	snap := &Snapshot{ExportedAt: now, Total: len(entries), Data: entries}

	body, err := json.Marshal(snap)
	if err != nil {
		return "", nil, fmt.Errorf("export encode: %w", err)
	}
	key := Key(now)
	if err := e.dst.UploadFile(ctx, key, bytes.NewReader(body), int64(len(body)), "application/json"); err != nil {
		return "", nil, fmt.Errorf("export upload %s: %w", key, err)
	}
	logger.Infof("exported %d entries to %s (%d bytes)", snap.Total, key, len(body))
	return key, snap, nil
}
