package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"
)

// snapshotLayout sorts lexically in time order.
const snapshotLayout = "20060102T150405.000000000"

// Snapshot is one saved copy of the timeline text.
type Snapshot struct {
	Key   string    `json:"key" yaml:"key"`
	Taken time.Time `json:"taken" yaml:"taken"`
	Size  int       `json:"size" yaml:"size"`
}

// Snapshots keeps earlier versions of the timeline so a bad save can be
// undone. Entries are grouped on disk by day.
type Snapshots struct {
	d     *diskv.Diskv
	limit int
	now   func() time.Time
}

// OpenSnapshots opens (creating on first write) a snapshot store at base
// that retains at most limit entries. A limit of zero keeps everything.
func OpenSnapshots(base string, limit int) (*Snapshots, error) {
	if strings.TrimSpace(base) == "" {
		return nil, errors.New("store: snapshot path required")
	}
	return &Snapshots{
		d: diskv.New(diskv.Options{
			BasePath:          base,
			AdvancedTransform: snapshotKeyToPath,
			InverseTransform:  snapshotPathToKey,
			CacheSizeMax:      1024 * 1024, // 1MB
		}),
		limit: limit,
		now:   time.Now,
	}, nil
}

// Put stores text and prunes the oldest entries beyond the limit.
func (s *Snapshots) Put(text string) (string, error) {
	key := s.now().UTC().Format(snapshotLayout)
	for s.d.Has(key) {
		key += "0"
	}
	if err := s.d.Write(key, []byte(text)); err != nil {
		return "", fmt.Errorf("store: write snapshot: %w", err)
	}
	if err := s.prune(); err != nil {
		return key, err
	}
	return key, nil
}

// Read returns the text saved under key.
func (s *Snapshots) Read(key string) (string, error) {
	data, err := s.d.Read(key)
	if err != nil {
		return "", fmt.Errorf("store: read snapshot %s: %w", key, err)
	}
	return string(data), nil
}

// List returns the snapshots newest first.
func (s *Snapshots) List(ctx context.Context) []Snapshot {
	keys := s.keys(ctx)
	out := make([]Snapshot, 0, len(keys))
	for i := len(keys) - 1; i >= 0; i-- {
		key := keys[i]
		snap := Snapshot{Key: key}
		if t, err := time.Parse(snapshotLayout, key[:min(len(key), len(snapshotLayout))]); err == nil {
			snap.Taken = t
		}
		if data, err := s.d.Read(key); err == nil {
			snap.Size = len(data)
		}
		out = append(out, snap)
	}
	return out
}

// Latest returns the key of the newest snapshot.
func (s *Snapshots) Latest(ctx context.Context) (string, bool) {
	keys := s.keys(ctx)
	if len(keys) == 0 {
		return "", false
	}
	return keys[len(keys)-1], true
}

func (s *Snapshots) keys(ctx context.Context) []string {
	var keys []string
	for key := range s.d.Keys(ctx.Done()) {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (s *Snapshots) prune() error {
	if s.limit <= 0 {
		return nil
	}
	keys := s.keys(context.Background())
	for len(keys) > s.limit {
		if err := s.d.Erase(keys[0]); err != nil {
			return fmt.Errorf("store: prune snapshot %s: %w", keys[0], err)
		}
		keys = keys[1:]
	}
	return nil
}

func snapshotKeyToPath(key string) *diskv.PathKey {
	day := key
	if len(day) > 8 {
		day = day[:8]
	}
	return &diskv.PathKey{
		Path:     []string{day},
		FileName: key,
	}
}

func snapshotPathToKey(pathKey *diskv.PathKey) string {
	return pathKey.FileName
}
