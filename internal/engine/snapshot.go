package engine

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"

	"github.com/donaldgifford/laptop-advisor/pkg/catalog"
	domain "github.com/donaldgifford/laptop-advisor/pkg/types"
)

// Snapshot is one immutable, processed view of the catalog. Readers share
// it without locking; a reload publishes a new Snapshot.
type Snapshot struct {
	ID            uuid.UUID        `json:"id"`
	Digest        string           `json:"digest"`
	LoadedAt      time.Time        `json:"loaded_at"`
	TablesVersion string           `json:"tables_version"`
	Source        string           `json:"source"`
	Catalog       *catalog.Catalog `json:"-"`
}

// Listings returns the snapshot's listings. The slice must not be modified.
func (s *Snapshot) Listings() []domain.Listing {
	if s == nil || s.Catalog == nil {
		return nil
	}
	return s.Catalog.Listings
}

// Fresh reports whether the snapshot is younger than ttl at now.
func (s *Snapshot) Fresh(now time.Time, ttl time.Duration) bool {
	return s != nil && now.Sub(s.LoadedAt) < ttl
}

// touch returns a copy of s with a new load time. The catalog is shared.
func (s *Snapshot) touch(at time.Time) *Snapshot {
	c := *s
	c.LoadedAt = at
	return &c
}

const (
	fieldSep = 0x1f
	rowSep   = 0x1e
)

// Digest hashes raw rows in order. Identical sources give identical digests.
func Digest(rows []domain.RawListing) string {
	h := sha256.New()
	buf := make([]byte, 0, 256)
	for i := range rows {
		buf = buf[:0]
		for _, col := range domain.Columns {
			buf = append(buf, rows[i].Field(col)...)
			buf = append(buf, fieldSep)
		}
		buf = append(buf, rowSep)
		h.Write(buf)
	}
	return hex.EncodeToString(h.Sum(nil))
}
