// Package localstore persists pastor records on the device. These
// records never reach the server; they only exist in the merged view.
package localstore

import (
	"crypto/rand"
	"encoding/base32"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kafune/rede-guti/internal/devstore"
	"github.com/kafune/rede-guti/internal/registry"
)

const pastorsKey = "guti_local_pastors"

type Store struct {
	dev *devstore.Store
}

func New(dev *devstore.Store) *Store {
	return &Store{dev: dev}
}

// Load reads the persisted pastor list. Absent, corrupt or non-list
// content yields an empty list; entries are coerced back into shape
// (pastor kind, default status, default timestamp) rather than dropped.
func (s *Store) Load() []registry.Record {
	var records []registry.Record
	if !s.dev.Get(pastorsKey, &records) {
		return nil
	}

	out := records[:0]
	for _, r := range records {
		if r.ID == "" {
			continue
		}
		r.Kind = registry.KindPastor
		if r.Status == "" {
			r.Status = registry.StatusActive
		}
		if r.CreatedAt.IsZero() {
			r.CreatedAt = time.Now()
		}
		out = append(out, r)
	}
	return out
}

// Save overwrites the persisted list wholesale. Every mutation to the
// in-memory collection triggers a full rewrite.
func (s *Store) Save(records []registry.Record) error {
	if records == nil {
		records = []registry.Record{}
	}
	return s.dev.Set(pastorsKey, records)
}

// NewID generates a prefixed, globally-unique local ID. It prefers a
// random UUID and falls back to a timestamp plus random suffix when the
// crypto source is unavailable.
func (s *Store) NewID() string {
	if id, err := uuid.NewRandom(); err == nil {
		return registry.LocalIDPrefix + id.String()
	}

	suffix := make([]byte, 5)
	if _, err := rand.Read(suffix); err != nil {
		for i := range suffix {
			suffix[i] = byte(time.Now().UnixNano() >> (i * 8))
		}
	}
	encoded := strings.ToLower(base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(suffix))
	return registry.LocalIDPrefix + strconv.FormatInt(time.Now().UnixMilli(), 36) + "-" + encoded
}
