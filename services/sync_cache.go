package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"lead-rag-platform/models"

	"github.com/redis/go-redis/v9"
)

// SyncCache keeps per-lead content fingerprints in Redis so a reindex run can
// short-circuit when nothing changed since the last run. A nil client
// disables caching entirely.
type SyncCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSyncCache(rdb *redis.Client, ttlSeconds int) *SyncCache {
	return &SyncCache{
		rdb: rdb,
		ttl: time.Duration(ttlSeconds) * time.Second,
	}
}

func (sc *SyncCache) Enabled() bool {
	return sc != nil && sc.rdb != nil
}

// Fingerprint hashes a lead's full content. Map iteration order does not leak
// into the hash because encoding/json sorts object keys.
func Fingerprint(record models.LeadRecord) string {
	raw, err := json.Marshal(record)
	if err != nil {
		raw = []byte(fmt.Sprint(record))
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

func syncKey(company, leadID string) string {
	return "leadsync:" + company + ":" + leadID
}

// AllUnchanged reports whether every lead's fingerprint matches the cached
// one. Any cache error counts as changed so indexing never silently skips.
func (sc *SyncCache) AllUnchanged(ctx context.Context, company string, leads []models.LeadRecord) bool {
	if !sc.Enabled() || len(leads) == 0 {
		return false
	}

	for _, lead := range leads {
		id, _ := lead["id"].(string)
		if id == "" {
			return false
		}
		cached, err := sc.rdb.Get(ctx, syncKey(company, id)).Result()
		if err != nil || cached != Fingerprint(lead) {
			return false
		}
	}
	return true
}

// Store writes the fingerprints for a completed run. Failures are ignored;
// the worst case is an unnecessary rebuild next time.
func (sc *SyncCache) Store(ctx context.Context, company string, leads []models.LeadRecord) {
	if !sc.Enabled() {
		return
	}

	pipe := sc.rdb.Pipeline()
	for _, lead := range leads {
		id, _ := lead["id"].(string)
		if id == "" {
			continue
		}
		pipe.Set(ctx, syncKey(company, id), Fingerprint(lead), sc.ttl)
	}
	_, _ = pipe.Exec(ctx)
}
