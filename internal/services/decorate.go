package services

import (
	"context"

	"github.com/imsosorrybutiloveyou/Girok/internal/models"
	"github.com/imsosorrybutiloveyou/Girok/internal/storage"
)

// UnknownWriter is the display name substituted when the writer record is
// missing (e.g. a deleted account). Reads degrade to this placeholder
// instead of failing.
const UnknownWriter = "알 수 없음"

// resolveWriters batch-loads the users behind a set of ids, deduplicated.
func resolveWriters(ctx context.Context, store storage.Store, ids []string) (map[string]*models.User, error) {
	seen := make(map[string]bool, len(ids))
	distinct := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		distinct = append(distinct, id)
	}
	return store.UsersByIDs(ctx, distinct)
}

// writerSummary returns the display fields for a writer id, applying the
// missing-writer fallback.
func writerSummary(writers map[string]*models.User, id string) (nickname, avatar string) {
	if u, ok := writers[id]; ok {
		return u.Nickname, u.Avatar
	}
	return UnknownWriter, ""
}
