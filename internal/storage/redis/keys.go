package redis

import (
	"fmt"

	"github.com/mcoot/patchworkgame-go/internal/model"
)

// Key prefix for all patchwork data
const keyPrefix = "patchwork"

// matchKey returns the Redis key for a Match
func matchKey(id model.MatchID) string {
	return fmt.Sprintf("%s:match:%s", keyPrefix, id)
}

// historyKey returns the Redis key for an archived GameHistory
func historyKey(replayID string) string {
	return fmt.Sprintf("%s:history:%s", keyPrefix, replayID)
}

// historiesIndexKey returns the Redis key for the SET of archived replay IDs
func historiesIndexKey() string {
	return fmt.Sprintf("%s:idx:histories", keyPrefix)
}
