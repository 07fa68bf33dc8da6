package redis

import (
	"fmt"

	"github.com/partybox-games/roomserver/internal/model"
)

// Key prefix for all room records
const keyPrefix = "roomserver"

// roomKey returns the Redis key for a room's versioned state record
func roomKey(code model.RoomCode) string {
	return fmt.Sprintf("%s:room:%s", keyPrefix, code)
}
