package storage

import (
	"context"

	"github.com/partybox-games/roomserver/internal/model"
)

// RoomStore is durable keyed storage of one versioned RoomState record
// per room code. It is the only place compare-and-swap discipline is
// required; everything above it operates on immutable snapshots.
//
// Competing Update calls for the same room code are linearized: at most
// one commits per version number, the rest observe ErrVersionConflict.
// Different room codes are fully independent.
type RoomStore interface {
	// Create stores a brand-new record. Returns model.ErrRoomExists
	// if the room code is already present.
	Create(ctx context.Context, state *model.RoomState) error

	// Get returns an immutable snapshot of the record, including the
	// exact version of the most recently committed write.
	Get(ctx context.Context, code model.RoomCode) (*model.RoomState, error)

	// Update atomically replaces the record if and only if the stored
	// version equals expectedVersion. On success the stored version
	// becomes expectedVersion+1, which is returned. A mismatch rejects
	// the write entirely (no partial merge) with
	// model.ErrVersionConflict; a missing room returns
	// model.ErrRoomNotFound.
	Update(ctx context.Context, code model.RoomCode, next *model.RoomState, expectedVersion int64) (int64, error)

	// Delete removes the record
	Delete(ctx context.Context, code model.RoomCode) error

	// Exists reports whether a record is stored for the code
	Exists(ctx context.Context, code model.RoomCode) (bool, error)
}
