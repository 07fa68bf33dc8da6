package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/partybox-games/roomserver/internal/model"
	"github.com/partybox-games/roomserver/internal/storage"
)

// Storage is a Redis-backed implementation of the room store. The
// compare-and-swap on Update uses WATCH on the room key: if any writer
// commits between the read and the EXEC, the transaction fails and the
// caller observes a version conflict.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.RoomStore = (*Storage)(nil)

func (s *Storage) Create(ctx context.Context, state *model.RoomState) error {
	record := *state
	if record.Version == 0 {
		record.Version = 1
	}
	data, err := json.Marshal(&record)
	if err != nil {
		return err
	}

	ok, err := s.client.SetNX(ctx, roomKey(record.Room.Code), data, s.cfg.RoomTTL).Result()
	if err != nil {
		return err
	}
	if !ok {
		return model.ErrRoomExists
	}
	return nil
}

func (s *Storage) Get(ctx context.Context, code model.RoomCode) (*model.RoomState, error) {
	data, err := s.client.Get(ctx, roomKey(code)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrRoomNotFound
		}
		return nil, err
	}

	var state model.RoomState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *Storage) Update(ctx context.Context, code model.RoomCode, next *model.RoomState, expectedVersion int64) (int64, error) {
	key := roomKey(code)
	record := *next
	record.Version = expectedVersion + 1

	data, err := json.Marshal(&record)
	if err != nil {
		return 0, err
	}

	txf := func(tx *redis.Tx) error {
		stored, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return model.ErrRoomNotFound
			}
			return err
		}

		var current model.RoomState
		if err := json.Unmarshal(stored, &current); err != nil {
			return err
		}
		if current.Version != expectedVersion {
			return model.ErrVersionConflict
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, s.cfg.RoomTTL)
			return nil
		})
		return err
	}

	if err := s.client.Watch(ctx, txf, key); err != nil {
		// A concurrent write between GET and EXEC aborts the
		// transaction; surface it as a plain version conflict.
		if errors.Is(err, redis.TxFailedErr) {
			return 0, model.ErrVersionConflict
		}
		return 0, err
	}

	return record.Version, nil
}

func (s *Storage) Delete(ctx context.Context, code model.RoomCode) error {
	return s.client.Del(ctx, roomKey(code)).Err()
}

func (s *Storage) Exists(ctx context.Context, code model.RoomCode) (bool, error) {
	exists, err := s.client.Exists(ctx, roomKey(code)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}
