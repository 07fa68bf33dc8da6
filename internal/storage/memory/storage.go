package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/partybox-games/roomserver/internal/model"
	"github.com/partybox-games/roomserver/internal/storage"
)

// Storage is an in-memory implementation of the room store. Records
// are kept serialized so every Get hands back a fresh snapshot with no
// aliasing of committed state.
type Storage struct {
	mu    sync.RWMutex
	rooms map[model.RoomCode][]byte
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		rooms: make(map[model.RoomCode][]byte),
	}
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

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[record.Room.Code]; ok {
		return model.ErrRoomExists
	}
	s.rooms[record.Room.Code] = data
	return nil
}

func (s *Storage) Get(ctx context.Context, code model.RoomCode) (*model.RoomState, error) {
	s.mu.RLock()
	data, ok := s.rooms[code]
	s.mu.RUnlock()
	if !ok {
		return nil, model.ErrRoomNotFound
	}

	var state model.RoomState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *Storage) Update(ctx context.Context, code model.RoomCode, next *model.RoomState, expectedVersion int64) (int64, error) {
	record := *next
	record.Version = expectedVersion + 1
	data, err := json.Marshal(&record)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.rooms[code]
	if !ok {
		return 0, model.ErrRoomNotFound
	}

	var current model.RoomState
	if err := json.Unmarshal(stored, &current); err != nil {
		return 0, err
	}
	if current.Version != expectedVersion {
		return 0, model.ErrVersionConflict
	}

	s.rooms[code] = data
	return record.Version, nil
}

func (s *Storage) Delete(ctx context.Context, code model.RoomCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, code)
	return nil
}

func (s *Storage) Exists(ctx context.Context, code model.RoomCode) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.rooms[code]
	return ok, nil
}
