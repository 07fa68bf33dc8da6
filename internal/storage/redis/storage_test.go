package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/partybox-games/roomserver/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.RoomTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) newState(code model.RoomCode) *model.RoomState {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return &model.RoomState{
		Room: model.Room{
			Code:   code,
			HostID: "player-1",
			Players: []model.Player{
				{ID: "player-1", Name: "Alice", Role: model.RolePlayer},
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

func (s *StorageSuite) TestCreateAndGet() {
	err := s.storage.Create(s.ctx, s.newState("ABCD"))
	s.Require().NoError(err)

	retrieved, err := s.storage.Get(s.ctx, "ABCD")
	s.Require().NoError(err)
	s.Equal(int64(1), retrieved.Version)
	s.Equal(model.RoomCode("ABCD"), retrieved.Room.Code)
	s.Len(retrieved.Room.Players, 1)
}

func (s *StorageSuite) TestCreateExisting() {
	s.Require().NoError(s.storage.Create(s.ctx, s.newState("ABCD")))

	err := s.storage.Create(s.ctx, s.newState("ABCD"))
	s.ErrorIs(err, model.ErrRoomExists)
}

func (s *StorageSuite) TestCreateSetsTTL() {
	s.Require().NoError(s.storage.Create(s.ctx, s.newState("ABCD")))

	ttl := s.mini.TTL(roomKey("ABCD"))
	s.Equal(time.Hour, ttl)
}

func (s *StorageSuite) TestGetNotFound() {
	_, err := s.storage.Get(s.ctx, "QQQQ")
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *StorageSuite) TestUpdate() {
	s.Require().NoError(s.storage.Create(s.ctx, s.newState("ABCD")))

	next := s.newState("ABCD")
	next.GameID = "venture"
	next.GameState = json.RawMessage(`{"round":1}`)

	version, err := s.storage.Update(s.ctx, "ABCD", next, 1)
	s.Require().NoError(err)
	s.Equal(int64(2), version)

	retrieved, err := s.storage.Get(s.ctx, "ABCD")
	s.Require().NoError(err)
	s.Equal(int64(2), retrieved.Version)
	s.True(retrieved.InGame())
}

func (s *StorageSuite) TestUpdateVersionConflict() {
	s.Require().NoError(s.storage.Create(s.ctx, s.newState("ABCD")))

	_, err := s.storage.Update(s.ctx, "ABCD", s.newState("ABCD"), 1)
	s.Require().NoError(err)

	_, err = s.storage.Update(s.ctx, "ABCD", s.newState("ABCD"), 1)
	s.ErrorIs(err, model.ErrVersionConflict)
}

func (s *StorageSuite) TestUpdateNotFound() {
	_, err := s.storage.Update(s.ctx, "QQQQ", s.newState("QQQQ"), 1)
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *StorageSuite) TestUpdateRefreshesTTL() {
	s.Require().NoError(s.storage.Create(s.ctx, s.newState("ABCD")))

	s.mini.FastForward(30 * time.Minute)

	_, err := s.storage.Update(s.ctx, "ABCD", s.newState("ABCD"), 1)
	s.Require().NoError(err)

	ttl := s.mini.TTL(roomKey("ABCD"))
	s.Equal(time.Hour, ttl)
}

func (s *StorageSuite) TestRoomExpires() {
	s.Require().NoError(s.storage.Create(s.ctx, s.newState("ABCD")))

	s.mini.FastForward(2 * time.Hour)

	_, err := s.storage.Get(s.ctx, "ABCD")
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *StorageSuite) TestDelete() {
	s.Require().NoError(s.storage.Create(s.ctx, s.newState("ABCD")))

	err := s.storage.Delete(s.ctx, "ABCD")
	s.Require().NoError(err)

	_, err = s.storage.Get(s.ctx, "ABCD")
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *StorageSuite) TestExists() {
	exists, err := s.storage.Exists(s.ctx, "ABCD")
	s.Require().NoError(err)
	s.False(exists)

	s.Require().NoError(s.storage.Create(s.ctx, s.newState("ABCD")))

	exists, err = s.storage.Exists(s.ctx, "ABCD")
	s.Require().NoError(err)
	s.True(exists)
}
