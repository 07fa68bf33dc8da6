package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/partybox-games/roomserver/internal/api/handler"
	apimiddleware "github.com/partybox-games/roomserver/internal/api/middleware"
	"github.com/partybox-games/roomserver/internal/gamedef"
	"github.com/partybox-games/roomserver/internal/middleware"
	"github.com/partybox-games/roomserver/internal/services/room"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	RoomController *room.Controller
	Registry       *gamedef.Registry
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	roomHandler := handler.NewRoomHandler(cfg.RoomController, cfg.Registry)
	gameHandler := handler.NewGameHandler(cfg.RoomController, cfg.Registry)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(apimiddleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	api.HandleFunc("/get-room", roomHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/create-room", roomHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/join-room", roomHandler.Join).Methods(http.MethodPost)

	api.HandleFunc("/games", gameHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/start-game", gameHandler.Start).Methods(http.MethodPost)
	api.HandleFunc("/end-game", gameHandler.End).Methods(http.MethodPost)
	api.HandleFunc("/action", gameHandler.Action).Methods(http.MethodPost)

	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"ok":true,"data":{"status":"ok"}}`))
}
