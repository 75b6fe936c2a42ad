package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/streamgenie/streamgenie-go/internal/constants"
	"github.com/streamgenie/streamgenie-go/internal/handler"
	"go.uber.org/zap"
)

// Handlers bundles everything the router needs. Optional surfaces may be nil
// and their routes are simply not registered.
type Handlers struct {
	Events    *handler.EventsHandler
	Metadata  *handler.MetadataHandler
	Watchlist *handler.WatchlistHandler
	Favorites *handler.FavoritesHandler
	Reports   *handler.ReportsHandler
	Health    *handler.HealthHandler
}

type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
}

func New(host string, port int, h Handlers, logger *zap.Logger) *Server {
	router := mux.NewRouter()

	router.HandleFunc("/healthz", h.Health.Healthz).Methods(http.MethodGet)

	router.HandleFunc("/search-live-events", h.Events.SearchLiveEvents).Methods(http.MethodPost)
	router.HandleFunc("/search-tmdb", h.Metadata.SearchMedia).Methods(http.MethodPost)

	if h.Watchlist != nil {
		router.HandleFunc("/watchlist", h.Watchlist.List).Methods(http.MethodGet)
		router.HandleFunc("/watchlist", h.Watchlist.Add).Methods(http.MethodPost)
		router.HandleFunc("/watchlist", h.Watchlist.Remove).Methods(http.MethodDelete)
	}
	if h.Favorites != nil {
		router.HandleFunc("/favorite-teams", h.Favorites.List).Methods(http.MethodGet)
		router.HandleFunc("/favorite-teams", h.Favorites.Add).Methods(http.MethodPost)
		router.HandleFunc("/favorite-teams", h.Favorites.Remove).Methods(http.MethodDelete)
	}
	if h.Reports != nil {
		router.HandleFunc("/reports", h.Reports.Create).Methods(http.MethodPost)
		router.HandleFunc("/reports", h.Reports.ListRecent).Methods(http.MethodGet)
	}

	var root http.Handler = router
	root = handler.CORS(root)
	root = handler.RequestLogger(logger)(root)

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			Handler:      root,
			ReadTimeout:  constants.ServerConfig.ReadTimeout,
			WriteTimeout: constants.ServerConfig.WriteTimeout,
			IdleTimeout:  constants.ServerConfig.IdleTimeout,
		},
		logger: logger,
	}
}

// ListenAndServe blocks until the server stops. http.ErrServerClosed is
// returned on graceful shutdown.
func (s *Server) ListenAndServe() error {
	s.logger.Info("HTTP server listening", zap.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
