package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rocketscienceinc/gamehub-backend/internal/entity"
	"github.com/rocketscienceinc/gamehub-backend/internal/service"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	logger *slog.Logger

	inviteService  service.InviteService
	sessionService service.SessionService
	moveService    service.MoveService

	jwtSecret string
}

func New(logger *slog.Logger, inviteService service.InviteService, sessionService service.SessionService, moveService service.MoveService, jwtSecret string) *Server {
	return &Server{
		logger:         logger,
		inviteService:  inviteService,
		sessionService: sessionService,
		moveService:    moveService,
		jwtSecret:      jwtSecret,
	}
}

func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}

		return nil
	}
}

func (that *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /ping", that.pingHandler)

	mux.HandleFunc("POST /games/invite", that.withAuth(that.createInviteHandler))
	mux.HandleFunc("GET /games/invites", that.withAuth(that.listInvitesHandler))
	mux.HandleFunc("POST /games/invite/{id}/respond", that.withAuth(that.respondInviteHandler))

	mux.HandleFunc("GET /games/my-active", that.withAuth(that.listActiveHandler))
	mux.HandleFunc("GET /games/history", that.withAuth(that.listHistoryHandler))
	mux.HandleFunc("GET /games/{id}", that.withAuth(that.getSessionHandler))
	mux.HandleFunc("POST /games/{id}/move", that.withAuth(that.submitMoveHandler))

	return mux
}

func (that *Server) pingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

type authedHandler func(w http.ResponseWriter, r *http.Request, principal *entity.Principal)
