package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"emittr/connect4/internal/analytics"
	"emittr/connect4/internal/game"
)

type Server struct {
	router    *gin.Engine
	manager   *game.Manager
	analytics *analytics.Producer
}

type Config struct {
	IdleTimeout time.Duration
	NewBot      func() *game.Bot
	Analytics   *analytics.Producer
}

func New(cfg Config) *Server {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	s := &Server{
		router:    router,
		analytics: cfg.Analytics,
	}
	s.manager = game.NewManager(cfg.IdleTimeout, cfg.NewBot, s.onFinish)

	router.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	api := router.Group("/api/games")
	api.POST("", s.handleCreate)
	api.GET("/:id", s.handleGet)
	api.POST("/:id/moves", s.handleMove)
	api.POST("/:id/reset", s.handleReset)
	router.GET("/ws", s.handleWS)
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Manager() *game.Manager {
	return s.manager
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.router}
	go s.sweeper(ctx)

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	log.Println("Server is shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) sweeper(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.manager.SweepIdle()
		}
	}
}

type moveRequest struct {
	Column *int `json:"column" binding:"required"`
}

func (s *Server) handleCreate(c *gin.Context) {
	sess := s.manager.Create()
	s.analytics.GameStarted(c.Request.Context(), sess.ID)
	c.JSON(http.StatusCreated, statePayload("init", sess.ID, sess.Snapshot()))
}

func (s *Server) handleGet(c *gin.Context) {
	sess, ok := s.manager.Get(c.Param("id"))
	if !ok {
		writeError(c, game.ErrGameNotFound)
		return
	}
	c.JSON(http.StatusOK, statePayload("state", sess.ID, sess.Snapshot()))
}

func (s *Server) handleMove(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "column required"})
		return
	}
	id := c.Param("id")
	res, _, err := s.manager.Play(id, *req.Column)
	if err != nil {
		writeError(c, err)
		return
	}
	s.analytics.MovePlayed(c.Request.Context(), id, res)
	c.JSON(http.StatusOK, statePayload("state", id, res))
}

func (s *Server) handleReset(c *gin.Context) {
	id := c.Param("id")
	res, err := s.manager.Reset(id)
	if err != nil {
		writeError(c, err)
		return
	}
	s.analytics.GameStarted(c.Request.Context(), id)
	c.JSON(http.StatusOK, statePayload("state", id, res))
}

func (s *Server) onFinish(sum game.Summary) {
	s.analytics.GameFinished(context.Background(), sum)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, game.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrColumnFull), errors.Is(err, game.ErrInvalidColumn):
		return http.StatusBadRequest
	case errors.Is(err, game.ErrGameFinished), errors.Is(err, game.ErrNotYourTurn):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func statePayload(kind, gameID string, res game.MoveResult) gin.H {
	payload := gin.H{
		"type":    kind,
		"gameId":  gameID,
		"board":   res.Board.Grid(),
		"phase":   res.Phase,
		"outcome": res.Outcome,
		"winner":  res.Winner,
	}
	if len(res.Moves) > 0 {
		payload["moves"] = res.Moves
	}
	if len(res.Winning) > 0 {
		payload["winning"] = res.Winning
	}
	return payload
}
