package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lostandfound-backend/internal/handler"
	"lostandfound-backend/internal/middleware"
)

type Server struct {
	router    *gin.Engine
	jwtSecret string
	logger    *zap.Logger

	authHandler  handler.AuthHandler
	itemHandler  handler.ItemHandler
	matchHandler handler.MatchHandler
	chatHandler  handler.ChatHandler
}

func NewServer(
	jwtSecret string,
	authHandler handler.AuthHandler,
	itemHandler handler.ItemHandler,
	matchHandler handler.MatchHandler,
	chatHandler handler.ChatHandler,
	logger *zap.Logger,
) *Server {
	s := &Server{
		router:       gin.Default(),
		jwtSecret:    jwtSecret,
		logger:       logger,
		authHandler:  authHandler,
		itemHandler:  itemHandler,
		matchHandler: matchHandler,
		chatHandler:  chatHandler,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Ping route for health check
	s.router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Authentication routes
	authGroup := s.router.Group("/api/auth")
	authGroup.POST("/register", s.authHandler.Register)
	authGroup.POST("/login", s.authHandler.Login)

	// Authenticated routes
	api := s.router.Group("/api")
	api.Use(middleware.AuthMiddleware(s.jwtSecret, s.logger))
	{
		api.POST("/items/lost", s.itemHandler.CreateLost)
		api.GET("/items/lost", s.itemHandler.ListLost)
		api.GET("/items/lost/:id", s.itemHandler.GetLost)
		api.PUT("/items/lost/:id/status", s.itemHandler.UpdateLostStatus)
		api.POST("/items/lost/:id/find-matches", s.itemHandler.FindLostMatches)

		api.POST("/items/found", s.itemHandler.CreateFound)
		api.GET("/items/found", s.itemHandler.ListFound)
		api.GET("/items/found/:id", s.itemHandler.GetFound)
		api.PUT("/items/found/:id/status", s.itemHandler.UpdateFoundStatus)
		api.POST("/items/found/:id/find-matches", s.itemHandler.FindFoundMatches)

		api.GET("/matches", s.matchHandler.ListMine)
		api.PUT("/matches/:id/accept", s.matchHandler.Accept)
		api.PUT("/matches/:id/reject", s.matchHandler.Reject)

		api.GET("/matches/:id/messages", s.chatHandler.ListMessages)
		api.POST("/matches/:id/messages", s.chatHandler.SendMessage)
	}
}

// Run starts the HTTP server and blocks until it stops.
func (s *Server) Run(addr string) error {
	s.logger.Info("Server starting", zap.String("addr", addr))
	return s.router.Run(addr)
}
