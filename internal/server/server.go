package server

import (
	"context"
	"net/http"

	"github.com/CourtMate-RSO/Courtmate-Booking-Service/internal/auth"
	"github.com/CourtMate-RSO/Courtmate-Booking-Service/internal/config"
	"github.com/CourtMate-RSO/Courtmate-Booking-Service/internal/court"
	"github.com/CourtMate-RSO/Courtmate-Booking-Service/internal/reservation"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

const reservationPrefix = "/reservation"

type Server struct {
	router *gin.Engine
	http   *http.Server
}

func New(db *sqlx.DB, redisClient *redis.Client, cfg *config.Config) (*Server, error) {
	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}

	verifier, err := auth.NewHMACVerifier(cfg.JWTSecret)
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RateLimitMiddleware(20, 40))

	courtRepo := court.NewCachedRepository(court.NewRepository(db), redisClient)
	reservationService := reservation.NewService(reservation.NewRepository(db), courtRepo)
	reservationHandler := reservation.NewHandler(reservationService)

	mount := router.Group(reservationPrefix)
	mount.GET("/health", Health)

	protected := mount.Group("")
	protected.Use(auth.Middleware(verifier))
	{
		protected.POST("/", reservationHandler.CreateReservation)
		protected.GET("/", reservationHandler.ListMyReservations)
		protected.GET("/:id", reservationHandler.GetReservation)
		protected.PUT("/:id", reservationHandler.CancelReservation)
	}

	router.GET("/metrics", Metrics())

	return &Server{
		router: router,
		http: &http.Server{
			Handler: router,
		},
	}, nil
}

func (s *Server) Start(port string) error {
	s.http.Addr = ":" + port
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
