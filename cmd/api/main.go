package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/PawshSuite/groom-scheduler/internal/config"
	dbpkg "github.com/PawshSuite/groom-scheduler/internal/db"
	"github.com/PawshSuite/groom-scheduler/internal/logger"
	"github.com/PawshSuite/groom-scheduler/internal/routes"
	"github.com/PawshSuite/groom-scheduler/internal/session"
)

func main() {

	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	db := dbpkg.NewDB(cfg, log)
	if err := dbpkg.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("database migration failed")
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid REDIS_URL")
	}
	rdb := redis.NewClient(redisOpts)

	sessions := session.NewStore(
		rdb,
		time.Duration(cfg.SessionTTLHours)*time.Hour,
	)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, log, sessions)

	log.Info().Str("addr", cfg.Addr()).Msg("server running")
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
