package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"nft-tickets-backend/auth"
	"nft-tickets-backend/config"
	"nft-tickets-backend/handlers"
	"nft-tickets-backend/metrics"
	"nft-tickets-backend/store"
)

const apiVersion = "1.0.0"

func main() {
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("configuration error")
	}

	ctx := context.Background()
	st, err := store.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("unable to connect to database")
	}
	defer st.Close()
	log.Info().Msg("connected to database")

	if err := st.Init(ctx); err != nil {
		log.Fatal().Err(err).Msg("schema initialization failed")
	}
	if err := st.Seed(ctx); err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}

	metrics.Register()

	tokens := auth.NewTokenIssuer(cfg.JWTSecret)
	authHandler := handlers.NewAuthHandler(st, tokens, log)
	eventHandler := handlers.NewEventHandler(st, log)
	orderHandler := handlers.NewOrderHandler(st, log)
	ticketHandler := handlers.NewTicketHandler(st, log)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(handlers.RequestLogger(log))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.AllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "NFT Ticketing API",
			"version": apiVersion,
		})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/auth/nonce", authHandler.GetNonce)
	router.POST("/auth/verify", authHandler.VerifySignature)

	router.GET("/events", eventHandler.ListEvents)
	router.GET("/events/:id", eventHandler.GetEvent)

	router.GET("/verify/:token_id", ticketHandler.VerifyTicket)
	router.GET("/verify/:token_id/page", ticketHandler.VerifyTicketPage)

	authorized := router.Group("/", handlers.RequireAuth(tokens))
	authorized.POST("/purchase", orderHandler.CreatePurchase)
	authorized.GET("/orders", orderHandler.ListOrders)
	authorized.GET("/tickets", ticketHandler.ListTickets)

	port := cfg.Port
	log.Info().Str("port", port).Msg("server starting")
	if err := router.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
