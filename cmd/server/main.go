package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Tchybbi/Smatico/internal/admin"
	"github.com/Tchybbi/Smatico/internal/alerts"
	"github.com/Tchybbi/Smatico/internal/auth"
	"github.com/Tchybbi/Smatico/internal/config"
	"github.com/Tchybbi/Smatico/internal/marketplace"
	"github.com/Tchybbi/Smatico/internal/messaging"
	mware "github.com/Tchybbi/Smatico/internal/middleware"
	"github.com/Tchybbi/Smatico/internal/onboarding"
	"github.com/Tchybbi/Smatico/internal/storage"
	"github.com/Tchybbi/Smatico/internal/store"
	"github.com/Tchybbi/Smatico/internal/user"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()

	kv, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	st := store.New(kv)
	if err := st.Load(ctx); err != nil {
		log.Fatalf("store: %v", err)
	}
	log.Printf("snapshot restored (driver=%s)", cfg.StorageDriver)

	events := alerts.New(st, cfg.RedisAddr)

	authH := &auth.Handler{Store: st, Events: events, Secret: cfg.JWTSecret}
	marketH := &marketplace.Handler{Store: st, Events: events}
	userH := &user.Handler{Store: st}
	adminH := &admin.Handler{Store: st}
	alertsH := &alerts.Handler{Store: st}
	onboardingH := &onboarding.Handler{Store: st}
	wsH := &messaging.Handler{Store: st}

	e := echo.New()
	e.HideBanner = true

	// Basic middleware
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	// Health and root routes
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok", "service": "smatico"})
	})
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
	e.GET("/ready", func(c echo.Context) error {
		if err := kv.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "not_ready", "error": "storage unreachable"})
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "ready"})
	})

	// Public routes
	// Auth routes with per-IP rate limiting to protect signup/login from abuse
	authGroup := e.Group("/auth")
	authGroup.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(20)))
	authGroup.POST("/signup", authH.Signup)
	authGroup.POST("/login", authH.Login)

	e.GET("/user/:id/profile", userH.GetPublicProfile)
	e.GET("/providers/:id/reviews", marketH.GetProviderReviews)
	e.GET("/onboarding", onboardingH.Status)

	// Protected routes
	api := e.Group("")
	api.Use(mware.JWTAuth(cfg.JWTSecret))

	api.GET("/auth/me", authH.Me)
	api.POST("/auth/logout", authH.Logout)

	api.PATCH("/user/profile", userH.UpdateProfile)
	api.POST("/onboarding/complete", onboardingH.Complete)

	api.GET("/marketplace/orders", marketH.ListOrders)
	api.GET("/marketplace/orders/:id", marketH.GetOrder)
	api.POST("/marketplace/orders", marketH.CreateOrder, mware.RequireRoles("customer"))
	api.PATCH("/marketplace/orders/:id", marketH.UpdateOrder, mware.RequireRoles("customer"))
	api.POST("/marketplace/orders/:id/bids", marketH.PlaceBid, mware.RequireRoles("provider"))
	api.POST("/marketplace/orders/:id/bids/:bidId/accept", marketH.AcceptBid, mware.RequireRoles("customer"))
	api.POST("/marketplace/orders/:id/complete", marketH.CompleteOrder, mware.RequireRoles("customer"))
	api.POST("/marketplace/orders/:id/cancel", marketH.CancelOrder)
	api.POST("/marketplace/orders/:id/rate", marketH.RateParticipant)
	api.GET("/marketplace/orders/:id/ws", wsH.OrderWS)

	api.GET("/notifications", alertsH.ListNotifications)
	api.POST("/notifications/:id/read", alertsH.MarkNotificationRead)

	// Admin routes
	adminGroup := e.Group("/admin")
	adminGroup.Use(mware.JWTAuth(cfg.JWTSecret))
	adminGroup.Use(mware.AdminGuard)

	adminGroup.GET("/stats", adminH.Stats)
	adminGroup.GET("/users", adminH.ListUsers)
	adminGroup.GET("/orders/cancelled", adminH.ListCancelledOrders)

	// Start server
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown: stop accepting traffic, then flush the snapshot.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	events.Close()
	if err := st.Close(); err != nil {
		log.Printf("store close: %v", err)
	}
	if err := kv.Close(); err != nil {
		log.Printf("storage close: %v", err)
	}
}
