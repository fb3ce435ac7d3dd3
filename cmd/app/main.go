package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"stagekit/cmd/fx/account_fx"
	"stagekit/cmd/fx/billing_fx"
	"stagekit/cmd/fx/catalog_fx"
	"stagekit/cmd/fx/controllers_fx"
	"stagekit/cmd/fx/db_fx"
	"stagekit/cmd/fx/entitlement_fx"
	"stagekit/cmd/fx/mail_fx"
	"stagekit/cmd/fx/requests_fx"
	"stagekit/internal/api/controllers"
	"stagekit/internal/services"
	"stagekit/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	app := fx.New(
		db_fx.Module,
		entitlement_fx.Module,
		account_fx.Module,
		billing_fx.Module,
		catalog_fx.Module,
		requests_fx.Module,
		mail_fx.Module,
		controllers_fx.Module,

		fx.Invoke(StartServer),
		fx.Provide(ProvideRouter),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Println("Starting HTTP server at ${PORT}")
				if err := engine.Run(":" + os.Getenv("PORT")); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	accountController *controllers.AccountController,
	billingController *controllers.BillingController,
	entitlementController *controllers.EntitlementController,
	webhookController *controllers.WebhookController,
	catalogController *controllers.CatalogController,
	requestController *controllers.RequestController,
	entitlementService services.EntitlementServiceInterface) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r,
		accountController,
		billingController,
		entitlementController,
		webhookController,
		catalogController,
		requestController,
		entitlementService)

	return r
}

func RegisterRoutes(r *gin.Engine,
	accountController *controllers.AccountController,
	billingController *controllers.BillingController,
	entitlementController *controllers.EntitlementController,
	webhookController *controllers.WebhookController,
	catalogController *controllers.CatalogController,
	requestController *controllers.RequestController,
	entitlementService services.EntitlementServiceInterface) {

	// The webhook path stays static: the gateway signs the raw payload it
	// posts here, and a parameterized sibling route must never shadow it.
	r.POST("/webhooks/payment-gateway", webhookController.HandlePaymentGateway)

	r.POST("/auth/register", accountController.Register)
	r.POST("/auth/login", accountController.Login)

	r.GET("/plans", billingController.ListPlans)

	r.GET("/accounts/:id/access-check", entitlementController.AccessCheck)

	accountGroup := r.Group("/accounts")
	accountGroup.Use(middleware.JWTAuthMiddleware(), middleware.RequireAccountParam())
	accountGroup.GET("/:id/entitlement", entitlementController.GetEntitlement)
	accountGroup.POST("/:id/checkout", billingController.StartCheckout)
	accountGroup.GET("/:id/checkout/:session_id", billingController.CheckoutStatus)
	accountGroup.POST("/:id/cancel", billingController.Cancel)
	accountGroup.DELETE("/:id", accountController.Delete)

	songGroup := r.Group("/songs")
	songGroup.Use(middleware.JWTAuthMiddleware())
	songGroup.POST("", catalogController.CreateSong)
	songGroup.GET("", catalogController.ListSongs)
	songGroup.PUT("/:songId", catalogController.UpdateSong)
	songGroup.DELETE("/:songId", catalogController.DeleteSong)

	playlistGroup := r.Group("/playlists")
	playlistGroup.Use(middleware.JWTAuthMiddleware())
	playlistGroup.POST("", catalogController.CreatePlaylist)
	playlistGroup.GET("", catalogController.ListPlaylists)
	playlistGroup.DELETE("/:playlistId", catalogController.DeletePlaylist)

	requestGroup := r.Group("/requests")
	requestGroup.Use(middleware.JWTAuthMiddleware())
	requestGroup.GET("", requestController.ListRequests)
	requestGroup.PATCH("/:requestId", requestController.UpdateRequestStatus)

	publicGroup := r.Group("/p/:accountId")
	publicGroup.Use(middleware.AccessGate(entitlementService))
	publicGroup.GET("/songs", catalogController.ListAudienceSongs)
	publicGroup.POST("/requests", requestController.SubmitRequest)
}
