package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"paywall-backend/access"
	"paywall-backend/catalog"
	"paywall-backend/config"
	"paywall-backend/db"
	_ "paywall-backend/docs"
	"paywall-backend/grant"
	accessHandler "paywall-backend/handlers/access"
	contentHandler "paywall-backend/handlers/content"
	networksHandler "paywall-backend/handlers/networks"
	"paywall-backend/handlers/ping"
	"paywall-backend/middleware"
	"paywall-backend/payment"
	"paywall-backend/routes"
	"paywall-backend/store"
	"paywall-backend/utils"
)

// @title Paywall Backend API
// @version 1.0
// @description Pay-per-view access gating for creator content
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	// Initialiser le logger
	utils.InitLogger(cfg.Logging.Level, cfg.Logging.File)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := utils.RegisterValidators(); err != nil {
		log.Fatal("Registering validators: ", err)
	}

	// Initialiser la base de données
	contentStore, err := openStore(cfg)
	if err != nil {
		utils.LogError(err, "Error opening the content store")
		log.Fatal(err)
	}

	secret := []byte(cfg.Grant.Secret)
	if len(secret) == 0 {
		secret = randomSecret()
		utils.LogWarn("GRANT_SECRET not set, using a random secret: grants will not survive a restart")
	}
	issuer, err := grant.NewIssuer(secret, cfg.Grant.TTL, nil)
	if err != nil {
		log.Fatal(err)
	}

	breaker := payment.BreakerSettings{
		Timeout:          cfg.Payment.BreakerTimeout,
		FailureThreshold: cfg.Payment.BreakerFailures,
	}

	var verifier payment.Verifier = payment.TrustingVerifier{}
	if cfg.Payment.Verifier == config.VerifierStripe {
		verifier = payment.NewStripeVerifier(cfg.Payment.StripeSecretKey, contentStore, breaker)
		utils.LogInfo("Payment proofs are verified against Stripe")
	} else {
		utils.LogWarn("Payment proofs are NOT verified: any proof unlocks content")
	}

	var checkout accessHandler.CheckoutCreator
	if cfg.Payment.StripeSecretKey != "" {
		checkout = payment.NewStripeCheckout(cfg.Payment.StripeSecretKey, breaker)
	}

	// Initialiser Cloudinary
	var uploader utils.ThumbnailUploader
	cld, err := utils.NewCloudinaryUploader(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret, cfg.Cloudinary.Folder)
	if err != nil {
		utils.LogError(err, "Cloudinary initialisation failed, thumbnail upload disabled")
	} else if cld != nil {
		uploader = cld
	}

	catalogService := catalog.NewService(contentStore)
	if cfg.Database.SeedDemo {
		if err := db.SeedDemo(context.Background(), catalogService); err != nil {
			utils.LogError(err, "Error seeding demo content")
		}
	}

	var limiter *middleware.RateLimiter
	if !cfg.RateLimit.Disabled {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
		defer limiter.Stop()
	}

	cookies := grant.Cookies{Prefix: cfg.Grant.CookiePrefix, Secure: cfg.IsProduction()}
	r := routes.SetupRouter(routes.Handlers{
		Access:       accessHandler.New(access.NewService(contentStore, issuer, verifier), cookies, contentStore, checkout),
		Content:      contentHandler.New(catalogService, uploader),
		Networks:     networksHandler.New(merchants(cfg), cfg.Payment.ProjectID),
		Ping:         ping.New(contentStore),
		Cookies:      cookies,
		GrantLimiter: limiter,
		CORSOrigins:  cfg.Server.CORSOrigins,
	})

	utils.LogInfo(fmt.Sprintf("Server listening on :%d (%s)", cfg.Server.Port, cfg.Server.Environment))
	if err := r.Run(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
		log.Fatal("Error starting the server: ", err)
	}
}

func openStore(cfg *config.Config) (store.ContentStore, error) {
	if cfg.Database.URL == "" {
		utils.LogWarn("DB_URL not set, content is kept in memory")
		return store.NewMemoryStore(), nil
	}

	conn, err := db.Open(cfg.Database.URL)
	if err != nil {
		return nil, err
	}
	if cfg.Database.AutoMigrate {
		if err := db.Migrate(conn); err != nil {
			return nil, err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s := store.NewGormStore(conn)
	if err := s.Ping(ctx); err != nil {
		return nil, fmt.Errorf("pinging the database: %w", err)
	}
	return s, nil
}

func merchants(cfg *config.Config) map[payment.Network]string {
	return map[payment.Network]string{
		payment.NetworkBase:   cfg.Payment.BaseMerchantAddress,
		payment.NetworkSolana: cfg.Payment.SolanaMerchantAddress,
	}
}

func randomSecret() []byte {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		log.Fatal("Generating grant secret: ", err)
	}
	return []byte(hex.EncodeToString(b))
}
