package cli

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"programpro_backend/internals/configs"
	database "programpro_backend/internals/databases"
	scheduler "programpro_backend/internals/features/users/auth/scheduler"
	helper "programpro_backend/internals/helpers"
	"programpro_backend/internals/middlewares"
	routes "programpro_backend/internals/route"
	"programpro_backend/internals/seeds"
)

func NewServeCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
}

// NewApp builds the fiber app with every middleware and route mounted.
func NewApp(db *gorm.DB) *fiber.App {
	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		ErrorHandler:            helper.ErrorHandler,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	middlewares.SetupMiddlewares(app)
	routes.SetupRoutes(app, db)

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second
	return app
}

func runServe(ctx context.Context, opts *RootOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// 🔌 DB connect + pool + warm-up
	database.ConnectDB()
	database.TunePool()
	database.WarmUpQueries()
	defer database.Close()

	if !opts.SkipMigrations {
		// a partially migrated schema still serves requests
		_ = database.Migrate()
	}
	if !opts.SkipSeeds {
		seedCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		seeds.RunAllSeeds(seedCtx, database.DB)
		cancel()
	}

	// ⏱ scheduler setelah DB siap
	cleanup, err := scheduler.StartBlacklistCleanupScheduler(database.DB)
	if err != nil {
		log.Printf("[WARN] blacklist cleanup not scheduled: %v", err)
	}

	app := NewApp(database.DB)

	port := configs.GetEnv("PORT", "3000")
	errCh := make(chan error, 1)
	go func() {
		log.Printf("✅ Listening on :%s", port)
		errCh <- app.Listen("0.0.0.0:" + port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	case <-ctx.Done():
	}

	log.Println("[INFO] shutting down...")
	if cleanup != nil {
		<-cleanup.Stop().Done()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return app.ShutdownWithContext(shutdownCtx)
}
