package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"openshelf/internal/circulation"
	"openshelf/internal/config"
	"openshelf/internal/database"
	"openshelf/internal/database/books"
	"openshelf/internal/database/members"
	"openshelf/internal/database/transactions"
	http_controllers "openshelf/internal/http"
	"openshelf/internal/scheduler"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for SIGINT/SIGTERM, then drain in-flight requests within the
	// configured timeout.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting OpenShelf v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	catalog := books.NewRepository(db.DB)
	membership := members.NewRepository(db.DB)
	reports := transactions.NewRepository(db.DB)

	engine := circulation.NewService(db.DB,
		circulation.WithDailyFineRate(cfg.Circulation.DailyFineRate),
		circulation.WithLoanPeriod(cfg.Circulation.LoanPeriodDays),
	)

	var sweeper *scheduler.OverdueSweepScheduler
	if cfg.OverdueSweep.Enabled {
		sweeper = scheduler.NewOverdueSweepScheduler(reports, cfg.OverdueSweep.Schedule)
		if err := sweeper.Start(context.Background()); err != nil {
			log.Fatalf("Failed to start overdue sweep scheduler: %v", err)
		}
	} else {
		log.Printf("Overdue sweep scheduler: disabled (overdue status is refreshed at query time)")
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Database:    db,
		Catalog:     catalog,
		Membership:  membership,
		Circulation: engine,
		Reports:     reports,
		Version:     version,
	})

	onShutdown := func(ctx context.Context) {
		if sweeper != nil {
			sweeper.Stop()
		}
	}

	Serve(router, cfg, onShutdown)
}
