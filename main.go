package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"invoices-dashboard/cache"
	"invoices-dashboard/config"
	"invoices-dashboard/events/kafka"
	"invoices-dashboard/routes"
	"invoices-dashboard/services"

	"github.com/gin-gonic/gin"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := config.ConnectDB(cfg.DBDriver, cfg.DBURL)
	if err != nil {
		return err
	}
	defer func() {
		if err := config.CloseDB(db); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()
	log.Printf("Connected to %s database", cfg.DBDriver)

	if cfg.DBAutoMigrate {
		if err := config.Migrate(db); err != nil {
			return err
		}
	}

	var publishers services.Publishers
	if len(cfg.KafkaBrokers) > 0 {
		kp := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer kp.Close()
		publishers = append(publishers, kp)
		log.Printf("Publishing invoice events to %s", cfg.KafkaTopic)
	}
	if cfg.SMSEnabled() {
		publishers = append(publishers, services.NewSMSNotifier(
			cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioPhoneNumber, cfg.NotifyPhoneNumber))
		log.Println("SMS invoice alerts enabled")
	}

	views := cache.NewViewCache()
	var events services.EventPublisher
	if len(publishers) > 0 {
		events = publishers
	}

	revalidation := services.NewRevalidationService(views)
	if err := revalidation.StartScheduler(cfg.RevalidateCron); err != nil {
		return fmt.Errorf("invalid REVALIDATE_CRON %q: %w", cfg.RevalidateCron, err)
	}
	defer revalidation.Stop()

	r := routes.SetupRouter(routes.Dependencies{
		Config:  cfg,
		Queries: services.NewQueryService(db),
		Actions: services.NewActionService(db, views, events),
		Views:   views,
	})
	printRoutes(r)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh

		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("Server listening on %s", srv.Addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func printRoutes(r *gin.Engine) {
	for _, route := range r.Routes() {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
