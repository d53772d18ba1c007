package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"github.com/hartono/lending-engine/internal/config"
	"github.com/hartono/lending-engine/internal/repository"
	"github.com/hartono/lending-engine/internal/service"
)

func main() {
	log.Println("Starting lending scheduler...")

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	customerRepo := repository.NewCustomerRepository(db)
	loanRepo := repository.NewLoanRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	txRunner := repository.NewTxRunner(db)

	lendingService := service.NewLendingService(customerRepo, loanRepo, paymentRepo, txRunner, redisClient, cfg)

	// Initialize cron scheduler
	c := cron.New(cron.WithSeconds())

	// Daily reconciliation sweep (runs at midnight): flips ACTIVE loans
	// whose balance already reached zero to PAID_OFF.
	_, err = c.AddFunc("0 0 0 * * *", func() {
		log.Println("Running daily paid-off reconciliation sweep...")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		settled, err := lendingService.ReconcilePaidOff(ctx)
		if err != nil {
			log.Printf("Reconciliation sweep failed: %v", err)
			return
		}
		log.Printf("Reconciliation sweep settled %d loan(s)", settled)
	})
	if err != nil {
		log.Fatalf("Error scheduling reconciliation sweep: %v", err)
	}

	c.Start()
	log.Println("Scheduler started successfully")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down scheduler...")
	c.Stop()
	log.Println("Scheduler stopped")
}
