package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	apihttp "lookman/internal/adapter/http"
	"lookman/internal/adapter/repository/gormrepo"
	sessionstore "lookman/internal/adapter/session"
	"lookman/internal/config"
	"lookman/internal/domain/session"
	"lookman/internal/infrastructure/cache"
	"lookman/internal/infrastructure/db"
	"lookman/internal/usecase/admin"
	"lookman/internal/usecase/auth"
	"lookman/internal/usecase/borrower"
	loanuc "lookman/internal/usecase/loan"
	paymentuc "lookman/internal/usecase/payment"
	profileuc "lookman/internal/usecase/profile"
	"lookman/internal/usecase/report"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.OpenGorm(cfg)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	var sessions session.Store
	if cfg.RedisAddr != "" {
		rc, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		sessions = sessionstore.NewRedisStore(rc)
		log.Printf("sessions: redis at %s", cfg.RedisAddr)
	} else {
		sessions = sessionstore.NewMemoryStore()
		log.Print("sessions: in-memory store (REDIS_ADDR not set)")
	}

	users := gormrepo.NewUserRepository(gdb)
	borrowers := gormrepo.NewBorrowerRepository(gdb)
	loans := gormrepo.NewLoanRepository(gdb)
	payments := gormrepo.NewPaymentRepository(gdb)
	profiles := gormrepo.NewProfileRepository(gdb)
	txm := gormrepo.NewGormUoW(gdb)

	ttl := time.Duration(cfg.SessionTTLSecs) * time.Second
	authUC := auth.New(users, sessions, ttl)
	if err := authUC.Bootstrap(context.Background()); err != nil {
		log.Fatalf("bootstrap admin: %v", err)
	}

	h := apihttp.Handlers{
		Auth:     apihttp.NewAuthHandler(authUC, ttl),
		Borrower: apihttp.NewBorrowerHandler(borrower.New(borrowers, loans)),
		Loan: apihttp.NewLoanHandler(loanuc.New(loans, borrowers, payments, txm, loanuc.Defaults{
			DurationDays: cfg.DefaultLoanDurationDays,
			InterestRate: cfg.DefaultInterestRate,
		})),
		Payment: apihttp.NewPaymentHandler(paymentuc.New(payments, loans, borrowers, txm)),
		Report:  apihttp.NewReportHandler(report.New(users, borrowers, loans, payments)),
		Admin:   apihttp.NewAdminHandler(admin.New(users, loans)),
		Profile: apihttp.NewProfileHandler(profileuc.New(profiles)),
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger(), echomw.Recover())
	apihttp.RegisterRoutes(e, h, authUC)

	log.Fatal(e.Start(":" + cfg.AppPort))
}
