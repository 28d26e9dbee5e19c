package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "paycrest-backend/internal/adapter/http"
	appmw "paycrest-backend/internal/adapter/middleware"
	"paycrest-backend/internal/adapter/repository/mysql"
	"paycrest-backend/internal/adapter/storage"
	"paycrest-backend/internal/config"
	"paycrest-backend/internal/infrastructure/cache"
	"paycrest-backend/internal/infrastructure/db"
	authUsecase "paycrest-backend/internal/usecase/auth"
	"paycrest-backend/internal/usecase/creditscore"
	"paycrest-backend/internal/usecase/customer"
	kycUsecase "paycrest-backend/internal/usecase/kyc"
	"paycrest-backend/internal/usecase/ledger"
	loanUsecase "paycrest-backend/internal/usecase/loan"
	"paycrest-backend/internal/usecase/maintenance"
	settingsUsecase "paycrest-backend/internal/usecase/settings"
	"paycrest-backend/pkg/id"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	if err := mysql.Migrate(gdb); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	// repositories
	users := mysql.NewUserRepository(gdb)
	accounts := mysql.NewAccountRepository(gdb)
	txns := mysql.NewTransactionRepository(gdb)
	kycs := mysql.NewKYCRepository(gdb)
	loans := mysql.NewLoanRepository(gdb)
	sysSettings := mysql.NewSettingsRepository(gdb)
	uow := mysql.NewGormUoW(gdb)
	docs := storage.NewLocal(cfg.UploadsDir)

	// usecases
	ledgerUC := ledger.NewUsecase(uow, txns, cfg.DefaultIFSC)
	creditUC := creditscore.NewUsecase(uow)
	authUC := authUsecase.NewUsecase(users, uow, ledgerUC, cfg.JWTSecret, time.Duration(cfg.JWTExpireMinutes)*time.Minute)
	kycUC := kycUsecase.NewUsecase(kycs, loans, uow)
	loanUC := loanUsecase.NewUsecase(loans, uow, ledgerUC, creditUC, cfg.PermissiveTransitions)
	customerUC := customer.NewUsecase(users, accounts, kycs, loans)
	settingsUC := settingsUsecase.NewUsecase(sysSettings)
	scannerUC := maintenance.NewUsecase(loans, uow, creditUC)

	e := echo.New()
	e.HideBanner = true
	e.Use(
		echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: id.NewID32}),
		echomw.Logger(),
		echomw.Recover(),
	)
	e.Validator = httpadp.NewValidator()

	httpadp.RegisterRoutes(e, httpadp.Handlers{
		Health:       httpadp.NewHandler(),
		Auth:         httpadp.NewAuthHandler(authUC),
		Customer:     httpadp.NewCustomerHandler(customerUC, ledgerUC, kycUC, loanUC, docs),
		Manager:      httpadp.NewManagerHandler(loanUC),
		Verification: httpadp.NewVerificationHandler(kycUC, loanUC, docs),
		Admin:        httpadp.NewAdminHandler(loanUC, authUC, settingsUC, scannerUC),
		Authenticate: appmw.Authenticate(authUC),
		Idempotency:  appmw.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second),
	})

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
