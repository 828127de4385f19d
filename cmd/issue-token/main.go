package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"course-gate.backend/internal/config"
	"course-gate.backend/internal/domain/entities"
	domainerrors "course-gate.backend/internal/domain/errors"
	"course-gate.backend/internal/infrastructure/models"
	"course-gate.backend/internal/infrastructure/repositories"
	"course-gate.backend/internal/usecases"
)

// issue-token mints a student access token from the command line, for
// admins who prefer a shell over the HTTP surface.

var openIssueTokenDB = func(cfg config.DatabaseConfig) (*gorm.DB, error) {
	if cfg.Driver == "sqlite" {
		return gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{})
	}
	return gorm.Open(postgres.New(postgres.Config{DSN: cfg.URL(), PreferSimpleProtocol: true}), &gorm.Config{PrepareStmt: false})
}

var openIssueTokenSQLDB = func(db *gorm.DB) (io.Closer, error) {
	return db.DB()
}

type issueTokenRuntime interface {
	IssueToken(ctx context.Context, email string) (*entities.IssueTokenResult, error)
}

type issueTokenDeps struct {
	loadEnv func() error
	loadCfg func() *config.Config
	prepare func(cfg *config.Config) (issueTokenRuntime, io.Closer, error)
	out     io.Writer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func defaultIssueTokenDeps() issueTokenDeps {
	return issueTokenDeps{
		loadEnv: func() error { return godotenv.Load() },
		loadCfg: config.Load,
		prepare: func(cfg *config.Config) (issueTokenRuntime, io.Closer, error) {
			db, err := openIssueTokenDB(cfg.Database)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to connect db: %w", err)
			}

			sqlDB, err := openIssueTokenSQLDB(db)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to init sql db: %w", err)
			}

			if err := db.AutoMigrate(&models.Student{}, &models.LoginHistory{}); err != nil {
				return nil, nil, fmt.Errorf("failed to migrate: %w", err)
			}

			studentRepo := repositories.NewStudentRepository(db)
			historyRepo := repositories.NewLoginHistoryRepository(db)
			uow := repositories.NewUnitOfWork(db)
			tokenUsecase := usecases.NewTokenUsecase(studentRepo, historyRepo, uow, nil, cfg.Token.ExpiryDays, cfg.Token.RedirectTarget)
			return tokenUsecase, sqlDB, nil
		},
		out: os.Stdout,
	}
}

func runIssueToken(args []string, deps issueTokenDeps) error {
	if deps.loadEnv == nil {
		deps.loadEnv = func() error { return godotenv.Load() }
	}
	if deps.loadCfg == nil {
		deps.loadCfg = config.Load
	}
	if deps.prepare == nil {
		def := defaultIssueTokenDeps()
		deps.prepare = def.prepare
	}
	if deps.out == nil {
		deps.out = os.Stdout
	}

	fs := flag.NewFlagSet("issue-token", flag.ContinueOnError)
	emailFlag := fs.String("email", "", "student email (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *emailFlag == "" {
		return fmt.Errorf("--email is required")
	}

	if err := deps.loadEnv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := deps.loadCfg()
	runtime, closer, err := deps.prepare(cfg)
	if err != nil {
		return err
	}
	if closer == nil {
		closer = nopCloser{}
	}
	defer closer.Close()

	result, err := runtime.IssueToken(context.Background(), *emailFlag)
	if errors.Is(err, domainerrors.ErrAlreadyActive) {
		_, _ = fmt.Fprintln(deps.out, "Student already has an active token")
		_, _ = fmt.Fprintf(deps.out, "TOKEN=%s\n", result.Token)
		_, _ = fmt.Fprintf(deps.out, "expires_at=%s\n", result.ExpiresAt.Format("2006-01-02 15:04:05"))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed issuing token: %w", err)
	}

	_, _ = fmt.Fprintln(deps.out, "Issued student access token")
	_, _ = fmt.Fprintf(deps.out, "email=%s\n", *emailFlag)
	_, _ = fmt.Fprintf(deps.out, "TOKEN=%s\n", result.Token)
	_, _ = fmt.Fprintf(deps.out, "expires_at=%s\n", result.ExpiresAt.Format("2006-01-02 15:04:05"))
	return nil
}

func main() {
	if err := runIssueToken(os.Args[1:], defaultIssueTokenDeps()); err != nil {
		log.Fatal(err)
	}
}
