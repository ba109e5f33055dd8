// Command adminctl manages the admin accounts and the database schema of the gallery site.
//
//	adminctl [-dsn DSN] migrate up|down
//	adminctl [-dsn DSN] create -name NAME -email EMAIL -password PASSWORD
package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"

	_ "github.com/go-sql-driver/mysql"
	"github.com/mabego/galeria/internal/config"
	"github.com/mabego/galeria/internal/migrations"
	"github.com/mabego/galeria/internal/models"
	"github.com/mabego/galeria/internal/validator"
	"go.uber.org/zap"
)

const MinPasswordChars = 8

var errUsage = errors.New("usage: adminctl [-dsn DSN] migrate up|down | create -name NAME -email EMAIL -password PASSWORD")

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(os.Args[1:], logger); err != nil {
		logger.Fatal("adminctl", zap.Error(err))
	}
}

func run(args []string, logger *zap.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("adminctl", flag.ContinueOnError)
	dsn := fs.String("dsn", cfg.DSN, "MySQL data source name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		return errUsage
	}

	db, err := sql.Open("mysql", *dsn)
	if err != nil {
		return fmt.Errorf("database pool initialization: %w", err)
	}
	defer db.Close()

	switch fs.Arg(0) {
	case "migrate":
		return migrate(db, fs.Args()[1:], logger)
	case "create":
		return create(&models.AdminModel{DB: db}, fs.Args()[1:], logger)
	default:
		return errUsage
	}
}

func migrate(db *sql.DB, args []string, logger *zap.Logger) error {
	if len(args) != 1 {
		return errUsage
	}

	switch args[0] {
	case "up":
		if err := migrations.Up(db); err != nil {
			return err
		}
	case "down":
		if err := migrations.Down(db); err != nil {
			return err
		}
	default:
		return errUsage
	}

	logger.Info("migrations applied", zap.String("direction", args[0]))
	return nil
}

func create(admins models.AdminModelInterface, args []string, logger *zap.Logger) error {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	name := fs.String("name", "", "Admin display name")
	email := fs.String("email", "", "Admin email address")
	password := fs.String("password", "", "Admin password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var v validator.Validator
	v.CheckField(validator.NotBlank(*name), "name", "cannot be blank")
	v.CheckField(validator.Matches(*email, validator.EmailRX), "email", "must be a valid email address")
	v.CheckField(validator.MinChars(*password, MinPasswordChars), "password", "must be at least 8 characters long")
	if !v.Valid() {
		return fmt.Errorf("invalid admin: %v", v.FieldErrors)
	}

	err := admins.Insert(*name, *email, *password)
	if err != nil {
		if errors.Is(err, models.ErrDuplicateEmail) {
			return fmt.Errorf("an admin with email %s already exists: %w", *email, err)
		}
		return err
	}

	logger.Info("admin created", zap.String("email", *email))
	return nil
}
