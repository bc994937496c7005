package main

import (
	"fmt"

	identityapp "github.com/secondhandshop/backend/internal/application/identity"
	inquiryapp "github.com/secondhandshop/backend/internal/application/inquiry"
	"github.com/secondhandshop/backend/internal/domain/shared"
	"github.com/secondhandshop/backend/internal/infrastructure/auth"
	"github.com/secondhandshop/backend/internal/infrastructure/email"
	"github.com/secondhandshop/backend/internal/infrastructure/persistence"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

// seedCmd loads the mock catalog
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the mock catalog into the configured database",
	Long: `Insert the three mock categories and their sample products and images.

Rows are matched by slug, so running seed twice only adds what is missing.`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

// adminCmd groups admin account management
var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage admin accounts",
}

var (
	adminEmail    string
	adminName     string
	adminPassword string
)

// adminCreateCmd registers a new admin login
var adminCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an admin account",
	Args:  cobra.NoArgs,
	RunE:  runAdminCreate,
}

// emailsCmd groups inquiry email maintenance
var emailsCmd = &cobra.Command{
	Use:   "emails",
	Short: "Inspect and deliver inquiry notification emails",
}

// emailsFlushCmd delivers every due inquiry email once
var emailsFlushCmd = &cobra.Command{
	Use:   "flush",
	Short: "Send pending and failed inquiry emails that are due",
	Long: `Run one pass of the inquiry email retry job: every pending or failed
notification whose retry time has come is sent again. The API server runs
the same job on its cron schedule.`,
	Args: cobra.NoArgs,
	RunE: runEmailsFlush,
}

func init() {
	adminCreateCmd.Flags().StringVar(&adminEmail, "email", "", "Admin email (login)")
	adminCreateCmd.Flags().StringVar(&adminName, "name", "", "Display name")
	adminCreateCmd.Flags().StringVar(&adminPassword, "password", "", "Password (at least 8 characters)")
	_ = adminCreateCmd.MarkFlagRequired("email")
	_ = adminCreateCmd.MarkFlagRequired("name")
	_ = adminCreateCmd.MarkFlagRequired("password")
}

func runSeed(cmd *cobra.Command, _ []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	ctx, cancel := commandContext(cmd)
	defer cancel()

	_, db, err := openDatabase(ctx, log)
	if err != nil {
		return err
	}
	defer db.Close()

	result, err := persistence.Seed(ctx, db, shared.SystemClock{})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d categories, %d products, %d images\n",
		result.Categories, result.Products, result.Images)
	return nil
}

func runAdminCreate(cmd *cobra.Command, _ []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	ctx, cancel := commandContext(cmd)
	defer cancel()

	cfg, db, err := openDatabase(ctx, log)
	if err != nil {
		return err
	}
	defer db.Close()

	svc := identityapp.NewAdminAuthService(
		persistence.NewGormAdminUserRepository(db.DB),
		auth.NewJWTService(cfg.JWT),
		auth.NewBcryptHasher(bcrypt.DefaultCost),
		shared.SystemClock{},
		log,
	)
	admin, err := svc.CreateAdmin(ctx, identityapp.CreateAdminInput{
		DisplayName: adminName,
		Email:       adminEmail,
		Password:    adminPassword,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created admin %s (%s)\n", admin.Email, admin.ID)
	return nil
}

func runEmailsFlush(cmd *cobra.Command, _ []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	ctx, cancel := commandContext(cmd)
	defer cancel()

	cfg, db, err := openDatabase(ctx, log)
	if err != nil {
		return err
	}
	defer db.Close()

	if !cfg.Email.Enabled {
		return fmt.Errorf("email is disabled; set email.enabled to deliver inquiry notifications")
	}
	sender, err := email.NewSMTPEmailSender(cfg.Email, log)
	if err != nil {
		return err
	}

	svc := inquiryapp.NewEmailRetryService(
		persistence.NewGormInquiryRepository(db.DB),
		persistence.NewGormProductRepository(db.DB),
		sender,
		shared.SystemClock{},
		log,
	)
	svc.SetConfig(inquiryapp.EmailRetryConfig{
		BatchSize:     cfg.Email.BatchSize,
		MaxAttempts:   cfg.Email.MaxAttempts,
		RetryDelay:    cfg.Email.RetryDelay,
		MaxRetryDelay: cfg.Email.MaxRetryDelay,
	})

	result, err := svc.ProcessPending(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Processed %d inquiries: %d sent, %d failed\n",
		result.Processed, result.Sent, result.Failed)
	return nil
}