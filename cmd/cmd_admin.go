package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/itsatony/stationhub/internal/database"
	"github.com/itsatony/stationhub/internal/server"
	"github.com/spf13/cobra"
	nuts "github.com/vaudience/go-nuts"
	"golang.org/x/term"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE:  runMigrate,
}

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Admin account management",
}

var createAdminCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new admin user",
	RunE:  runCreateAdmin,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(adminCmd)
	adminCmd.AddCommand(createAdminCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	db, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := server.Migrate(db); err != nil {
		return err
	}
	nuts.L.Infof("[Main] Migrations applied (%s)", cfg.Database.Driver)
	return nil
}

func runCreateAdmin(cmd *cobra.Command, args []string) error {
	reader := bufio.NewReader(os.Stdin)

	username, err := prompt(reader, "Enter username: ")
	if err != nil {
		return err
	}
	email, err := prompt(reader, "Enter email: ")
	if err != nil {
		return err
	}

	fmt.Print("Enter password: ")
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	fmt.Println()

	fmt.Print("Confirm password: ")
	confirmBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return fmt.Errorf("failed to read password confirmation: %w", err)
	}
	fmt.Println()

	if string(passwordBytes) != string(confirmBytes) {
		return fmt.Errorf("passwords do not match")
	}

	srv := server.New(cfg)
	defer srv.Close()
	if err := srv.Init(cmd.Context()); err != nil {
		return err
	}

	user, created, err := srv.Service().EnsureAdmin(cmd.Context(), username, email, string(passwordBytes))
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}
	if !created {
		return fmt.Errorf("user %s already exists", user.Username)
	}

	fmt.Printf("Admin created successfully!\n")
	fmt.Printf("ID: %s\n", user.ID)
	fmt.Printf("Username: %s\n", user.Username)
	fmt.Printf("Created: %s\n", user.CreatedAt.Format("2006-01-02 15:04:05"))
	return nil
}

func prompt(reader *bufio.Reader, label string) (string, error) {
	fmt.Print(label)
	value, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%s cannot be empty", strings.TrimSuffix(strings.TrimPrefix(label, "Enter "), ": "))
	}
	return value, nil
}
