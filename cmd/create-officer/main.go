package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/stemsi/orgportal-backend/internal/config"
	"github.com/stemsi/orgportal-backend/internal/database"
	"github.com/stemsi/orgportal-backend/internal/logger"
	"github.com/stemsi/orgportal-backend/internal/model"
	"github.com/stemsi/orgportal-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	officerRepo := repository.NewOfficerRepository(pool)

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create New Officer ===")

	// Username
	fmt.Print("Enter Username: ")
	username, _ := reader.ReadString('\n')
	username = strings.TrimSpace(username)
	if username == "" {
		fmt.Println("Error: Username is required")
		return
	}

	// Name
	fmt.Print("Enter Name: ")
	name, _ := reader.ReadString('\n')
	name = strings.TrimSpace(name)
	if name == "" {
		fmt.Println("Error: Name is required")
		return
	}

	// Position
	fmt.Print("Enter Position (default Pengurus): ")
	position, _ := reader.ReadString('\n')
	position = strings.TrimSpace(position)
	if position == "" {
		position = "Pengurus"
	}

	// Password
	fmt.Print("Enter Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		fmt.Println("\nError reading password")
		return
	}
	password := string(bytePassword)
	fmt.Println() // Newline after password input
	if len(password) < 6 {
		fmt.Println("Error: Password must be at least 6 characters")
		return
	}

	// ─── Logic ─────────────────────────────────────────────────────────

	// Hash Password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}

	newOfficer := &model.Officer{
		Username:     username,
		Name:         name,
		Position:     position,
		PasswordHash: string(hashedPassword),
	}

	if err := officerRepo.Create(ctx, newOfficer); err != nil {
		log.Fatal().Err(err).Msg("Failed to create officer")
	}

	fmt.Printf("\nSuccess! Officer '%s' (%s) created with ID: %d\n", newOfficer.Name, newOfficer.Username, newOfficer.ID)
}
