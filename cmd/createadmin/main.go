package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"syscall"
	"time"

	"golang.org/x/term"

	"echo-server/internal/config"
	"echo-server/internal/domain"
	"echo-server/internal/repository"
	"echo-server/internal/service"
	"echo-server/pkg/hash"
)

// createadmin is the trusted provisioning path: the only place where
// an account is created with the admin flag set.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := repository.Open(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to MySQL: %v", err)
	}
	defer db.Close()

	if err := repository.Migrate(ctx, db); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}

	userRepo := repository.NewUserRepository(db)

	reader := bufio.NewReader(os.Stdin)

	username, err := prompt(reader, "Admin username: ")
	if err != nil {
		log.Fatalf("Failed to read username: %v", err)
	}

	email, err := prompt(reader, "Admin email: ")
	if err != nil {
		log.Fatalf("Failed to read email: %v", err)
	}

	password, err := promptPassword("Admin password: ")
	if err != nil {
		log.Fatalf("Failed to read password: %v", err)
	}

	confirm, err := promptPassword("Confirm password: ")
	if err != nil {
		log.Fatalf("Failed to read password: %v", err)
	}

	if password != confirm {
		log.Fatal("Passwords do not match")
	}

	req := &domain.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	}
	if msg := service.ValidateRegistration(req); msg != "" {
		log.Fatalf("Invalid input: %s", msg)
	}

	if exists, err := userRepo.UsernameExists(ctx, username); err != nil {
		log.Fatalf("Failed to check username: %v", err)
	} else if exists {
		log.Fatal("Username already exists")
	}

	if exists, err := userRepo.EmailExists(ctx, email); err != nil {
		log.Fatalf("Failed to check email: %v", err)
	} else if exists {
		log.Fatal("Email already registered")
	}

	hashedPassword, err := hash.Hash(password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	admin := &domain.User{
		Username:     username,
		Nickname:     username,
		Email:        email,
		PasswordHash: hashedPassword,
		Bio:          "Administrator account",
		Avatar:       domain.DefaultAvatar,
		IsAdmin:      true,
	}

	if err := userRepo.Create(ctx, admin); err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	fmt.Printf("Admin user %q created with id %d\n", admin.Username, admin.ID)
}

func prompt(reader *bufio.Reader, label string) (string, error) {
	fmt.Print(label)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func promptPassword(label string) (string, error) {
	fmt.Print(label)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(password), nil
}
