// Package main provides a simple tool to generate credentials for local
// development: either a bearer token, or a signed Telegram init-data
// string suitable for POST /auth.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/toyxona/toycard/internal/auth"
)

func main() {
	userID := flag.String("user", "admin", "User ID for the token")
	telegramID := flag.Int64("telegram-id", 1, "Telegram account ID")
	name := flag.String("name", "Dev", "First name for init-data mode")
	secret := flag.String("secret", "", "JWT secret (or set JWT_SECRET env var)")
	botToken := flag.String("bot-token", "", "Bot token; when set, emit signed init data instead of a JWT")
	expiry := flag.Duration("expiry", 24*365*time.Hour, "Token expiry duration (default: 1 year)")
	flag.Parse()

	if *botToken != "" {
		initData, err := auth.SignInitData(auth.InitDataUser{
			ID:        *telegramID,
			FirstName: *name,
		}, *botToken, time.Now())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error signing init data: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(initData)
		return
	}

	jwtSecret := *secret
	if jwtSecret == "" {
		jwtSecret = os.Getenv("JWT_SECRET")
	}
	if jwtSecret == "" {
		fmt.Fprintln(os.Stderr, "Error: JWT secret required. Use -secret flag or set JWT_SECRET env var")
		fmt.Fprintln(os.Stderr, "Example: go run ./cmd/gentoken -secret 'your-secret-at-least-32-chars-long'")
		os.Exit(1)
	}
	if len(jwtSecret) < 32 {
		fmt.Fprintln(os.Stderr, "Error: JWT secret must be at least 32 characters")
		os.Exit(1)
	}

	cfg := &auth.Config{
		JWTSecret:   []byte(jwtSecret),
		TokenExpiry: *expiry,
	}

	svc := auth.NewService(cfg, nil)
	token, err := svc.GenerateToken(*userID, *telegramID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
}
