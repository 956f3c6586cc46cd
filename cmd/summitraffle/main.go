package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/summitraffle/summitraffle/internal/app"
	"github.com/summitraffle/summitraffle/internal/auth"
	"github.com/summitraffle/summitraffle/internal/logger"
	"github.com/summitraffle/summitraffle/pkg/mailer"
	"github.com/summitraffle/summitraffle/pkg/payment"
	"github.com/summitraffle/summitraffle/web"
)

var (
	version = "dev"
)

func main() {
	port := flag.Int("port", 8081, "HTTP server port")
	dbPath := flag.String("db", "raffle.db", "SQLite database path")
	adminPw := flag.String("adminpw", "", "Admin password (auto-generated if not set)")
	logLevel := flag.String("loglevel", "info", "Log level (debug, info, warn, error)")
	paymentURL := flag.String("payment-url", "", "Payment gateway base URL (mock client if not set)")
	paymentKey := flag.String("payment-key", "", "Payment gateway secret key")
	smtpHost := flag.String("smtp-host", "", "SMTP relay host (email disabled if not set)")
	smtpPort := flag.Int("smtp-port", 587, "SMTP relay port")
	smtpFrom := flag.String("smtp-from", "raffle@localhost", "From address for outbound email")
	smtpUser := flag.String("smtp-user", "", "SMTP username")
	smtpPass := flag.String("smtp-pass", "", "SMTP password")
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `SummitRaffle - Raffle Ticketing System

Usage:
  summitraffle [options]

Options:
  -port int         HTTP server port (default 8081)
  -db string        SQLite database path (default "raffle.db")
  -adminpw str      Admin password (auto-generated if not set)
  -loglevel str     Log level: debug, info, warn, error (default "info")
  -payment-url str  Payment gateway base URL (mock client if not set)
  -payment-key str  Payment gateway secret key
  -smtp-host str    SMTP relay host (email disabled if not set)
  -smtp-port int    SMTP relay port (default 587)
  -smtp-from str    From address for outbound email
  -smtp-user str    SMTP username
  -smtp-pass str    SMTP password
  -version          Show version and exit
  -help             Show this help message

Examples:
  summitraffle                          # Run on port 8081 with raffle.db
  summitraffle -port 8080               # Run on port 8080
  summitraffle -db /data/raffle.db      # Use custom database path
  summitraffle -adminpw secret123       # Use specific admin password

`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("summitraffle %s\n", version)
		os.Exit(0)
	}

	// Setup admin authentication
	password := *adminPw
	if password == "" {
		password = auth.GeneratePassword()
	}
	sessions := auth.New(password)

	// Create logger with specified level
	appLog := logger.NewWithLevel(logger.ParseLevel(*logLevel))

	// Payment gateway: mock client keeps local development working without
	// gateway credentials.
	var payments payment.Client
	if *paymentURL != "" {
		payments = payment.NewHTTPClient(*paymentURL, *paymentKey, appLog)
	} else {
		appLog.Warn("No payment gateway configured, using mock client")
		payments = payment.NewMockClient()
	}

	// Mail: without a relay, notifications are stored but not emailed.
	var mail mailer.Mailer
	if *smtpHost != "" {
		mail = mailer.NewSMTPMailer(*smtpHost, *smtpPort, *smtpFrom, *smtpUser, *smtpPass, appLog)
	} else {
		appLog.Warn("No SMTP relay configured, email delivery disabled")
		mail = mailer.NewMockMailer()
	}

	a, err := app.New(appLog, *dbPath, payments, mail, web.GetTemplatesFS(), web.GetStaticFS(), sessions)
	if err != nil {
		log.Fatal("Failed to initialize application:", err)
	}
	defer a.Close()

	addr := fmt.Sprintf(":%d", *port)
	appLog.Info("Admin password", "password", password)

	if err := a.Run(addr); err != nil {
		log.Fatal(err)
	}
}
