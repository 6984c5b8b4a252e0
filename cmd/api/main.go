package main

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"

	"cprm/internal/mailer"
	"cprm/internal/mpesa"
	"cprm/internal/store"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var version = "1.0.0"

// NewLogger creates a new zap logger with color.
func NewLogger() (*zap.SugaredLogger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encoderCfg)
	level := zapcore.InfoLevel

	core := zapcore.NewCore(consoleEncoder, zapcore.NewMultiWriteSyncer(zapcore.AddSync(os.Stdout)), level)

	logger := zap.New(core)

	return logger.Sugar(), nil
}

// loadConfig collects every environment variable the server reads into one
// struct and fails fast when required fields are absent, instead of failing
// per request.
func loadConfig() (config, error) {
	cfg := config{
		addr:                ":" + envOr("PORT", "5000"),
		env:                 envOr("ENV", "development"),
		frontendURL:         os.Getenv("FRONTEND_URL"),
		siteName:            envOr("SITE_NAME", "CPRM"),
		contactRecipient:    os.Getenv("CONTACT_FORM_RECIPIENT"),
		newsletterRecipient: os.Getenv("NEWSLETTER_ADMIN_RECIPIENT"),
	}

	port, err := strconv.Atoi(envOr("EMAIL_PORT", "465"))
	if err != nil {
		return cfg, fmt.Errorf("invalid EMAIL_PORT: %w", err)
	}
	cfg.mail = mailConfig{
		host:        os.Getenv("EMAIL_HOST"),
		port:        port,
		secure:      os.Getenv("EMAIL_SECURE") == "true",
		username:    os.Getenv("EMAIL_USER"),
		password:    os.Getenv("EMAIL_PASS"),
		fromAddress: envOr("EMAIL_FROM_ADDRESS", os.Getenv("EMAIL_USER")),
	}

	cfg.mpesa = mpesa.Config{
		ConsumerKey:     os.Getenv("MPESA_CONSUMER_KEY"),
		ConsumerSecret:  os.Getenv("MPESA_CONSUMER_SECRET"),
		ShortCode:       os.Getenv("MPESA_BUSINESS_SHORTCODE"),
		Passkey:         os.Getenv("MPESA_PASSKEY"),
		TransactionType: os.Getenv("MPESA_TRANSACTION_TYPE"),
		CallbackBaseURL: os.Getenv("MPESA_CALLBACK_URL_BASE"),
		PartyB:          os.Getenv("MPESA_PARTYB"),
		Production:      cfg.env == "production",
	}

	required := map[string]string{
		"MPESA_CONSUMER_KEY":       cfg.mpesa.ConsumerKey,
		"MPESA_CONSUMER_SECRET":    cfg.mpesa.ConsumerSecret,
		"MPESA_BUSINESS_SHORTCODE": cfg.mpesa.ShortCode,
		"MPESA_PASSKEY":            cfg.mpesa.Passkey,
		"MPESA_TRANSACTION_TYPE":   cfg.mpesa.TransactionType,
		"MPESA_CALLBACK_URL_BASE":  cfg.mpesa.CallbackBaseURL,
		"EMAIL_HOST":               cfg.mail.host,
		"EMAIL_USER":               cfg.mail.username,
		"EMAIL_PASS":               cfg.mail.password,
		"CONTACT_FORM_RECIPIENT":   cfg.contactRecipient,
	}
	var missing []string
	for name, val := range required {
		if val == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return cfg, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := NewLogger()
	if err != nil {
		fmt.Println("Error creating logger:", err)
		return
	}
	defer logger.Sync()

	smtp, err := mailer.NewSMTPClient(mailer.SMTPConfig{
		Host:        cfg.mail.host,
		Port:        cfg.mail.port,
		Secure:      cfg.mail.secure,
		Username:    cfg.mail.username,
		Password:    cfg.mail.password,
		FromName:    cfg.siteName,
		FromAddress: cfg.mail.fromAddress,
		// Certificate verification stays on in production; development
		// environments behind intercepting proxies get a pass.
		InsecureSkipVerify: cfg.env != "production",
	})
	if err != nil {
		logger.Fatal(err)
	}

	app := &application{
		config:  cfg,
		logger:  logger,
		store:   store.NewStorage(),
		mailer:  smtp,
		gateway: mpesa.NewClient(cfg.mpesa),
	}

	logger.Infow("configuration loaded", "version", version, "env", cfg.env)

	mux := app.mount()

	logger.Fatal(app.run(mux))
}
