package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Payment gateway (order creation + webhook capture flow)
	GatewayBaseURL       string `mapstructure:"GATEWAY_BASE_URL"`
	GatewayKeyID         string `mapstructure:"GATEWAY_KEY_ID"`
	GatewayKeySecret     string `mapstructure:"GATEWAY_KEY_SECRET"`
	GatewayWebhookSecret string `mapstructure:"GATEWAY_WEBHOOK_SECRET"`

	// WhatsApp messaging gateway
	WhatsAppGatewayURL   string `mapstructure:"WHATSAPP_GATEWAY_URL"`
	WhatsAppGatewayToken string `mapstructure:"WHATSAPP_GATEWAY_TOKEN"`
	WhatsAppCountryCode  string `mapstructure:"WHATSAPP_COUNTRY_CODE"`

	// Notification outbox worker
	DispatchInterval  time.Duration
	ReconcileInterval time.Duration

	// External OAuth Providers
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `mapstructure:"GOOGLE_REDIRECT_URL"`
	FrontendBaseURL    string `mapstructure:"FRONTEND_BASE_URL"`

	// Analytics
	PosthogAPIKey   string `mapstructure:"POSTHOG_API_KEY"`
	PosthogEndpoint string `mapstructure:"POSTHOG_ENDPOINT"`
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "institute-mgmt-app")
	viper.SetDefault("GATEWAY_BASE_URL", "https://api.razorpay.com")
	viper.SetDefault("GATEWAY_KEY_ID", "")
	viper.SetDefault("GATEWAY_KEY_SECRET", "")
	viper.SetDefault("GATEWAY_WEBHOOK_SECRET", "")
	viper.SetDefault("WHATSAPP_GATEWAY_URL", "")
	viper.SetDefault("WHATSAPP_GATEWAY_TOKEN", "")
	viper.SetDefault("WHATSAPP_COUNTRY_CODE", "+91")
	viper.SetDefault("DISPATCH_INTERVAL", "30s")
	viper.SetDefault("RECONCILE_INTERVAL", "10m")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "http://localhost:3000/auth/google/callback")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_ENDPOINT", "https://app.posthog.com")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour * 1
		if jwtExpiryStr != "" {
			log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
		}
	}

	jwtIssuer := viper.GetString("JWT_ISSUER")
	if jwtIssuer == "" {
		jwtIssuer = "institute-mgmt-app"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", jwtIssuer)
	}

	dispatchIntervalStr := viper.GetString("DISPATCH_INTERVAL")
	dispatchInterval, err := time.ParseDuration(dispatchIntervalStr)
	if err != nil {
		dispatchInterval = 30 * time.Second
		log.Printf("Warning: Invalid value for DISPATCH_INTERVAL ('%s'). Defaulting to %s.\n", dispatchIntervalStr, dispatchInterval.String())
	}

	reconcileIntervalStr := viper.GetString("RECONCILE_INTERVAL")
	reconcileInterval, err := time.ParseDuration(reconcileIntervalStr)
	if err != nil {
		reconcileInterval = 10 * time.Minute
		log.Printf("Warning: Invalid value for RECONCILE_INTERVAL ('%s'). Defaulting to %s.\n", reconcileIntervalStr, reconcileInterval.String())
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = jwtIssuer
	cfg.GatewayBaseURL = viper.GetString("GATEWAY_BASE_URL")
	cfg.GatewayKeyID = viper.GetString("GATEWAY_KEY_ID")
	cfg.GatewayKeySecret = viper.GetString("GATEWAY_KEY_SECRET")
	cfg.GatewayWebhookSecret = viper.GetString("GATEWAY_WEBHOOK_SECRET")
	cfg.WhatsAppGatewayURL = viper.GetString("WHATSAPP_GATEWAY_URL")
	cfg.WhatsAppGatewayToken = viper.GetString("WHATSAPP_GATEWAY_TOKEN")
	cfg.WhatsAppCountryCode = viper.GetString("WHATSAPP_COUNTRY_CODE")
	cfg.DispatchInterval = dispatchInterval
	cfg.ReconcileInterval = reconcileInterval
	cfg.GoogleClientID = viper.GetString("GOOGLE_CLIENT_ID")
	cfg.GoogleClientSecret = viper.GetString("GOOGLE_CLIENT_SECRET")
	cfg.GoogleRedirectURL = viper.GetString("GOOGLE_REDIRECT_URL")
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.PosthogEndpoint = viper.GetString("POSTHOG_ENDPOINT")

	if cfg.GatewayWebhookSecret == "" {
		log.Println("Warning: GATEWAY_WEBHOOK_SECRET not set. Payment webhooks will be rejected.")
	}
	if cfg.WhatsAppGatewayURL == "" {
		log.Println("Warning: WHATSAPP_GATEWAY_URL not set. Notification dispatch will fail.")
	}
	if cfg.GoogleClientID == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID not set. Google sign-in will not function.")
	}

	return cfg, nil
}
