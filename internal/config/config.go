package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fhuszti/catalog-media-go/internal/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// SignerSettings configure cmd/signer, the service issuing upload tickets.
type SignerSettings struct {
	ServerPort     int
	CloudName      string
	CloudAPIKey    string
	CloudAPISecret string
	AllowedFolders []string
	JWTPublicKey   string
	JWTIssuer      string
	JWTAudience    string
	RedisAddr      string
	RedisPassword  string
	RateLimit      int
	RateWindow     time.Duration
}

// StorageSettings configure cmd/devstorage, the local storage provider.
type StorageSettings struct {
	ServerPort     int
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	MinioBucket    string
	CloudName      string
	CloudAPIKey    string
	CloudAPISecret string
	PublicBaseURL  string
	TicketTTL      time.Duration
}

// ClientSettings configure cmd/upload-batch.
type ClientSettings struct {
	BackendURL          string
	ProviderUploadURL   string
	ProviderDeliveryURL string
	SessionToken        string
	MaxWidth            int
	Quality             float64
	MaxFiles            int
	Timeout             time.Duration
	MetricsAddr         string
}

func newViper() *viper.Viper {
	ctx := context.Background()
	if err := godotenv.Load(".env"); err != nil {
		logger.Debug(ctx, "No .env file found; proceeding with OS environment variables")
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetConfigFile(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		logger.Debugf(ctx, "could not read .env file: %v", err)
	}
	return v
}

func require(v *viper.Viper, keys ...string) error {
	for _, k := range keys {
		if !v.IsSet(k) || strings.TrimSpace(v.GetString(k)) == "" {
			return fmt.Errorf("%s is required", k)
		}
	}
	return nil
}

func LoadSigner() (*SignerSettings, error) {
	v := newViper()
	v.SetDefault("ALLOWED_FOLDERS", "products,categories")
	v.SetDefault("SIGNATURE_RATE_LIMIT", 30)
	v.SetDefault("SIGNATURE_RATE_WINDOW", 60)

	if err := require(v, "SERVER_PORT", "CLOUD_NAME", "CLOUD_API_KEY", "CLOUD_API_SECRET"); err != nil {
		return nil, err
	}

	folders := splitList(v.GetString("ALLOWED_FOLDERS"))
	if len(folders) == 0 {
		return nil, fmt.Errorf("ALLOWED_FOLDERS must name at least one folder")
	}
	limit := v.GetInt("SIGNATURE_RATE_LIMIT")
	if limit <= 0 {
		return nil, fmt.Errorf("SIGNATURE_RATE_LIMIT must be positive, got %d", limit)
	}

	return &SignerSettings{
		ServerPort:     v.GetInt("SERVER_PORT"),
		CloudName:      v.GetString("CLOUD_NAME"),
		CloudAPIKey:    v.GetString("CLOUD_API_KEY"),
		CloudAPISecret: v.GetString("CLOUD_API_SECRET"),
		AllowedFolders: folders,
		JWTPublicKey:   v.GetString("JWT_PUBLIC_KEY"),
		JWTIssuer:      v.GetString("JWT_ISSUER"),
		JWTAudience:    v.GetString("JWT_AUDIENCE"),
		RedisAddr:      v.GetString("REDIS_ADDR"),
		RedisPassword:  v.GetString("REDIS_PASSWORD"),
		RateLimit:      limit,
		RateWindow:     time.Duration(v.GetInt("SIGNATURE_RATE_WINDOW")) * time.Second,
	}, nil
}

func LoadStorage() (*StorageSettings, error) {
	v := newViper()
	v.SetDefault("MINIO_BUCKET", "media")
	v.SetDefault("TICKET_TTL", 3600)

	if err := require(v, "SERVER_PORT", "MINIO_ENDPOINT", "MINIO_ACCESS_KEY", "MINIO_SECRET_KEY", "CLOUD_NAME", "CLOUD_API_KEY", "CLOUD_API_SECRET"); err != nil {
		return nil, err
	}

	port := v.GetInt("SERVER_PORT")
	publicURL := v.GetString("PUBLIC_BASE_URL")
	if publicURL == "" {
		publicURL = fmt.Sprintf("http://localhost:%d", port)
	}

	return &StorageSettings{
		ServerPort:     port,
		MinioEndpoint:  v.GetString("MINIO_ENDPOINT"),
		MinioAccessKey: v.GetString("MINIO_ACCESS_KEY"),
		MinioSecretKey: v.GetString("MINIO_SECRET_KEY"),
		MinioUseSSL:    v.GetBool("MINIO_USE_SSL"),
		MinioBucket:    v.GetString("MINIO_BUCKET"),
		CloudName:      v.GetString("CLOUD_NAME"),
		CloudAPIKey:    v.GetString("CLOUD_API_KEY"),
		CloudAPISecret: v.GetString("CLOUD_API_SECRET"),
		PublicBaseURL:  publicURL,
		TicketTTL:      time.Duration(v.GetInt("TICKET_TTL")) * time.Second,
	}, nil
}

func LoadClient() (*ClientSettings, error) {
	v := newViper()
	v.SetDefault("UPLOAD_MAX_WIDTH", 1200)
	v.SetDefault("UPLOAD_QUALITY", 0.8)
	v.SetDefault("UPLOAD_MAX_FILES", 10)
	v.SetDefault("UPLOAD_TIMEOUT", 60)

	if err := require(v, "BACKEND_URL", "PROVIDER_UPLOAD_URL", "PROVIDER_DELIVERY_URL"); err != nil {
		return nil, err
	}

	q := v.GetFloat64("UPLOAD_QUALITY")
	if q <= 0 || q > 1 {
		return nil, fmt.Errorf("UPLOAD_QUALITY must be in (0, 1], got %v", q)
	}
	maxFiles := v.GetInt("UPLOAD_MAX_FILES")
	if maxFiles <= 0 {
		return nil, fmt.Errorf("UPLOAD_MAX_FILES must be positive, got %d", maxFiles)
	}

	return &ClientSettings{
		BackendURL:          v.GetString("BACKEND_URL"),
		ProviderUploadURL:   v.GetString("PROVIDER_UPLOAD_URL"),
		ProviderDeliveryURL: v.GetString("PROVIDER_DELIVERY_URL"),
		SessionToken:        v.GetString("SESSION_TOKEN"),
		MaxWidth:            v.GetInt("UPLOAD_MAX_WIDTH"),
		Quality:             q,
		MaxFiles:            maxFiles,
		Timeout:             time.Duration(v.GetInt("UPLOAD_TIMEOUT")) * time.Second,
		MetricsAddr:         v.GetString("METRICS_ADDR"),
	}, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
