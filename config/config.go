package config

import (
	"fmt"
	"net/netip"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App     AppConfig
	DB      DBConfig
	Media   MediaConfig
	Storage StorageConfig
	Image   ImageConfig
	SMTP    SMTPConfig
	Redis   RedisConfig
	Admin   AdminConfig
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Backend {
	case StorageLocal:
	case StorageS3:
		if c.Storage.S3.Bucket == "" || c.Storage.S3.PublicURL == "" {
			return fmt.Errorf("storage backend s3 requires S3_BUCKET and S3_PUBLIC_URL")
		}
	case StorageCloudinary:
		if c.Storage.Cloudinary.CloudName == "" || c.Storage.Cloudinary.APIKey == "" || c.Storage.Cloudinary.APISecret == "" {
			return fmt.Errorf("storage backend cloudinary requires CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY and CLOUDINARY_API_SECRET")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.Storage.Backend)
	}
	for _, proxy := range c.App.Proxies() {
		if _, err := netip.ParsePrefix(proxy); err == nil {
			continue
		}
		if _, err := netip.ParseAddr(proxy); err != nil {
			return fmt.Errorf("TRUSTED_PROXIES: %q is not an IP or CIDR", proxy)
		}
	}
	if c.Image.Quality < 1 || c.Image.Quality > 100 {
		return fmt.Errorf("IMAGE_QUALITY must be within 1..100, got %d", c.Image.Quality)
	}
	if c.Image.MaxWidth < 1 {
		return fmt.Errorf("IMAGE_MAX_WIDTH must be positive, got %d", c.Image.MaxWidth)
	}
	if c.Image.MaxPixels < 1 {
		return fmt.Errorf("IMAGE_MAX_PIXELS must be positive, got %d", c.Image.MaxPixels)
	}
	return nil
}

type AppConfig struct {
	Env             string        `envconfig:"APP_ENV" default:"development"`
	Port            string        `envconfig:"PORT" default:"8080"`
	ServiceName     string        `envconfig:"SERVICE_NAME" default:"lumarise-api"`
	APIPrefix       string        `envconfig:"API_PREFIX" default:"/api"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat       string        `envconfig:"LOG_FORMAT" default:"json"`
	CORSOrigins     string        `envconfig:"CORS_ORIGINS"`
	TrustedProxies  string        `envconfig:"TRUSTED_PROXIES"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"15s"`
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, "production")
}

// Proxies lists the IPs and CIDRs allowed to set X-Forwarded-* headers.
// Empty means no proxy is trusted.
func (a AppConfig) Proxies() []string {
	var out []string
	for _, part := range strings.Split(a.TrustedProxies, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

type DBConfig struct {
	URL      string `envconfig:"DATABASE_URL"`
	MySQLURL string `envconfig:"MYSQL_URL"`
	User     string `envconfig:"DB_USER" default:"root"`
	Password string `envconfig:"DB_PASS"`
	Host     string `envconfig:"DB_HOST" default:"127.0.0.1"`
	Port     string `envconfig:"DB_PORT" default:"3306"`
	Name     string `envconfig:"DB_NAME" default:"hotel_db"`

	MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"30m"`
	SlowThreshold   time.Duration `envconfig:"DB_SLOW_THRESHOLD" default:"1s"`
}

type MediaConfig struct {
	Root      string `envconfig:"MEDIA_ROOT" default:"./media"`
	URLPrefix string `envconfig:"MEDIA_URL" default:"/media/"`
}

const (
	StorageLocal      = "local"
	StorageS3         = "s3"
	StorageCloudinary = "cloudinary"
)

type StorageConfig struct {
	Backend    string `envconfig:"STORAGE_BACKEND" default:"local"`
	S3         S3Config
	Cloudinary CloudinaryConfig
}

// S3Config also covers S3-compatible stores such as Cloudflare R2 via Endpoint.
type S3Config struct {
	Bucket    string `envconfig:"S3_BUCKET"`
	Region    string `envconfig:"S3_REGION" default:"auto"`
	Endpoint  string `envconfig:"S3_ENDPOINT"`
	AccessKey string `envconfig:"S3_ACCESS_KEY_ID"`
	SecretKey string `envconfig:"S3_SECRET_ACCESS_KEY"`
	PublicURL string `envconfig:"S3_PUBLIC_URL"`
}

type CloudinaryConfig struct {
	CloudName string `envconfig:"CLOUDINARY_CLOUD_NAME"`
	APIKey    string `envconfig:"CLOUDINARY_API_KEY"`
	APISecret string `envconfig:"CLOUDINARY_API_SECRET"`
	Folder    string `envconfig:"CLOUDINARY_FOLDER" default:"lumarise"`
}

type ImageConfig struct {
	MaxWidth  int `envconfig:"IMAGE_MAX_WIDTH" default:"1600"`
	Quality   int `envconfig:"IMAGE_QUALITY" default:"40"`
	MaxPixels int `envconfig:"IMAGE_MAX_PIXELS" default:"89478485"`
}

type SMTPConfig struct {
	Host      string        `envconfig:"SMTP_HOST"`
	Port      int           `envconfig:"SMTP_PORT" default:"587"`
	Username  string        `envconfig:"SMTP_USERNAME"`
	Password  string        `envconfig:"SMTP_PASSWORD"`
	FromName  string        `envconfig:"SMTP_FROM_NAME" default:"Lumarise Hotels"`
	FromEmail string        `envconfig:"SMTP_FROM_EMAIL"`
	Recipient string        `envconfig:"ENQUIRY_RECIPIENT"`
	Timeout   time.Duration `envconfig:"SMTP_TIMEOUT" default:"15s"`
}

// Configured reports whether outbound mail can actually be sent.
func (s SMTPConfig) Configured() bool {
	return s.Host != "" && s.Username != "" && s.Password != ""
}

type RedisConfig struct {
	URL            string        `envconfig:"REDIS_URL"`
	Window         time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`
	LoginLimit     int           `envconfig:"RATE_LIMIT_LOGIN" default:"10"`
	EnquiryLimit   int           `envconfig:"RATE_LIMIT_ENQUIRY" default:"5"`
	DialTimeout    time.Duration `envconfig:"REDIS_DIAL_TIMEOUT" default:"5s"`
	CommandTimeout time.Duration `envconfig:"REDIS_COMMAND_TIMEOUT" default:"2s"`
}

// AdminConfig seeds the first staff account when the admins table is empty.
type AdminConfig struct {
	Username string `envconfig:"ADMIN_USERNAME" default:"admin"`
	Password string `envconfig:"ADMIN_PASSWORD"`
}
