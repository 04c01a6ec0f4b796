package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Host string
	Port string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string

	MongoURI string
	MongoDB  string

	AccessTokenSecret          string
	RefreshTokenSecret         string
	EmailVerifyTokenSecret     string
	ForgotPasswordTokenSecret  string
	AccessTokenExpiresIn       time.Duration
	RefreshTokenExpiresIn      time.Duration
	EmailVerifyTokenExpiresIn  time.Duration
	ForgotPasswordTokenExpires time.Duration

	AWSRegion     string
	S3Bucket      string
	S3Region      string
	CloudFrontURL string
	SESEmail      string
	SNSFCMArn     string

	AdminEmail  string
	ClientURL   string
	CORSOrigins []string

	CronTrackingSpec string
	Timezone         string
}

// Load reads .env (when present) and the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	region := env("AWS_REGION", "ap-southeast-1")
	return &Config{
		Host: env("HOST", "0.0.0.0"),
		Port: env("PORT", "4000"),

		DBHost:     env("DB_HOST", "localhost"),
		DBUser:     env("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     env("DB_NAME", "health_app"),
		DBPort:     env("DB_PORT", "5432"),
		DBSSLMode:  env("DB_SSLMODE", "disable"),

		MongoURI: env("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:  env("MONGO_DB", "health_app"),

		AccessTokenSecret:          os.Getenv("JWT_SECRET_ACCESS_TOKEN"),
		RefreshTokenSecret:         os.Getenv("JWT_SECRET_REFRESH_TOKEN"),
		EmailVerifyTokenSecret:     os.Getenv("JWT_SECRET_EMAIL_VERIFY_TOKEN"),
		ForgotPasswordTokenSecret:  os.Getenv("JWT_SECRET_FORGOT_PASSWORD_TOKEN"),
		AccessTokenExpiresIn:       duration("ACCESS_TOKEN_EXPIRES_IN", 15*time.Minute),
		RefreshTokenExpiresIn:      duration("REFRESH_TOKEN_EXPIRES_IN", 100*24*time.Hour),
		EmailVerifyTokenExpiresIn:  duration("EMAIL_VERIFY_TOKEN_EXPIRES_IN", 7*24*time.Hour),
		ForgotPasswordTokenExpires: duration("FORGOT_PASSWORD_TOKEN_EXPIRES_IN", 7*24*time.Hour),

		AWSRegion:     region,
		S3Bucket:      os.Getenv("S3_BUCKET"),
		S3Region:      env("S3_REGION", region),
		CloudFrontURL: os.Getenv("CLOUDFRONT_URL"),
		SESEmail:      os.Getenv("SES_EMAIL"),
		SNSFCMArn:     os.Getenv("SNS_FCM_ARN"),

		AdminEmail:  os.Getenv("ADMIN_EMAIL"),
		ClientURL:   env("CLIENT_URL", "http://localhost:3000"),
		CORSOrigins: list("CORS_ORIGINS", "*"),

		CronTrackingSpec: env("CRON_TRACKING_SPEC", "0 0 * * *"),
		Timezone:         env("TIMEZONE", "Asia/Ho_Chi_Minh"),
	}
}

func (c *Config) Addr() string { return c.Host + ":" + c.Port }

func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}

// Location falls back to UTC when TIMEZONE is not a known zone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("unknown TIMEZONE %q, using UTC", c.Timezone)
		return time.UTC
	}
	return loc
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func duration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %s", key, v, def)
		return def
	}
	return d
}

func list(key, def string) []string {
	var out []string
	for _, p := range strings.Split(env(key, def), ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
