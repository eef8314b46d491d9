package config

import (
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// Load reads configurations from an optional TOML file, then applies
// environment-variable overrides on top. Every value has a development
// default so the server starts with no file at all.
func Load(path string) (Configs, error) {
	cfg := defaults()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Configs{}, err
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func defaults() Configs {
	return Configs{
		Env:      "local",
		LogLevel: "info",
		Database: DatabaseConfigs{
			Host:     "localhost",
			Port:     "3306",
			Database: "forumlab",
			User:     "root",
		},
		ApiServer: ServerConfigs{
			Host:           "0.0.0.0",
			Port:           "8080",
			AllowedOrigins: []string{"*"},
			RequestTimeout: 30 * time.Second,
			DefaultLimit:   20,
			MaxLimit:       50,
			RateLimit: RateLimitConfigs{
				PerMinute: 300,
				Burst:     50,
			},
		},
		Auth: AuthConfigs{
			TokenSecret:     "token-secret",
			AccessTokenName: "access_token",
			TokenExpiration: 24 * time.Hour,
		},
		Redis: RedisConfigs{Addr: "localhost:6379"},
		File: FileConfigs{
			MaxSize:  2 << 20, // 2MB
			MaxFiles: 5,
			Bucket:   "forumlab",
		},
		Search: SearchConfigs{MaxResults: 10},
		Chat:   ChatConfigs{SnowflakeNodeID: 1},
	}
}

func applyEnv(cfg *Configs) {
	setString(&cfg.Env, "ENV")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.LogPath, "LOG_PATH")

	setString(&cfg.Database.Host, "MYSQL_HOST")
	setString(&cfg.Database.Port, "MYSQL_PORT")
	setString(&cfg.Database.Database, "MYSQL_DATABASE")
	setString(&cfg.Database.User, "MYSQL_USER")
	setString(&cfg.Database.Password, "MYSQL_PASSWORD")

	setString(&cfg.ApiServer.Host, "API_HOST")
	setString(&cfg.ApiServer.Port, "API_PORT")

	setString(&cfg.Auth.TokenSecret, "TOKEN_SECRET")
	setDuration(&cfg.Auth.TokenExpiration, "TOKEN_EXPIRATION")

	setString(&cfg.Redis.Addr, "REDIS_ADDR")

	setString(&cfg.Storage.Region, "S3_REGION")
	setString(&cfg.Storage.Endpoint, "S3_ENDPOINT")
	setString(&cfg.Storage.PublicEndpoint, "S3_PUBLIC_ENDPOINT")
	setString(&cfg.Storage.AccessKey, "S3_ACCESS_KEY")
	setString(&cfg.Storage.SecretKey, "S3_SECRET_KEY")
	setString(&cfg.File.Bucket, "S3_BUCKET")

	setInt64(&cfg.Chat.SnowflakeNodeID, "CHAT_SNOWFLAKE_NODE_ID")
	setBool(&cfg.Report.DuplicateAsBadRequest, "REPORT_DUPLICATE_AS_BAD_REQUEST")
}

func setString(target *string, name string) {
	if v := os.Getenv(name); v != "" {
		*target = v
	}
}

func setInt64(target *int64, name string) {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*target = n
		}
	}
}

func setBool(target *bool, name string) {
	if v := os.Getenv(name); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*target = b
		}
	}
}

func setDuration(target *time.Duration, name string) {
	if v := os.Getenv(name); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*target = d
		}
	}
}
