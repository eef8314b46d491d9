package config

import (
	"fmt"
	"time"

	"github.com/forumlab/backend/pkg/storage"
)

type Configs struct {
	Env      string
	LogLevel string
	LogPath  string

	Database  DatabaseConfigs
	ApiServer ServerConfigs
	Auth      AuthConfigs
	Redis     RedisConfigs
	Storage   storage.S3Configs
	File      FileConfigs
	Search    SearchConfigs
	Chat      ChatConfigs
	Report    ReportConfigs
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host           string
	Port           string
	AllowedOrigins []string
	RequestTimeout time.Duration
	DefaultLimit   int
	MaxLimit       int
	RateLimit      RateLimitConfigs
}

func (s *ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type RateLimitConfigs struct {
	PerMinute int
	Burst     int
}

type AuthConfigs struct {
	TokenSecret     string
	AccessTokenName string
	TokenExpiration time.Duration
}

type RedisConfigs struct {
	Addr string
}

type FileConfigs struct {
	MaxSize  int64
	MaxFiles int
	Bucket   string
}

type SearchConfigs struct {
	MaxResults int
}

type ChatConfigs struct {
	// SnowflakeNodeID distinguishes message id generators between instances.
	SnowflakeNodeID int64
}

type ReportConfigs struct {
	// DuplicateAsBadRequest reports a duplicate report as a client error.
	// The historical behavior, kept as the default, answers it with an
	// internal error status.
	DuplicateAsBadRequest bool
}
