package main

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dmitrymomot/xcstrings/pkg/storage"
)

// Configuration keys. Flags with the same name override the environment.
const (
	keyPath              = "path"
	keyRoot              = "root"
	keySourceLanguage    = "source-language"
	keyLogLevel          = "log-level"
	keyLogFormat         = "log-format"
	keySentryDSN         = "sentry-dsn"
	keySentryEnv         = "sentry-environment"
	keyHost              = "host"
	keyPort              = "port"
	keyRefresh           = "refresh"
	keyRequestTimeout    = "request-timeout"
	keyShutdownTimeout   = "shutdown-timeout"
	keyMirrorBucket      = "mirror.bucket"
	keyMirrorAccessKey   = "mirror.access-key"
	keyMirrorSecretKey   = "mirror.secret-key"
	keyMirrorEndpoint    = "mirror.endpoint"
	keyMirrorRegion      = "mirror.region"
	keyMirrorPathStyle   = "mirror.path-style"
	keyMirrorPrefix      = "mirror.prefix"
	keyMirrorKeepHistory = "mirror.keep-history"
	keyMirrorTimeout     = "mirror.timeout"
)

// envBindings lists the variables read for each key, first match wins.
var envBindings = map[string][]string{
	keyPath:              {"STRINGS_PATH", "XCSTRINGS_PATH"},
	keyRoot:              {"STRINGS_ROOT", "XCSTRINGS_ROOT"},
	keySourceLanguage:    {"XCSTRINGS_SOURCE_LANGUAGE"},
	keyLogLevel:          {"LOG_LEVEL", "XCSTRINGS_LOG_LEVEL"},
	keyLogFormat:         {"LOG_FORMAT", "XCSTRINGS_LOG_FORMAT"},
	keySentryDSN:         {"SENTRY_DSN"},
	keySentryEnv:         {"SENTRY_ENVIRONMENT"},
	keyHost:              {"WEB_HOST", "XCSTRINGS_WEB_HOST"},
	keyPort:              {"WEB_PORT", "XCSTRINGS_WEB_PORT"},
	keyRefresh:           {"DISCOVERY_REFRESH"},
	keyRequestTimeout:    {"REQUEST_TIMEOUT"},
	keyShutdownTimeout:   {"SHUTDOWN_TIMEOUT"},
	keyMirrorBucket:      {"MIRROR_BUCKET"},
	keyMirrorAccessKey:   {"MIRROR_ACCESS_KEY"},
	keyMirrorSecretKey:   {"MIRROR_SECRET_KEY"},
	keyMirrorEndpoint:    {"MIRROR_ENDPOINT"},
	keyMirrorRegion:      {"MIRROR_REGION"},
	keyMirrorPathStyle:   {"MIRROR_PATH_STYLE"},
	keyMirrorPrefix:      {"MIRROR_PREFIX"},
	keyMirrorKeepHistory: {"MIRROR_KEEP_HISTORY"},
	keyMirrorTimeout:     {"MIRROR_TIMEOUT"},
}

// settings is the resolved configuration of one invocation.
type settings struct {
	Path            string
	Root            string
	SourceLanguage  string
	LogLevel        string
	LogFormat       string
	SentryDSN       string
	SentryEnv       string
	Host            string
	Refresh         string
	Mirror          storage.Config
	Port            int
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// Addr joins host and port.
func (s settings) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// MirrorEnabled reports whether a mirror bucket is configured.
func (s settings) MirrorEnabled() bool {
	return s.Mirror.Bucket != ""
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyLogFormat, "json")
	v.SetDefault(keyHost, "127.0.0.1")
	v.SetDefault(keyPort, 8787)
	v.SetDefault(keyRequestTimeout, 30*time.Second)
	v.SetDefault(keyShutdownTimeout, 30*time.Second)
	for key, envs := range envBindings {
		_ = v.BindEnv(append([]string{key}, envs...)...)
	}
	return v
}

// bindFlags lets every flag of cmd override the key of the same name.
func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("bind flags: %w", err)
	}
	return nil
}

func loadSettings(v *viper.Viper) settings {
	return settings{
		Path:            v.GetString(keyPath),
		Root:            v.GetString(keyRoot),
		SourceLanguage:  v.GetString(keySourceLanguage),
		LogLevel:        v.GetString(keyLogLevel),
		LogFormat:       v.GetString(keyLogFormat),
		SentryDSN:       v.GetString(keySentryDSN),
		SentryEnv:       v.GetString(keySentryEnv),
		Host:            v.GetString(keyHost),
		Port:            v.GetInt(keyPort),
		Refresh:         v.GetString(keyRefresh),
		RequestTimeout:  v.GetDuration(keyRequestTimeout),
		ShutdownTimeout: v.GetDuration(keyShutdownTimeout),
		Mirror: storage.Config{
			Bucket:      v.GetString(keyMirrorBucket),
			AccessKey:   v.GetString(keyMirrorAccessKey),
			SecretKey:   v.GetString(keyMirrorSecretKey),
			Endpoint:    v.GetString(keyMirrorEndpoint),
			Region:      v.GetString(keyMirrorRegion),
			PathStyle:   v.GetBool(keyMirrorPathStyle),
			Prefix:      v.GetString(keyMirrorPrefix),
			KeepHistory: v.GetBool(keyMirrorKeepHistory),
			Timeout:     v.GetDuration(keyMirrorTimeout),
		},
	}
}
