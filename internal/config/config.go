package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

var configLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	configLogger = l
}

// Config represents the complete configuration structure
type Config struct {
	Site    SiteConfig    `yaml:"site"`
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Theme   ThemeConfig   `yaml:"theme"`
	Editor  EditorConfig  `yaml:"editor"`
	Home    HomeConfig    `yaml:"home"`
	Logging LoggingConfig `yaml:"logging"`
}

type LoggingConfig struct {
	Level string `yaml:"level" default:"info"`
}

type SiteConfig struct {
	Name        string `yaml:"name" default:"Inkwell"`
	Description string `yaml:"description" default:"A personal blog"`
	Tagline     string `yaml:"tagline" default:"Words, carefully arranged"`
}

type ServerConfig struct {
	Host string `yaml:"host" default:"127.0.0.1"`
	Port string `yaml:"port" default:"12700"`
}

// StorageConfig selects the persistence backend for the durable
// key/value storage. Backend is one of "fs", "sqlite" or "s3".
type StorageConfig struct {
	Backend  string `yaml:"backend" default:"fs"`
	DataDir  string `yaml:"data_dir" default:"./data"`
	Compress bool   `yaml:"compress" default:"true"`

	SQLitePath string `yaml:"sqlite_path" default:"./database.db"`

	S3Bucket   string `yaml:"s3_bucket" default:""`
	S3Endpoint string `yaml:"s3_endpoint" default:""`
}

type ThemeConfig struct {
	Default            string       `yaml:"default" default:"dark"`
	AllowSwitching     bool         `yaml:"allow_switching" default:"true"`
	SyntaxHighlighting SyntaxConfig `yaml:"syntax_highlighting"`
}

type SyntaxConfig struct {
	DefaultDark  string `yaml:"default_dark" default:"gruvbox"`
	DefaultLight string `yaml:"default_light" default:"catppuccin-latte"`
}

// EditorConfig carries the editor session timings. Durations are in
// milliseconds so the values round-trip cleanly through YAML.
type EditorConfig struct {
	AutoSaveDelayMs   int `yaml:"auto_save_delay_ms" default:"2000"`
	SavingIndicatorMs int `yaml:"saving_indicator_ms" default:"1000"`
	SessionTTLMin     int `yaml:"session_ttl_min" default:"60"`
}

type HomeConfig struct {
	RecentPosts int `yaml:"recent_posts" default:"6"`
}

var AppConfig *Config

func LoadConfig(path string) error {
	config := &Config{}

	// Apply default values first
	applyDefaults(config)

	// Try to read and parse the config file
	data, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, just use defaults
		configLogger.Info().Str("path", path).Msg("Config file not found, using defaults")
		AppConfig = config
		return nil
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	AppConfig = config
	return nil
}

func ApplyDefaults(config interface{}) {
	applyDefaults(config)
}

func applyDefaults(config interface{}) {
	v := reflect.ValueOf(config)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return
	}

	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if !field.IsValid() || !field.CanSet() {
			continue
		}

		// Recursively apply defaults to nested structs
		if field.Kind() == reflect.Struct {
			applyDefaults(field.Addr().Interface())
			continue
		}

		defaultValue := fieldType.Tag.Get("default")
		if defaultValue == "" {
			continue
		}

		switch field.Kind() {
		case reflect.String:
			field.SetString(defaultValue)
		case reflect.Bool:
			if val, err := strconv.ParseBool(defaultValue); err == nil {
				field.SetBool(val)
			}
		case reflect.Int:
			if val, err := strconv.ParseInt(defaultValue, 10, 64); err == nil {
				field.SetInt(val)
			}
		case reflect.Float64:
			if val, err := strconv.ParseFloat(defaultValue, 64); err == nil {
				field.SetFloat(val)
			}
		case reflect.Slice:
			if field.Len() == 0 && field.Type().Elem().Kind() == reflect.String {
				parts := strings.Split(defaultValue, ",")
				slice := reflect.MakeSlice(field.Type(), len(parts), len(parts))
				for j, part := range parts {
					slice.Index(j).SetString(strings.TrimSpace(part))
				}
				field.Set(slice)
			}
		default:
			configLogger.Warn().
				Str("field_name", fieldType.Name).
				Str("field_type", field.Kind().String()).
				Msg("Unsupported field type for default value")
		}
	}
}
