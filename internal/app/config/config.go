package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	defaultHost           = "127.0.0.1"
	defaultPort           = 8080
	defaultYouTubeBaseURL = "https://youtube.googleapis.com/youtube/v3"
	defaultLoggerLevel    = "info"
)

// Config содержит все конфигурационные параметры релея
type Config struct {
	Host            string        `json:"host" env:"HOST" envDefault:"127.0.0.1"`
	Port            int           `json:"port" env:"PORT" envDefault:"8080"`
	YouTubeAPIKey   string        `json:"youtube_api_key" env:"YOUTUBE_API_KEY"`
	YouTubeBaseURL  string        `json:"youtube_api_url" env:"YOUTUBE_API_URL" envDefault:"https://youtube.googleapis.com/youtube/v3"`
	UpstreamTimeout time.Duration `json:"upstream_timeout" env:"UPSTREAM_TIMEOUT"`
	LoggerLevel     string        `json:"log_level" env:"LOG_LEVEL" envDefault:"info"`
	PprofAddress    string        `json:"pprof_address" env:"PPROF_ADDRESS"`
	ConfigFile      string        `json:"-" env:"CONFIG"`
}

// LoadConfig загружает конфигурацию из .env файла, переменных окружения,
// флагов командной строки и JSON конфиг файла.
// Некорректные значения (например, нечисловой PORT) приводят к панике.
func LoadConfig() *Config {
	config, err := Load(".env", flag.CommandLine, os.Args[1:])
	if err != nil {
		panic(err)
	}
	return config
}

// Load собирает конфигурацию, используя указанный .env файл и набор флагов
func Load(dotenvPath string, flags *flag.FlagSet, args []string) (*Config, error) {
	if err := loadDotenv(dotenvPath); err != nil {
		return nil, err
	}

	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, err
	}

	RegisterFlags(flags, config)
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	if config.ConfigFile != "" {
		fileConfig, err := loadConfigFromFile(config.ConfigFile)
		if err != nil {
			return nil, err
		}
		mergeConfigs(config, fileConfig)
	}

	return config, nil
}

// RegisterFlags добавляет флаги командной строки для параметров конфигурации.
// Значения из окружения используются как значения по умолчанию.
func RegisterFlags(flags *flag.FlagSet, config *Config) {
	flags.StringVar(&config.Host, "host", config.Host, "host to bind")
	flags.IntVar(&config.Port, "p", config.Port, "port to listen on")
	flags.StringVar(&config.YouTubeBaseURL, "u", config.YouTubeBaseURL, "YouTube Data API base URL")
	flags.DurationVar(&config.UpstreamTimeout, "t", config.UpstreamTimeout, "upstream request timeout, 0 means no timeout")
	flags.StringVar(&config.LoggerLevel, "l", config.LoggerLevel, "log level")
	flags.StringVar(&config.PprofAddress, "pprof", config.PprofAddress, "pprof listen address, empty disables it")
	flags.StringVar(&config.ConfigFile, "c", config.ConfigFile, "path to JSON config file")
}

// Address возвращает адрес для прослушивания в формате host:port
func (c *Config) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// loadDotenv не перезаписывает уже заданные переменные окружения
func loadDotenv(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// duration читается из JSON как строка time.ParseDuration ("5s")
// или как число наносекунд
type duration time.Duration

func (d *duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		v, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		*d = duration(v)
		return nil
	}

	var n int64
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("invalid duration %s", b)
	}
	*d = duration(n)
	return nil
}

// fileConfig перекрывает поле UpstreamTimeout встроенного Config
type fileConfig struct {
	Config
	UpstreamTimeout duration `json:"upstream_timeout"`
}

func loadConfigFromFile(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var fc fileConfig
	if err := json.NewDecoder(file).Decode(&fc); err != nil {
		return nil, err
	}

	cfg := fc.Config
	cfg.UpstreamTimeout = time.Duration(fc.UpstreamTimeout)
	return &cfg, nil
}

func (c *Config) isDefault(field string) bool {
	switch field {
	case "Host":
		return c.Host == defaultHost
	case "Port":
		return c.Port == defaultPort
	case "YouTubeAPIKey":
		return c.YouTubeAPIKey == ""
	case "YouTubeBaseURL":
		return c.YouTubeBaseURL == defaultYouTubeBaseURL
	case "UpstreamTimeout":
		return c.UpstreamTimeout == 0
	case "LoggerLevel":
		return c.LoggerLevel == defaultLoggerLevel
	case "PprofAddress":
		return c.PprofAddress == ""
	default:
		return false
	}
}

func mergeConfigs(dst, src *Config) {
	if src.Host != "" && dst.isDefault("Host") {
		dst.Host = src.Host
	}
	if src.Port != 0 && dst.isDefault("Port") {
		dst.Port = src.Port
	}
	if src.YouTubeAPIKey != "" && dst.isDefault("YouTubeAPIKey") {
		dst.YouTubeAPIKey = src.YouTubeAPIKey
	}
	if src.YouTubeBaseURL != "" && dst.isDefault("YouTubeBaseURL") {
		dst.YouTubeBaseURL = src.YouTubeBaseURL
	}
	if src.UpstreamTimeout != 0 && dst.isDefault("UpstreamTimeout") {
		dst.UpstreamTimeout = src.UpstreamTimeout
	}
	if src.LoggerLevel != "" && dst.isDefault("LoggerLevel") {
		dst.LoggerLevel = src.LoggerLevel
	}
	if src.PprofAddress != "" && dst.isDefault("PprofAddress") {
		dst.PprofAddress = src.PprofAddress
	}
}
