package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server ServerConfig
	Names  NamesConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	names, err := loadNamesConfig(server)
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, Names: names}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr string
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":8080" 或 "127.0.0.1:8080"。
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// NamesConfig describes the name source and membership seed.
type NamesConfig struct {
	BaseURL   string
	Path      string
	Timeout   time.Duration
	DataDir   string
	SeedFile  string
	WSEnabled bool
}

func loadNamesConfig(server ServerConfig) (NamesConfig, error) {
	timeoutSeconds := 10
	if override, err := parseOptionalIntEnv("NAMES_TIMEOUT"); err != nil {
		return NamesConfig{}, err
	} else if override != nil {
		if *override < 1 {
			return NamesConfig{}, fmt.Errorf("invalid NAMES_TIMEOUT value %d: must be positive", *override)
		}
		timeoutSeconds = *override
	}

	wsEnabled, err := parseBoolEnv("NAMES_WS_ENABLED", true)
	if err != nil {
		return NamesConfig{}, err
	}

	// NAMES_DATA_DIR set to an empty string disables static serving.
	dataDir := "data"
	if raw, ok := os.LookupEnv("NAMES_DATA_DIR"); ok {
		dataDir = strings.TrimSpace(raw)
	}

	return NamesConfig{
		BaseURL:   getEnvOrDefault("NAMES_BASE_URL", selfURL(server.Addr)),
		Path:      getEnvOrDefault("NAMES_PATH", "/data/names.json"),
		Timeout:   time.Duration(timeoutSeconds) * time.Second,
		DataDir:   dataDir,
		SeedFile:  strings.TrimSpace(os.Getenv("NAMES_SEED_FILE")),
		WSEnabled: wsEnabled,
	}, nil
}

// selfURL points the source at this server's own /data route.
func selfURL(addr string) string {
	host := addr
	if strings.HasPrefix(host, ":") {
		host = "127.0.0.1" + host
	}
	return "http://" + host
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
