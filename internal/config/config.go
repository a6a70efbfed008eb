package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Admin     AdminConfig     `yaml:"admin"`
	File      FileConfig      `yaml:"file"`
	ImageHost ImageHostConfig `yaml:"imagehost"`
	IPLookup  IPLookupConfig  `yaml:"iplookup"`
	Frontend  FrontendConfig  `yaml:"frontend"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Port int    `yaml:"port"`
	Mode string `yaml:"mode"`
}

type DatabaseConfig struct {
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

type AdminConfig struct {
	Password string `yaml:"password"`
}

type FileConfig struct {
	MaxImageSize      int64    `yaml:"max_image_size"`
	AllowedImageTypes []string `yaml:"allowed_image_types"`
}

type ImageHostConfig struct {
	URL    string `yaml:"url"`
	APIKey string `yaml:"api_key"`
}

type IPLookupConfig struct {
	URL            string `yaml:"url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type FrontendConfig struct {
	BaseURL string `yaml:"base_url"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max_size"`
	MaxAge     int    `yaml:"max_age"`
	MaxBackups int    `yaml:"max_backups"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	// 首先尝试从 YAML 文件加载
	if data, err := os.ReadFile("configs/config.yaml"); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	// 然后从环境变量覆盖
	cfg.overrideFromEnv()

	// 设置默认值
	cfg.setDefaults()

	return cfg, nil
}

func (c *Config) overrideFromEnv() {
	// Database
	if val := os.Getenv("DATABASE_URL"); val != "" {
		c.Database.URL = val
	}
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		if port, err := strconv.Atoi(val); err == nil {
			c.Database.Port = port
		}
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.DBName = val
	}

	// Admin
	if val := os.Getenv("ADMIN_PASSWORD"); val != "" {
		c.Admin.Password = val
	}

	// Server
	if val := os.Getenv("SERVER_PORT"); val != "" {
		if port, err := strconv.Atoi(val); err == nil {
			c.Server.Port = port
		}
	}
	if val := os.Getenv("GIN_MODE"); val != "" {
		c.Server.Mode = val
	}

	// File
	if val := os.Getenv("MAX_IMAGE_SIZE"); val != "" {
		if size, err := strconv.ParseInt(val, 10, 64); err == nil {
			c.File.MaxImageSize = size
		}
	}

	// 图床
	if val := os.Getenv("IMAGE_HOST_URL"); val != "" {
		c.ImageHost.URL = val
	}
	if val := os.Getenv("IMAGE_HOST_API_KEY"); val != "" {
		c.ImageHost.APIKey = val
	}

	// IP 查询
	if val := os.Getenv("IP_LOOKUP_URL"); val != "" {
		c.IPLookup.URL = val
	}

	// Frontend
	if val := os.Getenv("FRONTEND_URL"); val != "" {
		c.Frontend.BaseURL = val
	}
}

func (c *Config) setDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Mode == "" {
		c.Server.Mode = "debug"
	}

	if c.Database.Host == "" {
		c.Database.Host = "localhost"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}

	if c.File.MaxImageSize == 0 {
		c.File.MaxImageSize = 33554432 // 32MB
	}
	if len(c.File.AllowedImageTypes) == 0 {
		c.File.AllowedImageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}
	}

	if c.ImageHost.URL == "" {
		c.ImageHost.URL = "https://api.imgbb.com/1/upload"
	}

	if c.IPLookup.URL == "" {
		c.IPLookup.URL = "https://api.ipify.org?format=json"
	}
	if c.IPLookup.TimeoutSeconds == 0 {
		c.IPLookup.TimeoutSeconds = 10
	}

	if c.Frontend.BaseURL == "" {
		c.Frontend.BaseURL = "http://localhost:3000"
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.File == "" {
		c.Log.File = "./logs/app.log"
	}
}

func (c *Config) GetDSN() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host, c.Database.Port, c.Database.User,
		c.Database.Password, c.Database.DBName, c.Database.SSLMode)
}

func (c *Config) IsAllowedImageType(mimeType string) bool {
	mimeType = strings.ToLower(mimeType)
	for _, allowedType := range c.File.AllowedImageTypes {
		if mimeType == allowedType {
			return true
		}
	}
	return false
}
