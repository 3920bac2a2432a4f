package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Env var aliases accepted for the Groq credential, checked in order.
// Helps when the variable is misnamed in a deployment.
var KeyAliases = []string{"GROQ_API_KEY", "GROQ_KEY", "GROQ_APIKEY", "GROQ_SECRET", "GROQ"}

var defaultFallbackModels = []string{
	"llama-3.1-70b-versatile",
	"llama-3.1-8b-instant",
	"mixtral-8x7b-32768",
}

type Config struct {
	AppEnv string `yaml:"appEnv"`

	Server struct {
		Port int `yaml:"port"`
		// AdminToken, when set, gates the stored-analyses listing.
		AdminToken string `yaml:"adminToken"`
	} `yaml:"server"`

	CORS struct {
		Origins []string `yaml:"origins"`
	} `yaml:"cors"`

	Upload struct {
		MaxMB int64 `yaml:"maxMB"`
	} `yaml:"upload"`

	Groq struct {
		APIKey         string   `yaml:"apiKey"`
		Model          string   `yaml:"model"`
		FallbackModels []string `yaml:"fallbackModels"`
		Temperature    float32  `yaml:"temperature"`
		TopP           float32  `yaml:"topP"`
		MaxRetries     int      `yaml:"maxRetries"`
	} `yaml:"groq"`

	Database struct {
		Driver   string `yaml:"driver"` // "mysql" or "postgres"; empty disables persistence
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
	} `yaml:"database"`

	Minio struct {
		Endpoint   string `yaml:"endpoint"`
		AccessKey  string `yaml:"accessKey"`
		SecretKey  string `yaml:"secretKey"`
		BucketName string `yaml:"bucketName"`
		Region     string `yaml:"region"`
		UseSSL     bool   `yaml:"useSSL"`
	} `yaml:"minio"`
}

// Load reads the optional yaml config file, then applies environment
// overrides. A missing file is fine: everything is env-drivable.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("APP_ENV"); v != "" {
		c.AppEnv = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Server.Port = n
		}
	}
	if v := os.Getenv("ADMIN_TOKEN"); v != "" {
		c.Server.AdminToken = v
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.CORS.Origins = splitList(v)
	}
	if v := os.Getenv("GROQ_MODEL"); v != "" {
		c.Groq.Model = v
	}
	if v := os.Getenv("GROQ_FALLBACK_MODELS"); v != "" {
		c.Groq.FallbackModels = splitList(v)
	}
	c.Groq.Temperature = floatEnv("GROQ_TEMPERATURE", c.Groq.Temperature)
	c.Groq.TopP = floatEnv("GROQ_TOP_P", c.Groq.TopP)

	for _, name := range KeyAliases {
		if v := os.Getenv(name); v != "" {
			c.Groq.APIKey = v
			break
		}
	}
}

func (c *Config) applyDefaults() {
	if c.AppEnv == "" {
		c.AppEnv = "dev"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if len(c.CORS.Origins) == 0 {
		c.CORS.Origins = []string{"http://localhost:5000", "http://127.0.0.1:5000"}
	}
	if c.Upload.MaxMB == 0 {
		c.Upload.MaxMB = 5
	}
	if c.Groq.Model == "" {
		c.Groq.Model = "llama-3.3-70b-versatile"
	}
	if len(c.Groq.FallbackModels) == 0 {
		c.Groq.FallbackModels = append([]string(nil), defaultFallbackModels...)
	}
	if c.Groq.Temperature == 0 {
		c.Groq.Temperature = 0.2
	}
	if c.Groq.TopP == 0 {
		c.Groq.TopP = 0.9
	}
	if c.Groq.MaxRetries == 0 {
		c.Groq.MaxRetries = 3
	}
}

// DevLike reports whether debug-only endpoints may be served.
func (c *Config) DevLike() bool {
	switch strings.ToLower(c.AppEnv) {
	case "dev", "local", "debug":
		return true
	}
	return false
}

func (c *Config) HasGroqKey() bool { return c.Groq.APIKey != "" }

// MaskedGroqKey returns a redacted form safe for diagnostics.
func (c *Config) MaskedGroqKey() string {
	k := c.Groq.APIKey
	if k == "" {
		return ""
	}
	if len(k) <= 10 {
		return "***"
	}
	return k[:6] + "..." + k[len(k)-4:]
}

func (c *Config) MaxUploadBytes() int64 { return c.Upload.MaxMB * 1024 * 1024 }

func (c *Config) DatabaseEnabled() bool { return c.Database.Driver != "" }

func (c *Config) MinioEnabled() bool { return c.Minio.Endpoint != "" }

// MySQLDSN builds the DSN for the mysql driver.
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
	)
}

// PostgresDSN builds the DSN for the pq driver.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func floatEnv(name string, def float32) float32 {
	raw := os.Getenv(name)
	if raw == "" {
		return def
	}
	f, err := strconv.ParseFloat(raw, 32)
	if err != nil {
		return def
	}
	return float32(f)
}
