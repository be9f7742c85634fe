package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Port           string   `mapstructure:"port"`
		Env            string   `mapstructure:"env"`
		TrustedProxies []string `mapstructure:"trusted_proxies"`
	} `mapstructure:"app"`
	DB struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"db"`
	Auth struct {
		AdminAPIKey string `mapstructure:"admin_api_key"`
	} `mapstructure:"auth"`
	CORS struct {
		Origins string `mapstructure:"origins"`
	} `mapstructure:"cors"`
	// The subtree is not named rate_limit: AutomaticEnv would map that parent
	// key to RATE_LIMIT and the scalar would shadow both children.
	RateLimit struct {
		Limit  int `mapstructure:"requests"`
		Window int `mapstructure:"window_seconds"`
	} `mapstructure:"ratelimit"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
	} `mapstructure:"kafka"`
	Tracing struct {
		OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	} `mapstructure:"tracing"`
	Site struct {
		APIBase  string `mapstructure:"api_base"`
		URL      string `mapstructure:"url"`
		HTMLPath string `mapstructure:"html_path"`
	} `mapstructure:"site"`
	Migrate struct {
		SourceURL string `mapstructure:"source_url"`
		TargetURL string `mapstructure:"target_url"`
	} `mapstructure:"migrate"`
}

// RateWindow is the rate-limit window as a duration.
func (c Config) RateWindow() time.Duration {
	return time.Duration(c.RateLimit.Window) * time.Second
}

// CORSOrigins splits CORS_ORIGINS. A lone "*" means any origin.
func (c Config) CORSOrigins() []string {
	raw := strings.TrimSpace(c.CORS.Origins)
	if raw == "" || raw == "*" {
		return []string{"*"}
	}
	origins := make([]string, 0)
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// LoadConfig reads .env, an optional config.yaml from paths (default "."), and the environment.
func LoadConfig(paths ...string) (cfg Config, err error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	err = godotenv.Load()
	if err != nil {
		log.Println("warning: .env file not found, use default.")
	}

	v := viper.New()
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if err = v.ReadInConfig(); err != nil {
		log.Printf("note: config.yaml not found, read environment only. Error: %v", err)
	}

	v.SetDefault("app.port", "8000")
	v.SetDefault("app.env", "development")
	v.SetDefault("cors.origins", "*")
	v.SetDefault("ratelimit.requests", 60)
	v.SetDefault("ratelimit.window_seconds", 60)
	v.SetDefault("site.html_path", "frontend/index.html")
	v.SetDefault("migrate.source_url", "sqlite:///./meapi.db")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.BindEnv("app.port", "APP_PORT", "PORT")
	v.BindEnv("app.env", "APP_ENV")
	v.BindEnv("app.trusted_proxies", "TRUSTED_PROXIES")
	v.BindEnv("db.dsn", "DATABASE_URL", "DB_DSN")
	v.BindEnv("auth.admin_api_key", "ADMIN_API_KEY")
	v.BindEnv("cors.origins", "CORS_ORIGINS")
	v.BindEnv("ratelimit.requests", "RATE_LIMIT")
	v.BindEnv("ratelimit.window_seconds", "RATE_WINDOW")
	v.BindEnv("redis.addr", "REDIS_ADDR")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	v.BindEnv("tracing.otlp_endpoint", "OTLP_ENDPOINT")
	v.BindEnv("site.api_base", "API_BASE")
	v.BindEnv("site.url", "SITE_URL")
	v.BindEnv("site.html_path", "SITE_HTML_PATH")
	v.BindEnv("migrate.source_url", "SQLITE_URL")
	v.BindEnv("migrate.target_url", "TARGET_DATABASE_URL", "DATABASE_URL")

	err = v.Unmarshal(&cfg)
	return
}
