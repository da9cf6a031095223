package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/ilyakaznacheev/cleanenv"
)

// defaultJWTSecret mirrors the JWT_SECRET env-default tag; it is public and only fit for local use.
const defaultJWTSecret = "change-me-bus-tracker"

type Env struct {
	AppAddr string `yaml:"app_addr" env:"APP_ADDR" env-default:":5500"`
	GinMode string `yaml:"gin_mode" env:"GIN_MODE"`

	DBDriver      string `yaml:"db_driver" env:"DB_DRIVER" env-default:"mysql"`
	DBDSN         string `yaml:"db_dsn" env:"DB_DSN"`
	DBUser        string `yaml:"db_user" env:"DB_USER" env-default:"root"`
	DBPassword    string `yaml:"db_password" env:"DB_PASSWORD"`
	DBHost        string `yaml:"db_host" env:"DB_HOST" env-default:"127.0.0.1:3306"`
	DBName        string `yaml:"db_name" env:"DB_NAME" env-default:"bus_management"`
	DBAutoMigrate bool   `yaml:"db_auto_migrate" env:"DB_AUTO_MIGRATE" env-default:"false"`

	StaticDir string `yaml:"static_dir" env:"STATIC_DIR" env-default:"."`

	JWTSecret         string        `yaml:"jwt_secret" env:"JWT_SECRET" env-default:"change-me-bus-tracker"`
	TokenTTL          time.Duration `yaml:"token_ttl" env:"TOKEN_TTL" env-default:"24h"`
	AdminAuthRequired bool          `yaml:"admin_auth_required" env:"ADMIN_AUTH_REQUIRED" env-default:"false"`
	HashPasswords     bool          `yaml:"hash_passwords" env:"HASH_PASSWORDS" env-default:"true"`

	DemoStudentID      int64    `yaml:"demo_student_id" env:"DEMO_STUDENT_ID" env-default:"1"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-separator:","`
}

// LoadEnv reads CONFIG_PATH when set and overlays the environment on top of it.
func LoadEnv() (Env, error) {
	var env Env

	path := strings.TrimSpace(os.Getenv("CONFIG_PATH"))
	if path != "" {
		if err := cleanenv.ReadConfig(path, &env); err != nil {
			return Env{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&env); err != nil {
		return Env{}, fmt.Errorf("read env: %w", err)
	}

	env.DBDriver = strings.ToLower(strings.TrimSpace(env.DBDriver))
	if env.DBDriver == "" {
		env.DBDriver = "mysql"
	}
	switch env.DBDriver {
	case "mysql", "sqlite3":
	default:
		return Env{}, fmt.Errorf("unsupported DB_DRIVER %q", env.DBDriver)
	}
	if env.AdminAuthRequired {
		secret := strings.TrimSpace(env.JWTSecret)
		if secret == "" || secret == defaultJWTSecret {
			return Env{}, fmt.Errorf("ADMIN_AUTH_REQUIRED needs a non-default JWT_SECRET")
		}
	}
	if env.DemoStudentID <= 0 {
		return Env{}, fmt.Errorf("DEMO_STUDENT_ID must be positive")
	}
	return env, nil
}

// DSN returns DB_DSN when given, otherwise builds a MySQL DSN from the parts.
// clientFoundRows makes UPDATE report matched rows, so rewriting identical values is not a miss.
func (e Env) DSN() string {
	if strings.TrimSpace(e.DBDSN) != "" {
		return e.DBDSN
	}
	if e.DBDriver == "sqlite3" {
		return "file:bus_management.db?_foreign_keys=on"
	}

	cfg := mysql.NewConfig()
	cfg.User = e.DBUser
	cfg.Passwd = e.DBPassword
	cfg.Net = "tcp"
	cfg.Addr = e.DBHost
	cfg.DBName = e.DBName
	cfg.ParseTime = true
	cfg.ClientFoundRows = true
	cfg.Timeout = 5 * time.Second
	cfg.ReadTimeout = 30 * time.Second
	cfg.WriteTimeout = 30 * time.Second
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg.FormatDSN()
}

// Usage lists the recognised environment variables.
func Usage() string {
	var env Env
	text, err := cleanenv.GetDescription(&env, nil)
	if err != nil {
		return ""
	}
	return text
}
