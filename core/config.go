package core

import (
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Backend modes
const (
	BackendHTTP  = "http"
	BackendInMem = "inmem"
)

type (
	Config struct {
		Env          string
		Debug        bool
		TestMode     bool
		AppName      string
		Build        string
		RollbarToken string

		FrontendBaseURL string
		Server          ServerConfig
		Backend         BackendConfig
		Email           EmailConfig
	}

	ServerConfig struct {
		Host            string
		Address         string
		ShutdownTimeout time.Duration
	}

	// BackendConfig points at the REST services that own the school data.
	BackendConfig struct {
		Mode         string
		PersonasURL  string
		AcademicoURL string
		NotasURL     string
		Timeout      time.Duration
		MaxInFlight  int
	}

	EmailConfig struct {
		DefaultFromName    string
		DefaultFromAddress string
		SendgridAPIKey     string
	}
)

func (c *Config) DefaultFromEmail() mail.Address {
	return mail.Address{Name: c.Email.DefaultFromName, Address: c.Email.DefaultFromAddress}
}

func setDefaults(v *viper.Viper) {
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("appName", "Escuela")
	v.SetDefault("build", "dev")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("frontendBaseURL", "http://localhost:8000")

	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.address", ":8000")
	v.SetDefault("server.shutdownTimeout", 10*time.Second)

	v.SetDefault("backend.mode", BackendHTTP)
	v.SetDefault("backend.personasURL", "http://localhost:8081/api/personas")
	v.SetDefault("backend.academicoURL", "http://localhost:8081/api/academico")
	v.SetDefault("backend.notasURL", "http://localhost:8081/api/notas")
	v.SetDefault("backend.timeout", 15*time.Second)
	v.SetDefault("backend.maxInFlight", 4)

	v.SetDefault("email.defaultFromName", "Escuela")
	v.SetDefault("email.defaultFromAddress", "noreply@localhost")
	v.SetDefault("email.sendgridAPIKey", "")
}

// NewConfig reads the configuration from the environment.
// ENV selects the environment (DEV by default, TEST, QA, PROD) and the variable prefix,
// e.g. PROD_BACKEND_NOTASURL. `config/.env.<env>` is loaded first when it exists.
func NewConfig() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	env := strings.ToUpper(os.Getenv("ENV"))
	if env == "" {
		env = "DEV"
	}
	if env == "TEST" {
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "checking %s", dotEnvPath)
	}
	v.AutomaticEnv()

	conf := &Config{
		Env:             env,
		Debug:           v.GetBool("debug"),
		TestMode:        v.GetBool("testMode"),
		AppName:         v.GetString("appName"),
		Build:           v.GetString("build"),
		RollbarToken:    v.GetString("rollbarToken"),
		FrontendBaseURL: strings.TrimSuffix(v.GetString("frontendBaseURL"), "/"),
		Server: ServerConfig{
			Host:            v.GetString("server.host"),
			Address:         v.GetString("server.address"),
			ShutdownTimeout: v.GetDuration("server.shutdownTimeout"),
		},
		Backend: BackendConfig{
			Mode:         strings.ToLower(v.GetString("backend.mode")),
			PersonasURL:  v.GetString("backend.personasURL"),
			AcademicoURL: v.GetString("backend.academicoURL"),
			NotasURL:     v.GetString("backend.notasURL"),
			Timeout:      v.GetDuration("backend.timeout"),
			MaxInFlight:  v.GetInt("backend.maxInFlight"),
		},
		Email: EmailConfig{
			DefaultFromName:    v.GetString("email.defaultFromName"),
			DefaultFromAddress: v.GetString("email.defaultFromAddress"),
			SendgridAPIKey:     v.GetString("email.sendgridAPIKey"),
		},
	}

	switch conf.Backend.Mode {
	case BackendHTTP, BackendInMem:
	default:
		return nil, errors.Errorf("unknown backend mode %q", conf.Backend.Mode)
	}
	if conf.Backend.MaxInFlight < 1 {
		conf.Backend.MaxInFlight = 1
	}
	return conf, nil
}

// NewTestConfig returns the configuration used by tests: in-memory backend, debug off.
func NewTestConfig() *Config {
	v := viper.New()
	setDefaults(v)
	return &Config{
		Env:      "TEST",
		TestMode: true,
		AppName:  v.GetString("appName"),
		Build:    "test",
		Server: ServerConfig{
			Host:            "localhost",
			ShutdownTimeout: time.Second,
		},
		Backend: BackendConfig{
			Mode:        BackendInMem,
			Timeout:     time.Second,
			MaxInFlight: 4,
		},
		Email: EmailConfig{
			DefaultFromName:    v.GetString("email.defaultFromName"),
			DefaultFromAddress: v.GetString("email.defaultFromAddress"),
		},
		FrontendBaseURL: v.GetString("frontendBaseURL"),
	}
}
