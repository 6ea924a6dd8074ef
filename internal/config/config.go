package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultLoginRememberFor es el remember_for que se manda a Hydra al aceptar
// un login con sesión de Kratos (36000s).
const DefaultLoginRememberFor = 10 * time.Hour

type Config struct {
	App struct {
		// dev | staging | prod
		Env     string `yaml:"env" env:"APP_ENV" validate:"omitempty,oneof=dev staging prod"`
		Version string `yaml:"version" env:"APP_VERSION"`
	} `yaml:"app"`

	Server struct {
		Addr            string        `yaml:"addr" env:"SERVER_ADDR"`
		ReadTimeout     time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
		WriteTimeout    time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
		// TrustedProxies (IPs o CIDRs) cuyo X-Forwarded-For se respeta para
		// la IP del cliente. Vacío = sólo RemoteAddr.
		TrustedProxies []string `yaml:"trusted_proxies" env:"SERVER_TRUSTED_PROXIES" envSeparator:"," validate:"dive,cidr|ip"`
	} `yaml:"server"`

	// BaseURL es la URL pública de este servicio; contra ella se resuelve
	// el return_to que se le pasa a Kratos.
	BaseURL       string `yaml:"base_url" env:"BASE_URL" validate:"required,url"`
	BackofficeURL string `yaml:"backoffice_url" env:"BACKOFFICE_URL" validate:"omitempty,url"`
	OryAdminURL   string `yaml:"ory_admin_url" env:"ORY_ADMIN_URL" validate:"omitempty,url"`

	Hydra struct {
		AdminURL string `yaml:"admin_url" env:"HYDRA_ADMIN_URL" validate:"required,url"`
		// APIPrefix se antepone a los paths admin ("/admin" en Hydra 2.x).
		APIPrefix string `yaml:"api_prefix" env:"HYDRA_API_PREFIX"`
	} `yaml:"hydra"`

	Kratos struct {
		BrowserURL string `yaml:"browser_url" env:"KRATOS_BROWSER_URL" validate:"required,url"`
		// PublicURL es donde se resuelve /sessions/whoami; default BrowserURL.
		PublicURL string `yaml:"public_url" env:"KRATOS_PUBLIC_URL" validate:"omitempty,url"`
		AdminURL  string `yaml:"admin_url" env:"KRATOS_ADMIN_URL" validate:"omitempty,url"`
	} `yaml:"kratos"`

	Login struct {
		RememberFor time.Duration `yaml:"remember_for" env:"LOGIN_REMEMBER_FOR" validate:"gte=0"`
	} `yaml:"login"`

	Consent struct {
		ClaimsNamespace string   `yaml:"claims_namespace" env:"CONSENT_CLAIMS_NAMESPACE"`
		IDTokenRoles    []string `yaml:"id_token_roles" env:"CONSENT_ID_TOKEN_ROLES" envSeparator:","`
	} `yaml:"consent"`

	Upstream struct {
		// 0 = sin timeout; el proxy de adelante es quien corta.
		Timeout time.Duration `yaml:"timeout" env:"UPSTREAM_TIMEOUT" validate:"gte=0"`
	} `yaml:"upstream"`

	Log struct {
		Level string `yaml:"level" env:"LOG_LEVEL" validate:"omitempty,oneof=debug info warn warning error"`
	} `yaml:"log"`

	Tracing struct {
		Endpoint    string  `yaml:"endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT" validate:"omitempty,url"`
		ServiceName string  `yaml:"service_name" env:"OTEL_SERVICE_NAME"`
		SampleRatio float64 `yaml:"sample_ratio" env:"OTEL_SAMPLE_RATIO" validate:"gte=0,lte=1"`
	} `yaml:"tracing"`

	Metrics struct {
		Disabled bool   `yaml:"disabled" env:"METRICS_DISABLED"`
		Path     string `yaml:"path" env:"METRICS_PATH"`
	} `yaml:"metrics"`

	Rate struct {
		Enabled bool          `yaml:"enabled" env:"RATE_ENABLED"`
		Kind    string        `yaml:"kind" env:"RATE_KIND" validate:"omitempty,oneof=memory redis"`
		Limit   int           `yaml:"limit" env:"RATE_LIMIT" validate:"gte=0"`
		Window  time.Duration `yaml:"window" env:"RATE_WINDOW" validate:"gte=0"`
		Redis   struct {
			Addr     string `yaml:"addr" env:"REDIS_ADDR"`
			Password string `yaml:"password" env:"REDIS_PASSWORD"`
			DB       int    `yaml:"db" env:"REDIS_DB"`
			Prefix   string `yaml:"prefix" env:"REDIS_PREFIX"`
		} `yaml:"redis"`
	} `yaml:"rate"`
}

// Load lee el YAML (si path no está vacío), pisa con variables de entorno,
// aplica defaults, normaliza URLs y valida.
func Load(path string) (*Config, error) {
	c := newWithDefaults()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := env.Parse(&c); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	c.applyDefaults()
	c.normalize()

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// newWithDefaults precarga los campos donde 0 es un valor válido: YAML y env
// sólo los pisan si vienen explícitos.
func newWithDefaults() Config {
	var c Config
	c.Login.RememberFor = DefaultLoginRememberFor
	c.Tracing.SampleRatio = 1
	return c
}

// applyDefaults completa lo que quedó vacío después de YAML y env.
func (c *Config) applyDefaults() {
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":3000"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 15 * time.Second
	}
	if c.Kratos.PublicURL == "" {
		c.Kratos.PublicURL = c.Kratos.BrowserURL
	}
	if c.Consent.ClaimsNamespace == "" {
		c.Consent.ClaimsNamespace = "https://public-hydra.dx.dev"
	}
	if c.Consent.IDTokenRoles == nil {
		c.Consent.IDTokenRoles = []string{"admin"}
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = "loginconsent"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Rate.Kind == "" {
		c.Rate.Kind = "memory"
	}
	if c.Rate.Limit == 0 {
		c.Rate.Limit = 60
	}
	if c.Rate.Window == 0 {
		c.Rate.Window = time.Minute
	}
	if c.Rate.Redis.Prefix == "" {
		c.Rate.Redis.Prefix = "rl:"
	}
}

// normalize saca las barras finales de todas las URLs base.
func (c *Config) normalize() {
	for _, p := range []*string{
		&c.BaseURL,
		&c.BackofficeURL,
		&c.OryAdminURL,
		&c.Hydra.AdminURL,
		&c.Kratos.BrowserURL,
		&c.Kratos.PublicURL,
		&c.Kratos.AdminURL,
		&c.Consent.ClaimsNamespace,
	} {
		*p = TrimSlashes(*p)
	}
	if p := TrimSlashes(strings.TrimSpace(c.Hydra.APIPrefix)); p != "" && !strings.HasPrefix(p, "/") {
		c.Hydra.APIPrefix = "/" + p
	} else {
		c.Hydra.APIPrefix = p
	}
	c.App.Env = strings.ToLower(strings.TrimSpace(c.App.Env))

	roles := make([]string, 0, len(c.Consent.IDTokenRoles))
	for _, r := range c.Consent.IDTokenRoles {
		if r = strings.TrimSpace(r); r != "" {
			roles = append(roles, r)
		}
	}
	c.Consent.IDTokenRoles = roles
}

// Validate chequea los campos requeridos y las combinaciones que el tag
// validate no puede expresar.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Rate.Enabled && c.Rate.Kind == "redis" && strings.TrimSpace(c.Rate.Redis.Addr) == "" {
		return errors.New("invalid config: rate.redis.addr is required when rate.kind=redis")
	}
	return nil
}

// IsProd indica si corremos en producción.
func (c *Config) IsProd() bool { return c.App.Env == "prod" }

// GrantsAdminRole indica si el consent embebe role "admin" en el id_token.
func (c *Config) GrantsAdminRole() bool {
	for _, r := range c.Consent.IDTokenRoles {
		if strings.EqualFold(r, "admin") {
			return true
		}
	}
	return false
}

// TrimSlashes saca todas las "/" finales.
func TrimSlashes(s string) string {
	return strings.TrimRight(strings.TrimSpace(s), "/")
}
