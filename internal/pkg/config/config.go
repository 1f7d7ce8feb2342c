package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Valkey    ValkeyConfig    `mapstructure:"valkey"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Simulator SimulatorConfig `mapstructure:"simulator"`
}

type ServerConfig struct {
	Port         int `mapstructure:"port"`
	ReadTimeout  int `mapstructure:"read_timeout"`
	WriteTimeout int `mapstructure:"write_timeout"`
}

type ValkeyConfig struct {
	Addr string `mapstructure:"addr"`
}

type TelemetryConfig struct {
	ServiceName string `mapstructure:"service_name"`
	TempoAddr   string `mapstructure:"tempo_addr"`
	Enabled     bool   `mapstructure:"enabled"`
}

// SimulatorConfig describes the interactive slider ranges and the default
// sweep resolution. All radii are in Ångströms.
type SimulatorConfig struct {
	CationMin     float64 `mapstructure:"cation_min"`
	CationMax     float64 `mapstructure:"cation_max"`
	CationDefault float64 `mapstructure:"cation_default"`
	AnionMin      float64 `mapstructure:"anion_min"`
	AnionMax      float64 `mapstructure:"anion_max"`
	AnionDefault  float64 `mapstructure:"anion_default"`
	Step          float64 `mapstructure:"step"`
	SweepSteps    int     `mapstructure:"sweep_steps"`
}

// Load reads configuration from file and environment variables.
func Load(service string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("valkey.addr", "localhost:6379")
	v.SetDefault("telemetry.service_name", service)
	v.SetDefault("telemetry.tempo_addr", "tempo:4317")
	v.SetDefault("telemetry.enabled", true)
	v.SetDefault("simulator.cation_min", 0.1)
	v.SetDefault("simulator.cation_max", 2.0)
	v.SetDefault("simulator.cation_default", 1.0)
	v.SetDefault("simulator.anion_min", 0.1)
	v.SetDefault("simulator.anion_max", 2.5)
	v.SetDefault("simulator.anion_default", 1.4)
	v.SetDefault("simulator.step", 0.01)
	v.SetDefault("simulator.sweep_steps", 241)

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	_ = v.ReadInConfig() // OK if missing

	// Environment variables: COORDSIM_SERVER_PORT → server.port
	v.SetEnvPrefix("COORDSIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}
	if c.Valkey.Addr == "" {
		errs = append(errs, "valkey.addr is required")
	}

	s := c.Simulator
	if s.CationMin <= 0 {
		errs = append(errs, "simulator.cation_min must be positive")
	}
	if s.CationMax <= s.CationMin {
		errs = append(errs, "simulator.cation_max must be above simulator.cation_min")
	}
	if s.CationDefault < s.CationMin || s.CationDefault > s.CationMax {
		errs = append(errs, fmt.Sprintf("simulator.cation_default %g outside [%g, %g]",
			s.CationDefault, s.CationMin, s.CationMax))
	}
	if s.AnionMin <= 0 {
		errs = append(errs, "simulator.anion_min must be positive")
	}
	if s.AnionMax <= s.AnionMin {
		errs = append(errs, "simulator.anion_max must be above simulator.anion_min")
	}
	if s.AnionDefault < s.AnionMin || s.AnionDefault > s.AnionMax {
		errs = append(errs, fmt.Sprintf("simulator.anion_default %g outside [%g, %g]",
			s.AnionDefault, s.AnionMin, s.AnionMax))
	}
	if s.Step <= 0 {
		errs = append(errs, "simulator.step must be positive")
	}
	if s.SweepSteps < 2 || s.SweepSteps > 2001 {
		errs = append(errs, fmt.Sprintf("simulator.sweep_steps must be 2-2001, got %d", s.SweepSteps))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
