// Package config loads the optional YAML configuration of the anthill CLI.
//
// A file is parsed with yaml.v3, checked against the embedded JSON schema and
// decoded over Default() with mapstructure, so absent keys keep their defaults.
package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed config.schema.json
var schemaJSON []byte

const schemaURL = "config.schema.json"

// Backend names accepted by record.backend.
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

type Config struct {
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
	Protocol ProtocolConfig `mapstructure:"protocol" yaml:"protocol"`
	Agent    AgentConfig    `mapstructure:"agent" yaml:"agent"`
	Record   RecordConfig   `mapstructure:"record" yaml:"record"`
	Metrics  MetricsConfig  `mapstructure:"metrics" yaml:"metrics"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

type ProtocolConfig struct {
	StrictSetup bool `mapstructure:"strict_setup" yaml:"strict_setup"`
	MaxLineSize int  `mapstructure:"max_line_size" yaml:"max_line_size"`
}

type AgentConfig struct {
	Name string `mapstructure:"name" yaml:"name"`
}

type RecordConfig struct {
	Backend string `mapstructure:"backend" yaml:"backend"`
	Path    string `mapstructure:"path" yaml:"path"`
	// KeepWorlds limits stored snapshots to the last N turns; 0 keeps all.
	KeepWorlds int         `mapstructure:"keep_worlds" yaml:"keep_worlds"`
	Redis      RedisConfig `mapstructure:"redis" yaml:"redis"`
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr" yaml:"addr"`
	Password string        `mapstructure:"password" yaml:"password"`
	DB       int           `mapstructure:"db" yaml:"db"`
	Prefix   string        `mapstructure:"prefix" yaml:"prefix"`
	TTL      time.Duration `mapstructure:"ttl" yaml:"ttl"`
}

type MetricsConfig struct {
	Textfile string `mapstructure:"textfile" yaml:"textfile"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Log:      LogConfig{Level: "info", Format: "text"},
		Protocol: ProtocolConfig{MaxLineSize: 4096},
		Agent:    AgentConfig{Name: "idle"},
		Record:   RecordConfig{Backend: BackendNone},
	}
}

// Load reads the file at path. An empty path returns Default().
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates YAML content.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("parse yaml: %w", err)
	}
	if raw == nil {
		return cfg, nil
	}

	if err := validateSchema(raw); err != nil {
		return Config{}, err
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  mapstructure.StringToTimeDurationHookFunc(),
		ErrorUnused: true,
		Result:      &cfg,
	})
	if err != nil {
		return Config{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the constraints the schema cannot express.
func (c Config) Validate() error {
	var errs []error
	switch c.Record.Backend {
	case BackendFile, BackendSQLite:
		if c.Record.Path == "" {
			errs = append(errs, fmt.Errorf("record.path is required for the %s backend", c.Record.Backend))
		}
	case BackendRedis:
		if c.Record.Redis.Addr == "" {
			errs = append(errs, errors.New("record.redis.addr is required for the redis backend"))
		}
	case BackendNone, BackendMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown record.backend %q", c.Record.Backend))
	}
	if c.Record.Redis.TTL < 0 {
		errs = append(errs, errors.New("record.redis.ttl must not be negative"))
	}
	return errors.Join(errs...)
}

func validateSchema(raw map[string]any) error {
	// The validator works on JSON values; round-trip the YAML document through JSON.
	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("config is not representable as JSON: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return err
	}

	schema, err := compileSchema()
	if err != nil {
		return err
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func compileSchema() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("load config schema: %w", err)
	}
	return c.Compile(schemaURL)
}
