package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/yaoapp/kun/exception"
	"github.com/yaoapp/kun/log"
	"gopkg.in/yaml.v3"
)

// Conf the process wide configuration
var Conf Config

// DefaultKeyID the key field name used when nothing is configured
const DefaultKeyID = "_id"

func init() {
	Init()
}

// Init setting
func Init() {

	filename, _ := filepath.Abs(filepath.Join(".", ".env"))
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		Conf = Load()
	} else {
		Conf = LoadFrom(filename)
	}

	if Conf.ConfigFile != "" {
		cfg, err := LoadYAML(Conf, Conf.ConfigFile)
		if err != nil {
			log.Error("[CONFIG] %s", err.Error())
		} else {
			Conf = cfg
		}
	}

	SetLogger(Conf)
}

// LoadFrom load the environment file first, then the config
func LoadFrom(envfile string) Config {

	file, err := filepath.Abs(envfile)
	if err != nil {
		return Load()
	}

	godotenv.Overload(file)
	return Load()
}

// Load the config from the process environment
func Load() Config {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		exception.New("Can't read config %s", 500, err.Error()).Throw()
	}
	return cfg
}

// LoadEnv load the config from the given environment instead of the process one
func LoadEnv(environ map[string]string) (Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg, env.Options{Environment: environ}); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadYAML apply a YAML file (defaultId, serializeNulls ...) over the given config
func LoadYAML(base Config, file string) (Config, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return base, fmt.Errorf("read config file %s: %w", file, err)
	}

	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, fmt.Errorf("parse config file %s: %w", file, err)
	}

	if err := cfg.Validate(); err != nil {
		return base, err
	}
	cfg.ConfigFile = file
	return cfg, nil
}

// Validate check the config values
func (cfg Config) Validate() error {
	var errs error
	if strings.TrimSpace(cfg.DefaultID) == "" {
		errs = multierror.Append(errs, fmt.Errorf("defaultId is required"))
	}

	switch strings.ToUpper(cfg.LogMode) {
	case "", "TEXT", "JSON":
	default:
		errs = multierror.Append(errs, fmt.Errorf("logMode %q is not supported, use TEXT or JSON", cfg.LogMode))
	}

	if !levels[strings.ToLower(cfg.LogLevel)] && cfg.LogLevel != "" {
		errs = multierror.Append(errs, fmt.Errorf("logLevel %q is not supported", cfg.LogLevel))
	}
	return errs
}

// KeyID the configured key field name, falls back to _id
func (cfg Config) KeyID() string {
	if cfg.DefaultID == "" {
		return DefaultKeyID
	}
	return cfg.DefaultID
}

var levels = map[string]bool{"trace": true, "debug": true, "info": true, "warn": true, "error": true}

// SetLogger apply the log level and formatter
func SetLogger(cfg Config) {
	switch strings.ToLower(cfg.LogLevel) {
	case "trace":
		log.SetLevel(log.TraceLevel)
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "info":
		log.SetLevel(log.InfoLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	default:
		log.SetLevel(log.ErrorLevel)
	}

	log.SetFormatter(log.TEXT)
	if strings.ToUpper(cfg.LogMode) == "JSON" {
		log.SetFormatter(log.JSON)
	}
}
