package config

// Config the verification helper settings
type Config struct {
	DefaultID      string `json:"default_id,omitempty" yaml:"defaultId,omitempty" env:"MONGOVERIFY_DEFAULT_ID" envDefault:"_id"` // key field used by read-by-key reconstruction
	SerializeNulls bool   `json:"serialize_nulls" yaml:"serializeNulls" env:"MONGOVERIFY_SERIALIZE_NULLS" envDefault:"true"`     // default null-inclusion policy of the serializer
	LogMode        string `json:"log_mode,omitempty" yaml:"logMode,omitempty" env:"MONGOVERIFY_LOG_MODE" envDefault:"TEXT"`      // TEXT|JSON
	LogLevel       string `json:"log_level,omitempty" yaml:"logLevel,omitempty" env:"MONGOVERIFY_LOG_LEVEL" envDefault:"error"`  // trace|debug|info|warn|error
	ConfigFile     string `json:"config_file,omitempty" yaml:"-" env:"MONGOVERIFY_CONFIG" envDefault:""`                         // optional YAML file applied over the environment
}
