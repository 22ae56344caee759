package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type GeneratorConfig struct {
	Mode     string `yaml:"mode" validate:"required|in:countdown,units"`
	MinYears int    `yaml:"minYears" validate:"min:0"`
	MaxYears int    `yaml:"maxYears" validate:"required|min:1"`
}

// SequenceConfig holds the offsets, measured from the button press, at
// which each phase of a generation sequence fires.
type SequenceConfig struct {
	Disturbance1 time.Duration `yaml:"disturbance1"`
	Disturbance2 time.Duration `yaml:"disturbance2"`
	Reveal       time.Duration `yaml:"reveal"`
}

type CountdownConfig struct {
	Interval time.Duration `yaml:"interval"`
}

type DisplayConfig struct {
	Timezone string `yaml:"timezone"`
}

type ExportConfig struct {
	Size int `yaml:"size" validate:"required|min:200|max:4096"`
}

type SoundConfig struct {
	Enabled    bool    `yaml:"enabled"`
	SampleRate int     `yaml:"sampleRate" validate:"required|min:8000|max:96000"`
	Volume     float64 `yaml:"volume"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	WebServer Server          `yaml:"webServer"`
	Logger    LoggerConfig    `yaml:"logger"`
	Generator GeneratorConfig `yaml:"generator"`
	Sequence  SequenceConfig  `yaml:"sequence"`
	Countdown CountdownConfig `yaml:"countdown"`
	Display   DisplayConfig   `yaml:"display"`
	Export    ExportConfig    `yaml:"export"`
	Sound     SoundConfig     `yaml:"sound"`
	Cache     CacheConfig     `yaml:"cache"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}
