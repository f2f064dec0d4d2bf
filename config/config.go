package config

import (
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var (
	v = viper.GetViper()
)

func init() {
	v.SetConfigName("seermon")
	v.AddConfigPath("/etc/seermon/")
	v.AddConfigPath("$HOME/.seermon/")
	v.AddConfigPath(".")
}

var (
	global    = &Config{}
	globalMux sync.RWMutex
)

func Global() *Config {
	globalMux.RLock()
	defer globalMux.RUnlock()

	cfg := &Config{}
	*cfg = *global
	return cfg
}

func Set(c *Config) {
	globalMux.Lock()
	defer globalMux.Unlock()

	global = c
}

type LogConfig struct {
	// Output is stdout, stderr, none or a file path.
	Output   string             `yaml:",omitempty" json:"output,omitempty"`
	Level    string             `yaml:",omitempty" json:"level,omitempty"`
	Format   string             `yaml:",omitempty" json:"format,omitempty"`
	Rotation *LogRotationConfig `yaml:",omitempty" json:"rotation,omitempty"`
}

type LogRotationConfig struct {
	// MaxSize is the maximum size in megabytes of the log file before it gets
	// rotated. It defaults to 100 megabytes.
	MaxSize int `yaml:"maxSize,omitempty" json:"maxSize,omitempty"`
	// MaxAge is the maximum number of days to retain old log files based on the
	// timestamp encoded in their filename. The default is not to remove old
	// log files based on age.
	MaxAge int `yaml:"maxAge,omitempty" json:"maxAge,omitempty"`
	// MaxBackups is the maximum number of old log files to retain.
	MaxBackups int  `yaml:"maxBackups,omitempty" json:"maxBackups,omitempty"`
	LocalTime  bool `yaml:"localTime,omitempty" json:"localTime,omitempty"`
	Compress   bool `yaml:"compress,omitempty" json:"compress,omitempty"`
}

type LoggerConfig struct {
	Name string     `json:"name"`
	Log  *LogConfig `yaml:",omitempty" json:"log,omitempty"`
}

type TransportConfig struct {
	// Type is the registered transport name, udp or ftcp.
	Type string `json:"type"`
	// Addr is the local address verdicts are received on.
	Addr string `yaml:",omitempty" json:"addr,omitempty"`
	// Target is the classifier address probes are sent to.
	Target string `json:"target"`
	Netns  string `yaml:",omitempty" json:"netns,omitempty"`
	// ReadBufferSize is a byte count or a size such as 64KiB.
	ReadBufferSize string `yaml:"readBufferSize,omitempty" json:"readBufferSize,omitempty"`
}

type CorpusConfig struct {
	File  string       `yaml:",omitempty" json:"file,omitempty"`
	HTTP  *HTTPLoader  `yaml:"http,omitempty" json:"http,omitempty"`
	Redis *RedisLoader `yaml:",omitempty" json:"redis,omitempty"`
	// Fixture generates the corpus instead of loading it.
	Fixture *FixtureConfig `yaml:",omitempty" json:"fixture,omitempty"`
	// MaxSize bounds a loaded corpus document, e.g. 16MiB.
	MaxSize string `yaml:"maxSize,omitempty" json:"maxSize,omitempty"`
}

type HTTPLoader struct {
	URL     string        `yaml:"url" json:"url"`
	Timeout time.Duration `yaml:",omitempty" json:"timeout,omitempty"`
}

type RedisLoader struct {
	Addr     string `yaml:",omitempty" json:"addr,omitempty"`
	DB       int    `yaml:",omitempty" json:"db,omitempty"`
	Username string `yaml:",omitempty" json:"username,omitempty"`
	Password string `yaml:",omitempty" json:"password,omitempty"`
	Key      string `yaml:",omitempty" json:"key,omitempty"`
	// Type is string (one document) or list (one entry per element).
	Type string `yaml:",omitempty" json:"type,omitempty"`
}

type FixtureConfig struct {
	Count   int    `yaml:",omitempty" json:"count,omitempty"`
	SrcMAC  string `yaml:"srcMAC,omitempty" json:"srcMAC,omitempty"`
	DstMAC  string `yaml:"dstMAC,omitempty" json:"dstMAC,omitempty"`
	SrcIP   string `yaml:"srcIP,omitempty" json:"srcIP,omitempty"`
	DstIP   string `yaml:"dstIP,omitempty" json:"dstIP,omitempty"`
	DstPort int    `yaml:"dstPort,omitempty" json:"dstPort,omitempty"`
}

type PassConfig struct {
	// Verbosity is minimal or verbose.
	Verbosity    string        `yaml:",omitempty" json:"verbosity,omitempty"`
	ListenFirst  bool          `yaml:"listenFirst,omitempty" json:"listenFirst,omitempty"`
	Timeout      time.Duration `yaml:",omitempty" json:"timeout,omitempty"`
	PollInterval time.Duration `yaml:"pollInterval,omitempty" json:"pollInterval,omitempty"`
	// Rate limits dispatch to this many probes per second. Zero is unlimited.
	Rate  float64 `yaml:",omitempty" json:"rate,omitempty"`
	Burst int     `yaml:",omitempty" json:"burst,omitempty"`
	// Recorder names the recorder verdicts are written to.
	Recorder string `yaml:",omitempty" json:"recorder,omitempty"`
	// Logger names a registered logger for the pass, the default logger
	// when empty.
	Logger string `yaml:",omitempty" json:"logger,omitempty"`
}

type RecorderConfig struct {
	Name  string         `json:"name"`
	File  *FileRecorder  `yaml:",omitempty" json:"file,omitempty"`
	TCP   *TCPRecorder   `yaml:"tcp,omitempty" json:"tcp,omitempty"`
	HTTP  *HTTPRecorder  `yaml:"http,omitempty" json:"http,omitempty"`
	Redis *RedisRecorder `yaml:",omitempty" json:"redis,omitempty"`
}

type FileRecorder struct {
	Path     string             `json:"path"`
	Sep      string             `yaml:",omitempty" json:"sep,omitempty"`
	Rotation *LogRotationConfig `yaml:",omitempty" json:"rotation,omitempty"`
	// Sync flushes the file to disk after every record.
	Sync bool `yaml:",omitempty" json:"sync,omitempty"`
}

type TCPRecorder struct {
	Addr    string        `json:"addr"`
	Timeout time.Duration `json:"timeout"`
}

type HTTPRecorder struct {
	URL     string            `json:"url" yaml:"url"`
	Timeout time.Duration     `json:"timeout"`
	Header  map[string]string `yaml:",omitempty" json:"header,omitempty"`
}

type RedisRecorder struct {
	Addr     string `json:"addr"`
	DB       int    `yaml:",omitempty" json:"db,omitempty"`
	Username string `yaml:",omitempty" json:"username,omitempty"`
	Password string `yaml:",omitempty" json:"password,omitempty"`
	Key      string `yaml:",omitempty" json:"key,omitempty"`
	// Type is set, list or sset.
	Type string `yaml:",omitempty" json:"type,omitempty"`
}

type MetricsConfig struct {
	Addr string `json:"addr"`
	Path string `yaml:",omitempty" json:"path,omitempty"`
}

type APIConfig struct {
	Addr       string `json:"addr"`
	PathPrefix string `yaml:"pathPrefix,omitempty" json:"pathPrefix,omitempty"`
	AccessLog  bool   `yaml:"accesslog,omitempty" json:"accesslog,omitempty"`
}

type ReportConfig struct {
	// Format is text, json or yaml.
	Format string `yaml:",omitempty" json:"format,omitempty"`
	// Output is stdout or a file path.
	Output   string `yaml:",omitempty" json:"output,omitempty"`
	Recorder string `yaml:",omitempty" json:"recorder,omitempty"`
}

type Config struct {
	Log       *LogConfig        `yaml:",omitempty" json:"log,omitempty"`
	Loggers   []*LoggerConfig   `yaml:",omitempty" json:"loggers,omitempty"`
	Transport *TransportConfig  `yaml:",omitempty" json:"transport,omitempty"`
	Filter    string            `yaml:",omitempty" json:"filter,omitempty"`
	Corpus    *CorpusConfig     `yaml:",omitempty" json:"corpus,omitempty"`
	Pass      *PassConfig       `yaml:",omitempty" json:"pass,omitempty"`
	Recorders []*RecorderConfig `yaml:",omitempty" json:"recorders,omitempty"`
	Metrics   *MetricsConfig    `yaml:",omitempty" json:"metrics,omitempty"`
	API       *APIConfig        `yaml:",omitempty" json:"api,omitempty"`
	Report    *ReportConfig     `yaml:",omitempty" json:"report,omitempty"`
}

func (c *Config) Load() error {
	if err := v.ReadInConfig(); err != nil {
		return err
	}

	return v.Unmarshal(c)
}

// Read reads config of the given format (yaml or json) from r.
func (c *Config) Read(r io.Reader, format string) error {
	v.SetConfigType(format)
	if err := v.ReadConfig(r); err != nil {
		return err
	}

	return v.Unmarshal(c)
}

func (c *Config) ReadFile(file string) error {
	v.SetConfigFile(file)
	if err := v.ReadInConfig(); err != nil {
		return err
	}
	return v.Unmarshal(c)
}

func (c *Config) Write(w io.Writer, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(c)
	case "yaml":
		fallthrough
	default:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		enc.SetIndent(2)

		return enc.Encode(c)
	}
}
