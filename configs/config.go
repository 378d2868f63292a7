package configs

import (
	"log"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config struct
type Config struct {
	App       `mapstructure:"app"`
	Postgres  `mapstructure:"postgres"`
	Translate `mapstructure:"translate"`
	OpenAI    `mapstructure:"openai"`
	Broadcast `mapstructure:"broadcast"`
}

// App struct
type App struct {
	Debug bool   `mapstructure:"debug"`
	Env   string `mapstructure:"env"`
	Port  string `mapstructure:"port"`
}

// Postgres struct - optional durable caption store; leave host empty to
// run in-memory only
type Postgres struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DbName   string `mapstructure:"database"`
	SSLMode  bool   `mapstructure:"sslmode"`
}

// Translate struct - fast (low-latency) translation provider
type Translate struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Timeout int    `mapstructure:"timeout"` // seconds; 0 means adapter default
}

// OpenAI struct - quality (generative) translation provider
type OpenAI struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	Timeout int    `mapstructure:"timeout"` // seconds; 0 means adapter default
}

// Broadcast struct - pipeline tunables; zero values signal the wiring
// layer to apply defaults
type Broadcast struct {
	SourceLanguage  string   `mapstructure:"source_language"`
	TargetLanguages []string `mapstructure:"target_languages"`
	HistoryCap      int      `mapstructure:"history_cap"`
	SessionTimeout  int      `mapstructure:"session_timeout"`  // minutes
	CacheCapacity   int      `mapstructure:"cache_capacity"`   // entries
	CacheTTL        int      `mapstructure:"cache_ttl"`        // minutes
	Heartbeat       int      `mapstructure:"heartbeat"`        // seconds between SSE keep-alives
}

var config Config

// InitViper func
func InitViper(path, env string) {
	getConfig(path, env)
}

// GetViper func
func GetViper() *Config {
	return &config
}

func getConfig(path, env string) {
	viper.SetConfigName("config")
	viper.AddConfigPath(path)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}
	viper.WatchConfig()
	viper.OnConfigChange(func(e fsnotify.Event) {
		log.Println("Config file has changed: ", e.Name)
	})
	err = viper.Unmarshal(&config)
	if err != nil {
		log.Fatalln(err)
	}
}
