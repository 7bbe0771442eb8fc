package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/vfg2006/insights-exporter/pkg/utils"
)

type Config struct {
	App             App             `mapstructure:",squash"`
	Server          Server          `mapstructure:",squash"`
	Database        Database        `mapstructure:",squash"`
	Meta            Meta            `mapstructure:",squash"`
	Google          Google          `mapstructure:",squash"`
	ExportPipeline  ExportPipeline  `mapstructure:",squash"`
	ExportScheduler ExportScheduler `mapstructure:",squash"`
	SecretKey       string          `mapstructure:"secret_key"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Meta struct {
	BaseURL     string        `mapstructure:"meta_base_url"`
	URL         string        `mapstructure:"meta_url"`
	Version     string        `mapstructure:"meta_version"`
	PageSize    int           `mapstructure:"meta_page_size"`
	HTTPTimeout time.Duration `mapstructure:"meta_http_timeout"`
}

// Google agrupa as opções do cliente do Google Sheets
type Google struct {
	// Endpoint sobrescreve a URL base da API do Sheets (usado em testes e proxies)
	SheetsEndpoint string `mapstructure:"google_sheets_endpoint"`
	// CredentialsFile é a service account usada quando o usuário não conectou a própria
	CredentialsFile string `mapstructure:"google_credentials_file"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

// ExportPipeline contém os parâmetros de execução de uma exportação
type ExportPipeline struct {
	MaxConcurrentAccounts int    `mapstructure:"export_max_concurrent_accounts"`
	DefaultTimezone       string `mapstructure:"export_default_timezone"`
	FilterZeroRows        bool   `mapstructure:"export_filter_zero_rows"`
}

// ExportScheduler contém os parâmetros do agendador de exportações automáticas
type ExportScheduler struct {
	CronSchedule       string `mapstructure:"export_scheduler_cron"`
	BatchSize          int    `mapstructure:"export_scheduler_batch_size"`
	MatchWindowMinutes int    `mapstructure:"export_scheduler_match_window_minutes"`
	Enabled            bool   `mapstructure:"export_scheduler_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/exporter")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v22.0")
	viper.SetDefault("META_PAGE_SIZE", 500)
	viper.SetDefault("META_HTTP_TIMEOUT", "60s")

	viper.SetDefault("GOOGLE_SHEETS_ENDPOINT", "")
	viper.SetDefault("GOOGLE_CREDENTIALS_FILE", "")

	viper.SetDefault("SECRET_KEY", "your_secret_key")

	viper.SetDefault("EXPORT_MAX_CONCURRENT_ACCOUNTS", 4)
	viper.SetDefault("EXPORT_DEFAULT_TIMEZONE", "America/Sao_Paulo")
	viper.SetDefault("EXPORT_FILTER_ZERO_ROWS", true)

	// Agendador roda a cada minuto e decide quais configurações estão no horário
	viper.SetDefault("EXPORT_SCHEDULER_CRON", "* * * * *")
	viper.SetDefault("EXPORT_SCHEDULER_BATCH_SIZE", 5)
	viper.SetDefault("EXPORT_SCHEDULER_MATCH_WINDOW_MINUTES", 0) // 0 = mesma hora, minuto >= agendado
	viper.SetDefault("EXPORT_SCHEDULER_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	config.Meta.URL = fmt.Sprintf("%s/%s", config.Meta.BaseURL, config.Meta.Version)

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Validate garante que os valores numéricos e o fuso padrão são utilizáveis
func (c *Config) Validate() error {
	if _, err := utils.LoadLocation(c.ExportPipeline.DefaultTimezone, ""); err != nil {
		return fmt.Errorf("config: fuso horário padrão inválido %q: %w", c.ExportPipeline.DefaultTimezone, err)
	}
	if c.ExportPipeline.MaxConcurrentAccounts <= 0 {
		c.ExportPipeline.MaxConcurrentAccounts = 1
	}
	if c.ExportScheduler.BatchSize <= 0 {
		c.ExportScheduler.BatchSize = 1
	}
	if c.Meta.PageSize <= 0 {
		c.Meta.PageSize = 500
	}
	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}
