package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	App          App          `mapstructure:",squash"`
	Server       Server       `mapstructure:",squash"`
	Database     Database     `mapstructure:",squash"`
	Wildberries  Wildberries  `mapstructure:",squash"`
	GoogleSheets GoogleSheets `mapstructure:",squash"`
	XLSXExport   XLSXExport   `mapstructure:",squash"`
	TariffSync   TariffSync   `mapstructure:",squash"`
	Auth         Auth         `mapstructure:",squash"`
}

type App struct {
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN         string `mapstructure:"-"`
	Driver      string `mapstructure:"db_driver"`
	Host        string `mapstructure:"db_host"`
	Port        int    `mapstructure:"db_port"`
	User        string `mapstructure:"db_user"`
	Password    string `mapstructure:"db_password"`
	Name        string `mapstructure:"db_name"`
	SSLMode     string `mapstructure:"db_sslmode"`
	AutoMigrate bool   `mapstructure:"db_auto_migrate"`
}

type Wildberries struct {
	URL     string        `mapstructure:"wb_api_url"`
	APIKey  string        `mapstructure:"wb_api_key"`
	Timeout time.Duration `mapstructure:"wb_api_timeout"`
}

type GoogleSheets struct {
	CredentialsPath string   `mapstructure:"google_sheets_credentials_path"`
	SheetIDs        []string `mapstructure:"sheet_ids"`
	SheetName       string   `mapstructure:"google_sheets_sheet_name"`
	SheetGID        int64    `mapstructure:"google_sheets_sheet_id"`
	ContinueOnError bool     `mapstructure:"google_sheets_continue_on_error"`
}

// Enabled indica se a publicação no Google Sheets está configurada
func (g GoogleSheets) Enabled() bool {
	return g.CredentialsPath != "" && len(g.SheetIDs) > 0
}

type XLSXExport struct {
	Path string `mapstructure:"xlsx_export_path"`
}

type TariffSync struct {
	CronSchedule   string         `mapstructure:"cron_schedule"`
	Enabled        bool           `mapstructure:"tariff_sync_enabled"`
	RunOnStart     bool           `mapstructure:"tariff_sync_run_on_start"`
	Timezone       string         `mapstructure:"tariff_sync_timezone"`
	RunTimeout     time.Duration  `mapstructure:"tariff_sync_run_timeout"`
	FetchTimeout   time.Duration  `mapstructure:"tariff_sync_fetch_timeout"`
	PersistTimeout time.Duration  `mapstructure:"tariff_sync_persist_timeout"`
	PublishTimeout time.Duration  `mapstructure:"tariff_sync_publish_timeout"`
	Location       *time.Location `mapstructure:"-"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

func SetDefaults() {
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")

	viper.SetDefault("HOST", "0.0.0.0")
	viper.SetDefault("PORT", "8000")

	viper.SetDefault("DB_DRIVER", DriverPostgres)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", 5432)
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_NAME", "postgres_wb")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_AUTO_MIGRATE", true)

	viper.SetDefault("WB_API_URL", "https://common-api.wildberries.ru/api/v1/tariffs/box")
	viper.SetDefault("WB_API_KEY", "")
	viper.SetDefault("WB_API_TIMEOUT", "30s")

	viper.SetDefault("GOOGLE_SHEETS_CREDENTIALS_PATH", "")
	viper.SetDefault("SHEET_IDS", "")
	viper.SetDefault("GOOGLE_SHEETS_SHEET_NAME", "Sheet1")
	viper.SetDefault("GOOGLE_SHEETS_SHEET_ID", 0)
	viper.SetDefault("GOOGLE_SHEETS_CONTINUE_ON_ERROR", false) // Padrão: falha no primeiro destino

	viper.SetDefault("XLSX_EXPORT_PATH", "")

	viper.SetDefault("CRON_SCHEDULE", "0 * * * *") // A cada hora no minuto 0
	viper.SetDefault("TARIFF_SYNC_ENABLED", true)
	viper.SetDefault("TARIFF_SYNC_RUN_ON_START", false)
	viper.SetDefault("TARIFF_SYNC_TIMEZONE", "UTC")
	viper.SetDefault("TARIFF_SYNC_RUN_TIMEOUT", "5m")
	viper.SetDefault("TARIFF_SYNC_FETCH_TIMEOUT", "45s")
	viper.SetDefault("TARIFF_SYNC_PERSIST_TIMEOUT", "30s")
	viper.SetDefault("TARIFF_SYNC_PUBLISH_TIMEOUT", "2m")

	viper.SetDefault("AUTH_SECRET", "")
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
		logrus.Debug("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env): ", err)
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

	config.GoogleSheets.SheetIDs = cleanList(config.GoogleSheets.SheetIDs)
	config.Database.DSN = buildDSN(config.Database)

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// validate verifica valores que impediriam o agendador de funcionar
func (c *Config) validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverMemory:
	default:
		return fmt.Errorf("config: DB_DRIVER inválido %q (use %s ou %s)", c.Database.Driver, DriverPostgres, DriverMemory)
	}

	if _, err := cron.ParseStandard(c.TariffSync.CronSchedule); err != nil {
		return fmt.Errorf("config: CRON_SCHEDULE inválido %q: %w", c.TariffSync.CronSchedule, err)
	}

	loc, err := time.LoadLocation(c.TariffSync.Timezone)
	if err != nil {
		return fmt.Errorf("config: TARIFF_SYNC_TIMEZONE inválido %q: %w", c.TariffSync.Timezone, err)
	}
	c.TariffSync.Location = loc

	timeouts := map[string]time.Duration{
		"WB_API_TIMEOUT":              c.Wildberries.Timeout,
		"TARIFF_SYNC_RUN_TIMEOUT":     c.TariffSync.RunTimeout,
		"TARIFF_SYNC_FETCH_TIMEOUT":   c.TariffSync.FetchTimeout,
		"TARIFF_SYNC_PERSIST_TIMEOUT": c.TariffSync.PersistTimeout,
		"TARIFF_SYNC_PUBLISH_TIMEOUT": c.TariffSync.PublishTimeout,
	}
	for key, value := range timeouts {
		if value <= 0 {
			return fmt.Errorf("config: %s deve ser positivo (recebido %s)", key, value)
		}
	}

	if c.Wildberries.URL == "" {
		return fmt.Errorf("config: WB_API_URL é obrigatório")
	}

	// Credenciais sem planilhas indicam configuração incompleta, não publicação desligada
	if c.GoogleSheets.CredentialsPath != "" && len(c.GoogleSheets.SheetIDs) == 0 {
		return fmt.Errorf("config: SHEET_IDS é obrigatório quando GOOGLE_SHEETS_CREDENTIALS_PATH está configurado")
	}

	return nil
}

func buildDSN(db Database) string {
	dsn := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(db.User, db.Password),
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}
	query := dsn.Query()
	query.Set("sslmode", db.SSLMode)
	dsn.RawQuery = query.Encode()

	return dsn.String()
}

func cleanList(items []string) []string {
	cleaned := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de: ", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}
