package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App        App        `mapstructure:",squash"`
	Server     Server     `mapstructure:",squash"`
	Dataset    Dataset    `mapstructure:",squash"`
	Forecast   Forecast   `mapstructure:",squash"`
	Auth       Auth       `mapstructure:",squash"`
	ReportSync ReportSync `mapstructure:",squash"`

	// Usuários do dashboard carregados de AUTH_USERS (JSON); sem banco de dados
	Users []ConfigUser `mapstructure:"-"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Dataset struct {
	// Caminho do export CSV usado pelas execuções agendadas e pelo sync manual.
	// Uploads via API não dependem dele.
	Path string `mapstructure:"dataset_path"`
}

type Forecast struct {
	// Quantos meses à frente prever quando o chamador não informa períodos
	FutureMonths int `mapstructure:"forecast_future_months"`
	// Mínimo de períodos mensais para formar uma partição de teste não vazia
	MinPeriods int `mapstructure:"forecast_min_periods"`
	// Preencher com zero os meses interiores sem transações antes do treino
	FillMissingPeriods bool `mapstructure:"forecast_fill_missing_periods"`
}

type Auth struct {
	Secret       string `mapstructure:"auth_secret"`
	TokenTTLHour int    `mapstructure:"auth_token_ttl_hours"`
}

type ReportSync struct {
	CronSchedule string `mapstructure:"report_sync_cron"`
	Enabled      bool   `mapstructure:"report_sync_enabled"`
}

// ConfigUser é um usuário declarado na configuração (AUTH_USERS)
type ConfigUser struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
	RoleID       int    `json:"role_id"`
	Active       bool   `json:"active"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATASET_PATH", "")

	viper.SetDefault("FORECAST_FUTURE_MONTHS", 2)    // Comportamento original: dois meses à frente
	viper.SetDefault("FORECAST_MIN_PERIODS", 5)      // Garante partição de teste não vazia no split 80/20
	viper.SetDefault("FORECAST_FILL_MISSING_PERIODS", false)

	viper.SetDefault("AUTH_SECRET", "your_secret_key")
	viper.SetDefault("AUTH_TOKEN_TTL_HOURS", 24)

	viper.SetDefault("REPORT_SYNC_CRON", "0 5 * * *") // Todos os dias às 5h da manhã
	viper.SetDefault("REPORT_SYNC_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
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

	config.Users, err = parseUsers(viper.GetString("AUTH_USERS"))
	if err != nil {
		return nil, err
	}

	if config.Forecast.MinPeriods < 5 {
		// Abaixo de 5 períodos o split 80/20 deixa de produzir teste e treino úteis
		config.Forecast.MinPeriods = 5
	}

	return config, nil
}

// parseUsers decodifica a lista de usuários do dashboard a partir de um JSON.
// Sem a variável definida, o serviço sobe apenas com as rotas públicas úteis.
func parseUsers(raw string) ([]ConfigUser, error) {
	if raw == "" {
		logrus.Warn("AUTH_USERS não definido; nenhum usuário poderá autenticar")
		return nil, nil
	}

	var users []ConfigUser
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		return nil, err
	}

	return users, nil
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
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
