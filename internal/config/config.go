package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	DataSourceCSV      = "csv"
	DataSourcePostgres = "postgres"
)

type Config struct {
	App       App       `mapstructure:",squash"`
	Server    Server    `mapstructure:",squash"`
	Data      Data      `mapstructure:",squash"`
	Generator Generator `mapstructure:",squash"`
	Analysis  Analysis  `mapstructure:",squash"`
	Database  Database  `mapstructure:",squash"`
	Cors      Cors      `mapstructure:",squash"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

// Data define de onde a base é lida e onde o arquivo processado é gravado
type Data struct {
	Source        string `mapstructure:"data_source"`
	Path          string `mapstructure:"data_path"`
	ProcessedPath string `mapstructure:"processed_path"`
}

type Generator struct {
	Days int   `mapstructure:"generator_days"`
	Seed int64 `mapstructure:"generator_seed"`
}

type Analysis struct {
	MERThreshold float64 `mapstructure:"mer_threshold"`
	Currency     string  `mapstructure:"currency"`
}

type Cors struct {
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("LOG_LEVEL", "info")

	viper.SetDefault("DATA_SOURCE", DataSourceCSV)
	viper.SetDefault("DATA_PATH", "data/maestro.csv")
	viper.SetDefault("PROCESSED_PATH", "data/processed_financials.csv")

	viper.SetDefault("GENERATOR_DAYS", 90) // 90 dias de histórico
	viper.SetDefault("GENERATOR_SEED", 42)

	viper.SetDefault("MER_THRESHOLD", 3.0) // abaixo disso o dia é marcado como anomalia
	viper.SetDefault("CURRENCY", "USD")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/northstar?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
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
		logrus.Debug("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env): ", err)
	} else {
		logrus.Debug("Arquivo .env lido pelo Viper com sucesso")
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

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Validate normaliza e confere os valores que não podem ficar inválidos
func (c *Config) Validate() error {
	c.Data.Source = strings.ToLower(strings.TrimSpace(c.Data.Source))
	if c.Data.Source != DataSourceCSV && c.Data.Source != DataSourcePostgres {
		return fmt.Errorf("DATA_SOURCE inválido %q: use %s ou %s", c.Data.Source, DataSourceCSV, DataSourcePostgres)
	}

	if c.Generator.Days <= 0 {
		return fmt.Errorf("GENERATOR_DAYS deve ser positivo, recebido %d", c.Generator.Days)
	}

	if c.Analysis.MERThreshold <= 0 {
		return fmt.Errorf("MER_THRESHOLD deve ser positivo, recebido %v", c.Analysis.MERThreshold)
	}

	c.Analysis.Currency = strings.ToUpper(strings.TrimSpace(c.Analysis.Currency))

	return nil
}

// Address retorna host:porta para o servidor HTTP
func (s Server) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Debug("Arquivo .env carregado de: ", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando variáveis de ambiente")
}
