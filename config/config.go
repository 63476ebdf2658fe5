package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config enthält alle Konfigurationsparameter aus Umgebungsvariablen.
type Config struct {
	DBHost     string `envconfig:"DB_HOST" required:"true"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" required:"true"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" required:"true"`

	HTTPPort string `envconfig:"HTTP_PORT" default:"4242"`

	// Verzeichnis mit den Metapress-Export-Ordnern (ein Unterordner pro Artikel).
	ImportDir string `envconfig:"IMPORT_DIR" default:"/data/metapress"`
	// Benutzername, dem importierte Einreichungen zugeordnet werden.
	ImportUser string `envconfig:"IMPORT_USER" default:"admin"`

	CronSchedule string `envconfig:"CRON_SCHEDULE" default:"0 2 * * *"`

	// Legacy-Exporte verketten Literaturangaben mit der Zeichenfolge `\n`
	// (Backslash + n) statt mit einem echten Zeilenumbruch. true stellt
	// dieses Verhalten byte-genau wieder her.
	CitationLiteralSeparator bool `envconfig:"CITATION_LITERAL_SEPARATOR" default:"false"`

	StratoS3Key    string `envconfig:"STRATO_S3_KEY" required:"true"`
	StratoS3Secret string `envconfig:"STRATO_S3_SECRET" required:"true"`
	StratoS3URL    string `envconfig:"STRATO_S3_URL" required:"true"`
	StratoS3Region string `envconfig:"STRATO_S3_REGION" required:"true"`
	StratoS3Bucket string `envconfig:"STRATO_S3_BUCKET" required:"true"`
}

// DSN gibt den Data Source Name für die PostgreSQL-Verbindung zurück.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

// CitationSeparator liefert das konfigurierte Trennzeichen zwischen Literaturangaben.
func (c *Config) CitationSeparator() string {
	if c.CitationLiteralSeparator {
		return `\n`
	}
	return "\n"
}

// Load lädt die Konfiguration aus den Umgebungsvariablen.
func Load() (*Config, error) {
	_ = godotenv.Load()
	var c Config
	err := envconfig.Process("", &c)
	return &c, err
}
