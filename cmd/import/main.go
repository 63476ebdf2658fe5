// Einmaliger Batch-Import von der Kommandozeile: importiert alle Export-Ordner
// eines Verzeichnisses und beendet sich danach. Gedacht für Migrationsläufe,
// bei denen der Dienst selbst nicht laufen muss.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"metapress-import/config"
	"metapress-import/repository"
	"metapress-import/search"
	"metapress-import/services"
	"metapress-import/storage"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	dir := flag.String("dir", "", "Verzeichnis mit den Export-Ordnern (Default: IMPORT_DIR)")
	username := flag.String("user", "", "Benutzername für importierte Einreichungen (Default: IMPORT_USER)")
	flag.Parse()

	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Config load error", zap.Error(err))
	}
	if *dir == "" {
		*dir = cfg.ImportDir
	}
	if *username == "" {
		*username = cfg.ImportUser
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		logging.Fatal("Failed to connect to database", zap.Error(err))
	}

	s3Client, err := storage.NewS3Client(cfg)
	if err != nil {
		logging.Fatal("S3 client creation failed", zap.Error(err))
	}
	fileStore := storage.NewS3FileStore(cfg, s3Client, logging)
	importService := services.NewImportService(cfg, logging, repository.NewGormSet(db), fileStore, search.NewLogIndex(logging))

	result, err := importService.RunDirectory(context.Background(), *dir, *username)
	if err != nil {
		logging.Error("Import failed", zap.Error(err))
		os.Exit(1)
	}

	failed := 0
	for _, item := range result.Items {
		if item.Err != nil {
			failed++
		}
		for _, p := range item.Problems {
			logging.Warn("Import-Befund",
				zap.String("dir", item.Directory),
				zap.String("kind", string(p.Kind)),
				zap.String("detail", p.Detail))
		}
	}

	logging.Info("Import finished",
		zap.Int("items", len(result.Items)),
		zap.Int("imported", result.Imported),
		zap.Int("failed", failed))
	if failed > 0 {
		os.Exit(1)
	}
}
