package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"metapress-import/config"
	"metapress-import/models"
	"metapress-import/repository"
	"metapress-import/search"
	"metapress-import/services"
	"metapress-import/storage"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var importedArticlesCounter prometheus.Counter

func init() {
	importedArticlesCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "articles_imported_total",
			Help: "Total number of articles imported from Metapress exports.",
		},
	)
	prometheus.MustRegister(importedArticlesCounter)
}

func main() {
	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Config load error", zap.Error(err))
	}

	// Setup Database Connection
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		logging.Fatal("Failed to connect to database", zap.Error(err))
	}
	logging.Info("Successfully connected to database.")

	// Auto-Migration
	if gin.Mode() == gin.DebugMode {
		logging.Info("Debug mode detected. Dropping tables for fresh start.")
		db.Migrator().DropTable(
			&models.GalleyImage{}, &models.Galley{}, &models.ArticleFile{},
			&models.Signoff{}, &models.Author{}, &models.PublishedArticle{},
			&models.ImportEvent{}, &models.Article{}, &models.Issue{},
			&models.Section{}, &models.Journal{}, &models.User{},
		)
	}
	logging.Info("Running database auto-migration...")
	db.AutoMigrate(
		&models.Journal{}, &models.Section{}, &models.User{},
		&models.Issue{}, &models.Article{}, &models.PublishedArticle{},
		&models.Author{}, &models.Galley{}, &models.GalleyImage{},
		&models.ArticleFile{}, &models.Signoff{}, &models.ImportEvent{},
	)

	// Seeding
	if gin.Mode() == gin.DebugMode {
		seedDemoJournal(db, logging)
		seedImportUser(db, cfg, logging)
	}

	// Setup Services
	s3Client, err := storage.NewS3Client(cfg)
	if err != nil {
		logging.Fatal("S3 client creation failed", zap.Error(err))
	}
	fileStore := storage.NewS3FileStore(cfg, s3Client, logging)
	repos := repository.NewGormSet(db)
	importService := services.NewImportService(cfg, logging, repos, fileStore, search.NewLogIndex(logging))

	// Setup Router
	router := gin.Default()
	router.Use(gin.Recovery())
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Setup Routes
	setupJournalRoutes(router, repos, logging)
	setupIssueRoutes(router, repos, logging)
	setupArticleRoutes(router, repos, logging)
	setupImportRoutes(router, cfg, importService)

	// Setup Cron
	cronScheduler := cron.New()
	cronScheduler.AddFunc(cfg.CronSchedule, func() {
		logging.Info("Running scheduled import job...")
		result, err := importService.RunDirectory(context.Background(), cfg.ImportDir, cfg.ImportUser)
		if err != nil {
			logging.Error("Cron job failed", zap.Error(err))
		} else {
			logging.Info("Cron job completed", zap.Int("imported", result.Imported))
			importedArticlesCounter.Add(float64(result.Imported))
		}
	})
	cronScheduler.Start()

	logging.Info("Starting server", zap.String("port", cfg.HTTPPort))
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logging.Fatal("Failed to run server", zap.Error(err))
	}
}

func setupJournalRoutes(router *gin.Engine, repos repository.Set, log *zap.Logger) {
	rg := router.Group("/journals")

	rg.GET("/", func(c *gin.Context) {
		journals, err := repos.Journals.List(c.Request.Context())
		if err != nil {
			log.Error("Database query for journals failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, journals)
	})

	rg.POST("/", func(c *gin.Context) {
		var journal models.Journal
		if err := c.ShouldBindJSON(&journal); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		if err := repos.Journals.Create(c.Request.Context(), &journal); err != nil {
			log.Error("Failed to create journal", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create journal"})
			return
		}
		c.JSON(http.StatusCreated, journal)
	})

	rg.POST("/:path/sections", func(c *gin.Context) {
		journal, err := repos.Journals.FindByPath(c.Request.Context(), c.Param("path"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		if journal == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "journal not found"})
			return
		}
		var section models.Section
		if err := c.ShouldBindJSON(&section); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		section.JournalID = journal.ID
		if err := repos.Sections.Create(c.Request.Context(), &section); err != nil {
			log.Error("Failed to create section", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create section"})
			return
		}
		c.JSON(http.StatusCreated, section)
	})
}

func setupIssueRoutes(router *gin.Engine, repos repository.Set, log *zap.Logger) {
	rg := router.Group("/journals/:path/issues")

	rg.GET("/", func(c *gin.Context) {
		journal, err := repos.Journals.FindByPath(c.Request.Context(), c.Param("path"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		if journal == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "journal not found"})
			return
		}
		issues, err := repos.Issues.List(c.Request.Context(), journal.ID)
		if err != nil {
			log.Error("Database query for issues failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, issues)
	})
}

func setupArticleRoutes(router *gin.Engine, repos repository.Set, log *zap.Logger) {
	rg := router.Group("/journals/:path/articles")

	rg.GET("/", func(c *gin.Context) {
		journal, err := repos.Journals.FindByPath(c.Request.Context(), c.Param("path"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		if journal == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "journal not found"})
			return
		}
		articles, err := repos.Articles.List(c.Request.Context(), journal.ID)
		if err != nil {
			log.Error("Database query for articles failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, articles)
	})
}

func setupImportRoutes(router *gin.Engine, cfg *config.Config, importService *services.ImportService) {
	rg := router.Group("/import")

	rg.POST("/run", func(c *gin.Context) {
		var req struct {
			Directory string `json:"directory"`
			Username  string `json:"username"`
		}
		// Body ist optional; ohne Angaben gelten die konfigurierten Werte.
		_ = c.ShouldBindJSON(&req)
		if req.Directory == "" {
			req.Directory = cfg.ImportDir
		}
		if req.Username == "" {
			req.Username = cfg.ImportUser
		}

		go func() {
			result, err := importService.RunDirectory(context.Background(), req.Directory, req.Username)
			if err != nil {
				importService.Logger.Error("Async import failed", zap.Error(err))
			} else {
				importedArticlesCounter.Add(float64(result.Imported))
				importService.Logger.Info("Async import completed",
					zap.Int("imported", result.Imported),
					zap.Int("items", len(result.Items)))
			}
		}()
		c.JSON(http.StatusAccepted, gin.H{"message": "Import triggered.", "directory": req.Directory})
	})
}

func seedDemoJournal(db *gorm.DB, logger *zap.Logger) {
	var count int64
	db.Model(&models.Journal{}).Count(&count)
	if count > 0 {
		return
	}
	journal := models.Journal{
		Path:             "demo",
		Name:             "Demo Journal of Applied Research",
		PrimaryLocale:    "en_US",
		SupportedLocales: models.StringList{"en_US", "de_DE"},
	}
	if err := db.Create(&journal).Error; err != nil {
		logger.Warn("Failed to seed demo journal", zap.Error(err))
		return
	}
	section := models.Section{JournalID: journal.ID, Title: "Articles", Seq: 1}
	if err := db.Create(&section).Error; err != nil {
		logger.Warn("Failed to seed demo section", zap.Error(err))
	} else {
		logger.Info("Demo journal seeded.")
	}
}

func seedImportUser(db *gorm.DB, cfg *config.Config, logger *zap.Logger) {
	var count int64
	db.Model(&models.User{}).Where("username = ?", cfg.ImportUser).Count(&count)
	if count > 0 {
		return
	}
	user := models.User{Username: cfg.ImportUser, FullName: "Import User", Email: "import@example.com"}
	if err := db.Create(&user).Error; err != nil {
		logger.Warn("Failed to seed import user", zap.Error(err))
	} else {
		logger.Info("Import user seeded.")
	}
}
