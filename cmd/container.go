package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/hireloop/screenline/internal/extract"
	"github.com/hireloop/screenline/internal/ocr"
	"github.com/hireloop/screenline/pkg/fsx"
	"github.com/hireloop/screenline/pkg/fsx/fsxs3"
	"github.com/hireloop/screenline/pkg/logx"
	"github.com/hireloop/screenline/screening/job/jobinfra"
	"github.com/hireloop/screenline/screening/ranking"
	"github.com/hireloop/screenline/screening/ranking/rankingapi"
	"github.com/hireloop/screenline/screening/ranking/rankingsrv"
	"github.com/hireloop/screenline/screening/resume/resumeapi"
	"github.com/hireloop/screenline/screening/resume/resumeinfra"
	"github.com/hireloop/screenline/screening/resume/resumesrv"
	"github.com/hireloop/screenline/screening/resume/worker"
	"github.com/hireloop/screenline/screening/taxonomy/taxonomyinfra"
)

const reparseQueueName = "screenline:reparse"

// Container holds all application dependencies
type Container struct {
	// Infrastructure
	DB         *sqlx.DB
	Redis      *redis.Client
	FileSystem fsx.BucketFileSystem
	S3Client   *s3.Client

	// Services
	ResumeService  *resumesrv.Service
	RankingService *rankingsrv.Service

	// API Handlers
	ResumeHandlers  *resumeapi.ResumeHandlers
	RankingHandlers *rankingapi.RankingHandlers

	// Workers
	ReparseWorker *worker.ReparseWorker
}

// NewContainer initializes the dependency injection container
func NewContainer() *Container {
	c := &Container{}
	c.initInfrastructure()
	c.initServices()
	return c
}

func (c *Container) initInfrastructure() {
	// 1. Database Connection
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASS")
	dbName := os.Getenv("DB_NAME")
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPass, dbName)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		logx.Fatalf("Failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	c.DB = db

	// 2. Redis Connection
	redisAddr := os.Getenv("REDIS_ADDR")
	redisPass := os.Getenv("REDIS_PASS")
	c.Redis = redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPass,
		DB:       0,
	})
	if _, err := c.Redis.Ping(context.Background()).Result(); err != nil {
		logx.Warnf("Failed to connect to Redis: %v", err)
	}

	// 3. AWS S3 Configuration
	awsRegion := os.Getenv("AWS_REGION")
	awsBucket := os.Getenv("AWS_BUCKET")
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(awsRegion))
	if err != nil {
		logx.Fatalf("unable to load SDK config, %v", err)
	}
	c.S3Client = s3.NewFromConfig(cfg)
	c.FileSystem = fsxs3.NewS3FileSystem(c.S3Client, awsBucket, "uploads")
}

func (c *Container) initServices() {
	// --- Repositories ---
	taxonomyRepo := taxonomyinfra.NewPostgresTaxonomyRepository(c.DB)
	jobRepo := jobinfra.NewPostgresJobRepository(c.DB)
	resumeRepo := resumeinfra.NewPostgresResumeRepository(c.DB)

	// --- Queue ---
	reparseQueue := resumeinfra.NewRedisReparseQueue(c.Redis, reparseQueueName)

	// --- Extraction pipeline ---
	tesseract := ocr.NewTesseractCLI(os.Getenv("TESSERACT_BIN"), os.Getenv("TESSERACT_LANGS"))
	extractor := extract.NewDefault(tesseract)

	// --- Domain Services ---
	c.ResumeService = resumesrv.NewService(
		resumeRepo,
		taxonomyRepo,
		extractor,
		c.FileSystem,
		reparseQueue,
	)

	engine := ranking.NewEngine(ranking.DefaultWeights())
	c.RankingService = rankingsrv.NewService(engine, jobRepo, taxonomyRepo, resumeRepo)

	// --- Handlers ---
	c.ResumeHandlers = resumeapi.NewResumeHandlers(c.ResumeService)
	c.RankingHandlers = rankingapi.NewRankingHandlers(c.RankingService)

	// --- Workers ---
	c.ReparseWorker = worker.NewReparseWorker(c.ResumeService, reparseQueue, reparseWorkerCount())
}

func reparseWorkerCount() int {
	if raw := os.Getenv("REPARSE_WORKERS"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
	}
	return 2
}
