package server

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"callcenter-backend/internal/agent"
	"callcenter-backend/internal/agent/bedrock"
	"callcenter-backend/internal/analyses"
	"callcenter-backend/internal/recordings"
	"callcenter-backend/internal/shared/config"
	"callcenter-backend/internal/shared/metrics"
	"callcenter-backend/internal/shared/server/middleware"
	"callcenter-backend/internal/shared/server/respond"
	"callcenter-backend/internal/shared/storage/db"
	"callcenter-backend/internal/shared/storage/object"
	localstore "callcenter-backend/internal/shared/storage/object/local"
	s3store "callcenter-backend/internal/shared/storage/object/s3"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	// Dependencies
	store := buildStore(cfg)
	sqlDB := buildDB(cfg)
	agentClient := buildAgent(cfg)

	var recRepo recordings.Repo
	var analysisRepo analyses.Repo
	if sqlDB != nil {
		recRepo = &recordings.PGRepo{DB: sqlDB}
		analysisRepo = &analyses.PGRepo{DB: sqlDB}
	} else {
		recRepo = recordings.NewMemoryRepo()
		analysisRepo = analyses.NewMemoryRepo()
	}

	analysisSvc := &analyses.Service{Repo: analysisRepo, Store: store, Agent: agentClient}
	analysisHandler := analyses.NewHandler(analysisSvc)
	recSvc := &recordings.Service{Store: store, Repo: recRepo}
	recHandler := recordings.NewHandler(recSvc, analysisSvc)

	r.GET("/", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{
			"service":          "call-center-analysis-api",
			"version":          "1.0.0",
			"agent_configured": agentClient != nil,
		})
	})
	r.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	recHandler.RegisterRoutes(api)
	analysisHandler.RegisterRoutes(api)

	return r
}

func buildStore(cfg config.Config) object.Store {
	if cfg.ObjectStoreType == "s3" {
		store, err := s3store.New(context.Background(), cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
		if err == nil {
			return store
		}
		log.Printf("s3 store init failed, falling back to local: %v", err)
	}
	store, err := localstore.New(cfg.LocalStoreDir)
	if err != nil {
		log.Fatalf("local store init failed: %v", err)
	}
	return store
}

func buildDB(cfg config.Config) *sql.DB {
	if cfg.DatabaseURL == "" {
		return nil
	}
	ctx := context.Background()
	conn, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		log.Printf("failed to connect database, falling back to memory: %v", err)
		return nil
	}
	if err := db.RunMigrations(ctx, conn); err != nil {
		log.Printf("failed to run migrations, falling back to memory: %v", err)
		conn.Close()
		return nil
	}
	return conn
}

func buildAgent(cfg config.Config) agent.Client {
	if !cfg.AgentConfigured() {
		log.Printf("bedrock agent not configured; analyses will use mock results")
		return nil
	}
	client, err := bedrock.New(context.Background(), cfg.AWSRegion, cfg.BedrockAgentID, cfg.BedrockAgentAliasID)
	if err != nil {
		log.Printf("bedrock agent init failed; analyses will use mock results: %v", err)
		return nil
	}
	return client
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
