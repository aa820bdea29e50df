package server

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/lumenpage/materials-cli/internal/config"
)

// Server is the local development materials service. It mirrors the wire
// contract the CLI client speaks so the picker can run without the real
// backend.
type Server struct {
	cfg     *config.ServerConfig
	db      *gorm.DB
	engine  *gin.Engine
	dataDir string
}

// New creates the dev service with its sqlite store and routes.
func New(cfg *config.ServerConfig) (*Server, error) {
	dataDir := cfg.DataDir
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve data dir: %w", err)
		}
		dataDir = filepath.Join(home, ".materials-cli", "data")
	}
	if err := os.MkdirAll(filepath.Join(dataDir, "materials"), 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = filepath.Join(dataDir, "materials.db")
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.AutoMigrate(&Project{}, &Material{}); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	s := &Server{
		cfg:     cfg,
		db:      db,
		dataDir: dataDir,
	}
	s.engine = s.buildRouter()
	return s, nil
}

// buildRouter wires the gin engine with routes and middleware.
func (s *Server) buildRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger())

	// The browser frontend runs on its own dev port.
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	engine.Use(cors.New(corsConfig))

	apiGroup := engine.Group("/api")
	{
		apiGroup.GET("/materials", s.listMaterials)
		apiGroup.POST("/materials/upload", s.uploadMaterial)

		apiGroup.GET("/projects", s.listProjects)
		apiGroup.POST("/projects", s.createProject)

		projectGroup := apiGroup.Group("/projects/:projectID")
		{
			projectGroup.GET("/materials", s.listMaterials)
			projectGroup.POST("/materials/upload", s.uploadMaterial)
			projectGroup.POST("/materials/generate", s.generateMaterial)
		}
	}

	engine.Static("/files", s.dataDir)

	return engine
}

// Run starts the HTTP listener.
func (s *Server) Run() error {
	logrus.Infof("materials service listening on %s (data dir %s)", s.cfg.Addr, s.dataDir)
	return s.engine.Run(s.cfg.Addr)
}

// Engine exposes the router, used by tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// requestLogger logs each request at debug level.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		logrus.Debugf("http: %s %s -> %d", c.Request.Method, c.Request.URL.Path, c.Writer.Status())
	}
}
