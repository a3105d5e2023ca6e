package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/studybuddy/core/docs"
	httpHandlers "github.com/studybuddy/core/internal/adapters/http"
	"github.com/studybuddy/core/internal/infrastructure/config"
	"github.com/studybuddy/core/internal/infrastructure/database"
	"github.com/studybuddy/core/internal/infrastructure/logger"
	"github.com/studybuddy/core/internal/infrastructure/metrics"
)

// Server represents the HTTP server
type Server struct {
	echo     *echo.Echo
	config   *config.Config
	logger   *logger.Logger
	db       *database.DB
	services *Services
	metrics  *metrics.Metrics
}

// New creates a new server instance. m may be nil to disable /metrics.
func New(cfg *config.Config, db *database.DB, svcs *Services, m *metrics.Metrics, appLogger *logger.Logger) *Server {
	e := echo.New()

	// Set custom validator
	e.Validator = NewValidator()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = true

	// Custom error handler
	e.HTTPErrorHandler = customErrorHandler(appLogger)

	server := &Server{
		echo:     e,
		config:   cfg,
		logger:   appLogger,
		db:       db,
		services: svcs,
		metrics:  m,
	}

	// Setup middleware
	server.setupMiddleware()

	// Setup routes
	server.setupRoutes()

	return server
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware() {
	// Recovery middleware
	s.echo.Use(middleware.Recover())

	// Request ID middleware
	s.echo.Use(requestID())

	// Logger middleware
	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		LogRemoteIP:  true,
		LogUserAgent: true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, values middleware.RequestLoggerValues) error {
			reqLogger := s.logger.WithRequestID(values.RequestID)
			if values.Error != nil {
				reqLogger = reqLogger.WithError(values.Error)
			}
			reqLogger.LogHTTPRequest(
				values.Method,
				values.URI,
				values.UserAgent,
				values.RemoteIP,
				values.Status,
				float64(values.Latency.Microseconds())/1000,
			)
			return nil
		},
	}))

	if s.metrics != nil {
		s.echo.Use(s.metrics.Middleware())
	}

	// CORS middleware
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  strings.Split(s.config.Security.CORSAllowedOrigins, ","),
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderXRequestID},
		AllowMethods:  []string{echo.GET, echo.HEAD, echo.PUT, echo.PATCH, echo.POST, echo.DELETE},
		ExposeHeaders: []string{echo.HeaderContentDisposition, echo.HeaderXRequestID},
	}))

	// Rate limiting middleware
	s.echo.Use(s.rateLimiter())

	// Security headers
	s.echo.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Path(), "/swagger")
		},
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
	}))

	// Uploads are read fully into memory
	if s.config.Server.BodyLimit != "" {
		s.echo.Use(middleware.BodyLimit(s.config.Server.BodyLimit))
	}

	// Timeout middleware
	if s.config.Server.RequestTimeout > 0 {
		s.echo.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
			Skipper: func(c echo.Context) bool {
				return isOperationalPath(c.Path())
			},
			Timeout:      s.config.Server.RequestTimeout,
			ErrorMessage: "request timed out",
		}))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	svcs := s.services

	folderHandler := httpHandlers.NewFolderHandler(svcs.Folders, s.logger)
	noteHandler := httpHandlers.NewNoteHandler(svcs.Notes, s.logger)
	editorHandler := httpHandlers.NewEditorHandler()
	timetableHandler := httpHandlers.NewTimetableHandler(svcs.Timetable, s.logger)
	todoHandler := httpHandlers.NewTodoHandler(svcs.Todos, s.logger)
	assistantHandler := httpHandlers.NewAssistantHandler(svcs.Assistant, s.logger)
	pen2pdfHandler := httpHandlers.NewPen2PDFHandler(svcs.Pen2PDF, s.logger)
	dashboardHandler := httpHandlers.NewDashboardHandler(svcs.Dashboard)

	// Health check routes
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/health/detailed", s.detailedHealthCheck)
	s.echo.GET("/ready", s.readinessCheck)

	// Swagger documentation
	s.echo.GET("/swagger/*", echoSwagger.WrapHandler)

	if s.metrics != nil {
		s.echo.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))
	}

	// API v1 routes
	v1 := s.echo.Group("/api/v1")

	v1.GET("/dashboard", dashboardHandler.GetDashboard)

	folderGroup := v1.Group("/folders")
	folderGroup.GET("", folderHandler.ListFolders)
	folderGroup.POST("", folderHandler.CreateFolder)
	folderGroup.GET("/:id", folderHandler.GetFolder)
	folderGroup.PUT("/:id", folderHandler.UpdateFolder)
	folderGroup.DELETE("/:id", folderHandler.DeleteFolder)

	noteGroup := v1.Group("/notes")
	noteGroup.GET("", noteHandler.ListNotes)
	noteGroup.POST("", noteHandler.CreateNote)
	noteGroup.GET("/search", noteHandler.SearchNotes)
	noteGroup.POST("/import", noteHandler.ImportNotes)
	noteGroup.POST("/generate", noteHandler.GenerateNote)
	noteGroup.GET("/:id", noteHandler.GetNote)
	noteGroup.PUT("/:id", noteHandler.UpdateNote)
	noteGroup.DELETE("/:id", noteHandler.DeleteNote)
	noteGroup.GET("/:id/html", noteHandler.RenderNote)
	noteGroup.GET("/:id/export", noteHandler.ExportNote)

	editorGroup := v1.Group("/editor")
	editorGroup.GET("/tags", editorHandler.ListTags)
	editorGroup.POST("/apply", editorHandler.ApplyMarkdown)

	timetableGroup := v1.Group("/timetable")
	timetableGroup.GET("", timetableHandler.ListEntries)
	timetableGroup.POST("", timetableHandler.CreateEntry)
	timetableGroup.DELETE("", timetableHandler.DeleteAll)
	timetableGroup.GET("/grid", timetableHandler.Grid)
	timetableGroup.GET("/upcoming", timetableHandler.Upcoming)
	timetableGroup.POST("/import", timetableHandler.Import)
	timetableGroup.GET("/export", timetableHandler.Export)
	timetableGroup.GET("/export.ics", timetableHandler.ExportICS)
	timetableGroup.GET("/:id", timetableHandler.GetEntry)
	timetableGroup.PUT("/:id", timetableHandler.UpdateEntry)
	timetableGroup.DELETE("/:id", timetableHandler.DeleteEntry)

	todoGroup := v1.Group("/todos")
	todoGroup.GET("", todoHandler.ListTodos)
	todoGroup.POST("", todoHandler.CreateTodo)
	todoGroup.GET("/:id", todoHandler.GetTodo)
	todoGroup.PUT("/:id", todoHandler.UpdateTodo)
	todoGroup.DELETE("/:id", todoHandler.DeleteTodo)
	todoGroup.POST("/:id/subtasks", todoHandler.AddSubtask)
	todoGroup.PUT("/:id/subtasks/:subtaskId", todoHandler.UpdateSubtask)
	todoGroup.DELETE("/:id/subtasks/:subtaskId", todoHandler.DeleteSubtask)

	assistantGroup := v1.Group("/assistant")
	assistantGroup.POST("/chat", assistantHandler.Chat)
	assistantGroup.POST("/chat/image", assistantHandler.ChatImage)
	assistantGroup.GET("/conversations/:id", assistantHandler.GetConversation)

	pen2pdfGroup := v1.Group("/pen2pdf")
	pen2pdfGroup.POST("/extract", pen2pdfHandler.Extract)
	pen2pdfGroup.POST("/export", pen2pdfHandler.Export)
}

// Health check handlers
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// detailedHealthCheck reports 503 when the database is down. An unreachable
// AI backend only degrades the status since local features keep working.
func (s *Server) detailedHealthCheck(c echo.Context) error {
	status := "ok"
	checks := make(map[string]interface{})

	// Database health check
	if err := s.db.HealthCheck(); err != nil {
		status = "error"
		checks["database"] = map[string]interface{}{
			"status": "error",
			"error":  err.Error(),
		}
	} else {
		checks["database"] = map[string]interface{}{
			"status": "ok",
			"stats":  s.db.GetConnectionInfo(),
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := s.services.AI.Health(ctx); err != nil {
		if status == "ok" {
			status = "degraded"
		}
		checks["ai_backend"] = map[string]interface{}{
			"status": "error",
			"error":  err.Error(),
		}
	} else {
		checks["ai_backend"] = map[string]interface{}{"status": "ok"}
	}

	response := map[string]interface{}{
		"status": status,
		"time":   time.Now().UTC().Format(time.RFC3339),
		"checks": checks,
		"version": map[string]string{
			"app": s.config.App.Version,
			"go":  runtime.Version(),
		},
	}

	if status == "error" {
		return c.JSON(http.StatusServiceUnavailable, response)
	}
	return c.JSON(http.StatusOK, response)
}

func (s *Server) readinessCheck(c echo.Context) error {
	// Check if server is ready to accept requests
	if err := s.db.Ping(); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
			"reason": "database_not_ready",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Start starts the HTTP server
func (s *Server) Start(address string) error {
	s.echo.Server.ReadTimeout = s.config.Server.ReadTimeout
	s.echo.Server.WriteTimeout = s.config.Server.WriteTimeout
	s.echo.Server.IdleTimeout = s.config.Server.IdleTimeout

	s.logger.Infow("Starting server", "address", address)
	if err := s.echo.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Infow("Shutting down server")
	return s.echo.Shutdown(ctx)
}

// customErrorHandler handles HTTP errors
func customErrorHandler(logger *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var (
			code = http.StatusInternalServerError
			msg  interface{}
		)

		var he *echo.HTTPError
		var ve validator.ValidationErrors
		if errors.As(err, &he) {
			code = he.Code
			msg = map[string]interface{}{"message": he.Message}
			if he.Internal != nil {
				err = fmt.Errorf("%v, %v", err, he.Internal)
			}
		} else if errors.As(err, &ve) {
			code = http.StatusBadRequest
			msg = map[string]string{"message": "validation failed", "details": ve.Error()}
		} else {
			msg = map[string]string{"message": http.StatusText(code)}
		}

		// Send response. The timeout middleware renders errors itself, so a
		// committed response has already been handled and logged.
		if !c.Response().Committed {
			if code >= http.StatusInternalServerError {
				requestID, _ := c.Get(requestIDKey).(string)
				logger.WithRequestID(requestID).WithError(err).
					Errorw("Server error", "path", c.Request().URL.Path, "status", code)
			}

			if c.Request().Method == echo.HEAD {
				err = c.NoContent(code)
			} else {
				err = c.JSON(code, msg)
			}
			if err != nil {
				logger.Errorw("Error sending response", "error", err)
			}
		}
	}
}
