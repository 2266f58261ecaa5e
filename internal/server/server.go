// Package server is the HTTP facade: two JSON endpoints that orchestrate
// topic selection, lesson generation and the progression engine.
package server

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bravedhq/beelearn/internal/lesson"
	"github.com/bravedhq/beelearn/internal/progress"
	"github.com/bravedhq/beelearn/internal/topics"
)

// Server bundles the collaborators the handlers orchestrate.
type Server struct {
	engine   *progress.Engine
	selector topics.Selector
	lessons  lesson.Generator
	log      *zap.Logger
}

// New creates a Server. A nil log disables logging.
func New(engine *progress.Engine, selector topics.Selector, lessons lesson.Generator, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{engine: engine, selector: selector, lessons: lessons, log: log}
}

// Router builds the gin engine with middleware and routes attached.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(RequestLogger(s.log), Recovery(s.log), CORS())

	r.GET("/healthz", s.handleHealth)
	r.GET("/api/lesson", s.handleGetLesson)
	r.POST("/api/answer", s.handleAnswer)
	return r
}
