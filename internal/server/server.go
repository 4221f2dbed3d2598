// Package server hosts the TaskHub HTTP API: first-party JWT auth and an
// ownership-scoped task collection. The client's gateway is its only
// intended consumer, but the surface is plain JSON over REST.
package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/alexanderramin/taskhub/internal/domain"
	"github.com/gin-gonic/gin"
)

const ctxOwnerKey = "ownerID"

// Server wires the router, store and token settings.
type Server struct {
	store    *Store
	secret   []byte
	tokenTTL time.Duration
}

// New creates a Server over the given store. secret signs bearer tokens;
// tokenTTL bounds their lifetime.
func New(store *Store, secret string, tokenTTL time.Duration) *Server {
	if tokenTTL <= 0 {
		tokenTTL = 7 * 24 * time.Hour
	}
	return &Server{store: store, secret: []byte(secret), tokenTTL: tokenTTL}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	auth := api.Group("/auth")
	auth.POST("/register", s.handleRegister)
	auth.POST("/login", s.handleLogin)

	tasks := api.Group("/tasks")
	tasks.Use(s.authRequired())
	tasks.GET("", s.handleListTasks)
	tasks.POST("", s.handleCreateTask)
	tasks.PUT("/:id", s.handleUpdateTask)
	tasks.DELETE("/:id", s.handleDeleteTask)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
	})
	return r
}

func owner(c *gin.Context) string {
	return c.GetString(ctxOwnerKey)
}

func (s *Server) handleListTasks(c *gin.Context) {
	tasks, err := s.store.ListTasksByOwner(c.Request.Context(), owner(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch tasks"})
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (s *Server) handleCreateTask(c *gin.Context) {
	var draft domain.TaskDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	draft.Normalize()
	if err := draft.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	task := domain.Task{
		Owner:         owner(c),
		Title:         draft.Title,
		Description:   draft.Description,
		Category:      draft.Category,
		Priority:      draft.Priority,
		StartDate:     draft.StartDate,
		DueDate:       draft.DueDate,
		EstimatedTime: draft.EstimatedTime,
	}
	if err := s.store.CreateTask(c.Request.Context(), &task); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (s *Server) handleUpdateTask(c *gin.Context) {
	var patch domain.TaskPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	current, err := s.store.GetTask(c.Request.Context(), owner(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Task not found or not owned by you"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	if err := patch.Validate(*current); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	next := patch.Apply(*current)
	if err := s.store.UpdateTask(c.Request.Context(), &next); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, next)
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	err := s.store.DeleteTask(c.Request.Context(), owner(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Task not found or not owned by you"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Task deleted successfully"})
}
