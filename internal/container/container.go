// Package container is the composition root: it assembles the
// store -> repository -> service -> handler graph once at process start.
// The graph is an owned value, not a global; tests build a fresh one each.
package container

import (
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-management/config"
	"github.com/oksasatya/go-user-management/internal/application"
	"github.com/oksasatya/go-user-management/internal/domain/entity"
	"github.com/oksasatya/go-user-management/internal/domain/repository"
	"github.com/oksasatya/go-user-management/internal/infrastructure/memdb"
	handlers "github.com/oksasatya/go-user-management/internal/interface/http"
)

type Container struct {
	Config *config.Config
	Logger *logrus.Logger

	DB          *memdb.Store[entity.User]
	UserRepo    repository.UserRepository
	UserService *application.Service
	UserHandler *handlers.UserHandler
}

// New wires the full object graph. Nothing is connected yet; call Start.
func New(cfg *config.Config, logger *logrus.Logger) *Container {
	db := memdb.NewStore[entity.User](logger)
	repo := memdb.NewUserRepository(db)
	svc := application.NewService(repo, logger)
	handler := handlers.NewUserHandler(svc, logger)

	return &Container{
		Config:      cfg,
		Logger:      logger,
		DB:          db,
		UserRepo:    repo,
		UserService: svc,
		UserHandler: handler,
	}
}

// Start connects the store; the graph is usable afterwards.
func (c *Container) Start() error {
	return c.DB.Connect()
}

// Shutdown disconnects the store, discarding all data.
func (c *Container) Shutdown() error {
	return c.DB.Disconnect()
}
