package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-user-management/internal/interface/http"
)

// UserModule wires the user CRUD handlers into routes under /api/users.
type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule {
	return &UserModule{Handler: h}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	{
		users.POST("", m.Handler.CreateUser)
		users.GET("", m.Handler.ListUsers)
		users.GET("/:id", m.Handler.GetUser)
		users.PUT("/:id", m.Handler.UpdateUser)
		users.DELETE("/:id", m.Handler.DeleteUser)
	}
}
