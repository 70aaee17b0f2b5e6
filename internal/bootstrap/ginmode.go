package bootstrap

import (
	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

// SetGinMode selects release mode in production. In development gin's route
// table is printed through the service logger instead of gin's own writer.
func SetGinMode(production bool) {
	if production {
		gin.SetMode(gin.ReleaseMode)
		return
	}

	gin.DebugPrintRouteFunc = func(method, path, handler string, handlers int) {
		log.WithFields(log.Fields{
			"method":   method,
			"path":     path,
			"handler":  handler,
			"handlers": handlers,
		}).Debug("route")
	}
}
