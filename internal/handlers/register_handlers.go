package handlers

import (
	"github.com/anthonyshull/franknfurter/cmd/docs"
	portssvc "github.com/anthonyshull/franknfurter/internal/core/ports/services"
	"github.com/anthonyshull/franknfurter/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using
// interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	currencyService portssvc.CurrencyReaderSvc,
	conversionService portssvc.ConversionSvcFacade,
) {
	registerCustomValidators()

	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	root := r.Group("/")
	registerCurrencyRoutes(root, currencyService)
	registerConversionRoutes(root, conversionService)

	setupSwaggerRoutes(r, cfg)
}

// registerCustomValidators adds the currency_code rule (3 uppercase letters)
// to gin's validator engine, used by binding tags on request DTOs.
func registerCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("currency_code", func(fl validator.FieldLevel) bool {
		code := fl.Field().String()
		if len(code) != 3 {
			return false
		}
		for _, r := range code {
			if r < 'A' || r > 'Z' {
				return false
			}
		}
		return true
	})
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
