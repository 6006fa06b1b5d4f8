package router

import (
	"github.com/danuartha/go-commerce-api/internal/application"
	"github.com/danuartha/go-commerce-api/internal/container"
	pginfra "github.com/danuartha/go-commerce-api/internal/infrastructure/postgres"
	handlers "github.com/danuartha/go-commerce-api/internal/interface/http"
	"github.com/danuartha/go-commerce-api/internal/interface/middleware"
	"github.com/danuartha/go-commerce-api/internal/router/modules"
)

// InitModules builds repositories, services, and handlers from the container
// singletons and registers every feature module with the registry.
// Call once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	userRepo := pginfra.NewUserRepository(pool)
	productRepo := pginfra.NewProductRepository(pool)
	categoryRepo := pginfra.NewCategoryRepository(pool)
	brandRepo := pginfra.NewBrandRepository(pool)
	orderRepo := pginfra.NewOrderRepository(pool)

	authSvc := application.NewAuthService(userRepo, container.GetJWT(), logger)
	productSvc := application.NewProductService(
		productRepo,
		container.GetGCS(), cfg.GCSBucket,
		container.GetES(), cfg.ESProductsIndex,
		logger,
	)
	categorySvc := application.NewCategoryService(categoryRepo, logger)
	brandSvc := application.NewBrandService(brandRepo, logger)
	orderSvc := application.NewOrderService(orderRepo, productRepo, userRepo, container.GetRabbitPub(), logger)

	auth := middleware.Auth(userRepo, container.GetJWT())

	r.Add(modules.NewHealthModule(handlers.NewHealthHandler(pool, container.GetRedis())))
	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger), auth))
	r.Add(modules.NewProductModule(handlers.NewProductHandler(productSvc, logger), auth))
	r.Add(modules.NewCategoryModule(handlers.NewCategoryHandler(categorySvc, logger), auth))
	r.Add(modules.NewBrandModule(handlers.NewBrandHandler(brandSvc, logger), auth))
	r.Add(modules.NewOrderModule(handlers.NewOrderHandler(orderSvc, logger), auth))
}
