package route

import (
	"dinein/auth"
	"dinein/controller"
	"dinein/model"
	"dinein/utils"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Auth         *auth.Handler
	Restaurants  *controller.RestaurantController
	Menu         *controller.MenuController
	Reservations *controller.ReservationController
	Payments     *controller.PaymentController
	Geography    *controller.GeographyController
	Health       gin.HandlerFunc
}

var (
	managers = []string{string(model.RoleOwner), string(model.RoleAdmin)}
	admins   = []string{string(model.RoleAdmin)}
)

// APIRoutes mounts every endpoint under /api.
func APIRoutes(router *gin.Engine, h Handlers, tokens *utils.TokenManager) {
	utils.RegisterValidators()

	if h.Health != nil {
		router.GET("/health", h.Health)
	}

	api := router.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/refresh", h.Auth.Refresh)
	}

	// public reads
	api.GET("/restaurants", h.Restaurants.List)
	api.GET("/restaurants/:id", h.Restaurants.Show)
	api.GET("/restaurants/:id/menu", h.Restaurants.Menu)
	api.GET("/locations/:id/tables", h.Restaurants.ListTables)
	api.GET("/categories", h.Menu.ListCategories)
	api.GET("/categories/:id", h.Menu.ShowCategory)
	api.GET("/categories/:id/items", h.Menu.ListItems)
	api.GET("/items/:id", h.Menu.ShowItem)
	api.GET("/countries", h.Geography.Countries)
	api.GET("/countries/:id/governorates", h.Geography.Governorates)
	api.GET("/governorates/:id/cities", h.Geography.Cities)
	api.GET("/payment-gateways", h.Payments.Gateways)

	// provider redirects
	api.GET("/payments/success", h.Payments.Success)
	api.GET("/payments/cancel", h.Payments.Cancel)

	authed := api.Group("")
	authed.Use(utils.AuthMiddleware(tokens))
	{
		authed.POST("/reservations", h.Reservations.Create)
		authed.GET("/reservations/:id", h.Reservations.Show)
		authed.GET("/me/restaurants", h.Restaurants.Mine)
	}

	manage := api.Group("")
	manage.Use(utils.AuthMiddleware(tokens, managers...))
	{
		manage.POST("/restaurants", h.Restaurants.Create)
		manage.PUT("/restaurants/:id", h.Restaurants.Update)
		manage.DELETE("/restaurants/:id", h.Restaurants.Delete)
		manage.PUT("/restaurants/:id/locations", h.Restaurants.UpdateLocations)
		manage.POST("/restaurants/:id/logo", h.Restaurants.UploadLogo)
		manage.POST("/restaurants/:id/cover", h.Restaurants.UploadCover)
		manage.POST("/restaurants/:id/images", h.Restaurants.AddImage)
		manage.GET("/restaurants/:id/reservations", h.Reservations.ByRestaurant)
		manage.GET("/restaurants/:id/reservations/export", h.Reservations.Export)
		manage.POST("/locations/:id/tables", h.Restaurants.CreateTable)

		manage.POST("/categories", h.Menu.CreateCategory)
		manage.PUT("/categories/:id", h.Menu.UpdateCategory)
		manage.DELETE("/categories/:id", h.Menu.DeleteCategory)
		manage.POST("/categories/:id/items/import", h.Menu.ImportItems)
		manage.POST("/items", h.Menu.CreateItem)
		manage.PUT("/items/:id", h.Menu.UpdateItem)
		manage.DELETE("/items/:id", h.Menu.DeleteItem)

		manage.GET("/payments/:id", h.Payments.Show)
		manage.PATCH("/payments/:id/status", h.Payments.UpdateStatus)
	}

	admin := api.Group("")
	admin.Use(utils.AuthMiddleware(tokens, admins...))
	{
		admin.GET("/reservations", h.Reservations.List)
		admin.DELETE("/reservations/:id", h.Reservations.Delete)
	}
}
