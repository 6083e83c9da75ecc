package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/Rejoice2374/Homely-API/handlers"
)

// RegisterRoutes wires the API surface. The auth middleware resolves the
// Bearer token to a full user before protected handlers run.
func RegisterRoutes(
	e *echo.Echo,
	auth echo.MiddlewareFunc,
	uc *handlers.UserController,
	pc *handlers.PropertyController,
	wc *handlers.WishlistController,
) {
	e.GET("/health", handlers.HealthCheck)

	api := e.Group("/api")

	api.POST("/upload", uc.Register)

	user := api.Group("/user")
	user.POST("", uc.Login)
	user.POST("/logout", uc.Logout, auth)
	user.POST("/logoutAll", uc.LogoutAll, auth)
	user.GET("/me", uc.GetProfile, auth)
	user.PATCH("/me", uc.UpdateProfile, auth)
	user.DELETE("/me", uc.DeleteAccount, auth)
	user.GET("/me/whitelists", uc.GetWhitelist, auth)
	user.PATCH("/me/:whitelistId", uc.ToggleWhitelist, auth)

	property := api.Group("/property")
	property.POST("/upload", pc.CreateProperty, auth)
	property.GET("", pc.ListAvailable)
	property.GET("/myproperty", pc.ListMine, auth)
	property.GET("/:id", pc.GetProperty)
	property.PUT("/:id", pc.ToggleWishlist, auth)
	property.PUT("/update/:id", pc.UpdateProperty, auth)
	property.DELETE("/:id", pc.DeleteProperty, auth)

	wishlist := api.Group("/wishlist", auth)
	wishlist.POST("/add", wc.AddWishlist)
	wishlist.DELETE("/remove/:propertyId", wc.RemoveWishlist)
	wishlist.GET("", wc.GetWishlist)
}
