package cartRoutes

import (
	controllers "lms/controllers/cart"
	"lms/middleware"
	validators "lms/validators/cart"

	"github.com/gofiber/fiber/v2"
)

// SetupCartRoutes sets up cart and wishlist routes
func SetupCartRoutes(app *fiber.App) {
	cartGroup := app.Group("/cart", middleware.JWTMiddleware)

	cartGroup.Get("/", controllers.GetCart)
	cartGroup.Post("/add", validators.CartAdd(), controllers.AddToCart)
	cartGroup.Delete("/:id", validators.EnrollmentParam(), controllers.RemoveFromCart)
	cartGroup.Post("/checkout", validators.Checkout(), controllers.Checkout)

	wishlistGroup := app.Group("/wishlist", middleware.JWTMiddleware)

	wishlistGroup.Get("/", controllers.GetWishlist)
	wishlistGroup.Post("/add", validators.WishlistAdd(), controllers.AddToWishlist)
	wishlistGroup.Post("/:id/move-to-cart", validators.EnrollmentParam(), controllers.MoveToCart)
	wishlistGroup.Delete("/:id", validators.EnrollmentParam(), controllers.RemoveFromWishlist)
}
