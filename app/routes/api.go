// Package routes wires every API endpoint to its controller with the right
// auth and role gates.
package routes

import (
	"github.com/shashiranjanraj/campuskart/app/controllers"
	"github.com/shashiranjanraj/campuskart/app/models"
	"github.com/shashiranjanraj/campuskart/pkg/ctx"
	"github.com/shashiranjanraj/campuskart/pkg/logger"
	"github.com/shashiranjanraj/campuskart/pkg/middleware"
	"github.com/shashiranjanraj/campuskart/pkg/rbac"
	"github.com/shashiranjanraj/campuskart/pkg/router"
)

func RegisterAPI(r *router.Router) {
	authC := controllers.NewAuthController()
	catalogC := controllers.NewCatalogController()
	cartC := controllers.NewCartController()
	orderC := controllers.NewOrderController()
	paymentC := controllers.NewPaymentController()
	notificationC := controllers.NewNotificationController()
	moderationC := controllers.NewModerationController()
	reviewC := controllers.NewReviewController()
	uploadC := controllers.NewUploadController()

	api := r.Group("/api")

	// Public surface.
	api.Post("/auth/signup", "auth.signup", ctx.Wrap(authC.Signup))
	api.Post("/auth/login", "auth.login", ctx.Wrap(authC.Login))
	api.Post("/auth/refresh", "auth.refresh", ctx.Wrap(authC.Refresh))
	api.Get("/listings", "catalog.listings", ctx.Wrap(catalogC.Listings))
	api.Get("/products", "catalog.products", ctx.Wrap(catalogC.Products))
	api.Get("/listings/{id}/reviews", "reviews.listing", ctx.Wrap(reviewC.ForListing))

	if gqlC, err := controllers.NewGraphQLController(); err != nil {
		logger.Error("routes: graphql schema build failed", "error", err)
	} else {
		api.Post("/graphql", "graphql.query", ctx.Wrap(gqlC.Query))
	}

	// Any authenticated user.
	authed := api.Group("", middleware.Auth)
	authed.Get("/auth/profile", "auth.profile", ctx.Wrap(authC.Profile))

	authed.Get("/cart", "cart.show", ctx.Wrap(cartC.Show))
	authed.Post("/cart/items", "cart.add", ctx.Wrap(cartC.Add))
	authed.Patch("/cart/items/{listingId}", "cart.set_quantity", ctx.Wrap(cartC.SetQuantity))
	authed.Delete("/cart/items/{listingId}", "cart.remove", ctx.Wrap(cartC.Remove))
	authed.Delete("/cart", "cart.clear", ctx.Wrap(cartC.Clear))

	authed.Post("/orders", "orders.place", ctx.Wrap(orderC.Place))
	authed.Get("/orders/my-orders", "orders.mine", ctx.Wrap(orderC.MyOrders))

	authed.Post("/payments/create-order", "payments.create", ctx.Wrap(paymentC.CreateOrder))
	authed.Post("/payments/verify", "payments.verify", ctx.Wrap(paymentC.Verify))
	authed.Post("/payments/complete", "payments.complete", ctx.Wrap(paymentC.Complete))

	authed.Get("/notifications", "notifications.list", ctx.Wrap(notificationC.List))
	authed.Get("/notifications/unread-count", "notifications.unread", ctx.Wrap(notificationC.UnreadCount))
	authed.Get("/notifications/stream", "notifications.stream", ctx.Wrap(notificationC.Stream))
	authed.Patch("/notifications/{id}/read", "notifications.read", ctx.Wrap(notificationC.MarkRead))
	authed.Patch("/notifications/read-all", "notifications.read_all", ctx.Wrap(notificationC.MarkAllRead))
	authed.Delete("/notifications/{id}", "notifications.delete", ctx.Wrap(notificationC.Delete))

	authed.Post("/reviews", "reviews.create", ctx.Wrap(reviewC.Create))

	// Sellers (admins pass every seller gate).
	sellers := api.Group("", middleware.Auth, rbac.HasRole(models.RoleSeller, models.RoleAdmin))
	sellers.Get("/seller/listings", "seller.listings", ctx.Wrap(catalogC.MyListings))
	sellers.Post("/seller/listings", "seller.listings.create", ctx.Wrap(catalogC.CreateListing))
	sellers.Patch("/seller/listings/{id}", "seller.listings.adjust", ctx.Wrap(catalogC.AdjustListing))
	sellers.Get("/orders/seller-orders", "orders.seller", ctx.Wrap(orderC.SellerOrders))
	sellers.Patch("/orders/{id}", "orders.status", ctx.Wrap(orderC.UpdateStatus))
	sellers.Post("/orders/{id}/verify", "orders.verify", ctx.Wrap(orderC.Verify))
	sellers.Post("/product-requests", "requests.submit", ctx.Wrap(moderationC.SubmitRequest))
	sellers.Get("/product-requests", "requests.list", ctx.Wrap(moderationC.Requests))
	sellers.Post("/uploads", "uploads.image", ctx.Wrap(uploadC.Image))

	// Admin-only surface.
	admin := api.Group("/admin", middleware.Auth, rbac.HasRole(models.RoleAdmin))
	admin.Post("/product-requests/{id}/approve", "admin.requests.approve", ctx.Wrap(moderationC.Approve))
	admin.Post("/product-requests/{id}/reject", "admin.requests.reject", ctx.Wrap(moderationC.Reject))
	admin.Post("/users/{id}/ban", "admin.users.ban", ctx.Wrap(moderationC.Ban))
	admin.Post("/users/{id}/unban", "admin.users.unban", ctx.Wrap(moderationC.Unban))
	admin.Post("/users/{id}/verify-seller", "admin.users.verify_seller", ctx.Wrap(moderationC.VerifySeller))
}
