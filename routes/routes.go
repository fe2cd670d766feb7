package routes

import (
	"net/http"

	"tripandtreat/auth"
	"tripandtreat/booking"
	"tripandtreat/hostapps"
	"tripandtreat/hotspots"
	"tripandtreat/itinerary"
	"tripandtreat/middleware"
	"tripandtreat/profile"
	"tripandtreat/ratelim"
	"tripandtreat/reviews"
	"tripandtreat/search"
	"tripandtreat/suggest"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/hotspotpic/*filepath", http.Dir("static/hotspotpic"))
	router.ServeFiles("/static/userpic/*filepath", http.Dir("static/userpic"))
}

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/auth/register", ratelim.RateLimit(auth.Register))
	router.POST("/api/auth/login", ratelim.RateLimit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.LogoutUser))
	router.POST("/api/auth/token/refresh", ratelim.RateLimit(auth.RefreshToken))
}

func AddProfileRoutes(router *httprouter.Router) {
	router.GET("/api/profile/profile", middleware.Authenticate(profile.GetProfile))
	router.PUT("/api/profile/edit", middleware.Authenticate(profile.EditProfile))
	router.PUT("/api/profile/avatar", middleware.Authenticate(profile.EditProfilePic))
}

func AddItineraryRoutes(router *httprouter.Router) {
	router.GET("/api/itinerary", middleware.Authenticate(itinerary.GetItinerary))
	router.DELETE("/api/itinerary", middleware.Authenticate(itinerary.ClearItinerary))
	router.POST("/api/itinerary/stops", middleware.Authenticate(itinerary.AddStop))
	router.DELETE("/api/itinerary/stops/:id", middleware.Authenticate(itinerary.RemoveStop))
	router.PATCH("/api/itinerary/stops/:index/move", middleware.Authenticate(itinerary.MoveStop))
	router.POST("/api/itinerary/optimize", middleware.Authenticate(itinerary.OptimizeRoute))
	router.POST("/api/itinerary/book", ratelim.RateLimit(middleware.Authenticate(itinerary.BookTour)))
}

func AddHotspotRoutes(router *httprouter.Router) {
	router.GET("/api/hotspots", ratelim.RateLimit(hotspots.GetHotspots))
	router.GET("/api/hotspots/:id", hotspots.GetHotspot)
	router.POST("/api/hotspots", middleware.RequireHost(hotspots.CreateHotspot))
	router.PUT("/api/hotspots/:id", middleware.RequireHost(hotspots.EditHotspot))
	router.DELETE("/api/hotspots/:id", middleware.RequireHost(hotspots.DeleteHotspot))
	router.POST("/api/hotspots/:id/image", middleware.RequireHost(hotspots.UploadHotspotImage))
}

func AddBookingRoutes(router *httprouter.Router) {
	router.POST("/api/bookings", ratelim.RateLimit(middleware.Authenticate(booking.CreateBooking)))
	router.GET("/api/bookings", middleware.Authenticate(booking.GetMyBookings))
	router.DELETE("/api/bookings/:id", middleware.Authenticate(booking.CancelBooking))
	router.GET("/api/bookings/:id/voucher", middleware.Authenticate(booking.PrintVoucher))
	router.GET("/ws/bookings/:userid", middleware.Authenticate(booking.HandleWS))
}

func AddReviewRoutes(router *httprouter.Router) {
	router.GET("/api/hotspots/:id/reviews", reviews.GetReviews)
	router.POST("/api/hotspots/:id/reviews", ratelim.RateLimit(middleware.Authenticate(reviews.AddReview)))
	router.PUT("/api/reviews/:reviewId", middleware.Authenticate(reviews.EditReview))
	router.DELETE("/api/reviews/:reviewId", middleware.Authenticate(reviews.DeleteReview))
}

func AddHostAppRoutes(router *httprouter.Router) {
	router.POST("/api/host-applications", ratelim.RateLimit(middleware.Authenticate(hostapps.SubmitApplication)))
	router.GET("/api/host-applications", middleware.Authenticate(hostapps.GetMyApplications))
}

func AddAdminRoutes(router *httprouter.Router) {
	router.GET("/api/admin/bookings", middleware.RequireAdmin(booking.ListAllBookings))
	router.PUT("/api/admin/bookings/:id/confirm", middleware.RequireAdmin(booking.ConfirmBooking))
	router.PUT("/api/admin/bookings/:id/cancel", middleware.RequireAdmin(booking.CancelAnyBooking))

	router.GET("/api/admin/host-applications", middleware.RequireAdmin(hostapps.ListApplications))
	router.PUT("/api/admin/host-applications/:id/approve", middleware.RequireAdmin(hostapps.ApproveApplication))
	router.PUT("/api/admin/host-applications/:id/reject", middleware.RequireAdmin(hostapps.RejectApplication))
}

func AddSearchRoutes(router *httprouter.Router) {
	router.GET("/api/ac", search.Autocompleter)
	router.GET("/api/search/hotspots", ratelim.RateLimit(search.SearchHandler))
}

func AddSuggestRoutes(router *httprouter.Router) {
	router.POST("/api/suggest/itinerary", ratelim.RateLimit(middleware.OptionalAuth(suggest.SuggestItinerary)))
}
