package endpoint

import (
	"github.com/ariebrainware/biosecure-portal/middleware"
	"github.com/ariebrainware/biosecure-portal/model"
	"github.com/gin-gonic/gin"
)

// Limiters are optional rate limiting handlers for the routes open to anonymous clients.
type Limiters struct {
	// Session guards session creation.
	Session gin.HandlerFunc
	// Auth guards signup and login.
	Auth gin.HandlerFunc
}

func withLimiter(limiter, h gin.HandlerFunc) []gin.HandlerFunc {
	if limiter == nil {
		return []gin.HandlerFunc{h}
	}
	return []gin.HandlerFunc{limiter, h}
}

// RegisterRoutes mounts every screen of the portal. The caller installs Inject and
// SessionMiddleware first.
func RegisterRoutes(r gin.IRouter, limits Limiters) {
	r.GET("/", Home)
	r.GET("/languages", ListLanguages)
	r.GET("/districts", ListDistricts)
	r.GET("/species", ListSpecies)

	r.POST("/session", withLimiter(limits.Session, StartSession)...)
	withSession := r.Group("/")
	withSession.Use(middleware.RequireSession())
	{
		withSession.GET("/session", GetSession)
		withSession.DELETE("/session", EndSession)
		withSession.PUT("/session/language", SetLanguage)
	}

	anonymous := r.Group("/")
	if limits.Auth != nil {
		anonymous.Use(limits.Auth)
	}
	anonymous.Use(middleware.RequireAnonymous())
	{
		anonymous.POST("/signup/shop", SignupShop)
		anonymous.POST("/signup/doctor", SignupDoctor)
		anonymous.POST("/login", Login)
	}

	auth := r.Group("/")
	auth.Use(middleware.RequireAuthenticated())
	{
		auth.POST("/logout", Logout)
		auth.GET("/profile", Profile)
		auth.GET("/dashboard", Dashboard)
		auth.POST("/predict", Predict)
	}

	shop := r.Group("/")
	shop.Use(middleware.RequireRole(model.RoleVetShop))
	{
		shop.POST("/farmers", AddFarmer)
		shop.GET("/farmers", ListFarmers)
		shop.GET("/doctors", ListDoctors)
	}

	doctor := r.Group("/")
	doctor.Use(middleware.RequireRole(model.RoleVetDoctor))
	{
		doctor.GET("/shops", ListShops)
		doctor.GET("/queries", ListQueries)
	}
}
