package handlers

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/engineer-marketplace/internal/auth"
	"github.com/justsurfingit/engineer-marketplace/internal/logging"
	"github.com/justsurfingit/engineer-marketplace/internal/models"
	"github.com/justsurfingit/engineer-marketplace/internal/services"
	"github.com/justsurfingit/engineer-marketplace/internal/session"
	"go.uber.org/zap"
)

// Deps is everything the router wires into handlers.
type Deps struct {
	Sessions *session.Store
	Auth     *services.AuthService
	Jobs     *services.JobService
	Apps     *services.ApplicationService
	Matcher  *services.MatcherService
	Ratings  *services.RatingService
	Profiles *services.ProfileService
	Wizard   *services.WizardService
	LLM      *services.LLMService
	Logger   *zap.Logger

	// Empty allows every origin.
	AllowedOrigins []string
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// allowedMethods lists the methods registered for path.
func allowedMethods(routes gin.RoutesInfo, path string) string {
	var methods []string
	for _, route := range routes {
		if routeMatches(route.Path, path) && !slices.Contains(methods, route.Method) {
			methods = append(methods, route.Method)
		}
	}
	return strings.Join(methods, ", ")
}

func routeMatches(pattern, path string) bool {
	want := strings.Split(strings.Trim(pattern, "/"), "/")
	got := strings.Split(strings.Trim(path, "/"), "/")
	if len(want) != len(got) {
		return false
	}
	for i := range want {
		if !strings.HasPrefix(want[i], ":") && want[i] != got[i] {
			return false
		}
	}
	return true
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery(), logging.Middleware(d.Logger))

	config := cors.DefaultConfig()
	if len(d.AllowedOrigins) == 0 {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = d.AllowedOrigins
	}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(config))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		if c.Writer.Header().Get("Allow") == "" {
			c.Header("Allow", allowedMethods(r.Routes(), c.Request.URL.Path))
		}
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})

	r.GET("/api/v1/health", HealthCheck)

	authHandler := NewAuthHandler(d.Auth, d.Logger)
	jobHandler := NewJobHandler(d.Jobs, d.Apps, d.Logger)
	engineerHandler := NewEngineerHandler(d.Apps, d.Profiles, d.Ratings, d.Matcher, d.Logger)
	wizardHandler := NewWizardHandler(d.Wizard, d.Logger)
	chatHandler := NewChatHandler(d.LLM, d.Logger)
	companyHandler := &CompanyHandler{
		JobService:         d.Jobs,
		ApplicationService: d.Apps,
		MatcherService:     d.Matcher,
		ProfileService:     d.Profiles,
		RatingService:      d.Ratings,
		Logger:             d.Logger,
	}

	signedIn := auth.Require(d.Logger)
	engineerOnly := auth.Require(d.Logger, models.UserTypeEngineer)
	companyOnly := auth.Require(d.Logger, models.UserTypeCompany)

	api := r.Group("/api", auth.Session(d.Sessions))
	{
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/logout", signedIn, authHandler.Logout)

		// Job Routes
		api.GET("/jobs", jobHandler.ListJobs)
		api.GET("/jobs/:id", jobHandler.GetJob)
		api.POST("/jobs/:id/apply", engineerOnly, jobHandler.Apply)

		engineer := api.Group("/engineer", engineerOnly)
		engineer.GET("/applications", engineerHandler.Applications)
		engineer.PUT("/profile", engineerHandler.SaveProfile)
		engineer.GET("/ratings", engineerHandler.Ratings)
		engineer.GET("/offers", engineerHandler.Offers)

		// the wizard answers unauthenticated callers with its own redirect
		api.GET("/wizard", wizardHandler.Show)
		api.PUT("/wizard/answer", wizardHandler.Answer)
		api.POST("/wizard/next", wizardHandler.Next)
		api.POST("/wizard/back", wizardHandler.Back)

		api.POST("/chat", chatHandler.Chat)

		company := api.Group("/company", companyOnly)
		company.GET("/dashboard", companyHandler.Dashboard)
		company.GET("/projects", companyHandler.ListProjects)
		company.POST("/projects", companyHandler.CreateProject)
		company.PUT("/projects/:id", companyHandler.UpdateProject)
		company.GET("/applications", companyHandler.ListApplications)
		company.PATCH("/applications/:id", companyHandler.UpdateApplication)
		company.GET("/matching", companyHandler.Matching)
		company.POST("/matching/link", companyHandler.Link)
		company.GET("/engineers/:id", companyHandler.Engineer)
		company.POST("/engineers/:id/offers", companyHandler.SendOffer)
		company.GET("/ratings", companyHandler.Ratings)
		company.PUT("/profile", companyHandler.SaveProfile)
	}

	return r
}
