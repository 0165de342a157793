package routes

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"lumarise-backend/config"
	"lumarise-backend/controllers"
	"lumarise-backend/logger"
	"lumarise-backend/metrics"
	"lumarise-backend/middleware"
	"lumarise-backend/presenter"
	"lumarise-backend/services"
	"lumarise-backend/storage"
	"lumarise-backend/utils"
)

// Deps are the long-lived collaborators built once in main.
type Deps struct {
	DB       *gorm.DB
	Store    storage.Backend
	Images   *services.ImageService
	Metrics  *metrics.Degradation
	Gatherer prometheus.Gatherer
	Mailer   utils.Mailer
	Limiter  middleware.RateStore // nil disables rate limiting
	Log      *logger.Logger
}

func parseCorsOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// Resources is the flat CRUD registry. Search, ordering and file fields of
// each entry live in its services.Resource definition.
func Resources(tx *services.Transactor, d Deps) []controllers.Mounter {
	return []controllers.Mounter{
		resource(services.Bookings, presenter.Media.Booking, tx, d),
		resource(services.OfflineBookings, presenter.Media.OfflineBooking, tx, d),
		resource(services.BookingRequests, presenter.Media.BookingRequest, tx, d),
		resource(services.UserProfiles, presenter.Media.UserProfile, tx, d),
		resource(services.Testimonials, presenter.Media.Testimonial, tx, d),
		resource(services.VideoItems, presenter.Media.VideoItem, tx, d),
		resource(services.MediaItems, presenter.Media.MediaItem, tx, d),
	}
}

func resource[T, V any](def *services.Resource[T], view func(presenter.Media, *T) V, tx *services.Transactor, d Deps) controllers.Mounter {
	svc := services.NewResourceService(def, tx, d.Images, d.Log)
	return controllers.NewResourceController(svc, view, d.Store, d.Log)
}

// Controllers builds every controller mounted by SetupRouter.
func Controllers(cfg *config.Config, d Deps) []controllers.Mounter {
	tx := services.NewTransactor(d.DB, d.Store, d.Log, d.Metrics)

	rooms := services.NewRoomService(d.DB)
	writes := services.NewRoomWriteService(tx, rooms, services.NewGalleryService(), d.Images, d.Log, d.Metrics)

	loginLimit := middleware.RateLimit(middleware.RateLimitPolicy{
		Name:   "login",
		Window: cfg.Redis.Window,
		Limit:  cfg.Redis.LoginLimit,
	}, d.Limiter, d.Log)
	enquiryLimit := middleware.RateLimit(middleware.RateLimitPolicy{
		Name:   "enquiry",
		Window: cfg.Redis.Window,
		Limit:  cfg.Redis.EnquiryLimit,
	}, d.Limiter, d.Log)

	out := []controllers.Mounter{
		controllers.NewRoomController(rooms, writes, d.Store, d.Log),
		controllers.NewBookingController(services.NewBookingService(d.DB, d.Log), d.Log),
		controllers.NewAuthController(services.NewAuthService(d.DB, d.Log), loginLimit, d.Log),
		controllers.NewEnquiryController(services.NewEnquiryService(d.Mailer, cfg.SMTP.Recipient, d.Log), enquiryLimit, d.Log),
	}
	return append(out, Resources(tx, d)...)
}

// SetupRouter mounts every controller at the root and again under the API
// prefix.
func SetupRouter(cfg *config.Config, d Deps) *gin.Engine {
	if d.Log == nil {
		d.Log = logger.Nop()
	}

	r := gin.New()
	r.RedirectTrailingSlash = false

	// X-Forwarded-For feeds ClientIP, and so the rate limit keys; only
	// configured proxies may set it.
	proxies := cfg.App.Proxies()
	trust, err := middleware.TrustedProxies(proxies)
	if err == nil {
		err = r.SetTrustedProxies(proxies)
	}
	if err != nil {
		d.Log.Error(context.Background(), "router.trusted_proxies_invalid", err)
		trust, _ = middleware.TrustedProxies(nil)
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(gin.Recovery(), trust, middleware.RequestLogger(d.Log))

	origins := parseCorsOrigins(cfg.App.CORSOrigins)
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if d.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	mounters := Controllers(cfg, d)
	for _, g := range groups(r, cfg.App.APIPrefix) {
		for _, m := range mounters {
			m.Mount(g)
		}
	}

	files := mediaFiles(d.Store)
	r.NoRoute(func(c *gin.Context) {
		if files != nil && files(c) {
			return
		}
		utils.JSONError(c, http.StatusNotFound, "Not found.")
	})
	return r
}

// mediaFiles serves the local backend's uploads. It runs as the NoRoute
// fallback because the media resource owns /media/:id/; stored objects always
// sit one directory deeper.
func mediaFiles(store storage.Backend) func(c *gin.Context) bool {
	local, ok := store.(*storage.Local)
	if !ok {
		return nil
	}
	prefix := local.URLPrefix()
	fs := http.StripPrefix(strings.TrimRight(prefix, "/"), http.FileServer(gin.Dir(local.Root(), false)))
	return func(c *gin.Context) bool {
		method := c.Request.Method
		if (method != http.MethodGet && method != http.MethodHead) || !strings.HasPrefix(c.Request.URL.Path, prefix) {
			return false
		}
		fs.ServeHTTP(c.Writer, c.Request)
		return true
	}
}

func groups(r *gin.Engine, prefix string) []*gin.RouterGroup {
	out := []*gin.RouterGroup{r.Group("/")}
	prefix = "/" + strings.Trim(prefix, "/")
	if prefix != "/" {
		out = append(out, r.Group(prefix))
	}
	return out
}
