package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"union-site-backend/internal/config"
	"union-site-backend/internal/gateway"
	"union-site-backend/internal/gateway/rest"
	"union-site-backend/internal/handlers"
	"union-site-backend/internal/middleware"
	"union-site-backend/internal/models"
	"union-site-backend/internal/repository"
	"union-site-backend/internal/router"
	"union-site-backend/internal/service"
	"union-site-backend/internal/storage"
	"union-site-backend/internal/store"
	"union-site-backend/pkg/cache"
	"union-site-backend/pkg/logger"
)

const mediaBucket = "media"

// landingShell is the built-in root markup used when no "home" fragment is
// available; the root route must always have a cache entry.
const landingShell = `<main class="landing"><section class="landing__latest"></section><section class="landing__events"></section></main>`

type Application struct {
	cfg *config.Config

	db      *gorm.DB
	cache   *cache.Cache
	state   *store.State
	gateway *gateway.Gateway

	services  serviceContainer
	handlers  handlerContainer
	appRouter *router.Router

	rateLimiter *middleware.RateLimiter
	engine      *gin.Engine
	server      *http.Server
}

type serviceContainer struct {
	Auth    *service.AuthService
	News    *service.NewsService
	Events  *service.EventService
	Journal *service.JournalService
	Members *service.MemberService
	Tags    *service.TagService
	Contact *service.ContactService
	Editor  *service.EditorService
	Loader  *service.Loader
}

type handlerContainer struct {
	Site    *handlers.SiteHandler
	Auth    *handlers.AuthHandler
	News    *handlers.NewsHandler
	Events  *handlers.EventHandler
	Journal *handlers.JournalHandler
	Members *handlers.MemberHandler
	Tags    *handlers.TagHandler
	Contact *handlers.ContactHandler
	Editor  *handlers.EditorHandler
	Upload  *handlers.UploadHandler
}

func New(cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	app := &Application{
		cfg:   cfg,
		state: store.New(),
	}

	if err := app.initGateway(); err != nil {
		return nil, err
	}
	app.initCache()
	app.initServices()
	app.initAppRouter()
	app.initHandlers()
	app.initEngine()

	app.server = &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        app.engine,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	return app, nil
}

func (a *Application) Run() error {
	logger.Info("Server starting", map[string]interface{}{
		"port":        a.cfg.Port,
		"backend":     a.cfg.DataBackend,
		"environment": a.cfg.Environment,
	})

	return a.server.ListenAndServe()
}

func (a *Application) Shutdown(ctx context.Context) error {
	if a.services.Editor != nil {
		a.services.Editor.CloseAll()
	}
	if a.rateLimiter != nil {
		a.rateLimiter.Stop()
	}

	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			return err
		}
	}

	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			logger.Error(err, "Failed to close cache connection", nil)
		}
	}

	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			sqlDB.Close()
		}
	}

	return nil
}

func (a *Application) Router() *gin.Engine {
	return a.engine
}

// initGateway wires the persistence surface for the configured backend:
// the hosted rows API, or Postgres with local disk storage. Auth always
// goes through the hosted auth service.
func (a *Application) initGateway() error {
	var restClient *rest.Client
	if a.cfg.BaaSAnonKey != "" {
		client, err := rest.NewClient(a.cfg.BaaSURL, rest.Options{
			AnonKey:    a.cfg.BaaSAnonKey,
			ServiceKey: a.cfg.BaaSServiceKey,
		})
		if err != nil {
			return err
		}
		restClient = client
	}

	switch a.cfg.DataBackend {
	case "postgres":
		if err := a.initDatabase(); err != nil {
			return err
		}
		if err := a.runMigrations(); err != nil {
			return err
		}

		disk, err := storage.NewDisk(a.cfg.UploadDir, "/uploads")
		if err != nil {
			return err
		}

		var auth gateway.AuthGateway
		if restClient != nil {
			auth = restClient.Gateway(mediaBucket).Auth
		} else {
			logger.Warn("No hosted auth credentials configured, sign-in disabled", nil)
		}
		a.gateway = repository.NewGateway(a.db, auth, disk)
		return nil

	case "rest":
		if restClient == nil {
			return fmt.Errorf("rest backend requires BAAS_ANON_KEY")
		}
		a.gateway = restClient.Gateway(mediaBucket)
		return nil

	default:
		return fmt.Errorf("unknown data backend %q", a.cfg.DataBackend)
	}
}

func (a *Application) initDatabase() error {
	logger.Info("Connecting to database", nil)

	db, err := gorm.Open(postgres.Open(a.cfg.DatabaseURL), &gorm.Config{
		Logger: logger.NewGormLogger(),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	a.db = db
	return nil
}

func (a *Application) runMigrations() error {
	logger.Info("Running database migrations", nil)

	if err := a.db.AutoMigrate(
		&models.Member{},
		&models.Tag{},
		&models.News{},
		&models.Event{},
		&models.JournalIssue{},
		&models.Registration{},
		&models.Contact{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	statements := []string{
		"CREATE INDEX IF NOT EXISTS idx_news_published_created ON news(created_at DESC) WHERE published = true",
		"CREATE INDEX IF NOT EXISTS idx_events_starts_at ON events(starts_at ASC)",
		`CREATE INDEX IF NOT EXISTS idx_members_order ON members("order" ASC)`,
	}
	for _, stmt := range statements {
		if err := a.db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	logger.Info("Database migration completed", nil)
	return nil
}

func (a *Application) initCache() {
	enabled := a.cfg.EnableCache && a.cfg.EnableRedis
	c, err := cache.NewCache(a.cfg.RedisURL, enabled)
	if err != nil {
		logger.Error(err, "Redis unavailable, continuing without entity cache", nil)
		c, _ = cache.NewCache("", false)
	}
	a.cache = c
}

func (a *Application) initServices() {
	a.services = serviceContainer{
		Auth:    service.NewAuthService(a.gateway, a.state, a.cfg.JWTSecret),
		News:    service.NewNewsService(a.gateway, a.state, a.cache),
		Events:  service.NewEventService(a.gateway, a.state, a.cache),
		Journal: service.NewJournalService(a.gateway, a.state, a.cache),
		Members: service.NewMemberService(a.gateway, a.state, a.cache),
		Tags:    service.NewTagService(a.gateway, a.state, a.cache),
		Contact: service.NewContactService(a.gateway),
		Editor: service.NewEditorService(
			time.Duration(a.cfg.PreviewDebounceMs)*time.Millisecond,
			time.Duration(a.cfg.PreviewAutoRefreshSec)*time.Second,
		),
	}
	a.services.Loader = service.NewLoader(
		a.services.News,
		a.services.Events,
		a.services.Journal,
		a.services.Members,
		a.services.Tags,
		a.state,
	)
}

func (a *Application) initAppRouter() {
	var fragments router.FragmentSource
	if a.cfg.FragmentsURL != "" {
		fragments = router.NewHTTPFragmentSource(a.cfg.FragmentsURL, nil)
	} else {
		fragments = router.NewDirFragmentSource(a.cfg.FragmentsDir)
	}

	a.appRouter = router.New(a.state, fragments, a.services.Loader, router.Options{
		SiteName:        a.cfg.SiteName,
		SiteDescription: a.cfg.SiteDescription,
	})

	// The root route is served from the cache only, so seed it before the
	// first navigation can happen.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if html, err := fragments.Fragment(ctx, "home"); err == nil {
		a.appRouter.SeedRoot(html)
	} else {
		logger.Warn("Home fragment unavailable, seeding built-in landing shell", nil)
		a.appRouter.SeedRoot(landingShell)
	}
}

func (a *Application) initHandlers() {
	a.handlers = handlerContainer{
		Site:    handlers.NewSiteHandler(a.appRouter, a.state, a.services.Events, a.services.Contact),
		Auth:    handlers.NewAuthHandler(a.services.Auth),
		News:    handlers.NewNewsHandler(a.services.News),
		Events:  handlers.NewEventHandler(a.services.Events),
		Journal: handlers.NewJournalHandler(a.services.Journal),
		Members: handlers.NewMemberHandler(a.services.Members),
		Tags:    handlers.NewTagHandler(a.services.Tags),
		Contact: handlers.NewContactHandler(a.services.Contact),
		Editor:  handlers.NewEditorHandler(a.services.Editor),
		Upload:  handlers.NewUploadHandler(a.gateway.Storage, a.cfg.MaxUploadSize),
	}
}

func (a *Application) initEngine() {
	if a.cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(logger.GinLogger())

	engine.Use(cors.New(cors.Config{
		AllowOrigins:     a.cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if a.cfg.EnableMetrics {
		engine.Use(middleware.MetricsMiddleware())
		engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	a.rateLimiter = middleware.NewRateLimiter(a.cfg.RateLimitRequests, a.cfg.RateLimitWindow, a.cfg.RateLimitBurst)
	engine.Use(a.rateLimiter.Middleware())

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if a.cfg.DataBackend == "postgres" {
		engine.Static("/uploads", a.cfg.UploadDir)
	}

	api := engine.Group("/api")
	{
		api.GET("/page", a.handlers.Site.Page)
		api.POST("/news/more", a.handlers.Site.MoreNews)
		api.GET("/news", a.handlers.News.List)
		api.GET("/news/:id", a.handlers.News.Get)
		api.POST("/registrations", a.handlers.Site.Register)
		api.POST("/contact", a.handlers.Site.Contact)

		api.POST("/auth/login", a.handlers.Auth.Login)
		api.POST("/auth/logout", a.handlers.Auth.Logout)
		api.GET("/auth/session", a.handlers.Auth.Session)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(a.services.Auth), middleware.AdminMiddleware())
	{
		admin.POST("/news", a.handlers.News.Create)
		admin.PUT("/news/:id", a.handlers.News.Update)
		admin.DELETE("/news/:id", a.handlers.News.Delete)

		admin.GET("/events", a.handlers.Events.List)
		admin.POST("/events", a.handlers.Events.Create)
		admin.PUT("/events/:id", a.handlers.Events.Update)
		admin.DELETE("/events/:id", a.handlers.Events.Delete)
		admin.GET("/events/:id/registrations", a.handlers.Events.Registrations)
		admin.PUT("/registrations/:id", a.handlers.Events.UpdateRegistration)

		admin.GET("/journal", a.handlers.Journal.List)
		admin.POST("/journal", a.handlers.Journal.Create)
		admin.DELETE("/journal/:id", a.handlers.Journal.Delete)

		admin.GET("/members", a.handlers.Members.List)
		admin.POST("/members", a.handlers.Members.Create)
		admin.PUT("/members/:id", a.handlers.Members.Update)
		admin.DELETE("/members/:id", a.handlers.Members.Delete)

		admin.GET("/tags", a.handlers.Tags.List)
		admin.POST("/tags", a.handlers.Tags.Create)
		admin.DELETE("/tags/:id", a.handlers.Tags.Delete)

		admin.GET("/contacts", a.handlers.Contact.List)
		admin.DELETE("/contacts/:id", a.handlers.Contact.Delete)

		admin.POST("/uploads", a.handlers.Upload.Upload)
		admin.DELETE("/uploads", a.handlers.Upload.Delete)
		admin.POST("/uploads/rename", a.handlers.Upload.Rename)

		admin.GET("/editor/types", a.handlers.Editor.BlockTypes)
		admin.POST("/editor/sessions", a.handlers.Editor.Create)
		admin.GET("/editor/sessions/:id", a.handlers.Editor.Get)
		admin.POST("/editor/sessions/:id/ops", a.handlers.Editor.Apply)
		admin.GET("/editor/sessions/:id/preview", a.handlers.Editor.Preview)
		admin.DELETE("/editor/sessions/:id", a.handlers.Editor.Close)
	}
}
