package httpapp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"bio_showcase/internal/config"
	appmiddleware "bio_showcase/internal/middleware"
	httprouters "bio_showcase/internal/transport/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// Static serves uploaded files from a local directory. Empty Dir disables it.
type Static struct {
	Prefix string
	Dir    string
}

type Server struct {
	log             *slog.Logger
	e               *echo.Echo
	routers         *httprouters.Routers
	addr            string
	static          Static
	shutdownTimeout time.Duration
}

func New(log *slog.Logger, cfg config.HTTPConfig, routers *httprouters.Routers, static Static) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Server.ReadTimeout = cfg.ReadTimeout
	e.Server.WriteTimeout = cfg.WriteTimeout

	validate := validator.New()
	e.Validator = &CustomValidator{validator: validate}

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPut, http.MethodPost, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(middleware.Recover())
	e.Use(appmiddleware.PrometheusMetrics)

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogRemoteIP: true,
		LogLatency:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				slog.String("URI", v.URI),
				slog.Int("status", v.Status),
				slog.String("remote ip", v.RemoteIP),
				slog.Duration("latency", v.Latency),
			)

			return nil
		},
	}))

	shutdown := cfg.ShutdownTimeout
	if shutdown <= 0 {
		shutdown = 10 * time.Second
	}

	return &Server{
		log:             log,
		e:               e,
		routers:         routers,
		addr:            net.JoinHostPort(cfg.Host, cfg.Port),
		static:          static,
		shutdownTimeout: shutdown,
	}
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.e
}

func (s *Server) MustRun() {
	const op = "http.Server.MustRun"

	s.log.Info(op, slog.String("addr", s.addr))

	if err := s.Start(); err != nil {
		panic(err)
	}
}

func (s *Server) Start() error {
	const op = "http.Server.Start"

	if err := s.e.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s server stopped: %w", op, err)
	}

	return nil
}

func (s *Server) Stop() error {
	const op = "http.Server.Stop"

	optCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	s.log.Info("stopping", slog.String("op", op))

	if err := s.e.Shutdown(optCtx); err != nil {
		return fmt.Errorf("%s could not shutdown server gracefuly: %w", op, err)
	}

	return nil
}

func (s *Server) BuildRouters() {
	s.e.GET("/health", s.routers.Health)
	s.e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	if s.static.Dir != "" {
		s.e.Static(s.static.Prefix, s.static.Dir)
	}

	api := s.e.Group("/api/v1")
	{
		api.GET("/gallery", s.routers.ListGallery)
		api.GET("/awards", s.routers.ListAwards)
		api.GET("/services", s.routers.ListServices)
		api.GET("/about", s.routers.ListAbout)

		api.GET("/feed", s.routers.Feed)
		api.GET("/feed/categories", s.routers.FeedCategories)
		api.GET("/slideshow/ws", s.routers.Slideshow)

		api.GET("/language", s.routers.Languages)
		api.POST("/language", s.routers.SetLanguage)

		api.POST("/admin/login", s.routers.Login)

		admin := api.Group("/admin", s.routers.AdminOnly)
		{
			admin.GET("/gallery/:id", s.routers.GetGalleryItem)
			admin.POST("/gallery", s.routers.CreateGalleryItem)
			admin.PUT("/gallery/:id", s.routers.UpdateGalleryItem)
			admin.DELETE("/gallery/:id", s.routers.DeleteGalleryItem)

			admin.GET("/awards/:id", s.routers.GetAward)
			admin.POST("/awards", s.routers.CreateAward)
			admin.PUT("/awards/:id", s.routers.UpdateAward)
			admin.DELETE("/awards/:id", s.routers.DeleteAward)

			admin.GET("/services/:id", s.routers.GetService)
			admin.POST("/services", s.routers.CreateService)
			admin.PUT("/services/:id", s.routers.UpdateService)
			admin.DELETE("/services/:id", s.routers.DeleteService)

			admin.GET("/about/:id", s.routers.GetAboutSection)
			admin.POST("/about", s.routers.CreateAboutSection)
			admin.PUT("/about/:id", s.routers.UpdateAboutSection)
			admin.DELETE("/about/:id", s.routers.DeleteAboutSection)

			admin.POST("/media/upload", s.routers.UploadMedia)
			admin.DELETE("/media/*", s.routers.DeleteMedia)
		}
	}
}
