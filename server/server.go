// Package server assembles the HTTP application: the fiber adapter, its
// middleware, the error handler and every route group.
package server

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/goliatone/go-devconnect"
	"github.com/goliatone/go-devconnect/config"
	"github.com/goliatone/go-devconnect/posts"
	"github.com/goliatone/go-devconnect/profile"
	"github.com/goliatone/go-devconnect/provider/github"
	"github.com/goliatone/go-devconnect/repository"
	"github.com/goliatone/go-router"
)

// Server wraps the router adapter and its collaborators
type Server struct {
	srv    router.Server[*fiber.App]
	cfg    *config.Config
	logger devconnect.Logger
	tokens *devconnect.TokenServiceImpl
}

// Option customizes the server
type Option func(*options)

type options struct {
	github profile.RepoLister
}

// WithGithub replaces the GitHub client
func WithGithub(gh profile.RepoLister) Option {
	return func(o *options) {
		o.github = gh
	}
}

// New builds the application over the given repositories
func New(cfg *config.Config, repos repository.Manager, logger devconnect.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = devconnect.DefaultLogger()
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.github == nil {
		o.github = github.New(github.Config{
			APIURL:  cfg.Github.APIURL,
			Token:   cfg.Github.Token,
			Timeout: cfg.Github.Timeout,
		})
	}

	repos.MustValidate()

	srv := router.NewFiberAdapter(func(_ *fiber.App) *fiber.App {
		app := fiber.New(fiber.Config{
			AppName:               "devconnect",
			ReadTimeout:           cfg.Server.ReadTimeout,
			ErrorHandler:          devconnect.HTTPErrorHandler(logger),
			DisableStartupMessage: true,
		})
		app.Use(recover.New(recover.Config{EnableStackTrace: cfg.Debug}))
		app.Use(requestid.New())
		app.Use(accessLog(logger))
		return app
	})
	srv.Router().WithLogger(routerLogger{logger})

	s := &Server{
		srv:    srv,
		cfg:    cfg,
		logger: logger,
		tokens: devconnect.NewTokenServiceFromConfig(cfg, logger),
	}

	s.routes(repos, o)

	return s
}

func (s *Server) routes(repos repository.Manager, o *options) {
	users := repos.Users()
	hasher := devconnect.NewBcryptHasher(s.cfg.Auth.BcryptCost)

	httpAuth := devconnect.NewRouteAuthenticator(s.tokens, s.cfg).
		WithLogger(s.logger)
	if s.cfg.Auth.VerifyUserExists {
		httpAuth.WithUserCheck(users)
	}
	protected := httpAuth.ProtectedRoute()

	provider := devconnect.NewUserProvider(users, hasher).WithLogger(s.logger)
	auther := devconnect.NewAuthenticator(provider, s.tokens).WithLogger(s.logger)

	r := s.srv.Router()

	r.Get("/", func(c router.Context) error {
		return c.JSON(router.StatusOK, devconnect.MessageResponse{Msg: "API Running"})
	}).SetName("health")

	devconnect.RegisterAuthRoutes(r, protected,
		devconnect.WithUsers(users),
		devconnect.WithAuther(auther),
		devconnect.WithRegisterer(devconnect.NewRegisterUserHandler(users, hasher)),
		devconnect.WithControllerLogger(s.logger),
		devconnect.WithDebug(s.cfg.Debug),
		devconnect.WithHashid(s.cfg.Auth.UseHashid),
	)

	profiles := profile.NewService(repos.Profiles(), users, repos.Posts(), o.github).
		WithLogger(s.logger)
	profile.RegisterRoutes(r, protected, profile.NewController(profiles, s.logger))

	wall := posts.NewService(repos.Posts(), users).WithLogger(s.logger)
	posts.RegisterRoutes(r, protected, posts.NewController(wall))
}

// App exposes the fiber app with every route registered
func (s *Server) App() *fiber.App {
	return s.srv.WrappedRouter()
}

// Tokens exposes the token service used to sign and verify credentials
func (s *Server) Tokens() *devconnect.TokenServiceImpl {
	return s.tokens
}

// Listen blocks serving on the configured address
func (s *Server) Listen() error {
	s.logger.Info("server listening", "address", s.cfg.Server.Address)
	return s.srv.Serve(s.cfg.Server.Address)
}

// Shutdown stops accepting connections and waits for in flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	timeout := s.cfg.Server.ShutdownTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	return s.App().ShutdownWithTimeout(timeout)
}
