package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/pulseportal/pulse/core"
	"github.com/pulseportal/pulse/core/certificate"
	"github.com/pulseportal/pulse/core/event"
	"github.com/pulseportal/pulse/core/user"
)

type (
	// ServerDeps carries everything the API server needs; wired in main.
	ServerDeps struct {
		Conf           *core.Config
		Logger         core.Logger
		DisableReqLogs bool

		UserSvc  *user.Service
		EventSvc *event.Service
		CertSvc  *certificate.Service

		Validate   *validator.Validate
		Translator ut.Translator
	}

	Server interface {
		http.Handler
		Start()
		Errors() <-chan error
		ShutdownSignal() <-chan os.Signal
		Shutdown(context.Context) error
		Close() error
	}

	server struct {
		deps     ServerDeps
		app      *echo.Echo
		errChan  chan error
		shutChan chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(deps ServerDeps) Server {
	s := &server{
		deps:     deps,
		app:      echo.New(),
		errChan:  make(chan error, 1),
		shutChan: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutChan, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.deps.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.deps.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.SignalShutdown)
	s.app.HideBanner = true
	s.app.Debug = conf.Debug

	s.app.GET("/", home)

	api := s.app.Group("/api")
	jwt := newJWTMiddleware(conf)

	registerUserAPI(api, jwt, s.deps)
	registerEventAPI(api, jwt, s.deps)
	registerCertificateAPI(api, jwt, s.deps)
}

func (s *server) Start() {
	s.errChan <- s.app.Start(s.deps.Conf.Server.Address())
}

// Errors surfaces the listener error; main selects on it.
func (s *server) Errors() <-chan error { return s.errChan }

// ShutdownSignal surfaces OS signals and internal shutdown requests.
func (s *server) ShutdownSignal() <-chan os.Signal { return s.shutChan }

// SignalShutdown requests a graceful shutdown; called by the error handler
// when an unrecoverable error is caught.
func (s *server) SignalShutdown() {
	s.shutChan <- syscall.SIGTERM
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) Close() error {
	return s.app.Close()
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to PULSE Portal API!")
}
