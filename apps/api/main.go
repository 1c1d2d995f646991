package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	echoapi "github.com/pulseportal/pulse/apps/api/echo"
	"github.com/pulseportal/pulse/core"
	"github.com/pulseportal/pulse/core/certificate"
	"github.com/pulseportal/pulse/core/event"
	"github.com/pulseportal/pulse/core/user"
	emailsvc "github.com/pulseportal/pulse/services/email"
	logsvc "github.com/pulseportal/pulse/services/logger"
	"github.com/pulseportal/pulse/storage/database"
	inmemdb "github.com/pulseportal/pulse/storage/database/inmem"
	pgdb "github.com/pulseportal/pulse/storage/database/pg"
)

const shutdownTimeout = 5 * time.Second

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	var logger core.Logger
	if conf.Debug || conf.RollbarToken == "" {
		logger = logsvc.NewStdLogger(std)
	} else {
		rollbarLogger := logsvc.NewRollbarLogger(std, conf)
		rollbarLogger.Enable(true)
		logger = rollbarLogger
	}

	// set up repositories; an unconfigured database means demo mode with the
	// seeded in-memory store
	var (
		userRepo user.Repository
		evtRepo  event.Repository
		certRepo certificate.Repository
	)
	if conf.Database.IsConfigured() {
		db, err := database.Open(conf)
		if err != nil {
			logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
		}
		defer func() {
			if err = db.Close(); err != nil {
				logger.Error(fmt.Sprintf("closing database: %v", err), err)
			}
		}()
		if err = database.Migrate(db); err != nil {
			logger.Fatal(fmt.Sprintf("migrating database: %v", err), err)
		}
		userRepo = pgdb.NewUserRepository(db)
		evtRepo = pgdb.NewEventRepository(db)
		certRepo = pgdb.NewCertificateRepository(db)
	} else {
		logger.Info("no database configured; running in demo mode")
		db, err := inmemdb.Open()
		if err != nil {
			logger.Fatal(fmt.Sprintf("setting up demo store: %v", err), err)
		}
		userRepo = inmemdb.NewUserRepository(db)
		evtRepo = inmemdb.NewEventRepository(db)
		certRepo = inmemdb.NewCertificateRepository(db)
	}

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}
	usrSvc := user.NewService(userRepo, mailSvc, conf)
	evtSvc := event.NewService(evtRepo)
	certSvc := certificate.NewService(certRepo, evtSvc, mailSvc, conf)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:       conf,
			Logger:     logger,
			UserSvc:    usrSvc,
			EventSvc:   evtSvc,
			CertSvc:    certSvc,
			Validate:   validate,
			Translator: translator,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err := <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func newTranslator() ut.Translator {
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	translator, _ := uni.GetTranslator(enLocale.Locale())
	return translator
}
