package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/pulseportal/pulse/core"
	"github.com/pulseportal/pulse/core/event"
	"github.com/pulseportal/pulse/core/user"
)

type eventApi struct {
	svc      *event.Service
	userSvc  *user.Service
	validate *validator.Validate
}

func registerEventAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := eventApi{
		svc:      deps.EventSvc,
		userSvc:  deps.UserSvc,
		validate: deps.Validate,
	}

	g.GET("/events", api.query)
	g.POST("/events", api.create, jwt, adminMiddleware())
	g.PUT("/events/:id", api.update, jwt, adminMiddleware())
	g.DELETE("/events/:id", api.destroy, jwt, adminMiddleware())

	rg := g.Group("/event-registration", jwt)
	rg.POST("", api.register)
	rg.GET("", api.myRegistrations)

	g.GET("/registrations/user", api.myRegistrations, jwt)
	g.GET("/admin/registrations", api.allRegistrations, jwt, adminMiddleware())
}

// Handlers

func (api *eventApi) query(ctx echo.Context) error {
	events, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying events")
	}
	if events == nil {
		events = []event.Event{}
	}
	return ctx.JSON(http.StatusOK, events)
}

func (api *eventApi) create(ctx echo.Context) error {
	var data event.NewEvent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEvent")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	evt, err := api.svc.Create(ctx.Request().Context(), claims.Subject, data)
	if err != nil {
		return errors.Wrap(err, "creating event")
	}
	return ctx.JSON(http.StatusCreated, evt)
}

func (api *eventApi) update(ctx echo.Context) error {
	var data event.UpdateEvent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateEvent")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	evt, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) == event.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, event.ErrNotFound.Error())
		}
		return errors.Wrap(err, "updating event")
	}
	return ctx.JSON(http.StatusOK, evt)
}

func (api *eventApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		if errors.Cause(err) == event.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, event.ErrNotFound.Error())
		}
		return errors.Wrap(err, "deleting event")
	}
	return ctx.JSON(http.StatusOK, MessageResponse{Message: "Event deleted successfully"})
}

func (api *eventApi) register(ctx echo.Context) error {
	var data event.RegisterRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to RegisterRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	usr, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	reg, err := api.svc.Register(ctx.Request().Context(), usr, data.EventID)
	if err != nil {
		switch errors.Cause(err) {
		case event.ErrNotFound:
			return echo.NewHTTPError(http.StatusNotFound, event.ErrNotFound.Error())
		case event.ErrEventFull:
			return core.NewValidationError(event.ErrEventFull)
		case event.ErrAlreadyRegistered:
			return core.NewValidationError(event.ErrAlreadyRegistered)
		}
		return errors.Wrap(err, "registering for event")
	}

	msg := "Registration successful"
	if user.IsDemoID(usr.ID) {
		msg = "Registration successful (demo mode)"
	}
	return ctx.JSON(http.StatusOK, RegistrationResponse{
		Success:      true,
		Message:      msg,
		Registration: reg,
	})
}

func (api *eventApi) myRegistrations(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	regs, err := api.svc.UserRegistrations(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "querying user registrations")
	}
	if regs == nil {
		regs = []event.Registration{}
	}
	return ctx.JSON(http.StatusOK, regs)
}

func (api *eventApi) allRegistrations(ctx echo.Context) error {
	regs, err := api.svc.AllRegistrations(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying registrations")
	}
	if regs == nil {
		regs = []event.Registration{}
	}
	return ctx.JSON(http.StatusOK, regs)
}

type (
	MessageResponse struct {
		Message string `json:"message"`
	}

	RegistrationResponse struct {
		Success      bool               `json:"success"`
		Message      string             `json:"message"`
		Registration event.Registration `json:"registration"`
	}
)
