package echoapi

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/pulseportal/pulse/core"
	"github.com/pulseportal/pulse/core/certificate"
	"github.com/pulseportal/pulse/core/user"
)

type certificateApi struct {
	svc      *certificate.Service
	userSvc  *user.Service
	validate *validator.Validate
}

func registerCertificateAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := certificateApi{
		svc:      deps.CertSvc,
		userSvc:  deps.UserSvc,
		validate: deps.Validate,
	}

	g.GET("/certificates", api.query, jwt)
	g.POST("/certificates", api.issue, jwt)

	// un-authed; renders sample values when params are missing
	g.GET("/certificate/generate", api.render)

	g.GET("/certificate-templates", api.queryTemplates)
	g.POST("/certificate-templates", api.createTemplate, jwt, adminMiddleware())
}

// Handlers

// query lists certificates: students see their own, admins see all.
func (api *certificateApi) query(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	var certs []certificate.Certificate
	if claims.IsAdmin() {
		certs, err = api.svc.QueryAll(ctx.Request().Context())
	} else {
		certs, err = api.svc.QueryForStudent(ctx.Request().Context(), claims.Subject)
	}
	if err != nil {
		return errors.Wrap(err, "querying certificates")
	}
	if certs == nil {
		certs = []certificate.Certificate{}
	}
	return ctx.JSON(http.StatusOK, certs)
}

func (api *certificateApi) issue(ctx echo.Context) error {
	var data certificate.IssueCertificate
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to IssueCertificate")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	usr, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	cert, err := api.svc.Issue(ctx.Request().Context(), usr, data)
	if err != nil {
		if errors.Cause(err) == certificate.ErrAlreadyIssued {
			return core.NewValidationError(certificate.ErrAlreadyIssued)
		}
		return err
	}
	return ctx.JSON(http.StatusCreated, cert)
}

func (api *certificateApi) render(ctx echo.Context) error {
	studentName := ctx.QueryParam("studentName")
	if studentName == "" {
		studentName = "Sample Student"
	}
	eventName := ctx.QueryParam("eventName")
	if eventName == "" {
		eventName = "Sample Event"
	}
	eventDate := ctx.QueryParam("eventDate")
	if eventDate == "" {
		eventDate = time.Now().Format("2006-01-02")
	}
	certificateID := ctx.QueryParam("certificateId")
	if certificateID == "" {
		certificateID = "SAMPLE-ID"
	}

	svg := certificate.RenderSVG(studentName, eventName, eventDate, certificateID)
	return ctx.Blob(http.StatusOK, "image/svg+xml", []byte(svg))
}

func (api *certificateApi) queryTemplates(ctx echo.Context) error {
	tpls, err := api.svc.QueryAllTemplates(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying templates")
	}
	if tpls == nil {
		tpls = []certificate.Template{}
	}
	return ctx.JSON(http.StatusOK, tpls)
}

func (api *certificateApi) createTemplate(ctx echo.Context) error {
	var data certificate.NewTemplate
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTemplate")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	tpl, err := api.svc.CreateTemplate(ctx.Request().Context(), claims.Subject, data)
	if err != nil {
		return errors.Wrap(err, "creating template")
	}
	return ctx.JSON(http.StatusCreated, tpl)
}
