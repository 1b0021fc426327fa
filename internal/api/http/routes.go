package httpapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/DhruvDarbha/Env/internal/inspection"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "chart_generator"

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *inspection.Service) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"service": ServiceName,
		})
	})

	app.Get("/generate_ripeness_chart/:supplierEmail", chartHandler(service, inspection.ChartRipeness))
	app.Get("/generate_shelf_life_chart/:supplierEmail", chartHandler(service, inspection.ChartShelfLife))

	app.Get("/supplier_summary/:supplierEmail", func(c *fiber.Ctx) error {
		req, err := parseSupplierParam(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		summary, err := service.Summary(c.UserContext(), req.Email)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(summary)
	})
}

func chartHandler(service *inspection.Service, kind inspection.ChartKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := parseSupplierParam(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		img, err := service.Chart(c.UserContext(), kind, req.Email)
		if err != nil {
			return toHTTPError(err)
		}

		c.Set(fiber.HeaderContentType, "image/png")
		return c.Send(img)
	}
}

// supplierParam holds the path parameter identifying a supplier. Any
// non-empty value resolves to a collection; it is not checked as an email.
type supplierParam struct {
	Email string `validate:"required"`
}

func parseSupplierParam(c *fiber.Ctx) (supplierParam, error) {
	p := supplierParam{Email: c.Params("supplierEmail")}
	if err := validate.Struct(p); err != nil {
		return p, err
	}
	return p, nil
}

// toHTTPError maps pipeline errors onto status codes and client messages.
// Anything unrecognised is a 500 carrying the raw error text.
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, inspection.ErrNoData):
		return fiber.NewError(fiber.StatusNotFound, "No data found")
	case errors.Is(err, inspection.ErrNoValidPoints):
		return fiber.NewError(fiber.StatusNotFound, "No valid data points")
	case errors.Is(err, inspection.ErrNoValidScores):
		return fiber.NewError(fiber.StatusNotFound, "No valid ripeness scores")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}

// ErrorHandler renders every error as {"error": message}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
