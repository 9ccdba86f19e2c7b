package httpapi

import (
	"bytes"
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/potato-farm-advisor/internal/advisor"
	"github.com/i474232898/potato-farm-advisor/internal/common"
	"github.com/i474232898/potato-farm-advisor/internal/export"
	"github.com/i474232898/potato-farm-advisor/internal/store"
	"github.com/i474232898/potato-farm-advisor/internal/weather"
)

var validate = validator.New()

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type handler struct {
	service  *advisor.Service
	defaults advisor.Request
	now      func() time.Time
}

// RegisterRoutes wires the HTTP handlers into the Fiber app. defaults fills
// any field the caller leaves out (coordinate, planting date, days, API key).
func RegisterRoutes(app *fiber.App, service *advisor.Service, defaults advisor.Request) {
	h := &handler{service: service, defaults: defaults, now: time.Now}

	v1 := app.Group("/api/v1")

	v1.Get("/field", h.field)
	v1.Post("/analyses", h.analyze)
	v1.Get("/analyses/latest", h.latest)

	a := v1.Group("/analyses/:id")
	a.Get("/", h.analysis)
	a.Get("/recommendations", h.recommendations)
	a.Get("/summary", h.summary)
	a.Get("/observations", h.observations)
	a.Get("/charts", h.charts)
	a.Get("/export.csv", h.exportCSV)
	a.Get("/export.xlsx", h.exportXLSX)
}

// analysisBody is the POST /analyses payload. Omitted fields fall back to defaults.
type analysisBody struct {
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	PlantingDate string   `json:"plantingDate"`
	Days         int      `json:"days"`
	APIKey       string   `json:"apiKey"`
}

func (b analysisBody) toRequest(defaults advisor.Request) (advisor.Request, error) {
	req := defaults
	if b.Latitude != nil {
		req.Coordinate.Latitude = *b.Latitude
	}
	if b.Longitude != nil {
		req.Coordinate.Longitude = *b.Longitude
	}
	if b.PlantingDate != "" {
		d, err := common.ParseISODate(b.PlantingDate)
		if err != nil {
			return req, errors.New("invalid plantingDate; use YYYY-MM-DD")
		}
		req.PlantingDate = d
	}
	if b.Days != 0 {
		req.Days = b.Days
	}
	if b.APIKey != "" {
		req.APIKey = b.APIKey
	}
	return req, nil
}

// analysisResponse bundles a stored analysis with its freshly computed views.
type analysisResponse struct {
	Analysis        *advisor.Analysis        `json:"analysis"`
	Recommendations []advisor.Recommendation `json:"recommendations"`
	Summary         weather.Summary          `json:"summary"`
}

func newAnalysisResponse(a *advisor.Analysis) analysisResponse {
	return analysisResponse{
		Analysis:        a,
		Recommendations: advisor.Recommend(a.Observations),
		Summary:         weather.Summarize(a.Observations),
	}
}

func (h *handler) field(c *fiber.Ctx) error {
	q := analysisBody{PlantingDate: c.Query("planting_date")}
	for key, dst := range map[string]**float64{"latitude": &q.Latitude, "longitude": &q.Longitude} {
		if s := c.Query(key); s != "" {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "invalid "+key)
			}
			*dst = &v
		}
	}

	req, err := q.toRequest(h.defaults)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	status, err := h.service.FieldStatus(req.Coordinate, req.PlantingDate)
	if err != nil {
		return toFiberError(err)
	}
	return c.JSON(status)
}

func (h *handler) analyze(c *fiber.Ctx) error {
	var body analysisBody
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
	}

	req, err := body.toRequest(h.defaults)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	a, err := h.service.Analyze(c.UserContext(), req)
	if err != nil {
		return toFiberError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(newAnalysisResponse(a))
}

func (h *handler) latest(c *fiber.Ctx) error {
	a, err := h.service.Latest()
	if err != nil {
		return toFiberError(err)
	}
	return c.JSON(newAnalysisResponse(a))
}

func (h *handler) lookup(c *fiber.Ctx) (*advisor.Analysis, error) {
	a, err := h.service.Get(c.Params("id"))
	if err != nil {
		return nil, toFiberError(err)
	}
	return a, nil
}

func (h *handler) analysis(c *fiber.Ctx) error {
	a, err := h.lookup(c)
	if err != nil {
		return err
	}
	return c.JSON(newAnalysisResponse(a))
}

func (h *handler) recommendations(c *fiber.Ctx) error {
	a, err := h.lookup(c)
	if err != nil {
		return err
	}
	return c.JSON(advisor.Recommend(a.Observations))
}

func (h *handler) summary(c *fiber.Ctx) error {
	a, err := h.lookup(c)
	if err != nil {
		return err
	}
	return c.JSON(weather.Summarize(a.Observations))
}

// tailQuery holds query parameters for the observations endpoint.
type tailQuery struct {
	Tail int `validate:"min=1,max=180"`
}

func (h *handler) observations(c *fiber.Ctx) error {
	a, err := h.lookup(c)
	if err != nil {
		return err
	}

	q := tailQuery{Tail: c.QueryInt("tail", 30)}
	if err := validate.Struct(q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(fiber.Map{
		"id":           a.ID,
		"total":        len(a.Observations),
		"observations": weather.Tail(a.Observations, q.Tail),
	})
}

func (h *handler) charts(c *fiber.Ctx) error {
	a, err := h.lookup(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"id":     a.ID,
		"panels": buildCharts(a.Observations),
	})
}

func (h *handler) exportCSV(c *fiber.Ctx) error {
	a, err := h.lookup(c)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, a.Observations); err != nil {
		log.Printf("ERROR: csv export of %s failed: %v", a.ID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "failed to export csv")
	}

	c.Attachment(export.FileName(h.now(), "csv"))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return c.Send(buf.Bytes())
}

func (h *handler) exportXLSX(c *fiber.Ctx) error {
	a, err := h.lookup(c)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, a.Observations); err != nil {
		log.Printf("ERROR: xlsx export of %s failed: %v", a.ID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "failed to export xlsx")
	}

	c.Attachment(export.FileName(h.now(), "xlsx"))
	c.Set(fiber.HeaderContentType, xlsxContentType)
	return c.Send(buf.Bytes())
}

// toFiberError maps pipeline errors onto HTTP statuses.
func toFiberError(err error) error {
	switch {
	case errors.Is(err, advisor.ErrInvalidRequest):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "no analysis found")
	case errors.Is(err, weather.ErrTransport):
		return fiber.NewError(fiber.StatusBadGateway, "failed to fetch weather data")
	case errors.Is(err, weather.ErrMalformedResponse), errors.Is(err, weather.ErrNoData):
		return fiber.NewError(fiber.StatusBadGateway, "failed to analyze weather data")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "internal error")
	}
}
