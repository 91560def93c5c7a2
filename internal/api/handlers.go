package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"cropsync/internal/dashboard"
	"cropsync/internal/export"
	"cropsync/internal/models"
	"cropsync/internal/render"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	dash *dashboard.Dashboard
}

func NewHandler(d *dashboard.Dashboard) *Handler {
	return &Handler{dash: d}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Index)
	e.GET("/health", h.Health)

	api := e.Group("/api")
	api.GET("/dashboard", h.GetDashboard)
	api.GET("/controls", h.GetControls)
	api.PUT("/controls/:id", h.SetControl)
	api.GET("/charts/:id", h.GetChart)
	api.GET("/charts/:id/image", h.GetChartImage)
	api.GET("/export", h.Export)

	e.GET("/data", h.GetData)
	e.POST("/data", h.PostData)
}

// controlChange is the body of PUT /api/controls/:id. Value may be a JSON
// string or number.
type controlChange struct {
	Value interface{} `json:"value"`
}

type controlResult struct {
	Control string                              `json:"control"`
	State   dashboard.InputState                `json:"state"`
	Changed map[string]*models.ChartDefinition `json:"changed"`
}

// --- HANDLERS ---

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "healthy", "service": dashboard.Title})
}

func (h *Handler) GetDashboard(c echo.Context) error {
	return c.JSON(http.StatusOK, h.dash.View())
}

func (h *Handler) GetControls(c echo.Context) error {
	return c.JSON(http.StatusOK, h.dash.Controls())
}

// SetControl applies one selection change and returns only the charts it
// recomputed.
func (h *Handler) SetControl(c echo.Context) error {
	var body controlChange
	if err := c.Echo().JSONSerializer.Deserialize(c, &body); err != nil {
		return badRequest(err)
	}
	if body.Value == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing value")
	}

	raw, err := controlValue(body.Value)
	if err != nil {
		return badRequest(err)
	}

	id := dashboard.InputID(c.Param("id"))
	change, err := h.dash.Set(id, raw)
	if err != nil {
		return httpError(err)
	}

	res := controlResult{
		Control: string(id),
		State:   change.State,
		Changed: make(map[string]*models.ChartDefinition, len(change.Charts)),
	}
	for out, def := range change.Charts {
		res.Changed[string(out)] = def
	}
	return c.JSON(http.StatusOK, res)
}

// controlValue renders a decoded JSON value as the text a control receives.
// Numbers keep their plain decimal form.
func controlValue(v interface{}) (string, error) {
	switch v := v.(type) {
	case string:
		return v, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	}
	return "", fmt.Errorf("value must be a string or number, got %T", v)
}

func (h *Handler) GetChart(c echo.Context) error {
	def, err := h.dash.Output(dashboard.OutputID(c.Param("id")))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, def)
}

// GetChartImage renders one chart; ?format=png (default) or svg.
func (h *Handler) GetChartImage(c echo.Context) error {
	format, err := render.ParseFormat(c.QueryParam("format"))
	if err != nil {
		return httpError(err)
	}
	def, err := h.dash.Output(dashboard.OutputID(c.Param("id")))
	if err != nil {
		return httpError(err)
	}

	var buf bytes.Buffer
	if err := render.Chart(&buf, def, format); err != nil {
		return httpError(err)
	}
	return c.Blob(http.StatusOK, format.ContentType(), buf.Bytes())
}

func (h *Handler) Export(c echo.Context) error {
	var buf bytes.Buffer
	if err := export.Write(&buf, h.dash.View(), outputNames()); err != nil {
		return httpError(err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="cropsync.xlsx"`)
	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}

// GetData returns a fixed sample payload.
func (h *Handler) GetData(c echo.Context) error {
	return c.JSON(http.StatusOK, models.Envelope{
		Success: true,
		Message: "Data retrieved successfully",
		Data:    models.CropYield{Crop: "Rice", Yield: 1200},
	})
}

// PostData logs any JSON body and acknowledges it.
func (h *Handler) PostData(c echo.Context) error {
	var body interface{}
	if err := c.Echo().JSONSerializer.Deserialize(c, &body); err != nil {
		return badRequest(err)
	}
	log.Infof("Received data: %v", body)
	return c.JSON(http.StatusOK, models.Envelope{Success: true, Message: "Data received successfully"})
}

func outputNames() []string {
	names := make([]string, len(dashboard.Outputs))
	for i, id := range dashboard.Outputs {
		names[i] = string(id)
	}
	return names
}

func badRequest(err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}
	return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
}

// httpError maps domain errors onto status codes.
func httpError(err error) error {
	switch {
	case errors.Is(err, dashboard.ErrUnknownInput), errors.Is(err, dashboard.ErrUnknownOutput):
		return echo.NewHTTPError(http.StatusNotFound, err.Error()).SetInternal(err)
	case errors.Is(err, dashboard.ErrInvalidValue), errors.Is(err, render.ErrUnsupportedFormat):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	case errors.Is(err, render.ErrEmptyChart):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error()).SetInternal(err)
	}
	return err
}
