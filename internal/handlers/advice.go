package handlers

import (
	"net/http"

	"github.com/giahoa6/crm/internal/advisor"
	"github.com/giahoa6/crm/internal/catalog"
	"github.com/labstack/echo/v4"
)

type salesAdvice struct {
	Reason string `json:"reason" validate:"required,max=2000"`
}

type colorAdvice struct {
	BirthYear string `json:"birthYear" validate:"required,max=16"`
}

type advice struct {
	Text string `json:"text"`
}

type dashboard struct {
	Stats      catalog.Stats `json:"stats"`
	Motivation string        `json:"motivation"`
}

// AdvisorHTTPHandler is http handler for dashboard and advisory widgets
type AdvisorHTTPHandler struct {
	catalog *catalog.Catalog
	advisor *advisor.Service
}

// NewAdvisorHTTPHandler builds new AdvisorHTTPHandler
func NewAdvisorHTTPHandler(c *catalog.Catalog, a *advisor.Service) *AdvisorHTTPHandler {
	return &AdvisorHTTPHandler{catalog: c, advisor: a}
}

// Dashboard returns pipeline summary
// @Summary     Dashboard
// @Description Returns customers count per status and daily motivation message
// @Tags        dashboard
// @Security	ApiKeyAuth
// @Produce     json
// @Success     200    {object} dashboard
// @Router      /api/dashboard [get]
func (h *AdvisorHTTPHandler) Dashboard(c echo.Context) error {
	return c.JSON(http.StatusOK, &dashboard{
		Stats:      h.catalog.Stats(),
		Motivation: h.advisor.DailyMotivation(c.Request().Context()),
	})
}

// Sales proposes consulting strategies
// @Summary     Sales suggestions
// @Description Analyses reason customer didn't buy, fallback advice is returned if inference fails
// @Tags        advice
// @Security	ApiKeyAuth
// @Accept		json
// @Produce     json
// @Param 		salesAdvice body	 salesAdvice true "Reason customer didn't buy"
// @Success     200    		{object} advisor.Suggestion
// @Failure     400    		{object} echo.HTTPError
// @Router      /api/advice/sales [post]
func (h *AdvisorHTTPHandler) Sales(c echo.Context) error {
	var sa salesAdvice
	if err := c.Bind(&sa); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(&sa); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.advisor.SalesSuggestions(c.Request().Context(), sa.Reason))
}

// Color proposes lucky colors
// @Summary     Color advice
// @Description Proposes vehicle colors by birth year, invalid year yields hint text
// @Tags        advice
// @Security	ApiKeyAuth
// @Accept		json
// @Produce     json
// @Param 		colorAdvice body	 colorAdvice true "Birth year"
// @Success     200    		{object} advice
// @Failure     400    		{object} echo.HTTPError
// @Router      /api/advice/color [post]
func (h *AdvisorHTTPHandler) Color(c echo.Context) error {
	var ca colorAdvice
	if err := c.Bind(&ca); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(&ca); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, &advice{Text: h.advisor.ColorAdvice(c.Request().Context(), ca.BirthYear)})
}
