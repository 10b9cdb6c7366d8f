package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/giahoa6/crm/internal/catalog"
	"github.com/giahoa6/crm/internal/editor"
	"github.com/giahoa6/crm/internal/export"
	"github.com/giahoa6/crm/internal/listview"
	"github.com/giahoa6/crm/internal/model"
	"github.com/labstack/echo/v4"

	apperrors "github.com/giahoa6/crm/internal/errors"
)

type identifier struct {
	ID int64 `param:"id" validate:"required,min=1"`
}

type listQuery struct {
	Search string `query:"search"`
	Status string `query:"status"`
}

type customerList struct {
	Customers []model.Customer `json:"customers"`
	Loading   bool             `json:"loading"`
	Error     string           `json:"error,omitempty"`
}

// selection picks model from the catalog, Model takes precedence over verbatim PreferredModel
type selection struct {
	Model   string `json:"model"`
	Variant string `json:"variant"`
}

type newCustomer struct {
	selection
	FullName        string `json:"fullName" validate:"required,max=200"`
	Phone           string `json:"phone" validate:"required,max=32"`
	PreferredModel  string `json:"preferredModel" validate:"max=200"`
	PreferredColor  string `json:"preferredColor" validate:"max=100"`
	ReasonNotBuying string `json:"reasonNotBuying" validate:"max=2000"`
}

type patchCustomer struct {
	ID int64 `param:"id" json:"-" validate:"required,min=1"`
	selection
	FullName        *string `json:"fullName" validate:"omitempty,min=1,max=200"`
	Phone           *string `json:"phone" validate:"omitempty,min=1,max=32"`
	PreferredModel  *string `json:"preferredModel" validate:"omitempty,max=200"`
	PreferredColor  *string `json:"preferredColor" validate:"omitempty,max=100"`
	ReasonNotBuying *string `json:"reasonNotBuying" validate:"omitempty,max=2000"`
	Status          *string `json:"status"`
}

type formResult struct {
	Fields    editor.Fields    `json:"fields"`
	Selection editor.Selection `json:"selection"`
}

// CustomerHTTPHandler is http handler for customer endpoint
type CustomerHTTPHandler struct {
	catalog *catalog.Catalog
	list    *listview.Model
	now     func() time.Time
}

// NewCustomerHTTPHandler builds new CustomerHTTPHandler
func NewCustomerHTTPHandler(c *catalog.Catalog) *CustomerHTTPHandler {
	return &CustomerHTTPHandler{
		catalog: c,
		list:    listview.NewModel(c),
		now:     time.Now,
	}
}

// GetAll gets filtered customers
// @Summary     Get customers
// @Description Returns customers newest first filtered by status and search text (name, phone, model)
// @Tags        customers
// @Security	ApiKeyAuth
// @Produce     json
// @Param       search query    string false "Case-insensitive search text"
// @Param       status query    string false "Status name, label or all"
// @Success     200    {object} customerList
// @Failure     400    {object} echo.HTTPError
// @Router      /api/customers [get]
func (h *CustomerHTTPHandler) GetAll(c echo.Context) error {
	q, err := h.query(c)
	if err != nil {
		return err
	}

	state := h.catalog.State()
	return c.JSON(http.StatusOK, &customerList{
		Customers: h.list.Rows(q),
		Loading:   state.Loading,
		Error:     state.Error,
	})
}

// Get gets customer
// @Summary     Get single customer by id
// @Description Returns single customer with provided id, list is refetched when the customer isn't there yet
// @Tags        customers
// @Security	ApiKeyAuth
// @Produce     json
// @Param       id     path 	int true "Customer id"
// @Success     200    {object} model.Customer
// @Failure     400    {object} echo.HTTPError
// @Failure     404    {object} echo.HTTPError
// @Router      /api/customers/{id} [get]
func (h *CustomerHTTPHandler) Get(c echo.Context) error {
	var ident identifier
	if err := c.Bind(&ident); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(&ident); err != nil {
		return err
	}

	customer, err := h.customer(c, ident.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customer)
}

// Post creates new customer
// @Summary     New customer
// @Description Creates customer with status New, list is refreshed by the store change feed
// @Tags        customers
// @Security	ApiKeyAuth
// @Accept		json
// @Produce     json
// @Param 		newCustomer body	 newCustomer true "Data for new customer"
// @Success     201    		{object} formResult
// @Failure     400    		{object} echo.HTTPError
// @Failure     502    		{object} errors.RemoteErr
// @Router      /api/customers [post]
func (h *CustomerHTTPHandler) Post(c echo.Context) error {
	var nc newCustomer
	if err := c.Bind(&nc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(&nc); err != nil {
		return err
	}

	form := editor.NewCreateForm(h.catalog, nil)
	form.Edit(func(f *editor.Fields) {
		f.FullName = nc.FullName
		f.Phone = nc.Phone
		f.PreferredModel = nc.PreferredModel
		f.PreferredColor = nc.PreferredColor
		f.ReasonNotBuying = nc.ReasonNotBuying
	})

	if err := applySelection(form, nc.selection); err != nil {
		return err
	}

	if err := form.Submit(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, resultOf(form))
}

// Patch updates customer
// @Summary     Update customer
// @Description Applies provided fields to existing customer, stored model text is kept unless changed.
// @Description Customer just created and not yet delivered by the change feed is found by refetching the list
// @Tags        customers
// @Security	ApiKeyAuth
// @Accept		json
// @Produce     json
// @Param       id            path 	   int           true "Customer id"
// @Param 		patchCustomer body	   patchCustomer true "Changed fields"
// @Success     200    		  {object} formResult
// @Failure     400    		  {object} echo.HTTPError
// @Failure     404    		  {object} echo.HTTPError
// @Failure     502    		  {object} errors.RemoteErr
// @Router      /api/customers/{id} [patch]
func (h *CustomerHTTPHandler) Patch(c echo.Context) error {
	var pc patchCustomer
	if err := c.Bind(&pc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(&pc); err != nil {
		return err
	}

	var status *model.Status
	if pc.Status != nil {
		s, err := model.ParseStatus(*pc.Status)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		status = &s
	}

	customer, err := h.customer(c, pc.ID)
	if err != nil {
		return err
	}

	form := editor.NewEditForm(h.catalog, customer, nil)
	form.Edit(func(f *editor.Fields) {
		assign(&f.FullName, pc.FullName)
		assign(&f.Phone, pc.Phone)
		assign(&f.PreferredModel, pc.PreferredModel)
		assign(&f.PreferredColor, pc.PreferredColor)
		assign(&f.ReasonNotBuying, pc.ReasonNotBuying)
		if status != nil {
			f.Status = *status
		}
	})

	if err := applySelection(form, pc.selection); err != nil {
		return err
	}

	if err := form.Submit(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resultOf(form))
}

// Export exports customers
// @Summary     Export customers
// @Description Renders currently filtered customers as PDF report
// @Tags        customers
// @Security	ApiKeyAuth
// @Produce     application/pdf
// @Param       search query    string false "Case-insensitive search text"
// @Param       status query    string false "Status name, label or all"
// @Success     200    {string} file
// @Failure     400    {object} echo.HTTPError
// @Router      /api/customers/export [get]
func (h *CustomerHTTPHandler) Export(c echo.Context) error {
	q, err := h.query(c)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := export.CustomersPDF(&buf, h.list.Rows(q), h.now()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("failed to render report - %v", err))
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", export.FileName))
	return c.Blob(http.StatusOK, "application/pdf", buf.Bytes())
}

// Models gets motorcycle catalog
// @Summary     Motorcycle catalog
// @Description Returns models with their variants sorted by name
// @Tags        catalog
// @Security	ApiKeyAuth
// @Produce     json
// @Success     200    {array}  model.Motorcycle
// @Router      /api/catalog/models [get]
func (h *CustomerHTTPHandler) Models(c echo.Context) error {
	return c.JSON(http.StatusOK, model.Motorcycles())
}

func (h *CustomerHTTPHandler) query(c echo.Context) (listview.Query, error) {
	var lq listQuery
	if err := c.Bind(&lq); err != nil {
		return listview.Query{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	status, err := listview.ParseStatusFilter(lq.Status)
	if err != nil {
		return listview.Query{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return listview.Query{Search: lq.Search, Status: status}, nil
}

func (h *CustomerHTTPHandler) customer(c echo.Context, id int64) (model.Customer, error) {
	customer, err := h.catalog.Get(c.Request().Context(), id)
	if apperrors.IsNotFound(err) {
		return model.Customer{}, echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return customer, err
}

func applySelection(form *editor.Form, sel selection) error {
	if sel.Model == "" {
		if sel.Variant != "" {
			return echo.NewHTTPError(http.StatusBadRequest, "variant requires model")
		}
		return nil
	}

	if err := form.SelectModel(sel.Model); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if sel.Variant != "" {
		if err := form.SelectVariant(sel.Variant); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}
	return nil
}

func assign(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func resultOf(form *editor.Form) *formResult {
	return &formResult{Fields: form.Fields(), Selection: form.Selection()}
}
