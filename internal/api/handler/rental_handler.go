package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/chatop/rental-api/internal/core/ports"
)

// maxPictureBytes caps an uploaded rental picture at 5 MiB.
const maxPictureBytes = 5 << 20

type RentalHandler struct {
	rentalService ports.RentalService
}

func NewRentalHandler(rentalService ports.RentalService) *RentalHandler {
	return &RentalHandler{rentalService: rentalService}
}

// List returns all rentals.
//
// @Summary      Get all rentals
// @Tags         rentals
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  rentalsResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/rentals [get]
func (h *RentalHandler) List(c echo.Context) error {
	views, err := h.rentalService.List(c.Request().Context())
	if err != nil {
		return err
	}

	out := rentalsResponse{Rentals: make([]rentalResponse, 0, len(views))}
	for i := range views {
		out.Rentals = append(out.Rentals, toRentalResponse(&views[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns a rental by id.
//
// @Summary      Get a rental by ID
// @Tags         rentals
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Rental ID"
// @Success      200  {object}  rentalResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/rentals/{id} [get]
func (h *RentalHandler) Get(c echo.Context) error {
	view, err := h.rentalService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRentalResponse(view))
}

// Create stores a new rental owned by the authenticated user. The request is
// a multipart form: name, surface, price, description and an optional
// picture file.
//
// @Summary      Create a new rental
// @Tags         rentals
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        name         formData  string  true   "Rental name"
// @Param        surface      formData  int     true   "Surface in square meters"
// @Param        price        formData  number  true   "Monthly price"
// @Param        description  formData  string  true   "Description"
// @Param        picture      formData  file    false  "Picture"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/rentals [post]
func (h *RentalHandler) Create(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	form, err := parseRentalForm(c)
	if err != nil {
		return err
	}

	picture, err := readPicture(c)
	if err != nil {
		return err
	}

	err = h.rentalService.Create(c.Request().Context(), ports.CreateRentalInput{
		OwnerEmail:  principal.Subject,
		Name:        form.name,
		Surface:     form.surface,
		Price:       form.price,
		Description: form.description,
		Picture:     picture,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Rental created !"})
}

// Update modifies a rental owned by the authenticated user.
//
// @Summary      Update an existing rental
// @Tags         rentals
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id           path      string  true  "Rental ID"
// @Param        name         formData  string  true  "Rental name"
// @Param        surface      formData  int     true  "Surface in square meters"
// @Param        price        formData  number  true  "Monthly price"
// @Param        description  formData  string  true  "Description"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/rentals/{id} [put]
func (h *RentalHandler) Update(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	form, err := parseRentalForm(c)
	if err != nil {
		return err
	}

	err = h.rentalService.Update(c.Request().Context(), ports.UpdateRentalInput{
		ID:          c.Param("id"),
		OwnerEmail:  principal.Subject,
		Name:        form.name,
		Surface:     form.surface,
		Price:       form.price,
		Description: form.description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Rental updated !"})
}

type rentalForm struct {
	name        string
	surface     int
	price       float64
	description string
}

func parseRentalForm(c echo.Context) (rentalForm, error) {
	form := rentalForm{
		name:        c.FormValue("name"),
		description: c.FormValue("description"),
	}
	if form.name == "" {
		return form, echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	surface, err := strconv.Atoi(c.FormValue("surface"))
	if err != nil || surface < 1 {
		return form, echo.NewHTTPError(http.StatusBadRequest, "surface must be a positive integer")
	}
	form.surface = surface

	price, err := strconv.ParseFloat(c.FormValue("price"), 64)
	if err != nil || price <= 0 {
		return form, echo.NewHTTPError(http.StatusBadRequest, "price must be greater than 0")
	}
	form.price = price

	return form, nil
}

// readPicture returns the uploaded picture bytes, or nil when the form has
// no picture part.
func readPicture(c echo.Context) ([]byte, error) {
	fileHeader, err := c.FormFile("picture")
	if err != nil {
		return nil, nil
	}
	if fileHeader.Size > maxPictureBytes {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "picture too large")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid picture upload")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxPictureBytes+1))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid picture upload")
	}
	if len(data) > maxPictureBytes {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "picture too large")
	}
	return data, nil
}

func toRentalResponse(v *ports.RentalView) rentalResponse {
	return rentalResponse{
		ID:          v.ID,
		Name:        v.Name,
		Surface:     v.Surface,
		Price:       v.Price,
		Description: v.Description,
		Picture:     v.Picture,
		OwnerID:     v.OwnerID,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}
