package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/chatop/rental-api/internal/api/middleware"
	"github.com/chatop/rental-api/internal/core/domain"
	"github.com/chatop/rental-api/internal/core/ports"
)

type stubRentalService struct {
	listFn   func(ctx context.Context) ([]ports.RentalView, error)
	getFn    func(ctx context.Context, id string) (*ports.RentalView, error)
	createFn func(ctx context.Context, input ports.CreateRentalInput) error
	updateFn func(ctx context.Context, input ports.UpdateRentalInput) error
}

func (s *stubRentalService) List(ctx context.Context) ([]ports.RentalView, error) {
	return s.listFn(ctx)
}

func (s *stubRentalService) Get(ctx context.Context, id string) (*ports.RentalView, error) {
	return s.getFn(ctx, id)
}

func (s *stubRentalService) Create(ctx context.Context, input ports.CreateRentalInput) error {
	return s.createFn(ctx, input)
}

func (s *stubRentalService) Update(ctx context.Context, input ports.UpdateRentalInput) error {
	return s.updateFn(ctx, input)
}

func newRentalForm(t *testing.T, fields map[string]string, picture []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if picture != nil {
		part, err := w.CreateFormFile("picture", "photo.jpg")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write(picture); err != nil {
			t.Fatalf("write picture: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func TestRentalHandler_List(t *testing.T) {
	e := echo.New()
	stub := &stubRentalService{
		listFn: func(ctx context.Context) ([]ports.RentalView, error) {
			return []ports.RentalView{{ID: "r1", Name: "Studio", OwnerID: "u1"}}, nil
		},
	}
	h := NewRentalHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/rentals", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string][]map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	rentals, ok := resp["rentals"]
	if !ok || len(rentals) != 1 {
		t.Fatalf("expected rentals envelope with 1 item, got %v", resp)
	}
	if rentals[0]["name"] != "Studio" {
		t.Fatalf("unexpected rental payload: %v", rentals[0])
	}
}

func TestRentalHandler_Get_NotFound(t *testing.T) {
	e := echo.New()
	stub := &stubRentalService{
		getFn: func(ctx context.Context, id string) (*ports.RentalView, error) {
			return nil, domain.ErrRentalNotFound
		},
	}
	h := NewRentalHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/rentals/missing", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	if err := h.Get(c); !errors.Is(err, domain.ErrRentalNotFound) {
		t.Fatalf("expected ErrRentalNotFound, got %v", err)
	}
}

func TestRentalHandler_Create_Success(t *testing.T) {
	e := echo.New()
	picture := []byte{0xFF, 0xD8, 0xFF, 0xE0}
	var got ports.CreateRentalInput
	stub := &stubRentalService{
		createFn: func(ctx context.Context, input ports.CreateRentalInput) error {
			got = input
			return nil
		},
	}
	h := NewRentalHandler(stub)

	body, contentType := newRentalForm(t, map[string]string{
		"name":        "Studio",
		"surface":     "30",
		"price":       "750.50",
		"description": "Nice place",
	}, picture)

	req := httptest.NewRequest(http.MethodPost, "/api/rentals", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.PrincipalKey, domain.Principal{Subject: "owner@y.com", Authenticated: true})

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	if got.OwnerEmail != "owner@y.com" || got.Name != "Studio" || got.Surface != 30 || got.Price != 750.50 {
		t.Fatalf("unexpected input %+v", got)
	}
	if !bytes.Equal(got.Picture, picture) {
		t.Fatalf("picture bytes not forwarded")
	}
}

func TestRentalHandler_Create_NoPicture(t *testing.T) {
	e := echo.New()
	stub := &stubRentalService{
		createFn: func(ctx context.Context, input ports.CreateRentalInput) error {
			if input.Picture != nil {
				t.Fatalf("expected nil picture, got %d bytes", len(input.Picture))
			}
			return nil
		},
	}
	h := NewRentalHandler(stub)

	body, contentType := newRentalForm(t, map[string]string{
		"name":        "Studio",
		"surface":     "30",
		"price":       "750",
		"description": "Nice place",
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/rentals", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.PrincipalKey, domain.Principal{Subject: "owner@y.com", Authenticated: true})

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRentalHandler_Create_BadSurface(t *testing.T) {
	e := echo.New()
	stub := &stubRentalService{
		createFn: func(ctx context.Context, input ports.CreateRentalInput) error {
			t.Fatalf("should not be called")
			return nil
		},
	}
	h := NewRentalHandler(stub)

	body, contentType := newRentalForm(t, map[string]string{
		"name":        "Studio",
		"surface":     "not-a-number",
		"price":       "750",
		"description": "Nice place",
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/rentals", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.PrincipalKey, domain.Principal{Subject: "owner@y.com", Authenticated: true})

	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestRentalHandler_Update_Forbidden(t *testing.T) {
	e := echo.New()
	stub := &stubRentalService{
		updateFn: func(ctx context.Context, input ports.UpdateRentalInput) error {
			return domain.ErrForbidden
		},
	}
	h := NewRentalHandler(stub)

	body, contentType := newRentalForm(t, map[string]string{
		"name":        "Hijacked",
		"surface":     "30",
		"price":       "750",
		"description": "x",
	}, nil)

	req := httptest.NewRequest(http.MethodPut, "/api/rentals/r1", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("r1")
	c.Set(middleware.PrincipalKey, domain.Principal{Subject: "other@y.com", Authenticated: true})

	if err := h.Update(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
