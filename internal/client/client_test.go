package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/logisoltech/hitek-store/internal/domain"
	ordersvc "github.com/logisoltech/hitek-store/internal/service/order"
)

func TestClient_ProductsDecodesCatalog(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/printers" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode([]domain.Product{{ID: "p1", Name: "HP LaserJet"}})
	}))
	defer srv.Close()

	products, err := New(srv.URL).Products(context.Background(), "printer")
	if err != nil {
		t.Fatalf("products: %v", err)
	}
	if len(products) != 1 || products[0].ID != "p1" {
		t.Fatalf("unexpected products %+v", products)
	}
}

func TestClient_SurfacesAPIErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "order is in a final status"})
	}))
	defer srv.Close()

	_, err := New(srv.URL).Products(context.Background(), "laptop")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusConflict || apiErr.Message != "order is in a final status" {
		t.Fatalf("unexpected api error %+v", apiErr)
	}
}

func TestClient_CheckoutSendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("unexpected authorization header %q", got)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"order": domain.Order{ID: "o1"},
			"items": []domain.OrderItem{{Name: "HP LaserJet"}},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetToken("tok-1")
	ord, err := c.Checkout(context.Background(), ordersvc.CreateInput{UserID: "u1"})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if ord.ID != "o1" || len(ord.Items) != 1 {
		t.Fatalf("unexpected order %+v", ord)
	}
}

func TestClient_ConnectionRefusedMapsToUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := New(url).Products(context.Background(), "printer")
	if !errors.Is(err, ErrUnreachable) {
		t.Fatalf("expected ErrUnreachable, got %v", err)
	}
}
