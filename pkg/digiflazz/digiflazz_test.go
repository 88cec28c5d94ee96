package digiflazz

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSign(t *testing.T) {
	// md5("userkeypricelist")
	if got := Sign("user", "key", "pricelist"); got != "6870b202c286b430a1f8a6744d48a862" {
		t.Fatalf("unexpected signature %q", got)
	}
}

func TestPriceList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/price-list" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req priceListRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Cmd != "prepaid" {
			t.Errorf("unexpected cmd %q", req.Cmd)
		}
		if req.Sign != Sign("user", "key", "pricelist") {
			t.Errorf("unexpected sign %q", req.Sign)
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"rc": "00",
			"data": []map[string]interface{}{
				{
					"category":       "Games",
					"brand":          "Mobile Legends",
					"buyer_sku_code": "ML100",
					"product_name":   "Mobile Legends 100 Diamonds",
					"price":          15000,
				},
			},
		})
	}))
	defer srv.Close()

	client := NewClient("user", "key")
	client.BaseURL = srv.URL

	rows, err := client.PriceList(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	row := rows[0]
	if row.Brand != "Mobile Legends" || row.BuyerSkuCode != "ML100" || row.Price != 15000 {
		t.Fatalf("unexpected row %+v", row)
	}
}

func TestPriceListAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"rc":      "83",
			"message": "IP Anda tidak kami kenali",
		})
	}))
	defer srv.Close()

	client := NewClient("user", "key")
	client.BaseURL = srv.URL

	if _, err := client.PriceList(context.Background()); err == nil {
		t.Fatal("expected error for non-00 rc")
	}
}

func TestPriceListHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient("user", "key")
	client.BaseURL = srv.URL

	if _, err := client.PriceList(context.Background()); err == nil {
		t.Fatal("expected error for non-2xx status")
	}
}
