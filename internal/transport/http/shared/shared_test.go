package shared

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	page := Paginate(items, Pagination{Limit: 2, Offset: 1})
	if page.Total != 5 || len(page.Items) != 2 || page.Items[0] != 2 {
		t.Fatalf("unexpected page: %+v", page)
	}

	tail := Paginate(items, Pagination{Limit: 10, Offset: 9})
	if len(tail.Items) != 0 || tail.Items == nil {
		t.Fatalf("expected empty non-nil window, got %+v", tail)
	}
}

func TestValidatorDateOrder(t *testing.T) {
	v := NewValidator()
	start, _ := v.Date("startDate", "2024-03-10")
	end, _ := v.Date("endDate", "2024-03-01")
	v.DateOrder("startDate", start, "endDate", end)
	if len(v.Issues()) != 2 {
		t.Fatalf("expected two issues, got %+v", v.Issues())
	}

	v = NewValidator()
	v.Date("startDate", "10/03/2024")
	if !v.HasIssues() {
		t.Fatal("expected malformed date to be rejected")
	}
}

func TestDecodeJSONRejectsMalformedBody(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{"))
	var dst map[string]any
	if DecodeJSON(rec, req, &dst, "") {
		t.Fatal("expected decode to fail")
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestPathID(t *testing.T) {
	router := chi.NewRouter()
	var got int
	router.Get("/employees/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, ok := PathID(w, r, "id", "")
		if ok {
			got = id
		}
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/employees/12", nil))
	if got != 12 {
		t.Fatalf("expected id 12, got %d", got)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/employees/abc", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
