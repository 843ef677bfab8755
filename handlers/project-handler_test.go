package handlers

import (
	"net/http"
	"testing"
)

func TestProjectEndpoints(t *testing.T) {
	router := setupRouter(t)

	rr := doJSON(t, router, http.MethodPost, "/api/proyectos", map[string]string{
		"nombre":      "Sitio web",
		"descripcion": "rediseño",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}
	var created map[string]interface{}
	decodeBody(t, rr, &created)
	if id, _ := created["_id"].(string); len(id) != 24 {
		t.Errorf("_id = %v, want 24-char identifier", created["_id"])
	}

	rr = doJSON(t, router, http.MethodGet, "/api/proyectos", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var listed []map[string]interface{}
	decodeBody(t, rr, &listed)
	if len(listed) != 1 || listed[0]["nombre"] != "Sitio web" {
		t.Errorf("list mismatch: %#v", listed)
	}
}
