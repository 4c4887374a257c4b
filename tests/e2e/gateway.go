//go:build e2e

package e2e

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
)

// FakeGateway answers the hosted checkout and validator endpoints the
// sslcommerz client calls. Every session gets val id "VAL-" + tran id.
type FakeGateway struct {
	mu               sync.Mutex
	sessions         map[string]string // val id -> tran id
	amounts          map[string]string // tran id -> amount
	ValidationStatus string
	validations      int
}

func NewFakeGateway() *FakeGateway {
	g := &FakeGateway{}
	g.Reset()
	return g
}

func (g *FakeGateway) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sessions = map[string]string{}
	g.amounts = map[string]string{}
	g.ValidationStatus = "VALID"
	g.validations = 0
}

func (g *FakeGateway) SetValidationStatus(status string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ValidationStatus = status
}

func (g *FakeGateway) Validations() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.validations
}

func (g *FakeGateway) Amount(tranID string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.amounts[tranID]
}

func (g *FakeGateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case strings.HasSuffix(r.URL.Path, "/gwprocess/v4/api.php"):
		g.session(w, r)
	case strings.HasSuffix(r.URL.Path, "/validationserverAPI.php"):
		g.validate(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (g *FakeGateway) session(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	tranID := r.PostForm.Get("tran_id")

	g.mu.Lock()
	g.sessions["VAL-"+tranID] = tranID
	g.amounts[tranID] = r.PostForm.Get("total_amount")
	g.mu.Unlock()

	writeJSON(w, map[string]string{
		"status":         "SUCCESS",
		"sessionkey":     "SESS-" + tranID,
		"GatewayPageURL": "https://gateway.test/pay/" + tranID,
	})
}

func (g *FakeGateway) validate(w http.ResponseWriter, r *http.Request) {
	valID := r.URL.Query().Get("val_id")

	g.mu.Lock()
	g.validations++
	tranID, ok := g.sessions[valID]
	status := g.ValidationStatus
	amount := g.amounts[tranID]
	g.mu.Unlock()

	if !ok {
		writeJSON(w, map[string]string{"status": "INVALID_TRANSACTION"})
		return
	}
	writeJSON(w, map[string]string{
		"status":       status,
		"tran_id":      tranID,
		"amount":       amount,
		"currency":     "BDT",
		"bank_tran_id": "BANK-" + valID,
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
