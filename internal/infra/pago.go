package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/4ndreams/GPS-sub001/internal/config"
)

// Preferencia is the checkout preference created at the payment gateway.
// The InitPoint URL is where the web client redirects the buyer.
type Preferencia struct {
	ID        string `json:"id"`
	InitPoint string `json:"init_point"`
}

// PreferenciaRequest is the payload sent to create a checkout preference.
type PreferenciaRequest struct {
	Titulo            string  `json:"title"`
	Cantidad          int     `json:"quantity"`
	PrecioUnitario    float64 `json:"unit_price"`
	ExternalReference string  `json:"external_reference"`
}

// Pago is the payment object fetched back when a webhook arrives.
type Pago struct {
	ID                string  `json:"id"`
	Status            string  `json:"status"` // approved | pending | rejected
	ExternalReference string  `json:"external_reference"`
	TransactionAmount float64 `json:"transaction_amount"`
	PaymentMethodID   string  `json:"payment_method_id"`
}

// PagoGateway is the contract the venta service depends on; PagoClient is
// the HTTP implementation and tests substitute an in-memory stub.
type PagoGateway interface {
	CrearPreferencia(ctx context.Context, req PreferenciaRequest) (*Preferencia, error)
	ObtenerPago(ctx context.Context, pagoID string) (*Pago, error)
}

// PagoClient talks to the payment gateway REST API. Failures here must never
// take down the core backend, so callers wrap every call in the circuit
// breaker.
type PagoClient struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
}

// NewPagoBreaker builds the breaker guarding every gateway call from the
// PAGO_CB_* settings.
func NewPagoBreaker(cfg *config.Config) *CircuitBreaker {
	return NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: cfg.PagoCBMaxFallos,
		SuccessThreshold: cfg.PagoCBExitosCierre,
		OpenTimeout:      time.Duration(cfg.PagoCBEsperaSegundos) * time.Second,
	})
}

func NewPagoClient(baseURL, accessToken string) *PagoClient {
	return &PagoClient{
		baseURL:     baseURL,
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}
}

// CrearPreferencia POSTs a new checkout preference.
func (c *PagoClient) CrearPreferencia(ctx context.Context, prefReq PreferenciaRequest) (*Preferencia, error) {
	body, err := json.Marshal(map[string]interface{}{
		"items": []map[string]interface{}{{
			"title":      prefReq.Titulo,
			"quantity":   prefReq.Cantidad,
			"unit_price": prefReq.PrecioUnitario,
		}},
		"external_reference": prefReq.ExternalReference,
	})
	if err != nil {
		return nil, fmt.Errorf("pago: marshal preferencia: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/checkout/preferences", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("pago: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pago: gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("pago: gateway returned %d", resp.StatusCode)
	}

	var pref Preferencia
	if err := json.NewDecoder(resp.Body).Decode(&pref); err != nil {
		return nil, fmt.Errorf("pago: decode preferencia: %w", err)
	}
	return &pref, nil
}

// ObtenerPago fetches a payment by id to resolve a webhook notification.
func (c *PagoClient) ObtenerPago(ctx context.Context, pagoID string) (*Pago, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/payments/"+pagoID, nil)
	if err != nil {
		return nil, fmt.Errorf("pago: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pago: gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pago: gateway returned %d", resp.StatusCode)
	}

	var pago Pago
	if err := json.NewDecoder(resp.Body).Decode(&pago); err != nil {
		return nil, fmt.Errorf("pago: decode pago: %w", err)
	}
	return &pago, nil
}
