package handler

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/findtutor/findtutor-backend/internal/models"
	"github.com/findtutor/findtutor-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/stripe/stripe-go/v74"
	"go.uber.org/zap"
)

const testWebhookSecret = "whsec_test_secret"

type stubPaymentProcessor struct {
	events       []*stripe.Event
	checkoutErr  error
	checkoutResp *models.CheckoutSessionResponse
}

func (s *stubPaymentProcessor) CreateContactCheckout(req models.ContactCheckoutRequest) (*models.CheckoutSessionResponse, error) {
	return s.checkoutResp, s.checkoutErr
}

func (s *stubPaymentProcessor) CreateTeacherPremiumCheckout(req models.TeacherPremiumCheckoutRequest) (*models.CheckoutSessionResponse, error) {
	return s.checkoutResp, s.checkoutErr
}

func (s *stubPaymentProcessor) CreateStudentPremiumCheckout(req models.StudentPremiumCheckoutRequest) (*models.CheckoutSessionResponse, error) {
	return s.checkoutResp, s.checkoutErr
}

func (s *stubPaymentProcessor) CheckPayment(sessionID string) (*models.PaymentCheckResponse, error) {
	return &models.PaymentCheckResponse{PaymentStatus: "paid"}, nil
}

func (s *stubPaymentProcessor) HandleStripeEvent(event *stripe.Event) error {
	s.events = append(s.events, event)
	return nil
}

func newWebhookApp(processor *stubPaymentProcessor) *fiber.App {
	app := fiber.New()
	h := NewPaymentHandler(processor, testWebhookSecret, zap.NewNop())
	app.Post("/webhook", h.HandleStripeWebhook)
	app.Post("/create-checkout-session", h.CreateCheckoutSession)
	app.Get("/check-payment/:sessionId", h.CheckPayment)
	return app
}

// signPayload builds a Stripe-Signature header the same way stripe-go's
// webhook package expects it: v1 is HMAC-SHA256 over "<timestamp>.<body>".
func signPayload(payload []byte, secret string, at time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", at.Unix(), payload)
	return fmt.Sprintf("t=%d,v1=%s", at.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func webhookPayload() []byte {
	return []byte(`{"id":"evt_1","type":"checkout.session.completed","data":{"object":{"id":"cs_1","metadata":{"type":"contact_purchase","requestId":"r1","teacherId":"7"}}}}`)
}

func TestWebhookAcceptsSignedEvent(t *testing.T) {
	processor := &stubPaymentProcessor{}
	app := newWebhookApp(processor)

	payload := webhookPayload()
	req := httptest.NewRequest("POST", "/webhook", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Stripe-Signature", signPayload(payload, testWebhookSecret, time.Now()))

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	if len(processor.events) != 1 {
		t.Fatalf("expected one processed event, got %d", len(processor.events))
	}
	if processor.events[0].ID != "evt_1" {
		t.Fatalf("unexpected event id %q", processor.events[0].ID)
	}

	body, _ := io.ReadAll(resp.Body)
	var out map[string]bool
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if !out["received"] {
		t.Fatalf("expected received:true, got %s", body)
	}
}

func TestWebhookRejectsTamperedPayload(t *testing.T) {
	processor := &stubPaymentProcessor{}
	app := newWebhookApp(processor)

	payload := webhookPayload()
	signature := signPayload(payload, testWebhookSecret, time.Now())

	tampered := bytes.Replace(payload, []byte(`"teacherId":"7"`), []byte(`"teacherId":"8"`), 1)
	req := httptest.NewRequest("POST", "/webhook", bytes.NewReader(tampered))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Stripe-Signature", signature)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if len(processor.events) != 0 {
		t.Fatal("tampered payload must never reach the service")
	}
}

func TestWebhookRejectsMissingSignature(t *testing.T) {
	processor := &stubPaymentProcessor{}
	app := newWebhookApp(processor)

	req := httptest.NewRequest("POST", "/webhook", bytes.NewReader(webhookPayload()))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if len(processor.events) != 0 {
		t.Fatal("unsigned payload must never reach the service")
	}
}

func TestWebhookRejectsWrongSecret(t *testing.T) {
	processor := &stubPaymentProcessor{}
	app := newWebhookApp(processor)

	payload := webhookPayload()
	req := httptest.NewRequest("POST", "/webhook", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Stripe-Signature", signPayload(payload, "whsec_other_secret", time.Now()))

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if len(processor.events) != 0 {
		t.Fatal("badly signed payload must never reach the service")
	}
}

func TestCreateCheckoutSessionMapsValidationError(t *testing.T) {
	processor := &stubPaymentProcessor{checkoutErr: fmt.Errorf("%w: request id is required", service.ErrValidation)}
	app := newWebhookApp(processor)

	req := httptest.NewRequest("POST", "/create-checkout-session", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestCreateCheckoutSessionMapsUpstreamError(t *testing.T) {
	processor := &stubPaymentProcessor{checkoutErr: fmt.Errorf("%w: stripe is down", service.ErrUpstream)}
	app := newWebhookApp(processor)

	req := httptest.NewRequest("POST", "/create-checkout-session", bytes.NewReader([]byte(`{"requestId":"r1","teacherId":"7"}`)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.StatusCode)
	}
}

func TestCreateCheckoutSessionReturnsSession(t *testing.T) {
	processor := &stubPaymentProcessor{checkoutResp: &models.CheckoutSessionResponse{ID: "cs_test_1"}}
	app := newWebhookApp(processor)

	req := httptest.NewRequest("POST", "/create-checkout-session", bytes.NewReader([]byte(`{"requestId":"r1","teacherId":"7"}`)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	var out models.CheckoutSessionResponse
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if out.ID != "cs_test_1" {
		t.Fatalf("expected session id cs_test_1, got %q", out.ID)
	}
}
