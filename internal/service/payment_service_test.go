package service

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/findtutor/findtutor-backend/internal/config"
	"github.com/findtutor/findtutor-backend/internal/models"
	"github.com/stripe/stripe-go/v74"
	"go.uber.org/zap"
)

type stubContactStore struct {
	rows          int64
	err           error
	calls         int
	lastRequestID string
	lastTeacherID uint
	lastSessionID string
}

func (s *stubContactStore) MarkPurchased(requestID string, teacherID uint, stripeSessionID string) (int64, error) {
	s.calls++
	s.lastRequestID = requestID
	s.lastTeacherID = teacherID
	s.lastSessionID = stripeSessionID
	return s.rows, s.err
}

// stubTeacherPremiumWriter mimics the ON CONFLICT semantics of the real
// repository: one row per mail, replays refresh only payment columns.
type stubTeacherPremiumWriter struct {
	err     error
	calls   int
	records map[string]*models.TeacherPremium
}

func (s *stubTeacherPremiumWriter) UpsertPayment(premium *models.TeacherPremium) error {
	if s.err != nil {
		return s.err
	}
	s.calls++
	if s.records == nil {
		s.records = make(map[string]*models.TeacherPremium)
	}
	if existing, ok := s.records[premium.Mail]; ok {
		existing.IsPaid = premium.IsPaid
		existing.PaymentDate = premium.PaymentDate
		existing.StripeSessionID = premium.StripeSessionID
		existing.PaymentAmount = premium.PaymentAmount
		return nil
	}
	s.records[premium.Mail] = premium
	return nil
}

type stubStudentPremiumWriter struct {
	err     error
	calls   int
	records map[string]*models.StudentPremium
}

func (s *stubStudentPremiumWriter) UpsertPayment(premium *models.StudentPremium) error {
	if s.err != nil {
		return s.err
	}
	s.calls++
	if s.records == nil {
		s.records = make(map[string]*models.StudentPremium)
	}
	if existing, ok := s.records[premium.Email]; ok {
		existing.IsPayed = premium.IsPayed
		existing.PaymentDate = premium.PaymentDate
		existing.StripeSessionID = premium.StripeSessionID
		existing.PaymentAmount = premium.PaymentAmount
		return nil
	}
	s.records[premium.Email] = premium
	return nil
}

type stubMailer struct {
	sent chan string
}

func newStubMailer() *stubMailer {
	return &stubMailer{sent: make(chan string, 4)}
}

func (s *stubMailer) SendPremiumWelcomeEmail(to, name string) error {
	s.sent <- to
	return nil
}

type stubGateway struct {
	session *stripe.CheckoutSession
	err     error
}

func (s *stubGateway) CreateContactSession(requestID, teacherID string, amount int64) (*stripe.CheckoutSession, error) {
	return s.session, s.err
}

func (s *stubGateway) CreateTeacherPremiumSession(teacherEmail, teacherName string, amount int64) (*stripe.CheckoutSession, error) {
	return s.session, s.err
}

func (s *stubGateway) CreateStudentPremiumSession(email, subject, mobile, topix, descripton string, amount int64) (*stripe.CheckoutSession, error) {
	return s.session, s.err
}

func (s *stubGateway) GetSession(sessionID string) (*stripe.CheckoutSession, error) {
	return s.session, s.err
}

func testStripeConfig() config.StripeConfig {
	return config.StripeConfig{
		Currency:             "gbp",
		ContactAmount:        700,
		TeacherPremiumAmount: 4900,
		StudentPremiumAmount: 2900,
	}
}

type paymentStubs struct {
	gateway        *stubGateway
	requests       *stubContactStore
	teacherPremium *stubTeacherPremiumWriter
	studentPremium *stubStudentPremiumWriter
	mailer         *stubMailer
}

func newPaymentService(stubs paymentStubs) *PaymentService {
	if stubs.gateway == nil {
		stubs.gateway = &stubGateway{session: &stripe.CheckoutSession{ID: "cs_test_1"}}
	}
	if stubs.requests == nil {
		stubs.requests = &stubContactStore{rows: 1}
	}
	if stubs.teacherPremium == nil {
		stubs.teacherPremium = &stubTeacherPremiumWriter{}
	}
	if stubs.studentPremium == nil {
		stubs.studentPremium = &stubStudentPremiumWriter{}
	}
	if stubs.mailer == nil {
		stubs.mailer = newStubMailer()
	}
	return NewPaymentService(
		stubs.gateway,
		stubs.requests,
		stubs.teacherPremium,
		stubs.studentPremium,
		stubs.mailer,
		testStripeConfig(),
		zap.NewNop(),
	)
}

func completedSessionEvent(t *testing.T, sessionID string, amountTotal int64, metadata map[string]string) *stripe.Event {
	t.Helper()

	raw, err := json.Marshal(map[string]interface{}{
		"id":           sessionID,
		"amount_total": amountTotal,
		"metadata":     metadata,
	})
	if err != nil {
		t.Fatalf("failed to marshal session payload: %v", err)
	}

	return &stripe.Event{
		ID:   "evt_1",
		Type: "checkout.session.completed",
		Data: &stripe.EventData{Raw: raw},
	}
}

func TestContactPurchaseUpdatesRequest(t *testing.T) {
	requests := &stubContactStore{rows: 1}
	svc := newPaymentService(paymentStubs{requests: requests})

	event := completedSessionEvent(t, "cs_1", 700, map[string]string{
		"type":      "contact_purchase",
		"requestId": "r1",
		"teacherId": "7",
	})

	if err := svc.HandleStripeEvent(event); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if requests.calls != 1 {
		t.Fatalf("expected one MarkPurchased call, got %d", requests.calls)
	}
	if requests.lastRequestID != "r1" || requests.lastTeacherID != 7 {
		t.Fatalf("wrong keys: requestID=%q teacherID=%d", requests.lastRequestID, requests.lastTeacherID)
	}
	if requests.lastSessionID != "cs_1" {
		t.Fatalf("expected stripe session id cs_1, got %q", requests.lastSessionID)
	}
}

func TestContactPurchaseReplayIsAcknowledged(t *testing.T) {
	// Second delivery matches no rows, the handler must not treat that as
	// a failure or Stripe would retry forever.
	requests := &stubContactStore{rows: 0}
	svc := newPaymentService(paymentStubs{requests: requests})

	event := completedSessionEvent(t, "cs_1", 700, map[string]string{
		"type":      "contact_purchase",
		"requestId": "r1",
		"teacherId": "7",
	})

	if err := svc.HandleStripeEvent(event); err != nil {
		t.Fatalf("replayed delivery must be acknowledged, got %v", err)
	}
}

// statefulContactStore mirrors the repository's guarded UPDATE: the
// transition only applies when the row exists for the teacher and has not
// been rejected.
type statefulContactStore struct {
	request models.ConnectionRequest
}

func (s *statefulContactStore) MarkPurchased(requestID string, teacherID uint, stripeSessionID string) (int64, error) {
	if s.request.ID != requestID || s.request.TeacherID != teacherID {
		return 0, nil
	}
	if s.request.Status == models.RequestStatusRejected {
		return 0, nil
	}
	s.request.Status = models.RequestStatusPurchased
	s.request.PaymentStatus = models.PaymentStatusPaid
	s.request.ContactRevealed = true
	s.request.StripeSessionID = stripeSessionID
	return 1, nil
}

func TestContactPurchaseAfterRejectStaysRejected(t *testing.T) {
	// The teacher rejects the request while the student's checkout is in
	// flight. The late webhook must not resurrect the terminal state.
	requests := &statefulContactStore{request: models.ConnectionRequest{
		ID:        "r1",
		TeacherID: 7,
		Status:    models.RequestStatusRejected,
	}}
	svc := NewPaymentService(
		&stubGateway{session: &stripe.CheckoutSession{ID: "cs_test_1"}},
		requests,
		&stubTeacherPremiumWriter{},
		&stubStudentPremiumWriter{},
		newStubMailer(),
		testStripeConfig(),
		zap.NewNop(),
	)

	event := completedSessionEvent(t, "cs_late", 700, map[string]string{
		"type":      "contact_purchase",
		"requestId": "r1",
		"teacherId": "7",
	})

	if err := svc.HandleStripeEvent(event); err != nil {
		t.Fatalf("late delivery must still be acknowledged, got %v", err)
	}

	if requests.request.Status != models.RequestStatusRejected {
		t.Fatalf("rejected request was resurrected to %q", requests.request.Status)
	}
	if requests.request.ContactRevealed {
		t.Fatal("contact details revealed on a rejected request")
	}
}

func TestContactPurchaseMissingMetadataWritesNothing(t *testing.T) {
	requests := &stubContactStore{rows: 1}
	svc := newPaymentService(paymentStubs{requests: requests})

	event := completedSessionEvent(t, "cs_1", 700, map[string]string{
		"type": "contact_purchase",
	})

	if err := svc.HandleStripeEvent(event); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if requests.calls != 0 {
		t.Fatalf("expected no MarkPurchased call, got %d", requests.calls)
	}
}

func TestStudentPremiumCreatesSingleRecord(t *testing.T) {
	students := &stubStudentPremiumWriter{}
	svc := newPaymentService(paymentStubs{studentPremium: students})

	event := completedSessionEvent(t, "cs_1", 2900, map[string]string{
		"type":       "student_premium_subscription",
		"email":      "a@b.com",
		"subject":    "Mathematics",
		"mobile":     "+447700900000",
		"topix":      "Algebra",
		"descripton": "Need help with calculus",
	})

	if err := svc.HandleStripeEvent(event); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(students.records) != 1 {
		t.Fatalf("expected exactly one record, got %d", len(students.records))
	}
	record := students.records["a@b.com"]
	if record == nil {
		t.Fatal("expected a record keyed by email")
	}
	if !record.IsPayed {
		t.Fatal("expected ispayed to be true")
	}
	if record.PaymentAmount != 29.00 {
		t.Fatalf("expected payment amount 29.00, got %v", record.PaymentAmount)
	}
	if record.Subject != "Mathematics" || record.Topix != "Algebra" {
		t.Fatalf("profile fields not carried over: %+v", record)
	}
	if len(record.ID) != 15 {
		t.Fatalf("expected a 15-char generated id, got %q", record.ID)
	}
}

func TestStudentPremiumReplayKeepsOneRow(t *testing.T) {
	students := &stubStudentPremiumWriter{}
	svc := newPaymentService(paymentStubs{studentPremium: students})

	metadata := map[string]string{
		"type":  "student_premium_subscription",
		"email": "a@b.com",
	}

	if err := svc.HandleStripeEvent(completedSessionEvent(t, "cs_1", 2900, metadata)); err != nil {
		t.Fatalf("first delivery: %v", err)
	}
	if err := svc.HandleStripeEvent(completedSessionEvent(t, "cs_2", 3900, metadata)); err != nil {
		t.Fatalf("second delivery: %v", err)
	}

	if len(students.records) != 1 {
		t.Fatalf("expected exactly one record after replay, got %d", len(students.records))
	}
	record := students.records["a@b.com"]
	if record.StripeSessionID != "cs_2" {
		t.Fatalf("expected latest session id cs_2, got %q", record.StripeSessionID)
	}
	if record.PaymentAmount != 39.00 {
		t.Fatalf("expected latest amount 39.00, got %v", record.PaymentAmount)
	}
}

func TestTeacherPremiumActivatesAndSendsEmail(t *testing.T) {
	teachers := &stubTeacherPremiumWriter{}
	mailer := newStubMailer()
	svc := newPaymentService(paymentStubs{teacherPremium: teachers, mailer: mailer})

	event := completedSessionEvent(t, "cs_9", 4900, map[string]string{
		"type":         "premium_subscription",
		"teacherEmail": "t@example.com",
		"teacherName":  "Ada",
	})

	if err := svc.HandleStripeEvent(event); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	record := teachers.records["t@example.com"]
	if record == nil || !record.IsPaid {
		t.Fatalf("expected a paid record, got %+v", record)
	}
	if !record.LinkOrVideo {
		t.Fatal("new premium records default to link mode")
	}
	if record.PaymentAmount != 49.00 {
		t.Fatalf("expected payment amount 49.00, got %v", record.PaymentAmount)
	}

	select {
	case to := <-mailer.sent:
		if to != "t@example.com" {
			t.Fatalf("welcome email sent to %q", to)
		}
	case <-time.After(time.Second):
		t.Fatal("expected a premium welcome email")
	}
}

func TestUnknownPurchaseTypeWritesNothing(t *testing.T) {
	requests := &stubContactStore{rows: 1}
	teachers := &stubTeacherPremiumWriter{}
	students := &stubStudentPremiumWriter{}
	svc := newPaymentService(paymentStubs{requests: requests, teacherPremium: teachers, studentPremium: students})

	event := completedSessionEvent(t, "cs_1", 100, map[string]string{
		"type": "gift_card",
	})

	if err := svc.HandleStripeEvent(event); err != nil {
		t.Fatalf("unknown type must be acknowledged, got %v", err)
	}
	if requests.calls != 0 || teachers.calls != 0 || students.calls != 0 {
		t.Fatal("unknown purchase type must not touch any store")
	}
}

func TestNonCheckoutEventsAreIgnored(t *testing.T) {
	requests := &stubContactStore{rows: 1}
	svc := newPaymentService(paymentStubs{requests: requests})

	event := &stripe.Event{ID: "evt_2", Type: "invoice.paid", Data: &stripe.EventData{Raw: []byte(`{}`)}}

	if err := svc.HandleStripeEvent(event); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if requests.calls != 0 {
		t.Fatal("non-checkout events must not touch the database")
	}
}

func TestCreateContactCheckoutRequiresIdentifiers(t *testing.T) {
	svc := newPaymentService(paymentStubs{})

	_, err := svc.CreateContactCheckout(models.ContactCheckoutRequest{RequestID: "", TeacherID: "t1"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestCreateContactCheckoutWrapsUpstreamFailure(t *testing.T) {
	gateway := &stubGateway{err: errors.New("stripe is down")}
	svc := newPaymentService(paymentStubs{gateway: gateway})

	_, err := svc.CreateContactCheckout(models.ContactCheckoutRequest{RequestID: "r1", TeacherID: "t1"})
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestCreateContactCheckoutReturnsSessionID(t *testing.T) {
	svc := newPaymentService(paymentStubs{})

	resp, err := svc.CreateContactCheckout(models.ContactCheckoutRequest{RequestID: "r1", TeacherID: "t1"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.ID != "cs_test_1" {
		t.Fatalf("expected session id cs_test_1, got %q", resp.ID)
	}
}
