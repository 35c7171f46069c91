package service

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/findtutor/findtutor-backend/internal/config"
	"github.com/findtutor/findtutor-backend/internal/models"
	"github.com/findtutor/findtutor-backend/pkg/utils"
	"github.com/stripe/stripe-go/v74"
	"go.uber.org/zap"
)

type checkoutGateway interface {
	CreateContactSession(requestID, teacherID string, amount int64) (*stripe.CheckoutSession, error)
	CreateTeacherPremiumSession(teacherEmail, teacherName string, amount int64) (*stripe.CheckoutSession, error)
	CreateStudentPremiumSession(email, subject, mobile, topix, descripton string, amount int64) (*stripe.CheckoutSession, error)
	GetSession(sessionID string) (*stripe.CheckoutSession, error)
}

type contactPurchaseStore interface {
	MarkPurchased(requestID string, teacherID uint, stripeSessionID string) (int64, error)
}

type teacherPremiumWriter interface {
	UpsertPayment(premium *models.TeacherPremium) error
}

type studentPremiumWriter interface {
	UpsertPayment(premium *models.StudentPremium) error
}

type premiumMailer interface {
	SendPremiumWelcomeEmail(to, name string) error
}

type PaymentService struct {
	gateway            checkoutGateway
	requestRepo        contactPurchaseStore
	teacherPremiumRepo teacherPremiumWriter
	studentPremiumRepo studentPremiumWriter
	mailer             premiumMailer
	stripeCfg          config.StripeConfig
	logger             *zap.Logger
}

func NewPaymentService(
	gateway checkoutGateway,
	requestRepo contactPurchaseStore,
	teacherPremiumRepo teacherPremiumWriter,
	studentPremiumRepo studentPremiumWriter,
	mailer premiumMailer,
	stripeCfg config.StripeConfig,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		gateway:            gateway,
		requestRepo:        requestRepo,
		teacherPremiumRepo: teacherPremiumRepo,
		studentPremiumRepo: studentPremiumRepo,
		mailer:             mailer,
		stripeCfg:          stripeCfg,
		logger:             logger,
	}
}

func (s *PaymentService) CreateContactCheckout(req models.ContactCheckoutRequest) (*models.CheckoutSessionResponse, error) {
	if req.RequestID == "" || req.TeacherID == "" {
		return nil, fmt.Errorf("%w: request ID and teacher ID are required", ErrValidation)
	}

	session, err := s.gateway.CreateContactSession(req.RequestID, req.TeacherID, s.stripeCfg.ContactAmount)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	s.logger.Info("contact purchase checkout session created",
		zap.String("session_id", session.ID),
		zap.String("request_id", req.RequestID),
		zap.String("teacher_id", req.TeacherID))

	return &models.CheckoutSessionResponse{ID: session.ID}, nil
}

func (s *PaymentService) CreateTeacherPremiumCheckout(req models.TeacherPremiumCheckoutRequest) (*models.CheckoutSessionResponse, error) {
	if req.TeacherEmail == "" {
		return nil, fmt.Errorf("%w: teacher email is required", ErrValidation)
	}

	session, err := s.gateway.CreateTeacherPremiumSession(req.TeacherEmail, req.TeacherName, s.stripeCfg.TeacherPremiumAmount)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	s.logger.Info("teacher premium checkout session created",
		zap.String("session_id", session.ID),
		zap.String("teacher_email", req.TeacherEmail))

	return &models.CheckoutSessionResponse{ID: session.ID}, nil
}

func (s *PaymentService) CreateStudentPremiumCheckout(req models.StudentPremiumCheckoutRequest) (*models.CheckoutSessionResponse, error) {
	if req.StudentData.Email == "" {
		return nil, fmt.Errorf("%w: student email is required", ErrValidation)
	}

	d := req.StudentData
	session, err := s.gateway.CreateStudentPremiumSession(d.Email, d.Subject, d.Mobile, d.Topix, d.Descripton, s.stripeCfg.StudentPremiumAmount)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	s.logger.Info("student premium checkout session created",
		zap.String("session_id", session.ID),
		zap.String("student_email", d.Email))

	return &models.CheckoutSessionResponse{ID: session.ID}, nil
}

// CheckPayment polls Stripe for the session state, used by the success page.
func (s *PaymentService) CheckPayment(sessionID string) (*models.PaymentCheckResponse, error) {
	session, err := s.gateway.GetSession(sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	return &models.PaymentCheckResponse{
		PaymentStatus: string(session.PaymentStatus),
		Metadata:      session.Metadata,
		PaymentType:   session.Metadata["type"],
	}, nil
}

// HandleStripeEvent reconciles a verified webhook event against the
// database. Only checkout.session.completed mutates state, everything else
// is acknowledged so new provider event types stay harmless. Database
// failures are logged, not returned: a Stripe retry would run the exact
// same idempotent upsert and cannot repair an application bug.
func (s *PaymentService) HandleStripeEvent(event *stripe.Event) error {
	if event.Type != "checkout.session.completed" {
		s.logger.Debug("ignoring stripe event", zap.String("event_type", string(event.Type)))
		return nil
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		s.logger.Error("failed to decode checkout session payload",
			zap.String("event_id", event.ID), zap.Error(err))
		return err
	}

	purchaseType := session.Metadata["type"]
	s.logger.Info("processing completed checkout session",
		zap.String("session_id", session.ID),
		zap.String("purchase_type", purchaseType))

	switch purchaseType {
	case models.PurchaseTypeContact:
		s.applyContactPurchase(&session)
	case models.PurchaseTypeTeacherPremium:
		s.applyTeacherPremium(&session)
	case models.PurchaseTypeStudentPremium:
		s.applyStudentPremium(&session)
	default:
		s.logger.Warn("unknown purchase type in session metadata",
			zap.String("session_id", session.ID),
			zap.String("purchase_type", purchaseType))
	}

	return nil
}

func (s *PaymentService) applyContactPurchase(session *stripe.CheckoutSession) {
	requestID := session.Metadata["requestId"]
	teacherIDRaw := session.Metadata["teacherId"]
	if requestID == "" || teacherIDRaw == "" {
		s.logger.Error("contact purchase session is missing metadata",
			zap.String("session_id", session.ID))
		return
	}

	teacherID, err := strconv.ParseUint(teacherIDRaw, 10, 32)
	if err != nil {
		s.logger.Error("contact purchase session has malformed teacher id",
			zap.String("session_id", session.ID),
			zap.String("teacher_id", teacherIDRaw))
		return
	}

	rows, err := s.requestRepo.MarkPurchased(requestID, uint(teacherID), session.ID)
	if err != nil {
		s.logger.Error("failed to mark connection request purchased",
			zap.String("request_id", requestID), zap.Error(err))
		return
	}

	if rows == 0 {
		// Request gone or already processed by an earlier delivery.
		s.logger.Warn("contact purchase update affected no rows",
			zap.String("request_id", requestID),
			zap.Uint64("teacher_id", teacherID))
		return
	}

	s.logger.Info("contact purchase applied",
		zap.String("request_id", requestID),
		zap.String("session_id", session.ID))
}

func (s *PaymentService) applyTeacherPremium(session *stripe.CheckoutSession) {
	teacherEmail := session.Metadata["teacherEmail"]
	if teacherEmail == "" {
		s.logger.Error("teacher premium session is missing teacher email",
			zap.String("session_id", session.ID))
		return
	}

	now := time.Now()
	premium := &models.TeacherPremium{
		ID:              utils.GenerateRecordID(),
		Mail:            teacherEmail,
		LinkOrVideo:     true,
		IsPaid:          true,
		PaymentDate:     &now,
		StripeSessionID: session.ID,
		PaymentAmount:   float64(session.AmountTotal) / 100,
	}

	if err := s.teacherPremiumRepo.UpsertPayment(premium); err != nil {
		s.logger.Error("failed to upsert teacher premium record",
			zap.String("teacher_email", teacherEmail), zap.Error(err))
		return
	}

	s.logger.Info("teacher premium activated",
		zap.String("teacher_email", teacherEmail),
		zap.String("session_id", session.ID))

	go s.mailer.SendPremiumWelcomeEmail(teacherEmail, session.Metadata["teacherName"])
}

func (s *PaymentService) applyStudentPremium(session *stripe.CheckoutSession) {
	email := session.Metadata["email"]
	if email == "" {
		s.logger.Error("student premium session is missing email",
			zap.String("session_id", session.ID))
		return
	}

	now := time.Now()
	premium := &models.StudentPremium{
		ID:              utils.GenerateRecordID(),
		Email:           email,
		Subject:         session.Metadata["subject"],
		Mobile:          session.Metadata["mobile"],
		Topix:           session.Metadata["topix"],
		Descripton:      session.Metadata["descripton"],
		IsPayed:         true,
		PaymentDate:     &now,
		StripeSessionID: session.ID,
		PaymentAmount:   float64(session.AmountTotal) / 100,
	}

	if err := s.studentPremiumRepo.UpsertPayment(premium); err != nil {
		s.logger.Error("failed to upsert student premium record",
			zap.String("student_email", email), zap.Error(err))
		return
	}

	s.logger.Info("student premium activated",
		zap.String("student_email", email),
		zap.String("session_id", session.ID))
}
