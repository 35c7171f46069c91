package payment

import (
	"fmt"
	"net/http"
	"time"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/checkout/session"
)

// Stripe calls run inside request handlers, so they get a hard deadline
// instead of the library's 80s default. Failures surface to the caller,
// retrying is the caller's job.
const stripeHTTPTimeout = 10 * time.Second

type StripeService struct {
	secretKey string
	domain    string
	currency  string
}

func NewStripeService(secretKey, domain, currency string) *StripeService {
	stripe.Key = secretKey
	stripe.SetBackend(stripe.APIBackend, stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		HTTPClient: &http.Client{Timeout: stripeHTTPTimeout},
	}))
	return &StripeService{
		secretKey: secretKey,
		domain:    domain,
		currency:  currency,
	}
}

// CreateContactSession starts a one-off payment for revealing a student's
// contact details. The metadata alone must be enough for the webhook to
// apply the purchase later.
func (s *StripeService) CreateContactSession(requestID, teacherID string, amount int64) (*stripe.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(s.currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String("Student Contact Information"),
						Description: stripe.String("Access to student contact details for tutoring connection"),
					},
					UnitAmount: stripe.Int64(amount),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(fmt.Sprintf("%s/success?session_id={CHECKOUT_SESSION_ID}&request_id=%s&teacher_id=%s", s.domain, requestID, teacherID)),
		CancelURL:  stripe.String(s.domain + "/cancel"),
	}

	params.AddMetadata("type", "contact_purchase")
	params.AddMetadata("requestId", requestID)
	params.AddMetadata("teacherId", teacherID)

	return session.New(params)
}

func (s *StripeService) CreateTeacherPremiumSession(teacherEmail, teacherName string, amount int64) (*stripe.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerEmail: stripe.String(teacherEmail),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(s.currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String("Premium Teaching Subscription"),
						Description: stripe.String("Premium subscription with video showcase and direct contact features"),
					},
					UnitAmount: stripe.Int64(amount),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(s.domain + "/premium-success?session_id={CHECKOUT_SESSION_ID}&teacher_email=" + teacherEmail),
		CancelURL:  stripe.String(s.domain + "/dashboard/teacher?tab=premium&cancelled=true"),
	}

	params.AddMetadata("type", "premium_subscription")
	params.AddMetadata("teacherEmail", teacherEmail)
	params.AddMetadata("teacherName", teacherName)

	return session.New(params)
}

func (s *StripeService) CreateStudentPremiumSession(email, subject, mobile, topix, descripton string, amount int64) (*stripe.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerEmail: stripe.String(email),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(s.currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String("Premium Student Subscription"),
						Description: stripe.String("Priority placement and direct teacher matching"),
					},
					UnitAmount: stripe.Int64(amount),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(s.domain + "/premium-success?session_id={CHECKOUT_SESSION_ID}&student_email=" + email),
		CancelURL:  stripe.String(s.domain + "/dashboard/student?tab=premium&cancelled=true"),
	}

	params.AddMetadata("type", "student_premium_subscription")
	params.AddMetadata("email", email)
	params.AddMetadata("subject", subject)
	params.AddMetadata("mobile", mobile)
	params.AddMetadata("topix", topix)
	params.AddMetadata("descripton", descripton)

	return session.New(params)
}

// GetSession fetches a session back from Stripe, used by the payment
// status polling endpoint on the success page.
func (s *StripeService) GetSession(sessionID string) (*stripe.CheckoutSession, error) {
	return session.Get(sessionID, nil)
}
