package models

// Metadata type tags carried on every checkout session. The webhook
// reconciler dispatches on these and on nothing else.
const (
	PurchaseTypeContact        = "contact_purchase"
	PurchaseTypeTeacherPremium = "premium_subscription"
	PurchaseTypeStudentPremium = "student_premium_subscription"
)

type ContactCheckoutRequest struct {
	RequestID string `json:"requestId" validate:"required"`
	TeacherID string `json:"teacherId" validate:"required"`
}

type TeacherPremiumCheckoutRequest struct {
	TeacherEmail string `json:"teacherEmail" validate:"required,email"`
	TeacherName  string `json:"teacherName"`
}

type StudentPremiumData struct {
	Email      string `json:"email" validate:"required,email"`
	Subject    string `json:"subject"`
	Mobile     string `json:"mobile"`
	Topix      string `json:"topix"`
	Descripton string `json:"descripton"`
}

type StudentPremiumCheckoutRequest struct {
	StudentData StudentPremiumData `json:"studentData"`
}

type CheckoutSessionResponse struct {
	ID string `json:"id"`
}

type PaymentCheckResponse struct {
	PaymentStatus string            `json:"paymentStatus"`
	Metadata      map[string]string `json:"metadata"`
	PaymentType   string            `json:"paymentType"`
}
