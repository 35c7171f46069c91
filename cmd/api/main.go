package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"github.com/findtutor/findtutor-backend/internal/config"
	"github.com/findtutor/findtutor-backend/internal/handler"
	"github.com/findtutor/findtutor-backend/internal/middleware"
	"github.com/findtutor/findtutor-backend/internal/models"
	"github.com/findtutor/findtutor-backend/internal/repository"
	"github.com/findtutor/findtutor-backend/internal/service"
	"github.com/findtutor/findtutor-backend/pkg/database"
	"github.com/findtutor/findtutor-backend/pkg/email"
	"github.com/findtutor/findtutor-backend/pkg/logger"
	"github.com/findtutor/findtutor-backend/pkg/payment"
	"github.com/findtutor/findtutor-backend/pkg/storage"
	"github.com/findtutor/findtutor-backend/pkg/utils"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.LoadConfig()

	zapLogger := logger.New(cfg.Environment)
	defer zapLogger.Sync()

	// Initialize database
	db := database.NewDatabase(cfg.DatabaseURL)

	// Run migrations
	if err := db.AutoMigrate(
		&models.Teacher{},
		&models.Student{},
		&models.TeacherPost{},
		&models.ConnectionRequest{},
		&models.TeacherPremium{},
		&models.StudentPremium{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Repositories
	teacherRepo := repository.NewTeacherRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	postRepo := repository.NewPostRepository(db)
	requestRepo := repository.NewConnectionRequestRepository(db)
	teacherPremiumRepo := repository.NewTeacherPremiumRepository(db)
	studentPremiumRepo := repository.NewStudentPremiumRepository(db)

	// Profile photo storage
	photoStorage, err := storage.NewCloudflareStorage(cfg)
	if err != nil {
		log.Fatal("Failed to initialize R2 storage:", err)
	}

	// Email service
	emailService := email.NewEmailService(zapLogger)

	// Stripe service
	stripeService := payment.NewStripeService(cfg.Stripe.SecretKey, cfg.FrontendURL, cfg.Stripe.Currency)

	// Services
	teacherService := service.NewTeacherService(teacherRepo, photoStorage, zapLogger)
	studentService := service.NewStudentService(studentRepo, zapLogger)
	postService := service.NewPostService(postRepo, zapLogger)
	connectService := service.NewConnectService(requestRepo, studentRepo, postRepo, zapLogger)
	paymentService := service.NewPaymentService(
		stripeService,
		requestRepo,
		teacherPremiumRepo,
		studentPremiumRepo,
		emailService,
		cfg.Stripe,
		zapLogger,
	)
	premiumService := service.NewPremiumService(teacherPremiumRepo, studentPremiumRepo, zapLogger)

	validator := utils.NewValidator()

	// Handlers
	teacherHandler := handler.NewTeacherHandler(teacherService, validator)
	studentHandler := handler.NewStudentHandler(studentService, validator)
	postHandler := handler.NewPostHandler(postService, validator)
	connectHandler := handler.NewConnectHandler(connectService, validator)
	paymentHandler := handler.NewPaymentHandler(paymentService, cfg.Stripe.WebhookSecret, zapLogger)
	premiumHandler := handler.NewPremiumHandler(premiumService, validator)

	// Router
	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL + ", http://localhost:5173, http://localhost:3000",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Stripe-Signature",
		AllowMethods:     "GET, POST, PUT, DELETE",
		AllowCredentials: true,
	}))
	app.Use(fiberlogger.New())
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}))

	// Accounts
	app.Post("/teachers/register", teacherHandler.Register)
	app.Post("/teachers/login", teacherHandler.Login)
	app.Get("/teachers/:id", teacherHandler.GetTeacher)
	app.Post("/students/register", studentHandler.Register)
	app.Post("/students/login", studentHandler.Login)

	// Posts (public reads)
	app.Get("/post/teachers/posts", postHandler.GetAllPosts)
	app.Get("/post/teachers/:teacherId", postHandler.GetTeacherPosts)

	// Connection requests
	app.Post("/connect/requests/send", connectHandler.SendRequest)
	app.Get("/connect/requests/teacher/:teacherId", connectHandler.GetTeacherRequests)
	app.Get("/connect/requests/teacher/:teacherId/count", connectHandler.GetTeacherRequestCounts)
	app.Post("/connect/requests/:requestId/reject", connectHandler.RejectRequest)
	app.Get("/posts/:postId/request-status/:studentId", connectHandler.GetRequestStatus)

	// Payments (webhook must stay public, Stripe signs it instead)
	app.Post("/create-checkout-session", paymentHandler.CreateCheckoutSession)
	app.Post("/create-premium-checkout-session", paymentHandler.CreatePremiumCheckoutSession)
	app.Post("/create-student-premium-checkout-session", paymentHandler.CreateStudentPremiumCheckoutSession)
	app.Post("/webhook", paymentHandler.HandleStripeWebhook)
	app.Get("/check-payment/:sessionId", paymentHandler.CheckPayment)

	// Premium status & content
	app.Get("/check-premium-status/:teacherEmail", premiumHandler.CheckTeacherPremiumStatus)
	app.Get("/check-student-premium-status/:studentEmail", premiumHandler.CheckStudentPremiumStatus)
	app.Post("/update-premium-content", premiumHandler.UpdatePremiumContent)

	// Protected routes
	app.Use(middleware.AuthMiddleware())
	{
		app.Put("/teachers/:id", teacherHandler.UpdateTeacher)
		// Student contact details are the product being sold, only the
		// student themselves may read them directly.
		app.Get("/students/:id", studentHandler.GetStudent)
		app.Put("/students/:id", studentHandler.UpdateStudent)

		app.Post("/post/teachers/posts", postHandler.CreatePost)
		app.Put("/post/teachers/posts/:postId", postHandler.UpdatePost)
		app.Delete("/post/teachers/posts/:postId", postHandler.DeletePost)
	}

	log.Fatal(app.Listen(":" + cfg.Port))
}
