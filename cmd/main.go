package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/Oranguru/config"
	"github.com/lshigami/Oranguru/database"
	_ "github.com/lshigami/Oranguru/docs" // Swagger docs
	adminctrl "github.com/lshigami/Oranguru/internal/controller/admin"
	userctrl "github.com/lshigami/Oranguru/internal/controller/user"
	"github.com/lshigami/Oranguru/internal/logger"
	"github.com/lshigami/Oranguru/internal/middleware"
	"github.com/lshigami/Oranguru/internal/model"
	"github.com/lshigami/Oranguru/internal/repository"
	"github.com/lshigami/Oranguru/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Exam Prep Platform API
// @version 1.0
// @description Backend for an exam preparation platform: courses, question
// @description packages, bundles, manually approved purchases and graded
// @description quiz attempts.
// @contact.name API Support
// @contact.email support@example.com
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token.
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		fx.Provide(
			repository.NewUserRepository,
			repository.NewCourseRepository,
			repository.NewQuestionRepository,
			repository.NewPackageRepository,
			repository.NewBundleRepository,
			repository.NewPurchaseRepository,
			repository.NewReferralCodeRepository,
			repository.NewQuizAttemptRepository,
		),

		fx.Provide(
			service.NewAuthService,
			service.NewUserService,
			service.NewCourseService,
			service.NewQuestionService,
			service.NewAccessService,
			service.NewPackageService,
			service.NewBundleService,
			service.NewReferralService,
			service.NewPurchaseService,
			service.NewGradingService,
		),

		fx.Provide(
			userctrl.NewAuthController,
			userctrl.NewCourseController,
			userctrl.NewPackageController,
			userctrl.NewBundleController,
			userctrl.NewPurchaseController,
			userctrl.NewQuizController,
			adminctrl.NewAdminCourseController,
			adminctrl.NewAdminPackageController,
			adminctrl.NewAdminBundleController,
			adminctrl.NewAdminReferralController,
			adminctrl.NewAdminPurchaseController,
			adminctrl.NewAdminUserController,
			adminctrl.NewAdminStatsController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine(cfg *config.Config) *gin.Engine {
	if cfg.Server.GinMode != "" {
		gin.SetMode(cfg.Server.GinMode)
	}

	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Be more specific in production
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	authCtrl *userctrl.AuthController,
	courseCtrl *userctrl.CourseController,
	packageCtrl *userctrl.PackageController,
	bundleCtrl *userctrl.BundleController,
	purchaseCtrl *userctrl.PurchaseController,
	quizCtrl *userctrl.QuizController,
	adminCourseCtrl *adminctrl.AdminCourseController,
	adminPackageCtrl *adminctrl.AdminPackageController,
	adminBundleCtrl *adminctrl.AdminBundleController,
	adminReferralCtrl *adminctrl.AdminReferralController,
	adminPurchaseCtrl *adminctrl.AdminPurchaseController,
	adminUserCtrl *adminctrl.AdminUserController,
	adminStatsCtrl *adminctrl.AdminStatsController,
) {
	api := router.Group("/api/v1")

	// Public routes
	api.POST("/auth/register", authCtrl.Register)
	api.POST("/auth/login", authCtrl.Login)

	// Authenticated user routes
	authed := api.Group("")
	authed.Use(middleware.AuthRequired(cfg))
	{
		authed.GET("/me", authCtrl.Me)

		authed.GET("/courses", courseCtrl.ListCourses)
		authed.GET("/courses/:id", courseCtrl.GetCourse)
		authed.GET("/courses/:id/questions", courseCtrl.ListCourseQuestions)
		authed.GET("/questions/:id", courseCtrl.GetQuestion)

		authed.GET("/packages", packageCtrl.ListPackages)
		authed.GET("/packages/:id", packageCtrl.GetPackage)

		authed.GET("/bundles", bundleCtrl.ListBundles)
		authed.GET("/bundles/:id", bundleCtrl.GetBundle)

		authed.POST("/purchases/packages", purchaseCtrl.PurchasePackage)
		authed.POST("/purchases/bundles", purchaseCtrl.PurchaseBundle)
		authed.GET("/purchases/mine", purchaseCtrl.MyPurchases)

		authed.POST("/attempts", quizCtrl.SubmitAttempt)
		authed.GET("/attempts", quizCtrl.MyAttempts)
		authed.GET("/attempts/:id", quizCtrl.GetAttempt)
	}

	// Admin routes
	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(cfg), middleware.AdminRequired())
	{
		admin.POST("/courses", adminCourseCtrl.CreateCourse)
		admin.PUT("/courses/:id", adminCourseCtrl.UpdateCourse)
		admin.DELETE("/courses/:id", adminCourseCtrl.DeleteCourse)
		admin.POST("/courses/:id/questions", adminCourseCtrl.CreateQuestion)
		admin.PUT("/questions/:id", adminCourseCtrl.UpdateQuestion)
		admin.DELETE("/questions/:id", adminCourseCtrl.DeleteQuestion)

		admin.POST("/packages", adminPackageCtrl.CreatePackage)
		admin.PUT("/packages/:id", adminPackageCtrl.UpdatePackage)
		admin.DELETE("/packages/:id", adminPackageCtrl.DeletePackage)
		admin.POST("/packages/:id/questions", adminPackageCtrl.AddQuestions)
		admin.DELETE("/packages/:id/questions/:question_id", adminPackageCtrl.RemoveQuestion)

		admin.POST("/bundles", adminBundleCtrl.CreateBundle)
		admin.PUT("/bundles/:id", adminBundleCtrl.UpdateBundle)
		admin.DELETE("/bundles/:id", adminBundleCtrl.DeleteBundle)

		admin.POST("/referral-codes", adminReferralCtrl.CreateReferralCode)
		admin.GET("/referral-codes", adminReferralCtrl.ListReferralCodes)
		admin.PUT("/referral-codes/:id", adminReferralCtrl.UpdateReferralCode)
		admin.DELETE("/referral-codes/:id", adminReferralCtrl.DeleteReferralCode)

		admin.GET("/purchases", adminPurchaseCtrl.ListPurchases)
		admin.PUT("/purchases/packages/:id/approve", adminPurchaseCtrl.ApprovePackagePurchase)
		admin.PUT("/purchases/packages/:id/revoke", adminPurchaseCtrl.RevokePackagePurchase)
		admin.DELETE("/purchases/packages/:id", adminPurchaseCtrl.DeletePackagePurchase)
		admin.PUT("/purchases/bundles/:id/approve", adminPurchaseCtrl.ApproveBundlePurchase)
		admin.PUT("/purchases/bundles/:id/revoke", adminPurchaseCtrl.RevokeBundlePurchase)
		admin.DELETE("/purchases/bundles/:id", adminPurchaseCtrl.DeleteBundlePurchase)

		admin.GET("/users", adminUserCtrl.ListUsers)
		admin.PUT("/users/:id/ban", adminUserCtrl.BanUser)
		admin.PUT("/users/:id/unban", adminUserCtrl.UnbanUser)
		admin.PUT("/users/:id/role", adminUserCtrl.UpdateUserRole)

		admin.GET("/attempts", adminStatsCtrl.ListAttempts)
		admin.GET("/stats", adminStatsCtrl.QuizStats)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Exam prep API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) {
	err := db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Question{},
		&model.Answer{},
		&model.Package{},
		&model.PackageQuestion{},
		&model.Bundle{},
		&model.BundlePackage{},
		&model.ReferralCode{},
		&model.PackagePurchase{},
		&model.BundlePurchase{},
		&model.QuizAttempt{},
		&model.QuizAnswer{},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Database auto-migration failed")
	}
	log.Info().Msg("Database auto-migration complete")
}
