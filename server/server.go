package server

import (
	"fmt"
	"log"
	"net/http"

	"github.com/edumesh/Backend_ELearning/controllers"
	"github.com/edumesh/Backend_ELearning/middlewares"
	"github.com/edumesh/Backend_ELearning/models"
	"github.com/edumesh/Backend_ELearning/res"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func Init() {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		if err, ok := recovered.(string); ok {
			c.String(http.StatusInternalServerError, fmt.Sprintf("Server Internal Error: %s", err))
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, res.Response{
			Success: false,
			Message: "Server Internal Error",
		})
	}))
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"*"},
		AllowHeaders: []string{"*"},
	}))
	// Validators
	InitValidators()
	// Routes
	staffRol := []string{models.ADMIN, models.INSTRUCTOR}
	adminRol := []string{models.ADMIN}
	course := router.Group(
		"/api/l/courses",
		middlewares.JWTMiddleware(),
	)
	mockTest := router.Group(
		"/api/l/mock-tests",
		middlewares.JWTMiddleware(),
	)
	payment := router.Group(
		"/api/l/payments",
	)
	{
		// Init controllers
		courseController := new(controllers.CourseController)
		sectionController := new(controllers.SectionController)
		lectureController := new(controllers.LectureController)
		assignmentController := new(controllers.AssignmentController)
		mockTestController := new(controllers.MockTestController)
		attemptController := new(controllers.AttemptController)
		purchaseController := new(controllers.PurchaseController)
		// Courses
		course.POST(
			"",
			middlewares.RolesMiddleware(staffRol),
			courseController.CreateCourse,
		)
		course.GET("", courseController.GetCourses)
		course.GET("/search", courseController.Search)
		course.GET("/languages", courseController.GetLanguages)
		course.GET("/:idCourse", courseController.GetCourse)
		course.PUT(
			"/:idCourse/status",
			middlewares.RolesMiddleware(staffRol),
			courseController.UpdateStatus,
		)
		// Sections
		course.GET("/:idCourse/sections", sectionController.GetSections)
		course.POST(
			"/:idCourse/sections",
			middlewares.RolesMiddleware(staffRol),
			sectionController.CreateSection,
		)
		course.PUT(
			"/:idCourse/sections/:idSection",
			middlewares.RolesMiddleware(staffRol),
			sectionController.UpdateSection,
		)
		course.DELETE(
			"/:idCourse/sections/:idSection",
			middlewares.RolesMiddleware(staffRol),
			sectionController.DeleteSection,
		)
		course.POST(
			"/:idCourse/sections/:idSection/lessons",
			middlewares.RolesMiddleware(staffRol),
			sectionController.AddLesson,
		)
		course.POST(
			"/:idCourse/sections/:idSection/quizzes",
			middlewares.RolesMiddleware(staffRol),
			sectionController.AddQuiz,
		)
		course.POST(
			"/:idCourse/sections/:idSection/assignments",
			middlewares.RolesMiddleware(staffRol),
			sectionController.AddAssignment,
		)
		course.POST(
			"/:idCourse/sections/:idSection/live-lessons",
			middlewares.RolesMiddleware(staffRol),
			sectionController.AddLiveLesson,
		)
		// Lessons
		course.POST(
			"/:idCourse/lessons/:idLesson/complete",
			lectureController.CompleteLecture,
		)
		// Assignments
		course.POST(
			"/assignments/:idAssignment/submissions",
			assignmentController.SubmitAssignment,
		)
		course.PUT(
			"/assignments/:idAssignment/submissions/:idSubmission/grade",
			middlewares.RolesMiddleware(staffRol),
			assignmentController.GradeSubmission,
		)
		course.GET(
			"/assignments/:idAssignment/submissions/:idSubmission/download",
			middlewares.RolesMiddleware(staffRol),
			assignmentController.DownloadSubmissionFiles,
		)
		// Mock tests
		mockTest.POST(
			"",
			middlewares.RolesMiddleware(staffRol),
			mockTestController.CreateMockTest,
		)
		mockTest.GET("", mockTestController.GetMockTests)
		mockTest.GET("/:idTest", mockTestController.GetMockTest)
		mockTest.PUT(
			"/:idTest",
			middlewares.RolesMiddleware(staffRol),
			mockTestController.UpdateMockTest,
		)
		mockTest.DELETE(
			"/:idTest",
			middlewares.RolesMiddleware(staffRol),
			mockTestController.DeleteMockTest,
		)
		mockTest.POST(
			"/:idTest/toggle-publish",
			middlewares.RolesMiddleware(staffRol),
			mockTestController.TogglePublishStatus,
		)
		mockTest.GET(
			"/:idTest/report",
			middlewares.RolesMiddleware(adminRol),
			mockTestController.ExportAttempts,
		)
		// Attempts
		mockTest.POST("/:idTest/attempts", attemptController.StartAttempt)
		mockTest.GET("/attempts", attemptController.GetAttempts)
		mockTest.GET("/attempts/:idAttempt", attemptController.GetAttempt)
		mockTest.POST("/attempts/:idAttempt/answers", attemptController.SubmitAnswers)
		mockTest.POST(
			"/attempts/:idAttempt/grade",
			middlewares.RolesMiddleware(staffRol),
			attemptController.GradeAttempt,
		)
		mockTest.GET("/attempts/:idAttempt/certificate", attemptController.GetCertificate)
		// Payments
		// The webhook authenticates with its own signature, not a JWT
		payment.POST("/webhook", purchaseController.HandleWebhook)
		payment.POST(
			"/create-order",
			middlewares.JWTMiddleware(),
			purchaseController.CreateOrder,
		)
		payment.POST(
			"/verify",
			middlewares.JWTMiddleware(),
			purchaseController.VerifyPayment,
		)
		payment.GET(
			"/my-courses",
			middlewares.JWTMiddleware(),
			purchaseController.GetMyCourses,
		)
		payment.GET(
			"/course/:idCourse",
			middlewares.JWTMiddleware(),
			middlewares.RolesMiddleware(staffRol),
			purchaseController.GetCoursePurchases,
		)
		payment.GET(
			"/all",
			middlewares.JWTMiddleware(),
			middlewares.RolesMiddleware(adminRol),
			purchaseController.GetAllPurchases,
		)
		payment.GET(
			"/report",
			middlewares.JWTMiddleware(),
			middlewares.RolesMiddleware(adminRol),
			purchaseController.ExportPurchases,
		)
	}
	// No route
	router.NoRoute(func(ctx *gin.Context) {
		ctx.JSON(404, res.Response{
			Success: false,
			Message: "Not found",
		})
	})
	// Init server
	if err := router.Run(); err != nil {
		log.Fatalf("Error init server")
	}
}
