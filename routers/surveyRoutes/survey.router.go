package surveyRoutes

import (
	"github.com/gofiber/fiber/v2"

	surveyControllers "lms/controllers/survey"
	"lms/middleware"
	surveyValidator "lms/validators/survey"
)

// SetupSurveyRoutes sets up survey, question and response routes
func SetupSurveyRoutes(app *fiber.App) {
	surveyGroup := app.Group("/surveys")

	// Survey CRUD (owner or admin)
	surveyGroup.Post("/create", middleware.JWTMiddleware, middleware.InstructorOnly, surveyValidator.CreateSurvey(), surveyControllers.CreateSurvey)
	surveyGroup.Get("/list", middleware.JWTMiddleware, middleware.InstructorOnly, surveyValidator.List(), surveyControllers.ListSurveys)
	surveyGroup.Get("/:id", middleware.JWTMiddleware, middleware.InstructorOnly, surveyValidator.SurveyID(), surveyControllers.GetSurveyDetails)
	surveyGroup.Put("/:id", middleware.JWTMiddleware, middleware.InstructorOnly, surveyValidator.UpdateSurvey(), surveyControllers.UpdateSurvey)
	surveyGroup.Delete("/:id", middleware.JWTMiddleware, middleware.InstructorOnly, surveyValidator.SurveyID(), surveyControllers.DeleteSurvey)
	surveyGroup.Post("/:id/status", middleware.JWTMiddleware, middleware.InstructorOnly, surveyValidator.SetStatus(), surveyControllers.SetSurveyStatus)

	// Question CRUD and reorder
	surveyGroup.Post("/:id/question", middleware.JWTMiddleware, middleware.InstructorOnly, surveyValidator.CreateQuestion(), surveyControllers.CreateQuestion)
	surveyGroup.Post("/:id/questions/reorder", middleware.JWTMiddleware, middleware.InstructorOnly, surveyValidator.ReorderQuestions(), surveyControllers.ReorderQuestions)

	questionGroup := app.Group("/surveys/question")
	questionGroup.Put("/:question_id", middleware.JWTMiddleware, middleware.InstructorOnly, surveyValidator.UpdateQuestion(), surveyControllers.UpdateQuestion)
	questionGroup.Delete("/:question_id", middleware.JWTMiddleware, middleware.InstructorOnly, surveyValidator.QuestionID(), surveyControllers.DeleteQuestion)

	// Responses: submission is open to anonymous callers on anonymous
	// surveys, listing and export belong to the owner
	surveyGroup.Post("/:id/respond", middleware.OptionalJWTMiddleware, surveyValidator.SubmitResponse(), surveyControllers.SubmitResponse)
	surveyGroup.Get("/:id/responses", middleware.JWTMiddleware, middleware.InstructorOnly, surveyValidator.ListResponses(), surveyControllers.ListResponses)
	surveyGroup.Get("/:id/responses/export", middleware.JWTMiddleware, middleware.InstructorOnly, surveyValidator.SurveyID(), surveyControllers.ExportResponses)
}
