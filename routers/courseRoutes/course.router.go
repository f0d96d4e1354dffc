package courseRoutes

import (
	"github.com/gofiber/fiber/v2"

	controllers "lms/controllers/course"
	"lms/middleware"
	courseValidator "lms/validators/course"
)

// SetupCourseRoutes sets up all course, module and lecture management routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/admin/course", middleware.JWTMiddleware, middleware.InstructorOnly)

	// Course CRUD
	courseGroup.Post("/create", courseValidator.CreateCourse(), controllers.CreateCourse)
	courseGroup.Get("/list", courseValidator.List(), controllers.ListCourses)
	courseGroup.Get("/:id", courseValidator.CourseID(), controllers.GetCourseDetails)
	courseGroup.Put("/:id", courseValidator.UpdateCourse(), controllers.UpdateCourse)
	courseGroup.Delete("/:id", courseValidator.CourseID(), controllers.DeleteCourse)
	courseGroup.Post("/:id/publish", courseValidator.PublishCourse(), controllers.PublishCourse)

	// Module management
	courseGroup.Post("/:id/module", courseValidator.CreateModule(), controllers.CreateModule)
	courseGroup.Get("/:id/modules", courseValidator.CourseID(), controllers.ListModules)
	courseGroup.Post("/:id/modules/reorder", courseValidator.ReorderModules(), controllers.ReorderModules)
	courseGroup.Put("/:course_id/module/:module_id", courseValidator.UpdateModule(), controllers.UpdateModule)
	courseGroup.Delete("/:course_id/module/:module_id", courseValidator.ModuleID(), controllers.DeleteModule)

	// Lectures within a module
	courseGroup.Post("/:course_id/module/:module_id/lecture", courseValidator.CreateLecture(), controllers.CreateLecture)
	courseGroup.Get("/:course_id/module/:module_id/lectures", courseValidator.ModuleID(), controllers.ListModuleLectures)
	courseGroup.Post("/:course_id/module/:module_id/lectures/reorder", courseValidator.ReorderLectures(), controllers.ReorderLectures)

	// Lecture endpoints (separate group for easier access)
	lectureGroup := app.Group("/admin/lecture", middleware.JWTMiddleware, middleware.InstructorOnly)
	lectureGroup.Put("/:lecture_id", courseValidator.UpdateLecture(), controllers.UpdateLecture)
	lectureGroup.Delete("/:lecture_id", courseValidator.LectureID(), controllers.DeleteLecture)
	lectureGroup.Post("/:lecture_id/publish", courseValidator.PublishLecture(), controllers.PublishLecture)

	// Sections
	lectureGroup.Post("/:lecture_id/section", courseValidator.CreateSection(), controllers.CreateSection)
	lectureGroup.Post("/:lecture_id/sections/reorder", courseValidator.ReorderSections(), controllers.ReorderSections)

	sectionGroup := app.Group("/admin/section", middleware.JWTMiddleware, middleware.InstructorOnly)
	sectionGroup.Put("/:section_id", courseValidator.UpdateSection(), controllers.UpdateSection)
	sectionGroup.Delete("/:section_id", courseValidator.SectionID(), controllers.DeleteSection)

	// Attachments
	lectureGroup.Post("/:lecture_id/attachment", courseValidator.LectureID(), controllers.UploadAttachment)
	lectureGroup.Get("/:lecture_id/attachments", courseValidator.LectureID(), controllers.ListAttachments)

	attachmentGroup := app.Group("/admin/attachment", middleware.JWTMiddleware, middleware.InstructorOnly)
	attachmentGroup.Delete("/:attachment_id", courseValidator.AttachmentID(), controllers.DeleteAttachment)

	// Dashboard
	dashGroup := app.Group("/admin/dashboard", middleware.JWTMiddleware, middleware.AdminOnly)
	dashGroup.Get("/stats", controllers.DashboardStats)
}
