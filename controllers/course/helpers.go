package controllers

import (
	"github.com/gofiber/fiber/v2"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
)

// requireCourseOwner loads a course and enforces the ownership rule: only
// the owning instructor or an admin may touch it. On failure the response is
// already written and the returned course is nil.
func requireCourseOwner(c *fiber.Ctx, user *models.User, courseID uint) (*courseModels.Course, error) {
	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !user.IsAdmin() && course.InstructorID != user.ID {
		return nil, middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this course!", nil)
	}

	return &course, nil
}

// requireModuleOwner loads a module within a course after the course
// ownership check
func requireModuleOwner(c *fiber.Ctx, user *models.User, courseID, moduleID uint) (*courseModels.CourseModule, error) {
	if course, err := requireCourseOwner(c, user, courseID); course == nil {
		return nil, err
	}

	var module courseModels.CourseModule
	if err := database.Database.Db.
		Where("id = ? AND course_id = ? AND is_deleted = ?", moduleID, courseID, false).
		First(&module).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	return &module, nil
}

// requireLectureOwner loads a lecture and walks up to its course for the
// ownership check
func requireLectureOwner(c *fiber.Ctx, user *models.User, lectureID uint) (*courseModels.Lecture, error) {
	var lecture courseModels.Lecture
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", lectureID, false).First(&lecture).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lecture not found!", nil)
	}

	if course, err := requireCourseOwner(c, user, lecture.CourseID); course == nil {
		return nil, err
	}

	return &lecture, nil
}
