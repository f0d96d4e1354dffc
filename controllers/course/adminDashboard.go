package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	surveyModels "lms/models/survey"
)

// DashboardStats aggregates the counts behind the admin stat cards
func DashboardStats(c *fiber.Ctx) error {
	db := database.Database.Db

	var totalUsers, totalStudents, totalInstructors, totalAdmins int64
	db.Model(&models.User{}).Where("is_deleted = ?", false).Count(&totalUsers)
	db.Model(&models.User{}).Where("is_deleted = ? AND role = ?", false, "STUDENT").Count(&totalStudents)
	db.Model(&models.User{}).Where("is_deleted = ? AND role = ?", false, "INSTRUCTOR").Count(&totalInstructors)
	db.Model(&models.User{}).Where("is_deleted = ? AND role = ?", false, "ADMIN").Count(&totalAdmins)

	var totalCourses, publishedCourses, totalLectures, totalEnrollments int64
	db.Model(&courseModels.Course{}).Where("is_deleted = ?", false).Count(&totalCourses)
	db.Model(&courseModels.Course{}).Where("is_deleted = ? AND is_published = ?", false, true).Count(&publishedCourses)
	db.Model(&courseModels.Lecture{}).Where("is_deleted = ?", false).Count(&totalLectures)
	db.Model(&courseModels.Enrollment{}).Where("is_deleted = ?", false).Count(&totalEnrollments)

	var totalSurveys, activeSurveys, totalResponses int64
	db.Model(&surveyModels.Survey{}).Where("is_deleted = ?", false).Count(&totalSurveys)
	db.Model(&surveyModels.Survey{}).Where("is_deleted = ? AND status = ?", false, surveyModels.StatusActive).Count(&activeSurveys)
	db.Model(&surveyModels.SurveyResponse{}).Where("is_deleted = ?", false).Count(&totalResponses)

	// Today's activity
	startOfDay := now.BeginningOfDay()
	endOfDay := now.EndOfDay()

	var signupsToday, responsesToday int64
	db.Model(&models.User{}).
		Where("is_deleted = ? AND created_at BETWEEN ? AND ?", false, startOfDay, endOfDay).
		Count(&signupsToday)
	db.Model(&surveyModels.SurveyResponse{}).
		Where("is_deleted = ? AND submitted_at BETWEEN ? AND ?", false, startOfDay, endOfDay).
		Count(&responsesToday)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats fetched successfully!", fiber.Map{
		"users": fiber.Map{
			"total":       totalUsers,
			"students":    totalStudents,
			"instructors": totalInstructors,
			"admins":      totalAdmins,
		},
		"courses": fiber.Map{
			"total":       totalCourses,
			"published":   publishedCourses,
			"lectures":    totalLectures,
			"enrollments": totalEnrollments,
		},
		"surveys": fiber.Map{
			"total":     totalSurveys,
			"active":    activeSurveys,
			"responses": totalResponses,
		},
		"today": fiber.Map{
			"signups":   signupsToday,
			"responses": responsesToday,
		},
		"generated_at": time.Now(),
	})
}
