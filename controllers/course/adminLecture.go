package controllers

import (
	"github.com/gofiber/fiber/v2"

	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	courseValidator "lms/validators/course"
)

// CreateLecture appends a lecture to a module
func CreateLecture(c *fiber.Ctx) error {
	user, ok := middleware.AuthUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)
	moduleID := c.Locals("moduleID").(uint)

	module, errResp := requireModuleOwner(c, user, courseID, moduleID)
	if module == nil {
		return errResp
	}

	reqData, ok := c.Locals("validatedLecture").(*courseValidator.CreateLectureRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	contentType := reqData.ContentType
	if contentType == "" {
		contentType = "TEXT"
	}

	var maxIndex int
	database.Database.Db.
		Model(&courseModels.Lecture{}).
		Where("module_id = ? AND is_deleted = ?", moduleID, false).
		Select("COALESCE(MAX(order_index), 0)").
		Scan(&maxIndex)

	lecture := courseModels.Lecture{
		CourseID:    courseID,
		ModuleID:    moduleID,
		Title:       reqData.Title,
		Description: reqData.Description,
		ContentType: contentType,
		TextContent: reqData.TextContent,
		VideoURL:    reqData.VideoURL,
		Duration:    reqData.Duration,
		OrderIndex:  maxIndex + 1,
	}

	if err := database.Database.Db.Create(&lecture).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lecture!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lecture created successfully!", lecture)
}

// ListModuleLectures lists a module's lectures in order
func ListModuleLectures(c *fiber.Ctx) error {
	user, ok := middleware.AuthUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)
	moduleID := c.Locals("moduleID").(uint)

	module, errResp := requireModuleOwner(c, user, courseID, moduleID)
	if module == nil {
		return errResp
	}

	var lectures []courseModels.Lecture
	if err := database.Database.Db.
		Where("module_id = ? AND is_deleted = ?", moduleID, false).
		Order("order_index asc").
		Find(&lectures).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lectures!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lectures fetched successfully!", lectures)
}

// UpdateLecture updates an existing lecture
func UpdateLecture(c *fiber.Ctx) error {
	user, ok := middleware.AuthUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	lectureID := c.Locals("lectureID").(uint)

	lecture, errResp := requireLectureOwner(c, user, lectureID)
	if lecture == nil {
		return errResp
	}

	reqData, ok := c.Locals("validatedLectureUpdate").(*courseValidator.UpdateLectureRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != "" {
		lecture.Title = reqData.Title
	}
	if reqData.Description != "" {
		lecture.Description = reqData.Description
	}
	if reqData.ContentType != "" {
		lecture.ContentType = reqData.ContentType
	}
	if reqData.TextContent != "" {
		lecture.TextContent = reqData.TextContent
	}
	if reqData.VideoURL != "" {
		lecture.VideoURL = reqData.VideoURL
	}
	if reqData.Duration > 0 {
		lecture.Duration = reqData.Duration
	}

	if err := database.Database.Db.Save(lecture).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lecture!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lecture updated successfully!", lecture)
}

// DeleteLecture soft deletes a lecture
func DeleteLecture(c *fiber.Ctx) error {
	user, ok := middleware.AuthUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	lectureID := c.Locals("lectureID").(uint)

	lecture, errResp := requireLectureOwner(c, user, lectureID)
	if lecture == nil {
		return errResp
	}

	lecture.IsDeleted = true
	if err := database.Database.Db.Save(lecture).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lecture!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lecture deleted successfully!", nil)
}

// PublishLecture publishes or unpublishes a lecture
func PublishLecture(c *fiber.Ctx) error {
	user, ok := middleware.AuthUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	lectureID := c.Locals("lectureID").(uint)
	publishStatus := c.Locals("publishStatus").(bool)

	lecture, errResp := requireLectureOwner(c, user, lectureID)
	if lecture == nil {
		return errResp
	}

	lecture.IsPublished = publishStatus
	if err := database.Database.Db.Save(lecture).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lecture!", nil)
	}

	message := "Lecture unpublished successfully!"
	if publishStatus {
		message = "Lecture published successfully!"
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, message, lecture)
}

// ReorderLectures persists the given lecture order as sequential indices
// within a module
func ReorderLectures(c *fiber.Ctx) error {
	user, ok := middleware.AuthUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)
	moduleID := c.Locals("moduleID").(uint)

	module, errResp := requireModuleOwner(c, user, courseID, moduleID)
	if module == nil {
		return errResp
	}

	reqData, ok := c.Locals("validatedReorder").(*courseValidator.ReorderRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var count int64
	database.Database.Db.
		Model(&courseModels.Lecture{}).
		Where("id IN ? AND module_id = ? AND is_deleted = ?", reqData.IDs, moduleID, false).
		Count(&count)
	if count != int64(len(reqData.IDs)) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unknown lecture id in order list!", nil)
	}

	for i, id := range reqData.IDs {
		if err := database.Database.Db.
			Model(&courseModels.Lecture{}).
			Where("id = ?", id).
			Update("order_index", i+1).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reorder lectures!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lectures reordered successfully!", nil)
}

// CreateSection appends a text section to a lecture
func CreateSection(c *fiber.Ctx) error {
	user, ok := middleware.AuthUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	lectureID := c.Locals("lectureID").(uint)

	lecture, errResp := requireLectureOwner(c, user, lectureID)
	if lecture == nil {
		return errResp
	}

	reqData, ok := c.Locals("validatedSection").(*courseValidator.CreateSectionRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var maxIndex int
	database.Database.Db.
		Model(&courseModels.LectureSection{}).
		Where("lecture_id = ? AND is_deleted = ?", lectureID, false).
		Select("COALESCE(MAX(order_index), 0)").
		Scan(&maxIndex)

	section := courseModels.LectureSection{
		LectureID:  lecture.ID,
		Heading:    reqData.Heading,
		Body:       reqData.Body,
		OrderIndex: maxIndex + 1,
	}

	if err := database.Database.Db.Create(&section).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create section!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Section created successfully!", section)
}

// UpdateSection updates a lecture section
func UpdateSection(c *fiber.Ctx) error {
	user, ok := middleware.AuthUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	sectionID := c.Locals("sectionID").(uint)

	var section courseModels.LectureSection
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", sectionID, false).First(&section).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Section not found!", nil)
	}

	if lecture, errResp := requireLectureOwner(c, user, section.LectureID); lecture == nil {
		return errResp
	}

	reqData, ok := c.Locals("validatedSectionUpdate").(*courseValidator.UpdateSectionRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Heading != "" {
		section.Heading = reqData.Heading
	}
	if reqData.Body != "" {
		section.Body = reqData.Body
	}

	if err := database.Database.Db.Save(&section).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update section!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Section updated successfully!", section)
}

// DeleteSection soft deletes a lecture section
func DeleteSection(c *fiber.Ctx) error {
	user, ok := middleware.AuthUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	sectionID := c.Locals("sectionID").(uint)

	var section courseModels.LectureSection
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", sectionID, false).First(&section).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Section not found!", nil)
	}

	if lecture, errResp := requireLectureOwner(c, user, section.LectureID); lecture == nil {
		return errResp
	}

	section.IsDeleted = true
	if err := database.Database.Db.Save(&section).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete section!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Section deleted successfully!", nil)
}

// ReorderSections persists the given section order as sequential indices
func ReorderSections(c *fiber.Ctx) error {
	user, ok := middleware.AuthUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	lectureID := c.Locals("lectureID").(uint)

	lecture, errResp := requireLectureOwner(c, user, lectureID)
	if lecture == nil {
		return errResp
	}

	reqData, ok := c.Locals("validatedReorder").(*courseValidator.ReorderRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var count int64
	database.Database.Db.
		Model(&courseModels.LectureSection{}).
		Where("id IN ? AND lecture_id = ? AND is_deleted = ?", reqData.IDs, lectureID, false).
		Count(&count)
	if count != int64(len(reqData.IDs)) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unknown section id in order list!", nil)
	}

	for i, id := range reqData.IDs {
		if err := database.Database.Db.
			Model(&courseModels.LectureSection{}).
			Where("id = ?", id).
			Update("order_index", i+1).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reorder sections!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Sections reordered successfully!", nil)
}
