package controllers

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"

	"lms/config"
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	"lms/utils"
)

// UploadAttachment stores a multipart file against a lecture
func UploadAttachment(c *fiber.Ctx) error {
	user, ok := middleware.AuthUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	lectureID := c.Locals("lectureID").(uint)

	lecture, errResp := requireLectureOwner(c, user, lectureID)
	if lecture == nil {
		return errResp
	}

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Missing file upload!", nil)
	}

	filePath, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
	if err != nil {
		log.Printf("Error saving attachment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store attachment!", nil)
	}

	attachment := courseModels.LectureAttachment{
		LectureID: lecture.ID,
		FileName:  file.Filename,
		FilePath:  filePath,
		MimeType:  file.Header.Get("Content-Type"),
		FileSize:  file.Size,
	}

	if err := database.Database.Db.Create(&attachment).Error; err != nil {
		os.Remove(filePath)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save attachment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Attachment uploaded successfully!", fiber.Map{
		"attachment": attachment,
		"url":        utils.GetFileURL(filePath),
	})
}

// ListAttachments lists a lecture's attachments
func ListAttachments(c *fiber.Ctx) error {
	user, ok := middleware.AuthUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	lectureID := c.Locals("lectureID").(uint)

	lecture, errResp := requireLectureOwner(c, user, lectureID)
	if lecture == nil {
		return errResp
	}

	var attachments []courseModels.LectureAttachment
	if err := database.Database.Db.
		Where("lecture_id = ? AND is_deleted = ?", lectureID, false).
		Order("created_at asc").
		Find(&attachments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch attachments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attachments fetched successfully!", attachments)
}

// DeleteAttachment soft deletes an attachment record and removes the file
func DeleteAttachment(c *fiber.Ctx) error {
	user, ok := middleware.AuthUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	attachmentID := c.Locals("attachmentID").(uint)

	var attachment courseModels.LectureAttachment
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", attachmentID, false).First(&attachment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Attachment not found!", nil)
	}

	if lecture, errResp := requireLectureOwner(c, user, attachment.LectureID); lecture == nil {
		return errResp
	}

	attachment.IsDeleted = true
	if err := database.Database.Db.Save(&attachment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete attachment!", nil)
	}

	if err := os.Remove(attachment.FilePath); err != nil && !os.IsNotExist(err) {
		log.Printf("Error removing attachment file %s: %v", attachment.FilePath, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attachment deleted successfully!", nil)
}
