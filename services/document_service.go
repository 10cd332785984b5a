package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"

	"jobtorget-backend/models"
	"jobtorget-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// MaxDocumentSize caps uploaded documents at 20MB, matching the body the
// frontend is allowed to send.
const MaxDocumentSize = 20 * 1024 * 1024

// DocumentService stores uploaded files inline in the database and serves
// their metadata. File bytes are only ever read on download.
type DocumentService struct {
	DB *gorm.DB
}

func NewDocumentService(db *gorm.DB) *DocumentService {
	return &DocumentService{DB: db}
}

// decodeTags tolerates the historical tag formats: null, a JSON array, or a
// bare string. Anything unparseable becomes an empty list.
func decodeTags(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return []string{}
	}
	return tags
}

func (s *DocumentService) listMetadata() ([]models.DocumentMeta, error) {
	var docs []models.Document
	err := s.DB.
		Select("id", "name", "type", "tags", "date").
		Order("date DESC").
		Find(&docs).Error
	if err != nil {
		return nil, err
	}

	metas := make([]models.DocumentMeta, 0, len(docs))
	for _, d := range docs {
		metas = append(metas, models.DocumentMeta{
			ID:   d.ID,
			Name: d.Name,
			Type: d.Type,
			Tags: decodeTags(d.Tags),
			Date: d.CreatedAt,
		})
	}
	return metas, nil
}

// --- HTTP handlers ---

// GetAll lists document metadata only, never the file payload.
func (s *DocumentService) GetAll(c *fiber.Ctx) error {
	metas, err := s.listMetadata()
	if err != nil {
		log.Printf("❌ Fetching documents failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not fetch documents"})
	}
	return c.JSON(metas)
}

// Download streams the stored file with attachment headers.
func (s *DocumentService) Download(c *fiber.Ctx) error {
	id := c.Params("id")

	var doc models.Document
	if err := s.DB.First(&doc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "document not found"})
		}
		log.Printf("❌ Downloading document %s failed: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not download document"})
	}

	contentType := doc.Type
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Name))
	c.Set("Content-Type", contentType)
	return c.Send(doc.FileData)
}

// Upload buffers a multipart file into the database and returns the
// refreshed metadata listing.
func (s *DocumentService) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "no file uploaded"})
	}
	if fileHeader.Size > MaxDocumentSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file exceeds 20MB limit"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not read upload"})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not read upload"})
	}

	name := c.FormValue("name")
	if name == "" {
		name = fileHeader.Filename
	}
	docType := c.FormValue("type")
	if docType == "" {
		docType = fileHeader.Header.Get("Content-Type")
	}

	tags := utils.NormalizeTags(decodeTags(c.FormValue("tags")))
	tagsJSON, _ := json.Marshal(tags)

	doc := models.Document{
		Name:     name,
		Type:     docType,
		Tags:     string(tagsJSON),
		FileData: data,
	}
	if err := s.DB.Create(&doc).Error; err != nil {
		log.Printf("❌ Saving document failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not upload document"})
	}

	metas, err := s.listMetadata()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not fetch documents"})
	}
	return c.JSON(metas)
}

// UpdateTags replaces a document's tags with a normalized set.
func (s *DocumentService) UpdateTags(c *fiber.Ctx) error {
	id := c.Params("id")

	type Req struct {
		Tags []string `json:"tags"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
	}

	tags := utils.NormalizeTags(req.Tags)
	tagsJSON, _ := json.Marshal(tags)

	res := s.DB.Model(&models.Document{}).Where("id = ?", id).Update("tags", string(tagsJSON))
	if res.Error != nil {
		log.Printf("❌ Updating tags for document %s failed: %v", id, res.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not update tags"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "document not found"})
	}

	var doc models.Document
	if err := s.DB.Select("id", "name", "type", "tags", "date").First(&doc, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not fetch document"})
	}
	return c.JSON(models.DocumentMeta{
		ID: doc.ID, Name: doc.Name, Type: doc.Type, Tags: decodeTags(doc.Tags), Date: doc.CreatedAt,
	})
}

// Delete removes a document.
func (s *DocumentService) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := s.DB.Delete(&models.Document{}, "id = ?", id).Error; err != nil {
		log.Printf("❌ Deleting document %s failed: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not delete document"})
	}
	return c.JSON(fiber.Map{"success": true})
}
