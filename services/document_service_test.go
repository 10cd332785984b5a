package services

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"jobtorget-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newDocumentApp(t *testing.T, db *gorm.DB) *fiber.App {
	t.Helper()
	require.NoError(t, db.AutoMigrate(&models.Document{}))
	svc := NewDocumentService(db)

	app := fiber.New()
	app.Get("/documents", svc.GetAll)
	app.Get("/documents/:id/download", svc.Download)
	app.Post("/documents", svc.Upload)
	app.Patch("/documents/:id/tags", svc.UpdateTags)
	return app
}

func uploadDocument(t *testing.T, app *fiber.App, filename, tags string, data []byte) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	if tags != "" {
		require.NoError(t, writer.WriteField("tags", tags))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/documents", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestDocumentUploadAndDownload(t *testing.T) {
	db := newTestDB(t)
	app := newDocumentApp(t, db)

	payload := []byte("%PDF-1.4 innehåll")
	resp := uploadDocument(t, app, "cv-mall.pdf", `["  cv mall ", "CV MALL", "intyg"]`, payload)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var metas []models.DocumentMeta
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&metas))
	require.Len(t, metas, 1)
	assert.Equal(t, "cv-mall.pdf", metas[0].Name)
	assert.Equal(t, []string{"Cv Mall", "Intyg"}, metas[0].Tags)

	// The listing never includes file bytes, the download does
	req := httptest.NewRequest(http.MethodGet, "/documents", nil)
	listResp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(listResp.Body)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "innehåll")

	req = httptest.NewRequest(http.MethodGet, "/documents/1/download", nil)
	dlResp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, dlResp.StatusCode)
	assert.Contains(t, dlResp.Header.Get("Content-Disposition"), "attachment")
	downloaded, err := io.ReadAll(dlResp.Body)
	require.NoError(t, err)
	assert.Equal(t, payload, downloaded)
}

func TestDocumentUpdateTags(t *testing.T) {
	db := newTestDB(t)
	app := newDocumentApp(t, db)

	resp := uploadDocument(t, app, "intyg.pdf", "", []byte("data"))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := json.Marshal(fiber.Map{"tags": []string{" nya  taggar ", "NYA TAGGAR"}})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPatch, "/documents/1/tags", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	patchResp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, patchResp.StatusCode)

	var meta models.DocumentMeta
	require.NoError(t, json.NewDecoder(patchResp.Body).Decode(&meta))
	assert.Equal(t, []string{"Nya Taggar"}, meta.Tags)
}

func TestDocumentTagDecodingTolerant(t *testing.T) {
	assert.Empty(t, decodeTags(""))
	assert.Empty(t, decodeTags("not-json"))
	assert.Equal(t, []string{"a", "b"}, decodeTags(`["a","b"]`))
}
