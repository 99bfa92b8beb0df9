package handler

import (
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"grantdocs/internal/catalog"
	"grantdocs/internal/repository"
	"grantdocs/internal/service"
)

// UploadFiles godoc
// @Summary Submit an upload
// @Description Multipart form with title, fiscalYear, source, grantType, remarks and repeated a4Files, nepaliFiles, extraFiles, otherFiles parts.
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Param fiscalYear formData string true "Fiscal year id, e.g. 2024-2025"
// @Param source formData string true "Funding source"
// @Param grantType formData string true "Grant type"
// @Param remarks formData string false "Remarks"
// @Param a4Files formData file false "A4 documents (.pdf)"
// @Param nepaliFiles formData file false "Nepali documents (.pdf,.doc,.docx)"
// @Param extraFiles formData file false "Extra documents (.pdf,.xls,.xlsx,.csv)"
// @Param otherFiles formData file false "Other documents"
// @Success 201 {object} model.File
// @Failure 400 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /api/upload [post]
func UploadFiles(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		form, err := c.MultipartForm()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_FORM", "request must be multipart/form-data")
		}

		req := service.UploadRequest{
			Title:      formValue(form, "title"),
			FiscalYear: formValue(form, "fiscalYear"),
			Source:     formValue(form, "source"),
			GrantType:  formValue(form, "grantType"),
			Remarks:    formValue(form, "remarks"),
		}
		// Part order within a category is the order the user picked them.
		for _, cat := range catalog.Categories() {
			for _, fh := range form.File[cat.Field()] {
				req.Attachments = append(req.Attachments, service.Attachment{
					Category:    cat,
					Filename:    fh.Filename,
					ContentType: fh.Header.Get("Content-Type"),
					Size:        fh.Size,
					Open:        func() (io.ReadCloser, error) { return fh.Open() },
				})
			}
		}

		file, err := svc.Upload(c.UserContext(), req)
		if err != nil {
			return writeServiceError(c, err, "file not found")
		}
		return c.Status(fiber.StatusCreated).JSON(file)
	}
}

// formValue returns the first value for key, trimmed.
func formValue(form *multipart.Form, key string) string {
	if v := form.Value[key]; len(v) > 0 {
		return strings.TrimSpace(v[0])
	}
	return ""
}

// ListFiles godoc
// @Summary List uploaded files
// @Tags files
// @Produce json
// @Param limit query int false "Page size" default(10)
// @Param offset query int false "Offset" default(0)
// @Param fiscalYear query string false "Fiscal year id"
// @Param source query string false "Funding source"
// @Param grantType query string false "Grant type"
// @Success 200 {object} service.FileListResult
// @Failure 400 {object} errorPayload
// @Router /api/files [get]
func ListFiles(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, perr := pageParams(c)
		if perr != nil {
			return writeError(c, fiber.StatusBadRequest, perr.code, perr.message)
		}
		filter := repository.FileFilter{
			FiscalYearID: c.Query("fiscalYear"),
			Source:       c.Query("source"),
			GrantType:    c.Query("grantType"),
		}

		res, err := svc.List(c.UserContext(), filter, limit, offset)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// GetFile godoc
// @Summary Get a file with its documents
// @Tags files
// @Produce json
// @Param id path string true "File ID"
// @Success 200 {object} model.File
// @Failure 404 {object} errorPayload
// @Router /api/files/{id} [get]
func GetFile(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		file, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err, "file not found")
		}
		return c.JSON(file)
	}
}

// DeleteFile godoc
// @Summary Delete a file and its stored documents
// @Tags files
// @Param id path string true "File ID"
// @Success 204
// @Failure 404 {object} errorPayload
// @Router /api/files/{id} [delete]
func DeleteFile(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err, "file not found")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DocumentURL godoc
// @Summary Pre-signed download URL for one document
// @Tags files
// @Produce json
// @Param id path string true "File ID"
// @Param docId path string true "Document ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errorPayload
// @Router /api/files/{id}/documents/{docId}/url [get]
func DocumentURL(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fileID, docID, ok := documentIDs(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		u, err := svc.DocumentURL(c.UserContext(), fileID, docID)
		if err != nil {
			return writeServiceError(c, err, "document not found")
		}
		return c.JSON(fiber.Map{"url": u})
	}
}

// DownloadDocument streams one document through the API.
// @Summary Download one document
// @Tags files
// @Produce octet-stream
// @Param id path string true "File ID"
// @Param docId path string true "Document ID"
// @Success 200 {file} file
// @Failure 404 {object} errorPayload
// @Router /api/files/{id}/documents/{docId}/download [get]
func DownloadDocument(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fileID, docID, ok := documentIDs(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		rc, doc, err := svc.OpenDocument(c.UserContext(), fileID, docID)
		if err != nil {
			return writeServiceError(c, err, "document not found")
		}

		c.Set(fiber.HeaderContentType, doc.ContentType)
		c.Set(fiber.HeaderContentDisposition, "attachment; filename="+strconv.Quote(doc.OriginalFilename))
		// fasthttp closes rc once the body has been written.
		return c.SendStream(rc, int(doc.Size))
	}
}

func documentIDs(c *fiber.Ctx) (fileID, docID string, ok bool) {
	fileID, docID = c.Params("id"), c.Params("docId")
	if _, err := uuid.Parse(fileID); err != nil {
		return "", "", false
	}
	if _, err := uuid.Parse(docID); err != nil {
		return "", "", false
	}
	return fileID, docID, true
}
