package handler

import (
	"net/http"

	"auction-marketplace/internal/storage"
	"auction-marketplace/services/auction/helpers"
	"auction-marketplace/utils"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	service UploadServiceInterface
}

func NewUploadHandler(service UploadServiceInterface) *UploadHandler {
	return &UploadHandler{service: service}
}

// UploadHandler handles POST /uploads with a multipart "file" and a "kind" form field
func (h *UploadHandler) UploadHandler(c *gin.Context) {
	kind := c.DefaultPostForm("kind", storage.KindPublic)
	header, err := c.FormFile("file")
	if err != nil {
		helpers.HandleBindError(c, "UploadHandler", err)
		return
	}

	file, err := header.Open()
	if err != nil {
		helpers.RespondError(c, "UploadHandler", err, map[string]any{"filename": header.Filename})
		return
	}
	defer file.Close()

	url, err := h.service.Upload(c.Request.Context(), kind, header.Filename, file)
	if err != nil {
		helpers.RespondError(c, "UploadHandler", err, map[string]any{"filename": header.Filename, "kind": kind})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.UploadResponse{URL: url}, "file uploaded successfully")
	helpers.LogSuccess("UploadHandler", "file uploaded successfully", map[string]any{
		"kind": kind,
		"url":  url,
		"size": header.Size,
	})
}
