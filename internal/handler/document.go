package handler

import (
	"DocVault/internal/dto"
	"DocVault/internal/mq"
	"DocVault/internal/service"
	"DocVault/utils"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const presignedExpiry = 15 * time.Minute

// UploadDocument stores a multipart upload as a document. The folder_id
// form field is optional; omitted means the tree root. The display name
// defaults to the uploaded filename.
func UploadDocument(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file required"})
		return
	}
	var folderID *uint64
	if raw := strings.TrimSpace(c.PostForm("folder_id")); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid folder_id"})
			return
		}
		folderID = &id
	}
	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		name = fileHeader.Filename
	}

	user, err := currentUser(c)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.Fail(c, err)
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	document, err := service.CreateDocument(
		c.Request.Context(),
		user,
		folderID,
		name,
		fileHeader.Filename,
		contentType,
		file,
		fileHeader.Size,
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			utils.NotFound(c)
		case errors.Is(err, service.ErrDuplicateName):
			utils.Fail(c, errors.New(service.Hooks().AlreadyExistsMessage(name)))
		case errors.Is(err, service.ErrQuotaExceeded):
			utils.Fail(c, service.ErrQuotaExceeded)
		default:
			utils.Fail(c, err)
		}
		return
	}
	mq.Notify(c.Request.Context(), service.Hooks().DocumentCreatedMessage(user, document))
	utils.Success(c, document)
}

// DocumentDetail returns one document with its breadcrumbs.
func DocumentDetail(c *gin.Context) {
	documentID, err := strconv.ParseUint(c.Param("documentID"), 10, 64)
	if err != nil {
		utils.NotFound(c)
		return
	}
	userID := c.MustGet("user_id").(uint64)
	document, err := service.GetDocumentForUser(documentID, userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			utils.NotFound(c)
			return
		}
		utils.Fail(c, err)
		return
	}
	crumbs, err := service.Breadcrumbs(document.FolderID)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	resp := dto.DocumentDetailResponse{
		ID:               document.ID,
		Name:             document.Name,
		OriginalFilename: document.OriginalFilename,
		FolderID:         document.FolderID,
		AuthorID:         document.AuthorID,
		Size:             document.Size,
		ModifiedAt:       document.ModifiedAt,
		Shared:           document.SharedWithMe,
		Breadcrumbs:      breadcrumbItems(crumbs),
	}
	utils.Success(c, resp)
}

// DownloadDocument streams the document payload. With ?presigned=true it
// returns a short-lived direct URL instead of proxying the bytes.
func DownloadDocument(c *gin.Context) {
	documentID, err := strconv.ParseUint(c.Param("documentID"), 10, 64)
	if err != nil {
		utils.NotFound(c)
		return
	}
	userID := c.MustGet("user_id").(uint64)
	document, err := service.GetDocumentForUser(documentID, userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			utils.NotFound(c)
			return
		}
		utils.Fail(c, err)
		return
	}

	if c.Query("presigned") == "true" {
		url, err := service.DocumentDownloadURL(c.Request.Context(), document, presignedExpiry)
		if err != nil {
			utils.Fail(c, err)
			return
		}
		utils.Success(c, gin.H{"url": url, "expires_in": int(presignedExpiry.Seconds())})
		return
	}

	object, info, err := service.DownloadDocument(c.Request.Context(), document)
	if err != nil {
		c.JSON(404, gin.H{"error": err.Error()})
		return
	}
	defer object.Close()

	fileName := utils.SanitizeHeaderFilename(document.OriginalFilename)
	c.Header(
		"Content-Disposition",
		fmt.Sprintf("attachment; filename=\"%s\"", fileName),
	)
	c.Header("Content-Type", "application/octet-stream")
	c.Header("Content-Length", fmt.Sprintf("%d", info.Size))

	if _, err := io.Copy(c.Writer, object); err != nil {
		log.Println("download error:", err)
	}
}

// DeleteDocument removes a document. Author only.
func DeleteDocument(c *gin.Context) {
	var req dto.DeleteDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	user, err := currentUser(c)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	document, err := service.GetDocumentForUser(req.DocumentID, user.ID)
	if err != nil {
		utils.NotFound(c)
		return
	}
	if err := service.DeleteDocument(c.Request.Context(), user.ID, req.DocumentID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			utils.NotFound(c)
			return
		}
		utils.Fail(c, err)
		return
	}
	mq.Notify(c.Request.Context(), service.Hooks().DocumentDeletedMessage(user, document))
	utils.Success(c, gin.H{"deleted": document.ID})
}
