package handler

import (
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/surveyforge/qeval/internal/service"
	filesvc "github.com/surveyforge/qeval/internal/service/file"
)

// FileHandler 文件处理器
type FileHandler struct {
	svc *service.Services
}

// NewFileHandler 创建文件处理器
func NewFileHandler(svc *service.Services) *FileHandler {
	return &FileHandler{svc: svc}
}

// UploadFile 上传源表格文件
// POST /api/v1/files
func (h *FileHandler) UploadFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "file is required: "+err.Error())
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		errorResponse(c, err)
		return
	}
	defer f.Close()

	storedFile, err := h.svc.File.SaveFile(c.Request.Context(), &filesvc.SaveFileRequest{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Reader:      f,
	})
	if err != nil {
		errorResponse(c, err)
		return
	}

	created(c, storedFile)
}

// DownloadFile 下载文件内容
// GET /api/v1/files/:id/content
func (h *FileHandler) DownloadFile(c *gin.Context) {
	id := c.Param("id")

	storedFile, reader, err := h.svc.File.GetFile(c.Request.Context(), id)
	if err != nil {
		notFound(c, err.Error())
		return
	}
	defer reader.Close()

	c.Header("Content-Type", storedFile.ContentType)
	c.Header("Content-Disposition", "attachment; filename="+storedFile.FileName)
	c.Header("Content-Length", strconv.FormatInt(storedFile.FileSize, 10))

	if _, err := io.Copy(c.Writer, reader); err != nil {
		errorResponse(c, err)
		return
	}
}

// GetFileURL 获取文件访问URL
// GET /api/v1/files/:id/url
func (h *FileHandler) GetFileURL(c *gin.Context) {
	id := c.Param("id")

	url, err := h.svc.File.GetFileURL(c.Request.Context(), id)
	if err != nil {
		notFound(c, err.Error())
		return
	}

	success(c, gin.H{"url": url})
}

// ListFiles 列出文件
// GET /api/v1/files
func (h *FileHandler) ListFiles(c *gin.Context) {
	page, size := getPagination(c)

	files, total, err := h.svc.File.ListFiles(c.Request.Context(), size, (page-1)*size)
	if err != nil {
		errorResponse(c, err)
		return
	}

	successWithPagination(c, files, total, page, size)
}

// DeleteFile 删除文件
// DELETE /api/v1/files/:id
func (h *FileHandler) DeleteFile(c *gin.Context) {
	id := c.Param("id")

	if err := h.svc.File.DeleteFile(c.Request.Context(), id); err != nil {
		errorResponse(c, err)
		return
	}

	success(c, gin.H{"message": "file deleted"})
}
