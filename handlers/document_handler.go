package handlers

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"legalease-backend/extraction"
	"legalease-backend/models"
	"legalease-backend/service"
	"legalease-backend/storage"

	"github.com/gin-gonic/gin"
)

// documentIndex is the vector index surface the handlers need.
// Implemented by service.VectorIndexService.
type documentIndex interface {
	Upsert(ctx context.Context, documentID string, chunks []models.Chunk) error
	FetchAll(ctx context.Context, documentID string) ([]models.Chunk, error)
	Delete(ctx context.Context, documentID string) (int64, error)
	Stats(ctx context.Context) (models.IndexStats, error)
}

// DocumentHandler handles HTTP requests for document upload and lifecycle
type DocumentHandler struct {
	documents   *service.DocumentService
	index       documentIndex
	storage     storage.Storage
	maxFileSize int64
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documents *service.DocumentService, index documentIndex, store storage.Storage) *DocumentHandler {
	return &DocumentHandler{
		documents:   documents,
		index:       index,
		storage:     store,
		maxFileSize: 10 * 1024 * 1024, // 10MB
	}
}

// UploadDocument handles POST /api/documents/upload
func (h *DocumentHandler) UploadDocument(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_FILE",
				"message": "File is required",
			},
		})
		return
	}

	if !extraction.IsSupportedExtension(fileHeader.Filename) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_FILE_TYPE",
				"message": "File type not allowed. Allowed types: PDF, DOCX, TXT, MD",
			},
		})
		return
	}

	if fileHeader.Size > h.maxFileSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FILE_TOO_LARGE",
				"message": fmt.Sprintf("File size exceeds maximum of %d bytes", h.maxFileSize),
			},
		})
		return
	}

	// Requested document ID is optional; Process derives one from content
	// when it is empty.
	requestedID := c.PostForm("document_id")

	tmpPath, err := h.saveTemp(fileHeader)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FILE_SAVE_ERROR",
				"message": fmt.Sprintf("Failed to save uploaded file: %v", err),
			},
		})
		return
	}
	defer os.Remove(tmpPath)

	extractor, err := extraction.ForFile(fileHeader.Filename)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_FILE_TYPE",
				"message": err.Error(),
			},
		})
		return
	}

	documentID, chunks, err := h.documents.Process(extractor, tmpPath, requestedID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PROCESSING_FAILED",
				"message": fmt.Sprintf("Failed to process document: %v", err),
			},
		})
		return
	}

	if len(chunks) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NO_CONTENT",
				"message": "No content could be extracted from the document",
			},
			"data": gin.H{
				"document_id": documentID,
				"filename":    fileHeader.Filename,
			},
		})
		return
	}

	if err := h.index.Upsert(c.Request.Context(), documentID, chunks); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INDEXING_FAILED",
				"message": fmt.Sprintf("Failed to index document: %v", err),
			},
		})
		return
	}

	// Keep the original upload so the source document can be re-downloaded
	// or re-processed later. A storage failure here does not fail the
	// request.
	h.retainSource(c.Request.Context(), tmpPath, documentID, fileHeader.Filename)

	stats := h.documents.CalculateStats(chunks)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"document_id": documentID,
			"filename":    fileHeader.Filename,
			"stats":       stats,
		},
	})
}

// GetStatus handles GET /api/documents/:id/status
func (h *DocumentHandler) GetStatus(c *gin.Context) {
	documentID := c.Param("id")

	chunks, err := h.index.FetchAll(c.Request.Context(), documentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": fmt.Sprintf("Failed to query document: %v", err),
			},
		})
		return
	}

	if len(chunks) == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Document not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"document_id": documentID,
			"status":      "processed",
			"stats":       h.documents.CalculateStats(chunks),
		},
	})
}

// DownloadSource handles GET /api/documents/:id/source
func (h *DocumentHandler) DownloadSource(c *gin.Context) {
	documentID := c.Param("id")
	filename := c.Query("filename")
	if filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_FILENAME",
				"message": "filename query parameter is required",
			},
		})
		return
	}

	reader, err := h.storage.DownloadSource(c.Request.Context(), documentID, filename)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Source document not found",
			},
		})
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, reader); err != nil {
		log.Printf("Warning: failed to stream source document: %v", err)
	}
}

// DeleteDocument handles DELETE /api/documents/:id
func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	documentID := c.Param("id")

	deleted, err := h.index.Delete(c.Request.Context(), documentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": fmt.Sprintf("Failed to delete document: %v", err),
			},
		})
		return
	}

	if deleted == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Document not found",
			},
		})
		return
	}

	if err := h.storage.DeleteSources(c.Request.Context(), documentID); err != nil {
		log.Printf("Warning: failed to delete retained sources for %s: %v", documentID, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"document_id":    documentID,
			"chunks_deleted": deleted,
		},
	})
}

// GetDatabaseStats handles GET /api/database/stats
func (h *DocumentHandler) GetDatabaseStats(c *gin.Context) {
	stats, err := h.index.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": fmt.Sprintf("Failed to query database stats: %v", err),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    stats,
	})
}

// saveTemp writes the upload to a temp file, preserving the extension so
// the extractor can read it by path.
func (h *DocumentHandler) saveTemp(fileHeader *multipart.FileHeader) (string, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "upload-*"+filepath.Ext(fileHeader.Filename))
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer tmp.Close()

	if _, err := io.Copy(tmp, src); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	return tmp.Name(), nil
}

func (h *DocumentHandler) retainSource(ctx context.Context, tmpPath, documentID, filename string) {
	f, err := os.Open(tmpPath)
	if err != nil {
		log.Printf("Warning: failed to reopen upload for retention: %v", err)
		return
	}
	defer f.Close()

	if _, err := h.storage.UploadSource(ctx, documentID, filename, f); err != nil {
		log.Printf("Warning: failed to retain source document: %v", err)
	}
}
