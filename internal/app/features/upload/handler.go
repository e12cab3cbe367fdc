// Package upload implements document upload for application attachments.
// Files are persisted through the storage.Store interface so the backend
// can change without touching handlers; the returned fileUrl is what
// applicants attach to a submission.
package upload

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dalemusser/enrollhub/internal/app/system/httpjson"
	"github.com/dalemusser/enrollhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxFileBytes caps one uploaded document.
const MaxFileBytes = 5 << 20

// form parsing overhead on top of the file itself
const maxRequestBytes = MaxFileBytes + (1 << 20)

// allowedTypes maps accepted MIME types to the default stored extension.
var allowedTypes = map[string]string{
	"application/pdf": ".pdf",
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
}

// clientExts lists the client filename extensions accepted per detected
// type. Anything else is replaced with the default so a stored name never
// carries an extension the fileserver would serve as a different type.
var clientExts = map[string]map[string]bool{
	"application/pdf": {".pdf": true},
	"image/jpeg":      {".jpg": true, ".jpeg": true},
	"image/png":       {".png": true},
}

// Handler is the feature-level entry point for uploads.
type Handler struct {
	Storage storage.Store
	BaseURL string // public prefix for stored files, e.g. "/uploads"
	Log     *zap.Logger
}

// NewHandler constructs an upload handler writing to the given store.
func NewHandler(store storage.Store, baseURL string, logger *zap.Logger) *Handler {
	return &Handler{
		Storage: store,
		BaseURL: strings.TrimRight(baseURL, "/"),
		Log:     logger,
	}
}

type uploadResponse struct {
	Success      bool   `json:"success"`
	FileURL      string `json:"fileUrl"`
	FileName     string `json:"fileName"`
	OriginalName string `json:"originalName"`
	FileType     string `json:"fileType"`
}

// HandleUpload processes POST /upload: one multipart file field named
// "file". The size cap and MIME allow-list are enforced before anything is
// persisted.
// Authorization: RequireSignedIn middleware in routes.go.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := r.ParseMultipartForm(MaxFileBytes); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "file too large or malformed upload")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	if header.Size > MaxFileBytes {
		httpjson.Error(w, http.StatusBadRequest, "file exceeds the 5 MB limit")
		return
	}

	// Sniff the real content type instead of trusting the client header
	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		httpjson.Error(w, http.StatusBadRequest, "unreadable file")
		return
	}
	head = head[:n]

	fileType := detectType(head)
	ext, ok := allowedTypes[fileType]
	if !ok {
		httpjson.Error(w, http.StatusBadRequest, "only PDF, JPEG, and PNG files are accepted")
		return
	}

	if e := strings.ToLower(filepath.Ext(header.Filename)); clientExts[fileType][e] {
		ext = e
	}
	storedName := uuid.New().String() + ext

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	reader := io.MultiReader(bytes.NewReader(head), file)
	opts := &storage.PutOptions{ContentType: fileType}
	if err := h.Storage.Put(ctx, storedName, reader, opts); err != nil {
		h.Log.Error("store upload failed",
			zap.String("name", storedName), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to store file")
		return
	}

	h.Log.Info("file uploaded",
		zap.String("name", storedName),
		zap.String("type", fileType),
		zap.Int64("size", header.Size))

	httpjson.Write(w, http.StatusOK, uploadResponse{
		Success:      true,
		FileURL:      h.BaseURL + "/" + storedName,
		FileName:     storedName,
		OriginalName: header.Filename,
		FileType:     fileType,
	})
}

// detectType sniffs the content type from leading bytes. PDFs served as
// application/octet-stream by some browsers are recognized by magic bytes.
func detectType(head []byte) string {
	t := http.DetectContentType(head)
	if i := strings.Index(t, ";"); i >= 0 {
		t = t[:i]
	}
	if t == "application/octet-stream" && bytes.HasPrefix(head, []byte("%PDF")) {
		return "application/pdf"
	}
	return t
}
