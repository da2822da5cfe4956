package receipt

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/zombor/receipt-ocr/internal/scanning"
)

const (
	// Phone photos run large.
	maxUploadSize = 50 << 20
	maxTextSize   = 1 << 20
)

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	w.Header().Set("Access-Control-Max-Age", "3600")
}

// writeError writes a JSON error body with CORS headers set
func writeError(w http.ResponseWriter, message string, code int) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// errorStatus maps service errors onto HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, scanning.ErrImageDecode):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// contentTypeFor guesses a MIME type from the file extension.
func contentTypeFor(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".tif", ".tiff":
		return "image/tiff"
	case ".bmp":
		return "image/bmp"
	case ".pdf":
		return "application/pdf"
	case ".heic":
		return "image/heic"
	case ".heif":
		return "image/heif"
	default:
		return "application/octet-stream"
	}
}

type upload struct {
	filename    string
	contentType string
	data        []byte
}

// readUpload pulls the "file" part out of a multipart request. It writes the
// error response itself and returns false on failure.
func readUpload(w http.ResponseWriter, r *http.Request) (upload, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		slog.Error("Error parsing multipart form", "error", err)
		msg := "Error parsing form"
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			msg = "File is too large. Maximum size is 50MB."
		}
		writeError(w, msg, http.StatusBadRequest)
		return upload{}, false
	}

	f, header, err := r.FormFile("file")
	if err != nil {
		slog.Error("Error getting file from form", "error", err)
		msg := "No file provided"
		if errors.Is(err, http.ErrMissingFile) {
			msg = "No file was selected. Please choose a file to upload."
		}
		writeError(w, msg, http.StatusBadRequest)
		return upload{}, false
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		slog.Error("Error reading file data", "error", err, "filename", header.Filename)
		writeError(w, "Error reading file. Please try again.", http.StatusInternalServerError)
		return upload{}, false
	}

	contentType := strings.ToLower(strings.TrimSpace(header.Header.Get("Content-Type")))
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = contentTypeFor(header.Filename)
	}

	return upload{filename: header.Filename, contentType: contentType, data: data}, true
}

// readText reads a raw text request body.
func readText(w http.ResponseWriter, r *http.Request) (string, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxTextSize))
	if err != nil {
		writeError(w, "Error reading request body", http.StatusBadRequest)
		return "", false
	}
	return string(body), true
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// handleProcess cleans and parses text without saving anything
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	text, ok := readText(w, r)
	if !ok {
		return
	}
	a := AnalyzeText(text)
	writeJSON(w, http.StatusOK, map[string]any{
		"cleaned_text": a.CleanedText,
		"metrics":      a.Metrics,
		"data":         a.Data,
	})
}

// handleScanReceipt reads an uploaded receipt without saving the result
func (s *Server) handleScanReceipt(w http.ResponseWriter, r *http.Request) {
	up, ok := readUpload(w, r)
	if !ok {
		return
	}

	receipt, err := s.service.ScanReceipt(r.Context(), up.filename, up.data, up.contentType)
	if err != nil {
		slog.Error("Error scanning receipt", "filename", up.filename, "error", err)
		writeError(w, err.Error(), errorStatus(err))
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

// handleUploadReceipt reads an uploaded receipt and saves it
func (s *Server) handleUploadReceipt(w http.ResponseWriter, r *http.Request) {
	up, ok := readUpload(w, r)
	if !ok {
		return
	}

	receipt, err := s.service.ProcessReceipt(r.Context(), up.filename, up.data, up.contentType)
	if err != nil {
		slog.Error("Error processing receipt", "filename", up.filename, "error", err)
		writeError(w, err.Error(), errorStatus(err))
		return
	}
	writeJSON(w, http.StatusCreated, receipt)
}

// handleCreateFromText saves a receipt from already-recognized text
func (s *Server) handleCreateFromText(w http.ResponseWriter, r *http.Request) {
	text, ok := readText(w, r)
	if !ok {
		return
	}

	receipt, err := s.service.ProcessText(text)
	if err != nil {
		slog.Error("Error processing receipt text", "error", err)
		writeError(w, "Error saving receipt", errorStatus(err))
		return
	}
	writeJSON(w, http.StatusCreated, receipt)
}

func (s *Server) handleListReceipts(w http.ResponseWriter, r *http.Request) {
	receipts, err := s.service.ListReceipts()
	if err != nil {
		slog.Error("Error listing receipts", "error", err)
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if receipts == nil {
		receipts = []*Receipt{}
	}
	writeJSON(w, http.StatusOK, receipts)
}

func (s *Server) handleGetReceipt(w http.ResponseWriter, r *http.Request) {
	receipt, err := s.service.GetReceipt(r.PathValue("id"))
	if err != nil {
		if status := errorStatus(err); status != http.StatusNotFound {
			slog.Error("Error getting receipt", "error", err)
			writeError(w, "Internal server error", status)
			return
		}
		writeError(w, "Receipt not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

func (s *Server) handleGetReceiptFile(w http.ResponseWriter, r *http.Request) {
	data, contentType, err := s.service.GetReceiptFile(r.PathValue("id"))
	if err != nil {
		writeError(w, "File not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Write(data)
}

func (s *Server) handleReparseReceipt(w http.ResponseWriter, r *http.Request) {
	receipt, err := s.service.Reparse(r.PathValue("id"))
	if err != nil {
		slog.Error("Error reparsing receipt", "error", err)
		status := errorStatus(err)
		msg := "Error reparsing receipt"
		if status == http.StatusNotFound {
			msg = "Receipt not found"
		}
		writeError(w, msg, status)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

func (s *Server) handleDeleteReceipt(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeleteReceipt(r.PathValue("id")); err != nil {
		status := errorStatus(err)
		msg := "Error deleting receipt"
		if status == http.StatusNotFound {
			msg = "Receipt not found"
		}
		writeError(w, msg, status)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
