package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/Piqzaa/HTML-to-Twig/internal/convert"
	"github.com/Piqzaa/HTML-to-Twig/internal/pipeline"
	"github.com/Piqzaa/HTML-to-Twig/internal/report"
	"github.com/Piqzaa/HTML-to-Twig/internal/source"
)

// convertRequest is the JSON body of POST /api/convert.
type convertRequest struct {
	HTML     string `json:"html"`
	Filename string `json:"filename"`
	Target   string `json:"target"`
	Layout   string `json:"layout"`
	Theme    string `json:"theme"`
}

type convertResponse struct {
	Output     string         `json:"output"`
	OutputName string         `json:"output_name"`
	Cached     bool           `json:"cached"`
	Report     *report.Report `json:"report"`
	ReportText string         `json:"report_text"`
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form/JSON overhead

	var (
		body convertRequest
		data []byte
	)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
			return
		}
		defer r.MultipartForm.RemoveAll()

		file, header, err := r.FormFile("file")
		if err != nil {
			jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()

		data, err = s.readUpload(file)
		if err != nil {
			writeUploadError(w, err, s.cfg.MaxUploadBytes)
			return
		}
		body = convertRequest{
			Filename: header.Filename,
			Target:   r.FormValue("target"),
			Layout:   r.FormValue("layout"),
			Theme:    r.FormValue("theme"),
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			jsonError(w, "invalid JSON body: "+err.Error(), http.StatusBadRequest)
			return
		}
		if int64(len(body.HTML)) > s.cfg.MaxUploadBytes {
			jsonError(w, fmt.Sprintf("html exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
			return
		}
		data = []byte(body.HTML)
		if body.Filename == "" {
			body.Filename = "page.html"
		}
	}

	filename := sanitizeFilename(body.Filename)
	if !source.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	target, err := convert.ParseTarget(body.Target)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	req := convert.Request{
		Target: target,
		Layout: body.Layout,
		Theme:  body.Theme,
		Input:  filename,
		Output: convert.BatchOutputName(filename, target),
	}
	res, cached, err := s.orchestrator.Convert(filename, data, req)
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, source.ErrUnsupported) {
			status = http.StatusBadRequest
		}
		jsonError(w, err.Error(), status)
		return
	}

	writeJSON(w, http.StatusOK, convertResponse{
		Output:     res.Output,
		OutputName: req.Output,
		Cached:     cached,
		Report:     res.Report,
		ReportText: res.Report.Text(),
	})
}

func (s *Server) handleBatchConvert(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes*10+10*1024*1024)

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	target, err := convert.ParseTarget(r.FormValue("target"))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		jsonError(w, "at least one file is required", http.StatusBadRequest)
		return
	}

	batchID := uuid.NewString()
	results := make([]map[string]any, 0, len(files))
	for _, fh := range files {
		filename := sanitizeFilename(fh.Filename)
		if !source.IsSupportedExtension(filename) {
			results = append(results, map[string]any{
				"filename": filename,
				"error":    fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)),
			})
			continue
		}

		data, err := s.readFileHeader(fh)
		if err != nil {
			results = append(results, map[string]any{
				"filename": filename,
				"error":    "file too large or read error",
			})
			continue
		}

		job := pipeline.NewJob(batchID, filename, data, convert.Request{
			Target: target,
			Layout: r.FormValue("layout"),
			Theme:  r.FormValue("theme"),
		})
		if err := s.orchestrator.Submit(job); err != nil {
			results = append(results, map[string]any{
				"filename": filename,
				"job_id":   job.ID,
				"error":    err.Error(),
			})
			continue
		}

		results = append(results, map[string]any{
			"filename": filename,
			"job_id":   job.ID,
			"status":   pipeline.StatusQueued,
			"poll_url": fmt.Sprintf("/api/jobs/%s", job.ID),
		})
	}

	writeJSON(w, http.StatusAccepted, map[string]any{
		"batch_id": batchID,
		"jobs":     results,
	})
}

var errTooLarge = errors.New("upload too large")

func (s *Server) readUpload(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.cfg.MaxUploadBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		return nil, errTooLarge
	}
	return data, nil
}

func (s *Server) readFileHeader(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return s.readUpload(f)
}

func writeUploadError(w http.ResponseWriter, err error, limit int64) {
	if errors.Is(err, errTooLarge) {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", limit), http.StatusRequestEntityTooLarge)
		return
	}
	jsonError(w, "failed to read file", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	// Remove any path separators that might have survived.
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
