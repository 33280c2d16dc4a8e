package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nguyentantai21042004/lecture-flow/internal/domain"
	"github.com/nguyentantai21042004/lecture-flow/internal/pipeline"
	"github.com/nguyentantai21042004/lecture-flow/internal/store/sqlite"
	"github.com/nguyentantai21042004/lecture-flow/pkg/fileutil"
)

// multipartOverhead is room for form fields next to the file itself.
const multipartOverhead = 1 << 20

// jsonOverhead is room for the url, mimeType and options next to audioData.
const jsonOverhead = 1 << 20

// handleSummarize POST /api/summarize
// Accepts a multipart upload, a base64 recording, or a video URL.
func (s *Server) handleSummarize(c *gin.Context) {
	var (
		req pipeline.Request
		err error
	)

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		var cleanupUpload func()
		req, cleanupUpload, err = s.uploadRequest(c)
		if cleanupUpload != nil {
			defer cleanupUpload()
		}
	} else {
		req, err = s.jsonRequest(c)
	}
	if err != nil {
		s.writeError(c, err)
		return
	}
	req.UserID = userID(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.cfg.PipelineTimeout)
	defer cancel()

	result, err := s.pipeline.Run(ctx, req)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, summarizeResponse{
		Success:       true,
		Summary:       toDTO(result),
		Transcription: result.Transcript,
	})
}

// uploadRequest saves the multipart file into the uploads directory. The
// returned func removes it in case the pipeline never took ownership.
func (s *Server) uploadRequest(c *gin.Context) (pipeline.Request, func(), error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.MaxUploadBytes+multipartOverhead)

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return pipeline.Request{}, nil, domain.NewInvalidInput(
				fmt.Sprintf("file is too large (limit %d bytes)", s.cfg.MaxUploadBytes), err).WithReason(domain.ReasonTooLarge)
		}
		return pipeline.Request{}, nil, domain.NewInvalidInput("a media file is required in the \"file\" field", err)
	}

	opts, err := domain.ParseSummaryOptions(c.PostForm("options"))
	if err != nil {
		return pipeline.Request{}, nil, err
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	path := filepath.Join(s.cfg.UploadsDir, fileutil.UniqueName("upload", ext))
	if err := c.SaveUploadedFile(fh, path); err != nil {
		return pipeline.Request{}, nil, fmt.Errorf("save upload: %w", err)
	}
	cleanup := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			s.logger.Warn(c.Request.Context(), "Failed to remove upload %s: %v", path, err)
		}
	}

	mimeType := fh.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		if guessed := fileutil.MediaType(fh.Filename); guessed != "" {
			mimeType = guessed
		}
	}

	return pipeline.Request{
		Source: domain.MediaSource{Upload: &domain.UploadedFile{
			Path:      path,
			FileName:  fh.Filename,
			MimeType:  mimeType,
			SizeBytes: fh.Size,
		}},
		Options: opts,
	}, cleanup, nil
}

func (s *Server) jsonRequest(c *gin.Context) (pipeline.Request, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.MaxRecordingBytes+jsonOverhead)

	var body summarizeJSON
	if err := c.ShouldBindJSON(&body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return pipeline.Request{}, domain.NewInvalidInput(
				fmt.Sprintf("recording too long (limit %d bytes)", s.cfg.MaxRecordingBytes), err).WithReason(domain.ReasonTooLarge)
		}
		return pipeline.Request{}, domain.NewInvalidInput("request body must be JSON with audioData or url", err)
	}

	opts, err := parseOptions(body.Options)
	if err != nil {
		return pipeline.Request{}, err
	}

	var src domain.MediaSource
	if body.AudioData != "" {
		src.Recording = &domain.RecordedClip{Payload: body.AudioData, MimeType: body.MimeType}
	}
	if body.URL != "" {
		src.Remote = &domain.RemoteVideo{URL: body.URL}
	}
	if _, err := src.Kind(); err != nil {
		return pipeline.Request{}, domain.NewInvalidInput("provide exactly one of file, audioData or url", nil)
	}

	return pipeline.Request{Source: src, Options: opts}, nil
}

// handleDownload GET /api/download/:name
func (s *Server) handleDownload(c *gin.Context) {
	name := c.Param("name")
	if !fileutil.SafeBase(name) {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid file name", Code: string(domain.KindInvalidInput)})
		return
	}
	ext := strings.ToLower(filepath.Ext(name))
	if ext != ".pdf" && ext != ".docx" {
		c.JSON(http.StatusNotFound, errorResponse{Error: "not found", Code: codeNotFound})
		return
	}

	path := filepath.Join(s.cfg.OutputDir, name)
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		c.JSON(http.StatusNotFound, errorResponse{Error: "not found", Code: codeNotFound})
		return
	}
	c.FileAttachment(path, name)
}

// handleListSummaries GET /api/summaries
func (s *Server) handleListSummaries(c *gin.Context) {
	out := listResponse{Success: true, Summaries: []*summaryDTO{}}
	if s.store == nil {
		c.JSON(http.StatusOK, out)
		return
	}

	results, err := s.store.ListByUser(c.Request.Context(), userID(c), 50)
	if err != nil {
		s.writeError(c, domain.NewPersistence("could not load summaries", err))
		return
	}
	for _, r := range results {
		out.Summaries = append(out.Summaries, toDTO(r))
	}
	c.JSON(http.StatusOK, out)
}

// handleGetSummary GET /api/summaries/:id
func (s *Server) handleGetSummary(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusNotFound, errorResponse{Error: "not found", Code: codeNotFound})
		return
	}

	result, err := s.store.Get(c.Request.Context(), userID(c), c.Param("id"))
	if errors.Is(err, sqlite.ErrNotFound) {
		c.JSON(http.StatusNotFound, errorResponse{Error: "not found", Code: codeNotFound})
		return
	}
	if err != nil {
		s.writeError(c, domain.NewPersistence("could not load summary", err))
		return
	}
	c.JSON(http.StatusOK, summarizeResponse{
		Success:       true,
		Summary:       toDTO(result),
		Transcription: result.Transcript,
	})
}

// handleHealth GET /healthz
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "lecture-flow",
		"uptime":    time.Since(s.started).String(),
		"timestamp": time.Now().UTC(),
	})
}
