package httpapi

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/lecture-flow/internal/domain"
)

// summarizeJSON is the body for recording and remote-video requests.
// Options may be a JSON object or a stringified one.
type summarizeJSON struct {
	AudioData string          `json:"audioData"`
	MimeType  string          `json:"mimeType"`
	URL       string          `json:"url"`
	Options   json.RawMessage `json:"options"`
}

type summaryDTO struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	PDFPath   *string   `json:"pdf_path"`
	DocxPath  *string   `json:"docx_path"`
	FileName  string    `json:"file_name"`
	Style     string    `json:"style"`
	Language  string    `json:"language"`
	Path      string    `json:"path"`
}

type summarizeResponse struct {
	Success       bool        `json:"success"`
	Summary       *summaryDTO `json:"summary"`
	Transcription *string     `json:"transcription,omitempty"`
}

type listResponse struct {
	Success   bool          `json:"success"`
	Summaries []*summaryDTO `json:"summaries"`
}

func toDTO(r domain.PipelineResult) *summaryDTO {
	return &summaryDTO{
		ID:        r.ID,
		Content:   r.Content,
		Title:     r.Title,
		CreatedAt: r.CreatedAt,
		PDFPath:   downloadURL(r.PDFPath),
		DocxPath:  downloadURL(r.DocxPath),
		FileName:  r.FileName,
		Style:     string(r.Style),
		Language:  string(r.Language),
		Path:      string(r.Path),
	}
}

// downloadURL turns a stored document path into its download route.
func downloadURL(path *string) *string {
	if path == nil || *path == "" {
		return nil
	}
	u := "/api/download/" + filepath.Base(*path)
	return &u
}

// parseOptions accepts a JSON object, a JSON string holding an object, or nothing.
func parseOptions(raw json.RawMessage) (domain.SummaryOptions, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return domain.DefaultSummaryOptions(), nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return domain.SummaryOptions{}, domain.NewInvalidInput("options must be a JSON object", err)
		}
		return domain.ParseSummaryOptions(s)
	}
	return domain.ParseSummaryOptions(trimmed)
}
