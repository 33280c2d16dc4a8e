package domain

import "time"

// SourceKind tags which MediaSource variant is populated.
type SourceKind string

const (
	SourceUpload    SourceKind = "upload"
	SourceRecording SourceKind = "recording"
	SourceRemote    SourceKind = "remote"
)

// UploadedFile is a file already written to the uploads directory.
type UploadedFile struct {
	Path      string
	FileName  string
	MimeType  string
	SizeBytes int64
}

// RecordedClip is an in-browser recording sent as base64 (optionally a data URL).
type RecordedClip struct {
	Payload  string
	MimeType string
}

// RemoteVideo is a video page URL. LanguageHint selects caption tracks.
type RemoteVideo struct {
	URL          string
	LanguageHint string
}

// MediaSource is a tagged union; exactly one of the pointers is set.
type MediaSource struct {
	Upload    *UploadedFile
	Recording *RecordedClip
	Remote    *RemoteVideo
}

// Kind reports the populated variant, or an error unless exactly one is set.
func (s MediaSource) Kind() (SourceKind, error) {
	var kinds []SourceKind
	if s.Upload != nil {
		kinds = append(kinds, SourceUpload)
	}
	if s.Recording != nil {
		kinds = append(kinds, SourceRecording)
	}
	if s.Remote != nil {
		kinds = append(kinds, SourceRemote)
	}
	if len(kinds) != 1 {
		return "", NewInvalidInput("exactly one media source must be provided", nil)
	}
	return kinds[0], nil
}

// NormalizedAudio is a mono 16 kHz PCM WAV owned by one pipeline run.
type NormalizedAudio struct {
	FilePath        string
	SampleRate      int
	Channels        int
	DurationSeconds float64
}

// TranscriptChunk is one word-bounded slice of a transcript.
type TranscriptChunk struct {
	Index     int
	Text      string
	WordCount int
}

// PipelinePath names the route the orchestrator took.
type PipelinePath string

const (
	PathCaptions       PipelinePath = "captions"
	PathDirectAudio    PipelinePath = "direct-audio"
	PathTranscribe     PipelinePath = "transcribe"
	PathTranscriptOnly PipelinePath = "transcript-only"
)

// PipelineResult is the terminal artifact of a run.
type PipelineResult struct {
	ID         string
	Content    string
	Transcript *string
	PDFPath    *string
	DocxPath   *string
	Title      string
	FileName   string
	Style      Style
	Language   Language
	Path       PipelinePath
	CreatedAt  time.Time
}
