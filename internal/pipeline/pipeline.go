package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/nguyentantai21042004/lecture-flow/internal/acquirer"
	"github.com/nguyentantai21042004/lecture-flow/internal/chunker"
	"github.com/nguyentantai21042004/lecture-flow/internal/cleanup"
	"github.com/nguyentantai21042004/lecture-flow/internal/domain"
	"github.com/nguyentantai21042004/lecture-flow/internal/metrics"
)

const defaultTitle = "Lecture summary"

// Run orchestrates the entire pipeline for one request. Every transient
// file registered along the way is removed before Run returns.
func (p *implPipeline) Run(ctx context.Context, req Request) (result domain.PipelineResult, err error) {
	opts := domain.NewSummaryOptions(string(req.Options.Style), string(req.Options.Language), string(req.Options.OutputType))

	if err := p.sem.acquire(ctx); err != nil {
		return domain.PipelineResult{}, err
	}
	defer p.sem.release()

	startTime := time.Now()
	r := newRun()
	path := domain.PathTranscribe
	reg := cleanup.NewRegistry(p.logger)

	defer func() {
		report := reg.Release(context.WithoutCancel(ctx))
		metrics.RecordCleanupErrors(len(report.Errors))
	}()
	defer func() {
		if err != nil {
			failed := r.state
			if _, terr := r.to(StateError); terr != nil {
				p.logger.Warn(ctx, "%v", terr)
			}
			kind := "internal"
			if k, ok := domain.KindOf(err); ok {
				kind = string(k)
			}
			metrics.RecordStageError(string(failed), kind)
			p.logger.Error(ctx, "Pipeline failed in %s after %s: %v (%s)", failed, time.Since(startTime), err, r.trail())
		}
		metrics.RecordRun(string(path), err == nil)
	}()

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting pipeline: style=%s language=%s output=%s", opts.Style, opts.Language, opts.OutputType)
	p.logger.Info(ctx, "========================================")

	// Step 1: Acquire media or captions
	p.enter(ctx, r, StateAcquiring)
	acq, err := p.deps.Acquirer.Acquire(ctx, withLanguage(req.Source, opts.Language), reg)
	if err != nil {
		return domain.PipelineResult{}, err
	}

	var (
		content    string
		transcript string
	)

	switch {
	case acq.HasTranscript():
		path = domain.PathCaptions
		transcript = acq.Transcript
		p.logger.Info(ctx, "Captions found via %s, skipping download and transcription", acq.Strategy)

	default:
		// Step 2: Normalize to 16kHz mono WAV
		p.enter(ctx, r, StateNormalizing)
		segments, err := p.deps.Normalizer.Normalize(ctx, acq.AudioPath, reg)
		if err != nil {
			return domain.PipelineResult{}, err
		}

		if p.directAudioEligible(segments, opts) {
			path = domain.PathDirectAudio
			content, err = p.summarizeAudio(ctx, r, segments[0], opts)
			if err != nil {
				return domain.PipelineResult{}, err
			}
			break
		}

		// Step 3: Transcribe
		p.enter(ctx, r, StateTranscribing)
		tr, err := p.deps.Transcriber.Transcribe(ctx, segments, string(opts.Language))
		if err != nil {
			return domain.PipelineResult{}, err
		}
		if tr.Degraded {
			if p.opts.RejectDegraded {
				return domain.PipelineResult{}, domain.NewProvider("no transcription provider could process the audio", nil)
			}
			p.logger.Warn(ctx, "Every transcription provider failed, continuing with placeholder transcript")
		}
		transcript = tr.Text
		p.logger.Info(ctx, "Transcription completed by %s (%d attempts)", tr.Provider, len(tr.Attempts))
	}

	if path != domain.PathDirectAudio {
		if opts.OutputType == domain.OutputTranscript {
			path = domain.PathTranscriptOnly
			content = transcript
		} else {
			// Step 4: Chunk and summarize
			p.enter(ctx, r, StateChunking)
			chunks := chunker.Split(transcript, p.opts.ChunkWords)
			if len(chunks) == 0 {
				return domain.PipelineResult{}, domain.NewProvider("the transcript is empty", nil)
			}
			p.logger.Info(ctx, "Transcript split into %d chunks", len(chunks))

			p.enter(ctx, r, StateSummarizing)
			content, err = p.deps.Summarizer.Summarize(ctx, chunks, opts)
			if err != nil {
				return domain.PipelineResult{}, err
			}
		}
	}

	result = domain.PipelineResult{
		ID:        uuid.NewString(),
		Content:   content,
		Title:     titleOr(acq),
		FileName:  acq.FileName,
		Style:     opts.Style,
		Language:  opts.Language,
		Path:      path,
		CreatedAt: time.Now().UTC(),
	}
	if transcript != "" {
		result.Transcript = &transcript
	}

	// Step 5: Render documents; failures keep the text result
	p.enter(ctx, r, StateRendering)
	p.render(ctx, &result, opts)

	p.enter(ctx, r, StateDone)

	// Step 6: Persist; failures are logged only
	p.persist(ctx, req.UserID, result)

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Pipeline completed via %s in %s", path, time.Since(startTime))
	p.logger.Info(ctx, "States: %s", r.trail())
	p.logger.Info(ctx, "========================================")

	return result, nil
}

func (p *implPipeline) enter(ctx context.Context, r *run, next State) {
	prev := r.state
	spent, err := r.to(next)
	if err != nil {
		p.logger.Warn(ctx, "%v", err)
		return
	}
	if prev != StateIdle {
		metrics.RecordStageDuration(string(prev), spent.Seconds())
	}
	p.logger.Debug(ctx, "Stage %s -> %s", prev, next)
}

func (p *implPipeline) directAudioEligible(segments []domain.NormalizedAudio, opts domain.SummaryOptions) bool {
	if !p.opts.DirectAudio || opts.OutputType != domain.OutputSummary || len(segments) != 1 {
		return false
	}
	info, err := os.Stat(segments[0].FilePath)
	return err == nil && info.Size() <= p.opts.MaxInlineBytes
}

func (p *implPipeline) summarizeAudio(ctx context.Context, r *run, seg domain.NormalizedAudio, opts domain.SummaryOptions) (string, error) {
	audio, err := os.ReadFile(seg.FilePath)
	if err != nil {
		return "", fmt.Errorf("read normalized audio: %w", err)
	}
	p.enter(ctx, r, StateSummarizing)
	p.logger.Info(ctx, "Summarizing %d bytes of audio directly", len(audio))
	return p.deps.Summarizer.SummarizeAudio(ctx, audio, "audio/wav", opts)
}

func (p *implPipeline) render(ctx context.Context, result *domain.PipelineResult, opts domain.SummaryOptions) {
	if p.deps.Renderer == nil {
		return
	}
	if p.opts.RenderPDF {
		pdf, err := p.deps.Renderer.RenderPDF(ctx, result.Title, result.Content, opts)
		if err != nil {
			metrics.RecordStageError(string(StateRendering), string(domain.KindRender))
			p.logger.Warn(ctx, "PDF rendering failed, returning text only: %v", err)
		} else {
			result.PDFPath = &pdf
		}
	}
	if p.opts.RenderDocx {
		doc, err := p.deps.Renderer.RenderDocx(ctx, result.Title, result.Content, opts)
		if err != nil {
			metrics.RecordStageError(string(StateRendering), string(domain.KindRender))
			p.logger.Warn(ctx, "DOCX rendering failed, returning text only: %v", err)
		} else {
			result.DocxPath = &doc
		}
	}
}

func (p *implPipeline) persist(ctx context.Context, userID string, result domain.PipelineResult) {
	if p.deps.Store == nil {
		return
	}
	if userID == "" {
		userID = "anonymous"
	}
	if err := p.deps.Store.Save(context.WithoutCancel(ctx), userID, result); err != nil {
		perr := domain.NewPersistence("could not save the summary", err)
		metrics.RecordStageError("persisting", string(perr.Kind))
		p.logger.Warn(ctx, "%v", perr)
	}
}

// withLanguage passes the output language as the caption hint.
func withLanguage(src domain.MediaSource, lang domain.Language) domain.MediaSource {
	if src.Remote != nil && src.Remote.LanguageHint == "" {
		remote := *src.Remote
		remote.LanguageHint = string(lang)
		src.Remote = &remote
	}
	return src
}

func titleOr(acq acquirer.Acquired) string {
	if acq.Title != "" {
		return acq.Title
	}
	return defaultTitle
}
