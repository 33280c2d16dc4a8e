package domain

import (
	"encoding/json"
	"slices"
	"strings"
)

// Style is one of the eight summary presentation formats.
type Style string

const (
	StyleConcise   Style = "concise"
	StyleDetailed  Style = "detailed"
	StyleNarrative Style = "narrative"
	StyleThematic  Style = "thematic"
	StyleQA        Style = "qa"
	StyleGlossary  Style = "glossary"
	StyleSteps     Style = "steps"
	StyleTLDR      Style = "tldr"
)

// Language is an output language code.
type Language string

const (
	LangHebrew  Language = "he"
	LangEnglish Language = "en"
	LangArabic  Language = "ar"
	LangFrench  Language = "fr"
	LangRussian Language = "ru"
)

// OutputType selects a summary or the raw transcript.
type OutputType string

const (
	OutputSummary    OutputType = "summary"
	OutputTranscript OutputType = "transcript"
)

var (
	Styles      = []Style{StyleConcise, StyleDetailed, StyleNarrative, StyleThematic, StyleQA, StyleGlossary, StyleSteps, StyleTLDR}
	Languages   = []Language{LangHebrew, LangEnglish, LangArabic, LangFrench, LangRussian}
	OutputTypes = []OutputType{OutputSummary, OutputTranscript}
)

// SummaryOptions is immutable per request. Build it with ParseSummaryOptions
// or NewSummaryOptions so every field belongs to its enumerated set.
type SummaryOptions struct {
	Style      Style
	Language   Language
	OutputType OutputType
}

// DefaultSummaryOptions returns {detailed, he, summary}.
func DefaultSummaryOptions() SummaryOptions {
	return SummaryOptions{Style: StyleDetailed, Language: LangHebrew, OutputType: OutputSummary}
}

// IsRTL reports whether the output language is written right-to-left.
func (o SummaryOptions) IsRTL() bool {
	return o.Language == LangHebrew || o.Language == LangArabic
}

// NewSummaryOptions maps raw values onto the enumerated sets. A field that is
// empty or outside its set takes the default.
func NewSummaryOptions(style, language, outputType string) SummaryOptions {
	opts := DefaultSummaryOptions()
	if v := Style(normalize(style)); slices.Contains(Styles, v) {
		opts.Style = v
	}
	if v := Language(normalize(language)); slices.Contains(Languages, v) {
		opts.Language = v
	}
	if v := OutputType(normalize(outputType)); slices.Contains(OutputTypes, v) {
		opts.OutputType = v
	}
	return opts
}

type rawOptions struct {
	Style      string `json:"style"`
	Language   string `json:"language"`
	OutputType string `json:"outputType"`
}

// ParseSummaryOptions decodes the stringified JSON options field.
func ParseSummaryOptions(raw string) (SummaryOptions, error) {
	if strings.TrimSpace(raw) == "" {
		return DefaultSummaryOptions(), nil
	}

	var r rawOptions
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		return SummaryOptions{}, NewInvalidInput("options must be a JSON object", err)
	}
	return NewSummaryOptions(r.Style, r.Language, r.OutputType), nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
