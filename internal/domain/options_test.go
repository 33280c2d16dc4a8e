package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSummaryOptions(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    SummaryOptions
		wantErr bool
	}{
		{"empty uses defaults", "", DefaultSummaryOptions(), false},
		{"missing fields use defaults", `{"style":"tldr"}`, SummaryOptions{StyleTLDR, LangHebrew, OutputSummary}, false},
		{"all fields", `{"style":"qa","language":"en","outputType":"transcript"}`, SummaryOptions{StyleQA, LangEnglish, OutputTranscript}, false},
		{"case and spaces", `{"style":" Glossary ","language":"FR"}`, SummaryOptions{StyleGlossary, LangFrench, OutputSummary}, false},
		{"unknown style defaults", `{"style":"poem","language":"en"}`, SummaryOptions{StyleDetailed, LangEnglish, OutputSummary}, false},
		{"unknown language defaults", `{"language":"de"}`, DefaultSummaryOptions(), false},
		{"unknown output type defaults", `{"style":"qa","outputType":"video"}`, SummaryOptions{StyleQA, LangHebrew, OutputSummary}, false},
		{"not json", `style=tldr`, SummaryOptions{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSummaryOptions(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsRTL(t *testing.T) {
	for _, lang := range Languages {
		opts := SummaryOptions{Style: StyleConcise, Language: lang, OutputType: OutputSummary}
		want := lang == LangHebrew || lang == LangArabic
		assert.Equal(t, want, opts.IsRTL(), lang)
	}
}

func TestMediaSourceKind(t *testing.T) {
	_, err := MediaSource{}.Kind()
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = MediaSource{Upload: &UploadedFile{}, Remote: &RemoteVideo{}}.Kind()
	assert.True(t, errors.Is(err, ErrInvalidInput))

	kind, err := MediaSource{Remote: &RemoteVideo{URL: "https://youtu.be/abcdefghijk"}}.Kind()
	require.NoError(t, err)
	assert.Equal(t, SourceRemote, kind)
}
