package acquirer

import (
	"regexp"
	"strings"
)

var (
	vttHeaderRe   = regexp.MustCompile(`^WEBVTT\b.*$`)
	vttTimingRe   = regexp.MustCompile(`^(\d{2}:)?\d{2}:\d{2}\.\d{3}\s*-->\s*(\d{2}:)?\d{2}:\d{2}\.\d{3}`)
	vttTagRe      = regexp.MustCompile(`<[^>]+>`)
	vttCueIDRe    = regexp.MustCompile(`^\d+$`)
	vttMetadataRe = regexp.MustCompile(`^(Kind|Language|NOTE|STYLE|REGION)\b`)
)

// CleanVTT turns WebVTT captions into plain text. Headers, timing lines,
// cue identifiers and markup are dropped, and the rolling duplicates that
// auto-generated captions repeat across cues are collapsed.
func CleanVTT(raw string) string {
	if raw == "" {
		return ""
	}

	var cleaned []string

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")

		if vttHeaderRe.MatchString(line) || vttMetadataRe.MatchString(line) || vttTimingRe.MatchString(line) {
			continue
		}
		if vttCueIDRe.MatchString(strings.TrimSpace(line)) {
			continue
		}

		line = vttTagRe.ReplaceAllString(line, "")
		line = strings.Join(strings.Fields(unescapeVTT(line)), " ")
		if line == "" || recentlySeen(cleaned, line) {
			continue
		}
		cleaned = append(cleaned, line)
	}

	return strings.TrimSpace(strings.Join(cleaned, " "))
}

// rollingWindow is how many previous lines auto captions may repeat.
const rollingWindow = 2

func recentlySeen(lines []string, line string) bool {
	for i := len(lines) - 1; i >= 0 && i >= len(lines)-rollingWindow; i-- {
		if lines[i] == line {
			return true
		}
	}
	return false
}

var vttEntities = strings.NewReplacer("&amp;", "&", "&lt;", "<", "&gt;", ">", "&nbsp;", " ", "&#39;", "'", "&quot;", `"`)

func unescapeVTT(s string) string {
	return vttEntities.Replace(s)
}
