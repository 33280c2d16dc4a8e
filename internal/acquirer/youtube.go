package acquirer

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/nguyentantai21042004/lecture-flow/internal/domain"
)

var videoIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

var youtubeHosts = map[string]bool{
	"youtube.com":              true,
	"www.youtube.com":          true,
	"m.youtube.com":            true,
	"music.youtube.com":        true,
	"youtu.be":                 true,
	"www.youtu.be":             true,
	"youtube-nocookie.com":     true,
	"www.youtube-nocookie.com": true,
}

// pathPrefixes carry the ID as the next path element.
var pathPrefixes = []string{"embed", "shorts", "live", "v"}

// ParseTarget validates a remote URL and extracts the video ID for
// YouTube-like hosts.
func ParseTarget(raw string) (Target, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return Target{}, domain.NewInvalidURL("the link is not a valid URL", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Target{}, domain.NewInvalidURL("only http and https links are supported", nil)
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return Target{}, domain.NewInvalidURL("the link has no host", nil)
	}

	t := Target{URL: u.String()}
	if !youtubeHosts[host] {
		return t, nil
	}

	id := youtubeID(host, u)
	if !videoIDRe.MatchString(id) {
		return Target{}, domain.NewInvalidURL("could not find a video ID in the YouTube link", nil)
	}
	t.YouTube = true
	t.VideoID = id
	return t, nil
}

func youtubeID(host string, u *url.URL) string {
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if strings.HasSuffix(host, "youtu.be") {
		return parts[0]
	}
	if len(parts) == 1 && parts[0] == "watch" {
		return u.Query().Get("v")
	}
	if len(parts) >= 2 {
		for _, p := range pathPrefixes {
			if parts[0] == p {
				return parts[1]
			}
		}
	}
	return ""
}
