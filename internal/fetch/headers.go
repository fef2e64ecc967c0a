package fetch

import (
	"math/rand/v2"
	"net/http"
	"strings"

	"github.com/ranykadour/AIDomainComplianceChecker/internal/patterns"
)

// browserHeaders builds a realistic browser header set with a rotating
// user agent. Chrome client-hint headers are only sent alongside a Chrome
// user agent so the combination stays consistent.
func browserHeaders() http.Header {
	ua := patterns.UserAgents[rand.IntN(len(patterns.UserAgents))]

	headers := http.Header{}
	headers.Set("User-Agent", ua)
	headers.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8")
	headers.Set("Accept-Language", "en-US,en;q=0.9")
	headers.Set("Accept-Encoding", "gzip, deflate")
	headers.Set("DNT", "1")
	headers.Set("Connection", "keep-alive")
	headers.Set("Upgrade-Insecure-Requests", "1")
	headers.Set("Cache-Control", "max-age=0")

	if strings.Contains(ua, "Chrome") && !strings.Contains(ua, "Firefox") {
		headers.Set("Sec-Ch-Ua", `"Google Chrome";v="131", "Chromium";v="131", "Not_A Brand";v="24"`)
		headers.Set("Sec-Ch-Ua-Mobile", "?0")
		headers.Set("Sec-Ch-Ua-Platform", `"Windows"`)
		headers.Set("Sec-Fetch-Dest", "document")
		headers.Set("Sec-Fetch-Mode", "navigate")
		headers.Set("Sec-Fetch-Site", "none")
		headers.Set("Sec-Fetch-User", "?1")
	}

	return headers
}
