// Package patterns holds the static fingerprint catalog used by the signal
// extractors and resolvers. Everything here is initialized once and read-only
// afterwards, so concurrent scans can share it without synchronization.
package patterns

import "regexp"

// Category identifies a legal-page category. The set is fixed; adding a
// category means adding a constant here plus entries in LegalLinkRules and
// LegalPagePaths, which keeps additions compile-time checked.
type Category string

const (
	// CategoryPrivacy identifies privacy policy pages
	CategoryPrivacy Category = "privacy"
	// CategoryTerms identifies terms of service pages
	CategoryTerms Category = "terms"
	// CategoryCookies identifies cookie policy pages
	CategoryCookies Category = "cookies"
	// CategoryGDPR identifies GDPR / data protection pages
	CategoryGDPR Category = "gdpr"
	// CategoryDisclaimer identifies disclaimer / impressum pages
	CategoryDisclaimer Category = "disclaimer"
	// CategoryRefund identifies refund / return policy pages
	CategoryRefund Category = "refund"
	// CategoryDMCA identifies DMCA / copyright policy pages
	CategoryDMCA Category = "dmca"
)

// Categories is the fixed, ordered list of legal-page categories a scan
// tracks. Resolvers iterate this list; every scan initializes one entry per
// category.
var Categories = []Category{
	CategoryPrivacy,
	CategoryTerms,
	CategoryCookies,
	CategoryGDPR,
	CategoryDisclaimer,
	CategoryRefund,
	CategoryDMCA,
}

// Fingerprint maps a display name to the raw-HTML substrings that identify it.
// Matching is case-insensitive (callers scan lower-cased HTML); the first
// matching substring claims the name.
type Fingerprint struct {
	Name       string
	Substrings []string
}

// CategoryRule pairs a legal-page category with the regex matched against
// hyperlink targets and anchor text. Ordered; the discoverer keeps the first
// matching link per category.
type CategoryRule struct {
	Category Category
	Pattern  *regexp.Regexp
}

// UserAgents is the fixed pool the fetcher rotates through. The Chrome
// entries trigger Sec-Ch-* client hint headers.
var UserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:133.0) Gecko/20100101 Firefox/133.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/18.1 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
}

// CookieBannerMarkers are substrings whose presence in raw HTML indicates a
// cookie banner or consent widget.
var CookieBannerMarkers = []string{
	"cookie-banner", "cookie-consent", "cookie-notice", "cookie-popup",
	"gdpr-banner", "consent-banner", "privacy-banner", "cookieconsent",
	"cc-banner", "onetrust", "cookiebot", "trustarc", "quantcast",
}

// ConsentPhrases are the multilingual accept/agree phrases that indicate an
// active consent mechanism.
var ConsentPhrases = []string{
	"accept all", "accept cookies", "i agree",
	"אשר הכל", "אני מסכים",
}

// ConsentPlatforms is the ordered vendor list for consent-management platform
// detection; the first matching vendor wins.
var ConsentPlatforms = []Fingerprint{
	{Name: "OneTrust", Substrings: []string{"onetrust"}},
	{Name: "Cookiebot", Substrings: []string{"cookiebot"}},
	{Name: "TrustArc", Substrings: []string{"trustarc"}},
	{Name: "Quantcast Choice", Substrings: []string{"quantcast"}},
	{Name: "Cookie Consent", Substrings: []string{"cookieconsent"}},
}

// CookieTypes maps cookie-type category names to the keywords that reveal
// them in page markup or consent copy.
var CookieTypes = []Fingerprint{
	{Name: "Essential/Necessary", Substrings: []string{"essential cookie", "necessary cookie", "strictly necessary"}},
	{Name: "Analytics", Substrings: []string{"analytics cookie", "google analytics", "_ga", "analytics"}},
	{Name: "Marketing/Advertising", Substrings: []string{"marketing cookie", "advertising cookie", "ad cookie", "targeting"}},
	{Name: "Functional", Substrings: []string{"functional cookie", "preference cookie", "functionality"}},
	{Name: "Performance", Substrings: []string{"performance cookie"}},
}

// Analytics fingerprints third-party analytics tools by their script URLs and
// global identifiers.
var Analytics = []Fingerprint{
	{Name: "Google Analytics", Substrings: []string{"google-analytics", "googletagmanager", "gtag", "ga.js", "analytics.js", "_ga"}},
	{Name: "Google Tag Manager", Substrings: []string{"googletagmanager", "gtm.js"}},
	{Name: "Facebook Pixel", Substrings: []string{"fbq(", "facebook.com/tr", "connect.facebook.net"}},
	{Name: "Hotjar", Substrings: []string{"hotjar", "hjid"}},
	{Name: "Mixpanel", Substrings: []string{"mixpanel"}},
	{Name: "Segment", Substrings: []string{"segment.com", "segment.io"}},
	{Name: "Amplitude", Substrings: []string{"amplitude"}},
	{Name: "Heap", Substrings: []string{"heap.io", "heapanalytics"}},
	{Name: "Matomo/Piwik", Substrings: []string{"matomo", "piwik"}},
	{Name: "Plausible", Substrings: []string{"plausible.io"}},
}

// Advertising fingerprints ad networks.
var Advertising = []Fingerprint{
	{Name: "Google Ads", Substrings: []string{"googlesyndication", "googleadservices", "doubleclick"}},
	{Name: "Facebook Ads", Substrings: []string{"facebook.com/tr"}},
	{Name: "LinkedIn Ads", Substrings: []string{"linkedin.com/px", "snap.licdn.com"}},
	{Name: "Twitter Ads", Substrings: []string{"static.ads-twitter.com"}},
	{Name: "Criteo", Substrings: []string{"criteo.com", "criteo.net"}},
	{Name: "AdRoll", Substrings: []string{"adroll.com"}},
	{Name: "Taboola", Substrings: []string{"taboola.com"}},
	{Name: "Outbrain", Substrings: []string{"outbrain.com"}},
}

// Social fingerprints embedded social media widgets.
var Social = []Fingerprint{
	{Name: "Facebook", Substrings: []string{"facebook.com/plugins", "fb-root", "facebook-jssdk"}},
	{Name: "Twitter", Substrings: []string{"platform.twitter.com", "twitter-wjs"}},
	{Name: "LinkedIn", Substrings: []string{"platform.linkedin.com"}},
	{Name: "Pinterest", Substrings: []string{"assets.pinterest.com"}},
	{Name: "Instagram", Substrings: []string{"instagram.com/embed"}},
}

// DataCollection lists behavioral data-collection indicators. Each entry
// contributes at most one fixed label; keywords cover both English and Hebrew
// forms.
var DataCollection = []Fingerprint{
	{Name: "Newsletter/Email subscription", Substrings: []string{"newsletter", "subscribe", "ניוזלטר", "הרשמה לעדכונים"}},
	{Name: "Contact forms", Substrings: []string{"contact form", "contact us", "צור קשר"}},
	{Name: "User registration", Substrings: []string{"create account", "sign up", "register", "צור חשבון", "הרשמה"}},
	{Name: "Payment processing", Substrings: []string{"checkout", "payment", "תשלום"}},
	{Name: "Live chat/Support widgets", Substrings: []string{"chat", "intercom", "zendesk", "crisp", "צ'אט"}},
}

// AllRightsReservedPhrases are the localized phrasings that count as an
// "all rights reserved" notice alongside the English form. The variants cover
// the spellings seen on Hebrew-localized footers.
var AllRightsReservedPhrases = []string{
	"כל הזכויות שמורות",
	"כל הזכויות שמורות ל",
	"כל הזכויות שמורת",
}

// LegalLinkRules is the ordered rule table the legal-link discoverer runs
// against every hyperlink's href and visible text.
var LegalLinkRules = []CategoryRule{
	{Category: CategoryPrivacy, Pattern: regexp.MustCompile(`(?i)privacy|datenschutz|פרטיות`)},
	{Category: CategoryTerms, Pattern: regexp.MustCompile(`(?i)terms|\btos\b|conditions|\bagb\b|תנאי`)},
	{Category: CategoryCookies, Pattern: regexp.MustCompile(`(?i)cookie|עוגיות`)},
	{Category: CategoryGDPR, Pattern: regexp.MustCompile(`(?i)gdpr|dsgvo|data-protection`)},
	{Category: CategoryDisclaimer, Pattern: regexp.MustCompile(`(?i)disclaimer|impressum|הסרת אחריות`)},
	{Category: CategoryRefund, Pattern: regexp.MustCompile(`(?i)refund|return-policy|returns|החזר`)},
	{Category: CategoryDMCA, Pattern: regexp.MustCompile(`(?i)dmca|copyright|זכויות יוצרים`)},
}

// LegalPagePaths holds the conventional fallback paths tried per category when
// no hyperlink was discovered, in fixed priority order.
var LegalPagePaths = map[Category][]string{
	CategoryPrivacy:    {"/privacy", "/privacy-policy", "/privacypolicy", "/privacy.html", "/legal/privacy", "/about/privacy"},
	CategoryTerms:      {"/terms", "/terms-of-service", "/tos", "/terms-and-conditions", "/termsofservice", "/legal/terms", "/terms.html"},
	CategoryCookies:    {"/cookies", "/cookie-policy", "/cookiepolicy", "/cookies.html", "/legal/cookies"},
	CategoryGDPR:       {"/gdpr", "/gdpr-compliance", "/data-protection"},
	CategoryDisclaimer: {"/disclaimer", "/legal-disclaimer", "/legal/disclaimer"},
	CategoryRefund:     {"/refund", "/refund-policy", "/returns", "/return-policy"},
	CategoryDMCA:       {"/dmca", "/copyright", "/dmca-policy"},
}

// ContentSelectors is the fixed priority order for homepage content-region
// selection. The first selector whose text beats the minimum threshold wins.
var ContentSelectors = []string{
	"main",
	"article",
	`[role="main"]`,
	".content",
	"#content",
	".main-content",
}
