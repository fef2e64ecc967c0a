// Package api provides the HTTP surface of the compliance scanning service.
package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/ranykadour/AIDomainComplianceChecker/internal/domain"
	"github.com/ranykadour/AIDomainComplianceChecker/internal/types"
)

// Handler manages API endpoints
type Handler struct {
	scanner DomainScanner
}

// HealthResponse is the health check payload
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
}

// SiteOptions mirrors types.SiteContext with optional fields, so callers can
// override only the characteristics they know
type SiteOptions struct {
	HasPayments          *bool `json:"hasPayments,omitempty"`
	CollectsPersonalData *bool `json:"collectsPersonalData,omitempty"`
	UsesTracking         *bool `json:"usesTracking,omitempty"`
	HasUserAccounts      *bool `json:"hasUserAccounts,omitempty"`
	TargetsEU            *bool `json:"targetsEU,omitempty"`
	TargetsUSA           *bool `json:"targetsUSA,omitempty"`
	HasChildrenContent   *bool `json:"hasChildrenContent,omitempty"`
}

// merge layers the provided overrides onto the default site context
func (o *SiteOptions) merge() types.SiteContext {
	site := types.DefaultSiteContext()

	if o == nil {
		return site
	}

	site.HasPayments = lo.FromPtrOr(o.HasPayments, site.HasPayments)
	site.CollectsPersonalData = lo.FromPtrOr(o.CollectsPersonalData, site.CollectsPersonalData)
	site.UsesTracking = lo.FromPtrOr(o.UsesTracking, site.UsesTracking)
	site.HasUserAccounts = lo.FromPtrOr(o.HasUserAccounts, site.HasUserAccounts)
	site.TargetsEU = lo.FromPtrOr(o.TargetsEU, site.TargetsEU)
	site.TargetsUSA = lo.FromPtrOr(o.TargetsUSA, site.TargetsUSA)
	site.HasChildrenContent = lo.FromPtrOr(o.HasChildrenContent, site.HasChildrenContent)

	return site
}

// ScanRequest is a compliance scan request. Either a domain or an email
// address (whose domain is extracted) must be provided.
type ScanRequest struct {
	Domain      string       `json:"domain,omitempty"`
	Email       string       `json:"email,omitempty"`
	SiteOptions *SiteOptions `json:"siteOptions,omitempty"`
}

// target resolves the domain to scan, extracting it from the email address
// when no domain is given
func (r ScanRequest) target() (string, error) {
	if r.Domain != "" {
		return r.Domain, nil
	}

	if r.Email != "" {
		return domain.FromEmail(r.Email)
	}

	return "", ErrDomainRequired
}

// handleHealth returns service health status
func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Service:   "domaincheck",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// handleScan runs the full compliance pipeline for the requested domain
func (h *Handler) handleScan(w http.ResponseWriter, r *http.Request) {
	var req ScanRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", ErrInvalidRequestBody.Error())

		return
	}

	target, err := req.target()
	if err != nil {
		if errors.Is(err, ErrDomainRequired) {
			writeError(w, http.StatusBadRequest, "Domain is required", "Please provide a domain to scan")

			return
		}

		writeError(w, http.StatusBadRequest, "Invalid email", "Please provide a valid email address")

		return
	}

	report, err := h.scanner.Scan(r.Context(), target, req.SiteOptions.merge())
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDomainFormat) {
			writeError(w, http.StatusBadRequest, "Invalid domain", "Please provide a valid domain name")

			return
		}

		log.Error().Err(err).Str("domain", target).Msg("scan failed")

		writeError(w, http.StatusInternalServerError, "Scan failed", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, report)
}
