// SPDX-License-Identifier: Apache-2.0

package http

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/specmock/specmock/internal/logger"
	"github.com/specmock/specmock/internal/openapi"
	"github.com/specmock/specmock/internal/utils"
	"github.com/specmock/specmock/models"
)

// checkSecurity enforces the operation's effective security requirements.
//
// The requirements form a disjunction of alternatives: the request passes if
// ANY alternative is satisfied, and an alternative is satisfied only when
// ALL of its named schemes are. Presence of the expected credential artifact
// is what a scheme requires by default; strict verification of bearer tokens
// and basic credentials is delegated to the auth service, which no-ops
// unless the corresponding strict mode is configured.
//
// A request satisfying no alternative is rejected with 401, a JSON body
// naming the schemes missing from the first alternative, and a
// WWW-Authenticate challenge derived from that alternative.
func (h *Handler) checkSecurity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		op, ok := openapi.OperationFromContext(r.Context())
		if !ok || len(op.Security) == 0 {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromRequest(r)

		var firstMissing []string
		var verifyErr error

		for i, requirement := range op.Security {
			missing := h.missingSchemes(r, requirement)
			if len(missing) > 0 {
				if i == 0 {
					firstMissing = missing
				}
				continue
			}

			if err := h.verifyCredentials(r, requirement); err != nil {
				verifyErr = err
				continue
			}

			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("WWW-Authenticate", h.challenge(op.Security[0]))

		if verifyErr != nil {
			log.Warn().
				Err(verifyErr).
				Str("func", "*Handler.checkSecurity").
				Msg("credentials present but failed verification")
			utils.WriteJSON(w, models.ErrorResponse{Error: verifyErr.Error()}, http.StatusUnauthorized)
			return
		}

		log.Warn().
			Strs("missing_schemes", firstMissing).
			Str("func", "*Handler.checkSecurity").
			Msg("request satisfies no security alternative")
		utils.WriteJSON(w, models.ErrorResponse{
			Error:          "unauthorized",
			MissingSchemes: firstMissing,
		}, http.StatusUnauthorized)
	})
}

// missingSchemes reports which schemes of one alternative the request does
// not satisfy. Scheme names absent from the document's securitySchemes are
// unsatisfiable and always reported missing.
func (h *Handler) missingSchemes(r *http.Request, requirement openapi.Requirement) []string {
	var missing []string

	for _, name := range sortedSchemeNames(requirement) {
		scheme, known := h.document.Schemes[name]
		if !known || !schemePresent(r, scheme) {
			missing = append(missing, name)
		}
	}

	return missing
}

// schemePresent checks whether the request carries the artifact the scheme
// binds to, without judging its validity.
func schemePresent(r *http.Request, scheme openapi.Scheme) bool {
	switch scheme.Type {
	case openapi.SchemeTypeAPIKey:
		return apiKeyPresent(r, scheme)
	case openapi.SchemeTypeHTTP:
		if scheme.HTTPScheme == openapi.HTTPSchemeBasic {
			_, _, ok := r.BasicAuth()
			return ok
		}
		return bearerToken(r) != ""
	case openapi.SchemeTypeOAuth2, openapi.SchemeTypeOpenIDConnect:
		return bearerToken(r) != ""
	default:
		return false
	}
}

func apiKeyPresent(r *http.Request, scheme openapi.Scheme) bool {
	switch scheme.In {
	case openapi.InHeader:
		return r.Header.Get(scheme.ParamName) != ""
	case openapi.InQuery:
		return r.URL.Query().Get(scheme.ParamName) != ""
	case openapi.InCookie:
		cookie, err := r.Cookie(scheme.ParamName)
		return err == nil && cookie.Value != ""
	default:
		return false
	}
}

// verifyCredentials runs strict verification for the schemes of an
// alternative whose artifacts are already known to be present.
func (h *Handler) verifyCredentials(r *http.Request, requirement openapi.Requirement) error {
	ctx := r.Context()

	for _, name := range sortedSchemeNames(requirement) {
		scheme := h.document.Schemes[name]

		switch {
		case scheme.UsesBearer():
			if err := h.services.AuthService.VerifyBearer(ctx, bearerToken(r)); err != nil {
				return fmt.Errorf("scheme %q: %w", name, err)
			}
		case scheme.Type == openapi.SchemeTypeHTTP && scheme.HTTPScheme == openapi.HTTPSchemeBasic:
			login, password, _ := r.BasicAuth()
			if err := h.services.AuthService.VerifyBasic(ctx, login, password); err != nil {
				return fmt.Errorf("scheme %q: %w", name, err)
			}
		}
	}

	return nil
}

// challenge renders a WWW-Authenticate value for one alternative.
func (h *Handler) challenge(requirement openapi.Requirement) string {
	var parts []string

	for _, name := range sortedSchemeNames(requirement) {
		scheme, known := h.document.Schemes[name]
		if !known {
			continue
		}

		switch {
		case scheme.UsesBearer():
			parts = append(parts, "Bearer")
		case scheme.Type == openapi.SchemeTypeHTTP && scheme.HTTPScheme == openapi.HTTPSchemeBasic:
			parts = append(parts, `Basic realm="restricted"`)
		case scheme.Type == openapi.SchemeTypeAPIKey:
			parts = append(parts, fmt.Sprintf("ApiKey in=%s, name=%q", scheme.In, scheme.ParamName))
		}
	}

	if len(parts) == 0 {
		return "Bearer"
	}

	return strings.Join(parts, ", ")
}

// bearerToken extracts the token from an "Authorization: Bearer" header, or
// "" when the header is absent or uses another scheme.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) <= len(prefix) || !strings.EqualFold(auth[:len(prefix)], prefix) {
		return ""
	}

	return strings.TrimSpace(auth[len(prefix):])
}

// sortedSchemeNames gives a stable walk order over a requirement's map keys.
func sortedSchemeNames(requirement openapi.Requirement) []string {
	names := make([]string, 0, len(requirement))
	for name := range requirement {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
