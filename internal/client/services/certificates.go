package services

import (
	"context"
	"regexp"

	"github.com/learnpath/lmscli/internal/client/api"
	"github.com/learnpath/lmscli/internal/client/retry"
)

// shortCodePattern matches the codes printed on issued certificates.
var shortCodePattern = regexp.MustCompile(`^[A-Za-z0-9-]{4,32}$`)

// CertificateService resolves certificate short codes, the CLI counterpart
// of the /v/{code} redirect resolver.
type CertificateService struct {
	api api.Client
}

func NewCertificateService(apiClient api.Client) *CertificateService {
	return &CertificateService{api: apiClient}
}

// ResolveShortCode maps a printed short code to the verification path for
// its certification id. Failures map to sentinel paths instead of errors:
// the resolver always produces somewhere to navigate.
//
//	malformed code        -> RouteVerifyInvalid
//	any non-OK response   -> RouteVerifyNotFound
//	transport failure     -> RouteVerifyFailed
func (s *CertificateService) ResolveShortCode(ctx context.Context, shortCode string) string {
	if !shortCodePattern.MatchString(shortCode) {
		return RouteVerifyInvalid
	}

	var certificationID string
	err := retry.Do(ctx, retry.Reads, func(ctx context.Context) error {
		lookup, callErr := s.api.LookupCertificate(ctx, shortCode)
		if callErr != nil {
			return callErr
		}
		certificationID = lookup.CertificationID
		return nil
	})
	if err != nil {
		if api.StatusOf(err) != 0 {
			return RouteVerifyNotFound
		}
		return RouteVerifyFailed
	}
	if certificationID == "" {
		return RouteVerifyNotFound
	}
	return RouteVerifyPrefix + certificationID
}
