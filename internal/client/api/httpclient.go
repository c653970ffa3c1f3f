package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/learnpath/lmscli/internal/client/models"
	"github.com/learnpath/lmscli/internal/logging"
)

// TokenSource yields the current access token from durable storage.
// An empty token means the request goes out unauthenticated.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// HTTPClient is the concrete Client over net/http.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     logging.Logger
}

// NewHTTPClient returns a client rooted at baseURL. tokens may be nil for a
// client that never authenticates (e.g. the public certificate resolver).
func NewHTTPClient(baseURL string, timeout time.Duration, tokens TokenSource, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log,
	}
}

// do performs one JSON request. A non-nil body is marshalled as JSON; a
// non-nil out receives the decoded 2xx response body. bearer overrides the
// token-source credential when non-empty (used by Refresh).
func (c *HTTPClient) do(ctx context.Context, method, path, bearer string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, bearer, out)
}

// send finishes header injection and executes the request.
func (c *HTTPClient) send(req *http.Request, bearer string, out any) error {
	ctx := req.Context()

	if bearer == "" && c.tokens != nil {
		token, err := c.tokens.AccessToken(ctx)
		if err != nil {
			return fmt.Errorf("read access token: %w", err)
		}
		bearer = token
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := normalizeError(resp.StatusCode, raw)
		c.log.Debug(ctx, "request failed",
			"method", req.Method, "path", req.URL.Path,
			"status", resp.StatusCode, "code", apiErr.Code)
		return apiErr
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	User         models.User `json:"user"`
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", "", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	resp.User.Role = models.ParseRole(string(resp.User.Role))
	return &LoginResult{
		Tokens: models.TokenPair{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken},
		User:   resp.User,
	}, nil
}

// Register uploads the profile as multipart/form-data. No tokens are issued
// here; the account stays unauthenticated until email verification.
func (c *HTTPClient) Register(ctx context.Context, r RegisterRequest) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"name":     r.Name,
		"email":    r.Email,
		"password": r.Password,
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return fmt.Errorf("write field %s: %w", name, err)
		}
	}

	if r.ImagePath != "" {
		f, err := os.Open(r.ImagePath)
		if err != nil {
			return fmt.Errorf("open profile image: %w", err)
		}
		defer f.Close()

		part, err := w.CreateFormFile("profile_image", filepath.Base(r.ImagePath))
		if err != nil {
			return fmt.Errorf("create image part: %w", err)
		}
		if _, err := io.Copy(part, f); err != nil {
			return fmt.Errorf("copy profile image: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("finish multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/register", &buf)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.send(req, "", nil)
}

func (c *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", "", nil, &user); err != nil {
		return nil, err
	}
	user.Role = models.ParseRole(string(user.Role))
	return &user, nil
}

// Refresh exchanges the refresh token for a new pair. The refresh token
// rides in the Authorization header, not the body.
func (c *HTTPClient) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	var pair models.TokenPair
	if err := c.do(ctx, http.MethodPost, "/auth/refresh", refreshToken, nil, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

func (c *HTTPClient) ForgotPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.do(ctx, http.MethodPost, "/auth/forgot-password", "", body, nil)
}

func (c *HTTPClient) ResetPassword(ctx context.Context, token, newPassword string) error {
	body := map[string]string{"token": token, "password": newPassword}
	return c.do(ctx, http.MethodPost, "/auth/reset-password", "", body, nil)
}

func (c *HTTPClient) Courses(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	if err := c.do(ctx, http.MethodGet, "/course", "", nil, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (c *HTTPClient) PublicModules(ctx context.Context) ([]models.Module, error) {
	var mods []models.Module
	if err := c.do(ctx, http.MethodGet, "/course/modules/public", "", nil, &mods); err != nil {
		return nil, err
	}
	return mods, nil
}

func (c *HTTPClient) Reviews(ctx context.Context) ([]models.Review, error) {
	var reviews []models.Review
	if err := c.do(ctx, http.MethodGet, "/reviews", "", nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (c *HTTPClient) PostReview(ctx context.Context, in models.ReviewInput) error {
	return c.do(ctx, http.MethodPost, "/reviews", "", in, nil)
}

func (c *HTTPClient) InitiateEnrollment(ctx context.Context) (*models.Enrollment, error) {
	var enr models.Enrollment
	if err := c.do(ctx, http.MethodPost, "/enrollment/initiate", "", nil, &enr); err != nil {
		return nil, err
	}
	return &enr, nil
}

func (c *HTTPClient) LookupCertificate(ctx context.Context, shortCode string) (*models.CertificateLookup, error) {
	var lookup models.CertificateLookup
	path := "/api/certificates/lookup/" + url.PathEscape(shortCode)
	if err := c.do(ctx, http.MethodGet, path, "", nil, &lookup); err != nil {
		return nil, err
	}
	return &lookup, nil
}
