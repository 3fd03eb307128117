package cardapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/renato0307/cardwatch/internal/domain"
)

// Defaults matching the operator's mobile web app
const (
	DefaultAcceptLanguage = "zh-CN,zh;q=0.9"
	DefaultBaseURL        = "https://xjxjxj.iot889.com"
	DefaultCookieName     = "APPLICATION_SESSION_NAME"
	DefaultFetchPath      = "/app/client/card/get"
	DefaultRefererPath    = "/wap/pages/home/home"
	DefaultRefreshPath    = "/app/client/card/refresh"
	DefaultTimeout        = 15 * time.Second
	DefaultUserAgent      = "Mozilla/5.0 (iPhone; CPU iPhone OS 13_2_3 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/13.0.3 Mobile/15E148 Safari/604.1"
)

// Config holds everything the client sends to the operator.
// Header values are constants of the remote service, not derived at runtime.
type Config struct {
	AcceptLanguage string
	BaseURL        string
	CookieName     string
	Credential     string
	FetchMethod    string
	FetchPath      string
	Referer        string
	RefreshMethod  string
	RefreshPath    string
	Timeout        time.Duration
	UserAgent      string
}

// DefaultConfig returns a Config for the public operator endpoint with the given credential
func DefaultConfig(credential string) Config {
	return Config{
		AcceptLanguage: DefaultAcceptLanguage,
		BaseURL:        DefaultBaseURL,
		CookieName:     DefaultCookieName,
		Credential:     credential,
		FetchMethod:    http.MethodGet,
		FetchPath:      DefaultFetchPath,
		Referer:        DefaultBaseURL + DefaultRefererPath,
		RefreshMethod:  http.MethodPost,
		RefreshPath:    DefaultRefreshPath,
		Timeout:        DefaultTimeout,
		UserAgent:      DefaultUserAgent,
	}
}

// Validate checks the configuration before any network call is made
func (c Config) Validate() error {
	if strings.TrimSpace(c.Credential) == "" {
		return domain.ErrMissingCredential
	}
	if c.BaseURL == "" {
		return errors.New("base URL is not configured")
	}
	if !validMethod(c.FetchMethod) {
		return fmt.Errorf("unsupported fetch method %q (use GET or POST)", c.FetchMethod)
	}
	if !validMethod(c.RefreshMethod) {
		return fmt.Errorf("unsupported refresh method %q (use GET or POST)", c.RefreshMethod)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	return nil
}

// cookie returns the Cookie header value carrying the credential
func (c Config) cookie() string {
	return c.CookieName + "=" + c.Credential
}

func validMethod(method string) bool {
	return method == http.MethodGet || method == http.MethodPost
}
