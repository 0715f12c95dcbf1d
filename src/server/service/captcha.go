// Package service holds outbound integrations used by the handlers.
package service

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const recaptchaVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

// CaptchaVerifier checks reCAPTCHA responses from form submissions.
// With no secret key configured, verification is disabled and every
// submission passes.
type CaptchaVerifier struct {
	client    *http.Client
	verifyURL string
}

// NewCaptchaVerifier builds a verifier with a bounded request timeout
// so a slow verification endpoint cannot hang form handling.
func NewCaptchaVerifier() *CaptchaVerifier {
	return &CaptchaVerifier{
		client:    &http.Client{Timeout: 10 * time.Second},
		verifyURL: recaptchaVerifyURL,
	}
}

// NewCaptchaVerifierWithURL is used by tests to point at a stub server.
func NewCaptchaVerifierWithURL(verifyURL string) *CaptchaVerifier {
	v := NewCaptchaVerifier()
	v.verifyURL = verifyURL
	return v
}

// Verify checks a captcha response token against the verification API.
func (v *CaptchaVerifier) Verify(secret, response, remoteIP string) (bool, error) {
	if secret == "" {
		return true, nil
	}
	if response == "" {
		return false, nil
	}

	form := url.Values{
		"secret":   {secret},
		"response": {response},
	}
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	resp, err := v.client.Post(v.verifyURL, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		return false, fmt.Errorf("captcha verification request failed: %w", err)
	}
	defer resp.Body.Close()

	var result struct {
		Success bool `json:"success"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, fmt.Errorf("failed to decode captcha response: %w", err)
	}
	return result.Success, nil
}
