package authn

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const siteverifyURL = "https://www.google.com/recaptcha/api/siteverify"

var ErrRecaptchaFailed = errors.New("recaptcha verification failed")

// RecaptchaVerifier checks a client captcha token.
type RecaptchaVerifier interface {
	Verify(ctx context.Context, token string) error
}

// GoogleRecaptcha verifies tokens against the siteverify endpoint.
type GoogleRecaptcha struct {
	Secret string
	Client *http.Client
}

func NewGoogleRecaptcha(secret string) *GoogleRecaptcha {
	return &GoogleRecaptcha{
		Secret: secret,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (g *GoogleRecaptcha) Verify(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return ErrRecaptchaFailed
	}

	form := url.Values{}
	form.Set("secret", g.Secret)
	form.Set("response", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, siteverifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var body struct {
		Success bool `json:"success"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return err
	}
	if !body.Success {
		return ErrRecaptchaFailed
	}
	return nil
}
