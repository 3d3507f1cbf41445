// Package deepl is a minimal client for the DeepL v2 translate API.
package deepl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/omar-p/duet-call/internal/translate"
)

// Client talks to one DeepL endpoint (free or pro) with one auth key.
type Client struct {
	baseURL string
	authKey string
	http    *http.Client
}

func NewClient(baseURL, authKey string) *Client {
	return &Client{baseURL: baseURL, authKey: authKey, http: http.DefaultClient}
}

// Name identifies this provider in API responses.
func (c *Client) Name() string {
	return "deepl"
}

type translateRequest struct {
	Text       []string `json:"text"`
	TargetLang string   `json:"target_lang"`
	SourceLang string   `json:"source_lang,omitempty"`
}

type translateResponse struct {
	Translations []struct {
		DetectedSourceLanguage string `json:"detected_source_language"`
		Text                   string `json:"text"`
	} `json:"translations"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// Translate sends one text to DeepL. An empty sourceLang lets DeepL
// auto-detect.
func (c *Client) Translate(ctx context.Context, text, targetLang, sourceLang string) (translate.ProviderResult, error) {
	body, err := json.Marshal(translateRequest{
		Text:       []string{text},
		TargetLang: targetLang,
		SourceLang: sourceLang,
	})
	if err != nil {
		return translate.ProviderResult{}, fmt.Errorf("encode deepl request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/translate", bytes.NewReader(body))
	if err != nil {
		return translate.ProviderResult{}, fmt.Errorf("build deepl request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "DeepL-Auth-Key "+c.authKey)

	res, err := c.http.Do(req)
	if err != nil {
		return translate.ProviderResult{}, fmt.Errorf("call deepl: %w", err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return translate.ProviderResult{}, fmt.Errorf("read deepl response: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		var apiErr errorResponse
		message := "unexpected upstream status"
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Message != "" {
			message = apiErr.Message
		}
		return translate.ProviderResult{}, &translate.ProviderError{
			Provider: c.Name(),
			Status:   res.StatusCode,
			Message:  message,
		}
	}

	var parsed translateResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return translate.ProviderResult{}, fmt.Errorf("decode deepl response: %w", err)
	}
	if len(parsed.Translations) == 0 {
		return translate.ProviderResult{}, fmt.Errorf("deepl: empty translations in response")
	}

	t := parsed.Translations[0]
	return translate.ProviderResult{Text: t.Text, DetectedSource: t.DetectedSourceLanguage}, nil
}
