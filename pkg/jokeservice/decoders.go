package jokeservice

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Adda-Baaj/hasi/internal/domain"

	"github.com/PuerkitoBio/goquery"
)

const (
	FormatJSON = "json"
	FormatText = "text"
	FormatHTML = "html"
)

// DecoderOptions carries format-specific settings.
type DecoderOptions struct {
	SetupSelector     string
	PunchlineSelector string
}

// NewDecoder returns the decoder for the given response format.
func NewDecoder(format string, opts DecoderOptions) (Decoder, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatJSON:
		return DecoderFunc(decodeJSON), nil
	case FormatText, "plain":
		return DecoderFunc(decodeText), nil
	case FormatHTML:
		setup := strings.TrimSpace(opts.SetupSelector)
		if setup == "" {
			return nil, errors.New("html response format requires a setup selector")
		}
		return htmlDecoder{setup: setup, punchline: strings.TrimSpace(opts.PunchlineSelector)}, nil
	default:
		return nil, fmt.Errorf("unsupported response format %q", format)
	}
}

type jokePayload struct {
	Setup     string `json:"setup"`
	Punchline string `json:"punchline"`
	Joke      string `json:"joke"`
}

// decodeJSON accepts a single joke object or a list, taking the first entry.
func decodeJSON(body string) (domain.Joke, error) {
	raw := strings.TrimSpace(body)

	var payload jokePayload
	if strings.HasPrefix(raw, "[") {
		var list []jokePayload
		if err := json.Unmarshal([]byte(raw), &list); err != nil {
			return domain.Joke{}, fmt.Errorf("decode json joke list: %w", err)
		}
		if len(list) == 0 {
			return domain.Joke{}, errors.New("joke list is empty")
		}
		payload = list[0]
	} else if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return domain.Joke{}, fmt.Errorf("decode json joke: %w", err)
	}

	text := firstNonEmpty(payload.Setup, payload.Joke)
	if text == "" {
		return domain.Joke{}, errors.New("json joke has no setup")
	}
	return domain.Joke{Text: text, Punchline: strings.TrimSpace(payload.Punchline)}, nil
}

func decodeText(body string) (domain.Joke, error) {
	text := strings.TrimSpace(body)
	if text == "" {
		return domain.Joke{}, errors.New("text joke is empty")
	}
	return domain.Joke{Text: text}, nil
}

type htmlDecoder struct {
	setup     string
	punchline string
}

func (h htmlDecoder) Decode(body string) (domain.Joke, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return domain.Joke{}, fmt.Errorf("parse html: %w", err)
	}

	extract := func(sel string) string {
		if sel == "" {
			return ""
		}
		return strings.TrimSpace(doc.Find(sel).First().Text())
	}

	text := extract(h.setup)
	if text == "" {
		return domain.Joke{}, fmt.Errorf("no text matched selector %q", h.setup)
	}
	return domain.Joke{Text: text, Punchline: extract(h.punchline)}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
