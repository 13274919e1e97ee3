package jokeservice

import "testing"

func TestJSONDecoder(t *testing.T) {
	dec, err := NewDecoder(FormatJSON, DecoderOptions{})
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}

	joke, err := dec.Decode(`{"type":"general","setup":" Why did... ","punchline":"Because.","id":7}`)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if joke.Text != "Why did..." || joke.Punchline != "Because." {
		t.Fatalf("unexpected joke %#v", joke)
	}

	joke, err = dec.Decode(`[{"setup":"first","punchline":"one"},{"setup":"second"}]`)
	if err != nil || joke.Text != "first" {
		t.Fatalf("list decode: %#v %v", joke, err)
	}

	joke, err = dec.Decode(`{"id":"x","joke":"single liner"}`)
	if err != nil || joke.Text != "single liner" || joke.Punchline != "" {
		t.Fatalf("single-field decode: %#v %v", joke, err)
	}

	for _, bad := range []string{`not json`, `[]`, `{"punchline":"orphan"}`} {
		if _, err := dec.Decode(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestTextDecoderKeepsBodyAsText(t *testing.T) {
	dec, err := NewDecoder(FormatText, DecoderOptions{})
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}
	joke, err := dec.Decode("Why did...\n")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got := joke.Render(); got != "Why did...\n" {
		t.Fatalf("unexpected render %q", got)
	}
	if _, err := dec.Decode("   "); err == nil {
		t.Fatalf("expected error for blank body")
	}
}

func TestHTMLDecoderUsesSelectors(t *testing.T) {
	page := `
<html>
  <body>
    <p class="setup"> Why do programmers prefer dark mode? </p>
    <p class="punchline">Because light attracts bugs.</p>
  </body>
</html>`

	dec, err := NewDecoder(FormatHTML, DecoderOptions{SetupSelector: "p.setup", PunchlineSelector: "p.punchline"})
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}
	joke, err := dec.Decode(page)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if joke.Text != "Why do programmers prefer dark mode?" || joke.Punchline != "Because light attracts bugs." {
		t.Fatalf("unexpected joke %#v", joke)
	}

	missing, _ := NewDecoder(FormatHTML, DecoderOptions{SetupSelector: "div.nothing"})
	if _, err := missing.Decode(page); err == nil {
		t.Fatalf("expected error when selector matches nothing")
	}
}

func TestNewDecoderRejectsUnknownFormats(t *testing.T) {
	if _, err := NewDecoder("xml", DecoderOptions{}); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
	if _, err := NewDecoder(FormatHTML, DecoderOptions{}); err == nil {
		t.Fatalf("expected error for html without setup selector")
	}
}
