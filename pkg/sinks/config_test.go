package sinks

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, raw string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write sinks file: %v", err)
	}
	return path
}

func TestLoadRegistryEnabledFilter(t *testing.T) {
	path := writeFile(t, "sinks.yaml", `
sinks:
  - id: terminal
    type: console
  - id: hook
    type: http
    enabled: false
    http:
      url: https://example.com/hook
  - id: queue
    type: sqs
    sqs:
      uri: https://sqs.ap-south-1.amazonaws.com/000000000000/jokes
      region: ap-south-1
      endpoint: http://localhost:4566
      access_key_id: test
      secret_access_key: test
`)

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	if len(reg.All()) != 3 {
		t.Fatalf("expected 3 sinks, got %d", len(reg.All()))
	}
	enabled := reg.Enabled()
	if len(enabled) != 2 {
		t.Fatalf("expected 2 enabled sinks, got %d", len(enabled))
	}

	term, ok := reg.ByID("terminal")
	if !ok || term.Console == nil || term.Console.Stream != consoleStdout {
		t.Fatalf("console sink not defaulted to stdout: %#v", term)
	}
	hook, _ := reg.ByID("hook")
	if hook.HTTP.Method != httpDefaultMethod || hook.HTTP.TimeoutSeconds != httpDefaultTimeoutSeconds {
		t.Fatalf("http defaults not applied: %#v", hook.HTTP)
	}
	queue, _ := reg.ByID("queue")
	if queue.SQS.Endpoint != "http://localhost:4566" || queue.SQS.AccessKeyID != "test" {
		t.Fatalf("inline aws credentials not decoded: %#v", queue.SQS)
	}
}

func TestLoadRegistryJSON(t *testing.T) {
	path := writeFile(t, "sinks.json", `{"sinks":[{"id":"topic","type":"sns","sns":{"topic_arn":"arn:aws:sns:us-east-1:000000000000:jokes","region":"us-east-1"}}]}`)
	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	cfg, ok := reg.ByID("topic")
	if !ok || cfg.SNS == nil || cfg.SNS.Region != "us-east-1" {
		t.Fatalf("unexpected sns config %#v", cfg)
	}
}

func TestLoadRegistryValidation(t *testing.T) {
	cases := map[string]string{
		"duplicate": `
sinks:
  - id: a
    type: console
  - id: a
    type: console
`,
		"missing sqs region": `
sinks:
  - id: q
    type: sqs
    sqs:
      uri: https://example.com/q
`,
		"bad stream": `
sinks:
  - id: t
    type: console
    console:
      stream: printer
`,
		"pubsub without topic": `
sinks:
  - id: p
    type: pubsub
    pubsub:
      project_id: demo
`,
		"empty": `sinks: []`,
	}
	for name, raw := range cases {
		if _, err := LoadRegistry(writeFile(t, "sinks.yaml", raw)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}
