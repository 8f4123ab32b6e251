package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	mashub "github.com/mashub/sdk-go"
)

type cliResult struct {
	stdout string
	stderr string
	err    error
}

// runCLI runs the command line against env with pacing disabled.
func runCLI(t *testing.T, env map[string]string, args ...string) cliResult {
	t.Helper()
	var stdout, stderr bytes.Buffer
	a := &app{
		cfg: Config{
			Stdout: &stdout,
			Stderr: &stderr,
			Getenv: func(k string) string { return env[k] },
		},
		clientOpts: []mashub.Option{mashub.WithPacer(mashub.NewPacer(0))},
	}
	root := a.rootCmd()
	root.SetArgs(append([]string{"--env-file", ""}, args...))
	err := root.ExecuteContext(context.Background())
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func apiServer(t *testing.T, routes map[string]string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.Header.Get("Authorization") != "Bearer cli-key" {
			w.WriteHeader(http.StatusUnauthorized)
			io.WriteString(w, `{"message":"Invalid credentials"}`)
			return
		}
		body, ok := routes[r.URL.RequestURI()]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `{"message":"no route `+r.URL.RequestURI()+`"}`)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, body)
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

func testEnv(server *httptest.Server) map[string]string {
	return map[string]string{
		envAPIKey:  "cli-key",
		envBaseURL: server.URL,
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Stdout != os.Stdout || cfg.Stderr != os.Stderr {
		t.Error("DefaultConfig() should bind the process streams")
	}
	if cfg.Getenv == nil {
		t.Error("DefaultConfig().Getenv is nil")
	}
}

func TestPing(t *testing.T) {
	server, _ := apiServer(t, map[string]string{"/api/health": `{"status":"ok"}`})

	res := runCLI(t, testEnv(server), "ping", "-o", "json")
	if res.err != nil {
		t.Fatalf("ping error = %v", res.err)
	}
	var out map[string]any
	if err := json.Unmarshal([]byte(res.stdout), &out); err != nil {
		t.Fatalf("output is not JSON: %q", res.stdout)
	}
	if out["ok"] != true || out["baseUrl"] != server.URL {
		t.Errorf("output = %v", out)
	}
}

func TestPing_Unreachable(t *testing.T) {
	server, calls := apiServer(t, map[string]string{})

	res := runCLI(t, testEnv(server), "ping", "--retries", "1")
	if res.err == nil || !strings.Contains(res.err.Error(), "unreachable") {
		t.Errorf("ping error = %v", res.err)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("calls = %d, want 2", got)
	}
}

func TestMissingAPIKey(t *testing.T) {
	res := runCLI(t, map[string]string{}, "ping")
	if res.err == nil || res.err.Error() != "API key is required" {
		t.Errorf("error = %v", res.err)
	}
}

func TestInvalidOutput(t *testing.T) {
	res := runCLI(t, map[string]string{}, "config", "-o", "xml")
	if res.err == nil {
		t.Error("expected error for unknown output format")
	}
}

func TestConfigCommand_MasksKey(t *testing.T) {
	env := map[string]string{envAPIKey: "mh_live_abcdefgh1234"}

	res := runCLI(t, env, "config", "--environment", "staging", "--retries", "2", "--retry-policy", "transient")
	if res.err != nil {
		t.Fatalf("config error = %v", res.err)
	}
	if strings.Contains(res.stdout, "mh_live_abcdefgh1234") {
		t.Errorf("config output leaked the API key:\n%s", res.stdout)
	}
	for _, want := range []string{"mh_l****1234", "staging", "transient", "2"} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("config output missing %q:\n%s", want, res.stdout)
		}
	}
}

func TestConfigCommand_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mashub.yaml")
	os.WriteFile(path, []byte("api_key: file-key-12345\nenvironment: development\ntimeout: 3s\n"), 0o600)

	res := runCLI(t, map[string]string{}, "config", "--config", path, "-o", "json")
	if res.err != nil {
		t.Fatalf("config error = %v", res.err)
	}
	var cfg mashub.Config
	if err := json.Unmarshal([]byte(res.stdout), &cfg); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, res.stdout)
	}
	if cfg.Environment != mashub.EnvironmentDevelopment {
		t.Errorf("Environment = %q", cfg.Environment)
	}
	if cfg.APIKey != "file****2345" {
		t.Errorf("APIKey = %q", cfg.APIKey)
	}
}

func TestEnvFile(t *testing.T) {
	server, _ := apiServer(t, map[string]string{"/api/health": `{}`})
	path := filepath.Join(t.TempDir(), "test.env")
	os.WriteFile(path, []byte("MASHUB_API_KEY=cli-key\nMASHUB_BASE_URL="+server.URL+"\n"), 0o600)

	var stdout, stderr bytes.Buffer
	a := &app{
		cfg:        Config{Stdout: &stdout, Stderr: &stderr, Getenv: func(string) string { return "" }},
		clientOpts: []mashub.Option{mashub.WithPacer(mashub.NewPacer(0))},
	}
	root := a.rootCmd()
	root.SetArgs([]string{"--env-file", path, "ping"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("ping error = %v", err)
	}
}

func TestEnvFile_ExplicitMissing(t *testing.T) {
	var stdout, stderr bytes.Buffer
	a := &app{cfg: Config{Stdout: &stdout, Stderr: &stderr, Getenv: func(string) string { return "" }}}
	root := a.rootCmd()
	root.SetArgs([]string{"--env-file", filepath.Join(t.TempDir(), "absent.env"), "config"})
	if err := root.ExecuteContext(context.Background()); err == nil {
		t.Error("expected error for a missing explicit env file")
	}
}

func TestProjectsList_Table(t *testing.T) {
	server, _ := apiServer(t, map[string]string{
		"/api/smart-contracts/projects?page=2": `{"result":[{"slug":"vault","project_name":"Vault","version":"1.0.0"}],"pagination":{}}`,
	})

	res := runCLI(t, testEnv(server), "projects", "list", "--page", "2")
	if res.err != nil {
		t.Fatalf("projects list error = %v", res.err)
	}
	for _, want := range []string{"SLUG", "vault", "Vault", "1.0.0"} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("output missing %q:\n%s", want, res.stdout)
		}
	}
}

func TestProjectsGet_JSON(t *testing.T) {
	server, _ := apiServer(t, map[string]string{
		"/api/smart-contracts/projects/vault": `{"id":"p1","slug":"vault"}`,
	})

	res := runCLI(t, testEnv(server), "projects", "get", "vault", "-o", "json")
	if res.err != nil {
		t.Fatalf("projects get error = %v", res.err)
	}
	var p mashub.Project
	if err := json.Unmarshal([]byte(res.stdout), &p); err != nil || p.ID != "p1" {
		t.Errorf("output = %q, err = %v", res.stdout, err)
	}
}

func TestResourceCommands(t *testing.T) {
	server, _ := apiServer(t, map[string]string{
		"/api/smart-contracts/deployed?filter-version=1.0": `{"result":[{"contract_address":"0xabc","contract_name":"Vault"}]}`,
		"/api/tokenization?asset_type=DIGITAL":             `{"result":[{"id":"tok_1","asset_type":"DIGITAL","status":"confirmed","metadata":{"name":"Gold","quantity":5}}]}`,
		"/api/tokenization/tok_1":                          `{"id":"tok_1","tx_hash":"0xtx","metadata":{"name":"Gold"}}`,
		"/api/compliance/kyc/0xwallet":                     `{"wallet_address":"0xwallet","verified":true,"risk_level":"low_risk"}`,
		"/api/audit/export?action=login":                   `{"logs":[{"action":"login"}]}`,
		"/api/analytics/overview?timeframe=7d":             `{"users":{"value":42}}`,
	})

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"deployed", []string{"deployed", "list", "--version", "1.0"}, []string{"0xabc", "Vault"}},
		{"tokens list", []string{"tokens", "list", "--asset-type", "DIGITAL"}, []string{"tok_1", "Gold", "confirmed"}},
		{"tokens get", []string{"tokens", "get", "tok_1"}, []string{"0xtx", "Gold"}},
		{"kyc", []string{"kyc", "status", "0xwallet"}, []string{"0xwallet", "true", "low_risk"}},
		{"audit", []string{"audit", "export", "--action", "login"}, []string{`"action": "login"`}},
		{"analytics", []string{"analytics", "overview", "--timeframe", "7d"}, []string{"users", "42"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := runCLI(t, testEnv(server), tt.args...)
			if res.err != nil {
				t.Fatalf("error = %v", res.err)
			}
			for _, want := range tt.want {
				if !strings.Contains(res.stdout, want) {
					t.Errorf("output missing %q:\n%s", want, res.stdout)
				}
			}
		})
	}
}

func TestResourceCommand_APIError(t *testing.T) {
	server, _ := apiServer(t, map[string]string{})

	env := testEnv(server)
	env[envAPIKey] = "wrong"
	res := runCLI(t, env, "tokens", "get", "tok_1", "--retries", "0")
	if res.err == nil || res.err.Error() != "Invalid credentials" {
		t.Errorf("error = %v", res.err)
	}
}

func TestTokensWait(t *testing.T) {
	server, _ := apiServer(t, map[string]string{
		"/api/tokenization/tok_ok":  `{"id":"tok_ok","status":"confirmed","tx_hash":"0xdone"}`,
		"/api/tokenization/tok_bad": `{"id":"tok_bad","status":"failed"}`,
	})

	res := runCLI(t, testEnv(server), "tokens", "wait", "tok_ok", "--poll-interval", "1ms")
	if res.err != nil {
		t.Fatalf("error = %v", res.err)
	}
	if !strings.Contains(res.stdout, "0xdone") {
		t.Errorf("output missing tx hash:\n%s", res.stdout)
	}

	res = runCLI(t, testEnv(server), "tokens", "wait", "tok_bad", "--poll-interval", "1ms")
	if res.err == nil || res.err.Error() != "token tok_bad failed" {
		t.Errorf("error = %v, want token failure", res.err)
	}
}

func TestMonitor(t *testing.T) {
	server, calls := apiServer(t, map[string]string{"/api/health": `{}`})

	res := runCLI(t, testEnv(server), "monitor", "--count", "2", "--interval", "10ms")
	if res.err != nil {
		t.Fatalf("monitor error = %v", res.err)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("calls = %d, want 2", got)
	}
	if strings.Count(res.stderr, "probe succeeded") != 2 {
		t.Errorf("stderr = %s", res.stderr)
	}
}

func TestMonitor_InvalidInterval(t *testing.T) {
	res := runCLI(t, map[string]string{envAPIKey: "k"}, "monitor", "--interval", "0s")
	if res.err == nil {
		t.Error("expected error for zero interval")
	}
}
