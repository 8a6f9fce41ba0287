package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"prompt-evaluator/internal/examples"
	"prompt-evaluator/internal/schemas"
)

func main() {
	base := envOr("API_BASE_URL", "http://localhost:8000")

	baseFlag := flag.String("base", base, "API base URL (e.g., http://localhost:8000)")
	prompt := flag.String("prompt", "", "Prompt to evaluate")
	example := flag.String("example", "", "Evaluate the bad prompt of a built-in example scenario")
	list := flag.Bool("list", false, "List the built-in example scenarios and exit")
	timeout := flag.Duration("timeout", 90*time.Second, "Request timeout")
	flag.Parse()

	if *list {
		for _, s := range examples.All() {
			fmt.Printf("%-20s %-12s %s\n", s.ID, s.Category, s.Title)
		}
		return
	}

	text := *prompt
	if *example != "" {
		s, ok := examples.Lookup(*example)
		if !ok {
			fatalf("unknown example %q (use -list)", *example)
		}
		text = s.BadPrompt
	}
	if strings.TrimSpace(text) == "" {
		fatalf("one of -prompt or -example is required")
	}

	httpc := &http.Client{Timeout: *timeout}

	start := time.Now()
	var got schemas.PromptEvaluation
	if err := postJSON(httpc, *baseFlag+"/api/evaluate", schemas.EvaluationRequest{Prompt: text}, &got, *timeout); err != nil {
		fatalf("evaluate: %v", err)
	}
	fmt.Printf("✅ Evaluated in %s\n\n", time.Since(start).Round(time.Millisecond))

	fmt.Printf("Overall score: %d/100\n", got.OverallScore)
	fmt.Printf("  clarity %d  context %d  format %d  completeness %d\n\n",
		got.Scores.Clarity, got.Scores.Context, got.Scores.Format, got.Scores.Completeness)
	fmt.Println("What is missing:")
	for _, m := range got.WhatIsMissing {
		fmt.Printf("  - %s\n", m)
	}
	fmt.Printf("\nImproved prompt:\n%s\n\n", got.ImprovedPrompt)
	fmt.Println("Key changes:")
	for _, c := range got.KeyChanges {
		fmt.Printf("  - %s\n", c)
	}
}

// --- helpers ---

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func postJSON(c *http.Client, url string, body any, out any, timeout time.Duration) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	res, err := c.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		var e schemas.ErrorResponse
		raw, _ := io.ReadAll(res.Body)
		if json.Unmarshal(raw, &e) == nil && e.Error != "" {
			return fmt.Errorf("POST %s -> %d: %s", url, res.StatusCode, e.Error)
		}
		return fmt.Errorf("POST %s -> %d: %s", url, res.StatusCode, string(raw))
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func fatalf(format string, args ...any) {
	fmt.Printf("❌ "+format+"\n", args...)
	os.Exit(1)
}
