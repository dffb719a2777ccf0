package main

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// The API never evicts stale conversations on its own; this binary is the
// scheduler that calls the eviction endpoint. Running it separately keeps
// the API stateless about time and lets operators trigger a sweep by hand
// with plain curl.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	baseURL := os.Getenv("SWEEPER_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}
	token := os.Getenv("SWEEPER_ADMIN_TOKEN")
	if token == "" {
		log.Fatal("Error: SWEEPER_ADMIN_TOKEN is not set")
	}
	schedule := os.Getenv("SWEEPER_SCHEDULE")
	if schedule == "" {
		schedule = "0 * * * *" // hourly
	}

	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		if err := sweep(baseURL, token); err != nil {
			log.Printf("[ERROR] Sweep failed: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Error: invalid schedule %q: %v", schedule, err)
	}

	log.Printf("Sweeper started, schedule %q against %s", schedule, baseURL)
	c.Start()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	ctx := c.Stop()
	<-ctx.Done()
	log.Println("Sweeper stopped")
}

func sweep(baseURL, token string) error {
	req, err := http.NewRequest(http.MethodPost, baseURL+"/api/analysis/v1/evict", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d: %s", resp.StatusCode, body)
	}

	log.Printf("[INFO] Sweep complete: %s", body)
	return nil
}
