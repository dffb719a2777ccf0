package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Manual smoke check for the analysis flow: login, start a conversation,
// answer the interview questions, complete, then read the archive back.
// Run against a live instance seeded with cmd/seed.

var (
	apiBaseURL = envOr("SMOKE_API_URL", "http://localhost:3000/api")
	email      = envOr("SMOKE_EMAIL", "teacher@tlv-hs.edu")
	password   = envOr("SMOKE_PASSWORD", "ChangeMe123!")
)

type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type loginData struct {
	AccessToken string `json:"access_token"`
}

type studentData struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

type conversationData struct {
	ConversationId string `json:"conversation_id"`
	Message        string `json:"message"`
	IsComplete     bool   `json:"is_complete"`
	Source         string `json:"source"`
}

type analysisData struct {
	AnalysisId  string `json:"analysis_id"`
	StudentId   string `json:"student_id"`
	CompletedAt string `json:"completed_at"`
}

func main() {
	fmt.Println("=== Smoke: Student Analysis Flow ===")

	fmt.Printf("1. Logging in as %s...\n", email)
	token := login()

	fmt.Println("2. Picking a student...")
	student := firstStudent(token)
	fmt.Printf("   Student: %s (%s)\n", student.Name, student.Id)

	fmt.Println("3. Starting conversation...")
	conv := post[conversationData](token, "/analysis/v1/start", map[string]string{
		"student_id": student.Id,
	})
	fmt.Printf("   Conversation: %s\n", conv.ConversationId)
	fmt.Printf("   Opening question: %.80s...\n", conv.Message)

	answers := []string{
		"Strong in math, struggles with reading comprehension.",
		"Visual learner, participates actively in group work.",
		"Homework is usually on time, focused in class.",
		"Gets along well with classmates, occasionally anxious before tests.",
		"Main challenge is sustained reading. Improved a lot this semester.",
		"Great spatial reasoning, loves building and chess.",
	}
	for i, answer := range answers {
		fmt.Printf("4.%d Answering question %d...\n", i+1, i+1)
		reply := post[conversationData](token, "/analysis/v1/chat", map[string]string{
			"conversation_id": conv.ConversationId,
			"message":         answer,
		})
		fmt.Printf("    source=%s complete=%v\n", reply.Source, reply.IsComplete)
		time.Sleep(200 * time.Millisecond)
	}

	fmt.Println("5. Completing analysis...")
	result := post[analysisData](token, "/analysis/v1/complete", map[string]string{
		"conversation_id": conv.ConversationId,
	})
	fmt.Printf("   Analysis id: %s (completed at %s)\n", result.AnalysisId, result.CompletedAt)

	fmt.Println("6. Reading archive back...")
	// Give the archive consumer a moment to drain the queue.
	time.Sleep(2 * time.Second)
	archives := get[[]map[string]any](token, "/analysis/v1/archived/"+student.Id)
	fmt.Printf("   Archived analyses for student: %d\n", len(archives))

	fmt.Println("=== Smoke passed ===")
}

func login() string {
	data := post[loginData]("", "/auth/v1/login", map[string]string{
		"email":    email,
		"password": password,
	})
	return data.AccessToken
}

func firstStudent(token string) studentData {
	students := get[[]studentData](token, "/student/v1")
	if len(students) == 0 {
		fail("no students found, run cmd/seed first")
	}
	return students[0]
}

func post[T any](token, path string, body any) T {
	payload, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, apiBaseURL+path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	return do[T](req, token)
}

func get[T any](token, path string) T {
	req, _ := http.NewRequest(http.MethodGet, apiBaseURL+path, nil)
	return do[T](req, token)
}

func do[T any](req *http.Request, token string) T {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fail("request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		fail("%s %s -> %d: %s", req.Method, req.URL.Path, resp.StatusCode, raw)
	}

	var envelope apiResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		fail("invalid response from %s: %v", req.URL.Path, err)
	}

	var out T
	if len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, &out); err != nil {
			fail("cannot decode data from %s: %v", req.URL.Path, err)
		}
	}
	return out
}

func fail(format string, args ...any) {
	fmt.Printf("FAILED: "+format+"\n", args...)
	os.Exit(1)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
