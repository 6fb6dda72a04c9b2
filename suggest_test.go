package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// setupSuggestTest creates a Gin engine with a mock OpenAI server and returns
// the router and a function to set the mock response. No store or catalog is
// needed for suggestions.
func setupSuggestTest(apiKey string) (*gin.Engine, *httptest.Server, func(int, interface{})) {
	var mockStatus int
	var mockBody interface{}

	mockOpenAI := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(mockStatus)
		json.NewEncoder(w).Encode(mockBody)
	}))

	gin.SetMode(gin.TestMode)
	h := &Handler{logger: zap.NewNop(), openAIAPIKey: apiKey, openAIBaseURL: mockOpenAI.URL}
	router := gin.New()
	router.POST("/api/catalog/foods/suggest", h.suggestFoodItem)

	setMock := func(status int, body interface{}) {
		mockStatus = status
		mockBody = body
	}

	return router, mockOpenAI, setMock
}

// doSuggestRequest sends a POST to the suggest endpoint with the given body.
func doSuggestRequest(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/api/catalog/foods/suggest", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// openAIChatResponse wraps a content string in the OpenAI chat completions
// response shape (choices[0].message.content).
func openAIChatResponse(content string) map[string]interface{} {
	return map[string]interface{}{
		"choices": []map[string]interface{}{
			{
				"message": map[string]interface{}{
					"content": content,
				},
			},
		},
	}
}

func TestSuggest_FoodSuccess(t *testing.T) {
	router, mockServer, setMock := setupSuggestTest("test-key")
	defer mockServer.Close()

	suggestion := `{"name":"Scrambled Eggs","categories":["Protein","breakfast","protein"],"calories":149,"protein":10,"carbohydrates":1.6,"fats":11,"portion":120,"confidence":4}`
	setMock(http.StatusOK, openAIChatResponse(suggestion))

	w := doSuggestRequest(router, `{"description":"2 eggs scrambled"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp foodSuggestion
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Food.Name != "Scrambled Eggs" {
		t.Errorf("expected name 'Scrambled Eggs', got '%s'", resp.Food.Name)
	}
	if resp.Food.Calories != 149 || resp.Food.Portion != 120 {
		t.Errorf("expected 149 kcal / 120 g, got %d / %v", resp.Food.Calories, resp.Food.Portion)
	}
	if strings.Join(resp.Food.Categories, ",") != "breakfast,protein" {
		t.Errorf("expected normalized categories, got %v", resp.Food.Categories)
	}
	if resp.Confidence != 4 {
		t.Errorf("expected confidence 4, got %d", resp.Confidence)
	}
}

func TestSuggest_Unrecognized(t *testing.T) {
	router, mockServer, setMock := setupSuggestTest("test-key")
	defer mockServer.Close()

	setMock(http.StatusOK, openAIChatResponse(`{"error":"unrecognized"}`))

	w := doSuggestRequest(router, `{"description":"asdfghjkl"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]string
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["error"] != "unrecognized" {
		t.Errorf("expected error 'unrecognized', got '%s'", resp["error"])
	}
}

// TestSuggest_InvalidDraft covers a draft the catalog would reject.
func TestSuggest_InvalidDraft(t *testing.T) {
	router, mockServer, setMock := setupSuggestTest("test-key")
	defer mockServer.Close()

	setMock(http.StatusOK, openAIChatResponse(`{"name":"Mystery","categories":[],"calories":120,"protein":-3,"carbohydrates":0,"fats":0,"portion":0,"confidence":1}`))

	w := doSuggestRequest(router, `{"description":"something"}`)

	var resp map[string]string
	json.Unmarshal(w.Body.Bytes(), &resp)
	if w.Code != http.StatusOK || resp["error"] != "unrecognized" {
		t.Errorf("expected 200 unrecognized, got %d: %s", w.Code, w.Body.String())
	}
}

func TestSuggest_OpenAIError500(t *testing.T) {
	router, mockServer, setMock := setupSuggestTest("test-key")
	defer mockServer.Close()

	setMock(http.StatusInternalServerError, map[string]string{"error": "server error"})

	w := doSuggestRequest(router, `{"description":"banana"}`)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]string
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["error"] != "openai request failed" {
		t.Errorf("expected error 'openai request failed', got '%s'", resp["error"])
	}
}

func TestSuggest_NotConfigured(t *testing.T) {
	router, mockServer, _ := setupSuggestTest("")
	defer mockServer.Close()

	w := doSuggestRequest(router, `{"description":"banana"}`)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d: %s", w.Code, w.Body.String())
	}
}

func TestSuggest_EmptyDescription(t *testing.T) {
	router, mockServer, _ := setupSuggestTest("test-key")
	defer mockServer.Close()

	w := doSuggestRequest(router, `{"description":"   "}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestSuggest_MalformedJSON(t *testing.T) {
	router, mockServer, setMock := setupSuggestTest("test-key")
	defer mockServer.Close()

	// OpenAI returns something that isn't valid JSON
	setMock(http.StatusOK, openAIChatResponse(`not valid json at all`))

	w := doSuggestRequest(router, `{"description":"banana"}`)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d: %s", w.Code, w.Body.String())
	}
}
