package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/martinle068/FitnnessApp/internal/domain"
)

/* ─── Request / Response types ───────────────────────────────────────── */

// suggestRequest is the request body for POST /api/catalog/foods/suggest.
type suggestRequest struct {
	Description string `json:"description"`
}

// aiFoodSuggestion is the JSON object the model is asked to return.
type aiFoodSuggestion struct {
	Name          string   `json:"name"`
	Categories    []string `json:"categories"`
	Calories      int      `json:"calories"`
	Protein       float64  `json:"protein"`
	Carbohydrates float64  `json:"carbohydrates"`
	Fats          float64  `json:"fats"`
	Portion       float64  `json:"portion"`
	Confidence    int      `json:"confidence"`
}

// foodSuggestion is the response: a catalog-ready draft plus the model's
// confidence (1-5). Nothing is written to the catalog.
type foodSuggestion struct {
	Food       domain.FoodItem `json:"food"`
	Confidence int             `json:"confidence"`
}

/* ─── OpenAI prompt ──────────────────────────────────────────────────── */

const foodSystemPrompt = `You are a nutrition assistant helping maintain a food catalog. Parse the food description and return a JSON object with:
- "name" (string, cleaned up title case, no quantity)
- "categories" (array of 1-3 lower-case strings such as "protein", "grain", "vegetable", "fruit", "dairy", "fat", "legume", "snack")
- "calories" (integer, kcal per 100 g)
- "protein" (number, grams per 100 g)
- "carbohydrates" (number, grams per 100 g)
- "fats" (number, grams per 100 g)
- "portion" (number, a typical serving in grams)
- "confidence" (integer 1-5: 5=exact known nutritional data, 4=very close estimate, 3=reasonable estimate, 2=rough guess, 1=very uncertain)

All nutrient values are per 100 g regardless of the quantity in the description.
Only return {"error": "unrecognized"} if the input is not food at all.
Return only valid JSON, no explanation.`

/* ─── OpenAI HTTP client ─────────────────────────────────────────────── */

// openAIMessage is a single message in the OpenAI chat completions request.
type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// openAIRequest is the request body for the OpenAI chat completions API.
type openAIRequest struct {
	Model          string                 `json:"model"`
	Messages       []openAIMessage        `json:"messages"`
	Temperature    float64                `json:"temperature"`
	ResponseFormat map[string]interface{} `json:"response_format"`
}

var errNoAPIKey = errors.New("OPENAI_API_KEY not set")

// callOpenAI sends a chat completions request and returns the raw content
// string of the first choice.
func callOpenAI(ctx context.Context, apiKey, baseURL string, messages []openAIMessage) (string, error) {
	if apiKey == "" {
		return "", errNoAPIKey
	}

	reqBody := openAIRequest{
		Model:       "gpt-4o-mini",
		Messages:    messages,
		Temperature: 0,
		ResponseFormat: map[string]interface{}{
			"type": "json_object",
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", strings.TrimSuffix(baseURL, "/")+"/v1/chat/completions", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openai returned status %d: %s", resp.StatusCode, string(respBytes))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBytes, &result); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return result.Choices[0].Message.Content, nil
}

/* ─── Handler ────────────────────────────────────────────────────────── */

// suggestFoodItem handles POST /api/catalog/foods/suggest. It asks OpenAI to
// turn a free-text description into a per-100 g FoodItem draft.
func (h *Handler) suggestFoodItem(c *gin.Context) {
	var req suggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Description) == "" {
		apiError(c, http.StatusBadRequest, "description is required")
		return
	}

	messages := []openAIMessage{
		{Role: "system", Content: foodSystemPrompt},
		{Role: "user", Content: req.Description},
	}

	content, err := callOpenAI(c.Request.Context(), h.openAIAPIKey, h.openAIBaseURL, messages)
	if err != nil {
		h.logger.Error("openai request failed", zap.Error(err))
		if errors.Is(err, errNoAPIKey) {
			apiError(c, http.StatusServiceUnavailable, "food suggestions are not configured")
			return
		}
		apiError(c, http.StatusBadGateway, "openai request failed")
		return
	}

	var errorResp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal([]byte(content), &errorResp); err != nil {
		h.logger.Error("unparseable openai response", zap.Error(err))
		apiError(c, http.StatusBadGateway, "openai request failed")
		return
	}
	if errorResp.Error == "unrecognized" {
		c.JSON(http.StatusOK, gin.H{"error": "unrecognized"})
		return
	}

	var s aiFoodSuggestion
	if err := json.Unmarshal([]byte(content), &s); err != nil {
		h.logger.Error("unparseable suggestion", zap.Error(err))
		apiError(c, http.StatusBadGateway, "openai request failed")
		return
	}

	food := domain.FoodItem{
		Name:          strings.TrimSpace(s.Name),
		Categories:    domain.NormalizeCategories(s.Categories),
		Calories:      s.Calories,
		Protein:       s.Protein,
		Carbohydrates: s.Carbohydrates,
		Fats:          s.Fats,
		Portion:       s.Portion,
	}
	// Drafts the catalog would reject are reported as unrecognized.
	if food.Calories == 0 || food.Validate() != nil {
		c.JSON(http.StatusOK, gin.H{"error": "unrecognized"})
		return
	}

	c.JSON(http.StatusOK, foodSuggestion{Food: food, Confidence: s.Confidence})
}
