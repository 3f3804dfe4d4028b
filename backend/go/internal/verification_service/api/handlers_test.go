package api

import (
	"Sceptre/backend/go/internal/config"
	"Sceptre/backend/go/internal/knowledge"
	"Sceptre/backend/go/internal/models"
	"Sceptre/backend/go/internal/verification_service/service"
	httpclient "Sceptre/backend/go/pkg/http"
	"Sceptre/backend/go/pkg/logger"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

// stubOracle answers every prompt with the same canned text.
type stubOracle struct {
	response string
}

func (o *stubOracle) GenerateContent(ctx context.Context, req *models.GenerateContentRequest) (*models.GenerateContentResponse, error) {
	return &models.GenerateContentResponse{
		Content: []models.Content{
			{Parts: []*models.Part{{Text: o.response}}, Role: models.SpeakerModel},
		},
	}, nil
}

// stubSearcher always returns one trusted document.
type stubSearcher struct{}

func (s *stubSearcher) Search(ctx context.Context, query string) models.SearchResult {
	return models.SearchResult{
		Status: models.SearchSuccess,
		Query:  query,
		Results: []models.Document{
			{Title: "Agency page", URL: "https://example.gov/page", RelevanceScore: 0.8, CreatedAt: time.Now()},
		},
		ProviderHits: 1,
	}
}

func newTestRouter(t *testing.T, oracle *stubOracle) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.New("test", "", "")
	km := knowledge.NewManager(config.KnowledgeConfig{MaxDocuments: 100, MaxAgeHours: 24})
	svc := service.NewService(
		log,
		config.VerificationConfig{MaxClaims: 5, EvidencePerClaim: 5, SourcesPerClaim: 3, MaxSources: 10},
		config.SearchConfig{QueryTimeoutSeconds: 5},
		config.LLMConfig{TimeoutSeconds: 5},
		service.NewClaimExtractor(log, oracle, 5),
		service.NewClaimVerifier(log, oracle, 5),
		service.NewScoreAggregator(10),
		&stubSearcher{},
		km,
		nil,
	)

	client, err := httpclient.NewClient(config.CircuitBreakerConfig{}, 5*time.Second)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	processor := service.NewContentProcessor(log, oracle, client)
	responder := service.NewResponder(log, oracle, km)

	handler := NewHandler(svc, processor, responder, km)
	router, err := SetupRouter(handler, &config.AppConfig{})
	if err != nil {
		t.Fatalf("SetupRouter() error = %v", err)
	}
	return router
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t, &stubOracle{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/healthz", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestVerify_RequiresSessionID(t *testing.T) {
	router := newTestRouter(t, &stubOracle{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/verify", strings.NewReader(`{"content":"some claim"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestVerify_RejectsEmptyContent(t *testing.T) {
	router := newTestRouter(t, &stubOracle{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/verify", strings.NewReader(`{"session_id":"s1"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestVerify_NoClaims(t *testing.T) {
	router := newTestRouter(t, &stubOracle{response: "NO_CLAIMS"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/verify", strings.NewReader(`{"session_id":"s1","content":"just an opinion"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body struct {
		Score       float64 `json:"score"`
		Credibility string  `json:"credibility"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body.Score != 0.5 {
		t.Errorf("score = %v, want the neutral 0.5", body.Score)
	}
	if body.Credibility != service.VerdictUnverifiable {
		t.Errorf("credibility = %s, want %s", body.Credibility, service.VerdictUnverifiable)
	}
}

func TestSearchEndpoint(t *testing.T) {
	router := newTestRouter(t, &stubOracle{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/search", strings.NewReader(`{"session_id":"s1","query":"mars rover"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var result models.SearchResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if result.Status != models.SearchSuccess {
		t.Errorf("status = %s, want %s", result.Status, models.SearchSuccess)
	}
	if len(result.Results) != 1 {
		t.Errorf("results length = %d, want 1", len(result.Results))
	}
}

func TestChat_EmptyKnowledgeBase(t *testing.T) {
	router := newTestRouter(t, &stubOracle{response: "an answer"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/chat", strings.NewReader(`{"session_id":"fresh","query":"what do we know?"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var answer service.ChatAnswer
	if err := json.Unmarshal(w.Body.Bytes(), &answer); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if !strings.Contains(answer.Answer, "refreshing the knowledge base") {
		t.Errorf("answer = %q, want the empty-knowledge guidance", answer.Answer)
	}
}

func TestRefreshKnowledge(t *testing.T) {
	router := newTestRouter(t, &stubOracle{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/knowledge/refresh", strings.NewReader(`{"session_id":"s1","topic":"climate change"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body struct {
		DocumentCount int `json:"document_count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body.DocumentCount != 1 {
		t.Errorf("document_count = %d, want 1", body.DocumentCount)
	}
}

func TestAuthMiddleware_RejectsMissingToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(AuthMiddleware("secret"))
	router.GET("/protected", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d with a garbage token, want 401", w.Code)
	}
}
