package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fraud-detector/internal/classifier"
	"fraud-detector/internal/config"
	"fraud-detector/internal/middleware"
	"fraud-detector/internal/models"
	"fraud-detector/internal/repository"
	"fraud-detector/internal/service"
	"fraud-detector/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	db, err := repository.NewDB(config.Database{
		Type: "sqlite",
		Path: filepath.Join(t.TempDir(), "test.db"),
	}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, repository.MigrateDB(db, "sqlite", logger))

	model, err := classifier.Train(classifier.TrainingSet)
	require.NoError(t, err)

	scanner := service.NewScanner(model, repository.NewScanRepository(db, logger), logger)
	game := service.NewGame(service.DefaultQuestions, session.NewMemoryStore(),
		repository.NewGameScoreRepository(db, logger), true, logger)

	r := gin.New()
	r.SetHTMLTemplate(Templates())
	r.Use(middleware.Session(middleware.SessionConfig{
		Secret:     []byte("test-secret"),
		CookieName: "session",
		TTL:        time.Hour,
	}, logger))
	NewHandler(scanner, game, logger).RegisterRoutes(r)
	return r
}

// client replays the session cookie like a browser would.
type client struct {
	router  *gin.Engine
	cookies []*http.Cookie
}

func (cl *client) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	for _, ck := range cl.cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	cl.router.ServeHTTP(rec, req)
	if set := rec.Result().Cookies(); len(set) > 0 {
		cl.cookies = set
	}
	return rec
}

func (cl *client) get(t *testing.T, path string) *httptest.ResponseRecorder {
	return cl.do(t, httptest.NewRequest(http.MethodGet, path, nil))
}

func (cl *client) postForm(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return cl.do(t, req)
}

func TestScanPage(t *testing.T) {
	cl := &client{router: newTestRouter(t)}

	rec := cl.get(t, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="email"`)
	assert.NotContains(t, rec.Body.String(), "Confidence:")
}

func TestScan_FraudHighlighted(t *testing.T) {
	cl := &client{router: newTestRouter(t)}

	rec := cl.postForm(t, "/", url.Values{"email": {"Verify your Account, VERIFY it"}})
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "FRAUD")
	assert.Contains(t, body, `<span class="highlight">Verify</span>`)
	assert.Contains(t, body, `<span class="highlight">Account</span>`)
	assert.NotContains(t, body, `<span class="highlight">VERIFY</span>`)
}

func TestScan_MissingEmailIsEmpty(t *testing.T) {
	cl := &client{router: newTestRouter(t)}

	rec := cl.postForm(t, "/", url.Values{})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = cl.get(t, "/api/v1/history")
	var resp struct {
		Items []models.ScanRecord `json:"items"`
		Total int                 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "", resp.Items[0].Email)
	assert.Equal(t, 50.0, resp.Items[0].Confidence)
}

func TestScan_HistoryIsAppendOnlyNewestFirst(t *testing.T) {
	cl := &client{router: newTestRouter(t)}

	emails := []string{"family dinner tonight", "urgent verify your bank account", "see you at the office"}
	for _, e := range emails {
		require.Equal(t, http.StatusOK, cl.postForm(t, "/", url.Values{"email": {e}}).Code)
	}

	rec := cl.get(t, "/api/v1/history")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Items []models.ScanRecord `json:"items"`
		Total int                 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, len(emails), resp.Total)
	for i, item := range resp.Items {
		assert.Equal(t, emails[len(emails)-1-i], item.Email)
	}
	assert.Equal(t, models.LabelFraud, resp.Items[1].Result)

	page := cl.get(t, "/history")
	assert.Equal(t, http.StatusOK, page.Code)
	assert.Less(t,
		strings.Index(page.Body.String(), "see you at the office"),
		strings.Index(page.Body.String(), "family dinner tonight"))

	csvRec := cl.get(t, "/history/export.csv")
	assert.Equal(t, http.StatusOK, csvRec.Code)
	assert.True(t, strings.HasPrefix(csvRec.Body.String(), "email,result,confidence\n"))
	assert.Contains(t, csvRec.Body.String(), "urgent verify your bank account,FRAUD,")
}

func TestScanJSON(t *testing.T) {
	cl := &client{router: newTestRouter(t)}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/scan", strings.NewReader(`{"email":"Click here to reset your password"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := cl.do(t, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		ID              int64        `json:"id"`
		Result          models.Label `json:"result"`
		Confidence      float64      `json:"confidence"`
		HighlightedText string       `json:"highlighted_text"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, models.LabelFraud, resp.Result)
	assert.Contains(t, resp.HighlightedText, `<span class="highlight">Click</span>`)

	bad := httptest.NewRequest(http.MethodPost, "/api/v1/scan", strings.NewReader(`{`))
	bad.Header.Set("Content-Type", "application/json")
	assert.Equal(t, http.StatusBadRequest, cl.do(t, bad).Code)
}

func TestGameFlow(t *testing.T) {
	cl := &client{router: newTestRouter(t)}

	rec := cl.get(t, "/game")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Score: 0 / 0")
	assert.Contains(t, rec.Body.String(), "Beginner")
	assert.Contains(t, rec.Body.String(), `name="question_id"`)

	rec = cl.postForm(t, "/game", url.Values{
		"choice":      {"FRAUD"},
		"correct":     {"FRAUD"},
		"reason":      {"Creates urgency and asks for action."},
		"question_id": {"0"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Score: 1 / 1")
	assert.Contains(t, rec.Body.String(), "✅ Correct!")

	rec = cl.postForm(t, "/game", url.Values{
		"choice":      {"FRAUD"},
		"correct":     {"FRAUD"},
		"reason":      {"forged"},
		"question_id": {"1"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Score: 1 / 2")
	assert.Contains(t, rec.Body.String(), "❌ Wrong! Normal internal communication.")

	rec = cl.get(t, "/reset-game")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/game", rec.Header().Get("Location"))

	rec = cl.get(t, "/game")
	assert.Contains(t, rec.Body.String(), "Score: 0 / 0")

	rec = cl.get(t, "/api/v1/scores")
	var resp struct {
		Items []models.GameScoreRecord `json:"items"`
		Total int                      `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 4, resp.Total)
	assert.Equal(t, 0, resp.Items[0].Total)
	assert.Equal(t, 2, resp.Items[1].Total)
	assert.Equal(t, 1, resp.Items[1].Score)
	for _, item := range resp.Items {
		assert.GreaterOrEqual(t, item.Total, item.Score)
	}

	assert.Equal(t, http.StatusOK, cl.get(t, "/scores").Code)
}

func TestGameAnswer_BadForm(t *testing.T) {
	cl := &client{router: newTestRouter(t)}

	assert.Equal(t, http.StatusBadRequest, cl.postForm(t, "/game", url.Values{}).Code)
	assert.Equal(t, http.StatusBadRequest,
		cl.postForm(t, "/game", url.Values{"choice": {"FRAUD"}}).Code)
	assert.Equal(t, http.StatusBadRequest,
		cl.postForm(t, "/game", url.Values{"choice": {"FRAUD"}, "question_id": {"42"}}).Code)
}

func TestGameAnswer_UnknownChoiceGradedWrong(t *testing.T) {
	cl := &client{router: newTestRouter(t)}

	rec := cl.postForm(t, "/game", url.Values{"choice": {"MAYBE"}, "question_id": {"2"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Score: 0 / 1")
	assert.Contains(t, rec.Body.String(), "❌ Wrong! Suspicious link asking for credentials.")
}

func TestStatsAndHealth(t *testing.T) {
	cl := &client{router: newTestRouter(t)}

	cl.postForm(t, "/", url.Values{"email": {"urgent verify your bank account"}})
	cl.postForm(t, "/", url.Values{"email": {"thanks for your help"}})
	cl.get(t, "/game")

	rec := cl.get(t, "/api/v1/stats")
	require.Equal(t, http.StatusOK, rec.Code)
	var stats models.ScanStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 2, stats.TotalScans)
	assert.Equal(t, 1, stats.ByResult[models.LabelFraud])
	assert.Equal(t, 1, stats.ByResult[models.LabelSafe])
	assert.Equal(t, 1, stats.TotalGames)

	rec = cl.get(t, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
}
