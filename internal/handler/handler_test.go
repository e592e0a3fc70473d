package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"SAFE_AISafetySuite/internal/dispatch"
	"SAFE_AISafetySuite/internal/logging"
	"SAFE_AISafetySuite/internal/middleware"
	"SAFE_AISafetySuite/internal/models"
	"SAFE_AISafetySuite/internal/modserver"
	"SAFE_AISafetySuite/internal/modules"
	"SAFE_AISafetySuite/internal/registry"
	"SAFE_AISafetySuite/internal/storage"
	"SAFE_AISafetySuite/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRouter *gin.Engine

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	dir, err := os.MkdirTemp("", "safe-handler-test")
	if err != nil {
		panic(err)
	}
	os.Setenv("SAFE_DB_PATH", filepath.Join(dir, "test.db"))
	storage.InitDB()

	// 실제 모듈 서버 2개를 httptest로 기동
	moderationAnalyzer, _ := modules.Get("moderation")
	moderationServer := httptest.NewServer(modserver.New(moderationAnalyzer).Engine())

	redblueAnalyzer, _ := modules.Get("redblue")
	redblueServer := httptest.NewServer(modserver.New(redblueAnalyzer).Engine())

	registryYAML := fmt.Sprintf(`
modules:
  - name: moderation
    base_url: %s
  - name: redblue
    base_url: %s
  - name: ghost
    base_url: http://127.0.0.1:1
`, moderationServer.URL, redblueServer.URL)

	registryPath := filepath.Join(dir, "modules.yaml")
	if err := os.WriteFile(registryPath, []byte(registryYAML), 0644); err != nil {
		panic(err)
	}
	reg, err := registry.Load(registryPath)
	if err != nil {
		panic(err)
	}

	hub := ws.NewHub()
	go hub.Run()

	Init(reg, dispatch.NewDispatcher(5*time.Second, logging.GetLogger()), hub)

	testRouter = gin.New()
	testRouter.GET("/health", Health)
	testRouter.POST("/signup", Signup)
	testRouter.POST("/login", Login)

	protected := testRouter.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/profile", Profile)
		protected.GET("/modules", ListModules)
		protected.GET("/modules/:name", GetModule)
		protected.POST("/analyze/:module", Analyze)
		protected.GET("/history", GetHistory)
		protected.GET("/history/:job_id", GetHistoryDetail)
		protected.GET("/report/:job_id", ExportReport)
	}
	testRouter.GET("/ws/simulation", HandleSimulation)

	code := m.Run()

	moderationServer.Close()
	redblueServer.Close()
	storage.CloseDB()
	os.RemoveAll(dir)
	os.Exit(code)
}

func doJSON(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	testRouter.ServeHTTP(w, req)
	return w
}

func signupAndLogin(t *testing.T, username string) string {
	t.Helper()
	w := doJSON(t, http.MethodPost, "/signup", "", SignupRequest{
		Username: username,
		Password: "password123",
		Profile:  models.UserProfile{Name: "Tester", Organization: "SAFE Lab"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, http.MethodPost, "/login", "", LoginRequest{Username: username, Password: "password123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["token"])
	return resp["token"]
}

func TestHealth(t *testing.T) {
	w := doJSON(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestSignupValidation(t *testing.T) {
	tests := []struct {
		name string
		body SignupRequest
		code int
	}{
		{"empty username", SignupRequest{Username: " ", Password: "pw"}, http.StatusBadRequest},
		{"empty password", SignupRequest{Username: "user1", Password: ""}, http.StatusBadRequest},
		{"valid", SignupRequest{Username: "user1", Password: "pw12345"}, http.StatusOK},
		{"duplicate", SignupRequest{Username: "user1", Password: "pw12345"}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, http.MethodPost, "/signup", "", tt.body)
			assert.Equal(t, tt.code, w.Code, w.Body.String())
		})
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	signupAndLogin(t, "loginuser")

	w := doJSON(t, http.MethodPost, "/login", "", LoginRequest{Username: "loginuser", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, http.MethodPost, "/login", "", LoginRequest{Username: "ghostuser", Password: "pw"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	w := doJSON(t, http.MethodGet, "/api/modules", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListAndGetModules(t *testing.T) {
	token := signupAndLogin(t, "moduser")

	w := doJSON(t, http.MethodGet, "/api/modules", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list ModuleListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Modules, 3)

	w = doJSON(t, http.MethodGet, "/api/modules/moderation", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, http.MethodGet, "/api/modules/unknown", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAnalyzeFlow(t *testing.T) {
	token := signupAndLogin(t, "analyst")

	// 1. 분석 요청 -> 모듈로 라우팅
	w := doJSON(t, http.MethodPost, "/api/analyze/moderation", token, AnalyzeRequest{
		Target: "chat-log",
		Params: map[string]interface{}{"content": "hello there"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result models.AnalysisResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "moderation", result.Module)
	assert.Equal(t, models.AnalysisStatusCompleted, result.Status)
	require.NotEmpty(t, result.JobID)

	// 2. 이력 목록에 기록됨
	w = doJSON(t, http.MethodGet, "/api/history", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var history HistoryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &history))
	require.Len(t, history.History, 1)
	assert.Equal(t, result.JobID, history.History[0].JobID)
	assert.False(t, history.History[0].CreatedAt.IsZero())

	// 3. 상세 조회에 결과 JSON 포함
	w = doJSON(t, http.MethodGet, "/api/history/"+result.JobID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var detail models.AnalysisRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Contains(t, detail.Result, `"module":"moderation"`)
	assert.False(t, detail.CreatedAt.IsZero())

	// 4. 리포트 zip 다운로드
	w = doJSON(t, http.MethodGet, "/api/report/"+result.JobID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/zip", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Body.Bytes())
}

func TestAnalyzeErrorMapping(t *testing.T) {
	token := signupAndLogin(t, "erroruser")

	// 없는 모듈 -> 404
	w := doJSON(t, http.MethodPost, "/api/analyze/unknown", token, AnalyzeRequest{Target: "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// target 없음 -> 400
	w = doJSON(t, http.MethodPost, "/api/analyze/moderation", token, AnalyzeRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 모듈이 요청 거부 -> 400 (content 파라미터 없음)
	w = doJSON(t, http.MethodPost, "/api/analyze/moderation", token, AnalyzeRequest{Target: "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 모듈 연결 불가 -> 502
	w = doJSON(t, http.MethodPost, "/api/analyze/ghost", token, AnalyzeRequest{Target: "x"})
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestSimulationSession(t *testing.T) {
	token := signupAndLogin(t, "redteamer")

	server := httptest.NewServer(testRouter)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/simulation?token=" + token + "&scenario=prompt_injection"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// 초기 시나리오 안내 메시지
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, message, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(message), "Prompt Injection")

	// 공격 수 전송 -> 블루팀 평가 수신
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("data_exfiltration")))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, message, err = conn.ReadMessage()
	require.NoError(t, err)

	var turn struct {
		AttackMove string `json:"attack_move"`
		Response   string `json:"response"`
		Severity   string `json:"severity"`
	}
	require.NoError(t, json.Unmarshal(message, &turn))
	assert.Equal(t, "data_exfiltration", turn.AttackMove)
	assert.Equal(t, models.SeverityCritical, turn.Severity)

	// 연결 종료 후 세션 기록이 이력에 저장됨
	conn.Close()
	require.Eventually(t, func() bool {
		w := doJSON(t, http.MethodGet, "/api/history", token, nil)
		if w.Code != http.StatusOK {
			return false
		}
		var history HistoryResponse
		if err := json.Unmarshal(w.Body.Bytes(), &history); err != nil {
			return false
		}
		return len(history.History) == 1 && history.History[0].Module == "redblue"
	}, 2*time.Second, 50*time.Millisecond)
}

func TestSimulationRejectsBadScenario(t *testing.T) {
	token := signupAndLogin(t, "redteamer2")

	server := httptest.NewServer(testRouter)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/simulation?token=" + token + "&scenario=nope"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
