package names

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/zhouzirui/z-names/backend/internal/model/membership"
	"github.com/zhouzirui/z-names/backend/internal/model/name"
	namesService "github.com/zhouzirui/z-names/backend/internal/service/names"
)

type stubSource struct {
	names []name.Name
	err   error
}

func (s *stubSource) GetAll(context.Context) ([]name.Name, error) {
	return s.names, s.err
}

func setupRouter(source namesService.Source) (*chi.Mux, *Hub) {
	svc := namesService.NewService(
		source,
		membership.NewMemoryStore(membership.KindLike, []string{"a1"}),
		membership.NewMemoryStore(membership.KindUsed, nil),
	)
	hub := NewHub(svc.Load)
	handler := New(svc, hub)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, hub
}

func defaultSource() *stubSource {
	return &stubSource{names: []name.Name{
		{UID: "a1", FullName: "Ann"},
		{UID: "b2", FullName: "Bea"},
	}}
}

func decodeList(t *testing.T, resp *httptest.ResponseRecorder) name.List {
	t.Helper()
	var list name.List
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return list
}

func TestListNames(t *testing.T) {
	r, _ := setupRouter(defaultSource())

	req := httptest.NewRequest(http.MethodGet, "/names", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	list := decodeList(t, resp)
	if len(list.Names) != 2 || !list.Names[0].Liked || list.Names[1].Liked {
		t.Fatalf("unexpected list: %+v", list)
	}
}

func TestToggleUsedRoute(t *testing.T) {
	r, _ := setupRouter(defaultSource())

	req := httptest.NewRequest(http.MethodPost, "/names/b2/used", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	list := decodeList(t, resp)
	b2, ok := list.Find("b2")
	if !ok || !b2.Used || b2.Liked {
		t.Fatalf("unexpected b2 entry: %+v", b2)
	}
}

func TestToggleLikeRoute(t *testing.T) {
	r, _ := setupRouter(defaultSource())

	req := httptest.NewRequest(http.MethodPost, "/names/a1/like", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	a1, _ := decodeList(t, resp).Find("a1")
	if a1.Liked {
		t.Fatal("expected a1 to be unliked after toggle")
	}
}

func TestListNamesSourceFailure(t *testing.T) {
	r, _ := setupRouter(&stubSource{err: &namesService.TransportError{Op: "GET", URL: "http://x", Err: errors.New("boom")}})

	req := httptest.NewRequest(http.MethodGet, "/names", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "error") {
		t.Fatalf("expected error body, got %s", resp.Body.String())
	}
}

func TestListNamesUnexpectedFailure(t *testing.T) {
	r, _ := setupRouter(&stubSource{err: errors.New("boom")})

	req := httptest.NewRequest(http.MethodGet, "/names", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
}

func TestRespondServiceErrorUIDRequired(t *testing.T) {
	resp := httptest.NewRecorder()
	respondServiceError(resp, "toggle", namesService.ErrUIDRequired)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read message: %v", err)
	}
	return msg
}

func TestFeedPushesToggles(t *testing.T) {
	r, hub := setupRouter(defaultSource())
	srv := httptest.NewServer(r)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/names/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	initial := readMessage(t, conn)
	if initial.Event != "names" || len(initial.Data.Names) != 2 {
		t.Fatalf("unexpected initial message: %+v", initial)
	}

	resp, err := http.Post(srv.URL+"/names/b2/like", "application/json", nil)
	if err != nil {
		t.Fatalf("post toggle: %v", err)
	}
	resp.Body.Close()

	update := readMessage(t, conn)
	b2, ok := update.Data.Find("b2")
	if !ok || !b2.Liked {
		t.Fatalf("expected b2 liked in pushed update, got %+v", update.Data)
	}

	if hub.Count() != 1 {
		t.Fatalf("expected 1 client, got %d", hub.Count())
	}
}

func TestHubRunClosesClients(t *testing.T) {
	r, hub := setupRouter(defaultSource())
	srv := httptest.NewServer(r)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/names/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	readMessage(t, conn)

	cancel()
	<-done

	if hub.Count() != 0 {
		t.Fatalf("expected no clients after shutdown, got %d", hub.Count())
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatal("expected connection to be closed")
	}
}
