// FILE: internal/transport/http/handler_test.go
package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"chessvar/internal/service"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	return NewFiberApp(service.New(nil), true)
}

func doRequest(t *testing.T, app *fiber.App, method, path, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func createGame(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp := doRequest(t, app, "POST", "/api/v1/games", "")
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("create game status = %d, want 201", resp.StatusCode)
	}
	var gr GameResponse
	decodeJSON(t, resp, &gr)
	if gr.GameID == "" {
		t.Fatal("create game returned empty gameId")
	}
	return gr.GameID
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	resp := doRequest(t, app, "GET", "/health", "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("health status = %d, want 200", resp.StatusCode)
	}
	var body map[string]any
	decodeJSON(t, resp, &body)
	if body["status"] != "healthy" {
		t.Fatalf("health status field = %v", body["status"])
	}
	if body["storage"] != "disabled" {
		t.Fatalf("health storage field = %v, want disabled", body["storage"])
	}
}

func TestCreateAndGetGame(t *testing.T) {
	app := newTestApp(t)

	resp := doRequest(t, app, "POST", "/api/v1/games", "")
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	var created GameResponse
	decodeJSON(t, resp, &created)

	if created.Turn != "w" {
		t.Fatalf("turn = %q, want w", created.Turn)
	}
	if created.State != "UNFINISHED" {
		t.Fatalf("state = %q, want UNFINISHED", created.State)
	}
	if len(created.Board) != 64 {
		t.Fatalf("board has %d squares, want 64", len(created.Board))
	}
	if sq := created.Board["e2"]; sq == nil || sq.Type != "Pawn" || sq.Color != "w" {
		t.Fatalf("e2 = %+v, want white Pawn", sq)
	}
	if sq := created.Board["d8"]; sq == nil || sq.Type != "Queen" || sq.Color != "b" {
		t.Fatalf("d8 = %+v, want black Queen", sq)
	}
	if created.Board["d4"] != nil {
		t.Fatalf("d4 = %+v, want null", created.Board["d4"])
	}

	resp = doRequest(t, app, "GET", "/api/v1/games/"+created.GameID, "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("get game status = %d, want 200", resp.StatusCode)
	}
	var fetched GameResponse
	decodeJSON(t, resp, &fetched)
	if fetched.GameID != created.GameID {
		t.Fatalf("gameId = %q, want %q", fetched.GameID, created.GameID)
	}
}

func TestGetUnknownGame(t *testing.T) {
	app := newTestApp(t)

	resp := doRequest(t, app, "GET", "/api/v1/games/does-not-exist", "")
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	var er ErrorResponse
	decodeJSON(t, resp, &er)
	if er.Code != ErrGameNotFound {
		t.Fatalf("code = %q, want %q", er.Code, ErrGameNotFound)
	}
}

func TestMakeMove(t *testing.T) {
	app := newTestApp(t)
	id := createGame(t, app)

	resp := doRequest(t, app, "POST", "/api/v1/games/"+id+"/moves", `{"from":"e2","to":"e4"}`)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var gr GameResponse
	decodeJSON(t, resp, &gr)

	if gr.Turn != "b" {
		t.Fatalf("turn after move = %q, want b", gr.Turn)
	}
	if gr.LastMove == nil || gr.LastMove.From != "e2" || gr.LastMove.To != "e4" {
		t.Fatalf("lastMove = %+v", gr.LastMove)
	}
	if gr.LastMove.Captured != nil {
		t.Fatalf("captured = %+v, want nil", gr.LastMove.Captured)
	}
	if sq := gr.Board["e4"]; sq == nil || sq.Type != "Pawn" {
		t.Fatalf("e4 = %+v, want Pawn", sq)
	}
	if gr.Board["e2"] != nil {
		t.Fatalf("e2 = %+v, want null", gr.Board["e2"])
	}
}

func TestMoveWithCapture(t *testing.T) {
	app := newTestApp(t)
	id := createGame(t, app)

	for _, mv := range []string{
		`{"from":"e2","to":"e4"}`,
		`{"from":"d7","to":"d5"}`,
	} {
		resp := doRequest(t, app, "POST", "/api/v1/games/"+id+"/moves", mv)
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("setup move status = %d", resp.StatusCode)
		}
		resp.Body.Close()
	}

	resp := doRequest(t, app, "POST", "/api/v1/games/"+id+"/moves", `{"from":"e4","to":"d5"}`)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var gr GameResponse
	decodeJSON(t, resp, &gr)

	if gr.LastMove == nil || gr.LastMove.Captured == nil {
		t.Fatalf("lastMove = %+v, want a capture", gr.LastMove)
	}
	if gr.LastMove.Captured.Type != "Pawn" || gr.LastMove.Captured.Color != "b" {
		t.Fatalf("captured = %+v, want black Pawn", gr.LastMove.Captured)
	}
	if gr.State != "UNFINISHED" {
		t.Fatalf("state = %q, want UNFINISHED", gr.State)
	}
}

func TestMoveRejections(t *testing.T) {
	app := newTestApp(t)
	id := createGame(t, app)

	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{name: "illegal move", body: `{"from":"e2","to":"e5"}`, wantCode: ErrIllegalMove},
		{name: "empty origin", body: `{"from":"d4","to":"d5"}`, wantCode: ErrIllegalMove},
		{name: "out of turn", body: `{"from":"e7","to":"e5"}`, wantCode: ErrOutOfTurn},
		{name: "invalid coordinate", body: `{"from":"e9","to":"e4"}`, wantCode: ErrInvalidCoordinate},
		{name: "malformed coordinate", body: `{"from":"e22","to":"e4"}`, wantCode: ErrInvalidRequest},
		{name: "missing field", body: `{"from":"e2"}`, wantCode: ErrInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doRequest(t, app, "POST", "/api/v1/games/"+id+"/moves", tt.body)
			if resp.StatusCode != fiber.StatusBadRequest {
				t.Fatalf("status = %d, want 400", resp.StatusCode)
			}
			var er ErrorResponse
			decodeJSON(t, resp, &er)
			if er.Code != tt.wantCode {
				t.Fatalf("code = %q, want %q", er.Code, tt.wantCode)
			}
		})
	}
}

func TestMoveOnUnknownGame(t *testing.T) {
	app := newTestApp(t)

	resp := doRequest(t, app, "POST", "/api/v1/games/nope/moves", `{"from":"e2","to":"e4"}`)
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	var er ErrorResponse
	decodeJSON(t, resp, &er)
	if er.Code != ErrGameNotFound {
		t.Fatalf("code = %q, want %q", er.Code, ErrGameNotFound)
	}
}

func TestGetBoard(t *testing.T) {
	app := newTestApp(t)
	id := createGame(t, app)

	resp := doRequest(t, app, "GET", "/api/v1/games/"+id+"/board", "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var br BoardResponse
	decodeJSON(t, resp, &br)
	if !strings.Contains(br.Board, "R N B Q K B N R") {
		t.Fatalf("board rendering missing back rank:\n%s", br.Board)
	}
}

func TestSetTurn(t *testing.T) {
	app := newTestApp(t)
	id := createGame(t, app)

	resp := doRequest(t, app, "POST", "/api/v1/games/"+id+"/turn", `{"turn":"Black"}`)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var gr GameResponse
	decodeJSON(t, resp, &gr)
	if gr.Turn != "b" {
		t.Fatalf("turn = %q, want b", gr.Turn)
	}

	resp = doRequest(t, app, "POST", "/api/v1/games/"+id+"/turn", `{"turn":"purple"}`)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("bad color status = %d, want 400", resp.StatusCode)
	}
	var er ErrorResponse
	decodeJSON(t, resp, &er)
	if er.Code != ErrInvalidRequest {
		t.Fatalf("code = %q, want %q", er.Code, ErrInvalidRequest)
	}
}

func TestSaveWithoutStorage(t *testing.T) {
	app := newTestApp(t)
	id := createGame(t, app)

	resp := doRequest(t, app, "POST", "/api/v1/games/"+id+"/save", `{"slot":"1"}`)
	if resp.StatusCode != fiber.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", resp.StatusCode)
	}
	var er ErrorResponse
	decodeJSON(t, resp, &er)
	if er.Code != ErrStorageUnavailable {
		t.Fatalf("code = %q, want %q", er.Code, ErrStorageUnavailable)
	}
}

func TestDeleteGame(t *testing.T) {
	app := newTestApp(t)
	id := createGame(t, app)

	resp := doRequest(t, app, "DELETE", "/api/v1/games/"+id, "")
	if resp.StatusCode != fiber.StatusNoContent {
		t.Fatalf("status = %d, want 204", resp.StatusCode)
	}
	resp.Body.Close()

	resp = doRequest(t, app, "GET", "/api/v1/games/"+id, "")
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("status after delete = %d, want 404", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestContentTypeRejected(t *testing.T) {
	app := newTestApp(t)
	id := createGame(t, app)

	req := httptest.NewRequest("POST", "/api/v1/games/"+id+"/moves",
		strings.NewReader(`{"from":"e2","to":"e4"}`))
	req.Header.Set("Content-Type", "text/plain")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnsupportedMediaType {
		t.Fatalf("status = %d, want 415", resp.StatusCode)
	}
	var er ErrorResponse
	decodeJSON(t, resp, &er)
	if er.Code != ErrInvalidContent {
		t.Fatalf("code = %q, want %q", er.Code, ErrInvalidContent)
	}
}
