package telegram

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type apiCall struct {
	method string
	form   url.Values
}

// fakeAPI — минимальный Bot API для тестов адаптера.
type fakeAPI struct {
	mu      sync.Mutex
	calls   []apiCall
	results map[string]func(form url.Values) (int, string)
}

func newFakeAPI(t *testing.T) (*fakeAPI, *tgbotapi.BotAPI) {
	t.Helper()
	api := &fakeAPI{results: map[string]func(url.Values) (int, string){
		"getMe": func(url.Values) (int, string) {
			return http.StatusOK, `{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"gate","username":"gate_bot"}}`
		},
	}}
	srv := httptest.NewServer(http.HandlerFunc(api.serve))
	t.Cleanup(srv.Close)

	bot, err := tgbotapi.NewBotAPIWithAPIEndpoint("123:abc", srv.URL+"/bot%s/%s")
	if err != nil {
		t.Fatalf("create bot: %v", err)
	}
	return api, bot
}

func (a *fakeAPI) handle(method string, fn func(form url.Values) (int, string)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.results[method] = fn
}

func (a *fakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	method := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]

	a.mu.Lock()
	a.calls = append(a.calls, apiCall{method: method, form: r.PostForm})
	fn, ok := a.results[method]
	a.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"ok":false,"error_code":404,"description":"Not Found: method not found"}`))
		return
	}
	status, body := fn(r.PostForm)
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func (a *fakeAPI) callsTo(method string) []apiCall {
	a.mu.Lock()
	defer a.mu.Unlock()
	var out []apiCall
	for _, c := range a.calls {
		if c.method == method {
			out = append(out, c)
		}
	}
	return out
}

func decodeKeyboard(t *testing.T, raw string) tgbotapi.InlineKeyboardMarkup {
	t.Helper()
	var kb tgbotapi.InlineKeyboardMarkup
	if err := json.Unmarshal([]byte(raw), &kb); err != nil {
		t.Fatalf("decode reply_markup %q: %v", raw, err)
	}
	return kb
}
