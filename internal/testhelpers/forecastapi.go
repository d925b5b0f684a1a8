// Package testhelpers provides a fake OpenWeatherMap forecast API for tests.
package testhelpers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/gorilla/mux"
)

// ForecastPath is the route served by FakeForecastAPI, matching the real API.
const ForecastPath = "/data/2.5/forecast"

// Sample is one forecast entry in a fake payload.
type Sample struct {
	DtTxt       string
	TempK       float64
	Description string
}

// ForecastBody builds a payload shaped like the real forecast response.
func ForecastBody(samples ...Sample) map[string]interface{} {
	list := make([]map[string]interface{}, 0, len(samples))
	for _, s := range samples {
		list = append(list, map[string]interface{}{
			"dt_txt": s.DtTxt,
			"main":   map[string]interface{}{"temp": s.TempK},
			"weather": []map[string]interface{}{
				{"description": s.Description},
			},
		})
	}
	return map[string]interface{}{"cod": "200", "cnt": len(list), "list": list}
}

// RecordedRequest captures what the fake API received.
type RecordedRequest struct {
	City          string
	AppID         string
	Query         url.Values
	CorrelationID string
}

type cannedResponse struct {
	status int
	body   []byte
}

// FakeForecastAPI serves canned forecast responses per city. Requests with an
// appid other than the configured key get 401; unknown cities get 404.
type FakeForecastAPI struct {
	Server *httptest.Server

	apiKey string

	mu        sync.Mutex
	responses map[string]cannedResponse
	requests  []RecordedRequest
}

// NewFakeForecastAPI starts the fake server and registers its cleanup with t.
func NewFakeForecastAPI(t testing.TB, apiKey string) *FakeForecastAPI {
	t.Helper()
	f := &FakeForecastAPI{
		apiKey:    apiKey,
		responses: make(map[string]cannedResponse),
	}

	router := mux.NewRouter()
	router.HandleFunc(ForecastPath, f.handleForecast).
		Methods(http.MethodGet).
		Queries("q", "{city}")
	router.HandleFunc(ForecastPath, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"cod": "400", "message": "Nothing to geocode"})
	}).Methods(http.MethodGet)

	f.Server = httptest.NewServer(router)
	t.Cleanup(f.Server.Close)
	return f
}

// URL returns the forecast endpoint URL of the fake server.
func (f *FakeForecastAPI) URL() string {
	return f.Server.URL + ForecastPath
}

// SetForecast makes city answer 200 with payload encoded as JSON.
func (f *FakeForecastAPI) SetForecast(city string, payload interface{}) {
	raw, err := json.Marshal(payload)
	if err != nil {
		panic(err)
	}
	f.SetRaw(city, http.StatusOK, string(raw))
}

// SetStatus makes city answer with code and an OpenWeatherMap style error body.
func (f *FakeForecastAPI) SetStatus(city string, code int) {
	raw, _ := json.Marshal(map[string]interface{}{"cod": code, "message": http.StatusText(code)})
	f.SetRaw(city, code, string(raw))
}

// SetRaw makes city answer with code and body verbatim.
func (f *FakeForecastAPI) SetRaw(city string, code int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[city] = cannedResponse{status: code, body: []byte(body)}
}

// Requests returns the requests received so far, in order.
func (f *FakeForecastAPI) Requests() []RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]RecordedRequest, len(f.requests))
	copy(out, f.requests)
	return out
}

func (f *FakeForecastAPI) handleForecast(w http.ResponseWriter, r *http.Request) {
	city := mux.Vars(r)["city"]
	query := r.URL.Query()

	f.mu.Lock()
	f.requests = append(f.requests, RecordedRequest{
		City:          city,
		AppID:         query.Get("appid"),
		Query:         query,
		CorrelationID: r.Header.Get("X-Correlation-ID"),
	})
	resp, ok := f.responses[city]
	f.mu.Unlock()

	if query.Get("appid") != f.apiKey {
		writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
			"cod":     http.StatusUnauthorized,
			"message": "Invalid API key. Please see https://openweathermap.org/faq#error401 for more info.",
		})
		return
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{"cod": "404", "message": "city not found"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.status)
	_, _ = w.Write(resp.body)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
