package langame

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Spok95/smart-price/internal/domain/timewindow"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFetchConfig(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-API-KEY") != "secret" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		switch r.URL.Path {
		case "/tariffs/types_groups/list":
			// голый массив
			_, _ = w.Write([]byte(`[{"id":1,"name":"1 час"},{"id":2,"name":"Ночь"}]`))
		case "/global/types_of_pc_in_clubs/list":
			// конверт data
			_, _ = w.Write([]byte(`{"data":[{"id":10,"name":"Standard"}]}`))
		case "/tariffs/groups/list":
			// конверт items
			_, _ = w.Write([]byte(`{"items":[{"id":100,"name":"Будни"}]}`))
		case "/tariffs/time_period/list":
			_, _ = w.Write([]byte(`[{"tariff_packet_id":1,"packets_type_PC":10,"tariff_groups":100,"time_from":"08:30:00","time_to":"17:00:00"}]`))
		case "/tariffs/by_days/list":
			_, _ = w.Write([]byte(`[{"date":"2025-01-14","tariff_groups":100}]`))
		case "/global/linking_pc_by_type/list":
			_, _ = w.Write([]byte(`[{"pc_number":"PC-01","packets_type_PC":10},{"pc_number":"PC-02","packets_type_PC":99}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, "secret", discard())
	cfg := c.FetchConfig(context.Background())

	if cfg.Tariffs[1] != "1 час" || cfg.Zones[10] != "Standard" || cfg.Days[100] != "Будни" {
		t.Errorf("dictionaries = %+v %+v %+v", cfg.Tariffs, cfg.Zones, cfg.Days)
	}

	w, ok := cfg.Windows[timewindow.Key{Zone: 10, Day: 100, Tariff: 1}]
	if !ok || w.Start != 8.5 || w.End != 17 {
		t.Errorf("window = (%+v, %v), want 8.5..17", w, ok)
	}

	if cfg.Calendar["2025-01-14"] != 100 {
		t.Errorf("calendar = %+v", cfg.Calendar)
	}

	if cfg.PCZone["pc-01"] != 10 {
		t.Errorf("pc map = %+v, want pc-01 -> 10", cfg.PCZone)
	}
	if _, ok := cfg.PCZone["pc-02"]; ok {
		t.Errorf("pc linked to unknown zone must be dropped")
	}
}

func TestFailedCallYieldsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, "secret", discard())
	cfg := c.FetchConfig(context.Background())
	if len(cfg.Tariffs) != 0 || len(cfg.Windows) != 0 {
		t.Errorf("failing API must yield empty config, got %+v", cfg)
	}
}
