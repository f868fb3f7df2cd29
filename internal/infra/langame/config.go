package langame

import (
	"context"

	"github.com/Spok95/smart-price/internal/domain/pricing"
	"github.com/Spok95/smart-price/internal/domain/timewindow"
)

// ClubConfig — конфигурация клуба, собранная из API: справочники имён,
// временные окна тарифов, календарь типов дня и привязка ПК к зонам.
type ClubConfig struct {
	Tariffs  map[int64]string
	Zones    map[int64]string
	Days     map[int64]string
	Windows  map[timewindow.Key]timewindow.Window
	Calendar map[string]int64 // дата YYYY-MM-DD -> id типа дня
	PCZone   map[string]int64 // нормализованный номер ПК -> id зоны
}

func (c *ClubConfig) Names() timewindow.Names {
	return timewindow.Names{Zones: c.Zones, Days: c.Days, Tariffs: c.Tariffs}
}

// FetchConfig скачивает конфигурацию клуба. Упавшие вызовы дают пустые
// справочники: отчёт просто выйдет беднее.
func (c *Client) FetchConfig(ctx context.Context) *ClubConfig {
	cfg := &ClubConfig{
		Tariffs:  map[int64]string{},
		Zones:    map[int64]string{},
		Days:     map[int64]string{},
		Windows:  map[timewindow.Key]timewindow.Window{},
		Calendar: map[string]int64{},
		PCZone:   map[string]int64{},
	}

	for _, t := range c.list(ctx, "/tariffs/types_groups/list") {
		if id, ok := asInt64(t["id"]); ok {
			cfg.Tariffs[id] = asString(t["name"])
		}
	}
	for _, z := range c.list(ctx, "/global/types_of_pc_in_clubs/list") {
		if id, ok := asInt64(z["id"]); ok {
			cfg.Zones[id] = asString(z["name"])
		}
	}
	for _, d := range c.list(ctx, "/tariffs/groups/list") {
		if id, ok := asInt64(d["id"]); ok {
			cfg.Days[id] = asString(d["name"])
		}
	}

	for _, p := range c.list(ctx, "/tariffs/time_period/list") {
		tid, okT := asInt64(p["tariff_packet_id"])
		zid, okZ := asInt64(p["packets_type_PC"])
		did, okD := asInt64(p["tariff_groups"])
		if !okT || !okZ || !okD {
			continue
		}
		from, okFrom := toHour(asString(p["time_from"]))
		to, okTo := toHour(asString(p["time_to"]))
		if !okFrom || !okTo {
			continue
		}
		cfg.Windows[timewindow.Key{Zone: zid, Day: did, Tariff: tid}] = timewindow.Window{Start: from, End: to}
	}

	for _, d := range c.list(ctx, "/tariffs/by_days/list") {
		date := asString(d["date"])
		if did, ok := asInt64(d["tariff_groups"]); ok && date != "" {
			cfg.Calendar[date] = did
		}
	}

	zoneIDs := map[int64]struct{}{}
	for id := range cfg.Zones {
		zoneIDs[id] = struct{}{}
	}
	for _, l := range c.list(ctx, "/global/linking_pc_by_type/list") {
		num := asString(l["pc_number"])
		if num == "" {
			num = asString(l["name"])
		}
		zid, ok := asInt64(l["packets_type_PC"])
		if !ok {
			continue
		}
		// привязки к несуществующим зонам отбрасываем
		if _, known := zoneIDs[zid]; !known {
			continue
		}
		if n := pricing.Normalize(num); n != "" {
			cfg.PCZone[n] = zid
		}
	}

	c.log.Info("конфигурация клуба получена",
		"tariffs", len(cfg.Tariffs), "zones", len(cfg.Zones),
		"windows", len(cfg.Windows), "pcs", len(cfg.PCZone))
	return cfg
}
