package config

import (
	"os"
	"strings"

	"github.com/Spok95/smart-price/internal/domain/recommend"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

type Config struct {
	App struct {
		Env      string
		Timezone string
	} `mapstructure:"app"`

	Inputs struct {
		Price       string // прайс: зоны, ПК, тарифная сетка
		Sales       string // выгрузка «Покупка пакетов»
		Competitors string // опционально: цены конкурентов
	} `mapstructure:"inputs"`

	Outputs struct {
		Dir        string
		Dashboard  string `mapstructure:"dashboard"`
		TimeReport string `mapstructure:"time_report"`
	} `mapstructure:"outputs"`

	Thresholds recommend.Thresholds `mapstructure:"thresholds"`

	Langame struct {
		BaseURL string `mapstructure:"base_url"`
		APIKey  string `mapstructure:"api_key"`
	} `mapstructure:"langame"`

	Serve struct {
		Enabled bool
		Addr    string
	} `mapstructure:"serve"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`

	Telegram struct {
		Token       string
		AdminChatID int64 `mapstructure:"admin_chat_id"`
	} `mapstructure:"telegram"`

	CompetitorsTemplate struct {
		Write bool
		Path  string
	} `mapstructure:"competitors_template"`
}

func Load(path string) (Config, error) {
	// .env подхватываем до viper: там живёт LANGAME_API_KEY
	_ = gotenv.Load()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("APP")
	// без реплейсера вложенные ключи (inputs.price) не находят APP_INPUTS_PRICE
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("app.env", "prod")
	v.SetDefault("outputs.dir", ".")
	v.SetDefault("outputs.dashboard", "FLYER_WITH_STATS.html")
	v.SetDefault("outputs.time_report", "TIME_REPORT.html")
	setThresholdDefaults(v)

	var c Config
	if err := v.ReadInConfig(); err != nil {
		return c, err
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}

	if c.Langame.APIKey == "" {
		c.Langame.APIKey = os.Getenv("LANGAME_API_KEY")
	}
	return c, nil
}

func setThresholdDefaults(v *viper.Viper) {
	d := recommend.Defaults()
	v.SetDefault("thresholds.peak_raise_pct", d.PeakRaisePct)
	v.SetDefault("thresholds.avg_raise_pct", d.AvgRaisePct)
	v.SetDefault("thresholds.bonus_load_pct", d.BonusLoadPct)
	v.SetDefault("thresholds.promo_load_pct", d.PromoLoadPct)
	v.SetDefault("thresholds.promo_peak_cap_pct", d.PromoPeakCapPct)
	v.SetDefault("thresholds.peak_raise_factor", d.PeakRaiseFactor)
	v.SetDefault("thresholds.avg_raise_factor", d.AvgRaiseFactor)
	v.SetDefault("thresholds.promo_factor", d.PromoFactor)
	v.SetDefault("thresholds.bonus_limit_pct", d.BonusLimitPct)
}
