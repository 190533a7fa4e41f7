package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// CollectionsConfig drives how the collections view labels debtors.
// Aging buckets are matched against a client's maximum days overdue,
// risk levels against the combination of overdue balance and days.
type CollectionsConfig struct {
	AgingBuckets []AgingBucket `mapstructure:"agingBuckets"`
	RiskLevels   []RiskLevel   `mapstructure:"riskLevels"`
}

type AgingBucket struct {
	Label   string `mapstructure:"label"`
	MinDays int    `mapstructure:"minDays"`
	MaxDays *int   `mapstructure:"maxDays"`
}

type RiskLevel struct {
	Level          string  `mapstructure:"level"`
	MinOutstanding float64 `mapstructure:"minOutstanding"`
	MinDays        int     `mapstructure:"minDays"`
}

func DefaultCollectionsConfig() CollectionsConfig {
	return CollectionsConfig{
		AgingBuckets: []AgingBucket{
			{Label: "0-30", MinDays: 0, MaxDays: intPtr(30)},
			{Label: "31-60", MinDays: 31, MaxDays: intPtr(60)},
			{Label: "61-90", MinDays: 61, MaxDays: intPtr(90)},
			{Label: "90+", MinDays: 91, MaxDays: nil},
		},
		RiskLevels: []RiskLevel{
			{Level: "high", MinOutstanding: 50_000, MinDays: 60},
			{Level: "medium", MinOutstanding: 10_000, MinDays: 31},
			{Level: "low", MinOutstanding: 0, MinDays: 0},
		},
	}
}

func intPtr(v int) *int { return &v }

// CollectionsConfigHolder exposes the current collections policy and swaps it
// atomically when the backing file changes.
type CollectionsConfigHolder struct {
	current atomic.Value // holds CollectionsConfig
}

func NewCollectionsConfigHolder() (*CollectionsConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("collections")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/ledgerdesk/config")
	v.AddConfigPath("/etc/ledgerdesk")
	v.AddConfigPath(".")

	v.SetEnvPrefix("LEDGERDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultCollectionsConfig()
		v.SetDefault("collections.agingBuckets", defaults.AgingBuckets)
		v.SetDefault("collections.riskLevels", defaults.RiskLevels)
	}

	var cfg CollectionsConfig
	if err := v.UnmarshalKey("collections", &cfg); err != nil {
		return nil, err
	}
	if err := validateCollectionsConfig(cfg); err != nil {
		return nil, err
	}

	holder := &CollectionsConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated CollectionsConfig
		if err := v.UnmarshalKey("collections", &updated); err != nil {
			log.Printf("[collections-config] reload failed: %v", err)
			return
		}
		if err := validateCollectionsConfig(updated); err != nil {
			log.Printf("[collections-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[collections-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

// NewStaticCollectionsConfigHolder pins the holder to a fixed config. Used in tests.
func NewStaticCollectionsConfigHolder(cfg CollectionsConfig) *CollectionsConfigHolder {
	holder := &CollectionsConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func (h *CollectionsConfigHolder) Get() CollectionsConfig {
	return h.current.Load().(CollectionsConfig)
}

func validateCollectionsConfig(cfg CollectionsConfig) error {
	if len(cfg.AgingBuckets) == 0 {
		return errors.New("collections.agingBuckets cannot be empty")
	}
	if len(cfg.RiskLevels) == 0 {
		return errors.New("collections.riskLevels cannot be empty")
	}
	return nil
}
