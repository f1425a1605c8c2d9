package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// PlanPolicy describes the entitlement rules for every plan tier. It is kept
// hot-reloadable so quota changes do not require a redeploy.
type PlanPolicy struct {
	TrialDays         int                 `mapstructure:"trialDays"`
	MaxFreeListings   int                 `mapstructure:"maxFreeListings"`
	UnlimitedListings int                 `mapstructure:"unlimitedListings"`
	DefaultSeatLimit  int                 `mapstructure:"defaultSeatLimit"`
	SeatLimits        map[string]int      `mapstructure:"seatLimits"`
	Features          map[string][]string `mapstructure:"features"`
}

func DefaultPlanPolicy() PlanPolicy {
	return PlanPolicy{
		TrialDays:         30,
		MaxFreeListings:   15,
		UnlimitedListings: 99,
		DefaultSeatLimit:  1,
		SeatLimits: map[string]int{
			"free":     2,
			"premium":  3,
			"pro":      8,
			"platinum": 99,
		},
		Features: map[string][]string{
			"free":     {},
			"premium":  {},
			"pro":      {"analytics.pro"},
			"platinum": {"analytics.pro", "analytics.platinum"},
		},
	}
}

type PlanConfigHolder struct {
	current atomic.Value // holds PlanPolicy
}

func NewPlanConfigHolder() (*PlanConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("plans")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/dealercommand/config") // Volume-mounted config
	v.AddConfigPath("/etc/dealercommand")            // System config
	v.AddConfigPath(".")                             // Current directory (dev mode)

	v.SetEnvPrefix("DEALERCOMMAND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultPlanPolicy()
		v.SetDefault("plans.trialDays", defaults.TrialDays)
		v.SetDefault("plans.maxFreeListings", defaults.MaxFreeListings)
		v.SetDefault("plans.unlimitedListings", defaults.UnlimitedListings)
		v.SetDefault("plans.defaultSeatLimit", defaults.DefaultSeatLimit)
		v.SetDefault("plans.seatLimits", defaults.SeatLimits)
		v.SetDefault("plans.features", defaults.Features)
	}

	var policy PlanPolicy
	if err := v.UnmarshalKey("plans", &policy); err != nil {
		return nil, err
	}
	if err := validatePlanPolicy(policy); err != nil {
		return nil, err
	}

	holder := &PlanConfigHolder{}
	holder.current.Store(policy)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated PlanPolicy
		if err := v.UnmarshalKey("plans", &updated); err != nil {
			log.Printf("[plan-config] reload failed: %v", err)
			return
		}
		if err := validatePlanPolicy(updated); err != nil {
			log.Printf("[plan-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[plan-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *PlanConfigHolder) Get() PlanPolicy {
	return h.current.Load().(PlanPolicy)
}

// Set replaces the current policy. The file watcher uses the same store;
// tests call it directly.
func (h *PlanConfigHolder) Set(policy PlanPolicy) {
	h.current.Store(policy)
}

// NewStaticPlanConfigHolder returns a holder pinned to the given policy. Tests
// use it to avoid touching the filesystem.
func NewStaticPlanConfigHolder(policy PlanPolicy) *PlanConfigHolder {
	holder := &PlanConfigHolder{}
	holder.current.Store(policy)
	return holder
}

func validatePlanPolicy(policy PlanPolicy) error {
	if policy.TrialDays <= 0 {
		return errors.New("plans.trialDays must be positive")
	}
	if policy.MaxFreeListings < 0 {
		return errors.New("plans.maxFreeListings cannot be negative")
	}
	if policy.DefaultSeatLimit <= 0 {
		return errors.New("plans.defaultSeatLimit must be positive")
	}
	if len(policy.SeatLimits) == 0 {
		return errors.New("plans.seatLimits cannot be empty")
	}
	return nil
}
