package configstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/singleflight"

	"github.com/waynenilsen/safeworkout/internal/domain/profile"
	"github.com/waynenilsen/safeworkout/internal/domain/rules"
	"github.com/waynenilsen/safeworkout/internal/envdefaults"
)

// Row is one config row as persisted by the repository layer: a category
// discriminator, an optional sub-key (surgery type, binder type, or
// dysphoria trigger), and the raw JSON payload for that category's shape.
type Row struct {
	Category string
	SubKey   string
	Config   json.RawMessage
	IsActive bool
}

// Row categories, matching the repository's rule_configs.rule_category values.
const (
	CategoryHRTEstrogenPhases     = "hrt_estrogen_phases"
	CategoryHRTTestosteronePhases = "hrt_testosterone_phases"
	CategoryHRTDualPhases         = "hrt_dual_phases"
	CategoryHRTBodyDistribution   = "hrt_body_distribution"
	CategoryBinding               = "binding"
	CategoryPostOp                = "post_op"
	CategoryDysphoria             = "dysphoria"
)

// Source fetches the current set of config rows from durable storage.
// internal/repository.ConfigRepository implements this.
type Source interface {
	FetchRows(ctx context.Context) ([]Row, error)
}

// knobs are the loader's environment-tunable constants.
type knobs struct {
	TTL time.Duration `env:"CONFIG_CACHE_TTL" envDefault:"1h"`
}

// Loader wraps a Source with a TTL cache, singleflight request collapsing,
// and a conservative fallback path. Load never fails its caller: an
// unreachable or malformed store falls back to the last known good config,
// or the package's built-in defaults if none has ever been loaded.
type Loader struct {
	source Source
	ttl    time.Duration
	diag   *log.Logger

	mu       sync.RWMutex
	cached   *Config
	expireAt time.Time

	group singleflight.Group
}

// NewLoader builds a Loader. diag receives diagnostics lines (phase overlap
// warnings, fetch failures); pass log.New(io.Discard, "", 0) to silence it.
func NewLoader(source Source, diag *log.Logger) *Loader {
	var k knobs
	if err := envdefaults.Populate(&k, os.LookupEnv); err != nil {
		k.TTL = time.Hour
	}
	if diag == nil {
		diag = log.New(os.Stderr, "configstore: ", log.LstdFlags)
	}
	return &Loader{source: source, ttl: k.TTL, diag: diag}
}

// Load returns the cached config if its age is within the TTL. Otherwise it
// fetches fresh rows, normalizes them, and caches the result. Concurrent
// callers during a miss collapse into a single in-flight fetch. On fetch or
// normalization failure, the last successful config is returned if one
// exists, else the package's built-in defaults — Load itself never
// returns an error.
func (l *Loader) Load(ctx context.Context) *Config {
	l.mu.RLock()
	if l.cached != nil && time.Now().Before(l.expireAt) {
		cfg := l.cached
		l.mu.RUnlock()
		return cfg
	}
	l.mu.RUnlock()

	result, err, _ := l.group.Do("load", func() (any, error) {
		rows, ferr := l.source.FetchRows(ctx)
		if ferr != nil {
			return nil, ferr
		}
		cfg, nerr := normalizeRows(rows, l.diag)
		if nerr != nil {
			return nil, nerr
		}
		l.mu.Lock()
		l.cached = cfg
		l.expireAt = time.Now().Add(l.ttl)
		l.mu.Unlock()
		return cfg, nil
	})
	if err != nil {
		l.diag.Printf("config fetch failed, falling back: %v", err)
		return l.fallback()
	}
	return result.(*Config)
}

// lastFetchedAt reports when the cached config was fetched, for diagnostics
// logging on fallback. Safe to call with l.mu held or not.
func (l *Loader) lastFetchedAt() time.Time {
	if l.expireAt.IsZero() {
		return time.Time{}
	}
	return l.expireAt.Add(-l.ttl)
}

// ClearCache expires the cached config, forcing the next Load to fetch. The
// expired config is kept as the last known good config, served if that
// fetch fails. Intended for tests.
func (l *Loader) ClearCache() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.expireAt = time.Time{}
}

func (l *Loader) fallback() *Config {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.cached != nil {
		if fetchedAt := l.lastFetchedAt(); !fetchedAt.IsZero() {
			l.diag.Printf("serving last known good config, fetched %s", humanize.Time(fetchedAt))
		}
		return l.cached
	}
	l.diag.Printf("no cached config available, falling back to built-in defaults")
	return builtinDefaults()
}

// normalizeRows converts durable rows into a typed Config, detecting
// overlapping phase intervals within each phase table and keeping the
// first-seen phase on overlap (logging a diagnostics warning), per the
// loader's documented conflict-resolution rule.
func normalizeRows(rows []Row, diag *log.Logger) (*Config, error) {
	cfg := builtinDefaults()

	var (
		estrogenSeen, testosteroneSeen, dualSeen bool
		postOpSeen                               = map[profile.SurgeryType]bool{}
	)

	for _, r := range rows {
		if !r.IsActive {
			continue
		}
		switch r.Category {
		case CategoryHRTEstrogenPhases:
			phases, err := decodePhaseTable(r.Config)
			if err != nil {
				return nil, fmt.Errorf("hrt_estrogen_phases: %w", err)
			}
			if !estrogenSeen {
				cfg.HRTEstrogenPhases = dedupeOverlaps(phases, diag, "hrt_estrogen_phases")
				estrogenSeen = true
			}
		case CategoryHRTTestosteronePhases:
			phases, err := decodePhaseTable(r.Config)
			if err != nil {
				return nil, fmt.Errorf("hrt_testosterone_phases: %w", err)
			}
			if !testosteroneSeen {
				cfg.HRTTestosteronePhases = dedupeOverlaps(phases, diag, "hrt_testosterone_phases")
				testosteroneSeen = true
			}
		case CategoryHRTDualPhases:
			phases, err := decodePhaseTable(r.Config)
			if err != nil {
				return nil, fmt.Errorf("hrt_dual_phases: %w", err)
			}
			if !dualSeen {
				cfg.HRTDualPhases = dedupeOverlaps(phases, diag, "hrt_dual_phases")
				dualSeen = true
			}
		case CategoryHRTBodyDistribution:
			dist, err := decodeBodyDistribution(r.Config)
			if err != nil {
				return nil, fmt.Errorf("hrt_body_distribution: %w", err)
			}
			cfg.DualBodyDistribution = dist
		case CategoryBinding:
			binderType := profile.BinderType(r.SubKey)
			b, err := decodeBindingConfig(r.Config)
			if err != nil {
				return nil, fmt.Errorf("binding.%s: %w", r.SubKey, err)
			}
			if cfg.BindingPacks == nil {
				cfg.BindingPacks = map[profile.BinderType]BindingConfig{}
			}
			cfg.BindingPacks[binderType] = b
		case CategoryPostOp:
			surgery := profile.SurgeryType(r.SubKey)
			phases, err := decodePhaseTable(r.Config)
			if err != nil {
				return nil, fmt.Errorf("post_op.%s: %w", r.SubKey, err)
			}
			if !postOpSeen[surgery] {
				if cfg.PostOpPhases == nil {
					cfg.PostOpPhases = map[profile.SurgeryType][]PhaseConfig{}
				}
				cfg.PostOpPhases[surgery] = dedupeOverlaps(phases, diag, "post_op."+r.SubKey)
				postOpSeen[surgery] = true
			}
		case CategoryDysphoria:
			trigger := profile.DysphoriaTrigger(r.SubKey)
			d, err := decodeDysphoriaConfig(r.Config)
			if err != nil {
				return nil, fmt.Errorf("dysphoria.%s: %w", r.SubKey, err)
			}
			if cfg.DysphoriaConfigs == nil {
				cfg.DysphoriaConfigs = map[profile.DysphoriaTrigger]DysphoriaConfig{}
			}
			cfg.DysphoriaConfigs[trigger] = d
		default:
			diag.Printf("unrecognized config row category %q, ignoring", r.Category)
		}
	}

	return cfg, nil
}

// dedupeOverlaps drops every phase whose interval overlaps a previously
// kept one, so the first-seen phase wins, logging a diagnostics warning for
// each dropped phase. Kept phases are returned in their original order.
func dedupeOverlaps(phases []PhaseConfig, diag *log.Logger, tableName string) []PhaseConfig {
	var kept []PhaseConfig
	for _, p := range phases {
		overlap := false
		for _, k := range kept {
			if p.Start < k.End && k.Start < p.End {
				overlap = true
				break
			}
		}
		if overlap {
			diag.Printf("%s: phase [%.1f,%.1f) overlaps an earlier phase, keeping the first and dropping this one", tableName, p.Start, p.End)
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

func decodePhaseTable(raw json.RawMessage) ([]PhaseConfig, error) {
	var phases []PhaseConfig
	if err := json.Unmarshal(raw, &phases); err != nil {
		return nil, err
	}
	return phases, nil
}

func decodeBindingConfig(raw json.RawMessage) (BindingConfig, error) {
	var b BindingConfig
	if err := json.Unmarshal(raw, &b); err != nil {
		return BindingConfig{}, err
	}
	return b, nil
}

func decodeDysphoriaConfig(raw json.RawMessage) (DysphoriaConfig, error) {
	var d DysphoriaConfig
	if err := json.Unmarshal(raw, &d); err != nil {
		return DysphoriaConfig{}, err
	}
	return d, nil
}

func decodeBodyDistribution(raw json.RawMessage) (map[profile.Goal]rules.ParameterModification, error) {
	// The row stores a plain goal-keyed map of volume percentages rather
	// than a full modification payload, so it's decoded into a narrow
	// shape first and lifted into ParameterModification afterward.
	var flat map[profile.Goal]struct {
		LowerBodyVolumePercent *float64 `json:"lowerBodyVolumePercent"`
		UpperBodyVolumePercent *float64 `json:"upperBodyVolumePercent"`
	}
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, err
	}
	out := make(map[profile.Goal]rules.ParameterModification, len(flat))
	for goal, v := range flat {
		out[goal] = rules.ParameterModification{
			LowerBodyVolumePercent: v.LowerBodyVolumePercent,
			UpperBodyVolumePercent: v.UpperBodyVolumePercent,
		}
	}
	return out, nil
}
