package locnorm

import (
	"sync"

	"github.com/kelvins/geocoder"
	"go.uber.org/zap"
)

// Geocoded layers the Google geocoding API over the static tables: cities the
// tables don't know are forward/reverse geocoded to find their state. Lookups
// are cached so a session's follow-up turns don't re-query. One Geocoded
// instance serves every concurrent turn, so the cache is mutex-guarded.
type Geocoded struct {
	static Static
	log    *zap.Logger

	mu     sync.RWMutex
	cache  map[string]string
	lookup func(city string) string
}

// NewGeocoded configures the geocoder API key and returns the layered
// normalizer. Callers should fall back to NewStatic when no key is set.
func NewGeocoded(apiKey string, log *zap.Logger) *Geocoded {
	geocoder.ApiKey = apiKey
	g := &Geocoded{
		static: NewStatic(),
		log:    log,
		cache:  make(map[string]string),
	}
	g.lookup = g.geocode
	return g
}

func (g *Geocoded) ExpandCity(city string) string { return g.static.ExpandCity(city) }

func (g *Geocoded) ProbableCity(state string) string { return g.static.ProbableCity(state) }

func (g *Geocoded) StateName(abbrev string) string { return g.static.StateName(abbrev) }

func (g *Geocoded) ProbableState(city, state string) string {
	if s := g.static.ProbableState(city, state); s != "" {
		return s
	}
	if state != "" || city == "" {
		return ""
	}

	g.mu.RLock()
	cached, ok := g.cache[city]
	g.mu.RUnlock()
	if ok {
		return cached
	}

	inferred := g.lookup(city)

	g.mu.Lock()
	g.cache[city] = inferred
	g.mu.Unlock()
	return inferred
}

func (g *Geocoded) geocode(city string) string {
	location, err := geocoder.Geocoding(geocoder.Address{City: city, Country: "US"})
	if err != nil {
		g.log.Debug("geocoding failed", zap.String("city", city), zap.Error(err))
		return ""
	}

	addresses, err := geocoder.GeocodingReverse(location)
	if err != nil {
		g.log.Debug("reverse geocoding failed", zap.String("city", city), zap.Error(err))
		return ""
	}

	for _, addr := range addresses {
		if addr.State == "" {
			continue
		}
		if ab := abbrevFor(addr.State); ab != "" {
			return ab
		}
	}
	return ""
}
