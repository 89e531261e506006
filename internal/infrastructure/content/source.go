// Package content supplies the randomised briefing fragments (market
// condition, economic outlook, KPI readings) from fixed option pools. The
// selection sits behind an explicit seed so tests can pin the output.
package content

import (
	"math/rand"
	"time"

	"github.com/mtb-io/mercury-ci/internal/core/domain"
)

var marketConditions = []string{
	"mixed signals with technology stocks leading gains",
	"positive momentum across most sectors",
	"volatility in traditional sectors with growth in emerging markets",
	"stabilising trends following recent market adjustments",
}

var economicOutlooks = []string{
	"continued growth momentum with inflation remaining within target ranges",
	"cautious optimism with some sector-specific challenges",
	"strong fundamentals supporting sustained growth",
	"mixed signals requiring careful monitoring of key indicators",
}

type kpiTemplate struct {
	metric  string
	values  []string
	changes []string
	trends  []string
}

var kpiTemplates = []kpiTemplate{
	{
		metric:  "Market Sentiment",
		values:  []string{"Positive", "Neutral", "Cautious"},
		changes: []string{"+3%", "+5%", "+2%"},
		trends:  []string{"up", "flat", "up"},
	},
	{
		metric:  "Volatility Index",
		values:  []string{"18.2", "15.8", "22.1"},
		changes: []string{"-2.1", "-1.5", "+0.8"},
		trends:  []string{"down", "down", "up"},
	},
	{
		metric:  "Sector Performance",
		values:  []string{"Tech +3.2%", "Energy +1.8%", "Finance +2.1%"},
		changes: []string{"+1.8%", "+0.9%", "+1.2%"},
		trends:  []string{"up", "up", "up"},
	},
	{
		metric:  "Economic Confidence",
		values:  []string{"78%", "82%", "75%"},
		changes: []string{"+4%", "+2%", "+6%"},
		trends:  []string{"up", "up", "up"},
	},
}

type Source struct {
	rng *rand.Rand
}

// NewSource seeds the generator; seed 0 means non-deterministic.
func NewSource(seed int64) *Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Source{rng: rand.New(rand.NewSource(seed))}
}

func (s *Source) MarketCondition() string {
	return marketConditions[s.rng.Intn(len(marketConditions))]
}

func (s *Source) EconomicOutlook() string {
	return economicOutlooks[s.rng.Intn(len(economicOutlooks))]
}

// KPIs picks one reading per template; the metric set itself is fixed.
func (s *Source) KPIs() []domain.KPI {
	out := make([]domain.KPI, 0, len(kpiTemplates))
	for _, t := range kpiTemplates {
		i := s.rng.Intn(len(t.values))
		out = append(out, domain.KPI{
			Metric: t.metric,
			Value:  t.values[i],
			Change: t.changes[i],
			Trend:  t.trends[i],
		})
	}
	return out
}
