package content

import (
	"testing"
)

func TestSourceIsDeterministicForFixedSeed(t *testing.T) {
	a := NewSource(42)
	b := NewSource(42)

	for i := 0; i < 10; i++ {
		if a.MarketCondition() != b.MarketCondition() {
			t.Fatalf("market condition diverged at draw %d", i)
		}
		if a.EconomicOutlook() != b.EconomicOutlook() {
			t.Fatalf("economic outlook diverged at draw %d", i)
		}
	}
}

func TestKPIsCoverFixedMetricSet(t *testing.T) {
	kpis := NewSource(7).KPIs()

	if len(kpis) != len(kpiTemplates) {
		t.Fatalf("expected %d KPIs, got %d", len(kpiTemplates), len(kpis))
	}
	seen := map[string]bool{}
	for _, kpi := range kpis {
		seen[kpi.Metric] = true
		if kpi.Value == "" || kpi.Change == "" || kpi.Trend == "" {
			t.Fatalf("incomplete KPI %+v", kpi)
		}
	}
	for _, metric := range []string{"Market Sentiment", "Volatility Index", "Sector Performance", "Economic Confidence"} {
		if !seen[metric] {
			t.Fatalf("missing metric %s", metric)
		}
	}
}
