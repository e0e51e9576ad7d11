package geoidx

import "testing"

func TestNewConfigDefaults(t *testing.T) {
	c, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig(): %v", err)
	}
	if c.Tree != TreeQuad || c.Strategy != StrategyStreaming {
		t.Errorf("unexpected defaults: %+v", c)
	}
}

func TestNewConfigRejectsOutOfRangeLevels(t *testing.T) {
	_, err := NewConfig(WithTreeLevels(64))
	if err == nil {
		t.Fatal("expected error for out-of-range tree levels")
	}
	var cfgErr *ErrInvalidConfiguration
	if !asConfigError(err, &cfgErr) {
		t.Errorf("error %v is not *ErrInvalidConfiguration", err)
	}
}

func TestNewConfigRejectsBadDistanceErrorPct(t *testing.T) {
	_, err := NewConfig(WithDistanceErrorPct(0.9))
	if err == nil {
		t.Fatal("expected error for distance_error_pct out of [0, 0.5]")
	}
}

func TestNewConfigPrecisionMetersOverridesLevels(t *testing.T) {
	c, err := NewConfig(WithTreeLevels(5), WithPrecisionMeters(100))
	if err != nil {
		t.Fatalf("NewConfig(): %v", err)
	}
	if c.TreeLevels == 5 {
		t.Errorf("expected PrecisionMeters to override explicit TreeLevels, got %d", c.TreeLevels)
	}
}

func TestNewConfigGeohashLevelCeiling(t *testing.T) {
	_, err := NewConfig(WithTree(TreeGeohash), WithTreeLevels(30))
	if err == nil {
		t.Fatal("expected error: geohash tree levels capped at 24")
	}
}

func asConfigError(err error, target **ErrInvalidConfiguration) bool {
	e, ok := err.(*ErrInvalidConfiguration)
	if !ok {
		return false
	}
	*target = e
	return true
}
