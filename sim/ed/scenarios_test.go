package ed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarios_AllValidAndRunnable(t *testing.T) {
	for _, name := range ScenarioNames() {
		t.Run(name, func(t *testing.T) {
			// GIVEN a preset
			cfg, err := Scenario(name, 7)
			require.NoError(t, err)
			assert.Equal(t, int64(7), cfg.Seed)
			require.NoError(t, cfg.Validate())

			// WHEN it runs
			res, err := Run(cfg, noTrace)

			// THEN every patient is accounted for
			require.NoError(t, err)
			assert.Equal(t, res.Spawned, res.Records.Len()+res.Abandoned)
		})
	}
}

func TestScenario_Unknown(t *testing.T) {
	_, err := Scenario("pandemic", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pandemic")
}

func TestScenarioStaffedSurge_ServesMoreThanSurge(t *testing.T) {
	// GIVEN the same surge with and without extra staff
	thin, err := Run(ScenarioSurge(42), noTrace)
	require.NoError(t, err)
	staffed, err := Run(ScenarioStaffedSurge(42), noTrace)
	require.NoError(t, err)

	// THEN extra staff completes at least as many patients
	assert.GreaterOrEqual(t, staffed.Records.Len(), thin.Records.Len())
}
