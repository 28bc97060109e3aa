package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/choreworld/choreworld/internal/config"
	"github.com/choreworld/choreworld/pkg/clients/ntfyclient"
	"github.com/choreworld/choreworld/pkg/core/rotation"
)

func testBinSchedule() *config.BinSchedule {
	return &config.BinSchedule{
		FirstWeek:   "2023-02-15",
		Constant:    "green",
		Alternating: []string{"yellow", "red"},
		SiteID:      "chch",
		GroupID:     "main",
		ChoreID:     "bins",
	}
}

func TestBinsForWeek(t *testing.T) {
	calc := rotation.NewCalculator(rotation.DefaultEpoch, nil)
	schedule := testBinSchedule()

	tests := []struct {
		name     string
		date     time.Time
		expected string
	}{
		{"anchor week", time.Date(2023, time.February, 15, 0, 0, 0, 0, time.UTC), "yellow"},
		{"week after anchor", time.Date(2023, time.February, 22, 0, 0, 0, 0, time.UTC), "red"},
		{"two weeks after anchor", time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC), "yellow"},
		{"week before anchor", time.Date(2023, time.February, 8, 0, 0, 0, 0, time.UTC), "yellow"},
		{"two weeks before anchor", time.Date(2023, time.February, 1, 0, 0, 0, 0, time.UTC), "red"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			constant, alternating, err := BinsForWeek(schedule, calc, tt.date)
			require.NoError(t, err)
			assert.Equal(t, "green", constant)
			assert.Equal(t, tt.expected, alternating)
		})
	}
}

func TestBinsForWeek_BadFirstWeek(t *testing.T) {
	calc := rotation.NewCalculator(rotation.DefaultEpoch, nil)
	schedule := testBinSchedule()
	schedule.FirstWeek = "not-a-date"

	_, _, err := BinsForWeek(schedule, calc, time.Now())
	assert.Error(t, err)
}

func TestNotifyBins(t *testing.T) {
	server, requests := recordingServer(t, http.StatusOK)

	cfg := testConfig(writeGroupsFile(t))
	cfg.BinSchedule = testBinSchedule()
	// Anchor inside the rotation epoch era so the parity is stable:
	// week ending 2021-04-18 is 8 whole weeks after Wednesday 2021-02-17.
	cfg.BinSchedule.FirstWeek = "2021-02-17"

	// Offset 1: the bins chore lands on Alice.
	calc := fixedCalculator(time.Date(2021, time.April, 18, 0, 0, 0, 0, time.UTC))
	endpoints := Endpoints{"chch": {"Alice": server.URL + "/alice"}}

	err := NotifyBins(context.Background(), cfg, calc, ntfyclient.NewClient(zap.NewNop()), endpoints, zap.NewNop())
	require.NoError(t, err)

	recorded := requests()
	require.Len(t, recorded, 1)
	assert.Equal(t, "/alice", recorded[0].Path)
	assert.Equal(t, "Alice, green and yellow bins go out tonight!", recorded[0].Body)
	assert.Equal(t, "choreworld", recorded[0].Title)
	assert.Equal(t, "wastebasket,green_square,yellow_square", recorded[0].Tags)
}

func TestNotifyBins_NoSchedule(t *testing.T) {
	cfg := testConfig(writeGroupsFile(t))
	calc := fixedCalculator(time.Now())

	err := NotifyBins(context.Background(), cfg, calc, ntfyclient.NewClient(zap.NewNop()), Endpoints{}, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no bin schedule")
}

func TestNotifyBins_UnknownSite(t *testing.T) {
	cfg := testConfig(writeGroupsFile(t))
	cfg.BinSchedule = testBinSchedule()
	cfg.BinSchedule.SiteID = "nope"
	calc := fixedCalculator(time.Now())

	err := NotifyBins(context.Background(), cfg, calc, ntfyclient.NewClient(zap.NewNop()), Endpoints{}, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown site")
}

func TestNotifyBins_NoEndpointForAssignee(t *testing.T) {
	cfg := testConfig(writeGroupsFile(t))
	cfg.BinSchedule = testBinSchedule()
	cfg.BinSchedule.FirstWeek = "2021-02-17"
	calc := fixedCalculator(time.Date(2021, time.April, 18, 0, 0, 0, 0, time.UTC))

	err := NotifyBins(context.Background(), cfg, calc, ntfyclient.NewClient(zap.NewNop()), Endpoints{}, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no endpoint")
}
