package services

import "testing"

func TestDashboardRecentOrderWindow(t *testing.T) {
	// The admin landing page shows the ten most recent orders.
	if recentOrderCount != 10 {
		t.Errorf("recentOrderCount = %d, want 10", recentOrderCount)
	}
}
