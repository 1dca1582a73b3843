// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// UserStats holds the dashboard counters of the user directory.
//
// Each counter is computed by an independent store query, so under concurrent
// writes the values are approximations rather than one consistent snapshot.
type UserStats struct {
	TotalUsers    int64 `json:"totalUsers"`
	ActiveUsers   int64 `json:"activeUsers"`
	InactiveUsers int64 `json:"inactiveUsers"`
	AdminUsers    int64 `json:"adminUsers"`
	RegularUsers  int64 `json:"regularUsers"`
	TodayLogins   int64 `json:"todayLogins"`
}
