// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-user-directory/internal/logger"
)

// DefaultProbeInterval is used when a non-positive interval is passed to
// [NewHealthProbe].
const DefaultProbeInterval = 10 * time.Second

// HealthProbe periodically refreshes the serving status of the application.
type HealthProbe struct {
	refresher HealthRefresher
	interval  time.Duration
	timeout   time.Duration

	logger *logger.Logger
}

func NewHealthProbe(refresher HealthRefresher, interval time.Duration, logger *logger.Logger) *HealthProbe {
	if interval <= 0 {
		interval = DefaultProbeInterval
	}

	return &HealthProbe{
		refresher: refresher,
		interval:  interval,
		timeout:   interval / 2,
		logger:    logger,
	}
}

// Run refreshes once right away, then on every tick until ctx is done.
func (p *HealthProbe) Run(ctx context.Context) {
	p.logger.Info().Dur("interval", p.interval).Msg("health probe started")

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		p.probe(ctx)

		select {
		case <-ctx.Done():
			p.logger.Info().Msg("health probe stopped")
			return
		case <-ticker.C:
		}
	}
}

func (p *HealthProbe) probe(ctx context.Context) {
	probeCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.refresher.RefreshHealth(probeCtx); err != nil {
		p.logger.Debug().Err(err).Msg("health probe failed")
	}
}
