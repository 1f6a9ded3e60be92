// Package service contains the alert evaluation workflow
package service

import (
	"context"
	"fmt"
	"time"

	"herdpulse/internal/core/alerts"
	"herdpulse/internal/modkit/repokit"
	perr "herdpulse/internal/platform/errors"
	ptime "herdpulse/internal/platform/time"
	"herdpulse/internal/services/api/alerts/domain"
	"herdpulse/internal/services/api/alerts/repo"

	"golang.org/x/sync/errgroup"
)

// Service defines the alerts service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the alerts service
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	clock  ptime.Clock
}

// New constructs an alerts service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], clock ptime.Clock) *Svc {
	if db == nil {
		panic("alerts.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("alerts.Service requires a non nil Repo binder")
	}
	if clock == nil {
		clock = ptime.SystemClock{}
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db, clock: clock}
}

// Alerts evaluates the four temporal rules for one owner's herd
// the rule queries fan out concurrently; any failure fails the whole
// evaluation, no partial lists are returned
func (s *Svc) Alerts(ctx context.Context, ownerID string) (out domain.AlertsOutput, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = perr.Infraf(fmt.Errorf("%v", r), "alert evaluation failed unexpectedly")
		}
	}()

	now := s.clock.Now()

	var res alerts.RuleResults
	g, gctx := errgroup.WithContext(ctx)
	rules := []struct {
		query func(context.Context, string, time.Time) ([]alerts.Candidate, error)
		dst   *[]alerts.Candidate
	}{
		{s.Repo.OpenDaysNoAI, &res.OpenDaysNoAI},
		{s.Repo.CalvingWithin60, &res.CalvingWithin60},
		{s.Repo.CalvingOverdue, &res.CalvingOverdue},
		{s.Repo.EstrusNotPregnant, &res.EstrusNotPregnant},
	}
	for _, rule := range rules {
		rule := rule
		g.Go(func() error {
			cands, err := rule.query(gctx, ownerID, now)
			if err != nil {
				return err
			}
			*rule.dst = cands
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.AlertsOutput{}, err
	}

	ranked := alerts.Evaluate(res)
	if ranked == nil {
		ranked = []alerts.DerivedAlert{}
	}
	return domain.AlertsOutput{Results: ranked}, nil
}
