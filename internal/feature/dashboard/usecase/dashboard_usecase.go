// Package usecase loads a user's records and turns them into the readiness dashboard.
package usecase

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"prep_tracker/internal/feature/dashboard/domain/analytics"
	"prep_tracker/internal/feature/tracker/domain/entity"
)

// Lister is the read side of an owner-scoped store.
type Lister[M any] interface {
	List(ctx context.Context, ownerID uint) ([]M, error)
}

// Sources are the stores the dashboard reads from.
type Sources struct {
	DSA      Lister[entity.DSATopic]
	CS       Lister[entity.CSTopic]
	Projects Lister[entity.Project]
	Mocks    Lister[entity.MockInterview]
	Logs     Lister[entity.DailyLog]
}

type dashboardUsecase struct {
	src Sources
	now func() time.Time
}

// NewDashboardUsecase creates the dashboard usecase. "Today" comes from the server's local clock.
func NewDashboardUsecase(src Sources) *dashboardUsecase {
	return &dashboardUsecase{src: src, now: time.Now}
}

// Stats reads the five collections concurrently and computes the dashboard.
func (u *dashboardUsecase) Stats(ctx context.Context, ownerID uint) (analytics.Stats, error) {
	var snap analytics.Snapshot
	g, gctx := errgroup.WithContext(ctx)
	load(g, gctx, "dsa", u.src.DSA, ownerID, &snap.DSA)
	load(g, gctx, "cs", u.src.CS, ownerID, &snap.CS)
	load(g, gctx, "projects", u.src.Projects, ownerID, &snap.Projects)
	load(g, gctx, "mocks", u.src.Mocks, ownerID, &snap.Mocks)
	load(g, gctx, "logs", u.src.Logs, ownerID, &snap.Logs)
	if err := g.Wait(); err != nil {
		return analytics.Stats{}, err
	}
	return analytics.Compute(snap, u.now()), nil
}

func load[M any](g *errgroup.Group, ctx context.Context, name string, src Lister[M], ownerID uint, dst *[]M) {
	g.Go(func() error {
		rows, err := src.List(ctx, ownerID)
		if err != nil {
			return fmt.Errorf("load %s: %w", name, err)
		}
		*dst = rows
		return nil
	})
}
