// Package seed loads the demo account and its sample records.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	authadapters "prep_tracker/internal/feature/auth/adapters"
	authentity "prep_tracker/internal/feature/auth/domain/entity"
	authusecase "prep_tracker/internal/feature/auth/usecase"
	trackeradapters "prep_tracker/internal/feature/tracker/adapters"
	"prep_tracker/internal/feature/tracker/domain/entity"
	"prep_tracker/internal/shared/scoped"
)

// Demo account credentials.
const (
	DemoUsername = "demo"
	DemoPassword = "demo123"
)

// Users looks up accounts by name.
type Users interface {
	FindByUsername(ctx context.Context, username string) (*authentity.User, error)
}

// Registrar creates an account with a hashed password.
type Registrar interface {
	Register(ctx context.Context, username, password string) (*authusecase.Session, error)
}

type creator[C, M any] interface {
	Create(ctx context.Context, ownerID uint, payload C) (M, error)
}

// Targets are the stores the sample records go to.
type Targets struct {
	DSA      creator[entity.DSATopicInput, entity.DSATopic]
	CS       creator[entity.CSTopicInput, entity.CSTopic]
	Projects creator[entity.ProjectInput, entity.Project]
	Mocks    creator[entity.MockInterviewInput, entity.MockInterview]
	Logs     creator[entity.DailyLogInput, entity.DailyLog]
}

// Deps builds the lookup, registration and record stores bound to tx.
type Deps func(tx *gorm.DB) (Users, Registrar, Targets)

// GormDeps wires Deps to the GORM adapters. Stores are not cached; the demo
// user is new, so there is nothing to invalidate.
func GormDeps(tokens authusecase.JWTGenerator) Deps {
	return func(tx *gorm.DB) (Users, Registrar, Targets) {
		users := authadapters.NewUserGorm(tx)
		return users, authusecase.NewAuthUsecase(users, tokens, nil), Targets{
			DSA:      trackeradapters.NewDSATopicStore(tx),
			CS:       trackeradapters.NewCSTopicStore(tx),
			Projects: trackeradapters.NewProjectStore(tx),
			Mocks:    trackeradapters.NewMockInterviewStore(tx),
			Logs:     trackeradapters.NewDailyLogStore(tx),
		}
	}
}

// Demo creates the demo user and its sample data unless the user already exists.
// The user and every record are written in one transaction, so a failed run
// leaves nothing behind and the next start seeds again.
// It reports whether anything was created.
func Demo(ctx context.Context, db *gorm.DB, deps Deps, now time.Time) (bool, error) {
	created := false
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users, reg, t := deps(tx)

		_, err := users.FindByUsername(ctx, DemoUsername)
		switch {
		case err == nil:
			return nil
		case !errors.Is(err, authusecase.ErrUserNotFound):
			return fmt.Errorf("seed: lookup demo user: %w", err)
		}

		session, err := reg.Register(ctx, DemoUsername, DemoPassword)
		if err != nil {
			return fmt.Errorf("seed: register demo user: %w", err)
		}
		if err := seedRecords(ctx, t, session.User.ID, now); err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return false, err
	}
	if created {
		slog.Info("demo data seeded")
	}
	return created, nil
}

func seedRecords(ctx context.Context, t Targets, owner uint, now time.Time) error {
	if err := createAll(ctx, t.DSA, owner, []entity.DSATopicInput{
		{Topic: "Two Sum", Category: "Arrays", Status: entity.StatusCompleted},
		{Topic: "Reverse Linked List", Category: "Linked List", Status: entity.StatusInProgress},
		{Topic: "Binary Search", Category: "Arrays", Status: entity.StatusNotStarted},
	}); err != nil {
		return err
	}
	if err := createAll(ctx, t.CS, owner, []entity.CSTopicInput{
		{Subject: "OS", Topic: "Process Scheduling", Status: entity.StatusCompleted},
		{Subject: "DBMS", Topic: "Normalization", Status: entity.StatusInProgress},
	}); err != nil {
		return err
	}
	if err := createAll(ctx, t.Projects, owner, []entity.ProjectInput{
		{Name: "Portfolio Website", TechStack: "React, Tailwind", Status: entity.ProjectCompleted, IsInterviewReady: true},
		{Name: "Task Manager", TechStack: "Node, Express", Status: entity.ProjectInProgress},
	}); err != nil {
		return err
	}
	feedback := "Good problem solving, work on communication."
	if err := createAll(ctx, t.Mocks, owner, []entity.MockInterviewInput{
		{Date: now.Format(time.RFC3339), TopicsCovered: "DSA, OS", SelfRating: 8, Feedback: &feedback},
	}); err != nil {
		return err
	}
	two, one := 2, 1
	return createAll(ctx, t.Logs, owner, []entity.DailyLogInput{
		{Date: now.AddDate(0, 0, -1).Format(scoped.DateLayout), Content: "Solved 2 DSA problems", HoursSpent: &two},
		{Date: now.Format(scoped.DateLayout), Content: "Revise OS concepts", HoursSpent: &one},
	})
}

func createAll[C, M any](ctx context.Context, store creator[C, M], owner uint, payloads []C) error {
	for _, p := range payloads {
		if _, err := store.Create(ctx, owner, p); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}
	return nil
}
