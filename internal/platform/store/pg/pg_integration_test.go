//go:build integration_pg
// +build integration_pg

package pg

import (
	"context"
	"fmt"
	"testing"
	"time"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startPostgres(t *testing.T) (dsn string, stop func()) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)

	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       "postgres",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections"),
		).WithDeadline(2 * time.Minute),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		cancel()
		t.Fatalf("failed to start postgres container: %v", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get container host: %v", err)
	}
	mapped, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get mapped port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://postgres:postgres@%s:%s/postgres?sslmode=disable", host, mapped.Port())
	stop = func() {
		_ = c.Terminate(context.Background())
		cancel()
	}
	return dsn, stop
}

func TestOpen_BreedingEventsRoundtrip_Integration(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	p, err := Open(ctx, Config{URL: dsn, MaxConns: 2}, nil, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer p.Close()

	if err := p.Pool.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}

	ddl := `
create table breeding_events (
	id uuid primary key default gen_random_uuid(),
	owner_id uuid not null,
	cattle_id uuid not null,
	event_type text not null,
	event_datetime timestamptz not null,
	metadata jsonb,
	created_at timestamptz not null default now(),
	updated_at timestamptz not null default now()
)`
	if _, err := p.Pool.Exec(ctx, ddl); err != nil {
		t.Fatalf("create table: %v", err)
	}

	const owner = "3a2b3a60-0000-4000-8000-000000000001"
	const cow = "3a2b3a60-0000-4000-8000-000000000002"
	ins := `insert into breeding_events (owner_id, cattle_id, event_type, event_datetime) values ($1, $2, $3, $4)`
	base := time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)
	for i, et := range []string{"CALVING", "INSEMINATION", "ESTRUS"} {
		if _, err := p.Pool.Exec(ctx, ins, owner, cow, et, base.AddDate(0, 0, i*30)); err != nil {
			t.Fatalf("insert %s: %v", et, err)
		}
	}

	var n int
	q := `select count(*) from breeding_events where owner_id = $1 and event_datetime >= $2`
	if err := p.Pool.QueryRow(ctx, q, owner, base).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 events, got %d", n)
	}
}
