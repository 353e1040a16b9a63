package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	// Registers the "postgres" database/sql driver the wait.ForSQL
	// strategy below polls with.
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/careerlens/backend/config"
	"github.com/careerlens/backend/internal/database"
	"github.com/careerlens/backend/internal/service"
)

// The suite below runs the service layer against a real postgres started
// through testcontainers. sqlite covers the rest of the tests; this one
// exists to catch dialect drift in the GROUP BY and JOIN queries.

func dockerAvailable() bool {
	if os.Getenv("DOCKER_HOST") != "" {
		return true
	}
	_, err := os.Stat("/var/run/docker.sock")
	return err == nil
}

func TestServicesAgainstPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	if !dockerAvailable() {
		t.Skip("docker is not available")
	}

	ctx := context.Background()

	const (
		dbUser = "careerlens"
		dbPass = "careerlens"
		dbName = "careerlens_test"
	)

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     dbUser,
				"POSTGRES_PASSWORD": dbPass,
				"POSTGRES_DB":       dbName,
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForSQL("5432/tcp", "postgres", func(host string, port nat.Port) string {
					return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
						dbUser, dbPass, host, port.Port(), dbName)
				}),
			).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	cfg := &config.Config{
		DBDriver:   "postgres",
		DBHost:     host,
		DBPort:     port.Port(),
		DBUser:     dbUser,
		DBPassword: dbPass,
		DBName:     dbName,
		DBSSLMode:  "disable",
	}

	db, err := database.New(cfg)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	auth := service.NewAuthService(db)
	history := service.NewHistoryService(db)

	user, err := auth.Register("Alice", "alice@example.com", "", "secret123")
	require.NoError(t, err)

	// Unique index on email must hold under postgres as well.
	_, err = auth.Register("Imposter", "alice@example.com", "", "other456")
	require.ErrorIs(t, err, service.ErrEmailTaken)

	ranked := []service.RankedPrediction{
		{Role: "Data Scientist", Confidence: 0.85},
		{Role: "Backend Developer", Confidence: 0.78},
		{Role: "Cloud Engineer", Confidence: 0.72},
	}
	snapshot := service.HistorySnapshot{
		Degree: "B.Tech", Major: "CSE", CGPA: "8.5", Experience: "2",
		Skills: "Python, SQL", Certifications: "AWS",
	}
	require.NoError(t, history.Append(user.ID, snapshot, "Data Scientist", ranked))
	require.NoError(t, history.Append(user.ID, snapshot, "Data Scientist", ranked))
	require.NoError(t, history.Append(user.ID, snapshot, "Backend Developer", ranked))

	// Aggregations use raw SQL fragments; they are the part most likely to
	// behave differently across dialects.
	roles, err := history.TopRoles()
	require.NoError(t, err)
	require.Len(t, roles, 2)
	require.Equal(t, "Data Scientist", roles[0].Role)
	require.EqualValues(t, 2, roles[0].Count)

	all, err := history.ListAll()
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "alice@example.com", all[0].UserEmail)

	days, err := history.PredictionsOverTime()
	require.NoError(t, err)
	require.Len(t, days, 1)
	require.EqualValues(t, 3, days[0].Count)

	// Deleting the user must take profile and history with it.
	require.NoError(t, auth.DeleteUser(user.ID))
	entries, err := history.ListForUser(user.ID)
	require.NoError(t, err)
	require.Empty(t, entries)
}
