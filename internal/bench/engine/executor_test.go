package engine_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"

	"github.com/DjordjeVuckovic/qbench/internal/bench/engine"
	"github.com/DjordjeVuckovic/qbench/internal/bench/result"
	"github.com/DjordjeVuckovic/qbench/internal/bench/runner"
	"github.com/DjordjeVuckovic/qbench/internal/bench/suite"
	"github.com/DjordjeVuckovic/qbench/internal/storage/pg"
	pkgtesting "github.com/DjordjeVuckovic/qbench/pkg/testing"
)

var (
	testCtx  context.Context
	testPG   *pkgtesting.PGContainer
	testPool *pg.ConnectionPool
	testExec *engine.PgExecutor
)

func TestMain(m *testing.M) {
	testCtx = context.Background()

	var err error
	testPG, err = pkgtesting.NewPGContainer(testCtx, pkgtesting.PGConfig{
		Database: "qbench_test_db",
		Username: "test",
		Password: "test",
	})
	if err != nil {
		panic(err)
	}
	defer testcontainers.TerminateContainer(testPG.Container)

	testPool, err = pg.NewConnectionPool(testCtx, pg.PoolConfig{
		ConnStr:  testPG.ConnString,
		MaxConns: 5,
	})
	if err != nil {
		panic(err)
	}
	defer testPool.Close()

	testExec = engine.NewPgExecutor(testPool)

	os.Exit(m.Run())
}

func countRows(t *testing.T, table string) int {
	t.Helper()
	conn, err := testPool.Acquire(testCtx)
	require.NoError(t, err)
	defer conn.Release()

	var n int
	require.NoError(t, conn.QueryRow(testCtx, "SELECT count(*) FROM "+table).Scan(&n))
	return n
}

func TestExecute_Success(t *testing.T) {
	rev := suite.Revision{
		Name:       "full-lifecycle",
		PreScript:  "CREATE TABLE lifecycle_t(id int); INSERT INTO lifecycle_t VALUES (1), (2);",
		Query:      "SELECT count(*) FROM lifecycle_t",
		PostScript: "DELETE FROM lifecycle_t;",
	}

	outcome := testExec.Execute(testCtx, rev, 4)

	require.Equal(t, result.StatusSuccess, outcome.Status)
	assert.Equal(t, "full-lifecycle", outcome.RevisionName)
	assert.Len(t, outcome.Durations, 4)
	assert.Equal(t, result.Average(outcome.Durations), outcome.AvgDuration)
	assert.Positive(t, outcome.PreScriptDuration)
	assert.Positive(t, outcome.PostScriptDuration)
	assert.Empty(t, outcome.Error)
}

func TestExecute_NoScripts(t *testing.T) {
	rev := suite.Revision{Name: "bare", Query: "SELECT 1"}

	outcome := testExec.Execute(testCtx, rev, 3)

	require.Equal(t, result.StatusSuccess, outcome.Status)
	assert.Len(t, outcome.Durations, 3)
	assert.Zero(t, outcome.PreScriptDuration)
	assert.Zero(t, outcome.PostScriptDuration)
}

func TestExecute_RollbackInvariant(t *testing.T) {
	require.NoError(t, testPool.Exec(testCtx, "CREATE TABLE rollback_probe(id int)"))
	t.Cleanup(func() {
		_ = testPool.Exec(testCtx, "DROP TABLE rollback_probe")
	})

	rev := suite.Revision{Name: "insert", Query: "INSERT INTO rollback_probe VALUES (1)"}
	outcome := testExec.Execute(testCtx, rev, 3)

	require.Equal(t, result.StatusSuccess, outcome.Status)
	assert.Zero(t, countRows(t, "rollback_probe"), "benchmark must leave the table unchanged")
}

func TestExecute_PreScriptFailure(t *testing.T) {
	rev := suite.Revision{
		Name:      "broken-setup",
		PreScript: "SELECT * FROM table_that_does_not_exist;",
		Query:     "SELECT 1",
	}

	outcome := testExec.Execute(testCtx, rev, 5)

	require.Equal(t, result.StatusPreScriptFailure, outcome.Status)
	assert.Contains(t, outcome.Error, "table_that_does_not_exist")
	assert.Nil(t, outcome.Durations)
	assert.Zero(t, outcome.AvgDuration)

	// The connection went back to the pool despite the failure.
	assert.Zero(t, testPool.Stat().AcquiredConns())
}

func TestExecute_QueryFailureMidIteration(t *testing.T) {
	// First iteration inserts fine, the second violates the unique
	// constraint inside the same transaction.
	rev := suite.Revision{
		Name:      "duplicate",
		PreScript: "CREATE TABLE dup_probe(n int UNIQUE);",
		Query:     "INSERT INTO dup_probe VALUES (1)",
	}

	outcome := testExec.Execute(testCtx, rev, 5)

	require.Equal(t, result.StatusFailure, outcome.Status)
	assert.Contains(t, outcome.Error, "duplicate key")
	assert.Nil(t, outcome.Durations, "durations from completed iterations are discarded")
	assert.Zero(t, outcome.AvgDuration)
	assert.Zero(t, testPool.Stat().AcquiredConns())
}

func TestExecute_PostScriptFailure(t *testing.T) {
	rev := suite.Revision{
		Name:       "broken-teardown",
		PreScript:  "CREATE TABLE teardown_t(id int);",
		Query:      "SELECT count(*) FROM teardown_t",
		PostScript: "SELECT * FROM table_that_does_not_exist;",
	}

	outcome := testExec.Execute(testCtx, rev, 2)

	require.Equal(t, result.StatusPostScriptFailure, outcome.Status)
	assert.Contains(t, outcome.Error, "table_that_does_not_exist")
	assert.Nil(t, outcome.Durations, "query-phase durations are dropped on teardown failure")
	assert.Zero(t, outcome.AvgDuration)
}

func TestExecute_TrailingWhitespaceStatementIsNoOp(t *testing.T) {
	rev := suite.Revision{
		Name:      "trailing",
		PreScript: "CREATE TABLE trailing_t(id int);   ",
		Query:     "SELECT count(*) FROM trailing_t",
	}

	outcome := testExec.Execute(testCtx, rev, 1)
	require.Equal(t, result.StatusSuccess, outcome.Status)
}

func TestRunner_SuiteSerializedOnSingleConnection(t *testing.T) {
	pool, err := pg.NewConnectionPool(testCtx, pg.PoolConfig{
		ConnStr:  testPG.ConnString,
		MaxConns: 1,
	})
	require.NoError(t, err)
	defer pool.Close()

	s := &suite.Suite{Queries: []suite.Benchmark{
		{Name: "bench-a", Revisions: []suite.Revision{
			{Name: "a1", Query: "SELECT generate_series(1, 100)"},
			{Name: "a2", Query: "SELECT generate_series(1, 200)"},
			{Name: "a3", Query: "SELECT generate_series(1, 300)"},
		}},
		{Name: "bench-b", Revisions: []suite.Revision{
			{Name: "b1", Query: "SELECT 1"},
			{Name: "b2", Query: "SELECT 2"},
			{Name: "b3", Query: "SELECT 3"},
		}},
	}}

	run := runner.New(runner.Config{Iterations: 2}, engine.NewPgExecutor(pool)).Run(testCtx, s)

	require.Len(t, run.Benchmarks, 2)
	for i, b := range run.Benchmarks {
		require.Len(t, b.Revisions, 3, "benchmark %d", i)
		for _, rev := range b.Revisions {
			assert.Equal(t, result.StatusSuccess, rev.Status, "revision %s", rev.RevisionName)
			assert.Len(t, rev.Durations, 2)
		}
	}

	assert.Equal(t, "bench-a", run.Benchmarks[0].Name)
	assert.Equal(t, "bench-b", run.Benchmarks[1].Name)
	assert.Zero(t, pool.Stat().AcquiredConns())
}
