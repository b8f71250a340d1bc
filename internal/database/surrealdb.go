package database

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"
)

// SurrealDB implements the Database interface for SurrealDB
type SurrealDB struct {
	db     *surrealdb.DB
	config Config
}

// NewSurrealDB creates a new SurrealDB instance
func NewSurrealDB(cfg Config) *SurrealDB {
	return &SurrealDB{
		config: cfg,
	}
}

// Connect establishes a connection to SurrealDB
func (s *SurrealDB) Connect(ctx context.Context) error {
	endpoint := fmt.Sprintf("ws://%s:%s", s.config.Host, s.config.Port)

	db, err := surrealdb.FromEndpointURLString(ctx, endpoint)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}

	_, err = db.SignIn(ctx, &surrealdb.Auth{
		Username: s.config.User,
		Password: s.config.Password,
	})
	if err != nil {
		_ = db.Close(ctx)
		return fmt.Errorf("%w: signin failed: %v", ErrConnection, err)
	}

	if err := db.Use(ctx, s.config.Namespace, s.config.Database); err != nil {
		_ = db.Close(ctx)
		return fmt.Errorf("%w: use failed: %v", ErrConnection, err)
	}

	s.db = db
	return nil
}

// Close closes the database connection
func (s *SurrealDB) Close() error {
	if s.db != nil {
		return s.db.Close(context.Background())
	}
	return nil
}

// Ping checks the database connection
func (s *SurrealDB) Ping(ctx context.Context) error {
	if s.db == nil {
		return ErrConnection
	}
	_, err := s.db.Version(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return nil
}

// Query executes a query and returns results
func (s *SurrealDB) Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error) {
	if s.db == nil {
		return nil, ErrConnection
	}

	results, err := surrealdb.Query[interface{}](ctx, s.db, query, vars)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuery, err)
	}

	if results == nil {
		return nil, nil
	}

	output := make([]interface{}, 0, len(*results))
	for _, r := range *results {
		if r.Status != "OK" {
			if r.Error != nil {
				return nil, fmt.Errorf("%w: %s", ErrQuery, r.Error.Message)
			}
			return nil, ErrQuery
		}
		output = append(output, map[string]interface{}{
			"status": r.Status,
			"result": r.Result,
		})
	}

	return output, nil
}

// QueryOne executes a query and returns a single result
func (s *SurrealDB) QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error) {
	results, err := s.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	if len(results) == 0 {
		return nil, ErrNotFound
	}

	// Unwrap the response wrapper {status: "OK", result: [...]}
	first := results[0]
	if resp, ok := first.(map[string]interface{}); ok {
		if status, ok := resp["status"].(string); ok && status == "OK" {
			if resultData, ok := resp["result"].([]interface{}); ok {
				if len(resultData) == 0 {
					return nil, ErrNotFound
				}
				return resultData[0], nil
			}
			// Result is not an array, return as-is (e.g., scalar values)
			return resp["result"], nil
		}
	}

	return first, nil
}

// Execute runs a query without returning results
func (s *SurrealDB) Execute(ctx context.Context, query string, vars map[string]interface{}) error {
	_, err := s.Query(ctx, query, vars)
	return err
}

// BeginTx starts a new transaction
func (s *SurrealDB) BeginTx(ctx context.Context) (Transaction, error) {
	if s.db == nil {
		return nil, ErrConnection
	}

	return &SurrealTransaction{
		db:      s.db,
		ctx:     ctx,
		queries: make([]txQuery, 0),
	}, nil
}

// SurrealTransaction implements Transaction for SurrealDB
type SurrealTransaction struct {
	db        *surrealdb.DB
	ctx       context.Context
	queries   []txQuery
	committed bool
}

type txQuery struct {
	query string
	vars  map[string]interface{}
}

func (t *SurrealTransaction) Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error) {
	t.queries = append(t.queries, txQuery{query: query, vars: vars})
	// Queries are batch-executed on commit
	return nil, nil
}

func (t *SurrealTransaction) QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error) {
	t.queries = append(t.queries, txQuery{query: query, vars: vars})
	return nil, nil
}

func (t *SurrealTransaction) Execute(ctx context.Context, query string, vars map[string]interface{}) error {
	t.queries = append(t.queries, txQuery{query: query, vars: vars})
	return nil
}

func (t *SurrealTransaction) Commit() error {
	if t.committed {
		return nil
	}

	txQueryStr := "BEGIN TRANSACTION;\n"
	for _, q := range t.queries {
		txQueryStr += q.query + ";\n"
	}
	txQueryStr += "COMMIT TRANSACTION;"

	allVars := make(map[string]interface{})
	for _, q := range t.queries {
		for k, v := range q.vars {
			allVars[k] = v
		}
	}

	_, err := surrealdb.Query[interface{}](t.ctx, t.db, txQueryStr, allVars)
	if err != nil {
		return fmt.Errorf("%w: commit failed: %v", ErrQuery, err)
	}

	t.committed = true
	return nil
}

func (t *SurrealTransaction) Rollback() error {
	t.queries = nil
	return nil
}
