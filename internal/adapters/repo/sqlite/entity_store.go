package sqlite

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"

	"github.com/bnema/weddingflow-assistant/internal/domain"
	"github.com/bnema/weddingflow-assistant/internal/ports"
)

const (
	pathKey     = "store.path"
	defaultFile = "entities.db"
	dataDir     = ".weddingflow"
)

const selectColumns = `SELECT id, type, company_id, client_id, name, fields, created_at, updated_at FROM entities`

type EntityStore struct {
	db    *sql.DB
	clock ports.Clock
}

var _ ports.EntityStore = (*EntityStore)(nil)

// NewEntityStore opens the database named by store.path, defaulting to
// ~/.weddingflow/entities.db.
func NewEntityStore(ctx context.Context, cfg *viper.Viper, clock ports.Clock) (*EntityStore, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	path := cfg.GetString(pathKey)
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(homeDir, dataDir, defaultFile)
	}

	db, err := Open(ctx, path)
	if err != nil {
		return nil, err
	}
	return NewEntityStoreWithDB(db, clock), nil
}

func NewEntityStoreWithDB(db *sql.DB, clock ports.Clock) *EntityStore {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &EntityStore{db: db, clock: clock}
}

func (s *EntityStore) Close() error {
	return s.db.Close()
}

func (s *EntityStore) Get(ctx context.Context, scope domain.Scope, entityType domain.EntityType, id domain.EntityID) (domain.Entity, error) {
	if err := scope.Validate(); err != nil {
		return domain.Entity{}, err
	}

	entity, err := s.visible(ctx, s.db, scope, entityType, id)
	if err != nil {
		return domain.Entity{}, fmt.Errorf("get %s %s: %w", entityType, id, err)
	}
	return entity, nil
}

func (s *EntityStore) Query(ctx context.Context, scope domain.Scope, entityType domain.EntityType, filter domain.Filter) ([]domain.Entity, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}

	query := selectColumns + ` WHERE company_id = ? AND type = ?`
	args := []any{scope.CompanyID, string(entityType)}
	if entityType.ClientScoped() && scope.ClientID != "" {
		query += ` AND client_id = ?`
		args = append(args, scope.ClientID)
	}
	query += ` ORDER BY seq`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", entityType, err)
	}
	defer rows.Close()

	out := []domain.Entity{}
	for rows.Next() {
		entity, err := scanEntity(rows)
		if err != nil {
			return nil, err
		}
		if filter.Matches(entity) {
			out = append(out, entity)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query %s: %w", entityType, err)
	}
	return out, nil
}

func (s *EntityStore) Create(ctx context.Context, scope domain.Scope, entityType domain.EntityType, fields map[string]any) (domain.Entity, error) {
	if err := scope.Validate(); err != nil {
		return domain.Entity{}, err
	}
	if !entityType.Valid() {
		return domain.Entity{}, fmt.Errorf("create entity: unknown type %q", entityType)
	}

	now := s.clock.Now()
	entity := domain.Entity{
		Type:      entityType,
		ID:        domain.EntityID(uuid.NewString()),
		CompanyID: scope.CompanyID,
		Fields:    domain.MergeFields(nil, fields),
		CreatedAt: now,
		UpdatedAt: now,
	}
	entity.Name = domain.DisplayName(entityType, entity.Fields)

	err := s.inTx(ctx, func(tx *sql.Tx) error {
		if entityType.ClientScoped() {
			owner := domain.Scope{CompanyID: scope.CompanyID}
			if _, err := s.visible(ctx, tx, owner, domain.EntityClient, domain.EntityID(scope.ClientID)); err != nil {
				if errors.Is(err, domain.ErrEntityNotFound) {
					return fmt.Errorf("client %q: %w", scope.ClientID, domain.ErrScopeViolation)
				}
				return err
			}
			entity.ClientID = scope.ClientID
		}

		encoded, err := json.Marshal(entity.Fields)
		if err != nil {
			return fmt.Errorf("encode fields: %w", err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO entities (id, type, company_id, client_id, name, fields, created_at, updated_at) VALUES (?,?,?,?,?,?,?,?)`,
			string(entity.ID), string(entity.Type), entity.CompanyID, entity.ClientID, entity.Name, string(encoded), formatTime(now), formatTime(now))
		return err
	})
	if err != nil {
		return domain.Entity{}, fmt.Errorf("create %s: %w", entityType, err)
	}

	entity.Fields = decodeNumbers(entity.Fields)
	return entity, nil
}

func (s *EntityStore) Update(ctx context.Context, scope domain.Scope, entityType domain.EntityType, id domain.EntityID, fields map[string]any) (domain.Entity, error) {
	if err := scope.Validate(); err != nil {
		return domain.Entity{}, err
	}

	var entity domain.Entity
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		current, err := s.visible(ctx, tx, scope, entityType, id)
		if err != nil {
			return err
		}

		current.Fields = domain.MergeFields(current.Fields, fields)
		current.Name = domain.DisplayName(current.Type, current.Fields)
		current.UpdatedAt = s.clock.Now()

		encoded, err := json.Marshal(current.Fields)
		if err != nil {
			return fmt.Errorf("encode fields: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `UPDATE entities SET name = ?, fields = ?, updated_at = ? WHERE id = ?`,
			current.Name, string(encoded), formatTime(current.UpdatedAt), string(id)); err != nil {
			return err
		}
		entity = current
		return nil
	})
	if err != nil {
		return domain.Entity{}, fmt.Errorf("update %s %s: %w", entityType, id, err)
	}

	entity.Fields = decodeNumbers(entity.Fields)
	return entity, nil
}

func (s *EntityStore) Delete(ctx context.Context, scope domain.Scope, entityType domain.EntityType, id domain.EntityID) error {
	if err := scope.Validate(); err != nil {
		return err
	}

	err := s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := s.visible(ctx, tx, scope, entityType, id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM entities WHERE id = ?`, string(id))
		return err
	})
	if err != nil {
		return fmt.Errorf("delete %s %s: %w", entityType, id, err)
	}
	return nil
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *EntityStore) visible(ctx context.Context, q queryer, scope domain.Scope, entityType domain.EntityType, id domain.EntityID) (domain.Entity, error) {
	row := q.QueryRowContext(ctx, selectColumns+` WHERE id = ? AND type = ? AND company_id = ?`, string(id), string(entityType), scope.CompanyID)
	entity, err := scanEntity(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Entity{}, domain.ErrEntityNotFound
	}
	if err != nil {
		return domain.Entity{}, err
	}
	if !scope.Allows(entity) {
		return domain.Entity{}, domain.ErrEntityNotFound
	}
	return entity, nil
}

func (s *EntityStore) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return errors.Join(err, fmt.Errorf("rollback: %w", rollbackErr))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntity(row scanner) (domain.Entity, error) {
	var (
		entity               domain.Entity
		entityType, id       string
		fields               string
		createdAt, updatedAt string
	)
	if err := row.Scan(&id, &entityType, &entity.CompanyID, &entity.ClientID, &entity.Name, &fields, &createdAt, &updatedAt); err != nil {
		return domain.Entity{}, err
	}
	entity.ID = domain.EntityID(id)
	entity.Type = domain.EntityType(entityType)
	entity.CreatedAt = parseTime(createdAt)
	entity.UpdatedAt = parseTime(updatedAt)

	decoder := json.NewDecoder(bytes.NewReader([]byte(fields)))
	decoder.UseNumber()
	entity.Fields = map[string]any{}
	if err := decoder.Decode(&entity.Fields); err != nil {
		return domain.Entity{}, fmt.Errorf("decode fields of %s %s: %w", entity.Type, entity.ID, err)
	}
	entity.Fields = decodeNumbers(entity.Fields)
	return entity, nil
}

// decodeNumbers turns json.Number values into int64 or float64.
func decodeNumbers(fields map[string]any) map[string]any {
	for key, value := range fields {
		n, ok := value.(json.Number)
		if !ok {
			continue
		}
		if i, err := n.Int64(); err == nil {
			fields[key] = i
		} else if f, err := n.Float64(); err == nil {
			fields[key] = f
		}
	}
	return fields
}

func parseTime(raw string) time.Time {
	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

func formatTime(value time.Time) string {
	return value.UTC().Format(time.RFC3339Nano)
}
