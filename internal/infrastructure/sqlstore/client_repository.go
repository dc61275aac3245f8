package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/martijn/clientbook/internal/core/domain"
	"github.com/martijn/clientbook/internal/core/repository"
)

const clientColumns = "id, name, address, phone_number"

type clientRepository struct {
	db      *DB
	queries clientQueries
}

// clientQueries holds the fixed statements, already rebound for the driver.
type clientQueries struct {
	insert string
	list   string
	get    string
	search string
	delete string
}

func NewClientRepository(db *DB) repository.ClientRepository {
	return &clientRepository{db: db, queries: newClientQueries(db)}
}

func newClientQueries(db *DB) clientQueries {
	insert := fmt.Sprintf(`INSERT INTO %s (name, address, phone_number) VALUES (?, ?, ?)`, db.table)
	if db.dialect.returningID {
		insert += " RETURNING id"
	}

	return clientQueries{
		insert: db.Rebind(insert),
		list: fmt.Sprintf(`
			SELECT %s
			FROM %s
			ORDER BY id`, clientColumns, db.table),
		get: db.Rebind(fmt.Sprintf(`
			SELECT %s
			FROM %s
			WHERE id = ?`, clientColumns, db.table)),
		search: db.Rebind(fmt.Sprintf(`
			SELECT %[1]s
			FROM %[2]s
			WHERE name LIKE ? ESCAPE '%[3]s'
				OR address LIKE ? ESCAPE '%[3]s'
				OR phone_number LIKE ? ESCAPE '%[3]s'
			ORDER BY id`, clientColumns, db.table, likeEscape)),
		delete: db.Rebind(fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, db.table)),
	}
}

func (r *clientRepository) Create(ctx context.Context, name, address, phoneNumber string) (int64, error) {
	if r.db.dialect.returningID {
		var id int64
		err := r.db.QueryRowxContext(ctx, r.queries.insert, name, address, phoneNumber).Scan(&id)
		if err != nil {
			return 0, persistenceError("create client", err)
		}
		return id, nil
	}

	result, err := r.db.ExecContext(ctx, r.queries.insert, name, address, phoneNumber)
	if err != nil {
		return 0, persistenceError("create client", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, persistenceError("get last insert id", err)
	}
	return id, nil
}

func (r *clientRepository) ListAll(ctx context.Context) ([]*domain.Client, error) {
	clients := []*domain.Client{}
	if err := r.db.SelectContext(ctx, &clients, r.queries.list); err != nil {
		return nil, persistenceError("list clients", err)
	}
	return clients, nil
}

func (r *clientRepository) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	var client domain.Client
	err := r.db.GetContext(ctx, &client, r.queries.get, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, persistenceError("find client", err)
	}
	return &client, nil
}

func (r *clientRepository) Search(ctx context.Context, attribute string) ([]*domain.Client, error) {
	pattern := likePattern(attribute)

	clients := []*domain.Client{}
	if err := r.db.SelectContext(ctx, &clients, r.queries.search, pattern, pattern, pattern); err != nil {
		return nil, persistenceError("search clients", err)
	}
	return clients, nil
}

func (r *clientRepository) Update(ctx context.Context, id int64, changes domain.Changes) (bool, error) {
	if err := changes.Validate(); err != nil {
		return false, err
	}

	assignments, args := buildAssignments(changes)
	query := r.db.Rebind(fmt.Sprintf(`UPDATE %s SET %s WHERE id = ?`, r.db.table, assignments))
	args = append(args, id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, persistenceError("update client", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, persistenceError("get rows affected", err)
	}
	return rows > 0, nil
}

func (r *clientRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, r.queries.delete, id)
	if err != nil {
		return false, persistenceError("delete client", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, persistenceError("get rows affected", err)
	}
	return rows > 0, nil
}
