// Package repository implements all database queries for the quest site.
// It uses pgx directly (no ORM).
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shivanand-hulikatti/ignite-quest/internal/model"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrAlreadyRegistered is returned when the same email registers twice.
var ErrAlreadyRegistered = errors.New("email already registered")

// PhaseRepository handles persistence for event phases.
type PhaseRepository struct {
	db *pgxpool.Pool
}

// NewPhaseRepository constructs a PhaseRepository.
func NewPhaseRepository(db *pgxpool.Pool) *PhaseRepository {
	return &PhaseRepository{db: db}
}

// Upsert inserts or refreshes phases in a single transaction.
func (r *PhaseRepository) Upsert(ctx context.Context, phases []model.Phase) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, p := range phases {
		_, err := tx.Exec(ctx,
			`INSERT INTO phases (id, number, title, description, date, tag, reward, position)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 ON CONFLICT (id) DO UPDATE SET
				number = EXCLUDED.number,
				title = EXCLUDED.title,
				description = EXCLUDED.description,
				date = EXCLUDED.date,
				tag = EXCLUDED.tag,
				reward = EXCLUDED.reward,
				position = EXCLUDED.position`,
			p.ID, p.Number, p.Title, p.Description, p.Date, p.Tag, p.Reward, p.Position,
		)
		if err != nil {
			return fmt.Errorf("upsert phase %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// List returns all phases in schedule order.
func (r *PhaseRepository) List(ctx context.Context) ([]model.Phase, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, number, title, description, date, tag, reward, position
		 FROM phases
		 ORDER BY position ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list phases: %w", err)
	}
	defer rows.Close()

	var phases []model.Phase
	for rows.Next() {
		var p model.Phase
		if err := rows.Scan(&p.ID, &p.Number, &p.Title, &p.Description, &p.Date, &p.Tag, &p.Reward, &p.Position); err != nil {
			return nil, fmt.Errorf("scan phase: %w", err)
		}
		phases = append(phases, p)
	}
	return phases, rows.Err()
}

// GetByID returns a single phase or ErrNotFound.
func (r *PhaseRepository) GetByID(ctx context.Context, id string) (*model.Phase, error) {
	var p model.Phase
	err := r.db.QueryRow(ctx,
		`SELECT id, number, title, description, date, tag, reward, position
		 FROM phases WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.Number, &p.Title, &p.Description, &p.Date, &p.Tag, &p.Reward, &p.Position)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get phase: %w", err)
	}
	return &p, nil
}

// RegistrationRepository handles persistence for finalized registrations.
type RegistrationRepository struct {
	db *pgxpool.Pool
}

// NewRegistrationRepository constructs a RegistrationRepository.
func NewRegistrationRepository(db *pgxpool.Pool) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// Create stores reg. A second registration for the same email returns
// ErrAlreadyRegistered; the unique index makes this safe under concurrency.
func (r *RegistrationRepository) Create(ctx context.Context, reg model.Registration) (*model.Registration, error) {
	var id string
	err := r.db.QueryRow(ctx,
		`INSERT INTO registrations
			(id, name, email, quest_class, innovation, resilience, leadership, risk_taking, bio, avatar_url, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 ON CONFLICT (email) DO NOTHING
		 RETURNING id`,
		reg.ID, reg.Name, reg.Email, string(reg.QuestClass),
		reg.Stats.Innovation, reg.Stats.Resilience, reg.Stats.Leadership, reg.Stats.RiskTaking,
		reg.Bio, reg.AvatarURL, reg.CreatedAt,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("insert registration: %w", err)
	}
	return &reg, nil
}

// List returns all registrations, newest first.
func (r *RegistrationRepository) List(ctx context.Context) ([]model.Registration, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, email, quest_class, innovation, resilience, leadership, risk_taking, bio, avatar_url, created_at
		 FROM registrations
		 ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()

	var regs []model.Registration
	for rows.Next() {
		var reg model.Registration
		var class string
		if err := rows.Scan(
			&reg.ID, &reg.Name, &reg.Email, &class,
			&reg.Stats.Innovation, &reg.Stats.Resilience, &reg.Stats.Leadership, &reg.Stats.RiskTaking,
			&reg.Bio, &reg.AvatarURL, &reg.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		reg.QuestClass = model.QuestClass(class)
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}
