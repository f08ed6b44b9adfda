// Package service implements business logic, validation, and orchestration
// between HTTP handlers and the repository layer.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Shivanand-hulikatti/ignite-quest/internal/model"
	"github.com/Shivanand-hulikatti/ignite-quest/internal/quest"
	"github.com/Shivanand-hulikatti/ignite-quest/internal/repository"
)

// PhaseStore is the persistence the event service needs.
type PhaseStore interface {
	Upsert(ctx context.Context, phases []model.Phase) error
	List(ctx context.Context) ([]model.Phase, error)
	GetByID(ctx context.Context, id string) (*model.Phase, error)
}

// RegistrationStore is the persistence the registration service needs.
type RegistrationStore interface {
	Create(ctx context.Context, reg model.Registration) (*model.Registration, error)
	List(ctx context.Context) ([]model.Registration, error)
}

// DefaultPhases is the published event schedule.
var DefaultPhases = []model.Phase{
	{
		ID:          "neural-link",
		Number:      "INCIDENT 01",
		Title:       "Neural Link",
		Description: "Rapid Fire Quiz. 25-30 mental shocks to test your cognitive limits. Only the fastest survive.",
		Date:        "Dec 27",
		Tag:         "Frequency: Zero-G",
		Reward:      "Grade B",
		Position:    1,
	},
	{
		ID:          "strategic-breach",
		Number:      "INCIDENT 02",
		Title:       "Strategic Breach",
		Description: "The Lab selects top guilds to solve deep-rooted anomalies. Sub-zero precision required.",
		Date:        "Dec 30",
		Tag:         "Cryo-Meet",
		Reward:      "Grade A",
		Position:    2,
	},
	{
		ID:          "final-rift",
		Number:      "INCIDENT 03",
		Title:       "The Final Rift",
		Description: "The Grand Presentation. Transmit your vision through the frozen void to the High Council.",
		Date:        "Jan 02",
		Tag:         "Unstop Portal",
		Reward:      "Archive Found",
		Position:    3,
	},
}

// EventService serves the event schedule and the registration countdown.
type EventService struct {
	phases   PhaseStore
	deadline time.Time
	now      func() time.Time
}

// NewEventService constructs an EventService with its dependencies.
func NewEventService(phases PhaseStore, deadline time.Time) *EventService {
	return &EventService{phases: phases, deadline: deadline, now: time.Now}
}

// SeedPhases writes DefaultPhases, refreshing any existing rows.
func (s *EventService) SeedPhases(ctx context.Context) error {
	if err := s.phases.Upsert(ctx, DefaultPhases); err != nil {
		return fmt.Errorf("seed phases: %w", err)
	}
	return nil
}

// ListPhases returns the schedule in order.
func (s *EventService) ListPhases(ctx context.Context) ([]model.Phase, error) {
	return s.phases.List(ctx)
}

// GetPhase returns a single phase by ID.
func (s *EventService) GetPhase(ctx context.Context, id string) (*model.Phase, error) {
	if id == "" {
		return nil, fmt.Errorf("phase id is required")
	}
	phase, err := s.phases.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get phase: %w", err)
	}
	return phase, nil
}

// Countdown returns the time left until registrations close.
func (s *EventService) Countdown() model.Countdown {
	return ComputeCountdown(s.deadline, s.now())
}

// ComputeCountdown splits deadline-now into whole days, hours, minutes and
// seconds. Once the deadline has passed every unit is zero and Expired is set.
func ComputeCountdown(deadline, now time.Time) model.Countdown {
	c := model.Countdown{Deadline: deadline}
	left := deadline.Sub(now)
	if left < 0 {
		c.Expired = true
		return c
	}
	c.Days = int(left / (24 * time.Hour))
	c.Hours = int(left % (24 * time.Hour) / time.Hour)
	c.Minutes = int(left % time.Hour / time.Minute)
	c.Seconds = int(left % time.Minute / time.Second)
	return c
}

// RegistrationService turns a generated profile into a stored registration.
type RegistrationService struct {
	store RegistrationStore
	now   func() time.Time
}

// NewRegistrationService constructs a RegistrationService.
func NewRegistrationService(store RegistrationStore) *RegistrationService {
	return &RegistrationService{store: store, now: time.Now}
}

// Finalize stores data as a registration. The email is normalised so the same
// person cannot finalize twice with different casing.
func (s *RegistrationService) Finalize(ctx context.Context, data model.RegistrationData) (*model.Registration, error) {
	name := strings.TrimSpace(data.Name)
	email := strings.TrimSpace(strings.ToLower(data.Email))
	if name == "" || email == "" {
		return nil, fmt.Errorf("name and email are required")
	}
	if !data.QuestClass.Valid() {
		return nil, fmt.Errorf("unknown quest class %q", data.QuestClass)
	}

	reg, err := s.store.Create(ctx, model.Registration{
		ID:         uuid.New().String(),
		Name:       name,
		Email:      email,
		QuestClass: data.QuestClass,
		Stats:      data.Stats,
		Bio:        data.CharacterBio,
		AvatarURL:  quest.AvatarURL(data.Name),
		CreatedAt:  s.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyRegistered) {
			return nil, err
		}
		return nil, fmt.Errorf("finalize registration: %w", err)
	}
	return reg, nil
}

// ListRegistrations returns all finalized registrations.
func (s *RegistrationService) ListRegistrations(ctx context.Context) ([]model.Registration, error) {
	return s.store.List(ctx)
}
