package service

import (
	"context"
	"sort"
	"sync"

	"github.com/Shivanand-hulikatti/ignite-quest/internal/model"
	"github.com/Shivanand-hulikatti/ignite-quest/internal/repository"
)

type memPhaseStore struct {
	mu     sync.Mutex
	phases map[string]model.Phase
}

func newMemPhaseStore() *memPhaseStore {
	return &memPhaseStore{phases: make(map[string]model.Phase)}
}

func (m *memPhaseStore) Upsert(_ context.Context, phases []model.Phase) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range phases {
		m.phases[p.ID] = p
	}
	return nil
}

func (m *memPhaseStore) List(_ context.Context) ([]model.Phase, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Phase
	for _, p := range m.phases {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (m *memPhaseStore) GetByID(_ context.Context, id string) (*model.Phase, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.phases[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

type memRegistrationStore struct {
	mu   sync.Mutex
	regs []model.Registration
}

func (m *memRegistrationStore) Create(_ context.Context, reg model.Registration) (*model.Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.regs {
		if r.Email == reg.Email {
			return nil, repository.ErrAlreadyRegistered
		}
	}
	m.regs = append(m.regs, reg)
	return &reg, nil
}

func (m *memRegistrationStore) List(_ context.Context) ([]model.Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Registration(nil), m.regs...), nil
}
