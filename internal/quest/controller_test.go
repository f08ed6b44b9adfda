package quest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/Shivanand-hulikatti/ignite-quest/internal/model"
	"github.com/Shivanand-hulikatti/ignite-quest/internal/profilegen"
)

type fakeGenerator struct {
	mu       sync.Mutex
	requests []profilegen.Request
	profile  model.QuestProfile
	err      error
	panicV   any
	started  chan struct{}
	release  chan struct{}
}

func (f *fakeGenerator) Generate(ctx context.Context, req profilegen.Request) (model.QuestProfile, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	started, release := f.started, f.release
	profile, err, panicV := f.profile, f.err, f.panicV
	f.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return model.QuestProfile{}, ctx.Err()
		}
	}
	if panicV != nil {
		panic(panicV)
	}
	if err != nil {
		return model.QuestProfile{}, err
	}
	return profile, nil
}

func (f *fakeGenerator) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

type recordingObserver struct {
	mu         sync.Mutex
	outcomes   []string
	rejections []string
	sessions   int
}

func (o *recordingObserver) ObserveGeneration(outcome string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.outcomes = append(o.outcomes, outcome)
}

func (o *recordingObserver) SubmissionRejected(reason string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.rejections = append(o.rejections, reason)
}

func (o *recordingObserver) SessionsActive(n int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.sessions = n
}

var (
	riyaInput = model.RegistrationInput{Name: "Riya", Email: "r@nita.ac.in", Passion: "building things"}

	titanProfile = model.QuestProfile{
		QuestClass: model.TechTitan,
		Stats:      model.PlayerStats{Innovation: 80, Resilience: 60, Leadership: 70, RiskTaking: 50},
		Bio:        "Forged circuits in the upside down.",
	}
)

type ControllerTestSuite struct {
	suite.Suite
	gen  *fakeGenerator
	obs  *recordingObserver
	ctrl *Controller
	ctx  context.Context
}

func (s *ControllerTestSuite) SetupTest() {
	s.gen = &fakeGenerator{profile: titanProfile}
	s.obs = &recordingObserver{}
	s.ctrl = NewController(s.gen, s.obs, nil)
	s.ctx = context.Background()
}

func TestControllerTestSuite(t *testing.T) {
	suite.Run(t, new(ControllerTestSuite))
}

func (s *ControllerTestSuite) TestStartsCollecting() {
	s.Equal(StateCollecting, s.ctrl.State())
	_, ok := s.ctrl.Data()
	s.False(ok)

	v := s.ctrl.View()
	s.False(v.Loading)
	s.Nil(v.Result)
	s.Empty(v.Error)
}

func (s *ControllerTestSuite) TestSubmitSuccess() {
	data, err := s.ctrl.Submit(s.ctx, riyaInput)
	s.Require().NoError(err)

	s.Equal(StateResult, s.ctrl.State())
	s.Equal(model.TechTitan, data.QuestClass)
	s.Equal("Tech Titan", data.Role)
	s.Equal(titanProfile.Stats, data.Stats)
	s.Equal(titanProfile.Bio, data.CharacterBio)
	s.Equal("r@nita.ac.in", data.Email)

	stored, ok := s.ctrl.Data()
	s.True(ok)
	s.Equal(data, stored)

	s.Require().Len(s.gen.requests, 1)
	s.Contains(s.gen.requests[0].Prompt, "Riya")
	s.Contains(s.gen.requests[0].Prompt, "building things")
	s.NotContains(s.gen.requests[0].Prompt, "r@nita.ac.in")
	s.Equal([]string{"success"}, s.obs.outcomes)

	v := s.ctrl.View()
	s.Equal(StateResult, v.State)
	s.False(v.Loading)
	s.Require().NotNil(v.Result)
	s.Equal(model.TechTitan, v.Result.QuestClass)
}

func (s *ControllerTestSuite) TestSubmitFailureReturnsToCollecting() {
	cause := &profilegen.Error{Kind: profilegen.KindService, StatusCode: 500}
	s.gen.err = cause

	data, err := s.ctrl.Submit(s.ctx, riyaInput)
	s.Require().Error(err)
	s.ErrorIs(err, ErrGenerationFailed)
	s.ErrorIs(err, profilegen.ErrService)
	s.Equal(model.RegistrationData{}, data)

	s.Equal(StateCollecting, s.ctrl.State())
	_, ok := s.ctrl.Data()
	s.False(ok)
	s.ErrorIs(s.ctrl.LastError(), profilegen.ErrService)
	s.Equal([]string{"service"}, s.obs.outcomes)

	v := s.ctrl.View()
	s.False(v.Loading)
	s.Nil(v.Result)
	s.Equal(FailureMessage, v.Error)
	s.Equal(riyaInput, v.Input)
}

func (s *ControllerTestSuite) TestSubmitUnclassifiedFailure() {
	s.gen.err = errors.New("something odd")

	_, err := s.ctrl.Submit(s.ctx, riyaInput)
	s.ErrorIs(err, ErrGenerationFailed)
	s.Equal([]string{"error"}, s.obs.outcomes)
}

func (s *ControllerTestSuite) TestSubmitAfterFailureClearsError() {
	s.gen.err = errors.New("down")
	_, err := s.ctrl.Submit(s.ctx, riyaInput)
	s.Require().Error(err)

	s.gen.err = nil
	_, err = s.ctrl.Submit(s.ctx, riyaInput)
	s.Require().NoError(err)
	s.NoError(s.ctrl.LastError())
	s.Empty(s.ctrl.View().Error)
}

func (s *ControllerTestSuite) TestInvalidInputNeverCallsGenerator() {
	cases := map[string]model.RegistrationInput{
		"empty name":    {Name: "", Email: "r@nita.ac.in", Passion: "x"},
		"blank name":    {Name: "   ", Email: "r@nita.ac.in", Passion: "x"},
		"empty email":   {Name: "Riya", Email: "", Passion: "x"},
		"bad email":     {Name: "Riya", Email: "riya-at-nita", Passion: "x"},
		"empty passion": {Name: "Riya", Email: "r@nita.ac.in", Passion: ""},
	}
	for name, in := range cases {
		s.Run(name, func() {
			_, err := s.ctrl.Submit(s.ctx, in)
			s.ErrorIs(err, ErrInvalidInput)
			s.Equal(StateCollecting, s.ctrl.State())
		})
	}
	s.Equal(0, s.gen.calls())
	s.Len(s.obs.rejections, len(cases))
}

func (s *ControllerTestSuite) TestSubmitInResultIsRejected() {
	_, err := s.ctrl.Submit(s.ctx, riyaInput)
	s.Require().NoError(err)

	_, err = s.ctrl.Submit(s.ctx, riyaInput)
	s.ErrorIs(err, ErrNotCollecting)
	s.Equal(StateResult, s.ctrl.State())
	s.Equal(1, s.gen.calls())
}

func (s *ControllerTestSuite) TestResetFromResult() {
	_, err := s.ctrl.Submit(s.ctx, riyaInput)
	s.Require().NoError(err)

	s.Require().NoError(s.ctrl.Reset(false))
	s.Equal(StateCollecting, s.ctrl.State())
	_, ok := s.ctrl.Data()
	s.False(ok)
	s.Equal(model.RegistrationInput{}, s.ctrl.View().Input)

	_, err = s.ctrl.Submit(s.ctx, riyaInput)
	s.Require().NoError(err)
	s.Require().NoError(s.ctrl.Reset(true))
	s.Equal(riyaInput, s.ctrl.View().Input)
}

func (s *ControllerTestSuite) TestSingleFlight() {
	s.gen.started = make(chan struct{}, 1)
	s.gen.release = make(chan struct{})

	type result struct {
		data model.RegistrationData
		err  error
	}
	done := make(chan result, 1)
	go func() {
		data, err := s.ctrl.Submit(s.ctx, riyaInput)
		done <- result{data, err}
	}()

	<-s.gen.started
	s.Equal(StatePending, s.ctrl.State())
	s.True(s.ctrl.View().Loading)

	other := model.RegistrationInput{Name: "Arjun", Email: "a@nita.ac.in", Passion: "pitching"}
	_, err := s.ctrl.Submit(s.ctx, other)
	s.ErrorIs(err, ErrSubmissionInFlight)
	s.ErrorIs(s.ctrl.Reset(false), ErrSubmissionInFlight)

	close(s.gen.release)
	res := <-done
	s.Require().NoError(res.err)
	s.Equal("Riya", res.data.Name)

	s.Equal(1, s.gen.calls())
	s.Equal(StateResult, s.ctrl.State())
	data, _ := s.ctrl.Data()
	s.Equal("Riya", data.Name)
	s.Contains(s.obs.rejections, "in_flight")
}

func (s *ControllerTestSuite) TestConcurrentSubmitsProduceOneCall() {
	s.gen.started = make(chan struct{}, 16)
	s.gen.release = make(chan struct{})

	const n = 16
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.ctrl.Submit(s.ctx, riyaInput)
			errs <- err
		}()
	}

	<-s.gen.started
	close(s.gen.release)
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		s.True(errors.Is(err, ErrSubmissionInFlight) || errors.Is(err, ErrNotCollecting), "unexpected %v", err)
	}
	s.Equal(1, succeeded)
	s.Equal(1, s.gen.calls())
}

func (s *ControllerTestSuite) TestCancelledContextReturnsToCollecting() {
	s.gen.release = make(chan struct{})
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	_, err := s.ctrl.Submit(ctx, riyaInput)
	s.ErrorIs(err, context.Canceled)
	s.Equal(StateCollecting, s.ctrl.State())
}

func (s *ControllerTestSuite) TestGeneratorPanicLeavesFormResettable() {
	s.gen.panicV = "decoder exploded"

	s.Panics(func() {
		_, _ = s.ctrl.Submit(s.ctx, riyaInput)
	})

	s.Equal(StateCollecting, s.ctrl.State())
	s.ErrorIs(s.ctrl.LastError(), ErrGenerationAborted)
	s.Equal(FailureMessage, s.ctrl.View().Error)
	s.Equal([]string{"aborted"}, s.obs.outcomes)
	s.Require().NoError(s.ctrl.Reset(false))

	s.gen.panicV = nil
	_, err := s.ctrl.Submit(s.ctx, riyaInput)
	s.Require().NoError(err)
	s.Equal(StateResult, s.ctrl.State())
}
