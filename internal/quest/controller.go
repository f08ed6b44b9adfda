// Package quest owns the registration form flow: validating input, running one
// profile generation at a time, and holding the result until reset.
package quest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Shivanand-hulikatti/ignite-quest/internal/logger"
	"github.com/Shivanand-hulikatti/ignite-quest/internal/model"
	"github.com/Shivanand-hulikatti/ignite-quest/internal/profilegen"
)

// State is the controller's position in the form flow.
type State string

const (
	StateCollecting State = "collecting"
	StatePending    State = "pending"
	StateResult     State = "result"
)

// FailureMessage is what the registrant sees after a failed generation.
const FailureMessage = "Profile generation failed, please try again."

var (
	// ErrInvalidInput is returned when a required field is missing or malformed.
	ErrInvalidInput = errors.New("invalid registration input")

	// ErrSubmissionInFlight is returned for a submit or reset while a
	// generation call is outstanding.
	ErrSubmissionInFlight = errors.New("a submission is already in flight")

	// ErrNotCollecting is returned for a submit while a result is shown.
	ErrNotCollecting = errors.New("quest already has a result, reset first")

	// ErrGenerationFailed wraps every generation error returned by Submit.
	ErrGenerationFailed = errors.New("profile generation failed")

	// ErrGenerationAborted is recorded when the generator panics mid-call.
	ErrGenerationAborted = errors.New("profile generation aborted")
)

// Generator produces a profile for one built request.
type Generator interface {
	Generate(ctx context.Context, req profilegen.Request) (model.QuestProfile, error)
}

// Observer receives flow events. *metrics.Metrics satisfies it.
type Observer interface {
	ObserveGeneration(outcome string, elapsed time.Duration)
	SubmissionRejected(reason string)
	SessionsActive(n int)
}

type nopObserver struct{}

func (nopObserver) ObserveGeneration(string, time.Duration) {}
func (nopObserver) SubmissionRejected(string)               {}
func (nopObserver) SessionsActive(int)                      {}

// Controller is the state machine behind one form instance. It is safe for
// concurrent use; at most one generation call is in flight at any time.
type Controller struct {
	gen Generator
	obs Observer
	log *logger.Logger

	mu      sync.Mutex
	state   State
	input   model.RegistrationInput
	data    *model.RegistrationData
	lastErr error
}

// NewController returns a controller in StateCollecting. obs may be nil.
func NewController(gen Generator, obs Observer, log *logger.Logger) *Controller {
	if obs == nil {
		obs = nopObserver{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Controller{
		gen:   gen,
		obs:   obs,
		log:   log,
		state: StateCollecting,
	}
}

// ValidateInput checks that every field is present and the email looks like
// one. It does not modify the input.
func ValidateInput(in model.RegistrationInput) error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	case strings.TrimSpace(in.Email) == "":
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	case strings.TrimSpace(in.Passion) == "":
		return fmt.Errorf("%w: passion is required", ErrInvalidInput)
	case !isValidEmail(strings.TrimSpace(in.Email)):
		return fmt.Errorf("%w: email is not a valid email address", ErrInvalidInput)
	}
	return nil
}

// isValidEmail does a basic structural check.
func isValidEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	return len(parts[0]) > 0 && strings.Contains(parts[1], ".")
}

// Submit validates in, runs one generation call and moves to StateResult on
// success. On failure the controller is back in StateCollecting with no
// profile, and the returned error wraps ErrGenerationFailed and the cause.
func (c *Controller) Submit(ctx context.Context, in model.RegistrationInput) (model.RegistrationData, error) {
	if err := ValidateInput(in); err != nil {
		c.obs.SubmissionRejected("invalid_input")
		return model.RegistrationData{}, err
	}

	c.mu.Lock()
	switch c.state {
	case StatePending:
		c.mu.Unlock()
		c.obs.SubmissionRejected("in_flight")
		return model.RegistrationData{}, ErrSubmissionInFlight
	case StateResult:
		c.mu.Unlock()
		c.obs.SubmissionRejected("not_collecting")
		return model.RegistrationData{}, ErrNotCollecting
	}
	c.state = StatePending
	c.input = in
	c.lastErr = nil
	c.mu.Unlock()

	start := time.Now()
	completed := false
	defer func() {
		if completed {
			return
		}
		c.mu.Lock()
		c.state = StateCollecting
		c.data = nil
		c.lastErr = ErrGenerationAborted
		c.mu.Unlock()
		c.obs.ObserveGeneration("aborted", time.Since(start))
		c.log.Error("profile generation aborted", "elapsed", time.Since(start))
	}()

	profile, err := c.gen.Generate(ctx, profilegen.NewRequest(in.Name, in.Passion))
	completed = true
	elapsed := time.Since(start)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		outcome := string(profilegen.KindOf(err))
		if outcome == "" {
			outcome = "error"
		}
		c.obs.ObserveGeneration(outcome, elapsed)
		c.log.Warn("profile generation failed", "outcome", outcome, "error", err, "elapsed", elapsed)

		c.state = StateCollecting
		c.data = nil
		c.lastErr = err
		return model.RegistrationData{}, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	c.obs.ObserveGeneration("success", elapsed)
	c.log.Info("profile generated", "questClass", profile.QuestClass, "elapsed", elapsed)

	data := model.RegistrationData{
		Name:         in.Name,
		Email:        in.Email,
		Role:         string(profile.QuestClass),
		QuestClass:   profile.QuestClass,
		Stats:        profile.Stats,
		CharacterBio: profile.Bio,
	}
	c.state = StateResult
	c.data = &data
	return data, nil
}

// Reset discards the result and returns to StateCollecting. keepInput keeps
// the last submitted fields for the caller to re-display. Reset is refused
// while a generation call is in flight.
func (c *Controller) Reset(keepInput bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StatePending {
		return ErrSubmissionInFlight
	}
	c.state = StateCollecting
	c.data = nil
	c.lastErr = nil
	if !keepInput {
		c.input = model.RegistrationInput{}
	}
	return nil
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Data returns the registration data; ok is false unless in StateResult.
func (c *Controller) Data() (data model.RegistrationData, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.data == nil {
		return model.RegistrationData{}, false
	}
	return *c.data, true
}

// LastError is the cause of the most recent failed submission, if the
// controller has not been reset or resubmitted since.
func (c *Controller) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// View is a JSON snapshot of the controller for the rendering surface.
type View struct {
	State   State                   `json:"state"`
	Loading bool                    `json:"loading"`
	Error   string                  `json:"error,omitempty"`
	Input   model.RegistrationInput `json:"input"`
	Result  *Presentation           `json:"result,omitempty"`
}

// View returns a consistent snapshot.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := View{
		State:   c.state,
		Loading: c.state == StatePending,
		Input:   c.input,
	}
	if c.lastErr != nil {
		v.Error = FailureMessage
	}
	if c.data != nil {
		p := Present(*c.data)
		v.Result = &p
	}
	return v
}
