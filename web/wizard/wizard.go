// Package wizard implements the step-by-step invitation creation flow:
// couple details, event details, template choice, then a single save.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/toyxona/toycard/internal/models"
	"github.com/toyxona/toycard/web/api"
	"github.com/toyxona/toycard/web/draft"
)

// Step identifies a wizard screen.
type Step int

const (
	StepGroom Step = iota
	StepBride
	StepEvent
	StepTemplate
)

// Steps lists the wizard screens in order.
var Steps = []Step{StepGroom, StepBride, StepEvent, StepTemplate}

// String returns the step name.
func (s Step) String() string {
	switch s {
	case StepGroom:
		return "groom"
	case StepBride:
		return "bride"
	case StepEvent:
		return "event"
	case StepTemplate:
		return "template"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// FieldError describes a single failed field check on the current step.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationError aggregates the field errors blocking a step advance.
type ValidationError struct {
	Step   Step
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("step %s has %d invalid fields", e.Step, len(e.Fields))
}

// ErrNotSubmittable is returned by Submit before the final step is
// reached and confirmed.
var ErrNotSubmittable = errors.New("wizard has remaining steps")

// Portraits carries the image bytes staged for upload after the first
// save assigns an identity.
type Portraits struct {
	Groom []byte
	Bride []byte
}

// Wizard drives one invitation creation session.
type Wizard struct {
	store  *draft.Store
	logger *slog.Logger

	step      Step
	confirmed bool
	portraits Portraits
	doneID    string
}

// New creates a wizard positioned on the first step.
func New(store *draft.Store, logger *slog.Logger) *Wizard {
	if logger == nil {
		logger = slog.Default()
	}
	return &Wizard{
		store:  store,
		logger: logger,
		step:   StepGroom,
	}
}

// Step returns the current step.
func (w *Wizard) Step() Step {
	return w.step
}

// Done reports whether the wizard finished, and with which identifier.
func (w *Wizard) Done() (string, bool) {
	return w.doneID, w.doneID != ""
}

// Update merges partial field values into the draft without validation.
func (w *Wizard) Update(partial models.Invitation) {
	w.store.UpdateFields(partial)
}

// StagePortraits stores the portrait bytes uploaded after submission.
func (w *Wizard) StagePortraits(p Portraits) {
	w.portraits = p
}

// Next validates the current step and advances past it. On the final
// step it marks the template choice confirmed instead of advancing.
func (w *Wizard) Next() error {
	if err := w.validate(w.step); err != nil {
		return err
	}
	if w.step == StepTemplate {
		w.confirmed = true
		return nil
	}
	w.step++
	return nil
}

// Back moves to the previous step. Already-entered values are kept and
// never re-validated on the way back.
func (w *Wizard) Back() {
	if w.step > StepGroom {
		w.step--
	}
	w.confirmed = false
}

// Jump moves directly to any step without validation.
func (w *Wizard) Jump(step Step) {
	if step < StepGroom || step > StepTemplate {
		return
	}
	w.step = step
	if step != StepTemplate {
		w.confirmed = false
	}
}

// validate checks the required fields of one step.
func (w *Wizard) validate(step Step) error {
	d := w.store.Draft()
	var fields []FieldError

	switch step {
	case StepGroom:
		if d.GroomName == "" {
			fields = append(fields, FieldError{"groom_name", "required"})
		}
	case StepBride:
		if d.BrideName == "" {
			fields = append(fields, FieldError{"bride_name", "required"})
		}
	case StepEvent:
		if d.Date == "" {
			fields = append(fields, FieldError{"date", "required"})
		}
		if d.Time == "" {
			fields = append(fields, FieldError{"time", "required"})
		}
		if d.Hall == "" {
			fields = append(fields, FieldError{"hall", "required"})
		}
		if d.Location == "" {
			fields = append(fields, FieldError{"location", "required"})
		}
	case StepTemplate:
		if d.Template == "" {
			fields = append(fields, FieldError{"template", "required"})
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Step: step, Fields: fields}
	}
	return nil
}

// Submit saves the draft and uploads any staged portraits to the
// returned pre-signed targets. Both uploads run concurrently and both
// are awaited. A save failure keeps the wizard on the final step; the
// error is also available from the store's last-error slot.
func (w *Wizard) Submit(ctx context.Context) (string, error) {
	if w.step != StepTemplate || !w.confirmed {
		return "", ErrNotSubmittable
	}

	result, err := w.store.Save(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to save invitation: %w", err)
	}

	if err := w.uploadPortraits(ctx, result); err != nil {
		// The record is saved; report the upload failure without
		// rewinding the flow.
		w.logger.Error("portrait upload failed", "error", err, "invitation_id", result.ID)
		w.doneID = result.ID
		return result.ID, err
	}

	w.doneID = result.ID
	return result.ID, nil
}

func (w *Wizard) uploadPortraits(ctx context.Context, result *api.SaveResult) error {
	g, ctx := errgroup.WithContext(ctx)

	if len(w.portraits.Groom) > 0 && result.GroomPictureUpload != "" {
		data, target := w.portraits.Groom, result.GroomPictureUpload
		g.Go(func() error {
			return w.store.Upload(ctx, target, data)
		})
	}
	if len(w.portraits.Bride) > 0 && result.BridePictureUpload != "" {
		data, target := w.portraits.Bride, result.BridePictureUpload
		g.Go(func() error {
			return w.store.Upload(ctx, target, data)
		})
	}

	return g.Wait()
}
