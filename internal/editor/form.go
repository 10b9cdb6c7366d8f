// Package editor holds the customer form: field state, model/variant reconciliation and submission.
package editor

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/giahoa6/crm/internal/model"

	apperrors "github.com/giahoa6/crm/internal/errors"
)

// ErrSubmitInFlight is returned when form is submitted while previous submission is running
var ErrSubmitInFlight = errors.New("form is already being submitted")

// Writer is the catalog write side used by the form
type Writer interface {
	Create(context.Context, model.NewCustomer) (model.Customer, error)
	Update(context.Context, int64, model.CustomerPatch) error
}

// Fields is the editable content of the form
type Fields struct {
	FullName        string       `json:"fullName"`
	Phone           string       `json:"phone"`
	PreferredModel  string       `json:"preferredModel"`
	PreferredColor  string       `json:"preferredColor"`
	ReasonNotBuying string       `json:"reasonNotBuying"`
	Status          model.Status `json:"status"`
}

// Form edits an existing customer or creates a new one
type Form struct {
	writer    Writer
	onSuccess func()

	id   int64
	edit bool

	mu         sync.Mutex
	fields     Fields
	selection  Selection
	submitting bool
	err        string
}

// NewCreateForm builds empty form for a new customer
func NewCreateForm(w Writer, onSuccess func()) *Form {
	return &Form{
		writer:    w,
		onSuccess: onSuccess,
		fields:    Fields{Status: model.StatusNew},
	}
}

// NewEditForm builds form populated from customer, stored model text is kept verbatim
func NewEditForm(w Writer, c model.Customer, onSuccess func()) *Form {
	return &Form{
		writer:    w,
		onSuccess: onSuccess,
		id:        c.ID,
		edit:      true,
		fields: Fields{
			FullName:        c.FullName,
			Phone:           c.Phone,
			PreferredModel:  c.PreferredModel,
			PreferredColor:  c.PreferredColor,
			ReasonNotBuying: c.ReasonNotBuying,
			Status:          c.Status,
		},
		selection: Decompose(c.PreferredModel),
	}
}

// IsEdit reports whether form updates an existing customer
func (f *Form) IsEdit() bool {
	return f.edit
}

// Fields returns current field values
func (f *Form) Fields() Fields {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

// Selection returns current model selector state
func (f *Form) Selection() Selection {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.selection
}

// Variants lists variants of the selected model
func (f *Form) Variants() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	m, ok := model.FindMotorcycle(f.selection.Model)
	if !ok {
		return []string{}
	}
	return append([]string{}, m.Variants...)
}

// Submitting reports whether submission is in flight
func (f *Form) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// Error returns message of the last failed submission
func (f *Form) Error() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// Edit applies fn to the fields under the form lock
func (f *Form) Edit(fn func(*Fields)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(&f.fields)
}

// SelectModel selects catalog model, empty name clears selection.
// The first variant is selected automatically if model has any.
func (f *Form) SelectModel(name string) error {
	sel := Selection{}

	if name != "" {
		m, ok := model.FindMotorcycle(name)
		if !ok {
			return fmt.Errorf("model %q is not in the catalog", name)
		}

		sel.Model = m.Name
		if len(m.Variants) > 0 {
			sel.Variant = m.Variants[0]
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.selection = sel
	f.fields.PreferredModel = Compose(sel)
	return nil
}

// SelectVariant selects variant of the currently selected model
func (f *Form) SelectVariant(variant string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	m, ok := model.FindMotorcycle(f.selection.Model)
	if !ok {
		return errors.New("model must be selected before variant")
	}

	if variant != "" && !m.HasVariant(variant) {
		return fmt.Errorf("model %s has no variant %q", m.Name, variant)
	}

	f.selection.Variant = variant
	f.fields.PreferredModel = Compose(f.selection)
	return nil
}

// Submit sends form content through the writer. On failure error text is kept and
// fields stay populated, on success completion callback is invoked.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return ErrSubmitInFlight
	}
	f.submitting = true
	f.err = ""
	fields := f.fields
	f.mu.Unlock()

	var err error
	if f.edit {
		err = f.writer.Update(ctx, f.id, patchOf(fields))
	} else {
		_, err = f.writer.Create(ctx, model.NewCustomer{
			FullName:        fields.FullName,
			Phone:           fields.Phone,
			PreferredModel:  fields.PreferredModel,
			PreferredColor:  fields.PreferredColor,
			ReasonNotBuying: fields.ReasonNotBuying,
		})
	}

	f.mu.Lock()
	f.submitting = false
	if err != nil {
		f.err = apperrors.Message(err)
	}
	f.mu.Unlock()

	if err != nil {
		return err
	}

	if f.onSuccess != nil {
		f.onSuccess()
	}
	return nil
}

func patchOf(fields Fields) model.CustomerPatch {
	status := fields.Status
	return model.CustomerPatch{
		FullName:        &fields.FullName,
		Phone:           &fields.Phone,
		PreferredModel:  &fields.PreferredModel,
		PreferredColor:  &fields.PreferredColor,
		ReasonNotBuying: &fields.ReasonNotBuying,
		Status:          &status,
	}
}
