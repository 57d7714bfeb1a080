// Package memory implementa los repositorios en memoria. Lo usa la herramienta
// offline cmd/apurar y los tests de casos de uso.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/recupera-monofasico/internal/domain"
	"github.com/jhoicas/recupera-monofasico/internal/domain/entity"
	"github.com/jhoicas/recupera-monofasico/internal/domain/repository"
)

var (
	_ repository.InvoiceRepository          = (*InvoiceRepo)(nil)
	_ repository.UploadRepository           = (*UploadRepo)(nil)
	_ repository.CalculationInputRepository = (*CalculationInputRepo)(nil)
)

// Store agrupa los datos; todos los repos de un Store comparten el mismo mutex.
type Store struct {
	mu       sync.Mutex
	invoices []*entity.Invoice
	uploads  []*entity.Upload
	inputs   map[string]entity.MonthlyCalculationInput
}

// NewStore crea un Store vacío.
func NewStore() *Store {
	return &Store{inputs: make(map[string]entity.MonthlyCalculationInput)}
}

// Invoices devuelve el repo de notas.
func (s *Store) Invoices() *InvoiceRepo { return &InvoiceRepo{s: s, lock: true} }

// Uploads devuelve el repo de uploads.
func (s *Store) Uploads() *UploadRepo { return &UploadRepo{s: s, lock: true} }

// Inputs devuelve el repo de parámetros mensuales.
func (s *Store) Inputs() *CalculationInputRepo { return &CalculationInputRepo{s: s} }

// Run ejecuta fn con el Store bloqueado; si fn falla se restaura el estado anterior.
func (s *Store) Run(ctx context.Context, fn func(invoices repository.InvoiceRepository, uploads repository.UploadRepository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	invSnap := make([]*entity.Invoice, len(s.invoices))
	for i, inv := range s.invoices {
		invSnap[i] = inv.Clone()
	}
	upSnap := make([]*entity.Upload, len(s.uploads))
	for i, u := range s.uploads {
		c := *u
		upSnap[i] = &c
	}

	if err := fn(&InvoiceRepo{s: s}, &UploadRepo{s: s}); err != nil {
		s.invoices, s.uploads = invSnap, upSnap
		return err
	}
	return nil
}

// ── Invoices ──────────────────────────────────────────────────────────────────

// InvoiceRepo repositorio de notas en memoria. Devuelve copias para que los
// llamadores no modifiquen el estado interno.
type InvoiceRepo struct {
	s    *Store
	lock bool // false dentro de Run (el Store ya está bloqueado)
}

func (r *InvoiceRepo) guard() func() {
	if !r.lock {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *InvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	defer r.guard()()
	for _, existing := range r.s.invoices {
		if inv.Fingerprint != "" && existing.Fingerprint == inv.Fingerprint {
			return domain.ErrDuplicate
		}
		if inv.HasAccessKey() && existing.AccessKey == inv.AccessKey {
			return domain.ErrDuplicate
		}
	}
	r.s.invoices = append(r.s.invoices, inv.Clone())
	return nil
}

func (r *InvoiceRepo) List(_ context.Context) ([]*entity.Invoice, error) {
	defer r.guard()()
	out := make([]*entity.Invoice, 0, len(r.s.invoices))
	for _, inv := range r.s.invoices {
		out = append(out, inv.Clone())
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].IssueDate < out[j].IssueDate })
	return out, nil
}

func (r *InvoiceRepo) Exists(_ context.Context, fingerprint, accessKey string) (bool, error) {
	defer r.guard()()
	for _, inv := range r.s.invoices {
		if inv.Fingerprint == fingerprint || (accessKey != "" && inv.AccessKey == accessKey) {
			return true, nil
		}
	}
	return false, nil
}

func (r *InvoiceRepo) UpdateItems(_ context.Context, items []entity.InvoiceItem) error {
	defer r.guard()()
	byID := make(map[string]entity.InvoiceItem, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}
	for _, inv := range r.s.invoices {
		for i, it := range inv.Items {
			if upd, ok := byID[it.ID]; ok {
				inv.Items[i].Description = upd.Description
				inv.Items[i].NCMCode = upd.NCMCode
				inv.Items[i].IsMonofasico = upd.IsMonofasico
				inv.Items[i].NeedsHumanReview = upd.NeedsHumanReview
			}
		}
	}
	return nil
}

func (r *InvoiceRepo) DeleteAll(_ context.Context) error {
	defer r.guard()()
	r.s.invoices = nil
	return nil
}

// ── Uploads ───────────────────────────────────────────────────────────────────

// UploadRepo repositorio de uploads en memoria.
type UploadRepo struct {
	s    *Store
	lock bool
}

func (r *UploadRepo) guard() func() {
	if !r.lock {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *UploadRepo) Create(_ context.Context, u *entity.Upload) error {
	defer r.guard()()
	c := *u
	r.s.uploads = append(r.s.uploads, &c)
	return nil
}

func (r *UploadRepo) GetByID(_ context.Context, id string) (*entity.Upload, error) {
	defer r.guard()()
	for _, u := range r.s.uploads {
		if u.ID == id {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (r *UploadRepo) List(_ context.Context) ([]*entity.Upload, error) {
	defer r.guard()()
	out := make([]*entity.Upload, 0, len(r.s.uploads))
	for i := len(r.s.uploads) - 1; i >= 0; i-- {
		c := *r.s.uploads[i]
		c.Content = nil
		out = append(out, &c)
	}
	return out, nil
}

func (r *UploadRepo) ListPending(_ context.Context) ([]*entity.Upload, error) {
	defer r.guard()()
	var out []*entity.Upload
	for _, u := range r.s.uploads {
		if u.Status == entity.UploadStatusPending {
			c := *u
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *UploadRepo) UpdateResult(_ context.Context, u *entity.Upload) error {
	defer r.guard()()
	for _, existing := range r.s.uploads {
		if existing.ID == u.ID {
			existing.Status = u.Status
			existing.ErrorMessage = u.ErrorMessage
			existing.InvoiceCount = u.InvoiceCount
			existing.ProcessedAt = u.ProcessedAt
			existing.Content = nil
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *UploadRepo) Delete(_ context.Context, id string) error {
	defer r.guard()()
	for i, u := range r.s.uploads {
		if u.ID == id {
			r.s.uploads = append(r.s.uploads[:i], r.s.uploads[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *UploadRepo) DeleteAll(_ context.Context) error {
	defer r.guard()()
	r.s.uploads = nil
	return nil
}

// ── Calculation inputs ────────────────────────────────────────────────────────

// CalculationInputRepo parámetros mensuales en memoria.
type CalculationInputRepo struct {
	s *Store
}

func (r *CalculationInputRepo) List(_ context.Context) (map[string]entity.MonthlyCalculationInput, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make(map[string]entity.MonthlyCalculationInput, len(r.s.inputs))
	for k, v := range r.s.inputs {
		out[k] = v
	}
	return out, nil
}

func (r *CalculationInputRepo) Upsert(_ context.Context, inputs []entity.MonthlyCalculationInput) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, in := range inputs {
		r.s.inputs[in.Month] = in
	}
	return nil
}

func (r *CalculationInputRepo) Delete(_ context.Context, month string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.inputs[month]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.inputs, month)
	return nil
}
