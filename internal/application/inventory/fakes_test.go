package inventory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/dulceria-api/internal/application/audit"
	"github.com/jhoicas/dulceria-api/internal/domain/entity"
	"github.com/jhoicas/dulceria-api/internal/domain/repository"
)

// memStore simula PostgreSQL en memoria: Run serializa transacciones y restaura el estado si fn falla.
type memStore struct {
	txMu sync.Mutex
	mu   sync.Mutex

	products   map[string]*entity.Product
	movements  map[string]*entity.Movement
	seq        int64
	warehouses map[string]*entity.Warehouse
	suppliers  map[string]*entity.Supplier

	failMovementCreate error
	lastFilter         repository.MovementFilter
}

func newMemStore() *memStore {
	return &memStore{
		products:   map[string]*entity.Product{},
		movements:  map[string]*entity.Movement{},
		warehouses: map[string]*entity.Warehouse{},
		suppliers:  map[string]*entity.Supplier{},
	}
}

func (s *memStore) Run(ctx context.Context, fn func(repository.MovementRepository, repository.ProductRepository) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	prods := make(map[string]entity.Product, len(s.products))
	for k, v := range s.products {
		prods[k] = *v
	}
	movs := make(map[string]*entity.Movement, len(s.movements))
	for k, v := range s.movements {
		movs[k] = v
	}
	s.mu.Unlock()

	if err := fn(&memMovementRepo{s}, &memProductRepo{s}); err != nil {
		s.mu.Lock()
		for k := range s.products {
			if p, ok := prods[k]; ok {
				cp := p
				s.products[k] = &cp
			}
		}
		s.movements = movs
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *memStore) stock(id string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products[id].Stock
}

func (s *memStore) addProduct(id string, stock int64) *entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	p := &entity.Product{
		ID: id, Seq: s.seq, SKU: "SKU-" + id, Name: "Producto " + id, Stock: stock,
		IsActive: true, ApprovalStatus: entity.ApprovalApproved,
	}
	s.products[id] = p
	return p
}

// ── productos ───────────────────────────────────────────────────────────────

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) NextSeq(context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.seq++
	return r.s.seq, nil
}

func (r *memProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *memProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) UpdateStock(_ context.Context, id string, stock int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if stock < 0 {
		return errors.New("check constraint productos_stock_check")
	}
	r.s.products[id].Stock = stock
	return nil
}

func (r *memProductRepo) UpdateCost(_ context.Context, id string, cost decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.products[id].Cost = cost
	return nil
}

func (r *memProductRepo) List(context.Context, repository.ProductFilter) ([]*entity.Product, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out, len(out), nil
}

func (r *memProductRepo) ListBelowReorderPoint(ctx context.Context) ([]*entity.Product, error) {
	all, _, _ := r.List(ctx, repository.ProductFilter{})
	var out []*entity.Product
	for _, p := range all {
		if p.Stock <= p.ReorderPoint {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memProductRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.products, id)
	return nil
}

// ── movimientos ─────────────────────────────────────────────────────────────

type memMovementRepo struct{ s *memStore }

func (r *memMovementRepo) Create(_ context.Context, m *entity.Movement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failMovementCreate != nil {
		return r.s.failMovementCreate
	}
	cp := *m
	r.s.movements[m.ID] = &cp
	return nil
}

func (r *memMovementRepo) GetByID(_ context.Context, id string) (*entity.Movement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.movements[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *memMovementRepo) GetForUpdate(ctx context.Context, id string) (*entity.Movement, error) {
	return r.GetByID(ctx, id)
}

func (r *memMovementRepo) UpdateDetails(_ context.Context, id string, d entity.MovementDetails) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m := *r.s.movements[id]
	if d.SupplierID != nil {
		m.SupplierID = *d.SupplierID
	}
	if d.Lot != nil {
		m.Lot = *d.Lot
	}
	if d.Serial != nil {
		m.Serial = *d.Serial
	}
	if d.DocReference != nil {
		m.DocReference = *d.DocReference
	}
	if d.Notes != nil {
		m.Notes = *d.Notes
	}
	if d.Reason != nil {
		m.Reason = *d.Reason
	}
	switch {
	case d.ClearExpiry:
		m.ExpiryDate = nil
	case d.ExpiryDate != nil:
		m.ExpiryDate = d.ExpiryDate
	}
	r.s.movements[id] = &m
	return nil
}

func (r *memMovementRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.movements, id)
	return nil
}

func (r *memMovementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.Movement, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.lastFilter = f
	var out []*entity.Movement
	for _, m := range r.s.movements {
		if f.Type != "" && m.Type != f.Type {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, len(out), nil
}

func (r *memMovementRepo) ListByProduct(_ context.Context, productID string) ([]*entity.Movement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Movement
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			cp := *m
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// ── bodegas y proveedores ───────────────────────────────────────────────────

type memWarehouseRepo struct{ s *memStore }

func (r *memWarehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.warehouses[w.ID] = w
	return nil
}

func (r *memWarehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.warehouses[id], nil
}

func (r *memWarehouseRepo) GetByCode(_ context.Context, code string) (*entity.Warehouse, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, w := range r.s.warehouses {
		if w.Code == code {
			return w, nil
		}
	}
	return nil, nil
}

func (r *memWarehouseRepo) Update(ctx context.Context, w *entity.Warehouse) error {
	return r.Create(ctx, w)
}

func (r *memWarehouseRepo) List(context.Context, bool) ([]*entity.Warehouse, error) {
	return nil, nil
}

func (r *memWarehouseRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.warehouses, id)
	return nil
}

type memSupplierRepo struct{ s *memStore }

func (r *memSupplierRepo) Create(_ context.Context, sup *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.suppliers[sup.ID] = sup
	return nil
}

func (r *memSupplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.suppliers[id], nil
}

func (r *memSupplierRepo) GetByRUT(context.Context, string) (*entity.Supplier, error) {
	return nil, nil
}

func (r *memSupplierRepo) Update(ctx context.Context, sup *entity.Supplier) error {
	return r.Create(ctx, sup)
}

func (r *memSupplierRepo) List(context.Context, string, string, int, int) ([]*entity.Supplier, int, error) {
	return nil, 0, nil
}

func (r *memSupplierRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.suppliers, id)
	return nil
}

// ── auditoría ───────────────────────────────────────────────────────────────

type recordingPublisher struct {
	mu     sync.Mutex
	events []audit.Event
}

func (p *recordingPublisher) Publish(e audit.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}
