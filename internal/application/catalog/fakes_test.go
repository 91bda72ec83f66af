package catalog

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/dulceria-api/internal/application/audit"
	"github.com/jhoicas/dulceria-api/internal/domain"
	"github.com/jhoicas/dulceria-api/internal/domain/entity"
	"github.com/jhoicas/dulceria-api/internal/domain/inventory"
	"github.com/jhoicas/dulceria-api/internal/domain/repository"
)

type memProducts struct {
	mu         sync.Mutex
	seq        int64
	items      map[string]*entity.Product
	referenced map[string]bool // productos con movimientos
}

func newMemProducts() *memProducts {
	return &memProducts{items: map[string]*entity.Product{}, referenced: map[string]bool{}}
}

func (r *memProducts) NextSeq(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	return r.seq, nil
}

func (r *memProducts) Create(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *memProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProducts) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *memProducts) Update(ctx context.Context, p *entity.Product) error {
	return r.Create(ctx, p)
}

func (r *memProducts) UpdateStock(_ context.Context, id string, stock int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[id].Stock = stock
	return nil
}

func (r *memProducts) UpdateCost(_ context.Context, id string, cost decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[id].Cost = cost
	return nil
}

func (r *memProducts) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	r.mu.Lock()
	all := make([]*entity.Product, 0, len(r.items))
	for _, p := range r.items {
		cp := *p
		all = append(all, &cp)
	}
	r.mu.Unlock()

	// igual que el CTE numbered: ROW_NUMBER() OVER (ORDER BY seq) sobre todo el catálogo, antes de filtrar
	sort.Slice(all, func(i, j int) bool { return all[i].Seq < all[j].Seq })
	for i, p := range all {
		p.DisplaySKU = inventory.FormatSKU(int64(i + 1))
	}
	var out []*entity.Product
	for _, p := range all {
		if f.ApprovalStatus != "" && p.ApprovalStatus != f.ApprovalStatus {
			continue
		}
		out = append(out, p)
	}
	total := len(out)
	if f.Offset < len(out) {
		out = out[f.Offset:]
	} else {
		out = nil
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, total, nil
}

func (r *memProducts) ListBelowReorderPoint(context.Context) ([]*entity.Product, error) {
	return nil, nil
}

func (r *memProducts) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.referenced[id] {
		return domain.ErrConflict
	}
	delete(r.items, id)
	return nil
}

type memCategories struct {
	mu    sync.Mutex
	items []*entity.Category
}

func (r *memCategories) Create(_ context.Context, c *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, c)
	return nil
}

func (r *memCategories) GetByID(_ context.Context, id string) (*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.items {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (r *memCategories) GetByName(_ context.Context, name string) (*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.items {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, nil
}

func (r *memCategories) List(context.Context) ([]*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append([]*entity.Category(nil), r.items...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type memSuppliers struct {
	mu    sync.Mutex
	items map[string]*entity.Supplier
}

func newMemSuppliers() *memSuppliers {
	return &memSuppliers{items: map[string]*entity.Supplier{}}
}

func (r *memSuppliers) Create(_ context.Context, s *entity.Supplier) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.items[s.ID] = &cp
	return nil
}

func (r *memSuppliers) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *memSuppliers) GetByRUT(_ context.Context, rut string) (*entity.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.items {
		if s.RUT == rut {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memSuppliers) Update(ctx context.Context, s *entity.Supplier) error {
	return r.Create(ctx, s)
}

func (r *memSuppliers) List(_ context.Context, _, status string, _, _ int) ([]*entity.Supplier, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Supplier
	for _, s := range r.items {
		if status == "" || s.Status == status {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, len(out), nil
}

func (r *memSuppliers) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

type memWarehouses struct {
	mu         sync.Mutex
	items      map[string]*entity.Warehouse
	referenced map[string]bool
}

func newMemWarehouses() *memWarehouses {
	return &memWarehouses{items: map[string]*entity.Warehouse{}, referenced: map[string]bool{}}
}

func (r *memWarehouses) Create(_ context.Context, w *entity.Warehouse) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *w
	r.items[w.ID] = &cp
	return nil
}

func (r *memWarehouses) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *memWarehouses) GetByCode(_ context.Context, code string) (*entity.Warehouse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, w := range r.items {
		if w.Code == code {
			cp := *w
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memWarehouses) Update(ctx context.Context, w *entity.Warehouse) error {
	return r.Create(ctx, w)
}

func (r *memWarehouses) List(_ context.Context, onlyActive bool) ([]*entity.Warehouse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Warehouse
	for _, w := range r.items {
		if onlyActive && !w.IsActive {
			continue
		}
		cp := *w
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *memWarehouses) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.referenced[id] {
		return domain.ErrConflict
	}
	delete(r.items, id)
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []audit.Event
}

func (p *recordingPublisher) Publish(e audit.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) actions() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Action)
	}
	return out
}
