package application

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/danuartha/go-commerce-api/internal/domain/entity"
	repo "github.com/danuartha/go-commerce-api/internal/domain/repository"
)

type userRepoMock struct {
	users map[string]*entity.User
}

func newUserRepoMock() *userRepoMock {
	return &userRepoMock{users: map[string]*entity.User{}}
}

func (m *userRepoMock) Create(_ context.Context, u *entity.User) error {
	for _, v := range m.users {
		if v.Email == u.Email {
			return repo.ErrDuplicate
		}
	}
	u.ID = uuid.NewString()
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *userRepoMock) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *userRepoMock) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

type productRepoMock struct {
	products map[string]*entity.Product
}

func newProductRepoMock() *productRepoMock {
	return &productRepoMock{products: map[string]*entity.Product{}}
}

func (m *productRepoMock) Create(_ context.Context, p *entity.Product) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	cp := *p
	m.products[p.ID] = &cp
	return nil
}

func (m *productRepoMock) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *productRepoMock) List(_ context.Context, f repo.ProductFilter) ([]entity.Product, int, error) {
	all := make([]entity.Product, 0, len(m.products))
	for _, p := range m.products {
		if f.ActiveOnly && !p.IsActive {
			continue
		}
		if f.CategoryID != "" && p.CategoryID != f.CategoryID {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Search)) {
			continue
		}
		all = append(all, *p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })

	total := len(all)
	start := f.Offset()
	if start > total {
		start = total
	}
	end := start + f.Limit
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

func (m *productRepoMock) Update(_ context.Context, p *entity.Product) error {
	if _, ok := m.products[p.ID]; !ok {
		return repo.ErrNotFound
	}
	cp := *p
	m.products[p.ID] = &cp
	return nil
}

func (m *productRepoMock) Delete(_ context.Context, id string) error {
	if _, ok := m.products[id]; !ok {
		return repo.ErrNotFound
	}
	delete(m.products, id)
	return nil
}

type orderRepoMock struct {
	products *productRepoMock
	orders   map[string]*entity.Order
}

func newOrderRepoMock(products *productRepoMock) *orderRepoMock {
	return &orderRepoMock{products: products, orders: map[string]*entity.Order{}}
}

// Create mirrors the transactional contract: if any item's stock is short, no
// stock is touched and the order is not stored.
func (m *orderRepoMock) Create(_ context.Context, o *entity.Order) error {
	for _, it := range o.Items {
		p, ok := m.products.products[it.ProductID]
		if !ok || p.Stock < it.Quantity {
			return repo.ErrInsufficientStock
		}
	}
	for _, it := range o.Items {
		m.products.products[it.ProductID].Stock -= it.Quantity
	}
	o.ID = uuid.NewString()
	cp := *o
	cp.Items = append([]entity.OrderItem(nil), o.Items...)
	m.orders[o.ID] = &cp
	return nil
}

func (m *orderRepoMock) GetByID(_ context.Context, id string) (*entity.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *o
	cp.Items = append([]entity.OrderItem(nil), o.Items...)
	for i := range cp.Items {
		if p, ok := m.products.products[cp.Items[i].ProductID]; ok {
			pc := *p
			cp.Items[i].Product = &pc
		}
	}
	return &cp, nil
}

// listCopy mirrors the list-read contract: items carry only a minimal product
// projection (name and images), not the full record.
func (m *orderRepoMock) listCopy(o *entity.Order) entity.Order {
	cp := *o
	cp.Items = append([]entity.OrderItem(nil), o.Items...)
	for i := range cp.Items {
		if p, ok := m.products.products[cp.Items[i].ProductID]; ok {
			cp.Items[i].Product = &entity.Product{ID: p.ID, Name: p.Name, Images: p.Images}
		}
	}
	return cp
}

func (m *orderRepoMock) ListByUser(_ context.Context, userID string) ([]entity.Order, error) {
	out := []entity.Order{}
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, m.listCopy(o))
		}
	}
	return out, nil
}

func (m *orderRepoMock) ListAll(_ context.Context) ([]entity.Order, error) {
	out := []entity.Order{}
	for _, o := range m.orders {
		out = append(out, m.listCopy(o))
	}
	return out, nil
}

func (m *orderRepoMock) UpdateStatus(ctx context.Context, id string, upd repo.StatusUpdate) (*entity.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	if upd.OrderStatus != nil {
		o.OrderStatus = *upd.OrderStatus
	}
	if upd.PaymentStatus != nil {
		o.PaymentStatus = *upd.PaymentStatus
	}
	if upd.TransactionID != nil {
		o.TransactionID = *upd.TransactionID
	}
	return m.GetByID(ctx, id)
}

type categoryRepoMock struct {
	categories map[string]*entity.Category
}

func newCategoryRepoMock() *categoryRepoMock {
	return &categoryRepoMock{categories: map[string]*entity.Category{}}
}

func (m *categoryRepoMock) Create(_ context.Context, c *entity.Category) error {
	for _, v := range m.categories {
		if v.Slug == c.Slug {
			return repo.ErrDuplicate
		}
	}
	c.ID = uuid.NewString()
	cp := *c
	m.categories[c.ID] = &cp
	return nil
}

func (m *categoryRepoMock) GetByID(_ context.Context, id string) (*entity.Category, error) {
	c, ok := m.categories[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *categoryRepoMock) GetBySlug(_ context.Context, slug string) (*entity.Category, error) {
	for _, c := range m.categories {
		if c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *categoryRepoMock) ListActive(_ context.Context) ([]entity.Category, error) {
	out := []entity.Category{}
	for _, c := range m.categories {
		if !c.IsActive {
			continue
		}
		cp := *c
		if cp.ParentID != nil {
			if p, ok := m.categories[*cp.ParentID]; ok {
				cp.Parent = &entity.CategoryRef{Name: p.Name, Slug: p.Slug}
			}
		}
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *categoryRepoMock) Update(_ context.Context, c *entity.Category) error {
	if _, ok := m.categories[c.ID]; !ok {
		return repo.ErrNotFound
	}
	for id, v := range m.categories {
		if v.Slug == c.Slug && id != c.ID {
			return repo.ErrDuplicate
		}
	}
	cp := *c
	m.categories[c.ID] = &cp
	return nil
}

func (m *categoryRepoMock) Delete(_ context.Context, id string) error {
	if _, ok := m.categories[id]; !ok {
		return repo.ErrNotFound
	}
	delete(m.categories, id)
	return nil
}

type brandRepoMock struct {
	brands map[string]*entity.Brand
}

func newBrandRepoMock() *brandRepoMock {
	return &brandRepoMock{brands: map[string]*entity.Brand{}}
}

func (m *brandRepoMock) Create(_ context.Context, b *entity.Brand) error {
	for _, v := range m.brands {
		if v.Slug == b.Slug {
			return repo.ErrDuplicate
		}
	}
	b.ID = uuid.NewString()
	cp := *b
	m.brands[b.ID] = &cp
	return nil
}

func (m *brandRepoMock) GetByID(_ context.Context, id string) (*entity.Brand, error) {
	b, ok := m.brands[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *brandRepoMock) List(_ context.Context) ([]entity.Brand, error) {
	out := []entity.Brand{}
	for _, b := range m.brands {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *brandRepoMock) Update(_ context.Context, b *entity.Brand) error {
	if _, ok := m.brands[b.ID]; !ok {
		return repo.ErrNotFound
	}
	cp := *b
	m.brands[b.ID] = &cp
	return nil
}

func (m *brandRepoMock) Delete(_ context.Context, id string) error {
	if _, ok := m.brands[id]; !ok {
		return repo.ErrNotFound
	}
	delete(m.brands, id)
	return nil
}
