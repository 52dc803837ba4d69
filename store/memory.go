package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"restaurant-backend/models"
)

// Memory keeps every collection in a map keyed by id with a
// monotonically increasing counter per collection. Safe for concurrent
// use; intended for tests and local development.
type Memory struct {
	mu sync.RWMutex

	menuItems    map[int64]models.MenuItem
	reservations map[int64]models.Reservation
	contacts     map[int64]models.Contact
	admins       map[int64]models.AdminUser

	nextMenuID        int64
	nextReservationID int64
	nextContactID     int64
	nextAdminID       int64
}

var _ Store = (*Memory)(nil)

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		menuItems:         make(map[int64]models.MenuItem),
		reservations:      make(map[int64]models.Reservation),
		contacts:          make(map[int64]models.Contact),
		admins:            make(map[int64]models.AdminUser),
		nextMenuID:        1,
		nextReservationID: 1,
		nextContactID:     1,
		nextAdminID:       1,
	}
}

// --- MenuStore ---------------------------------------------------------------

func (m *Memory) ListMenuItems(_ context.Context) ([]models.MenuItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	items := make([]models.MenuItem, 0, len(m.menuItems))
	for _, it := range m.menuItems {
		items = append(items, it)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (m *Memory) ListMenuItemsByCategory(_ context.Context, category string) ([]models.MenuItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	items := make([]models.MenuItem, 0)
	for _, it := range m.menuItems {
		if it.Category == category {
			items = append(items, it)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (m *Memory) GetMenuItem(_ context.Context, id int64) (models.MenuItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	it, ok := m.menuItems[id]
	if !ok {
		return models.MenuItem{}, ErrNotFound
	}
	return it, nil
}

func (m *Memory) CreateMenuItem(_ context.Context, in MenuItemInput) (models.MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	it := models.MenuItem{
		ID:          m.nextMenuID,
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Price:       in.Price,
		Image:       in.Image,
		Available:   in.Available,
		CreatedAt:   time.Now().UTC(),
	}
	m.nextMenuID++
	m.menuItems[it.ID] = it
	return it, nil
}

func (m *Memory) UpdateMenuItem(_ context.Context, id int64, patch MenuItemPatch) (models.MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	it, ok := m.menuItems[id]
	if !ok {
		return models.MenuItem{}, ErrNotFound
	}
	if patch.Name != nil {
		it.Name = *patch.Name
	}
	if patch.Description != nil {
		it.Description = *patch.Description
	}
	if patch.Category != nil {
		it.Category = *patch.Category
	}
	if patch.Price != nil {
		it.Price = *patch.Price
	}
	if patch.Image != nil {
		it.Image = *patch.Image
	}
	if patch.Available != nil {
		it.Available = *patch.Available
	}
	m.menuItems[id] = it
	return it, nil
}

func (m *Memory) DeleteMenuItem(_ context.Context, id int64) (models.MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	it, ok := m.menuItems[id]
	if !ok {
		return models.MenuItem{}, ErrNotFound
	}
	delete(m.menuItems, id)
	return it, nil
}

// --- ReservationStore --------------------------------------------------------

func (m *Memory) ListReservations(_ context.Context) ([]models.Reservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rs := make([]models.Reservation, 0, len(m.reservations))
	for _, r := range m.reservations {
		rs = append(rs, r)
	}
	sort.Slice(rs, func(i, j int) bool { return rs[i].ID < rs[j].ID })
	return rs, nil
}

func (m *Memory) GetReservation(_ context.Context, id int64) (models.Reservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.reservations[id]
	if !ok {
		return models.Reservation{}, ErrNotFound
	}
	return r, nil
}

func (m *Memory) CreateReservation(_ context.Context, in ReservationInput) (models.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r := models.Reservation{
		ID:        m.nextReservationID,
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Date:      in.Date,
		Time:      in.Time,
		Guests:    in.Guests,
		Comments:  in.Comments,
		Status:    models.ReservationPending,
		CreatedAt: time.Now().UTC(),
	}
	m.nextReservationID++
	m.reservations[r.ID] = r
	return r, nil
}

func (m *Memory) SetReservationStatus(_ context.Context, id int64, status string) (models.Reservation, error) {
	if !models.ValidReservationStatus(status) {
		return models.Reservation{}, ErrInvalidStatus
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.reservations[id]
	if !ok {
		return models.Reservation{}, ErrNotFound
	}
	r.Status = status
	m.reservations[id] = r
	return r, nil
}

// --- ContactStore ------------------------------------------------------------

func (m *Memory) ListContacts(_ context.Context) ([]models.Contact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cs := make([]models.Contact, 0, len(m.contacts))
	for _, c := range m.contacts {
		cs = append(cs, c)
	}
	sort.Slice(cs, func(i, j int) bool { return cs[i].ID < cs[j].ID })
	return cs, nil
}

func (m *Memory) CreateContact(_ context.Context, in ContactInput) (models.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := models.Contact{
		ID:        m.nextContactID,
		Name:      in.Name,
		Email:     in.Email,
		Subject:   in.Subject,
		Message:   in.Message,
		CreatedAt: time.Now().UTC(),
	}
	m.nextContactID++
	m.contacts[c.ID] = c
	return c, nil
}

// --- AdminStore --------------------------------------------------------------

func (m *Memory) GetAdminByUsername(_ context.Context, username string) (models.AdminUser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.admins {
		if u.Username == username {
			return u, nil
		}
	}
	return models.AdminUser{}, ErrNotFound
}

func (m *Memory) CreateAdmin(_ context.Context, username, passwordHash string) (models.AdminUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u := models.AdminUser{
		ID:           m.nextAdminID,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	m.nextAdminID++
	m.admins[u.ID] = u
	return u, nil
}

// SeedSampleMenu loads the demo catalog so a fresh memory-backed server
// has something to show. No-op when items already exist.
func (m *Memory) SeedSampleMenu(ctx context.Context) error {
	m.mu.RLock()
	n := len(m.menuItems)
	m.mu.RUnlock()
	if n > 0 {
		return nil
	}

	for _, in := range sampleMenu {
		if _, err := m.CreateMenuItem(ctx, in); err != nil {
			return err
		}
	}
	return nil
}

var sampleMenu = []MenuItemInput{
	{Name: "Foie Gras Trufado", Description: "Con reducción de vino tinto y microvegetales de temporada", Category: models.CategoryAppetizers, Price: 2400, Available: true},
	{Name: "Tartar de Atún", Description: "Atún rojo con aguacate, lima y aceite de sésamo", Category: models.CategoryAppetizers, Price: 2200, Available: true},
	{Name: "Beef Wellington", Description: "Solomillo envuelto en hojaldre con duxelles de champiñones y paté", Category: models.CategoryMains, Price: 4500, Available: true},
	{Name: "Langosta Thermidor", Description: "Langosta gratinada con salsa de brandy y queso gruyère", Category: models.CategoryMains, Price: 6500, Available: true},
	{Name: "Soufflé de Chocolate", Description: "Chocolate belga 70% con helado artesanal de vainilla bourbon", Category: models.CategoryDesserts, Price: 1600, Available: true},
	{Name: "Tarta de Limón", Description: "Con merengue italiano y crumble de almendra", Category: models.CategoryDesserts, Price: 1400, Available: true},
	{Name: "Rioja Gran Reserva", Description: "Cosecha 2015, crianza en barrica de roble francés", Category: models.CategoryBeverages, Price: 1200, Available: true},
	{Name: "Champagne Brut", Description: "Champagne francés con notas florales y cítricas", Category: models.CategoryBeverages, Price: 1800, Available: true},
}
