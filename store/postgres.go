package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"restaurant-backend/models"
)

// Postgres implements Store on top of a pgx connection pool. Schema
// lives in migrations/.
type Postgres struct {
	pool *pgxpool.Pool
}

var _ Store = (*Postgres)(nil)

// NewPostgres wraps an existing pool. The caller owns the pool's
// lifecycle.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// --- MenuStore ---------------------------------------------------------------

const menuColumns = `id, name, description, category, price, COALESCE(image, ''), available, created_at`

func scanMenuItem(row pgx.Row) (models.MenuItem, error) {
	var it models.MenuItem
	err := row.Scan(&it.ID, &it.Name, &it.Description, &it.Category, &it.Price, &it.Image, &it.Available, &it.CreatedAt)
	return it, err
}

func (p *Postgres) ListMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT `+menuColumns+` FROM menu_items
		ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]models.MenuItem, 0)
	for rows.Next() {
		it, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (p *Postgres) ListMenuItemsByCategory(ctx context.Context, category string) ([]models.MenuItem, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT `+menuColumns+` FROM menu_items
		WHERE category = $1
		ORDER BY id`,
		category,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]models.MenuItem, 0)
	for rows.Next() {
		it, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (p *Postgres) GetMenuItem(ctx context.Context, id int64) (models.MenuItem, error) {
	it, err := scanMenuItem(p.pool.QueryRow(ctx, `
		SELECT `+menuColumns+` FROM menu_items WHERE id = $1`,
		id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.MenuItem{}, ErrNotFound
	}
	return it, err
}

func (p *Postgres) CreateMenuItem(ctx context.Context, in MenuItemInput) (models.MenuItem, error) {
	it, err := scanMenuItem(p.pool.QueryRow(ctx, `
		INSERT INTO menu_items (name, description, category, price, image, available)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)
		RETURNING `+menuColumns,
		in.Name, in.Description, in.Category, in.Price, in.Image, in.Available,
	))
	return it, err
}

func (p *Postgres) UpdateMenuItem(ctx context.Context, id int64, patch MenuItemPatch) (models.MenuItem, error) {
	// Read-merge-write; last write wins, same as the memory store.
	it, err := p.GetMenuItem(ctx, id)
	if err != nil {
		return models.MenuItem{}, err
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

	updated, err := scanMenuItem(p.pool.QueryRow(ctx, `
		UPDATE menu_items SET
			name = $2, description = $3, category = $4, price = $5,
			image = NULLIF($6, ''), available = $7
		WHERE id = $1
		RETURNING `+menuColumns,
		id, it.Name, it.Description, it.Category, it.Price, it.Image, it.Available,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.MenuItem{}, ErrNotFound
	}
	return updated, err
}

func (p *Postgres) DeleteMenuItem(ctx context.Context, id int64) (models.MenuItem, error) {
	it, err := scanMenuItem(p.pool.QueryRow(ctx, `
		DELETE FROM menu_items WHERE id = $1
		RETURNING `+menuColumns,
		id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.MenuItem{}, ErrNotFound
	}
	return it, err
}

// --- ReservationStore --------------------------------------------------------

const reservationColumns = `id, name, email, phone, date, time, guests, COALESCE(comments, ''), status, created_at`

func scanReservation(row pgx.Row) (models.Reservation, error) {
	var r models.Reservation
	err := row.Scan(&r.ID, &r.Name, &r.Email, &r.Phone, &r.Date, &r.Time, &r.Guests, &r.Comments, &r.Status, &r.CreatedAt)
	return r, err
}

func (p *Postgres) ListReservations(ctx context.Context) ([]models.Reservation, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT `+reservationColumns+` FROM reservations
		ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rs := make([]models.Reservation, 0)
	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		rs = append(rs, r)
	}
	return rs, rows.Err()
}

func (p *Postgres) GetReservation(ctx context.Context, id int64) (models.Reservation, error) {
	r, err := scanReservation(p.pool.QueryRow(ctx, `
		SELECT `+reservationColumns+` FROM reservations WHERE id = $1`,
		id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Reservation{}, ErrNotFound
	}
	return r, err
}

func (p *Postgres) CreateReservation(ctx context.Context, in ReservationInput) (models.Reservation, error) {
	// Status is always 'pending' at creation, whatever the client sent.
	r, err := scanReservation(p.pool.QueryRow(ctx, `
		INSERT INTO reservations (name, email, phone, date, time, guests, comments, status)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), 'pending')
		RETURNING `+reservationColumns,
		in.Name, in.Email, in.Phone, in.Date, in.Time, in.Guests, in.Comments,
	))
	return r, err
}

func (p *Postgres) SetReservationStatus(ctx context.Context, id int64, status string) (models.Reservation, error) {
	if !models.ValidReservationStatus(status) {
		return models.Reservation{}, ErrInvalidStatus
	}
	r, err := scanReservation(p.pool.QueryRow(ctx, `
		UPDATE reservations SET status = $2
		WHERE id = $1
		RETURNING `+reservationColumns,
		id, status,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Reservation{}, ErrNotFound
	}
	return r, err
}

// --- ContactStore ------------------------------------------------------------

const contactColumns = `id, name, email, subject, message, created_at`

func scanContact(row pgx.Row) (models.Contact, error) {
	var c models.Contact
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Subject, &c.Message, &c.CreatedAt)
	return c, err
}

func (p *Postgres) ListContacts(ctx context.Context) ([]models.Contact, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT `+contactColumns+` FROM contacts
		ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cs := make([]models.Contact, 0)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		cs = append(cs, c)
	}
	return cs, rows.Err()
}

func (p *Postgres) CreateContact(ctx context.Context, in ContactInput) (models.Contact, error) {
	c, err := scanContact(p.pool.QueryRow(ctx, `
		INSERT INTO contacts (name, email, subject, message)
		VALUES ($1, $2, $3, $4)
		RETURNING `+contactColumns,
		in.Name, in.Email, in.Subject, in.Message,
	))
	return c, err
}

// --- AdminStore --------------------------------------------------------------

func (p *Postgres) GetAdminByUsername(ctx context.Context, username string) (models.AdminUser, error) {
	var u models.AdminUser
	err := p.pool.QueryRow(ctx, `
		SELECT id, username, password_hash, created_at FROM admin_users
		WHERE username = $1`,
		username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.AdminUser{}, ErrNotFound
	}
	return u, err
}

func (p *Postgres) CreateAdmin(ctx context.Context, username, passwordHash string) (models.AdminUser, error) {
	var u models.AdminUser
	err := p.pool.QueryRow(ctx, `
		INSERT INTO admin_users (username, password_hash)
		VALUES ($1, $2)
		RETURNING id, username, password_hash, created_at`,
		username, passwordHash,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	return u, err
}
