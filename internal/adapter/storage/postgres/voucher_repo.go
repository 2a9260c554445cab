package postgres

import (
	"context"
	"fmt"
	"time"

	"wom-connector/internal/core/domain"
)

// VoucherRepo implements ports.VoucherRepository on the pocket_vouchers table.
type VoucherRepo struct {
	pool Pool
}

// NewVoucherRepo creates a new VoucherRepo.
func NewVoucherRepo(pool Pool) *VoucherRepo {
	return &VoucherRepo{pool: pool}
}

// List returns every stored voucher in insertion order.
func (r *VoucherRepo) List(ctx context.Context) ([]domain.Voucher, error) {
	query := `SELECT id, secret, aim, latitude, longitude, issued_at
		FROM pocket_vouchers ORDER BY seq`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list vouchers: %w", err)
	}
	defer rows.Close()

	var vouchers []domain.Voucher
	for rows.Next() {
		var (
			id, secret, aim string
			lat, lng        float64
			issuedAt        time.Time
		)
		if err := rows.Scan(&id, &secret, &aim, &lat, &lng, &issuedAt); err != nil {
			return nil, fmt.Errorf("scan voucher: %w", err)
		}
		vid, err := domain.NewIdentifier(id)
		if err != nil {
			return nil, fmt.Errorf("stored voucher id: %w", err)
		}
		vouchers = append(vouchers, domain.NewVoucher(vid, secret, aim, lat, lng, issuedAt))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vouchers: %w", err)
	}
	return vouchers, nil
}

// Save inserts vouchers in one transaction. Ids already stored are skipped.
func (r *VoucherRepo) Save(ctx context.Context, vouchers []domain.Voucher) error {
	if len(vouchers) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin save vouchers: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `INSERT INTO pocket_vouchers (id, secret, aim, latitude, longitude, issued_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING`

	for _, v := range vouchers {
		if _, err := tx.Exec(ctx, query,
			v.ID.String(), v.Secret, v.Aim, v.Latitude, v.Longitude, v.Timestamp,
		); err != nil {
			return fmt.Errorf("insert voucher %s: %w", v.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit save vouchers: %w", err)
	}
	return nil
}

// Delete removes the vouchers with the given ids.
func (r *VoucherRepo) Delete(ctx context.Context, ids []domain.Identifier) error {
	if len(ids) == 0 {
		return nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, id.String())
	}

	if _, err := r.pool.Exec(ctx, `DELETE FROM pocket_vouchers WHERE id = ANY($1)`, keys); err != nil {
		return fmt.Errorf("delete vouchers: %w", err)
	}
	return nil
}
