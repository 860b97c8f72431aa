package settings

import (
	"context"
	"database/sql"
)

type Repository interface {
	GetContact(ctx context.Context) (*ContactInfo, error)
	UpdateContact(ctx context.Context, info ContactInfo) error
	GetPayment(ctx context.Context) (*PaymentInfo, error)
	UpdatePayment(ctx context.Context, info PaymentInfo) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetContact(ctx context.Context) (*ContactInfo, error) {
	var info ContactInfo
	err := r.db.QueryRowContext(ctx, `
		SELECT intro, phone, email, facebook, address
		FROM contact_info
		WHERE id = 1
	`).Scan(&info.Intro, &info.Phone, &info.Email, &info.Facebook, &info.Address)
	if err != nil {
		return nil, err
	}

	return &info, nil
}

func (r *repository) UpdateContact(ctx context.Context, info ContactInfo) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE contact_info
		SET intro = $1, phone = $2, email = $3, facebook = $4, address = $5
		WHERE id = 1
	`, info.Intro, info.Phone, info.Email, info.Facebook, info.Address)

	return err
}

func (r *repository) GetPayment(ctx context.Context) (*PaymentInfo, error) {
	var info PaymentInfo
	err := r.db.QueryRowContext(ctx, `
		SELECT bank_name, account_number, account_holder, qr_filename
		FROM payment_info
		WHERE id = 1
	`).Scan(&info.BankName, &info.AccountNumber, &info.AccountHolder, &info.QRFilename)
	if err != nil {
		return nil, err
	}

	return &info, nil
}

func (r *repository) UpdatePayment(ctx context.Context, info PaymentInfo) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE payment_info
		SET bank_name = $1, account_number = $2, account_holder = $3, qr_filename = $4
		WHERE id = 1
	`, info.BankName, info.AccountNumber, info.AccountHolder, info.QRFilename)

	return err
}
