package catalog

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookcatalog/internal/book"
)

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

const bookColumns = `
	id, title, author, category, description,
	COALESCE(details, ''), COALESCE(grade, ''), COALESCE(subject, ''),
	COALESCE(year, 0), COALESCE(isbn, ''),
	COALESCE(cover_url, ''), COALESCE(pdf_url, ''), COALESCE(audio_url, ''), COALESCE(trailer_id, ''),
	created_at, updated_at`

func scanBook(row pgx.Row) (book.Book, error) {
	var b book.Book
	err := row.Scan(
		&b.ID, &b.Title, &b.Author, &b.Category, &b.Description,
		&b.Details, &b.Grade, &b.Subject,
		&b.Year, &b.ISBN,
		&b.CoverURL, &b.PDFURL, &b.AudioURL, &b.TrailerID,
		&b.CreatedAt, &b.UpdatedAt,
	)
	return b, err
}

func (r *PostgresRepo) List(ctx context.Context) ([]book.Book, error) {
	const query = `
		SELECT ` + bookColumns + `
		FROM books
		ORDER BY created_at DESC`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []book.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) Insert(ctx context.Context, b *book.Book) error {
	const sql = `
		INSERT INTO books (id, title, author, category, description, details, grade, subject,
		                   year, isbn, cover_url, pdf_url, audio_url, trailer_id,
		                   created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''),
		        NULLIF($9, 0), NULLIF($10, ''), NULLIF($11, ''), NULLIF($12, ''), NULLIF($13, ''), NULLIF($14, ''),
		        $15, $16)`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err := r.db.Exec(timeoutCtx, sql,
		b.ID, b.Title, b.Author, b.Category, b.Description, b.Details, b.Grade, b.Subject,
		b.Year, b.ISBN, b.CoverURL, b.PDFURL, b.AudioURL, b.TrailerID,
		b.CreatedAt, b.UpdatedAt,
	)
	return err
}

func (r *PostgresRepo) Update(ctx context.Context, b *book.Book) error {
	const sql = `
		UPDATE books SET
			title = $2, author = $3, category = $4, description = $5,
			details = NULLIF($6, ''), grade = NULLIF($7, ''), subject = NULLIF($8, ''),
			year = NULLIF($9, 0), isbn = NULLIF($10, ''),
			cover_url = NULLIF($11, ''), pdf_url = NULLIF($12, ''), audio_url = NULLIF($13, ''), trailer_id = NULLIF($14, ''),
			updated_at = $15
		WHERE id = $1`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, sql,
		b.ID, b.Title, b.Author, b.Category, b.Description, b.Details, b.Grade, b.Subject,
		b.Year, b.ISBN, b.CoverURL, b.PDFURL, b.AudioURL, b.TrailerID,
		b.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return book.ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id string) error {
	const sql = `DELETE FROM books WHERE id = $1`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, sql, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return book.ErrNotFound
	}
	return nil
}
