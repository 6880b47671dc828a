package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mjcastro/gradesource-be/internal/database"
	"github.com/mjcastro/gradesource-be/internal/models"
	"github.com/mjcastro/gradesource-be/internal/validator"
)

// ClassServiceProvider defines the interface for class catalog services.
type ClassServiceProvider interface {
	RegisterClass(ctx context.Context, url string) (models.Class, bool, error)
	ListClasses(ctx context.Context) ([]models.Class, error)
}

// ClassService provides the class registration workflow.
type ClassService struct {
	db *sql.DB
}

// NewClassService creates a new ClassService.
func NewClassService(db *sql.DB) *ClassService {
	return &ClassService{db: db}
}

// RegisterClass adds a class URL to the catalog. The returned bool is the
// validator's verdict on the URL; a failing verdict does not block
// registration — the frontend shows it as a hint, and anything non-empty
// and non-duplicate is accepted, matching how classes have always been
// added. Exactly one row is inserted on success, none on any failure.
func (s *ClassService) RegisterClass(ctx context.Context, url string) (models.Class, bool, error) {
	if url == "" {
		return models.Class{}, false, ErrEmptyURL
	}

	valid := validator.ClassURL(url)
	if !valid {
		log.Warn().Str("url", url).Msg("Registering class whose URL failed validation")
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	err := s.db.QueryRowContext(ctx, "SELECT id FROM classes WHERE url = ?", url).Scan(new(string))
	if err == nil {
		return models.Class{}, valid, ErrDuplicateClass
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.Class{}, valid, storeErr(err)
	}

	class := models.Class{
		ID:        uuid.New().String(),
		URL:       url,
		CreatedAt: time.Now().UTC(),
	}

	_, err = s.db.ExecContext(ctx, "INSERT INTO classes(id, url) VALUES(?, ?)", class.ID, class.URL)
	if err != nil {
		if database.IsUniqueViolation(err) {
			// A concurrent registration got there first.
			return models.Class{}, valid, ErrDuplicateClass
		}
		return models.Class{}, valid, storeErr(err)
	}

	return class, valid, nil
}

// ListClasses returns the catalog, newest first.
func (s *ClassService) ListClasses(ctx context.Context) ([]models.Class, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, "SELECT id, url, created_at FROM classes ORDER BY created_at DESC")
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	var classes []models.Class
	for rows.Next() {
		var class models.Class
		if err := rows.Scan(&class.ID, &class.URL, &class.CreatedAt); err != nil {
			return nil, storeErr(err)
		}
		classes = append(classes, class)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(err)
	}
	return classes, nil
}
