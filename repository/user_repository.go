package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"userService/models"
)

const (
	tracerName = "userService/repository"

	pointTimeout = 3 * time.Second
	scanTimeout  = 5 * time.Second
)

type UserRepository struct {
	db     *gorm.DB
	tracer trace.Tracer
}

// NewUserRepository returns a repository using the global OpenTelemetry tracer,
// which is a no-op until a provider is installed.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db, tracer: otel.Tracer(tracerName)}
}

// withTracer replaces the tracer used for per-operation spans.
func (r *UserRepository) withTracer(t trace.Tracer) *UserRepository {
	return &UserRepository{db: r.db, tracer: t}
}

func (r *UserRepository) start(ctx context.Context, op string, timeout time.Duration, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	ctx, span := r.tracer.Start(ctx, "users."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(append(attrs, attribute.String("db.system", "sqlite"), attribute.String("db.sql.table", "user"))...),
	)
	return ctx, func(err error) {
		// Not-found is an expected outcome, not a span error.
		if err != nil && !errors.Is(err, ErrNotFound) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
		cancel()
	}
}

// List returns every user ordered by id. The slice is empty, never nil, when the table is empty.
func (r *UserRepository) List(ctx context.Context) (out []models.User, err error) {
	ctx, done := r.start(ctx, "list", scanTimeout)
	defer func() { done(err) }()

	out = []models.User{}
	if err := r.db.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return out, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (u *models.User, err error) {
	ctx, done := r.start(ctx, "get", pointTimeout, attribute.Int64("user.id", id))
	defer func() { done(err) }()

	var got models.User
	if err := r.db.WithContext(ctx).Take(&got, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return &got, nil
}

// Create inserts u with its client-supplied id.
func (r *UserRepository) Create(ctx context.Context, u *models.User) (_ *models.User, err error) {
	if u == nil {
		return nil, errors.New("nil user")
	}
	ctx, done := r.start(ctx, "create", pointTimeout, attribute.Int64("user.id", u.ID))
	defer func() { done(err) }()

	created := *u
	if err := r.db.WithContext(ctx).Create(&created).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicateID
		}
		return nil, fmt.Errorf("create user %d: %w", u.ID, err)
	}
	return &created, nil
}

// Update overwrites name and age of an existing user. The id never changes.
func (r *UserRepository) Update(ctx context.Context, id int64, name string, age int64) (u *models.User, err error) {
	ctx, done := r.start(ctx, "update", pointTimeout, attribute.Int64("user.id", id))
	defer func() { done(err) }()

	var updated models.User
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Take(&updated, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		updated.Name = name
		updated.Age = age
		return tx.Model(&models.User{}).Where("id = ?", id).
			Updates(map[string]any{"name": name, "age": age}).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update user %d: %w", id, err)
	}
	return &updated, nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) (err error) {
	ctx, done := r.start(ctx, "delete", pointTimeout, attribute.Int64("user.id", id))
	defer func() { done(err) }()

	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.User{})
	if res.Error != nil {
		return fmt.Errorf("delete user %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAll removes every user and reports how many rows went away.
// An already empty table is not an error.
func (r *UserRepository) DeleteAll(ctx context.Context) (n int64, err error) {
	ctx, done := r.start(ctx, "delete_all", scanTimeout)
	defer func() { done(err) }()

	res := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.User{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete all users: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// Ping checks that the underlying database answers.
func (r *UserRepository) Ping(ctx context.Context) (err error) {
	ctx, done := r.start(ctx, "ping", pointTimeout)
	defer func() { done(err) }()

	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// isDuplicateKey recognises primary key conflicts whether or not gorm
// translated the driver error.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey || se.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
