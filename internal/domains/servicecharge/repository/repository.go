package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/servicecharge/model"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"

	"github.com/jmoiron/sqlx"
)

type ServiceCharge interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.ServiceCharge) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.ServiceCharge, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.ServiceCharge, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	DeleteTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup) error
	Sum(ctx context.Context, column string, filter gDto.FilterGroup) (float64, error)
	SumTx(ctx context.Context, tx *sqlx.Tx, column string, filter gDto.FilterGroup) (float64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.ServiceCharge]
}

func New(db *postgres.Connection, otel otel.Otel) ServiceCharge {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.ServiceCharge](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
