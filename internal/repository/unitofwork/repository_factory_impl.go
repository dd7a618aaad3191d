package unitofwork

import (
	"context"

	"ai-docqa-be/internal/repository/contract"

	"gorm.io/gorm"
)

type RepositoryFactoryImpl struct {
	db *gorm.DB
}

func NewRepositoryFactory(db *gorm.DB) contract.RepositoryFactory {
	return &RepositoryFactoryImpl{
		db: db,
	}
}

func (f *RepositoryFactoryImpl) NewUnitOfWork(ctx context.Context) contract.UnitOfWork {
	// UoW is short lived, one per request or operation.
	return NewUnitOfWork(f.db)
}
