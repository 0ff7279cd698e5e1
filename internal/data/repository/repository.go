package repository

import (
	"context"
	"hotelbooking/internal/store"
	"hotelbooking/pkg/model"
)

type DataRepository interface {
	SeedReferenceData(ctx context.Context, roomTypes []*model.RoomType, hotels []*model.Hotel) error
	ClearTransactionalData(ctx context.Context) error
}

var _ DataRepository = store.Store(nil)
