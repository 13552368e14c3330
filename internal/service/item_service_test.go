package service

import (
	"context"
	"testing"

	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/dto"
	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildItemSvc() (ItemService, *stubItemRepo) {
	repo := &stubItemRepo{items: make(map[uuid.UUID]*model.Item)}
	return NewItemService(repo, 35), repo
}

func TestItemCreate_DefaultsCrateWeight(t *testing.T) {
	svc, _ := buildItemSvc()

	res, err := svc.Create(context.Background(), dto.SaveItemRequest{Name: "Rohu"})
	require.NoError(t, err)
	assert.Equal(t, "35", res.CrateWeightKg.String())
	assert.True(t, res.Active)

	res, err = svc.Create(context.Background(), dto.SaveItemRequest{
		Name:          "Prawns",
		CrateWeightKg: decimal.RequireFromString("20"),
	})
	require.NoError(t, err)
	assert.Equal(t, "20", res.CrateWeightKg.String())
}

func TestItemUpdate_KeepsWeightWhenZero(t *testing.T) {
	svc, _ := buildItemSvc()
	created, err := svc.Create(context.Background(), dto.SaveItemRequest{
		Name:          "Katla",
		CrateWeightKg: decimal.RequireFromString("40"),
	})
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	// Zero weight on update means "leave it alone", not "reset to zero".
	res, err := svc.Update(context.Background(), id, dto.SaveItemRequest{Name: "Katla (big)"})
	require.NoError(t, err)
	assert.Equal(t, "Katla (big)", res.Name)
	assert.Equal(t, "40", res.CrateWeightKg.String())

	_, err = svc.Update(context.Background(), uuid.New(), dto.SaveItemRequest{Name: "x"})
	assert.ErrorContains(t, err, "item not found")
}

func TestItemDeactivateReactivate(t *testing.T) {
	svc, repo := buildItemSvc()
	created, err := svc.Create(context.Background(), dto.SaveItemRequest{Name: "Tilapia"})
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	require.NoError(t, svc.Deactivate(context.Background(), id))
	assert.False(t, repo.items[id].Active)

	// Hidden from the default listing, visible with include_inactive.
	list, err := svc.List(context.Background(), false)
	require.NoError(t, err)
	assert.Empty(t, list)
	list, err = svc.List(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Reactivate(context.Background(), id))
	assert.True(t, repo.items[id].Active)
}
