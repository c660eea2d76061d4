package service

import (
	"testing"

	"github.com/lshigami/Oranguru/internal/dto"
	"github.com/lshigami/Oranguru/internal/model"
	"github.com/lshigami/Oranguru/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newBundleFixture(t *testing.T) (*gorm.DB, BundleService) {
	t.Helper()
	db := newTestDB(t)
	svc := NewBundleService(
		repository.NewBundleRepository(db),
		repository.NewPackageRepository(db),
	)
	return db, svc
}

func TestCreateBundle_RecordsCreatorAndMembers(t *testing.T) {
	db, svc := newBundleFixture(t)
	admin := seedUser(t, db, model.RoleAdmin)
	pkg := seedPackage(t, db, admin.ID)

	resp, err := svc.Create(admin.ID, dto.BundleCreateDTO{
		Title:      "Exam Season Bundle",
		Price:      150,
		PackageIDs: []uint{pkg.ID},
	})
	require.NoError(t, err)
	assert.True(t, resp.IsActive)
	require.Len(t, resp.Packages, 1)
	assert.Equal(t, pkg.ID, resp.Packages[0].PackageID)

	var stored model.Bundle
	require.NoError(t, db.First(&stored, resp.ID).Error)
	assert.Equal(t, admin.ID, stored.CreatedBy, "bundle records the creating admin")
}

func TestCreateBundle_UnknownPackageRejected(t *testing.T) {
	db, svc := newBundleFixture(t)
	admin := seedUser(t, db, model.RoleAdmin)

	_, err := svc.Create(admin.ID, dto.BundleCreateDTO{
		Title:      "Broken Bundle",
		Price:      50,
		PackageIDs: []uint{9999},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
