package services

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"rleomotos-api/models"
)

func newMotorcycleFixture(t *testing.T) (*gorm.DB, *MotorcycleService, models.Store, models.Brand, uint) {
	t.Helper()
	db := newTestDB(t)
	store := seedStore(t, db)
	brand := brandByName(t, db, "Honda")
	admin := userByEmail(t, db, "admin@rleomotos.com")
	return db, NewMotorcycleService(db), store, brand, admin.ID
}

func TestCreateScoresSparseMotorcycle(t *testing.T) {
	_, svc, store, brand, adminID := newMotorcycleFixture(t)

	created, err := svc.Create(MotorcycleInput{
		StoreID:   &store.ID,
		BrandID:   &brand.ID,
		ModelName: ptr("CB 500"),
	}, adminID)
	require.NoError(t, err)

	// Only modelName is filled out of the 18 tracked attributes.
	assert.Equal(t, 6, created.CompletenessScore)
	assert.Len(t, created.MissingFields, 17)
	assert.Contains(t, created.MissingFields, "photos")
	assert.NotContains(t, created.MissingFields, "modelName")
	assert.Equal(t, models.MotorcycleAvailable, created.Status)
	require.NotNil(t, created.CreatedByID)
	assert.Equal(t, adminID, *created.CreatedByID)
}

func TestCreateFullyFilledScoresHundred(t *testing.T) {
	_, svc, store, brand, adminID := newMotorcycleFixture(t)

	fuel := models.FuelGasoline
	transmission := models.TransmissionManual
	created, err := svc.Create(MotorcycleInput{
		StoreID:          &store.ID,
		BrandID:          &brand.ID,
		ModelName:        ptr("CB 650R"),
		Year:             ptr(2023),
		Color:            ptr("Red"),
		VIN:              ptr("9C2PC4000LR000001"),
		Plate:            ptr("ABC1D23"),
		Km:               ptr(1200),
		Price:            ptr(42000.0),
		Cost:             ptr(35000.0),
		Fuel:             &fuel,
		EngineCc:         ptr(649),
		PowerHp:          ptr(95),
		TorqueNm:         ptr(64),
		Transmission:     &transmission,
		ABS:              ptr(true),
		Description:      ptr("Showroom condition"),
		HasDocumentation: ptr(true),
		HasInspection:    ptr(false),
		PhotoURLs:        []string{"https://cdn.example.com/cb650r.jpg"},
	}, adminID)
	require.NoError(t, err)

	assert.Equal(t, 100, created.CompletenessScore)
	assert.Empty(t, created.MissingFields)
	require.Len(t, created.Photos, 1)
	assert.True(t, created.Photos[0].IsCover)
}

func TestCreateRejectsUnknownStoreOrBrand(t *testing.T) {
	_, svc, store, _, adminID := newMotorcycleFixture(t)

	_, err := svc.Create(MotorcycleInput{
		StoreID:   &store.ID,
		BrandID:   ptr(uint(9999)),
		ModelName: ptr("CB 500"),
	}, adminID)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, StatusOf(err))
}

func TestCreateRequiresModelName(t *testing.T) {
	_, svc, store, brand, adminID := newMotorcycleFixture(t)

	_, err := svc.Create(MotorcycleInput{
		StoreID:   &store.ID,
		BrandID:   &brand.ID,
		ModelName: ptr("   "),
	}, adminID)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, StatusOf(err))
}

func TestCreateRejectsInvalidEnums(t *testing.T) {
	_, svc, store, brand, adminID := newMotorcycleFixture(t)

	bogus := models.MotorcycleStatus("stolen")
	_, err := svc.Create(MotorcycleInput{
		StoreID:   &store.ID,
		BrandID:   &brand.ID,
		ModelName: ptr("CB 500"),
		Status:    &bogus,
	}, adminID)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, StatusOf(err))

	_, err = svc.Create(MotorcycleInput{
		StoreID:   &store.ID,
		BrandID:   &brand.ID,
		ModelName: ptr("CB 500"),
		Year:      ptr(1850),
	}, adminID)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, StatusOf(err))
}

func TestUpdateClearsOnlyExplicitNulls(t *testing.T) {
	_, svc, store, brand, adminID := newMotorcycleFixture(t)

	created, err := svc.Create(MotorcycleInput{
		StoreID:   &store.ID,
		BrandID:   &brand.ID,
		ModelName: ptr("XRE 300"),
		Color:     ptr("Blue"),
		Price:     ptr(25000.0),
	}, adminID)
	require.NoError(t, err)
	require.Equal(t, 17, created.CompletenessScore)

	// Body carried only "price": null. Color was absent and must survive.
	present := func(key string) bool { return key == "price" }
	updated, err := svc.Update(created.ID, MotorcycleInput{}, present, adminID)
	require.NoError(t, err)

	assert.Nil(t, updated.Price)
	require.NotNil(t, updated.Color)
	assert.Equal(t, "Blue", *updated.Color)
	assert.Contains(t, updated.MissingFields, "price")
	assert.Equal(t, 11, updated.CompletenessScore)
	require.NotNil(t, updated.UpdatedByID)
	assert.Equal(t, adminID, *updated.UpdatedByID)
}

func TestUpdateRejectsBlankModelName(t *testing.T) {
	_, svc, store, brand, adminID := newMotorcycleFixture(t)

	created, err := svc.Create(MotorcycleInput{
		StoreID:   &store.ID,
		BrandID:   &brand.ID,
		ModelName: ptr("CB 500"),
	}, adminID)
	require.NoError(t, err)

	present := func(key string) bool { return key == "modelName" }
	_, err = svc.Update(created.ID, MotorcycleInput{}, present, adminID)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, StatusOf(err))
}

func TestFindAllAppliesFilters(t *testing.T) {
	db, svc, store, honda, adminID := newMotorcycleFixture(t)
	yamaha := brandByName(t, db, "Yamaha")

	sold := models.MotorcycleSold
	cb, err := svc.Create(MotorcycleInput{
		StoreID: &store.ID, BrandID: &honda.ID,
		ModelName: ptr("CB 500"), Price: ptr(32000.0),
	}, adminID)
	require.NoError(t, err)
	factor, err := svc.Create(MotorcycleInput{
		StoreID: &store.ID, BrandID: &yamaha.ID,
		ModelName: ptr("Factor 150"), Price: ptr(12000.0), Status: &sold,
	}, adminID)
	require.NoError(t, err)

	listed, err := svc.FindAll(MotorcycleFilters{MinPrice: ptr(20000.0)})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, cb.ID, listed[0].ID)

	listed, err = svc.FindAll(MotorcycleFilters{Status: "sold"})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, factor.ID, listed[0].ID)

	listed, err = svc.FindAll(MotorcycleFilters{ModelName: "cb"})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, cb.ID, listed[0].ID)

	_, err = svc.FindAll(MotorcycleFilters{Status: "stolen"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, StatusOf(err))
}

func TestRemoveHidesMotorcycleButKeepsRow(t *testing.T) {
	db, svc, store, brand, adminID := newMotorcycleFixture(t)

	created, err := svc.Create(MotorcycleInput{
		StoreID: &store.ID, BrandID: &brand.ID, ModelName: ptr("CB 500"),
	}, adminID)
	require.NoError(t, err)

	require.NoError(t, svc.Remove(created.ID, adminID))

	_, err = svc.FindOne(created.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, StatusOf(err))

	listed, err := svc.FindAll(MotorcycleFilters{})
	require.NoError(t, err)
	assert.Empty(t, listed)

	var row models.Motorcycle
	require.NoError(t, db.First(&row, created.ID).Error)
	assert.True(t, row.IsDeleted)

	// Deleting twice reports not found.
	err = svc.Remove(created.ID, adminID)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, StatusOf(err))
}

func TestAddPhotosKeepsCoverAndOrder(t *testing.T) {
	_, svc, store, brand, adminID := newMotorcycleFixture(t)

	created, err := svc.Create(MotorcycleInput{
		StoreID: &store.ID, BrandID: &brand.ID, ModelName: ptr("CB 500"),
	}, adminID)
	require.NoError(t, err)

	updated, err := svc.AddPhotos(created.ID, []string{"a.jpg", "b.jpg"})
	require.NoError(t, err)
	require.Len(t, updated.Photos, 2)
	assert.True(t, updated.Photos[0].IsCover)
	assert.False(t, updated.Photos[1].IsCover)
	assert.Equal(t, 0, updated.Photos[0].SortOrder)
	assert.Equal(t, 1, updated.Photos[1].SortOrder)
	assert.NotContains(t, updated.MissingFields, "photos")

	// A later batch continues the ordering and never steals the cover.
	updated, err = svc.AddPhotos(created.ID, []string{"c.jpg"})
	require.NoError(t, err)
	require.Len(t, updated.Photos, 3)
	assert.Equal(t, 2, updated.Photos[2].SortOrder)
	assert.False(t, updated.Photos[2].IsCover)
}

func TestRemovePhotoChecksOwnershipAndRescores(t *testing.T) {
	_, svc, store, brand, adminID := newMotorcycleFixture(t)

	first, err := svc.Create(MotorcycleInput{
		StoreID: &store.ID, BrandID: &brand.ID, ModelName: ptr("CB 500"),
		PhotoURLs: []string{"cb.jpg"},
	}, adminID)
	require.NoError(t, err)
	second, err := svc.Create(MotorcycleInput{
		StoreID: &store.ID, BrandID: &brand.ID, ModelName: ptr("XRE 300"),
	}, adminID)
	require.NoError(t, err)

	// The photo belongs to first, not second.
	err = svc.RemovePhoto(second.ID, first.Photos[0].ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, StatusOf(err))

	require.NoError(t, svc.RemovePhoto(first.ID, first.Photos[0].ID))

	reloaded, err := svc.FindOne(first.ID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Photos)
	assert.Contains(t, reloaded.MissingFields, "photos")
}
