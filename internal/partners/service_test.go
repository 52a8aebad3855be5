package partners

import (
	"context"
	"testing"

	"github.com/ilmsadmin/zbase-sub005/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupPartnersTest(t *testing.T) *Service {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Partner{}))
	return &Service{DB: db}
}

func TestCreatePartner(t *testing.T) {
	svc := setupPartnersTest(t)

	p, err := svc.Create(context.Background(), CreatePartnerInput{Name: "Acme Supply", Code: "acme"})
	require.NoError(t, err)
	assert.Equal(t, "ACME", p.Code)

	_, err = svc.Create(context.Background(), CreatePartnerInput{Name: "Other", Code: "ACME"})
	assert.ErrorIs(t, err, ErrCodeTaken)
}

func TestCreatePartner_Validation(t *testing.T) {
	svc := setupPartnersTest(t)

	_, err := svc.Create(context.Background(), CreatePartnerInput{Code: "X"})
	assert.ErrorIs(t, err, ErrNameRequired)

	bad := "not-an-email"
	_, err = svc.Create(context.Background(), CreatePartnerInput{Name: "A", Code: "X", Email: &bad})
	assert.ErrorIs(t, err, ErrInvalidEmail)
}

func TestUpdatePartner_CodeImmutable(t *testing.T) {
	svc := setupPartnersTest(t)

	p, err := svc.Create(context.Background(), CreatePartnerInput{Name: "A", Code: "AAA"})
	require.NoError(t, err)

	got, err := svc.Update(context.Background(), p.ID, map[string]interface{}{"name": "A2", "code": "BBB"})
	require.NoError(t, err)
	assert.Equal(t, "A2", got.Name)
	assert.Equal(t, "AAA", got.Code)
}

func TestListPartners_Search(t *testing.T) {
	svc := setupPartnersTest(t)

	_, err := svc.Create(context.Background(), CreatePartnerInput{Name: "Acme Supply", Code: "ACME"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), CreatePartnerInput{Name: "Beta Parts", Code: "BETA"})
	require.NoError(t, err)

	ps, err := svc.List(context.Background(), "acme")
	require.NoError(t, err)
	require.Len(t, ps, 1)
	assert.Equal(t, "ACME", ps[0].Code)
}

func TestRemovePartner(t *testing.T) {
	svc := setupPartnersTest(t)

	p, err := svc.Create(context.Background(), CreatePartnerInput{Name: "A", Code: "AAA"})
	require.NoError(t, err)
	require.NoError(t, svc.Remove(context.Background(), p.ID))

	_, err = svc.Get(context.Background(), p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
