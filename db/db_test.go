package db

import (
	"testing"

	"github.com/nourishnet/nourishnet-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestOpenSqliteAndMigrate(t *testing.T) {
	gdb, err := Open("sqlite", ":memory:", nil)
	require.NoError(t, err)
	require.NoError(t, Migrate(gdb))

	for _, m := range models.All() {
		assert.True(t, gdb.Migrator().HasTable(m), "%T", m)
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open("mysql", "", nil)
	assert.Error(t, err)
}

func TestUserPreferencesPersist(t *testing.T) {
	gdb, err := Open("sqlite", ":memory:", nil)
	require.NoError(t, err)
	require.NoError(t, Migrate(gdb))

	u := models.User{Name: "A", Email: "a@x.com", PasswordHash: "h", Role: models.RoleDonor,
		Preferences: models.Preferences{"theme": "dark"}}
	require.NoError(t, gdb.Create(&u).Error)
	assert.NotEmpty(t, u.ID)

	var got models.User
	require.NoError(t, gdb.First(&got, "id = ?", u.ID).Error)
	assert.Equal(t, "dark", got.Preferences["theme"])
}

func TestDuplicateEmailIsTranslated(t *testing.T) {
	gdb, err := Open("sqlite", ":memory:", nil)
	require.NoError(t, err)
	require.NoError(t, Migrate(gdb))

	require.NoError(t, gdb.Create(&models.User{Name: "A", Email: "a@x.com", PasswordHash: "h", Role: models.RoleDonor}).Error)
	err = gdb.Create(&models.User{Name: "B", Email: "a@x.com", PasswordHash: "h", Role: models.RoleDonor}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
