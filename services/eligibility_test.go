package services

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeremiapane/hoststay-app/models"
)

func setupEligibilityDB(t *testing.T) *gorm.DB {
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.Team{},
		&models.PropertyTeam{},
		&models.LegacyPropertyTeam{},
		&models.TeamMembership{},
		&models.TeamMember{},
	)
	require.NoError(t, err)
	return db
}

func TestResolveEligibleUnionsBothSources(t *testing.T) {
	db := setupEligibilityDB(t)
	svc := NewEligibilityService(db)

	property := models.Property{TenantID: 1, Name: "Seaside Loft", City: "Lisbon"}
	require.NoError(t, db.Create(&property).Error)

	teamA := models.Team{TenantID: 1, Name: "Coastal Cleaners"}
	teamB := models.Team{TenantID: 1, Name: "Night Shift"}
	require.NoError(t, db.Create(&teamA).Error)
	require.NoError(t, db.Create(&teamB).Error)

	// Team A terhubung lewat dua model sekaligus; hasilnya harus dedup.
	require.NoError(t, db.Create(&models.PropertyTeam{PropertyID: property.ID, TeamID: teamA.ID}).Error)
	require.NoError(t, db.Create(&models.LegacyPropertyTeam{PropertyID: property.ID, TeamID: teamA.ID}).Error)
	require.NoError(t, db.Create(&models.LegacyPropertyTeam{PropertyID: property.ID, TeamID: teamB.ID}).Error)

	cleaner := models.User{TenantID: 1, Name: "Ana", Email: "ana@example.com", Password: "x", Role: models.RoleCleaner}
	inactive := models.User{TenantID: 1, Name: "Ivo", Email: "ivo@example.com", Password: "x", Role: models.RoleCleaner}
	require.NoError(t, db.Create(&cleaner).Error)
	require.NoError(t, db.Create(&inactive).Error)

	active := models.TeamMembership{TeamID: teamA.ID, UserID: cleaner.ID, Role: models.MembershipRoleCleaner, Status: models.MembershipStatusActive}
	require.NoError(t, db.Create(&active).Error)
	require.NoError(t, db.Create(&models.TeamMembership{
		TeamID: teamA.ID, UserID: inactive.ID, Role: models.MembershipRoleCleaner, Status: models.MembershipStatusInactive,
	}).Error)

	legacy := models.TeamMember{TeamID: teamB.ID, TenantID: 1, Name: "Bo", IsActive: true}
	require.NoError(t, db.Create(&legacy).Error)
	require.NoError(t, db.Create(&models.TeamMember{TeamID: teamB.ID, TenantID: 1, Name: "Off", IsActive: false}).Error)

	snapshot, err := svc.ResolveEligible(1, property.ID)
	require.NoError(t, err)

	assert.Equal(t, []uint{teamA.ID, teamB.ID}, snapshot.TeamIDs, "dedup, urutan standar dulu")
	require.Equal(t, 2, snapshot.MemberCount())
	assert.True(t, snapshot.ContainsMembership(active.ID))
	assert.True(t, snapshot.ContainsLegacyMember(legacy.ID))
	assert.False(t, snapshot.ContainsMembership(legacy.ID), "source tags tidak boleh ketukar")
}

func TestResolveEligibleScopedToTenant(t *testing.T) {
	db := setupEligibilityDB(t)
	svc := NewEligibilityService(db)

	property := models.Property{TenantID: 1, Name: "Seaside Loft"}
	require.NoError(t, db.Create(&property).Error)

	// Team milik tenant lain, nyasar link ke property kita.
	foreign := models.Team{TenantID: 2, Name: "Other Tenant Crew"}
	require.NoError(t, db.Create(&foreign).Error)
	require.NoError(t, db.Create(&models.PropertyTeam{PropertyID: property.ID, TeamID: foreign.ID}).Error)

	snapshot, err := svc.ResolveEligible(1, property.ID)
	require.NoError(t, err)
	assert.False(t, snapshot.HasTeams())
	assert.Zero(t, snapshot.MemberCount())
}

func TestResolveEligibleNoLinksIsEmptyNotError(t *testing.T) {
	db := setupEligibilityDB(t)
	svc := NewEligibilityService(db)

	property := models.Property{TenantID: 1, Name: "Seaside Loft"}
	require.NoError(t, db.Create(&property).Error)

	snapshot, err := svc.ResolveEligible(1, property.ID)
	require.NoError(t, err)
	assert.False(t, snapshot.HasTeams())
	assert.Empty(t, snapshot.Members)
}

// Kegagalan store harus naik sebagai error, bukan dikoersi jadi "nol team"
// (itu akan memicu alert no_team_configured palsu).
func TestResolveEligibleStoreFailurePropagates(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      conn,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	storeErr := errors.New("connection reset by peer")
	mock.ExpectQuery("SELECT").WillReturnError(storeErr)

	svc := NewEligibilityService(db)
	snapshot, err := svc.ResolveEligible(1, 10)

	require.Error(t, err)
	assert.ErrorIs(t, err, storeErr)
	assert.Contains(t, err.Error(), "resolve property teams")
	assert.Nil(t, snapshot)
	assert.NoError(t, mock.ExpectationsWereMet())
}
