package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"binreminder-http-service/internal/infrastructure/config"
)

func setupResidentMockDB(t *testing.T) (sqlmock.Sqlmock, InterfaceResidentService) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return mock, NewResidentService(db, &config.Config{})
}

func residentRows(whatsapp, sms, email string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "name", "flat_number", "notes",
		"contact_whatsapp", "contact_sms", "contact_email",
		"position", "created_at", "updated_at",
	}).AddRow("r1", "Jane Smith", "2B", "", whatsapp, sms, email, 0, now, now)
}

func TestUpdateResidentContactColumns(t *testing.T) {
	mock, svc := setupResidentMockDB(t)

	mock.ExpectQuery("SELECT .* FROM `residents`").
		WillReturnRows(residentRows("", "", ""))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `residents` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT .* FROM `residents`").
		WillReturnRows(residentRows("+447700900123", "", "jane@example.com"))

	updated, err := svc.UpdateResident("r1", map[string]interface{}{
		"name":             "Jane Smith",
		"contact_whatsapp": "+447700900123",
		"contact_sms":      "",
		"contact_email":    "jane@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "+447700900123", updated.Contact.WhatsApp)
	assert.Equal(t, "jane@example.com", updated.Contact.Email)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateResidentIgnoresImmutableColumns(t *testing.T) {
	mock, svc := setupResidentMockDB(t)

	// id 和 position 被剔除后没有剩余更新，不应产生 UPDATE 语句
	mock.ExpectQuery("SELECT .* FROM `residents`").
		WillReturnRows(residentRows("", "", ""))

	updated, err := svc.UpdateResident("r1", map[string]interface{}{
		"id":       "other",
		"position": 5,
	})
	require.NoError(t, err)
	assert.Equal(t, "r1", updated.ID)
	assert.Equal(t, 0, updated.Position)
	require.NoError(t, mock.ExpectationsWereMet())
}
