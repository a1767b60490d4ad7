package repository

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeshai/marcom-backend/internal/model"
)

func TestBulkInsertCommitsAllRecords(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := &RecordRepository{DB: db}
	records := []model.CampaignRecord{
		{Source: "may.csv", RowIndex: 1, Hook: "Big Sale", Vertical: "Banking"},
		{Source: "may.csv", RowIndex: 2, PushCopy: "Hurry up", Vertical: "SSC"},
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO campaign_records").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO campaign_records").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	n, err := repo.BulkInsert("run-1", records)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkInsertRollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := &RecordRepository{DB: db}
	records := []model.CampaignRecord{
		{Source: "may.csv", RowIndex: 1, Hook: "Big Sale"},
		{Source: "may.csv", RowIndex: 2, Hook: "Another"},
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO campaign_records").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO campaign_records").
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	n, err := repo.BulkInsert("run-1", records)
	assert.Error(t, err)
	assert.Equal(t, 0, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountByVertical(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := &RecordRepository{DB: db}

	rows := sqlmock.NewRows([]string{"vertical", "count"}).
		AddRow("Banking", 12).
		AddRow("SSC", 7).
		AddRow("Unknown", 3)
	mock.ExpectQuery("SELECT COALESCE").WillReturnRows(rows)

	counts, err := repo.CountByVertical()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Banking": 12, "SSC": 7, "Unknown": 3}, counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRecordsFiltersByVertical(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := &RecordRepository{DB: db}

	cols := []string{
		"source", "row_index", "campaign_type", "date", "vertical", "language", "aligned_by",
		"landing_page_pid", "sent_no", "campaign_name", "template_id", "user_segment", "scheduled_time",
		"hook", "push_copy", "cta", "promo_code", "discount_percent", "contact_number",
		"trackier_link", "landing_page_url", "creative_link", "moengage_link",
		"app_link", "web_link", "image_link", "generic_link", "platform", "user_count",
		"product_ids", "personalization_tokens", "tracking_links",
	}
	rows := sqlmock.NewRows(cols).AddRow(
		"may.csv", 3, "Push", "12 May", "Banking", "EN", "", "", "", "IBPS Alert", "", "", "",
		"Crack IBPS", "Enroll today", "Enroll Now", "", "", "",
		"", "", "", "", "", "", "", "", "", 0,
		"{12345}", "{FIRST_NAME}", "{}",
	)
	mock.ExpectQuery("SELECT source, row_index").
		WithArgs("Banking", 50, 0).
		WillReturnRows(rows)
	mock.ExpectQuery("SELECT COUNT").
		WithArgs("Banking").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	records, total, err := repo.ListRecords(0, 50, "Banking", "")
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, records, 1)
	assert.Equal(t, "Crack IBPS", records[0].Hook)
	assert.Equal(t, []string{"12345"}, records[0].ProductIDs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteRun(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := &RecordRepository{DB: db}

	mock.ExpectExec("DELETE FROM campaign_records").
		WithArgs("run-1").
		WillReturnResult(sqlmock.NewResult(0, 5))

	require.NoError(t, repo.DeleteRun("run-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
