package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/sandeshai/marcom-backend/internal/model"
)

type RecordRepositoryInterface interface {
	BulkInsert(runID string, records []model.CampaignRecord) (int, error)
	ListRecords(offset, limit int, vertical, source string) ([]*model.CampaignRecord, int, error)
	CountByVertical() (map[string]int, error)
	DeleteRun(runID string) error
}

type RecordRepository struct {
	DB *sql.DB
}

// BulkInsert stores one ingest run's normalized records inside a single
// transaction. A failed insert rolls the whole run back.
func (r *RecordRepository) BulkInsert(runID string, records []model.CampaignRecord) (int, error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return 0, err
	}

	query := `
        INSERT INTO campaign_records
        (run_id, source, row_index, campaign_type, date, vertical, language, aligned_by,
         landing_page_pid, sent_no, campaign_name, template_id, user_segment, scheduled_time,
         hook, push_copy, cta, promo_code, discount_percent, contact_number,
         trackier_link, landing_page_url, creative_link, moengage_link,
         app_link, web_link, image_link, generic_link, platform, user_count,
         product_ids, personalization_tokens, tracking_links, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
                $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26,
                $27, $28, $29, $30, $31, $32, $33, $34)
    `
	now := time.Now()
	inserted := 0
	for i := range records {
		rec := &records[i]
		_, err := tx.Exec(query,
			runID, rec.Source, rec.RowIndex, rec.CampaignType, rec.Date, rec.Vertical,
			rec.Language, rec.AlignedBy, rec.LandingPagePID, rec.SentNo, rec.CampaignName,
			rec.TemplateID, rec.UserSegment, rec.ScheduledTime,
			rec.Hook, rec.PushCopy, rec.CTA, rec.PromoCode, rec.DiscountPercent, rec.ContactNumber,
			rec.TrackierLink, rec.LandingPageURL, rec.CreativeLink, rec.MoEngageLink,
			rec.AppLink, rec.WebLink, rec.ImageLink, rec.GenericLink, rec.Platform, rec.UserCount,
			pq.Array(rec.ProductIDs), pq.Array(rec.PersonalizationTokens), pq.Array(rec.TrackingLinks),
			now,
		)
		if err != nil {
			tx.Rollback()
			return 0, err
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

func (r *RecordRepository) ListRecords(offset, limit int, vertical, source string) ([]*model.CampaignRecord, int, error) {
	records := []*model.CampaignRecord{}
	query := `SELECT source, row_index, campaign_type, date, vertical, language, aligned_by,
        landing_page_pid, sent_no, campaign_name, template_id, user_segment, scheduled_time,
        hook, push_copy, cta, promo_code, discount_percent, contact_number,
        trackier_link, landing_page_url, creative_link, moengage_link,
        app_link, web_link, image_link, generic_link, platform, user_count,
        product_ids, personalization_tokens, tracking_links
        FROM campaign_records WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if vertical != "" {
		query += fmt.Sprintf(" AND vertical=$%d", argPos)
		args = append(args, vertical)
		argPos++
	}
	if source != "" {
		query += fmt.Sprintf(" AND source=$%d", argPos)
		args = append(args, source)
		argPos++
	}

	query += fmt.Sprintf(" ORDER BY source, row_index LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	for rows.Next() {
		rec := &model.CampaignRecord{}
		if err := rows.Scan(
			&rec.Source, &rec.RowIndex, &rec.CampaignType, &rec.Date, &rec.Vertical,
			&rec.Language, &rec.AlignedBy, &rec.LandingPagePID, &rec.SentNo, &rec.CampaignName,
			&rec.TemplateID, &rec.UserSegment, &rec.ScheduledTime,
			&rec.Hook, &rec.PushCopy, &rec.CTA, &rec.PromoCode, &rec.DiscountPercent, &rec.ContactNumber,
			&rec.TrackierLink, &rec.LandingPageURL, &rec.CreativeLink, &rec.MoEngageLink,
			&rec.AppLink, &rec.WebLink, &rec.ImageLink, &rec.GenericLink, &rec.Platform, &rec.UserCount,
			pq.Array(&rec.ProductIDs), pq.Array(&rec.PersonalizationTokens), pq.Array(&rec.TrackingLinks),
		); err != nil {
			return nil, 0, err
		}
		records = append(records, rec)
	}

	countQuery := `SELECT COUNT(*) FROM campaign_records WHERE 1=1`
	argsCount := []interface{}{}
	argPosCount := 1
	if vertical != "" {
		countQuery += fmt.Sprintf(" AND vertical=$%d", argPosCount)
		argsCount = append(argsCount, vertical)
		argPosCount++
	}
	if source != "" {
		countQuery += fmt.Sprintf(" AND source=$%d", argPosCount)
		argsCount = append(argsCount, source)
	}

	var total int
	if err := r.DB.QueryRow(countQuery, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (r *RecordRepository) CountByVertical() (map[string]int, error) {
	query := `SELECT COALESCE(NULLIF(vertical, ''), 'Unknown'), COUNT(*) FROM campaign_records GROUP BY 1`
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var vertical string
		var count int
		if err := rows.Scan(&vertical, &count); err != nil {
			return nil, err
		}
		counts[vertical] = count
	}
	return counts, nil
}

func (r *RecordRepository) DeleteRun(runID string) error {
	_, err := r.DB.Exec(`DELETE FROM campaign_records WHERE run_id=$1`, runID)
	return err
}

var _ RecordRepositoryInterface = (*RecordRepository)(nil)
