package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/sandeshai/marcom-backend/internal/model"
)

type GeneratedCampaignRepositoryInterface interface {
	Create(gc *model.GeneratedCampaign) error
	GetByID(id int) (*model.GeneratedCampaign, error)
	ListCampaigns(offset, limit int, vertical, runID string) ([]*model.GeneratedCampaign, int, error)
}

type GeneratedCampaignRepository struct {
	DB *sql.DB
}

// Create inserts a generated campaign and fills in its ID.
func (r *GeneratedCampaignRepository) Create(gc *model.GeneratedCampaign) error {
	if gc.GeneratedAt.IsZero() {
		gc.GeneratedAt = time.Now()
	}
	query := `
        INSERT INTO generated_campaigns
        (run_id, vertical, hook, push_copy, cta, promo_code, discount, user_segment,
         scheduled_time, contact_number, product_ids, personalization_tokens,
         event_context, event_name, event_date, days_until_event, raw_reply, generated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
        RETURNING id
    `
	return r.DB.QueryRow(query,
		gc.RunID, gc.Vertical, gc.Hook, string(gc.PushCopy), gc.CTA, gc.PromoCode,
		gc.Discount, gc.UserSegment, gc.ScheduledTime, gc.ContactNumber,
		pq.Array(gc.ProductIDs), pq.Array(gc.PersonalizationTokens),
		gc.EventContext, gc.EventName, gc.EventDate, gc.DaysUntilEvent,
		gc.RawReply, gc.GeneratedAt,
	).Scan(&gc.ID)
}

func (r *GeneratedCampaignRepository) GetByID(id int) (*model.GeneratedCampaign, error) {
	query := `
        SELECT id, run_id, vertical, hook, push_copy, cta, promo_code, discount, user_segment,
               scheduled_time, contact_number, product_ids, personalization_tokens,
               event_context, event_name, event_date, days_until_event, raw_reply, generated_at
        FROM generated_campaigns
        WHERE id=$1
    `
	var gc model.GeneratedCampaign
	var pushCopy string
	err := r.DB.QueryRow(query, id).Scan(
		&gc.ID, &gc.RunID, &gc.Vertical, &gc.Hook, &pushCopy, &gc.CTA,
		&gc.PromoCode, &gc.Discount, &gc.UserSegment, &gc.ScheduledTime, &gc.ContactNumber,
		pq.Array(&gc.ProductIDs), pq.Array(&gc.PersonalizationTokens),
		&gc.EventContext, &gc.EventName, &gc.EventDate, &gc.DaysUntilEvent,
		&gc.RawReply, &gc.GeneratedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	gc.PushCopy = model.PushBody(pushCopy)
	return &gc, nil
}

func (r *GeneratedCampaignRepository) ListCampaigns(offset, limit int, vertical, runID string) ([]*model.GeneratedCampaign, int, error) {
	campaigns := []*model.GeneratedCampaign{}
	query := `SELECT id, run_id, vertical, hook, push_copy, cta, promo_code, discount, user_segment,
        scheduled_time, contact_number, product_ids, personalization_tokens,
        event_context, event_name, event_date, days_until_event, raw_reply, generated_at
        FROM generated_campaigns WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if vertical != "" {
		query += fmt.Sprintf(" AND vertical=$%d", argPos)
		args = append(args, vertical)
		argPos++
	}
	if runID != "" {
		query += fmt.Sprintf(" AND run_id=$%d", argPos)
		args = append(args, runID)
		argPos++
	}

	query += fmt.Sprintf(" ORDER BY id DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	for rows.Next() {
		gc := &model.GeneratedCampaign{}
		var pushCopy string
		if err := rows.Scan(
			&gc.ID, &gc.RunID, &gc.Vertical, &gc.Hook, &pushCopy, &gc.CTA,
			&gc.PromoCode, &gc.Discount, &gc.UserSegment, &gc.ScheduledTime, &gc.ContactNumber,
			pq.Array(&gc.ProductIDs), pq.Array(&gc.PersonalizationTokens),
			&gc.EventContext, &gc.EventName, &gc.EventDate, &gc.DaysUntilEvent,
			&gc.RawReply, &gc.GeneratedAt,
		); err != nil {
			return nil, 0, err
		}
		gc.PushCopy = model.PushBody(pushCopy)
		campaigns = append(campaigns, gc)
	}

	countQuery := `SELECT COUNT(*) FROM generated_campaigns WHERE 1=1`
	argsCount := []interface{}{}
	argPosCount := 1
	if vertical != "" {
		countQuery += fmt.Sprintf(" AND vertical=$%d", argPosCount)
		argsCount = append(argsCount, vertical)
		argPosCount++
	}
	if runID != "" {
		countQuery += fmt.Sprintf(" AND run_id=$%d", argPosCount)
		argsCount = append(argsCount, runID)
	}

	var total int
	if err := r.DB.QueryRow(countQuery, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return campaigns, total, nil
}

var _ GeneratedCampaignRepositoryInterface = (*GeneratedCampaignRepository)(nil)
