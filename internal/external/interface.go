package external

import (
	"context"
	"time"

	"tcmb_rates_api/internal/models"
)

// Fetcher определяет интерфейс получения публикации на дату
type Fetcher interface {
	Fetch(ctx context.Context, date time.Time) *models.Publication
}

// Убеждаемся, что Client реализует Fetcher
var _ Fetcher = (*Client)(nil)
