package external

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"net/http"
	"time"

	"tcmb_rates_api/internal/config"
	"tcmb_rates_api/internal/metrics"
	"tcmb_rates_api/internal/models"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/html/charset"
)

// Публикации за выходные и праздники на сервере ЦБ нет
var errNotPublished = errors.New("publication not found")

// Клиент для получения ежедневных курсов ЦБ Турции
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	location   *time.Location
	now        func() time.Time
	logger     *logrus.Logger
}

// Создаём новый клиент для ЦБ. now задаёт текущее время, location определяет календарную дату.
func New(cfg *config.ExternalConfig, location *time.Location, now func() time.Time, logger *logrus.Logger) *Client {
	if location == nil {
		location = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		location:  location,
		now:       now,
		logger:    logger,
	}
}

// ResourceURL возвращает адрес публикации на дату.
// Нулевая дата или сегодняшняя дата дают today.xml, иначе архивный файл YYYYMM/DDMMYYYY.xml.
func (c *Client) ResourceURL(date time.Time) string {
	if date.IsZero() || sameDay(date.In(c.location), c.now().In(c.location)) {
		return c.baseURL + "/today.xml"
	}
	date = date.In(c.location)
	return fmt.Sprintf("%s/%s/%s.xml", c.baseURL, date.Format("200601"), date.Format("02012006"))
}

// Fetch загружает и разбирает публикацию на дату. Если данных нет, возвращает nil:
// для выходных и праздников это ожидаемый результат, а не ошибка.
func (c *Client) Fetch(ctx context.Context, date time.Time) *models.Publication {
	url := c.ResourceURL(date)

	pub, err := c.fetchPublication(ctx, url)
	if err != nil {
		entry := c.logger.WithError(err).WithField("url", url)
		if errors.Is(err, errNotPublished) {
			metrics.ObserveFetch(metrics.FetchNotFound)
			entry.Debug("No publication for requested date")
		} else {
			metrics.ObserveFetch(metrics.FetchError)
			entry.Warn("Failed to fetch publication")
		}
		return nil
	}

	metrics.ObserveFetch(metrics.FetchOK)
	c.logger.WithFields(logrus.Fields{
		"url":        url,
		"date":       pub.Date,
		"currencies": len(pub.Currencies),
	}).Debug("Publication fetched")

	return pub
}

func (c *Client) fetchPublication(ctx context.Context, url string) (*models.Publication, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errNotPublished
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upstream returned status %d", resp.StatusCode)
	}

	// Архивные файлы бывают в ISO-8859-9, поэтому кодировку определяет charset
	decoder := xml.NewDecoder(resp.Body)
	decoder.CharsetReader = charset.NewReaderLabel

	var pub models.Publication
	if err := decoder.Decode(&pub); err != nil {
		return nil, fmt.Errorf("failed to decode publication: %w", err)
	}

	return &pub, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
