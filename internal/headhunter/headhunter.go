// Package headhunter fetches vacancies from the HeadHunter public API so they
// can be matched as job descriptions.
package headhunter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	apiURL    = "https://api.hh.ru"
	userAgent = "spigell/ats-matcher (spigelly@gmail.com)"

	VacancyPath = "/vacancies"
)

type Client struct {
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

func New(logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		APIURL: apiURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger:    logger,
		UserAgent: userAgent,
	}
}

// GetVacancy loads a single vacancy by its id.
func (c *Client) GetVacancy(ctx context.Context, id string) (*Vacancy, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("vacancy id is empty")
	}

	endpoint := fmt.Sprintf("%s%s/%s", strings.TrimRight(c.APIURL, "/"), VacancyPath, url.PathEscape(id))

	var raw map[string]interface{}
	if err := c.getJSON(ctx, endpoint, nil, &raw); err != nil {
		return nil, fmt.Errorf("get vacancy %s: %w", id, err)
	}

	vacancy, err := decodeVacancy(raw)
	if err != nil {
		return nil, fmt.Errorf("decode vacancy %s: %w", id, err)
	}

	c.logger.Debug("vacancy loaded", zap.String("id", vacancy.ID), zap.String("name", vacancy.Name))
	return vacancy, nil
}
