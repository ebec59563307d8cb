package ai_api_client

// DTO запроса к внешнему AI-сервису. Фильтры отправляются явными null,
// иначе сервис падает на сравнении с отсутствующими полями.
type aiSearchRequest struct {
	Query        string   `json:"query"`
	Page         int      `json:"page"`
	Limit        int      `json:"limit"`
	MinPrice     *float64 `json:"min_price"`
	MaxPrice     *float64 `json:"max_price"`
	MinBedrooms  *int     `json:"min_bedrooms"`
	MinBathrooms *float64 `json:"min_bathrooms"`
	PropertyType *string  `json:"property_type"`
}
