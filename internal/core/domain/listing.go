package domain

// ListingType - тип объявления (продажа или аренда)
type ListingType string

const (
	ListingTypeForSale ListingType = "For Sale"
	ListingTypeForRent ListingType = "For Rent"
)

// Listing - объект недвижимости из фикстуры
type Listing struct {
	ID         int         `json:"id"`
	Address    string      `json:"address"`
	Price      float64     `json:"price"`
	Sqft       int         `json:"sqft"`
	Bedrooms   int         `json:"bedrooms"`
	Bathrooms  float64     `json:"bathrooms"`
	Type       ListingType `json:"type"`
	Agent      string      `json:"agent"`
	ListingAge string      `json:"listingAge"`
	Image      string      `json:"image"`
}

// NumericField возвращает числовое значение поля по его имени в JSON.
// Для нечисловых и неизвестных полей ok == false.
func (l Listing) NumericField(name string) (value float64, ok bool) {
	switch name {
	case "id":
		return float64(l.ID), true
	case "price":
		return l.Price, true
	case "sqft":
		return float64(l.Sqft), true
	case "bedrooms":
		return float64(l.Bedrooms), true
	case "bathrooms":
		return l.Bathrooms, true
	}
	return 0, false
}
