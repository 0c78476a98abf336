package models

import (
	"encoding/json"
	"encoding/xml"
	"math"
	"strconv"
	"strings"
)

// Текстовое значение из XML ЦБ. Пустой элемент сериализуется в JSON как null.
type RawValue string

func (v RawValue) MarshalJSON() ([]byte, error) {
	s := strings.TrimSpace(string(v))
	if s == "" {
		return []byte("null"), nil
	}
	return json.Marshal(s)
}

// Float разбирает значение как число. Пустое, нечисловое или бесконечное значение даёт nil, а не ноль.
func (v RawValue) Float() *float64 {
	s := strings.TrimSpace(string(v))
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// Ежедневная публикация курсов ЦБ Турции (корневой элемент Tarih_Date).
// JSON-теги повторяют исходную структуру, /today отдаёт её как есть.
type Publication struct {
	XMLName    xml.Name            `xml:"Tarih_Date" json:"-"`
	Date       string              `xml:"Tarih,attr" json:"@Tarih"` // DD.MM.YYYY
	DateUS     string              `xml:"Date,attr" json:"@Date"`   // MM/DD/YYYY
	BulletinNo string              `xml:"Bulten_No,attr" json:"@Bulten_No"`
	Currencies []PublishedCurrency `xml:"Currency" json:"Currency"`
}

// Одна валюта в публикации
type PublishedCurrency struct {
	CrossOrder      string   `xml:"CrossOrder,attr" json:"@CrossOrder"`
	Kod             string   `xml:"Kod,attr" json:"@Kod"`
	CurrencyCode    string   `xml:"CurrencyCode,attr" json:"@CurrencyCode"`
	Unit            RawValue `xml:"Unit" json:"Unit"`
	Isim            RawValue `xml:"Isim" json:"Isim"`
	CurrencyName    RawValue `xml:"CurrencyName" json:"CurrencyName"`
	ForexBuying     RawValue `xml:"ForexBuying" json:"ForexBuying"`
	ForexSelling    RawValue `xml:"ForexSelling" json:"ForexSelling"`
	BanknoteBuying  RawValue `xml:"BanknoteBuying" json:"BanknoteBuying"`
	BanknoteSelling RawValue `xml:"BanknoteSelling" json:"BanknoteSelling"`
	CrossRateUSD    RawValue `xml:"CrossRateUSD" json:"CrossRateUSD"`
	CrossRateOther  RawValue `xml:"CrossRateOther" json:"CrossRateOther"`
}

// Котировка валюты на дату публикации
type Quote struct {
	Code            string   `json:"code"`
	Name            string   `json:"name"`
	Date            string   `json:"date"` // дата публикации, не запрошенная дата
	ForexBuying     *float64 `json:"forexBuying"`
	ForexSelling    *float64 `json:"forexSelling"`
	BanknoteBuying  *float64 `json:"banknoteBuying"`
	BanknoteSelling *float64 `json:"banknoteSelling"`
}

// FindCurrency ищет валюту по коду без учёта регистра.
// Возвращает nil, если публикации нет или валюта в ней не указана.
func (p *Publication) FindCurrency(code string) *Quote {
	if p == nil {
		return nil
	}
	code = strings.ToUpper(strings.TrimSpace(code))

	for _, c := range p.Currencies {
		if c.CurrencyCode != code {
			continue
		}
		return &Quote{
			Code:            c.CurrencyCode,
			Name:            strings.TrimSpace(string(c.Isim)),
			Date:            p.Date,
			ForexBuying:     c.ForexBuying.Float(),
			ForexSelling:    c.ForexSelling.Float(),
			BanknoteBuying:  c.BanknoteBuying.Float(),
			BanknoteSelling: c.BanknoteSelling.Float(),
		}
	}
	return nil
}

// Точка истории курса за один рабочий день
type HistoryPoint struct {
	Date string  `json:"date"` // YYYY-MM-DD, запрошенная дата
	Buy  float64 `json:"buy"`
	Sell float64 `json:"sell"`
}

// Изменение курса покупки за период
type ChangeRecord struct {
	Code          string  `json:"code"`
	Start         float64 `json:"start"`
	End           float64 `json:"end"`
	ChangePercent float64 `json:"change_percent"`
}

// Ответ /diff
type DiffResponse struct {
	ChangeRecord
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// Ответ /convert
type ConvertResponse struct {
	From      string  `json:"from"`
	To        string  `json:"to"`
	Amount    float64 `json:"amount"`
	Rate      float64 `json:"rate"`
	Converted float64 `json:"converted"`
}

// Описание сервиса для /
type ServiceInfo struct {
	Message   string   `json:"message"`
	Endpoints []string `json:"endpoints"`
}

// Мягкая ошибка /currency, отдаётся со статусом 200
type CurrencyErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
	Date  string `json:"date,omitempty"`
}

// Ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
