package models

import (
	"encoding/json"
	"encoding/xml"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleXML = `<?xml version="1.0" encoding="UTF-8"?>
<Tarih_Date Tarih="18.06.2025" Date="06/18/2025" Bulten_No="2025/113">
	<Currency CrossOrder="0" Kod="USD" CurrencyCode="USD">
		<Unit>1</Unit>
		<Isim>ABD DOLARI</Isim>
		<CurrencyName>US DOLLAR</CurrencyName>
		<ForexBuying>30.0</ForexBuying>
		<ForexSelling>30.1</ForexSelling>
		<BanknoteBuying>29.98</BanknoteBuying>
		<BanknoteSelling>30.15</BanknoteSelling>
		<CrossRateUSD/>
		<CrossRateOther/>
	</Currency>
	<Currency CrossOrder="15" Kod="IRR" CurrencyCode="IRR">
		<Unit>100</Unit>
		<Isim>İRAN RİYALİ</Isim>
		<CurrencyName>IRANIAN RIAL</CurrencyName>
		<ForexBuying>0.0911</ForexBuying>
		<ForexSelling>0.0923</ForexSelling>
		<BanknoteBuying/>
		<BanknoteSelling/>
		<CrossRateUSD>42105</CrossRateUSD>
		<CrossRateOther/>
	</Currency>
</Tarih_Date>`

func parseSample(t *testing.T) *Publication {
	t.Helper()
	var pub Publication
	require.NoError(t, xml.Unmarshal([]byte(sampleXML), &pub))
	return &pub
}

func TestPublication_Unmarshal(t *testing.T) {
	pub := parseSample(t)

	assert.Equal(t, "18.06.2025", pub.Date)
	assert.Equal(t, "06/18/2025", pub.DateUS)
	assert.Equal(t, "2025/113", pub.BulletinNo)
	require.Len(t, pub.Currencies, 2)
	assert.Equal(t, "USD", pub.Currencies[0].CurrencyCode)
	assert.Equal(t, RawValue("100"), pub.Currencies[1].Unit)
}

func TestFindCurrency_CaseInsensitive(t *testing.T) {
	pub := parseSample(t)

	upper := pub.FindCurrency("USD")
	lower := pub.FindCurrency("usd")

	require.NotNil(t, upper)
	assert.Equal(t, upper, lower)
	assert.Equal(t, "USD", upper.Code)
	assert.Equal(t, "ABD DOLARI", upper.Name)
	assert.Equal(t, "18.06.2025", upper.Date)
	require.NotNil(t, upper.ForexBuying)
	assert.Equal(t, 30.0, *upper.ForexBuying)
	require.NotNil(t, upper.ForexSelling)
	assert.Equal(t, 30.1, *upper.ForexSelling)
}

func TestFindCurrency_MissingValuesAreNil(t *testing.T) {
	pub := parseSample(t)

	irr := pub.FindCurrency("IRR")
	require.NotNil(t, irr)
	assert.NotNil(t, irr.ForexBuying)
	assert.Nil(t, irr.BanknoteBuying)
	assert.Nil(t, irr.BanknoteSelling)
}

func TestFindCurrency_NotFound(t *testing.T) {
	pub := parseSample(t)

	assert.Nil(t, pub.FindCurrency("XEU"))

	var empty *Publication
	assert.Nil(t, empty.FindCurrency("USD"))
}

func TestRawValue(t *testing.T) {
	tests := []struct {
		name     string
		value    RawValue
		expected *float64
		json     string
	}{
		{name: "number", value: "34.2524", expected: floatPtr(34.2524), json: `"34.2524"`},
		{name: "padded number", value: " 1 ", expected: floatPtr(1), json: `"1"`},
		{name: "empty", value: "", expected: nil, json: `null`},
		{name: "garbage", value: "n/a", expected: nil, json: `"n/a"`},
		{name: "not a number", value: "NaN", expected: nil, json: `"NaN"`},
		{name: "infinity", value: "Inf", expected: nil, json: `"Inf"`},
		{name: "overflow", value: "1e400", expected: nil, json: `"1e400"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.value.Float())

			data, err := json.Marshal(tt.value)
			require.NoError(t, err)
			assert.JSONEq(t, tt.json, string(data))
		})
	}
}

func TestPublication_RawJSON(t *testing.T) {
	pub := parseSample(t)

	data, err := json.Marshal(pub)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "18.06.2025", raw["@Tarih"])

	currencies := raw["Currency"].([]interface{})
	irr := currencies[1].(map[string]interface{})
	assert.Equal(t, "IRR", irr["@CurrencyCode"])
	assert.Nil(t, irr["BanknoteBuying"])
	assert.Equal(t, "0.0911", irr["ForexBuying"])
}

func floatPtr(v float64) *float64 {
	return &v
}
