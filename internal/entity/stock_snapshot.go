package entity

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// StockSnapshot is one ticker's state as reported by the narrative source.
// It is built once per search and never mutated afterwards.
type StockSnapshot struct {
	Symbol        string           `json:"symbol"`
	Name          string           `json:"name"`
	Price         Text             `json:"price"`
	Change        Text             `json:"change"`
	ChangePercent Text             `json:"changePercent"`
	UpdateTime    string           `json:"updateTime"`
	MarketCap     Text             `json:"marketCap,omitempty"`
	PERatio       Text             `json:"peRatio,omitempty"`
	PBRatio       Text             `json:"pbRatio,omitempty"`
	DividendYield Text             `json:"dividendYield,omitempty"`
	Sector        string           `json:"sector,omitempty"`
	EPS           Text             `json:"eps,omitempty"`
	AISummary     string           `json:"aiSummary"`
	Revenue       []RevenueRecord  `json:"revenueHistory"`
	Margins       []MarginRecord   `json:"marginHistory"`
	News          []NewsItem       `json:"news"`
	Sources       []SourceCitation `json:"sourceUrls"`
}

// RevenueRecord is one month of reported revenue. Revenue is in NT$ billions.
type RevenueRecord struct {
	Month         string `json:"date"`
	Revenue       Number `json:"revenue"`
	MoM           Text   `json:"mom"`
	YoY           Text   `json:"yoy"`
	CumulativeYoY Text   `json:"cumulativeRevenueYoy,omitempty"`
}

// MarginRecord is one quarter of profitability ratios, all in percent.
type MarginRecord struct {
	Quarter         string  `json:"quarter"`
	GrossMargin     Number  `json:"grossMargin"`
	OperatingMargin Number  `json:"operatingMargin"`
	PreTaxMargin    *Number `json:"preTaxMargin,omitempty"`
	NetProfitMargin Number  `json:"netProfitMargin"`
}

// NewsItem is a headline cited by the narrative source.
type NewsItem struct {
	Title  string `json:"title"`
	Source string `json:"source"`
	Date   string `json:"date"`
	URL    string `json:"url"`
}

// SourceCitation is a web page that grounded the narrative answer.
type SourceCitation struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// DisplayName returns the company name, or the symbol when the name is blank.
func (s *StockSnapshot) DisplayName() string {
	if name := strings.TrimSpace(s.Name); name != "" {
		return name
	}
	return s.Symbol
}

// IsUp reports whether the latest change is an increase.
func (s *StockSnapshot) IsUp() bool {
	change := string(s.Change)
	if strings.Contains(change, "+") {
		return true
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(change), 64)
	return err == nil && v > 0
}

// Text decodes from a JSON string or a bare JSON number. Numbers keep their
// literal form, so 1050 becomes "1050".
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		*t = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = Text(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*t = Text(n.String())
	return nil
}

// Number decodes from a JSON number or a numeric string such as "1,050",
// "59.0%" or "+3.2". Blank or unparsable strings decode to zero.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		*n = 0
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*n = Number(f)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*n = Number(parseLooseFloat(s))
	return nil
}

func parseLooseFloat(s string) float64 {
	s = strings.NewReplacer(",", "", "%", "", " ", "").Replace(strings.TrimSpace(s))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
