package service

import (
	"fmt"
	"net/url"
	"time"

	"tw-stock-insight/internal/entity"
)

// rocYearOffset converts a Gregorian year to the Minguo calendar used by MOPS.
const rocYearOffset = 1911

// ReferenceLinks returns the external pages offering more detail for symbol.
// The MOPS link targets the most recently completed quarter relative to now.
func ReferenceLinks(symbol string, now time.Time) []entity.ReferenceLink {
	id := url.QueryEscape(symbol)
	year, season := lastCompletedQuarter(now)
	mopsURL := fmt.Sprintf("https://mops.twse.com.tw/mops/#/web/t164sb04?dataType=2&companyId=%s&year=%d&season=%d&subsidiaryCompanyId=",
		id, year-rocYearOffset, season)

	return []entity.ReferenceLink{
		{
			Name:        fmt.Sprintf("合併綜合損益表 (%s)", symbol),
			Description: "查詢該公司最新的季度合併綜合損益表與詳細財務指標數據。",
			URL:         mopsURL,
		},
		{
			Name:        "WantGoo 玩股網技術線圖",
			Description: "個股技術線圖與籌碼分析。",
			URL:         fmt.Sprintf("https://www.wantgoo.com/stock/%s/technical-chart", url.PathEscape(symbol)),
		},
		{
			Name:        "GoodInfo 股市資訊網",
			Description: "個股K線圖與歷年財務資料。",
			URL:         fmt.Sprintf("https://goodinfo.tw/tw/ShowK_Chart.asp?STOCK_ID=%s", id),
		},
		{
			Name:        "Yahoo 奇摩股市",
			Description: "即時報價與個股新聞。",
			URL:         fmt.Sprintf("https://tw.stock.yahoo.com/quote/%s", url.PathEscape(symbol)),
		},
		{
			Name:        "發行量加權股價指數 (大盤)",
			Description: "查詢台股大盤走勢、歷史指數與成交量資訊。",
			URL:         "https://www.twse.com.tw/zh/index.html#index-chart",
		},
		{
			Name:        "每日收盤行情 (MI_INDEX)",
			Description: "證交所每日收盤後公布的詳細個股行情表。",
			URL:         "https://www.twse.com.tw/zh/trading/historical/mi-index.html",
		},
		{
			Name:        "外資買賣超個股 (BFI82U)",
			Description: "外資及陸資買賣超彙總表，追蹤外資動向。",
			URL:         "https://www.twse.com.tw/zh/trading/foreign/bfi82u.html",
		},
	}
}

// FallbackSourceLinks are listed when the narrative carried no citations.
func FallbackSourceLinks() []entity.ReferenceLink {
	return []entity.ReferenceLink{
		{Name: "MOPS 公開資訊觀測站", URL: "https://mops.twse.com.tw"},
		{Name: "MoneyDJ 理財網", URL: "https://m.moneydj.com"},
	}
}

func lastCompletedQuarter(now time.Time) (year, season int) {
	year = now.Year()
	season = (int(now.Month()) - 1) / 3
	if season == 0 {
		return year - 1, 4
	}
	return year, season
}
