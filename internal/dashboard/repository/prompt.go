package repository

import (
	"fmt"
	"time"
)

// BuildStockNarrativePrompt asks the model for a single JSON object describing
// the ticker. Field names must stay in sync with entity.StockSnapshot.
func BuildStockNarrativePrompt(ticker string, now time.Time) string {
	promptTemplate := `你是熟悉台灣證券交易所 (TWSE) 與櫃買中心 (TPEx) 的專業金融分析師。今天是 %s。

任務：
使用網路搜尋，查詢股票代碼 "%s" 的最新即時報價、財務指標與新聞，全部以繁體中文回答。

優先參考的來源：
1. TWSE / TPEx OpenAPI：本益比、股價淨值比、殖利率與每日交易資訊。
2. MOPS 公開資訊觀測站：月營收與獲利能力 (毛利率、營業利益率、稅前純益率、稅後純益率)。
3. MoneyDJ、HiStock、鉅亨網：即時報價與新聞。

輸出規則：
- 只回傳一個 JSON 物件，不要加上 Markdown 或任何說明文字。
- price、change、changePercent、marketCap、peRatio、pbRatio、dividendYield、eps 以及 mom、yoy 一律填字串，例如 "1050"。
- revenue 與各項利益率 (grossMargin 等) 填數字，不要加 %% 或千分位逗號。
- 找不到的選填欄位請省略。

JSON 結構：
{
  "symbol": "股票代碼，例如 2330",
  "name": "公司簡稱，例如 台積電",
  "price": "最新股價",
  "change": "漲跌價，例如 +5.00",
  "changePercent": "漲跌幅，例如 +0.85%%",
  "updateTime": "資料時間，例如 2025-01-02 13:30",
  "marketCap": "市值 (選填)",
  "peRatio": "本益比 (選填)",
  "pbRatio": "股價淨值比 (選填)",
  "dividendYield": "殖利率 (選填)",
  "sector": "產業類別",
  "eps": "最近四季 EPS",
  "aiSummary": "100 字以內的市場觀察與近期趨勢摘要",
  "revenueHistory": [
    {
      "date": "YYYY/MM",
      "revenue": 營收數字 (單位：新台幣十億元),
      "mom": "月增率，例如 +1.2%%",
      "yoy": "單月年增率，例如 +15.5%%",
      "cumulativeRevenueYoy": "累計營收年增率，例如 +20.1%%"
    }
  ],
  "marginHistory": [
    {
      "quarter": "YYQ#，例如 24Q3",
      "grossMargin": 毛利率數字,
      "operatingMargin": 營業利益率數字,
      "preTaxMargin": 稅前純益率數字,
      "netProfitMargin": 稅後純益率數字
    }
  ],
  "news": [
    {
      "title": "新聞標題",
      "source": "媒體名稱",
      "date": "YYYY-MM-DD",
      "url": "新聞連結"
    }
  ]
}

資料範圍：
- revenueHistory 必須涵蓋最近 12 個月。
- marginHistory 必須涵蓋最近 8 個季度。
- news 最多 15 則，依日期由新到舊排序。`

	return fmt.Sprintf(promptTemplate, now.Format("2006-01-02"), ticker)
}
