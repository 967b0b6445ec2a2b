package stock

// Record is the completed per-symbol snapshot. Every field is populated:
// authoritative values where the upstream had them, derived or estimated
// values everywhere else. Field names match the published JSON artifact.
type Record struct {
	// Identity
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Sector   string `json:"sector"`
	Industry string `json:"industry"`

	// Price / trading
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	DayHigh       float64 `json:"dayHigh"`
	DayLow        float64 `json:"dayLow"`
	Volume        int64   `json:"volume"`
	PreviousClose float64 `json:"previousClose"`
	Currency      string  `json:"currency"`
	Exchange      string  `json:"exchange"`

	// Valuation
	MarketCap       int64   `json:"marketCap"`
	EnterpriseValue int64   `json:"enterpriseValue"`
	PE              float64 `json:"pe"`
	ForwardPE       float64 `json:"forwardPE"`
	PEGRatio        float64 `json:"pegRatio"`
	PriceToBook     float64 `json:"priceToBook"`
	PriceToSales    float64 `json:"priceToSales"`
	EVToRevenue     float64 `json:"evToRevenue"`
	EVToEBITDA      float64 `json:"evToEbitda"`

	// Growth
	RevenueGrowth  string `json:"revenueGrowth"`
	EarningsGrowth string `json:"earningsGrowth"`

	// Profitability
	Revenue     int64   `json:"revenue"`
	GrossProfit int64   `json:"grossProfit"`
	EBITDA      int64   `json:"ebitda"`
	NetIncome   int64   `json:"netIncome"`
	EPS         float64 `json:"eps"`
	EPSRaw      float64 `json:"eps_raw"`
	ForwardEPS  float64 `json:"forwardEps"`

	// Margins (formatted percentages)
	GrossMargin     string `json:"grossMargin"`
	OperatingMargin string `json:"operatingMargin"`
	ProfitMargin    string `json:"profitMargin"`
	EBITDAMargin    string `json:"ebitdaMargin"`

	// Returns
	ROE string `json:"roe"`
	ROA string `json:"roa"`

	// Balance sheet
	TotalCash   int64 `json:"totalCash"`
	TotalDebt   int64 `json:"totalDebt"`
	NetDebt     int64 `json:"netDebt"`
	TotalAssets int64 `json:"totalAssets"`
	TotalEquity int64 `json:"totalEquity"`

	// Liquidity ratios
	DebtToEquity float64 `json:"debtToEquity"`
	DebtToAssets float64 `json:"debtToAssets"`
	CurrentRatio float64 `json:"currentRatio"`
	QuickRatio   float64 `json:"quickRatio"`

	// Cash flow
	OperatingCashflow int64 `json:"operatingCashflow"`
	FreeCashflow      int64 `json:"freeCashflow"`

	// Dividends
	DividendRate  float64 `json:"dividendRate"`
	DividendYield string  `json:"dividendYield"`
	PayoutRatio   string  `json:"payoutRatio"`

	// Share data
	SharesOutstanding int64 `json:"sharesOutstanding"`
	FloatShares       int64 `json:"floatShares"`

	// Risk
	Beta       float64 `json:"beta"`
	ShortRatio float64 `json:"shortRatio"`

	// 52-week range
	FiftyTwoWeekHigh float64 `json:"fiftyTwoWeekHigh"`
	FiftyTwoWeekLow  float64 `json:"fiftyTwoWeekLow"`

	// Statement history is not served by the v7 quote endpoint; the arrays
	// stay in the schema so downstream consumers keep a stable shape.
	IncomeStatementHistory []any `json:"incomeStatementHistory"`
	BalanceSheetHistory    []any `json:"balanceSheetHistory"`
	CashFlowHistory        []any `json:"cashFlowHistory"`

	// Metadata
	LastUpdated string `json:"lastUpdated"`
	DataQuality string `json:"dataQuality"`
	DataSource  string `json:"dataSource"`
}
