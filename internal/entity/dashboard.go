package entity

// Dashboard is the aggregated view for one ticker.
type Dashboard struct {
	Snapshot      *StockSnapshot
	Institutional InstitutionalSeries
	Sentiment     []SentimentNewsItem
	Polarity      Polarity
	Charts        FinancialCharts
	Links         []ReferenceLink
}

// ReferenceLink points at an external page with more detail for a symbol.
type ReferenceLink struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// Phase is the lifecycle stage of a dashboard search.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseReady   Phase = "ready"
	PhaseFailed  Phase = "failed"
)

// DashboardState is an immutable value describing the session. Each phase
// only exposes the fields that are valid in it.
type DashboardState struct {
	phase      Phase
	generation uint64
	ticker     string
	dashboard  *Dashboard
	message    string
}

func IdleState() DashboardState {
	return DashboardState{phase: PhaseIdle}
}

func LoadingState(generation uint64, ticker string) DashboardState {
	return DashboardState{phase: PhaseLoading, generation: generation, ticker: ticker}
}

func ReadyState(generation uint64, ticker string, d *Dashboard) DashboardState {
	return DashboardState{phase: PhaseReady, generation: generation, ticker: ticker, dashboard: d}
}

func FailedState(generation uint64, ticker, message string) DashboardState {
	return DashboardState{phase: PhaseFailed, generation: generation, ticker: ticker, message: message}
}

func (s DashboardState) Phase() Phase {
	return s.phase
}

func (s DashboardState) Generation() uint64 {
	return s.generation
}

// Ticker is empty while idle.
func (s DashboardState) Ticker() string {
	return s.ticker
}

// Dashboard returns the aggregated view; ok is false unless the phase is ready.
func (s DashboardState) Dashboard() (*Dashboard, bool) {
	if s.phase != PhaseReady {
		return nil, false
	}
	return s.dashboard, true
}

// Message returns the user-facing error; ok is false unless the phase is failed.
func (s DashboardState) Message() (string, bool) {
	if s.phase != PhaseFailed {
		return "", false
	}
	return s.message, true
}
