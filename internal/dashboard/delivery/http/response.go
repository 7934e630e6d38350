package http

import (
	"tw-stock-insight/internal/dashboard/dto"
	"tw-stock-insight/internal/dashboard/service"
	"tw-stock-insight/internal/entity"
)

func toInstitutionalResponse(series entity.InstitutionalSeries) dto.InstitutionalResponse {
	return dto.InstitutionalResponse{
		Days:  series.NewestFirst(),
		Table: service.TableRows(series),
		Chart: service.ChartPoints(series),
	}
}

func toDashboardResponse(d *entity.Dashboard) *dto.DashboardResponse {
	if d == nil {
		return nil
	}
	resp := &dto.DashboardResponse{
		Snapshot:      d.Snapshot,
		Institutional: toInstitutionalResponse(d.Institutional),
		Sentiment: dto.SentimentResponse{
			Items:    d.Sentiment,
			Polarity: d.Polarity,
		},
		Charts: d.Charts,
		Links:  d.Links,
	}
	if d.Snapshot != nil {
		resp.IsUp = d.Snapshot.IsUp()
	}
	return resp
}

func toStateResponse(state entity.DashboardState) dto.StateResponse {
	resp := dto.StateResponse{
		Phase:      state.Phase(),
		Generation: state.Generation(),
		Ticker:     state.Ticker(),
	}
	if d, ok := state.Dashboard(); ok {
		resp.Dashboard = toDashboardResponse(d)
	}
	if msg, ok := state.Message(); ok {
		resp.Error = msg
	}
	return resp
}
