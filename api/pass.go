package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-gost/seermon/corpus"
	"github.com/go-gost/seermon/monitor"
	"github.com/go-gost/seermon/report"
	"github.com/go-gost/seermon/stats"
)

// successful operation.
// swagger:response getPassResponse
type getPassResponse struct {
	// in: body
	Data passStatus
}

type passStatus struct {
	ID       string           `json:"id"`
	State    monitor.State    `json:"state"`
	Progress monitor.Progress `json:"progress"`
	Stats    stats.Snapshot   `json:"stats"`
}

func getPass(ctx *gin.Context) {
	// swagger:route GET /pass Pass getPassRequest
	//
	// Get the state and progress of the pass.
	//
	//     Responses:
	//       200: getPassResponse

	p := passFrom(ctx)

	var resp getPassResponse
	resp.Data = passStatus{
		ID:       p.ID(),
		State:    p.State(),
		Progress: p.Progress(),
		Stats:    p.Stats().Snapshot(),
	}

	ctx.JSON(http.StatusOK, Response{
		Data: resp.Data,
	})
}

// successful operation.
// swagger:response getReportResponse
type getReportResponse struct {
	// in: body
	Data *report.Report
}

func getReport(ctx *gin.Context) {
	// swagger:route GET /pass/report Pass getReportRequest
	//
	// Get the report of a complete pass.
	//
	//     Responses:
	//       200: getReportResponse
	//       409: incomplete

	r, err := passFrom(ctx).Report()
	if err != nil {
		if errors.Is(err, monitor.ErrIncompletePass) {
			writeError(ctx, ErrIncomplete)
			return
		}
		writeError(ctx, NewError(http.StatusInternalServerError, 50000, err.Error()))
		return
	}

	var resp getReportResponse
	resp.Data = r

	ctx.JSON(http.StatusOK, Response{
		Data: resp.Data,
	})
}

// swagger:parameters getProbeListRequest
type getProbeListRequest struct {
	// probe status, one of pending|completed|correct|fp|fn, default is all.
	// in: query
	Status string `form:"status" json:"status"`
}

type probeItem struct {
	Payload    corpus.HexBytes   `json:"payload"`
	Malicious  bool              `json:"malicious"`
	Prediction corpus.Prediction `json:"prediction"`
}

// successful operation.
// swagger:response getProbeListResponse
type getProbeListResponse struct {
	// in: body
	Data probeList
}

type probeList struct {
	Count  int         `json:"count"`
	Probes []probeItem `json:"probes"`
}

func getProbeList(ctx *gin.Context) {
	// swagger:route GET /pass/probes Pass getProbeListRequest
	//
	// List the probes of the pass.
	//
	//     Responses:
	//       200: getProbeListResponse

	var req getProbeListRequest
	ctx.ShouldBindQuery(&req)

	c := passFrom(ctx).Corpus()

	var probes []*corpus.Probe
	switch req.Status {
	case "":
		probes = c.Probes()
	case "pending":
		probes = c.Pending()
	case "completed":
		probes = c.Completed()
	case "correct":
		probes = c.Correct()
	case "fp":
		probes = c.FalsePositives()
	case "fn":
		probes = c.FalseNegatives()
	default:
		writeError(ctx, ErrInvalid)
		return
	}

	var resp getProbeListResponse
	resp.Data.Probes = make([]probeItem, 0, len(probes))
	for _, p := range probes {
		resp.Data.Probes = append(resp.Data.Probes, probeItem{
			Payload:    p.Payload(),
			Malicious:  p.Malicious(),
			Prediction: p.Prediction(),
		})
	}
	resp.Data.Count = len(resp.Data.Probes)

	ctx.JSON(http.StatusOK, Response{
		Data: resp.Data,
	})
}
